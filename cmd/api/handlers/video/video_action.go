package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pkg/errors"

	"vidhub.com/cmd/api/handlers/response"
	"vidhub.com/cmd/video/service"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/jwt"
)

func (h *Handler) PublishVideo(ctx context.Context, c *app.RequestContext) {
	var param PublishParam
	if err := c.Bind(&param); err != nil {
		response.Fail(ctx, c, "PublishVideo", errno.InvalidInputErr.WithMessage("Invalid request body"))
		return
	}
	videoPath, removeVideo, err := h.saveUpload(ctx, c, "videoFile")
	defer removeVideo()
	if err != nil {
		response.Fail(ctx, c, "PublishVideo", errors.Wrap(err, "save video file"))
		return
	}
	thumbnailPath, removeThumbnail, err := h.saveUpload(ctx, c, "thumbnail")
	defer removeThumbnail()
	if err != nil {
		response.Fail(ctx, c, "PublishVideo", errors.Wrap(err, "save thumbnail"))
		return
	}

	video, err := h.videos.PublishVideo(ctx, jwt.ActorID(c), &service.PublishRequest{
		Title:         param.Title,
		Description:   param.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		response.Fail(ctx, c, "PublishVideo", err)
		return
	}
	c.JSON(consts.StatusCreated, response.Response{
		Code:    errno.SuccessCode,
		Message: "Video uploaded successfully",
		Data:    video,
	})
}

func (h *Handler) GetVideo(ctx context.Context, c *app.RequestContext) {
	detail, err := h.videos.GetVideo(ctx, jwt.ActorID(c), c.Param("videoId"))
	if err != nil {
		response.Fail(ctx, c, "GetVideo", err)
		return
	}
	response.Success(c, "Video fetched successfully", detail)
}

func (h *Handler) UpdateVideo(ctx context.Context, c *app.RequestContext) {
	var param UpdateParam
	if err := c.Bind(&param); err != nil {
		response.Fail(ctx, c, "UpdateVideo", errno.InvalidInputErr.WithMessage("Invalid request body"))
		return
	}
	thumbnailPath, removeThumbnail, err := h.saveUpload(ctx, c, "thumbnail")
	defer removeThumbnail()
	if err != nil {
		response.Fail(ctx, c, "UpdateVideo", errors.Wrap(err, "save thumbnail"))
		return
	}

	video, err := h.videos.UpdateVideo(ctx, jwt.ActorID(c), c.Param("videoId"), &service.UpdateRequest{
		Title:         param.Title,
		Description:   param.Description,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		response.Fail(ctx, c, "UpdateVideo", err)
		return
	}
	response.Success(c, "Video updated successfully", video)
}

func (h *Handler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	if err := h.videos.DeleteVideo(ctx, jwt.ActorID(c), c.Param("videoId")); err != nil {
		response.Fail(ctx, c, "DeleteVideo", err)
		return
	}
	response.Success(c, "Video deleted successfully", response.Empty)
}

func (h *Handler) TogglePublishStatus(ctx context.Context, c *app.RequestContext) {
	status, message, err := h.videos.TogglePublishStatus(ctx, jwt.ActorID(c), c.Param("videoId"))
	if err != nil {
		response.Fail(ctx, c, "TogglePublishStatus", err)
		return
	}
	response.Success(c, message, status)
}
