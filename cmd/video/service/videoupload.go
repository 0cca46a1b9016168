package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/constants"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/mq"
	"vidhub.com/pkg/utils"
)

// PublishRequest 发布视频的参数, 文件已经落在本地临时目录
type PublishRequest struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

func (req *PublishRequest) validate() error {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return errno.InvalidInputErr.WithMessage("All fields are required")
	}
	if req.VideoPath == "" {
		return errno.InvalidInputErr.WithMessage("Video file is required")
	}
	if req.ThumbnailPath == "" {
		return errno.InvalidInputErr.WithMessage("Thumbnail is required")
	}
	return nil
}

// PublishVideo 上传视频和封面后创建记录
// 任一步失败都会清理已经上传的对象
func (service *VideoService) PublishVideo(ctx context.Context, actorID string, req *PublishRequest) (*model.Video, error) {
	if actorID == "" {
		return nil, errno.UnauthorizedErr
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	duration, err := service.probe(req.VideoPath)
	if err != nil {
		hlog.CtxWarnf(ctx, "probe duration of %s failed: %v", req.VideoPath, err)
		duration = 0
	}

	videoURL, err := service.storage.Upload(ctx, req.VideoPath, constants.VideoObjectPrefix)
	if err != nil {
		hlog.CtxErrorf(ctx, "upload video file failed: %v", err)
		return nil, errno.UpstreamErr.WithMessage("Error while uploading video")
	}
	thumbnailURL, err := service.storage.Upload(ctx, req.ThumbnailPath, constants.ThumbnailObjectPrefix)
	if err != nil {
		hlog.CtxErrorf(ctx, "upload thumbnail failed: %v", err)
		service.removeObject(ctx, videoURL)
		return nil, errno.UpstreamErr.WithMessage("Error while uploading thumbnail")
	}

	video := &model.Video{
		ID:          utils.NewID(),
		OwnerID:     actorID,
		Title:       req.Title,
		Description: req.Description,
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Duration:    duration,
		IsPublished: true,
	}
	if err := service.videos.CreateVideo(ctx, video); err != nil {
		hlog.CtxErrorf(ctx, "create video record failed: %v", err)
		service.removeObject(ctx, videoURL)
		service.removeObject(ctx, thumbnailURL)
		return nil, err
	}

	service.publishEvent(ctx, mq.VideoPublished, actorID, video)
	return video, nil
}
