package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/constants"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/guard"
	"vidhub.com/pkg/mq"
	"vidhub.com/pkg/utils"
)

// UpdateRequest 可修改的视频字段, 空值表示不修改
type UpdateRequest struct {
	Title         string
	Description   string
	ThumbnailPath string
}

func (req *UpdateRequest) empty() bool {
	return strings.TrimSpace(req.Title) == "" &&
		strings.TrimSpace(req.Description) == "" &&
		req.ThumbnailPath == ""
}

// ownedVideo 读取视频并校验所有权
func (service *VideoService) ownedVideo(ctx context.Context, actorID, videoID string, forbidden string) (*model.Video, error) {
	if !utils.ValidID(videoID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid videoId format")
	}
	if actorID == "" {
		return nil, errno.UnauthorizedErr
	}
	video, err := service.videos.GetVideo(ctx, videoID)
	if database.IsNotFound(err) {
		return nil, errno.NotFoundErr.WithMessage("Video does not exist")
	}
	if err != nil {
		return nil, err
	}
	if err := guard.Authorize(actorID, video.OwnerID); err != nil {
		return nil, errno.ForbiddenErr.WithMessage(forbidden)
	}
	return video, nil
}

// UpdateVideo 修改标题, 描述或封面
// 新封面先上传, 记录更新成功后再删除旧封面
func (service *VideoService) UpdateVideo(ctx context.Context, actorID, videoID string, req *UpdateRequest) (*model.Video, error) {
	if req.empty() {
		return nil, errno.InvalidInputErr.WithMessage("No valid fields provided to update")
	}
	video, err := service.ownedVideo(ctx, actorID, videoID, "You are not authorized to update this video")
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, 3)
	if title := strings.TrimSpace(req.Title); title != "" {
		fields["title"] = title
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		fields["description"] = description
	}
	oldThumbnail := video.Thumbnail
	newThumbnail := ""
	if req.ThumbnailPath != "" {
		newThumbnail, err = service.storage.Upload(ctx, req.ThumbnailPath, constants.ThumbnailObjectPrefix)
		if err != nil {
			hlog.CtxErrorf(ctx, "upload thumbnail for video %s failed: %v", videoID, err)
			return nil, errno.UpstreamErr.WithMessage("Error while uploading thumbnail")
		}
		fields["thumbnail"] = newThumbnail
	}

	if err := service.videos.UpdateVideo(ctx, videoID, fields); err != nil {
		hlog.CtxErrorf(ctx, "update video %s failed: %v", videoID, err)
		service.removeObject(ctx, newThumbnail)
		return nil, err
	}
	if newThumbnail != "" {
		service.removeObject(ctx, oldThumbnail)
	}

	updated, err := service.videos.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	service.publishEvent(ctx, mq.VideoUpdated, actorID, updated)
	return updated, nil
}

// DeleteVideo 删除记录后清理媒体文件, 点赞和评论不做级联删除
func (service *VideoService) DeleteVideo(ctx context.Context, actorID, videoID string) error {
	video, err := service.ownedVideo(ctx, actorID, videoID, "You are not authorized to delete this video")
	if err != nil {
		return err
	}
	if err := service.videos.DeleteVideo(ctx, videoID); err != nil {
		hlog.CtxErrorf(ctx, "delete video %s failed: %v", videoID, err)
		return err
	}
	service.removeObject(ctx, video.VideoFile)
	service.removeObject(ctx, video.Thumbnail)
	service.publishEvent(ctx, mq.VideoDeleted, actorID, video)
	return nil
}

// TogglePublishStatus 切换发布状态, 返回切换后的状态和提示信息
func (service *VideoService) TogglePublishStatus(ctx context.Context, actorID, videoID string) (*model.PublishStatus, string, error) {
	if _, err := service.ownedVideo(ctx, actorID, videoID, "You are not authorized to toggle publish status"); err != nil {
		return nil, "", err
	}
	if err := service.videos.FlipPublished(ctx, videoID); err != nil {
		hlog.CtxErrorf(ctx, "toggle publish status of video %s failed: %v", videoID, err)
		return nil, "", err
	}
	video, err := service.videos.GetVideo(ctx, videoID)
	if err != nil {
		return nil, "", err
	}
	service.publishEvent(ctx, mq.VideoVisibility, actorID, video)

	message := "Video is now unpublished"
	if video.IsPublished {
		message = "Video is now published"
	}
	return &model.PublishStatus{
		ID:          video.ID,
		Title:       video.Title,
		IsPublished: video.IsPublished,
		UpdatedAt:   video.UpdatedAt,
	}, message, nil
}
