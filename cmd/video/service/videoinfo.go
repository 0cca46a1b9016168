package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/compose"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/utils"
)

// 不存在和不可见使用同一提示, 不暴露未发布视频的存在
var errVideoNotFound = errno.NotFoundErr.WithMessage("Video not found")

// GetVideo 组装视频详情: 点赞数, 评论及评论者信息
// 每次成功读取都会增加一次播放量
func (service *VideoService) GetVideo(ctx context.Context, actorID, videoID string) (*model.VideoDetail, error) {
	if !utils.ValidID(videoID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid videoId format")
	}

	video, err := service.videos.GetVideo(ctx, videoID)
	if database.IsNotFound(err) {
		return nil, errVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	if !video.VisibleTo(actorID) {
		return nil, errVideoNotFound
	}

	likesCount, err := service.likes.CountVideoLikes(ctx, videoID)
	if err != nil {
		return nil, err
	}
	comments, err := service.comments.ListVideoComments(ctx, videoID)
	if err != nil {
		return nil, err
	}
	owners, err := resolveOwners(ctx, service.users, compose.DistinctIDs(comments, func(c *model.Comment) string { return c.OwnerID }))
	if err != nil {
		return nil, err
	}

	if err := service.videos.IncrViews(ctx, videoID); err != nil {
		hlog.CtxErrorf(ctx, "increment views of video %s failed: %v", videoID, err)
		return nil, err
	}

	return composeVideoDetail(video, likesCount, comments, owners), nil
}

// composeVideoDetail 内存中合并评论和评论者, 找不到的评论者为nil
func composeVideoDetail(video *model.Video, likesCount int64, comments []*model.Comment, owners map[string]*model.UserSummary) *model.VideoDetail {
	views := make([]*model.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, &model.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			Owner:     owners[c.OwnerID],
			CreatedAt: c.CreatedAt,
		})
	}
	return &model.VideoDetail{
		ID:          video.ID,
		VideoFile:   video.VideoFile,
		Owner:       video.OwnerID,
		Thumbnail:   video.Thumbnail,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
		Views:       video.Views + 1,
		LikesCount:  likesCount,
		Comments:    views,
		IsPublished: video.IsPublished,
	}
}
