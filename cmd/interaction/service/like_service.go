package service

import (
	"context"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/compose"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/toggle"
	"vidhub.com/pkg/utils"
)

// LikeService 视频点赞和评论点赞
type LikeService struct {
	engine   *toggle.Engine
	likes    LikeStore
	videos   VideoReader
	comments CommentStore
}

// NewLikeService engine需要已注册 VideoLike 和 CommentLike
func NewLikeService(engine *toggle.Engine, likes LikeStore, videos VideoReader, comments CommentStore) *LikeService {
	return &LikeService{
		engine:   engine,
		likes:    likes,
		videos:   videos,
		comments: comments,
	}
}

// ToggleVideoLike 点赞或取消点赞视频
// 只在点赞时校验视频存在且对操作者可见, 已删除视频上的点赞仍然可以取消
func (service *LikeService) ToggleVideoLike(ctx context.Context, actorID, videoID string) (toggle.State, error) {
	if !utils.ValidID(videoID) {
		return "", errno.InvalidInputErr.WithMessage("Invalid videoId format")
	}
	key := toggle.Key{Kind: toggle.VideoLike, ActorID: actorID, TargetID: videoID}
	return service.engine.Toggle(ctx, key, func(ctx context.Context) error {
		video, err := service.videos.GetVideo(ctx, videoID)
		if database.IsNotFound(err) {
			return errno.NotFoundErr.WithMessage("Video not found")
		}
		if err != nil {
			return err
		}
		if !video.VisibleTo(actorID) {
			return errno.NotFoundErr.WithMessage("Video not found")
		}
		return nil
	})
}

// ToggleCommentLike 点赞或取消点赞评论
func (service *LikeService) ToggleCommentLike(ctx context.Context, actorID, commentID string) (toggle.State, error) {
	if !utils.ValidID(commentID) {
		return "", errno.InvalidInputErr.WithMessage("Invalid commentId format")
	}
	key := toggle.Key{Kind: toggle.CommentLike, ActorID: actorID, TargetID: commentID}
	return service.engine.Toggle(ctx, key, func(ctx context.Context) error {
		_, err := service.comments.GetComment(ctx, commentID)
		if database.IsNotFound(err) {
			return errno.NotFoundErr.WithMessage("Comment not found")
		}
		return err
	})
}

// ListLikedVideos 用户点赞过的视频, 按点赞先后排序
// 已删除的视频和他人未发布的视频不返回
func (service *LikeService) ListLikedVideos(ctx context.Context, actorID string) ([]*model.Video, error) {
	if actorID == "" {
		return nil, errno.UnauthorizedErr
	}
	ids, err := service.likes.ListLikedVideoIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	videos, err := service.videos.MGetVideos(ctx, ids)
	if err != nil {
		return nil, err
	}

	index := compose.IndexBy(videos, func(v *model.Video) string { return v.ID })
	liked := make([]*model.Video, 0, len(ids))
	for _, id := range ids {
		video, ok := index[id]
		if !ok || !video.VisibleTo(actorID) {
			continue
		}
		liked = append(liked, video)
	}
	return liked, nil
}
