package service

import (
	"context"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/toggle"
)

// LikeStore 点赞关系存储
type LikeStore interface {
	toggle.Store
	ListLikedVideoIDs(ctx context.Context, actorID string) ([]string, error)
}

// CommentStore 评论存储
type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	UpdateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, id string) error
}

// VideoReader 视频查询
type VideoReader interface {
	GetVideo(ctx context.Context, id string) (*model.Video, error)
	MGetVideos(ctx context.Context, ids []string) ([]*model.Video, error)
}
