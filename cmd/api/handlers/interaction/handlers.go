package handlers

import (
	"context"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/toggle"
)

// LikeService 点赞相关操作
type LikeService interface {
	ToggleVideoLike(ctx context.Context, actorID, videoID string) (toggle.State, error)
	ToggleCommentLike(ctx context.Context, actorID, commentID string) (toggle.State, error)
	ListLikedVideos(ctx context.Context, actorID string) ([]*model.Video, error)
}

// CommentService 评论相关操作
type CommentService interface {
	CreateComment(ctx context.Context, actorID, videoID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, actorID, commentID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID string) error
}

type Handler struct {
	likes    LikeService
	comments CommentService
}

func New(likes LikeService, comments CommentService) *Handler {
	return &Handler{likes: likes, comments: comments}
}

type CommentParam struct {
	Content string `json:"content" form:"content"`
}

// ToggleResult 切换操作的结果
type ToggleResult struct {
	Status toggle.State `json:"status"`
}
