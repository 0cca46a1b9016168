package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/guard"
	"vidhub.com/pkg/utils"
)

// Comment validation constants
const (
	MaxCommentLength = 500 // Maximum comment length in characters
)

type CommentService struct {
	comments CommentStore
	videos   VideoReader
}

func NewCommentService(comments CommentStore, videos VideoReader) *CommentService {
	return &CommentService{comments: comments, videos: videos}
}

// validateCommentContent validates comment content
func (service *CommentService) validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errno.InvalidInputErr.WithMessage("Please enter a comment")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return errno.InvalidInputErr.WithMessage("Comment too long, maximum 500 characters allowed")
	}
	return nil
}

// CreateComment 在可见的视频下发表评论
func (service *CommentService) CreateComment(ctx context.Context, actorID, videoID, content string) (*model.Comment, error) {
	if actorID == "" {
		return nil, errno.UnauthorizedErr
	}
	if !utils.ValidID(videoID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid videoId format")
	}
	if err := service.validateCommentContent(content); err != nil {
		return nil, err
	}

	video, err := service.videos.GetVideo(ctx, videoID)
	if database.IsNotFound(err) || (err == nil && !video.VisibleTo(actorID)) {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:      utils.NewID(),
		VideoID: videoID,
		OwnerID: actorID,
		Content: content,
	}
	if err := service.comments.CreateComment(ctx, comment); err != nil {
		hlog.CtxErrorf(ctx, "create comment on video %s failed: %v", videoID, err)
		return nil, err
	}
	return comment, nil
}

// UpdateComment 只有评论者可以修改
func (service *CommentService) UpdateComment(ctx context.Context, actorID, commentID, content string) (*model.Comment, error) {
	if !utils.ValidID(commentID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid comment Id")
	}
	if err := service.validateCommentContent(content); err != nil {
		return nil, err
	}
	comment, err := service.authorizedComment(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := service.comments.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return service.comments.GetComment(ctx, commentID)
}

// DeleteComment 只有评论者可以删除, 评论上的点赞保留
func (service *CommentService) DeleteComment(ctx context.Context, actorID, commentID string) error {
	if !utils.ValidID(commentID) {
		return errno.InvalidInputErr.WithMessage("Invalid comment Id")
	}
	if _, err := service.authorizedComment(ctx, actorID, commentID); err != nil {
		return err
	}
	return service.comments.DeleteComment(ctx, commentID)
}

func (service *CommentService) authorizedComment(ctx context.Context, actorID, commentID string) (*model.Comment, error) {
	if actorID == "" {
		return nil, errno.UnauthorizedErr
	}
	comment, err := service.comments.GetComment(ctx, commentID)
	if database.IsNotFound(err) {
		return nil, errno.NotFoundErr.WithMessage("Comment does not exist")
	}
	if err != nil {
		return nil, err
	}
	if err := guard.Authorize(actorID, comment.OwnerID); err != nil {
		return nil, errno.ForbiddenErr.WithMessage("You are not authorized to modify this comment")
	}
	return comment, nil
}
