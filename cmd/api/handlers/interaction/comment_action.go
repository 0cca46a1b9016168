package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"vidhub.com/cmd/api/handlers/response"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/jwt"
)

func (h *Handler) CreateComment(ctx context.Context, c *app.RequestContext) {
	var param CommentParam
	if err := c.Bind(&param); err != nil {
		response.Fail(ctx, c, "CreateComment", errno.InvalidInputErr.WithMessage("Invalid request body"))
		return
	}
	comment, err := h.comments.CreateComment(ctx, jwt.ActorID(c), c.Param("videoId"), param.Content)
	if err != nil {
		response.Fail(ctx, c, "CreateComment", err)
		return
	}
	c.JSON(consts.StatusCreated, response.Response{
		Code:    errno.SuccessCode,
		Message: "Comment added successfully",
		Data:    comment,
	})
}

func (h *Handler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	var param CommentParam
	if err := c.Bind(&param); err != nil {
		response.Fail(ctx, c, "UpdateComment", errno.InvalidInputErr.WithMessage("Invalid request body"))
		return
	}
	comment, err := h.comments.UpdateComment(ctx, jwt.ActorID(c), c.Param("commentId"), param.Content)
	if err != nil {
		response.Fail(ctx, c, "UpdateComment", err)
		return
	}
	response.Success(c, "Comment updated Successfully", comment)
}

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	if err := h.comments.DeleteComment(ctx, jwt.ActorID(c), c.Param("commentId")); err != nil {
		response.Fail(ctx, c, "DeleteComment", err)
		return
	}
	response.Success(c, "Comment deleted successfully", response.Empty)
}
