package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"vidhub.com/cmd/api/handlers/response"
	"vidhub.com/pkg/jwt"
	"vidhub.com/pkg/toggle"
)

func (h *Handler) ToggleVideoLike(ctx context.Context, c *app.RequestContext) {
	state, err := h.likes.ToggleVideoLike(ctx, jwt.ActorID(c), c.Param("videoId"))
	if err != nil {
		response.Fail(ctx, c, "ToggleVideoLike", err)
		return
	}
	message := "Video is liked successfully"
	if state == toggle.Removed {
		message = "Video unliked successfully"
	}
	response.Success(c, message, ToggleResult{Status: state})
}

func (h *Handler) ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	state, err := h.likes.ToggleCommentLike(ctx, jwt.ActorID(c), c.Param("commentId"))
	if err != nil {
		response.Fail(ctx, c, "ToggleCommentLike", err)
		return
	}
	message := "Comment is liked successfully"
	if state == toggle.Removed {
		message = "Comment unliked successfully"
	}
	response.Success(c, message, ToggleResult{Status: state})
}

func (h *Handler) LikedVideos(ctx context.Context, c *app.RequestContext) {
	videos, err := h.likes.ListLikedVideos(ctx, jwt.ActorID(c))
	if err != nil {
		response.Fail(ctx, c, "LikedVideos", err)
		return
	}
	response.Success(c, "Liked videos fetched successfully", videos)
}
