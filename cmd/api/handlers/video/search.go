package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"vidhub.com/cmd/api/handlers/response"
	"vidhub.com/pkg/errno"
)

func (h *Handler) Search(ctx context.Context, c *app.RequestContext) {
	var param SearchParam
	if err := c.BindQuery(&param); err != nil {
		response.Fail(ctx, c, "Search", errno.InvalidInputErr.WithMessage("Search query is missing"))
		return
	}
	result, err := h.search.Search(ctx, param.Q)
	if err != nil {
		response.Fail(ctx, c, "Search", err)
		return
	}
	response.Success(c, "Search results fetched successfully", result)
}
