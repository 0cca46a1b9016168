package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"vidhub.com/cmd/api/handlers/response"
	"vidhub.com/cmd/model"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/jwt"
)

func (h *Handler) CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	var param PlaylistParam
	if err := c.Bind(&param); err != nil {
		response.Fail(ctx, c, "CreatePlaylist", errno.InvalidInputErr.WithMessage("Invalid request body"))
		return
	}
	view, err := h.playlists.CreatePlaylist(ctx, jwt.ActorID(c), param.Name, param.Description)
	if err != nil {
		response.Fail(ctx, c, "CreatePlaylist", err)
		return
	}
	response.Success(c, "Playlist created successfully", view)
}

func (h *Handler) UserPlaylists(ctx context.Context, c *app.RequestContext) {
	views, err := h.playlists.ListUserPlaylists(ctx, c.Param("userId"))
	if err != nil {
		response.Fail(ctx, c, "UserPlaylists", err)
		return
	}
	response.Success(c, "User playlists fetched successfully", views)
}

func (h *Handler) GetPlaylist(ctx context.Context, c *app.RequestContext) {
	view, err := h.playlists.GetPlaylist(ctx, c.Param("playlistId"))
	if err != nil {
		response.Fail(ctx, c, "GetPlaylist", err)
		return
	}
	response.Success(c, "Playlist fetched successfully", view)
}

func (h *Handler) AddPlaylistVideo(ctx context.Context, c *app.RequestContext) {
	result, err := h.playlists.AddVideo(ctx, jwt.ActorID(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		response.Fail(ctx, c, "AddPlaylistVideo", err)
		return
	}
	message := "Video added successfully"
	if result.Status == model.MembershipAlreadyPresent {
		message = "Video already in playlist"
	}
	response.Success(c, message, result)
}

func (h *Handler) RemovePlaylistVideo(ctx context.Context, c *app.RequestContext) {
	result, err := h.playlists.RemoveVideo(ctx, jwt.ActorID(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		response.Fail(ctx, c, "RemovePlaylistVideo", err)
		return
	}
	response.Success(c, "Video removed successfully", result)
}

func (h *Handler) UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	var param PlaylistParam
	if err := c.Bind(&param); err != nil {
		response.Fail(ctx, c, "UpdatePlaylist", errno.InvalidInputErr.WithMessage("Invalid request body"))
		return
	}
	view, err := h.playlists.UpdatePlaylist(ctx, jwt.ActorID(c), c.Param("playlistId"), param.Name, param.Description)
	if err != nil {
		response.Fail(ctx, c, "UpdatePlaylist", err)
		return
	}
	response.Success(c, "Playlist updated successfully", view)
}

func (h *Handler) DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	if err := h.playlists.DeletePlaylist(ctx, jwt.ActorID(c), c.Param("playlistId")); err != nil {
		response.Fail(ctx, c, "DeletePlaylist", err)
		return
	}
	response.Success(c, "Playlist deleted successfully", response.Empty)
}
