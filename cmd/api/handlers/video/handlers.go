package handlers

import (
	"context"

	"vidhub.com/cmd/model"
	"vidhub.com/cmd/video/service"
)

// VideoService 视频相关操作
type VideoService interface {
	PublishVideo(ctx context.Context, actorID string, req *service.PublishRequest) (*model.Video, error)
	GetVideo(ctx context.Context, actorID, videoID string) (*model.VideoDetail, error)
	UpdateVideo(ctx context.Context, actorID, videoID string, req *service.UpdateRequest) (*model.Video, error)
	DeleteVideo(ctx context.Context, actorID, videoID string) error
	TogglePublishStatus(ctx context.Context, actorID, videoID string) (*model.PublishStatus, string, error)
}

// PlaylistService 播放列表相关操作
type PlaylistService interface {
	CreatePlaylist(ctx context.Context, actorID, name, description string) (*model.PlaylistView, error)
	GetPlaylist(ctx context.Context, playlistID string) (*model.PlaylistView, error)
	ListUserPlaylists(ctx context.Context, userID string) ([]*model.PlaylistView, error)
	AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*model.PlaylistMutation, error)
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*model.PlaylistMutation, error)
	UpdatePlaylist(ctx context.Context, actorID, playlistID, name, description string) (*model.PlaylistView, error)
	DeletePlaylist(ctx context.Context, actorID, playlistID string) error
}

// SearchService 视频和频道搜索
type SearchService interface {
	Search(ctx context.Context, q string) (*service.SearchResult, error)
}

type Handler struct {
	videos    VideoService
	playlists PlaylistService
	search    SearchService
	uploadDir string
}

func New(videos VideoService, playlists PlaylistService, search SearchService, uploadDir string) *Handler {
	return &Handler{videos: videos, playlists: playlists, search: search, uploadDir: uploadDir}
}

type PublishParam struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type UpdateParam struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

type PlaylistParam struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}

type SearchParam struct {
	Q string `query:"q"`
}
