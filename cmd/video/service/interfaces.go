package service

import (
	"context"

	"vidhub.com/cmd/model"
)

// VideoStore 视频存储
type VideoStore interface {
	CreateVideo(ctx context.Context, video *model.Video) error
	GetVideo(ctx context.Context, id string) (*model.Video, error)
	MGetVideos(ctx context.Context, ids []string) ([]*model.Video, error)
	UpdateVideo(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteVideo(ctx context.Context, id string) error
	IncrViews(ctx context.Context, id string) error
	FlipPublished(ctx context.Context, id string) error
}

// PlaylistStore 播放列表存储
type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	GetPlaylist(ctx context.Context, id string) (*model.Playlist, error)
	ListPlaylistsByOwner(ctx context.Context, ownerID string) ([]*model.Playlist, error)
	UpdatePlaylist(ctx context.Context, id, name, description string) error
	DeletePlaylist(ctx context.Context, id string) error
	HasVideo(ctx context.Context, playlistID, videoID string) (bool, error)
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error)
}

// UserReader 用户查询
type UserReader interface {
	MGetUsers(ctx context.Context, ids []string) ([]*model.User, error)
	SearchUsers(ctx context.Context, q string) ([]*model.User, error)
}

// LikeCounter 点赞计数, 读时统计
type LikeCounter interface {
	CountVideoLikes(ctx context.Context, videoID string) (int64, error)
	MCountVideoLikes(ctx context.Context, videoIDs []string) (map[string]int64, error)
}

// CommentLister 视频评论查询
type CommentLister interface {
	ListVideoComments(ctx context.Context, videoID string) ([]*model.Comment, error)
}

// MediaStorage 对象存储
type MediaStorage interface {
	Upload(ctx context.Context, localPath, prefix string) (string, error)
	Delete(ctx context.Context, url string) error
}

// DurationProber 读取媒体时长
type DurationProber func(path string) (float64, error)

// VideoMatcher 搜索后端, 返回已发布且标题或描述包含q的视频
type VideoMatcher interface {
	MatchVideos(ctx context.Context, q string) ([]*model.Video, error)
}

// VideoIDMatcher 只返回视频id的外部索引
type VideoIDMatcher interface {
	MatchVideoIDs(ctx context.Context, q string) ([]string, error)
}
