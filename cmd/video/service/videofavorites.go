package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/compose"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/guard"
	"vidhub.com/pkg/utils"
)

// PlaylistService 播放列表及其成员管理
type PlaylistService struct {
	playlists PlaylistStore
	videos    VideoStore
	users     UserReader
}

func NewPlaylistService(playlists PlaylistStore, videos VideoStore, users UserReader) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users}
}

func validatePlaylistFields(name, description string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return errno.InvalidInputErr.WithMessage("All fields are required")
	}
	return nil
}

// CreatePlaylist 创建空的播放列表
func (s *PlaylistService) CreatePlaylist(ctx context.Context, actorID, name, description string) (*model.PlaylistView, error) {
	if err := validatePlaylistFields(name, description); err != nil {
		return nil, err
	}
	if actorID == "" {
		return nil, errno.UnauthorizedErr
	}
	playlist := &model.Playlist{
		ID:          utils.NewID(),
		OwnerID:     actorID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Videos:      []string{},
	}
	if err := s.playlists.CreatePlaylist(ctx, playlist); err != nil {
		hlog.CtxErrorf(ctx, "create playlist failed: %v", err)
		return nil, err
	}
	return s.composeOne(ctx, playlist)
}

// GetPlaylist 播放列表视图, 只包含已发布的视频
func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistID string) (*model.PlaylistView, error) {
	if !utils.ValidID(playlistID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid playlistId format")
	}
	playlist, err := s.loadPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return s.composeOne(ctx, playlist)
}

// ListUserPlaylists 用户创建的全部播放列表
func (s *PlaylistService) ListUserPlaylists(ctx context.Context, userID string) ([]*model.PlaylistView, error) {
	if !utils.ValidID(userID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid or missing userId")
	}
	playlists, err := s.playlists.ListPlaylistsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, playlists)
}

// AddVideo 添加视频, 已经在列表中时返回 already_present 而不是错误
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*model.PlaylistMutation, error) {
	if !utils.ValidID(playlistID) || !utils.ValidID(videoID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid PlaylistId or VideoId format")
	}
	playlist, err := s.ownedPlaylist(ctx, actorID, playlistID, "You are not authorized to add video to this playlist")
	if err != nil {
		return nil, err
	}

	status := model.MembershipAdded
	present, err := s.playlists.HasVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if present {
		status = model.MembershipAlreadyPresent
	} else {
		if _, err := s.videos.GetVideo(ctx, videoID); err != nil {
			if database.IsNotFound(err) {
				return nil, errno.NotFoundErr.WithMessage("Video not found")
			}
			return nil, err
		}
		err = s.playlists.AddVideo(ctx, playlistID, videoID)
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			status = model.MembershipAlreadyPresent
		case err != nil:
			hlog.CtxErrorf(ctx, "add video %s to playlist %s failed: %v", videoID, playlistID, err)
			return nil, err
		}
	}

	return s.mutation(ctx, status, playlist.ID)
}

// RemoveVideo 从播放列表移除视频
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*model.PlaylistMutation, error) {
	if !utils.ValidID(playlistID) || !utils.ValidID(videoID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid ID format")
	}
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID, "You are not authorized to modify this playlist"); err != nil {
		return nil, err
	}
	removed, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		hlog.CtxErrorf(ctx, "remove video %s from playlist %s failed: %v", videoID, playlistID, err)
		return nil, err
	}
	if !removed {
		return nil, errno.NotFoundErr.WithMessage("Video not found in the playlist")
	}
	return s.mutation(ctx, model.MembershipRemoved, playlistID)
}

// UpdatePlaylist 修改名称和描述
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, actorID, playlistID, name, description string) (*model.PlaylistView, error) {
	if err := validatePlaylistFields(name, description); err != nil {
		return nil, err
	}
	if !utils.ValidID(playlistID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid playlistId format")
	}
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID, "You are not authorized to update playlist"); err != nil {
		return nil, err
	}
	if err := s.playlists.UpdatePlaylist(ctx, playlistID, strings.TrimSpace(name), strings.TrimSpace(description)); err != nil {
		hlog.CtxErrorf(ctx, "update playlist %s failed: %v", playlistID, err)
		return nil, err
	}
	return s.GetPlaylist(ctx, playlistID)
}

// DeletePlaylist 删除播放列表, 列表中的视频不受影响
func (s *PlaylistService) DeletePlaylist(ctx context.Context, actorID, playlistID string) error {
	if !utils.ValidID(playlistID) {
		return errno.InvalidInputErr.WithMessage("Invalid playlistId format")
	}
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID, "You are not authorized to delete playlist"); err != nil {
		return err
	}
	if err := s.playlists.DeletePlaylist(ctx, playlistID); err != nil {
		hlog.CtxErrorf(ctx, "delete playlist %s failed: %v", playlistID, err)
		return err
	}
	return nil
}

func (s *PlaylistService) loadPlaylist(ctx context.Context, playlistID string) (*model.Playlist, error) {
	playlist, err := s.playlists.GetPlaylist(ctx, playlistID)
	if database.IsNotFound(err) {
		return nil, errno.NotFoundErr.WithMessage("Playlist not found")
	}
	return playlist, err
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, actorID, playlistID, forbidden string) (*model.Playlist, error) {
	if actorID == "" {
		return nil, errno.UnauthorizedErr
	}
	playlist, err := s.loadPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := guard.Authorize(actorID, playlist.OwnerID); err != nil {
		return nil, errno.ForbiddenErr.WithMessage(forbidden)
	}
	return playlist, nil
}

func (s *PlaylistService) mutation(ctx context.Context, status, playlistID string) (*model.PlaylistMutation, error) {
	view, err := s.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return &model.PlaylistMutation{Status: status, Playlist: view}, nil
}

func (s *PlaylistService) composeOne(ctx context.Context, playlist *model.Playlist) (*model.PlaylistView, error) {
	views, err := s.compose(ctx, []*model.Playlist{playlist})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// compose 所有播放列表的视频一次批量查询, 视频作者和列表作者一次批量查询
// 未发布或已删除的视频直接丢弃
func (s *PlaylistService) compose(ctx context.Context, playlists []*model.Playlist) ([]*model.PlaylistView, error) {
	views := make([]*model.PlaylistView, 0, len(playlists))
	if len(playlists) == 0 {
		return views, nil
	}

	var videoIDs []string
	for _, p := range playlists {
		videoIDs = append(videoIDs, p.Videos...)
	}
	videoIDs = compose.DistinctIDs(videoIDs, func(id string) string { return id })
	videos := make(map[string]*model.Video)
	if len(videoIDs) > 0 {
		found, err := s.videos.MGetVideos(ctx, videoIDs)
		if err != nil {
			return nil, err
		}
		for _, v := range found {
			if v.IsPublished {
				videos[v.ID] = v
			}
		}
	}

	ownerIDs := make([]string, 0, len(playlists)+len(videos))
	for _, p := range playlists {
		ownerIDs = append(ownerIDs, p.OwnerID)
	}
	for _, id := range videoIDs {
		if v, ok := videos[id]; ok {
			ownerIDs = append(ownerIDs, v.OwnerID)
		}
	}
	owners, err := resolveOwners(ctx, s.users, compose.DistinctIDs(ownerIDs, func(id string) string { return id }))
	if err != nil {
		return nil, err
	}

	for _, p := range playlists {
		summaries := make([]*model.VideoSummary, 0, len(p.Videos))
		for _, id := range p.Videos {
			v, ok := videos[id]
			if !ok {
				continue
			}
			summaries = append(summaries, &model.VideoSummary{
				ID:        v.ID,
				Title:     v.Title,
				Thumbnail: v.Thumbnail,
				Duration:  v.Duration,
				Views:     v.Views,
				Owner:     owners[v.OwnerID],
			})
		}
		views = append(views, &model.PlaylistView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Owner:       owners[p.OwnerID],
			Videos:      summaries,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return views, nil
}
