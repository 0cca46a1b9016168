package db

import (
	"context"

	"gorm.io/gorm"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/database"
)

type PlaylistDB struct {
	conn *database.Conn
}

func NewPlaylistDB(conn *database.Conn) *PlaylistDB {
	return &PlaylistDB{conn: conn}
}

func (d *PlaylistDB) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	return d.conn.Execute(ctx, "CreatePlaylist", func(tx *gorm.DB) error {
		return tx.Create(playlist).Error
	})
}

// GetPlaylist 查询播放列表及其视频id
func (d *PlaylistDB) GetPlaylist(ctx context.Context, id string) (*model.Playlist, error) {
	playlist := new(model.Playlist)
	err := d.conn.Execute(ctx, "GetPlaylist", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(playlist).Error
	})
	if err != nil {
		return nil, err
	}
	members, err := d.listVideoIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	playlist.Videos = members[id]
	if playlist.Videos == nil {
		playlist.Videos = []string{}
	}
	return playlist, nil
}

// ListPlaylistsByOwner 用户的全部播放列表, 视频id一次查询取回
func (d *PlaylistDB) ListPlaylistsByOwner(ctx context.Context, ownerID string) ([]*model.Playlist, error) {
	playlists := make([]*model.Playlist, 0)
	err := d.conn.Execute(ctx, "ListPlaylistsByOwner", func(tx *gorm.DB) error {
		return tx.Where("owner_id = ?", ownerID).Order("created_at").Find(&playlists).Error
	})
	if err != nil {
		return nil, err
	}
	if len(playlists) == 0 {
		return playlists, nil
	}

	ids := make([]string, 0, len(playlists))
	for _, p := range playlists {
		ids = append(ids, p.ID)
	}
	members, err := d.listVideoIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range playlists {
		p.Videos = members[p.ID]
		if p.Videos == nil {
			p.Videos = []string{}
		}
	}
	return playlists, nil
}

func (d *PlaylistDB) listVideoIDs(ctx context.Context, playlistIDs []string) (map[string][]string, error) {
	items := make([]*model.PlaylistItem, 0)
	err := d.conn.Execute(ctx, "ListPlaylistItems", func(tx *gorm.DB) error {
		return tx.Where("playlist_id IN ?", playlistIDs).Order("created_at").Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	members := make(map[string][]string, len(playlistIDs))
	for _, item := range items {
		members[item.PlaylistID] = append(members[item.PlaylistID], item.VideoID)
	}
	return members, nil
}

func (d *PlaylistDB) UpdatePlaylist(ctx context.Context, id, name, description string) error {
	return d.conn.Execute(ctx, "UpdatePlaylist", func(tx *gorm.DB) error {
		return tx.Model(&model.Playlist{}).Where("id = ?", id).
			Updates(map[string]interface{}{"name": name, "description": description}).Error
	})
}

// DeletePlaylist 先删除成员关系再删除播放列表
func (d *PlaylistDB) DeletePlaylist(ctx context.Context, id string) error {
	err := d.conn.Execute(ctx, "DeletePlaylistItems", func(tx *gorm.DB) error {
		return tx.Where("playlist_id = ?", id).Delete(&model.PlaylistItem{}).Error
	})
	if err != nil {
		return err
	}
	return d.conn.Execute(ctx, "DeletePlaylist", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&model.Playlist{}).Error
	})
}

func (d *PlaylistDB) HasVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	var count int64
	err := d.conn.Execute(ctx, "HasPlaylistVideo", func(tx *gorm.DB) error {
		return tx.Model(&model.PlaylistItem{}).
			Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
			Count(&count).Error
	})
	return count > 0, err
}

// AddVideo 重复添加返回 gorm.ErrDuplicatedKey
func (d *PlaylistDB) AddVideo(ctx context.Context, playlistID, videoID string) error {
	return d.conn.Execute(ctx, "AddPlaylistVideo", func(tx *gorm.DB) error {
		return tx.Create(&model.PlaylistItem{PlaylistID: playlistID, VideoID: videoID}).Error
	})
}

// RemoveVideo 返回是否真的删除了成员
func (d *PlaylistDB) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	var affected int64
	err := d.conn.Execute(ctx, "RemovePlaylistVideo", func(tx *gorm.DB) error {
		res := tx.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).Delete(&model.PlaylistItem{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}
