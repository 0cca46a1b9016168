package model

import "time"

type Playlist struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string    `gorm:"size:36;not null;index" json:"owner"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Videos      []string  `gorm:"-" json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistItem 播放列表成员, 复合主键保证集合语义
type PlaylistItem struct {
	PlaylistID string    `gorm:"primaryKey;size:36"`
	VideoID    string    `gorm:"primaryKey;size:36;index"`
	CreatedAt  time.Time
}

func (PlaylistItem) TableName() string {
	return "playlist_videos"
}

// PlaylistView 填充了视频和作者信息的播放列表
type PlaylistView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Owner       *UserSummary    `json:"owner"`
	Videos      []*VideoSummary `json:"videos"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// 添加视频到播放列表的结果状态
const (
	MembershipAdded          = "added"
	MembershipAlreadyPresent = "already_present"
	MembershipRemoved        = "removed"
)

// PlaylistMutation 成员变更后的播放列表视图
type PlaylistMutation struct {
	Status   string        `json:"status"`
	Playlist *PlaylistView `json:"playlist"`
}
