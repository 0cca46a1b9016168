package model

import "time"

type Video struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string    `gorm:"size:36;not null;index" json:"owner"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoFile   string    `gorm:"size:512;not null" json:"videoFile"`
	Thumbnail   string    `gorm:"size:512;not null" json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `gorm:"not null" json:"views"`
	IsPublished bool      `gorm:"not null;index" json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Video) TableName() string {
	return "videos"
}

// VisibleTo 未发布的视频只对作者可见
func (v *Video) VisibleTo(actorID string) bool {
	return v.IsPublished || (actorID != "" && v.OwnerID == actorID)
}

// VideoSummary 播放列表中的视频投影
type VideoSummary struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Thumbnail string       `json:"thumbnail"`
	Duration  float64      `json:"duration"`
	Views     int64        `json:"views"`
	Owner     *UserSummary `json:"owner"`
}

// VideoDetail 视频详情聚合视图
type VideoDetail struct {
	ID          string         `json:"id"`
	VideoFile   string         `json:"videoFile"`
	Owner       string         `json:"owner"`
	Thumbnail   string         `json:"thumbnail"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Duration    float64        `json:"duration"`
	Views       int64          `json:"views"`
	LikesCount  int64          `json:"likesCount"`
	Comments    []*CommentView `json:"comments"`
	IsPublished bool           `json:"isPublished"`
}

// SearchVideo 搜索结果中的视频投影
type SearchVideo struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	LikesCount  int64        `json:"likesCount"`
	Owner       *UserSummary `json:"owner"`
}

// PublishStatus 切换发布状态的返回
type PublishStatus struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	IsPublished bool      `json:"isPublished"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
