package model

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	VideoID   string    `gorm:"size:36;not null;index" json:"video"`
	OwnerID   string    `gorm:"size:36;not null;index" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentView 合并了评论者信息的评论, 评论者无法解析时Owner为nil
type CommentView struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	Owner     *UserSummary `json:"owner"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Like 视频点赞和评论点赞共用一张表, VideoID和CommentID有且只有一个非空
// 唯一索引保证 (liked_by, video_id) 和 (liked_by, comment_id) 各自最多一行, NULL不参与唯一性比较
type Like struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	VideoID   *string   `gorm:"size:36;uniqueIndex:idx_like_video,priority:2;index:idx_like_video_target" json:"video,omitempty"`
	CommentID *string   `gorm:"size:36;uniqueIndex:idx_like_comment,priority:2;index:idx_like_comment_target" json:"comment,omitempty"`
	LikedBy   string    `gorm:"size:36;not null;uniqueIndex:idx_like_video,priority:1;uniqueIndex:idx_like_comment,priority:1" json:"likedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
