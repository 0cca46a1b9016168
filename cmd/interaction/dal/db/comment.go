package db

import (
	"context"

	"gorm.io/gorm"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/database"
)

type CommentDB struct {
	conn *database.Conn
}

func NewCommentDB(conn *database.Conn) *CommentDB {
	return &CommentDB{conn: conn}
}

func (d *CommentDB) CreateComment(ctx context.Context, comment *model.Comment) error {
	return d.conn.Execute(ctx, "CreateComment", func(tx *gorm.DB) error {
		return tx.Create(comment).Error
	})
}

func (d *CommentDB) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	comment := new(model.Comment)
	err := d.conn.Execute(ctx, "GetComment", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(comment).Error
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (d *CommentDB) UpdateComment(ctx context.Context, comment *model.Comment) error {
	return d.conn.Execute(ctx, "UpdateComment", func(tx *gorm.DB) error {
		return tx.Model(comment).Update("content", comment.Content).Error
	})
}

func (d *CommentDB) DeleteComment(ctx context.Context, id string) error {
	return d.conn.Execute(ctx, "DeleteComment", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&model.Comment{}).Error
	})
}

// ListVideoComments 视频下的全部评论, 按发表时间排序
func (d *CommentDB) ListVideoComments(ctx context.Context, videoID string) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := d.conn.Execute(ctx, "ListVideoComments", func(tx *gorm.DB) error {
		return tx.Where("video_id = ?", videoID).Order("created_at").Find(&comments).Error
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}
