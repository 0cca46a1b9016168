package db

import (
	"context"

	"gorm.io/gorm"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/database"
)

type VideoDB struct {
	conn *database.Conn
}

func NewVideoDB(conn *database.Conn) *VideoDB {
	return &VideoDB{conn: conn}
}

func (d *VideoDB) CreateVideo(ctx context.Context, video *model.Video) error {
	return d.conn.Execute(ctx, "CreateVideo", func(tx *gorm.DB) error {
		return tx.Create(video).Error
	})
}

func (d *VideoDB) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	video := new(model.Video)
	err := d.conn.Execute(ctx, "GetVideo", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(video).Error
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// MGetVideos 批量查询, 不存在的id直接忽略
func (d *VideoDB) MGetVideos(ctx context.Context, ids []string) ([]*model.Video, error) {
	videos := make([]*model.Video, 0, len(ids))
	if len(ids) == 0 {
		return videos, nil
	}
	err := d.conn.Execute(ctx, "MGetVideos", func(tx *gorm.DB) error {
		return tx.Where("id IN ?", ids).Find(&videos).Error
	})
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateVideo 只更新fields中给出的列
func (d *VideoDB) UpdateVideo(ctx context.Context, id string, fields map[string]interface{}) error {
	return d.conn.Execute(ctx, "UpdateVideo", func(tx *gorm.DB) error {
		return tx.Model(&model.Video{}).Where("id = ?", id).Updates(fields).Error
	})
}

func (d *VideoDB) DeleteVideo(ctx context.Context, id string) error {
	return d.conn.Execute(ctx, "DeleteVideo", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&model.Video{}).Error
	})
}

// IncrViews 原子地增加播放次数
func (d *VideoDB) IncrViews(ctx context.Context, id string) error {
	return d.conn.Execute(ctx, "IncrViews", func(tx *gorm.DB) error {
		return tx.Model(&model.Video{}).Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	})
}

// FlipPublished 原子地翻转发布状态
func (d *VideoDB) FlipPublished(ctx context.Context, id string) error {
	return d.conn.Execute(ctx, "FlipPublished", func(tx *gorm.DB) error {
		return tx.Model(&model.Video{}).Where("id = ?", id).
			Update("is_published", gorm.Expr("NOT is_published")).Error
	})
}

// SearchPublished 已发布且标题或描述包含q的视频, 大小写无关
func (d *VideoDB) SearchPublished(ctx context.Context, q string) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	pattern := database.ContainsPattern(q)
	err := d.conn.Execute(ctx, "SearchPublished", func(tx *gorm.DB) error {
		return tx.Where("is_published = ?", true).
			Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
			Order("created_at").
			Find(&videos).Error
	})
	if err != nil {
		return nil, err
	}
	return videos, nil
}
