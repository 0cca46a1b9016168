package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/toggle"
)

// LikeDB 视频点赞和评论点赞, 实现 toggle.Store
type LikeDB struct {
	conn *database.Conn
}

func NewLikeDB(conn *database.Conn) *LikeDB {
	return &LikeDB{conn: conn}
}

var _ toggle.Store = (*LikeDB)(nil)

func targetColumn(kind toggle.Kind) (string, error) {
	switch kind {
	case toggle.VideoLike:
		return "video_id", nil
	case toggle.CommentLike:
		return "comment_id", nil
	default:
		return "", errors.Errorf("like store does not handle %s", kind)
	}
}

func (d *LikeDB) Exists(ctx context.Context, key toggle.Key) (bool, error) {
	column, err := targetColumn(key.Kind)
	if err != nil {
		return false, err
	}
	var count int64
	err = d.conn.Execute(ctx, "ExistsLike", func(tx *gorm.DB) error {
		return tx.Model(&model.Like{}).
			Where("liked_by = ? AND "+column+" = ?", key.ActorID, key.TargetID).
			Count(&count).Error
	})
	return count > 0, err
}

func (d *LikeDB) Insert(ctx context.Context, key toggle.Key) error {
	like := &model.Like{ID: uuid.NewString(), LikedBy: key.ActorID}
	target := key.TargetID
	switch key.Kind {
	case toggle.VideoLike:
		like.VideoID = &target
	case toggle.CommentLike:
		like.CommentID = &target
	default:
		_, err := targetColumn(key.Kind)
		return err
	}

	err := d.conn.Execute(ctx, "InsertLike", func(tx *gorm.DB) error {
		return tx.Create(like).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return toggle.ErrDuplicate
	}
	return err
}

func (d *LikeDB) Remove(ctx context.Context, key toggle.Key) (bool, error) {
	column, err := targetColumn(key.Kind)
	if err != nil {
		return false, err
	}
	var affected int64
	err = d.conn.Execute(ctx, "RemoveLike", func(tx *gorm.DB) error {
		res := tx.Where("liked_by = ? AND "+column+" = ?", key.ActorID, key.TargetID).Delete(&model.Like{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (d *LikeDB) CountVideoLikes(ctx context.Context, videoID string) (int64, error) {
	var count int64
	err := d.conn.Execute(ctx, "CountVideoLikes", func(tx *gorm.DB) error {
		return tx.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	})
	return count, err
}

// MCountVideoLikes 批量统计点赞数, 没有点赞的视频不在结果中
func (d *LikeDB) MCountVideoLikes(ctx context.Context, videoIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		VideoID string
		Total   int64
	}
	err := d.conn.Execute(ctx, "MCountVideoLikes", func(tx *gorm.DB) error {
		return tx.Model(&model.Like{}).
			Select("video_id, COUNT(*) AS total").
			Where("video_id IN ?", videoIDs).
			Group("video_id").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.VideoID] = row.Total
	}
	return counts, nil
}

// ListLikedVideoIDs 用户点赞过的视频, 按点赞时间排序
func (d *LikeDB) ListLikedVideoIDs(ctx context.Context, actorID string) ([]string, error) {
	ids := make([]string, 0)
	err := d.conn.Execute(ctx, "ListLikedVideoIDs", func(tx *gorm.DB) error {
		return tx.Model(&model.Like{}).
			Where("liked_by = ? AND video_id IS NOT NULL", actorID).
			Order("created_at").
			Pluck("video_id", &ids).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
