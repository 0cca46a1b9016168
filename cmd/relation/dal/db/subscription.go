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

// SubscriptionDB 订阅关系, 实现 toggle.Store
// ActorID为订阅者, TargetID为频道
type SubscriptionDB struct {
	conn *database.Conn
}

func NewSubscriptionDB(conn *database.Conn) *SubscriptionDB {
	return &SubscriptionDB{conn: conn}
}

var _ toggle.Store = (*SubscriptionDB)(nil)

func (d *SubscriptionDB) Exists(ctx context.Context, key toggle.Key) (bool, error) {
	var count int64
	err := d.conn.Execute(ctx, "ExistsSubscription", func(tx *gorm.DB) error {
		return tx.Model(&model.Subscription{}).
			Where("subscriber_id = ? AND channel_id = ?", key.ActorID, key.TargetID).
			Count(&count).Error
	})
	return count > 0, err
}

func (d *SubscriptionDB) Insert(ctx context.Context, key toggle.Key) error {
	err := d.conn.Execute(ctx, "CreateSubscription", func(tx *gorm.DB) error {
		return tx.Create(&model.Subscription{
			ID:           uuid.NewString(),
			SubscriberID: key.ActorID,
			ChannelID:    key.TargetID,
		}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return toggle.ErrDuplicate
	}
	return err
}

func (d *SubscriptionDB) Remove(ctx context.Context, key toggle.Key) (bool, error) {
	var affected int64
	err := d.conn.Execute(ctx, "DeleteSubscription", func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", key.ActorID, key.TargetID).Delete(&model.Subscription{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

// ListSubscriberIDs 订阅了该频道的用户
func (d *SubscriptionDB) ListSubscriberIDs(ctx context.Context, channelID string) ([]string, error) {
	ids := make([]string, 0)
	err := d.conn.Execute(ctx, "ListSubscriberIDs", func(tx *gorm.DB) error {
		return tx.Model(&model.Subscription{}).
			Where("channel_id = ?", channelID).
			Order("created_at").
			Pluck("subscriber_id", &ids).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListChannelIDs 该用户订阅的频道
func (d *SubscriptionDB) ListChannelIDs(ctx context.Context, subscriberID string) ([]string, error) {
	ids := make([]string, 0)
	err := d.conn.Execute(ctx, "ListChannelIDs", func(tx *gorm.DB) error {
		return tx.Model(&model.Subscription{}).
			Where("subscriber_id = ?", subscriberID).
			Order("created_at").
			Pluck("channel_id", &ids).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
