package service

import (
	"context"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/toggle"
	"vidhub.com/pkg/utils"
)

// SubscriptionStore 订阅关系存储
type SubscriptionStore interface {
	toggle.Store
	ListSubscriberIDs(ctx context.Context, channelID string) ([]string, error)
	ListChannelIDs(ctx context.Context, subscriberID string) ([]string, error)
}

// UserReader 用户查询
type UserReader interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	MGetUsers(ctx context.Context, ids []string) ([]*model.User, error)
}

type RelationService struct {
	engine        *toggle.Engine
	subscriptions SubscriptionStore
	users         UserReader
}

// NewRelationService engine需要已注册 Subscription
func NewRelationService(engine *toggle.Engine, subscriptions SubscriptionStore, users UserReader) *RelationService {
	return &RelationService{
		engine:        engine,
		subscriptions: subscriptions,
		users:         users,
	}
}

// ToggleSubscription 订阅或取消订阅频道, 不允许订阅自己
func (s *RelationService) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (toggle.State, error) {
	if !utils.ValidID(channelID) {
		return "", errno.InvalidInputErr.WithMessage("Invalid channelId format")
	}
	key := toggle.Key{Kind: toggle.Subscription, ActorID: subscriberID, TargetID: channelID}
	return s.engine.Toggle(ctx, key, func(ctx context.Context) error {
		_, err := s.users.GetUser(ctx, channelID)
		if database.IsNotFound(err) {
			return errno.NotFoundErr.WithMessage("Channel not found")
		}
		return err
	})
}
