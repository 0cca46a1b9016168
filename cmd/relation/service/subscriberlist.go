package service

import (
	"context"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/compose"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/utils"
)

// ListSubscribers 频道的订阅者, 一次关系查询加一次批量用户查询
func (s *RelationService) ListSubscribers(ctx context.Context, channelID string) (*model.SubscriberList, error) {
	if !utils.ValidID(channelID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid channelId format")
	}
	ids, err := s.subscriptions.ListSubscriberIDs(ctx, channelID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &model.SubscriberList{Count: len(summaries), Subscribers: summaries}, nil
}

// ListSubscribedChannels 用户订阅的频道
func (s *RelationService) ListSubscribedChannels(ctx context.Context, subscriberID string) (*model.ChannelList, error) {
	if !utils.ValidID(subscriberID) {
		return nil, errno.InvalidInputErr.WithMessage("Invalid subscriberId format")
	}
	ids, err := s.subscriptions.ListChannelIDs(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &model.ChannelList{Count: len(summaries), Channels: summaries}, nil
}

// summaries 按关系顺序输出用户摘要, 已不存在的用户跳过
func (s *RelationService) summaries(ctx context.Context, ids []string) ([]*model.UserSummary, error) {
	users, err := s.users.MGetUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	index := compose.IndexBy(users, func(u *model.User) string { return u.ID })
	out := make([]*model.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := index[id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out, nil
}
