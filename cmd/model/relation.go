package model

import "time"

// Subscription 订阅关系, (subscriber_id, channel_id) 唯一
type Subscription struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SubscriberID string    `gorm:"size:36;not null;uniqueIndex:idx_subscription_pair,priority:1" json:"subscriber"`
	ChannelID    string    `gorm:"size:36;not null;uniqueIndex:idx_subscription_pair,priority:2;index" json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// SubscriberList 频道的订阅者列表
type SubscriberList struct {
	Count       int            `json:"count"`
	Subscribers []*UserSummary `json:"subscribers"`
}

// ChannelList 用户订阅的频道列表
type ChannelList struct {
	Count    int            `json:"count"`
	Channels []*UserSummary `json:"channels"`
}
