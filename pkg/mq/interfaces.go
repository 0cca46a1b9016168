package mq

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// EventPublisher 事件发布者接口
type EventPublisher interface {
	PublishVideoEvent(ctx context.Context, event *VideoEvent) error
}

// VideoEventHandler 事件消费者接口
type VideoEventHandler interface {
	HandleVideoEvent(ctx context.Context, event *VideoEvent) error
}

// 确保Producer实现EventPublisher接口
var _ EventPublisher = (*Producer)(nil)

// NopPublisher 未配置消息队列时使用
type NopPublisher struct{}

func (NopPublisher) PublishVideoEvent(ctx context.Context, event *VideoEvent) error {
	hlog.CtxDebugf(ctx, "message queue disabled, drop event %s %s", event.Type, event.EventID)
	return nil
}
