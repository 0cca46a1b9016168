package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/mq"
)

// VideoService 视频发布, 详情和维护
type VideoService struct {
	videos   VideoStore
	users    UserReader
	likes    LikeCounter
	comments CommentLister
	storage  MediaStorage
	probe    DurationProber
	events   mq.EventPublisher
}

type Option func(*VideoService)

// WithProber 替换默认的ffprobe时长探测
func WithProber(probe DurationProber) Option {
	return func(s *VideoService) {
		s.probe = probe
	}
}

// WithEvents 设置事件发布者, 默认丢弃
func WithEvents(events mq.EventPublisher) Option {
	return func(s *VideoService) {
		s.events = events
	}
}

func NewVideoService(videos VideoStore, users UserReader, likes LikeCounter, comments CommentLister, storage MediaStorage, opts ...Option) *VideoService {
	s := &VideoService{
		videos:   videos,
		users:    users,
		likes:    likes,
		comments: comments,
		storage:  storage,
		probe:    func(string) (float64, error) { return 0, nil },
		events:   mq.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publishEvent 事件发布失败只记录日志, 不影响请求结果
func (service *VideoService) publishEvent(ctx context.Context, eventType, actorID string, video *model.Video) {
	event := mq.NewVideoEvent(eventType, actorID, video)
	if err := service.events.PublishVideoEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish %s event for video %s failed: %v", eventType, video.ID, err)
	}
}

// removeObject 删除对象存储中的文件, 失败只记录日志
func (service *VideoService) removeObject(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := service.storage.Delete(ctx, url); err != nil {
		hlog.CtxErrorf(ctx, "delete object %s failed: %v", url, err)
	}
}
