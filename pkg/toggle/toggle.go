package toggle

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"vidhub.com/pkg/constants"
	"vidhub.com/pkg/errno"
)

// Kind 关系类型
type Kind int

const (
	VideoLike Kind = iota + 1
	CommentLike
	Subscription
)

func (k Kind) String() string {
	switch k {
	case VideoLike:
		return "video_like"
	case CommentLike:
		return "comment_like"
	case Subscription:
		return "subscription"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State 一次切换之后关系所处的状态
type State string

const (
	Added   State = "added"
	Removed State = "removed"
)

// Key 唯一确定一条关系
type Key struct {
	Kind     Kind
	ActorID  string
	TargetID string
}

func (k Key) lockName() string {
	return constants.ToggleLockPrefix + k.Kind.String() + ":" + k.ActorID + ":" + k.TargetID
}

// ErrDuplicate 插入时命中唯一索引, Store实现需要把驱动层的重复键错误转换成它
var ErrDuplicate = errors.New("relation already exists")

// Store 关系存储, 按 (ActorID, TargetID) 操作
type Store interface {
	Exists(ctx context.Context, key Key) (bool, error)
	Insert(ctx context.Context, key Key) error
	// Remove 返回是否真的删除了记录
	Remove(ctx context.Context, key Key) (bool, error)
}

// Locker 分布式锁, 获取失败时调用方降级为无锁执行
type Locker interface {
	Lock(ctx context.Context, name string) (unlock func(), err error)
}

// Guard 仅在新增关系前执行, 用于校验目标是否存在
type Guard func(ctx context.Context) error

type Engine struct {
	stores map[Kind]Store
	locker Locker
}

// NewEngine locker可以为nil, 此时只依赖唯一索引保证正确性
func NewEngine(locker Locker) *Engine {
	return &Engine{
		stores: make(map[Kind]Store),
		locker: locker,
	}
}

func (e *Engine) Register(kind Kind, store Store) *Engine {
	e.stores[kind] = store
	return e
}

// Toggle 关系存在则删除, 不存在则新增
// 并发删除时另一方已删除仍返回Removed, 并发新增时命中唯一索引仍返回Added
func (e *Engine) Toggle(ctx context.Context, key Key, beforeAdd Guard) (State, error) {
	if key.ActorID == "" {
		return "", errno.UnauthorizedErr
	}
	if key.TargetID == "" {
		return "", errno.InvalidInputErr.WithMessage("target id is required")
	}
	if key.Kind == Subscription && key.ActorID == key.TargetID {
		return "", errno.InvalidInputErr.WithMessage("You cannot subscribe to yourself")
	}

	store, ok := e.stores[key.Kind]
	if !ok {
		return "", errors.Errorf("no store registered for %s", key.Kind)
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, key.lockName())
		if err != nil {
			hlog.CtxWarnf(ctx, "toggle lock %s unavailable, continuing without it: %v", key.lockName(), err)
		} else {
			defer unlock()
		}
	}

	exists, err := store.Exists(ctx, key)
	if err != nil {
		return "", err
	}

	if exists {
		removed, err := store.Remove(ctx, key)
		if err != nil {
			return "", err
		}
		if !removed {
			hlog.CtxDebugf(ctx, "%s %s->%s already removed by a concurrent toggle", key.Kind, key.ActorID, key.TargetID)
		}
		return Removed, nil
	}

	if beforeAdd != nil {
		if err := beforeAdd(ctx); err != nil {
			return "", err
		}
	}

	if err := store.Insert(ctx, key); err != nil {
		if errors.Is(err, ErrDuplicate) {
			hlog.CtxDebugf(ctx, "%s %s->%s already added by a concurrent toggle", key.Kind, key.ActorID, key.TargetID)
			return Added, nil
		}
		return "", err
	}
	return Added, nil
}
