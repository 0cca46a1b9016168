package lock

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	goredislib "github.com/redis/go-redis/v9"

	"vidhub.com/pkg/constants"
)

// RedisLocker 基于redsync的分布式锁
type RedisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

func NewRedisLocker(client *goredislib.Client, expiry time.Duration) *RedisLocker {
	if expiry <= 0 {
		expiry = constants.DefaultLockExpiry
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
	}
}

// Lock 获取锁, 返回的unlock可以安全地多次调用
func (l *RedisLocker) Lock(ctx context.Context, name string) (func(), error) {
	mutex := l.rs.NewMutex(name,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(32),
		redsync.WithRetryDelay(25*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "acquire lock %s", name)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		// 请求上下文可能已经取消, 解锁使用独立的上下文
		uctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if ok, err := mutex.UnlockContext(uctx); err != nil || !ok {
			hlog.Warnf("release lock %s failed, it expires after %s: %v", name, l.expiry, err)
		}
	}, nil
}
