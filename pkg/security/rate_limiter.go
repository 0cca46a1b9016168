package security

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"vidhub.com/pkg/constants"
	"vidhub.com/pkg/errno"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSize  time.Duration
	MaxRequests int64
}

// RateLimitResult 限流结果
type RateLimitResult struct {
	Allowed    bool          `json:"allowed"`
	Remaining  int64         `json:"remaining"`
	ResetTime  time.Time     `json:"reset_time"`
	RetryAfter time.Duration `json:"retry_after"`
}

// Limiter 限流器
type Limiter interface {
	Allow(ctx context.Context, key string) (*RateLimitResult, error)
}

// SlidingWindowLimiter 基于redis有序集合的滑动窗口限流
type SlidingWindowLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

func NewSlidingWindowLimiter(redisClient *redis.Client, config RateLimitConfig) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		redis:  redisClient,
		config: config,
	}
}

// Allow 记录一次请求并判断是否超过窗口内的上限
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*RateLimitResult, error) {
	now := time.Now()
	windowStart := now.Add(-l.config.WindowSize)
	key = constants.RateLimitKeyPrefix + key

	pipe := l.redis.TxPipeline()

	// 清理过期记录
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))

	// 添加当前请求
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})

	// 计算当前窗口内的请求数
	countCmd := pipe.ZCard(ctx, key)

	pipe.Expire(ctx, key, l.config.WindowSize+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	count := countCmd.Val()
	result := &RateLimitResult{
		Allowed:   count <= l.config.MaxRequests,
		Remaining: l.config.MaxRequests - count,
		ResetTime: now.Add(l.config.WindowSize),
	}
	if !result.Allowed {
		result.RetryAfter = l.config.WindowSize
		result.Remaining = 0
	}
	return result, nil
}

// RateLimitMiddleware 按key限流, 限流器出错时放行
func RateLimitMiddleware(limiter Limiter, keyFunc func(ctx context.Context, c *app.RequestContext) string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		key := keyFunc(ctx, c)
		if key == "" {
			key = c.ClientIP()
		}

		result, err := limiter.Allow(ctx, key)
		if err != nil {
			hlog.CtxWarnf(ctx, "rate limiter unavailable for %s: %v", key, err)
			c.Next(ctx)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
			c.AbortWithStatusJSON(errno.HTTPStatus(errno.TooManyRequestsCode), utils.H{
				"code":    errno.TooManyRequests.ErrCode,
				"message": errno.TooManyRequests.ErrMsg,
				"data":    nil,
			})
			return
		}
		c.Next(ctx)
	}
}
