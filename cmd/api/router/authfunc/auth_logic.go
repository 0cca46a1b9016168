package authfunc

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"vidhub.com/pkg/jwt"
	"vidhub.com/pkg/security"
)

// RateLimitKey 登录用户按操作者限流, 匿名请求按IP限流
func RateLimitKey(ctx context.Context, c *app.RequestContext) string {
	if actorID := jwt.ActorID(c); actorID != "" {
		return "actor:" + actorID
	}
	return ""
}

// RateLimit 写操作的限流中间件, limiter为nil时不限流
func RateLimit(limiter security.Limiter) app.HandlerFunc {
	if limiter == nil {
		return func(ctx context.Context, c *app.RequestContext) {
			c.Next(ctx)
		}
	}
	return security.RateLimitMiddleware(limiter, RateLimitKey)
}
