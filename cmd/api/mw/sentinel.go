package mw

import (
	"context"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"vidhub.com/cmd/api/handlers/response"
	"vidhub.com/pkg/errno"
)

// InitSentinel 初始化sentinel并为资源加载QPS限流规则, qps<=0时不加载规则
func InitSentinel(resource string, qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return errors.Wrap(err, "init sentinel")
	}
	if qps <= 0 {
		return nil
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               resource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	if err != nil {
		return errors.Wrapf(err, "load flow rule for %s", resource)
	}
	hlog.Infof("sentinel flow rule loaded: %s %.0f qps", resource, qps)
	return nil
}

// FlowControl 超过阈值的请求直接返回429
func FlowControl(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blockErr := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blockErr != nil {
			hlog.CtxWarnf(ctx, "request to %s blocked by sentinel: %v", resource, blockErr)
			response.SendResponse(c, errno.TooManyRequests, nil)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
