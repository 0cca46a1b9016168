package health

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Checker 依赖的健康检查
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// Ping 返回进程所在主机的负载和数据库状态
func Ping(db Checker) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		status := consts.StatusOK
		dbStatus := "ok"
		if err := db.HealthCheck(ctx); err != nil {
			hlog.CtxErrorf(ctx, "database health check failed: %v", err)
			status = consts.StatusServiceUnavailable
			dbStatus = "unavailable"
		}

		body := utils.H{
			"message":  "pong",
			"database": dbStatus,
		}
		if percent, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percent) > 0 {
			body["cpu_percent"] = percent[0]
		}
		if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
			body["mem_percent"] = vm.UsedPercent
		}
		c.JSON(status, body)
	}
}
