package response

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"vidhub.com/pkg/errno"
)

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendResponse pack response
// HTTP状态码由错误码决定, 内部错误信息只写日志
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(errno.HTTPStatus(Err.ErrCode), Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

// Success 成功响应, 附带提示信息
func Success(c *app.RequestContext, message string, data interface{}) {
	SendResponse(c, errno.Success.WithMessage(message), data)
}

// Fail 记录错误堆栈后返回错误响应
func Fail(ctx context.Context, c *app.RequestContext, op string, err error) {
	Err := errno.ConvertErr(err)
	if Err.ErrCode == errno.ServiceErrCode || Err.ErrCode == errno.UpstreamFailureCode || Err.ErrCode == errno.UnavailableCode {
		hlog.CtxErrorf(ctx, "%s failed, cause: %v, detail: %+v", op, errors.Cause(err), err)
	} else {
		hlog.CtxInfof(ctx, "%s rejected: %v", op, err)
	}
	SendResponse(c, err, nil)
}

// Empty 空对象, 序列化为 {}
var Empty = struct{}{}
