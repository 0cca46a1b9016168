package errno

import (
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	SuccessCode         = 0
	InvalidInputCode    = 10001
	UnauthorizedCode    = 10002
	ForbiddenCode       = 10003
	NotFoundCode        = 10004
	ConflictCode        = 10005
	UpstreamFailureCode = 10006
	UnavailableCode     = 10007
	ServiceErrCode      = 10008
	TooManyRequestsCode = 10009
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

// WithMessage 返回同一错误码下的新提示信息
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// Is 只比较错误码, 这样 errors.Is(err, errno.NotFoundErr) 对任意提示信息都成立
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	if !ok {
		return false
	}
	return t.ErrCode == e.ErrCode
}

var (
	Success         = NewErrNo(SuccessCode, "Success")
	InvalidInputErr = NewErrNo(InvalidInputCode, "Invalid input")
	UnauthorizedErr = NewErrNo(UnauthorizedCode, "Unauthorized access")
	ForbiddenErr    = NewErrNo(ForbiddenCode, "You are not authorized to perform this action")
	NotFoundErr     = NewErrNo(NotFoundCode, "Resource not found")
	ConflictErr     = NewErrNo(ConflictCode, "Resource already exists")
	UpstreamErr     = NewErrNo(UpstreamFailureCode, "Upstream service failed")
	UnavailableErr  = NewErrNo(UnavailableCode, "Service temporarily unavailable")
	ServiceErr      = NewErrNo(ServiceErrCode, "Something went wrong")
	TooManyRequests = NewErrNo(TooManyRequestsCode, "Too many requests, please retry later")
)

// ConvertErr convert error to Errno
// 未知错误统一转换为ServiceErr, 不向调用方暴露内部信息
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	return ServiceErr
}

// HTTPStatus 错误码到HTTP状态码的稳定映射
func HTTPStatus(code int64) int {
	switch code {
	case SuccessCode:
		return consts.StatusOK
	case InvalidInputCode:
		return consts.StatusBadRequest
	case UnauthorizedCode:
		return consts.StatusUnauthorized
	case ForbiddenCode:
		return consts.StatusForbidden
	case NotFoundCode:
		return consts.StatusNotFound
	case ConflictCode:
		return consts.StatusConflict
	case UpstreamFailureCode:
		return consts.StatusBadGateway
	case UnavailableCode:
		return consts.StatusServiceUnavailable
	case TooManyRequestsCode:
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}
