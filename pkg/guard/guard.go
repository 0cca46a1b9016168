package guard

import "vidhub.com/pkg/errno"

// Authorize 校验操作者是否为资源所有者
// 未登录返回Unauthorized, 非所有者返回Forbidden
func Authorize(actorID, ownerID string) error {
	if actorID == "" {
		return errno.UnauthorizedErr
	}
	if actorID != ownerID {
		return errno.ForbiddenErr
	}
	return nil
}
