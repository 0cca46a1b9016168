package utils

import "github.com/google/uuid"

// NewID 生成实体id
func NewID() string {
	return uuid.NewString()
}

// ValidID 校验id格式, 只接受标准的36位uuid
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
