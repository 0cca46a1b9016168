package db

import (
	"context"

	"gorm.io/gorm"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/database"
)

// UserDB 只读的用户存储, 用户数据由身份服务写入
type UserDB struct {
	conn *database.Conn
}

func NewUserDB(conn *database.Conn) *UserDB {
	return &UserDB{conn: conn}
}

func (d *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	user := new(model.User)
	err := d.conn.Execute(ctx, "GetUser", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// MGetUsers 批量查询, 不存在的id直接忽略
func (d *UserDB) MGetUsers(ctx context.Context, ids []string) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	err := d.conn.Execute(ctx, "MGetUsers", func(tx *gorm.DB) error {
		return tx.Where("id IN ?", ids).Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SearchUsers 用户名或昵称包含q的用户, 大小写无关
func (d *UserDB) SearchUsers(ctx context.Context, q string) ([]*model.User, error) {
	users := make([]*model.User, 0)
	pattern := database.ContainsPattern(q)
	err := d.conn.Execute(ctx, "SearchUsers", func(tx *gorm.DB) error {
		return tx.Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern).
			Order("created_at").
			Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
