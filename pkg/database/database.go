package database

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/constants"
	"vidhub.com/pkg/errno"
)

// ErrNotFound 记录不存在, 调用方用 errors.Is 判断
var ErrNotFound = gorm.ErrRecordNotFound

// Config 数据库连接配置
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// 单次往返的超时时间
	Timeout time.Duration
	Tracing bool
}

// Conn 带超时控制的数据库连接
type Conn struct {
	DB      *gorm.DB
	Timeout time.Duration
}

// Open 创建数据库连接, 重复键错误统一翻译为 gorm.ErrDuplicatedKey
func Open(cfg Config) (*Conn, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	if cfg.Tracing {
		if err = db.Use(gormopentracing.New()); err != nil {
			return nil, errors.Wrap(err, "register tracing plugin")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return NewConn(db, cfg.Timeout), nil
}

func NewConn(db *gorm.DB, timeout time.Duration) *Conn {
	if timeout <= 0 {
		timeout = constants.DefaultStoreTimeout
	}
	return &Conn{DB: db, Timeout: timeout}
}

// Migrate 自动迁移所有表和唯一索引
func (c *Conn) Migrate() error {
	hlog.Info("Starting tables migration...")
	err := c.DB.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistItem{},
	)
	if err != nil {
		hlog.Errorf("Failed to migrate tables: %v", err)
		return err
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}

// Execute 在超时上下文中执行一次数据库往返
// 超时转换为 errno.UnavailableErr, 记录不存在和重复键原样返回, 其他错误转换为 errno.UpstreamErr
func (c *Conn) Execute(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	tctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	err := fn(c.DB.WithContext(tctx))
	return translate(tctx, op, err)
}

func translate(ctx context.Context, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.WithMessage(errno.UnavailableErr, op+": store round trip timed out")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.WithMessage(ErrNotFound, op)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.WithMessage(gorm.ErrDuplicatedKey, op)
	}
	var e errno.ErrNo
	if errors.As(err, &e) {
		return err
	}
	return errors.WithMessagef(errno.UpstreamErr, "%s: %v", op, err)
}

// HealthCheck 健康检查
func (c *Conn) HealthCheck(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	tctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()
	if err := sqlDB.PingContext(tctx); err != nil {
		return errors.Wrap(err, "mysql health check failed")
	}
	return nil
}

// Close 关闭数据库连接
func (c *Conn) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		hlog.Errorf("Failed to close database: %v", err)
		return err
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern 生成大小写无关的包含匹配模式, 配合 LOWER(col) LIKE ? 使用
func ContainsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
