package constants

import "time"

const (
	// 身份信息在RequestContext中的key
	IdentityKey = "actor_id"

	DefaultStoreTimeout = 3 * time.Second
	DefaultLockExpiry   = 5 * time.Second

	// 对象存储中的目录
	VideoObjectPrefix     = "video"
	ThumbnailObjectPrefix = "thumbnail"

	// sentinel资源名
	SearchResource = "search"

	SearchBackendDB      = "db"
	SearchBackendElastic = "elastic"

	// elastic翻页时每页的命中数
	SearchPageSize = 1000

	// 限流key前缀
	RateLimitKeyPrefix = "ratelimit:"
	// 关系切换锁前缀
	ToggleLockPrefix = "toggle:"
)
