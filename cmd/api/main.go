package main

import (
	"context"
	"io"
	"os"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"

	interactionh "vidhub.com/cmd/api/handlers/interaction"
	relationh "vidhub.com/cmd/api/handlers/relation"
	videoh "vidhub.com/cmd/api/handlers/video"
	"vidhub.com/cmd/api/mw"
	"vidhub.com/cmd/api/router/authfunc"
	interactiondb "vidhub.com/cmd/interaction/dal/db"
	interactionsvc "vidhub.com/cmd/interaction/service"
	relationdb "vidhub.com/cmd/relation/dal/db"
	relationsvc "vidhub.com/cmd/relation/service"
	userdb "vidhub.com/cmd/user/dal/db"
	videodb "vidhub.com/cmd/video/dal/db"
	videosvc "vidhub.com/cmd/video/service"
	"vidhub.com/config"
	"vidhub.com/config/jaeger"
	"vidhub.com/config/pprof"
	"vidhub.com/pkg/constants"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/jwt"
	"vidhub.com/pkg/lock"
	"vidhub.com/pkg/mq"
	"vidhub.com/pkg/oss"
	"vidhub.com/pkg/redis"
	"vidhub.com/pkg/search"
	"vidhub.com/pkg/security"
	"vidhub.com/pkg/toggle"
)

func main() {
	config.Init()
	cfg := config.ConfigInfo

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}()
	if cfg.Jaeger.Enabled {
		closers = append(closers, jaeger.Init("vidhub-api", cfg.Jaeger.Agent))
	}
	if cfg.Pprof.Addr != "" {
		pprof.Load(cfg.Pprof.Addr)
	}

	conn, err := database.Open(database.Config{
		DSN:          config.MysqlDSN(),
		MaxOpenConns: cfg.Mysql.MaxOpenConns,
		MaxIdleConns: cfg.Mysql.MaxIdleConns,
		Timeout:      cfg.Store.Timeout,
		Tracing:      cfg.Jaeger.Enabled,
	})
	if err != nil {
		hlog.Fatalf("connect mysql failed: %v", err)
	}
	closers = append(closers, conn)
	if err := conn.Migrate(); err != nil {
		hlog.Fatalf("migrate failed: %v", err)
	}

	redisClient := redis.Load(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	closers = append(closers, redisClient)

	var locker toggle.Locker
	if cfg.Lock.Enabled {
		locker = lock.NewRedisLocker(redisClient, cfg.Lock.Expiry)
	}

	storage, err := oss.InitMinio(oss.Config{
		Endpoint:   cfg.Minio.Endpoint,
		AccessKey:  cfg.Minio.AccessKey,
		SecretKey:  cfg.Minio.SecretKey,
		UseSSL:     cfg.Minio.UseSSL,
		Bucket:     cfg.Minio.Bucket,
		PublicBase: cfg.Minio.PublicBase,
	})
	if err != nil {
		hlog.Fatalf("init minio failed: %v", err)
	}

	var events mq.EventPublisher = mq.NopPublisher{}
	if producer, err := mq.NewProducer(config.RabbitMQURL()); err != nil {
		hlog.Warnf("rabbitmq unavailable, video events disabled: %v", err)
	} else {
		events = producer
		closers = append(closers, producer)
	}

	auth, err := jwt.New(cfg.Jwt.Key, cfg.Jwt.Realm, cfg.Jwt.TTL)
	if err != nil {
		hlog.Fatalf("init jwt failed: %v", err)
	}

	if err := mw.InitSentinel(constants.SearchResource, cfg.Sentinel.SearchQPS); err != nil {
		hlog.Fatalf("init sentinel failed: %v", err)
	}

	users := userdb.NewUserDB(conn)
	videos := videodb.NewVideoDB(conn)
	playlists := videodb.NewPlaylistDB(conn)
	likes := interactiondb.NewLikeDB(conn)
	comments := interactiondb.NewCommentDB(conn)
	subscriptions := relationdb.NewSubscriptionDB(conn)

	engine := toggle.NewEngine(locker).
		Register(toggle.VideoLike, likes).
		Register(toggle.CommentLike, likes).
		Register(toggle.Subscription, subscriptions)

	var matcher videosvc.VideoMatcher = videosvc.NewDBMatcher(videos)
	if cfg.Search.Backend == constants.SearchBackendElastic {
		index, err := search.NewElasticIndex(cfg.Elastic.URL, cfg.Elastic.Index)
		if err != nil {
			hlog.Fatalf("connect elasticsearch failed: %v", err)
		}
		matcher = videosvc.NewIndexMatcher(index, videos)
	}

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		hlog.Fatalf("create upload dir failed: %v", err)
	}

	rt := &routes{
		required:  auth.Required(),
		optional:  auth.Optional(),
		rateLimit: authfunc.RateLimit(security.NewSlidingWindowLimiter(redisClient, security.RateLimitConfig{WindowSize: cfg.RateLimit.Window, MaxRequests: cfg.RateLimit.MaxRequests})),
		interaction: interactionh.New(
			interactionsvc.NewLikeService(engine, likes, videos, comments),
			interactionsvc.NewCommentService(comments, videos),
		),
		relation: relationh.New(relationsvc.NewRelationService(engine, subscriptions, users)),
		video: videoh.New(
			videosvc.NewVideoService(videos, users, likes, comments, storage,
				videosvc.WithProber(oss.ProbeDuration),
				videosvc.WithEvents(events)),
			videosvc.NewPlaylistService(playlists, videos, users),
			videosvc.NewSearchService(matcher, users, likes),
			cfg.Server.UploadDir,
		),
		db: conn,
	}

	r := server.New(
		server.WithHostPorts(cfg.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxBodyMB*1024*1024),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// 错误处理, 不向客户端暴露堆栈
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"code":    errno.ServiceErrCode,
				"message": errno.ServiceErr.ErrMsg,
				"data":    nil,
			})
		})))

	register(r.Engine, rt)
	r.Spin()
}
