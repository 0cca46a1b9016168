package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// 使用Viper的好处在于支持配置文件的热更新 同时viper对于大小写并不敏感 都是统一进行处理
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvPrefix("VIDHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, falling back to defaults and environment: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	// 手动从viper获取配置值，避免Unmarshal问题
	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.MaxBodyMB = viper.GetInt("server.max_body_mb")
	ConfigInfo.Server.AllowOrigins = viper.GetStringSlice("server.allow_origins")
	ConfigInfo.Server.UploadDir = viper.GetString("server.upload_dir")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")
	ConfigInfo.Mysql.MaxOpenConns = viper.GetInt("mysql.max_open_conns")
	ConfigInfo.Mysql.MaxIdleConns = viper.GetInt("mysql.max_idle_conns")

	ConfigInfo.Store.Timeout = viper.GetDuration("store.timeout")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")

	ConfigInfo.Lock.Enabled = viper.GetBool("lock.enabled")
	ConfigInfo.Lock.Expiry = viper.GetDuration("lock.expiry")

	ConfigInfo.RateLimit.Window = viper.GetDuration("ratelimit.window")
	ConfigInfo.RateLimit.MaxRequests = viper.GetInt64("ratelimit.max_requests")

	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	ConfigInfo.Minio.Bucket = viper.GetString("minio.bucket")
	ConfigInfo.Minio.PublicBase = viper.GetString("minio.public_base")

	ConfigInfo.Elastic.URL = viper.GetString("elastic.url")
	ConfigInfo.Elastic.Index = viper.GetString("elastic.index")
	ConfigInfo.Search.Backend = viper.GetString("search.backend")

	ConfigInfo.Sentinel.SearchQPS = viper.GetFloat64("sentinel.search_qps")

	ConfigInfo.Jwt.Key = viper.GetString("jwt.key")
	ConfigInfo.Jwt.Realm = viper.GetString("jwt.realm")
	ConfigInfo.Jwt.TTL = viper.GetDuration("jwt.ttl")

	ConfigInfo.Jaeger.Enabled = viper.GetBool("jaeger.enabled")
	ConfigInfo.Jaeger.Agent = viper.GetString("jaeger.agent")

	ConfigInfo.Pprof.Addr = viper.GetString("pprof.addr")

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	logrus.Infof("Search backend: %s, toggle lock enabled: %v, store timeout: %s",
		ConfigInfo.Search.Backend, ConfigInfo.Lock.Enabled, ConfigInfo.Store.Timeout)

	if ConfigInfo.Jwt.Key == "" {
		logrus.Warn("jwt.key is empty, every authenticated request will be rejected")
	}
}

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8888")
	viper.SetDefault("server.max_body_mb", 512)
	viper.SetDefault("server.allow_origins", []string{"http://localhost:8870", "http://localhost:8888"})
	viper.SetDefault("server.upload_dir", os.TempDir())
	viper.SetDefault("mysql.addr", "localhost:3306")
	viper.SetDefault("mysql.database", "vidhub")
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("mysql.max_open_conns", 100)
	viper.SetDefault("mysql.max_idle_conns", 10)
	viper.SetDefault("store.timeout", 3*time.Second)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("lock.enabled", true)
	viper.SetDefault("lock.expiry", 5*time.Second)
	viper.SetDefault("ratelimit.window", time.Minute)
	viper.SetDefault("ratelimit.max_requests", 120)
	viper.SetDefault("rabbitmq.addr", "localhost:5672")
	viper.SetDefault("minio.endpoint", "localhost:9002")
	viper.SetDefault("minio.bucket", "vidhub")
	viper.SetDefault("minio.public_base", "http://localhost:9002")
	viper.SetDefault("elastic.url", "http://localhost:9200")
	viper.SetDefault("elastic.index", "videos")
	viper.SetDefault("search.backend", "db")
	viper.SetDefault("sentinel.search_qps", 200)
	viper.SetDefault("jwt.realm", "vidhub")
	viper.SetDefault("jwt.ttl", 24*time.Hour)
	viper.SetDefault("jaeger.agent", "localhost:6831")
}

// MysqlDSN 生成数据库的dsn
func MysqlDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=True&loc=Local",
		ConfigInfo.Mysql.Username, ConfigInfo.Mysql.Password, ConfigInfo.Mysql.Addr,
		ConfigInfo.Mysql.Database, ConfigInfo.Mysql.Charset)
}

// RabbitMQURL amqp连接地址
func RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s/", ConfigInfo.RabbitMq.Username, ConfigInfo.RabbitMq.Password, ConfigInfo.RabbitMq.Addr)
}
