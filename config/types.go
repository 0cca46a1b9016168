package config

import "time"

type config struct {
	Server    server    `yaml:"server" mapstructure:"server"`
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Store     store     `yaml:"store" mapstructure:"store"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	Lock      lock      `yaml:"lock" mapstructure:"lock"`
	RateLimit rateLimit `yaml:"ratelimit" mapstructure:"ratelimit"`
	RabbitMq  rabbitmq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio     minio     `yaml:"minio" mapstructure:"minio"`
	Elastic   elastic   `yaml:"elastic" mapstructure:"elastic"`
	Search    search    `yaml:"search" mapstructure:"search"`
	Sentinel  sentinel  `yaml:"sentinel" mapstructure:"sentinel"`
	Jwt       jwt       `yaml:"jwt" mapstructure:"jwt"`
	Jaeger    jaeger    `yaml:"jaeger" mapstructure:"jaeger"`
	Pprof     pprof     `yaml:"pprof" mapstructure:"pprof"`
}

type server struct {
	Addr         string   `yaml:"addr"`
	MaxBodyMB    int      `yaml:"max_body_mb" mapstructure:"max_body_mb"`
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	UploadDir    string   `yaml:"upload_dir" mapstructure:"upload_dir"`
}

type mysql struct {
	Addr         string `yaml:"addr"`
	Database     string `yaml:"database"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Charset      string `yaml:"charset"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
}

type store struct {
	Timeout time.Duration `yaml:"timeout"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type lock struct {
	Enabled bool          `yaml:"enabled"`
	Expiry  time.Duration `yaml:"expiry"`
}

type rateLimit struct {
	Window      time.Duration `yaml:"window"`
	MaxRequests int64         `yaml:"max_requests" mapstructure:"max_requests"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type minio struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey  string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL     bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket     string `yaml:"bucket"`
	PublicBase string `yaml:"public_base" mapstructure:"public_base"`
}

type elastic struct {
	URL   string `yaml:"url"`
	Index string `yaml:"index"`
}

type search struct {
	Backend string `yaml:"backend"`
}

type sentinel struct {
	SearchQPS float64 `yaml:"search_qps" mapstructure:"search_qps"`
}

type jwt struct {
	Key   string        `yaml:"key"`
	Realm string        `yaml:"realm"`
	TTL   time.Duration `yaml:"ttl"`
}

type jaeger struct {
	Enabled bool   `yaml:"enabled"`
	Agent   string `yaml:"agent"`
}

type pprof struct {
	Addr string `yaml:"addr"`
}
