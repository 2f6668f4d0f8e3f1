package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Gateway GatewayConfig
	Replica ReplicaConfig
	Redis   RedisConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Replica.validate(); err != nil {
		return nil, err
	}
	if cfg.Replica.Driver == ReplicaDriverRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required for the redis replica driver", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VNB_APP_ENV" required:"true"`
	Port         string `envconfig:"VNB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VNB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VNB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// GatewayConfig points at the remote commerce backend serving the
// /orders, /store and /accounts routes.
type GatewayConfig struct {
	BaseURL string        `envconfig:"VNB_GATEWAY_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"VNB_GATEWAY_TIMEOUT" default:"10s"`
}

// ReplicaConfig selects the device-level cart replica backend. The key is
// the single storage slot shared by the whole session.
type ReplicaConfig struct {
	Driver     string `envconfig:"VNB_REPLICA_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"VNB_REPLICA_SQLITE_PATH" default:"storefront-replica.db"`
	Key        string `envconfig:"VNB_REPLICA_KEY" default:"vnb_cart_local"`
}

func (r ReplicaConfig) validate() error {
	switch r.Driver {
	case ReplicaDriverSQLite, ReplicaDriverRedis, ReplicaDriverMemory:
		return nil
	}
	return fmt.Errorf("unknown replica driver %q", r.Driver)
}

type RedisConfig struct {
	URL          string        `envconfig:"VNB_REDIS_URL"`
	Address      string        `envconfig:"VNB_REDIS_ADDR"`
	Password     string        `envconfig:"VNB_REDIS_PASSWORD"`
	DB           int           `envconfig:"VNB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VNB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VNB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VNB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VNB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VNB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"VNB_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}
