package config

const EnvPrefix = "VNB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	ReplicaDriverSQLite = "sqlite"
	ReplicaDriverRedis  = "redis"
	ReplicaDriverMemory = "memory"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv     = "VNB_APP_ENV"
	EnvPort       = "VNB_APP_PORT"
	EnvGatewayURL = "VNB_GATEWAY_BASE_URL"
	EnvRedisURL   = "VNB_REDIS_URL"
	EnvRedisAddr  = "VNB_REDIS_ADDR"
)
