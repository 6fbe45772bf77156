package config

const (
	EnvPrefix = "NOORMODEST"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	StorageDriverSQLite = "sqlite"
	StorageDriverRedis  = "redis"

	EnvAppEnv     = "NOORMODEST_APP_ENV"
	EnvPort       = "NOORMODEST_APP_PORT"
	EnvSQLitePath = "NOORMODEST_STORAGE_SQLITE_PATH"
	EnvRedisURL   = "NOORMODEST_REDIS_URL"
	EnvRedisAddr  = "NOORMODEST_REDIS_ADDR"
)
