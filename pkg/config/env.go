package config

const (
	EnvPrefix = "DPAPI"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "DPAPI_APP_ENV"
	EnvPort                   = "DPAPI_APP_PORT"
	EnvLogLevel               = "DPAPI_LOG_LEVEL"
	EnvDBDSN                  = "DPAPI_DB_DSN"
	EnvDBDriver               = "DPAPI_DB_DRIVER"
	EnvDBHost                 = "DPAPI_DB_HOST"
	EnvDBUser                 = "DPAPI_DB_USER"
	EnvDBName                 = "DPAPI_DB_NAME"
	EnvRedisURL               = "DPAPI_REDIS_URL"
	EnvJWTSecret              = "DPAPI_JWT_SECRET"
	EnvJWTIssuer              = "DPAPI_JWT_ISSUER"
	EnvJWTExpMins             = "DPAPI_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "DPAPI_REFRESH_TOKEN_TTL_MINUTES"
	EnvUseSQLite              = "DPAPI_USE_SQLITE"
	EnvCronInterval           = "DPAPI_CRON_INTERVAL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
