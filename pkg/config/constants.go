package config

const (
	EnvPrefix = "WEATHERAPP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	EnvAppEnv   = "WEATHERAPP_APP_ENV"
	EnvPort     = "WEATHERAPP_APP_PORT"
	EnvLogLevel = "WEATHERAPP_LOG_LEVEL"

	EnvDBDriver = "WEATHERAPP_DB_DRIVER"
	EnvDBDSN    = "WEATHERAPP_DB_DSN"
	EnvDBHost   = "WEATHERAPP_DB_HOST"
	EnvDBUser   = "WEATHERAPP_DB_USER"
	EnvDBName   = "WEATHERAPP_DB_NAME"

	EnvRedisURL  = "WEATHERAPP_REDIS_URL"
	EnvRedisAddr = "WEATHERAPP_REDIS_ADDR"

	EnvOpenMeteoTimezone = "WEATHERAPP_OPENMETEO_TIMEZONE"
	EnvOpenMeteoTimeout  = "WEATHERAPP_OPENMETEO_TIMEOUT"
	EnvCORSOrigins       = "WEATHERAPP_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
