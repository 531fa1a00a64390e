package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	OpenMeteo    OpenMeteoConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
	Metrics      MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WEATHERAPP_APP_ENV" required:"true"`
	Port         string `envconfig:"WEATHERAPP_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"WEATHERAPP_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"WEATHERAPP_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"WEATHERAPP_LOG_WARN_STACK" default:"false"`
	// ShutdownTimeout bounds how long in-flight requests may drain on SIGTERM.
	ShutdownTimeout time.Duration `envconfig:"WEATHERAPP_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WEATHERAPP_DB_DSN"`
	Driver string `envconfig:"WEATHERAPP_DB_DRIVER" default:"sqlite"`

	LegacyHost     string `envconfig:"WEATHERAPP_DB_HOST"`
	LegacyPort     int    `envconfig:"WEATHERAPP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WEATHERAPP_DB_USER"`
	LegacyPassword string `envconfig:"WEATHERAPP_DB_PASSWORD"`
	LegacyName     string `envconfig:"WEATHERAPP_DB_NAME"`
	LegacySSLMode  string `envconfig:"WEATHERAPP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WEATHERAPP_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"WEATHERAPP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"WEATHERAPP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WEATHERAPP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// DriverName returns the normalized driver, defaulting to sqlite.
func (db DBConfig) DriverName() string {
	driver := strings.ToLower(strings.TrimSpace(db.Driver))
	switch driver {
	case "", "sqlite3":
		return DBDriverSQLite
	case "postgresql", "pgx":
		return DBDriverPostgres
	}
	return driver
}

type RedisConfig struct {
	URL          string        `envconfig:"WEATHERAPP_REDIS_URL"`
	Address      string        `envconfig:"WEATHERAPP_REDIS_ADDR"`
	Password     string        `envconfig:"WEATHERAPP_REDIS_PASSWORD"`
	DB           int           `envconfig:"WEATHERAPP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WEATHERAPP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WEATHERAPP_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"WEATHERAPP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WEATHERAPP_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WEATHERAPP_REDIS_WRITE_TIMEOUT" default:"3s"`
	// IdempotencyTTL is how long a replayable POST response is kept.
	IdempotencyTTL time.Duration `envconfig:"WEATHERAPP_IDEMPOTENCY_TTL" default:"24h"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type OpenMeteoConfig struct {
	ForecastBaseURL   string        `envconfig:"WEATHERAPP_OPENMETEO_FORECAST_URL" default:"https://api.open-meteo.com"`
	GeocodingBaseURL  string        `envconfig:"WEATHERAPP_OPENMETEO_GEOCODING_URL" default:"https://geocoding-api.open-meteo.com"`
	Timezone          string        `envconfig:"WEATHERAPP_OPENMETEO_TIMEZONE" default:"Europe/Paris"`
	ForecastDays      int           `envconfig:"WEATHERAPP_OPENMETEO_FORECAST_DAYS" default:"10"`
	ForecastHours     int           `envconfig:"WEATHERAPP_OPENMETEO_FORECAST_HOURS" default:"24"`
	GeocodingCount    int           `envconfig:"WEATHERAPP_OPENMETEO_GEOCODING_COUNT" default:"10"`
	GeocodingLanguage string        `envconfig:"WEATHERAPP_OPENMETEO_GEOCODING_LANGUAGE" default:"fr"`
	Timeout           time.Duration `envconfig:"WEATHERAPP_OPENMETEO_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"WEATHERAPP_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:8000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WEATHERAPP_AUTO_MIGRATE" default:"false"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"WEATHERAPP_METRICS_ENABLED" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	switch db.DriverName() {
	case DBDriverSQLite:
		db.DSN = "var/data.db"
		return nil
	case DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
