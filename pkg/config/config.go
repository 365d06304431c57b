package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Catalog       CatalogConfig
	FeatureFlags  FeatureFlagsConfig
	Cron          CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DPAPI_APP_ENV" required:"true"`
	Port         string `envconfig:"DPAPI_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DPAPI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DPAPI_LOG_WARN_STACK" default:"false"`
	CORSOrigins  string `envconfig:"DPAPI_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// IsProd accepts both "prod" and "production".
func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

// AllowedOrigins splits the comma separated CORS origin list.
func (a AppConfig) AllowedOrigins() []string {
	var out []string
	for _, origin := range strings.Split(a.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	DSN    string `envconfig:"DPAPI_DB_DSN"`
	Driver string `envconfig:"DPAPI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DPAPI_DB_HOST"`
	LegacyPort     int    `envconfig:"DPAPI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DPAPI_DB_USER"`
	LegacyPassword string `envconfig:"DPAPI_DB_PASSWORD"`
	LegacyName     string `envconfig:"DPAPI_DB_NAME"`
	LegacySSLMode  string `envconfig:"DPAPI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DPAPI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DPAPI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DPAPI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DPAPI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"DPAPI_REDIS_URL"`
	Address      string        `envconfig:"DPAPI_REDIS_ADDR"`
	Password     string        `envconfig:"DPAPI_REDIS_PASSWORD"`
	DB           int           `envconfig:"DPAPI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DPAPI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DPAPI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DPAPI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DPAPI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DPAPI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret                 string `envconfig:"DPAPI_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"DPAPI_JWT_ISSUER" default:"dp-api"`
	ExpirationMinutes      int    `envconfig:"DPAPI_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"DPAPI_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DPAPI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DPAPI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DPAPI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DPAPI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DPAPI_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DPAPI_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"DPAPI_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"DPAPI_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"DPAPI_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"DPAPI_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"DPAPI_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CatalogConfig struct {
	MaxProfilesPerUser int `envconfig:"DPAPI_MAX_PROFILES_PER_USER" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DPAPI_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DPAPI_AUTO_MIGRATE" default:"false"`
}

type CronConfig struct {
	Interval             time.Duration `envconfig:"DPAPI_CRON_INTERVAL" default:"1h"`
	RefreshTokenGrace    time.Duration `envconfig:"DPAPI_CRON_REFRESH_TOKEN_GRACE" default:"24h"`
	SubscriptionBatchMax int           `envconfig:"DPAPI_CRON_SUBSCRIPTION_BATCH" default:"500"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:dpapi.db?_foreign_keys=on"
		return nil
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
