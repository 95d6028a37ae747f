package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ORDERDESK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "ORDERDESK_APP_ENV"
	EnvPort         = "ORDERDESK_APP_PORT"
	EnvLogLevel     = "ORDERDESK_LOG_LEVEL"
	EnvDBDSN        = "ORDERDESK_DB_DSN"
	EnvDBDriver     = "ORDERDESK_DB_DRIVER"
	EnvDBHost       = "ORDERDESK_DB_HOST"
	EnvDBUser       = "ORDERDESK_DB_USER"
	EnvDBName       = "ORDERDESK_DB_NAME"
	EnvDBPassword   = "ORDERDESK_DB_PASSWORD"
	EnvRedisURL     = "ORDERDESK_REDIS_URL"
	EnvUseSQLite    = "ORDERDESK_USE_SQLITE"
	EnvAutoMigrate  = "ORDERDESK_AUTO_MIGRATE"
	EnvIdemTTL      = "ORDERDESK_IDEMPOTENCY_TTL"
	EnvMetricsPath  = "ORDERDESK_METRICS_PATH"
	EnvCORSOrigins  = "ORDERDESK_CORS_ALLOWED_ORIGINS"
	EnvWriteIPLimit = "ORDERDESK_RATE_LIMIT_WRITE_IP_LIMIT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	RateLimit    RateLimitConfig
	Idempotency  IdempotencyConfig
	Metrics      MetricsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"ORDERDESK_APP_ENV" required:"true"`
	Port            string        `envconfig:"ORDERDESK_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"ORDERDESK_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"ORDERDESK_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"ORDERDESK_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ORDERDESK_DB_DSN"`
	Driver string `envconfig:"ORDERDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ORDERDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"ORDERDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ORDERDESK_DB_USER"`
	LegacyPassword string `envconfig:"ORDERDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"ORDERDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"ORDERDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ORDERDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ORDERDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ORDERDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORDERDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// SQLiteDSN is used when the sqlite driver is selected without a DSN.
const SQLiteDSN = "file:orderdesk.db?cache=shared&_foreign_keys=on"

// UsesSQLite reports whether the sqlite dialector should be used.
func (db DBConfig) UsesSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDERDESK_REDIS_URL"`
	Address      string        `envconfig:"ORDERDESK_REDIS_ADDR"`
	Password     string        `envconfig:"ORDERDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDERDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDERDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDERDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORDERDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ORDERDESK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ORDERDESK_AUTO_MIGRATE" default:"false"`
}

type RateLimitConfig struct {
	WriteWindow     time.Duration `envconfig:"ORDERDESK_RATE_LIMIT_WRITE_WINDOW" default:"1m"`
	WriteIPLimit    int           `envconfig:"ORDERDESK_RATE_LIMIT_WRITE_IP_LIMIT" default:"120"`
	WriteEmailLimit int           `envconfig:"ORDERDESK_RATE_LIMIT_WRITE_EMAIL_LIMIT" default:"10"`
	ReadPerMinute   int           `envconfig:"ORDERDESK_RATE_LIMIT_READ_PER_MINUTE" default:"600"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"ORDERDESK_IDEMPOTENCY_TTL" default:"24h"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"ORDERDESK_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"ORDERDESK_METRICS_PATH" default:"/metrics"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ORDERDESK_CORS_ALLOWED_ORIGINS" default:"*"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = "sqlite"
	}
	if db.DSN != "" {
		return nil
	}
	if db.UsesSQLite() {
		db.DSN = SQLiteDSN
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
