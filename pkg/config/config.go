package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "REGISTER"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Cache  CacheConfig
	PubSub PubSubConfig
	Backup BackupConfig
	CORS   CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REGISTER_APP_ENV" default:"development"`
	Port         string `envconfig:"REGISTER_APP_PORT" default:"8080"`
	RegisterID   string `envconfig:"REGISTER_ID" default:"register-0"`
	LogLevel     string `envconfig:"REGISTER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REGISTER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig points at the shared remote store. An empty DSN is a recognized
// state, not an error: the history store starts the session in offline mode.
type DBConfig struct {
	DSN    string `envconfig:"REGISTER_DB_DSN"`
	Driver string `envconfig:"REGISTER_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"REGISTER_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"REGISTER_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"REGISTER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"REGISTER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Configured reports whether remote credentials were supplied at all.
func (d DBConfig) Configured() bool {
	return strings.TrimSpace(d.DSN) != ""
}

type CacheConfig struct {
	URL          string        `envconfig:"REGISTER_CACHE_URL" required:"true"`
	Password     string        `envconfig:"REGISTER_CACHE_PASSWORD"`
	DB           int           `envconfig:"REGISTER_CACHE_DB" default:"0"`
	PoolSize     int           `envconfig:"REGISTER_CACHE_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REGISTER_CACHE_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REGISTER_CACHE_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REGISTER_CACHE_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REGISTER_CACHE_WRITE_TIMEOUT" default:"5s"`
}

// PubSubConfig names the cross-register change feed. Both fields empty means
// the feed is disabled and the process only sees its own writes.
type PubSubConfig struct {
	ProjectID          string `envconfig:"REGISTER_PUBSUB_PROJECT_ID"`
	OrdersTopic        string `envconfig:"REGISTER_PUBSUB_ORDERS_TOPIC"`
	OrdersSubscription string `envconfig:"REGISTER_PUBSUB_ORDERS_SUBSCRIPTION"`
}

func (p PubSubConfig) Configured() bool {
	return strings.TrimSpace(p.ProjectID) != "" &&
		strings.TrimSpace(p.OrdersTopic) != "" &&
		strings.TrimSpace(p.OrdersSubscription) != ""
}

type BackupConfig struct {
	CheckInterval time.Duration `envconfig:"REGISTER_BACKUP_CHECK_INTERVAL" default:"1h"`
	MaxAge        time.Duration `envconfig:"REGISTER_BACKUP_MAX_AGE" default:"48h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"REGISTER_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
