package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "foodrush"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Checkout     CheckoutConfig
	GoogleMaps   GoogleMapsConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FOODRUSH_APP_ENV" default:"dev"`
	Port         string `envconfig:"FOODRUSH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FOODRUSH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODRUSH_LOG_WARN_STACK" default:"false"`

	// DefaultCustomerID stands in for an authenticated identity on a
	// single-profile device. Requests may override it per call.
	DefaultCustomerID string `envconfig:"FOODRUSH_DEFAULT_CUSTOMER_ID" default:"1"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"FOODRUSH_DB_DRIVER" default:"sqlite"`

	// Path is the on-device database file used by the sqlite driver.
	Path string `envconfig:"FOODRUSH_DB_PATH" default:"foodrush.db"`

	// DSN is only consulted when the postgres driver is selected.
	DSN string `envconfig:"FOODRUSH_DB_DSN"`

	MaxOpenConns    int           `envconfig:"FOODRUSH_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"FOODRUSH_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"FOODRUSH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODRUSH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d DBConfig) validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("sqlite driver requires a database path")
		}
	case DriverPostgres:
		if d.DSN == "" {
			return fmt.Errorf("postgres driver requires a DSN")
		}
	default:
		return fmt.Errorf("unsupported db driver %q", d.Driver)
	}
	return nil
}

type RedisConfig struct {
	Enabled      bool          `envconfig:"FOODRUSH_REDIS_ENABLED" default:"false"`
	URL          string        `envconfig:"FOODRUSH_REDIS_URL"`
	Address      string        `envconfig:"FOODRUSH_REDIS_ADDR"`
	Password     string        `envconfig:"FOODRUSH_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODRUSH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODRUSH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODRUSH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODRUSH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODRUSH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODRUSH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CheckoutConfig struct {
	DeliveryFee string `envconfig:"FOODRUSH_CHECKOUT_DELIVERY_FEE" default:"2.99"`
	ServiceFee  string `envconfig:"FOODRUSH_CHECKOUT_SERVICE_FEE" default:"1.50"`
}

// DeliveryFeeAmount parses the configured delivery fee, falling back to the
// stock 2.99 when the override is malformed.
func (c CheckoutConfig) DeliveryFeeAmount() decimal.Decimal {
	return parseFee(c.DeliveryFee, "2.99")
}

// ServiceFeeAmount parses the configured service fee, falling back to the
// stock 1.50 when the override is malformed.
func (c CheckoutConfig) ServiceFeeAmount() decimal.Decimal {
	return parseFee(c.ServiceFee, "1.50")
}

func parseFee(value, fallback string) decimal.Decimal {
	if amount, err := decimal.NewFromString(strings.TrimSpace(value)); err == nil && !amount.IsNegative() {
		return amount
	}
	return decimal.RequireFromString(fallback)
}

type GoogleMapsConfig struct {
	APIKey   string        `envconfig:"FOODRUSH_GOOGLE_MAPS_API_KEY"`
	BaseURL  string        `envconfig:"FOODRUSH_GOOGLE_MAPS_BASE_URL"`
	CacheTTL time.Duration `envconfig:"FOODRUSH_GEOCODE_CACHE_TTL" default:"24h"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"FOODRUSH_CRON_INTERVAL" default:"20s"`
	LockKey  string        `envconfig:"FOODRUSH_CRON_LOCK_KEY" default:"foodrush:cron:lock"`
	LockTTL  time.Duration `envconfig:"FOODRUSH_CRON_LOCK_TTL" default:"1m"`

	// ProgressionAge is how long an order must sit in a status before the
	// progression job advances it to the next one.
	ProgressionAge time.Duration `envconfig:"FOODRUSH_CRON_PROGRESSION_AGE" default:"20s"`

	// CartRetention is how long a superseded cart survives before cleanup.
	CartRetention time.Duration `envconfig:"FOODRUSH_CRON_CART_RETENTION" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate     bool `envconfig:"FOODRUSH_AUTO_MIGRATE" default:"true"`
	SeedCatalog     bool `envconfig:"FOODRUSH_SEED_CATALOG" default:"true"`
	OrderSimulation bool `envconfig:"FOODRUSH_ORDER_SIMULATION" default:"true"`
}
