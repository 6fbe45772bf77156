package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Cart     CartConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NOORMODEST_APP_ENV" required:"true"`
	Port         string `envconfig:"NOORMODEST_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"NOORMODEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NOORMODEST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the blob backend that holds per-session state.
type StorageConfig struct {
	Driver     string `envconfig:"NOORMODEST_STORAGE_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"NOORMODEST_STORAGE_SQLITE_PATH" default:"noormodest.db"`
}

func (s StorageConfig) IsSQLite() bool {
	return strings.EqualFold(s.Driver, StorageDriverSQLite)
}

func (s StorageConfig) IsRedis() bool {
	return strings.EqualFold(s.Driver, StorageDriverRedis)
}

func (s StorageConfig) validate(redis RedisConfig) error {
	switch {
	case s.IsSQLite():
		if strings.TrimSpace(s.SQLitePath) == "" {
			return fmt.Errorf("%s is required for the sqlite driver", EnvSQLitePath)
		}
	case s.IsRedis():
		if redis.URL == "" && redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis driver", EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", s.Driver)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"NOORMODEST_REDIS_URL"`
	Address      string        `envconfig:"NOORMODEST_REDIS_ADDR"`
	Password     string        `envconfig:"NOORMODEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"NOORMODEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NOORMODEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NOORMODEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NOORMODEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NOORMODEST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NOORMODEST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"NOORMODEST_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type CartConfig struct {
	// MaxQtyPerLine caps the merged quantity of a single cart line.
	MaxQtyPerLine int `envconfig:"NOORMODEST_CART_MAX_QTY_PER_LINE" default:"5"`
}

type CheckoutConfig struct {
	FlatShippingPaise          int64 `envconfig:"NOORMODEST_CHECKOUT_FLAT_SHIPPING_PAISE" default:"9900"`
	FreeShippingThresholdPaise int64 `envconfig:"NOORMODEST_CHECKOUT_FREE_SHIPPING_THRESHOLD_PAISE" default:"99900"`
	// TaxRateBasisPoints is the GST rate applied to the cart subtotal.
	TaxRateBasisPoints int64 `envconfig:"NOORMODEST_CHECKOUT_TAX_RATE_BASIS_POINTS" default:"1800"`
}
