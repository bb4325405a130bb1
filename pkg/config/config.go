package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	Pricing      PricingConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Backend == StorageBackendPostgres {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Storage.Backend == StorageBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required for the redis backend", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPNEX_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPNEX_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPNEX_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"SHOPNEX_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"SHOPNEX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where the cart snapshot slot lives.
type StorageConfig struct {
	Backend     string `envconfig:"SHOPNEX_STORAGE_BACKEND" default:"sqlite"`
	SlotName    string `envconfig:"SHOPNEX_STORAGE_SLOT" default:"shopnex-cart-storage"`
	SQLitePath  string `envconfig:"SHOPNEX_STORAGE_SQLITE_PATH" default:"shopnex.db"`
	MemoryQuota int    `envconfig:"SHOPNEX_STORAGE_MEMORY_QUOTA_BYTES" default:"5242880"`
}

func (s *StorageConfig) validate() error {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case StorageBackendSQLite, StorageBackendPostgres, StorageBackendRedis, StorageBackendMemory:
	default:
		return fmt.Errorf("%s must be one of sqlite, postgres, redis, memory (got %q)", EnvStorageBackend, s.Backend)
	}
	if strings.TrimSpace(s.SlotName) == "" {
		return fmt.Errorf("%s must not be empty", EnvStorageSlot)
	}
	return nil
}

type DBConfig struct {
	DSN string `envconfig:"SHOPNEX_DB_DSN"`

	LegacyHost     string `envconfig:"SHOPNEX_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPNEX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPNEX_DB_USER"`
	LegacyPassword string `envconfig:"SHOPNEX_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPNEX_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPNEX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPNEX_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"SHOPNEX_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPNEX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPNEX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPNEX_REDIS_URL"`
	Address      string        `envconfig:"SHOPNEX_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPNEX_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPNEX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPNEX_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"SHOPNEX_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"SHOPNEX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPNEX_REDIS_READ_TIMEOUT" default:"2s"`
	WriteTimeout time.Duration `envconfig:"SHOPNEX_REDIS_WRITE_TIMEOUT" default:"2s"`
}

// CatalogConfig points at the product list. An empty path uses the embedded catalog.
type CatalogConfig struct {
	Path string `envconfig:"SHOPNEX_CATALOG_PATH"`
}

type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"SHOPNEX_PRICING_FREE_SHIPPING_THRESHOLD" default:"100"`
	ShippingFee           decimal.Decimal `envconfig:"SHOPNEX_PRICING_SHIPPING_FEE" default:"9.99"`
	TaxRate               decimal.Decimal `envconfig:"SHOPNEX_PRICING_TAX_RATE" default:"0.08"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPNEX_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPNEX_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
