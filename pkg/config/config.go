package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "POSBILL"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Catalog snapshot backends.
const (
	CatalogBackendRedis    = "redis"
	CatalogBackendSQLite   = "sqlite"
	CatalogBackendPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Business BusinessConfig
	Catalog  CatalogConfig
	Invoice  InvoiceConfig
	DB       DBConfig
	Redis    RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validateBackend(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POSBILL_APP_ENV" default:"dev"`
	Port         string `envconfig:"POSBILL_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"POSBILL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POSBILL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BusinessConfig holds the fixed vendor header printed on every invoice.
type BusinessConfig struct {
	Name    string `envconfig:"POSBILL_BUSINESS_NAME" default:"Shivam Crackers"`
	Contact string `envconfig:"POSBILL_BUSINESS_CONTACT" default:"Mobile: +918210012972"`
}

type CatalogConfig struct {
	Backend string `envconfig:"POSBILL_CATALOG_BACKEND" default:"redis"`
	Key     string `envconfig:"POSBILL_CATALOG_KEY" default:"prices"`
}

func (c CatalogConfig) NormalizedBackend() string {
	return strings.TrimSpace(strings.ToLower(c.Backend))
}

type InvoiceConfig struct {
	CurrencySymbol string   `envconfig:"POSBILL_INVOICE_CURRENCY_SYMBOL" default:"₹"`
	Terms          []string `envconfig:"POSBILL_INVOICE_TERMS" default:"Goods once sold will not be taken back or exchanged.,All disputes are subject to Madhubani jurisdiction only."`
}

type DBConfig struct {
	DSN    string `envconfig:"POSBILL_DB_DSN"`
	Driver string `envconfig:"POSBILL_DB_DRIVER" default:"sqlite"`
	Path   string `envconfig:"POSBILL_DB_PATH" default:"posbill.db"`

	MaxOpenConns    int           `envconfig:"POSBILL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"POSBILL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"POSBILL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"POSBILL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"POSBILL_REDIS_URL"`
	Address      string        `envconfig:"POSBILL_REDIS_ADDR"`
	Password     string        `envconfig:"POSBILL_REDIS_PASSWORD"`
	DB           int           `envconfig:"POSBILL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POSBILL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POSBILL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POSBILL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POSBILL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"POSBILL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (c *Config) validateBackend() error {
	switch c.Catalog.NormalizedBackend() {
	case CatalogBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("catalog backend %q requires POSBILL_REDIS_URL or POSBILL_REDIS_ADDR", c.Catalog.Backend)
		}
	case CatalogBackendSQLite:
		if c.DB.DSN == "" && c.DB.Path == "" {
			return fmt.Errorf("catalog backend %q requires POSBILL_DB_DSN or POSBILL_DB_PATH", c.Catalog.Backend)
		}
	case CatalogBackendPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("catalog backend %q requires POSBILL_DB_DSN", c.Catalog.Backend)
		}
	default:
		return fmt.Errorf("unknown catalog backend %q", c.Catalog.Backend)
	}
	return nil
}
