package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/till/internal/pricing"
)

type CatalogSource string

const (
	CatalogSourceFile     CatalogSource = "file"
	CatalogSourcePostgres CatalogSource = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Till"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Store struct {
		Name   string `envconfig:"STORE_NAME" default:"Pop-up Store"`
		Footer string `envconfig:"RECEIPT_FOOTER" default:"Thank you for your purchase!"`
	}

	Catalog struct {
		Source CatalogSource `envconfig:"CATALOG_SOURCE" default:"file"`
		Path   string        `envconfig:"CATALOG_PATH" default:"./data/products.json"`
	}

	// Pricing holds the one tax rate applied to every sale of the process.
	// 0.10 is the reference rate; there are no per-item or per-category rates.
	Pricing struct {
		TaxRate string `envconfig:"TAX_RATE" default:"0.10"`
	}

	Scan struct {
		Debounce time.Duration `envconfig:"SCAN_DEBOUNCE" default:"500ms"`
		Stdin    bool          `envconfig:"SCAN_STDIN" default:"false"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"till"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Auth struct {
		Secret string `envconfig:"AUTH_SECRET"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Catalog.Source {
	case CatalogSourceFile, CatalogSourcePostgres:
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}

	rate, err := pricing.ParseRate(cfg.Pricing.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE: %w", err)
	}

	if _, err := pricing.NewCalculator(rate); err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE: %w", err)
	}

	if cfg.Catalog.Source == CatalogSourceFile && strings.TrimSpace(cfg.Catalog.Path) == "" {
		return nil, fmt.Errorf("CATALOG_PATH is required for the file catalog source")
	}

	return &cfg, nil
}
