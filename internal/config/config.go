package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"shopseed/internal/model"

	"github.com/spf13/viper"
)

const ConfigFileName = "shopseed.config.json"

type Config struct {
	Version  string   `json:"version" mapstructure:"version"`
	Database Database `json:"database" mapstructure:"database"`
	Generate Generate `json:"generate" mapstructure:"generate"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Generate holds the file-level defaults for the generate command; flags
// override these per invocation.
type Generate struct {
	Customers          int     `json:"customers" mapstructure:"customers"`
	Products           int     `json:"products" mapstructure:"products"`
	Orders             int     `json:"orders" mapstructure:"orders"`
	MaxItemsPerOrder   int     `json:"max_items_per_order" mapstructure:"max_items_per_order"`
	MinVariantsPerProd int     `json:"min_variants_per_product" mapstructure:"min_variants_per_product"`
	MaxVariantsPerProd int     `json:"max_variants_per_product" mapstructure:"max_variants_per_product"`
	ChaosPercent       float64 `json:"chaos_percent" mapstructure:"chaos_percent"`
	Scale              int     `json:"scale" mapstructure:"scale"`
	Seed               int64   `json:"seed" mapstructure:"seed"`
	MergePolicy        string  `json:"merge_policy" mapstructure:"merge_policy"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
		},
		Generate: Generate{
			Customers:          100,
			Products:           50,
			Orders:             500,
			MaxItemsPerOrder:   5,
			MinVariantsPerProd: 1,
			MaxVariantsPerProd: 4,
			ChaosPercent:       0,
			Scale:              1,
			Seed:               42,
			MergePolicy:        string(model.MergeRefresh),
		},
	}
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Generate.Scale <= 0 {
		cfg.Generate.Scale = 1
	}

	return cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	switch c.Database.Provider {
	case "postgresql", "postgres":
	default:
		return fmt.Errorf("unsupported database provider: %s (only postgresql is supported)", c.Database.Provider)
	}
	return nil
}

// IsInitialized reports whether a config file exists in the working directory.
func IsInitialized() bool {
	_, err := os.Stat(ConfigFileName)
	return err == nil
}

// InitializeProject writes a default config file. It refuses to overwrite an
// existing one.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("project already initialized: %s exists", ConfigFileName)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(ConfigFileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}

	return nil
}

// RunOptions is the fully resolved configuration for one generation run:
// config-file defaults merged with flags, window bounds parsed. It is
// validated before any store mutation happens.
type RunOptions struct {
	Customers          int
	Products           int
	Orders             int
	MaxItemsPerOrder   int
	MinVariantsPerProd int
	MaxVariantsPerProd int
	ChaosPercent       float64
	Scale              int
	Seed               int64
	WindowStart        time.Time
	WindowEnd          time.Time
	Append             bool // accumulate window orders instead of replacing them
	MergePolicy        model.MergePolicy
}

func (o *RunOptions) Validate() error {
	if o.Customers < 0 || o.Products < 0 || o.Orders < 0 {
		return fmt.Errorf("target counts must not be negative")
	}
	if o.MaxItemsPerOrder < 1 {
		return fmt.Errorf("max items per order must be at least 1, got %d", o.MaxItemsPerOrder)
	}
	if o.MinVariantsPerProd < 1 || o.MaxVariantsPerProd < o.MinVariantsPerProd {
		return fmt.Errorf("invalid variants-per-product range [%d, %d]", o.MinVariantsPerProd, o.MaxVariantsPerProd)
	}
	if o.ChaosPercent < 0 || o.ChaosPercent > 100 {
		return fmt.Errorf("chaos percent must be in [0, 100], got %g", o.ChaosPercent)
	}
	if o.Scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", o.Scale)
	}
	if !o.WindowStart.Before(o.WindowEnd) {
		return fmt.Errorf("window start %s must be before end %s",
			o.WindowStart.Format(time.RFC3339), o.WindowEnd.Format(time.RFC3339))
	}
	if !o.MergePolicy.Valid() {
		return fmt.Errorf("unknown merge policy: %q", o.MergePolicy)
	}
	return nil
}

// ScaledCustomers returns the customer target with the scale multiplier applied.
func (o *RunOptions) ScaledCustomers() int { return o.Customers * o.Scale }
func (o *RunOptions) ScaledProducts() int  { return o.Products * o.Scale }
func (o *RunOptions) ScaledOrders() int    { return o.Orders * o.Scale }
