package config

import (
	"fmt"
	"os"
	"time"

	"themesim/internal/domain"
	"themesim/internal/util"

	"gopkg.in/yaml.v3"
)

// Config is the explicit configuration surface of the simulator: the fixed
// asset list, the capital minimum, the default purchase date, and an
// optional purchase-price snapshot. It is loaded once and passed down -
// nothing in the engine reads ambient state.
type Config struct {
	Assets              []AssetConfig `yaml:"assets"`
	MinCapital          float64       `yaml:"minCapital"`
	DefaultPurchaseDate string        `yaml:"defaultPurchaseDate"`
	SnapshotPath        string        `yaml:"snapshotPath"`
}

type AssetConfig struct {
	Name   string  `yaml:"name"`
	Ticker string  `yaml:"ticker"`
	Sector string  `yaml:"sector"`
	Weight float64 `yaml:"weight"`
}

const defaultMinCapital = 1000

func Load(path string) (*Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open config %s: %w", path, err)
	}

	cfg := Config{}
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if len(cfg.Assets) == 0 {
		return nil, fmt.Errorf("config %s defines no assets", path)
	}
	for _, a := range cfg.Assets {
		if a.Ticker == "" {
			return nil, fmt.Errorf("config %s has an asset with no ticker", path)
		}
	}
	if cfg.MinCapital == 0 {
		cfg.MinCapital = defaultMinCapital
	}
	if cfg.DefaultPurchaseDate != "" {
		if _, err := time.Parse(time.DateOnly, cfg.DefaultPurchaseDate); err != nil {
			return nil, fmt.Errorf("invalid defaultPurchaseDate %q: %w", cfg.DefaultPurchaseDate, err)
		}
	}

	return &cfg, nil
}

func (c *Config) AssetDefinitions() []domain.AssetDefinition {
	assets := make([]domain.AssetDefinition, 0, len(c.Assets))
	for _, a := range c.Assets {
		assets = append(assets, domain.AssetDefinition{
			Name:   a.Name,
			Ticker: a.Ticker,
			Sector: a.Sector,
			Weight: a.Weight,
		})
	}
	return assets
}

// PurchaseDate returns the configured default purchase date, or one year
// before now when none is set.
func (c *Config) PurchaseDate(now time.Time) time.Time {
	if c.DefaultPurchaseDate == "" {
		return util.TruncateToDay(now.AddDate(-1, 0, 0))
	}
	t, err := time.Parse(time.DateOnly, c.DefaultPurchaseDate)
	if err != nil {
		// Load rejects unparseable dates already
		return util.TruncateToDay(now.AddDate(-1, 0, 0))
	}
	return t
}
