package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/enrichment"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/pricetable"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/valuation"
)

// Config is the full enricher configuration, loaded from TOML
type Config struct {
	Log        LogConfig            `toml:"log"`
	Input      InputConfig          `toml:"input"`
	Output     OutputConfig         `toml:"output"`
	Lookup     LookupConfig         `toml:"lookup"`
	Enrichment EnrichmentConfig     `toml:"enrichment"`
	Views      []ViewConfig         `toml:"views"`
	Table      map[string]RarityRow `toml:"table"`
	DB         DBConfig             `toml:"db"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type InputConfig struct {
	Path string `toml:"path"`
}

type OutputConfig struct {
	EnrichedPath string `toml:"enriched_path"`
	ReportDir    string `toml:"report_dir"`
}

type LookupConfig struct {
	Enabled   bool   `toml:"enabled"`
	BaseURL   string `toml:"base_url"`
	CacheSize int    `toml:"cache_size"`
}

type EnrichmentConfig struct {
	Workers int `toml:"workers"`
}

// ViewConfig configures one report over the enriched batch
type ViewConfig struct {
	Name       string   `toml:"name"`
	Dimensions []string `toml:"dimensions"`
	Mode       string   `toml:"mode"`
}

// RarityRow overrides one rarity's multiplier-table row
type RarityRow struct {
	FoilMultiplier    float64 `toml:"foil_multiplier"`
	NonfoilMultiplier float64 `toml:"nonfoil_multiplier"`
	FloorPrice        float64 `toml:"floor_price"`
}

type DBConfig struct {
	Enabled bool   `toml:"enabled"`
	DSN     string `toml:"dsn"`
}

// Load reads and decodes a TOML config file, applying defaults for anything
// left unset
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Output.EnrichedPath == "" {
		c.Output.EnrichedPath = "enriched_collection.csv"
	}
	if c.Output.ReportDir == "" {
		c.Output.ReportDir = "reports"
	}
	if c.Lookup.CacheSize <= 0 {
		c.Lookup.CacheSize = 4096
	}
	if c.Enrichment.Workers <= 0 {
		c.Enrichment.Workers = 4
	}
	if len(c.Views) == 0 {
		c.Views = []ViewConfig{
			{Name: "value_by_set", Dimensions: []string{"set_code"}, Mode: "total_value"},
			{Name: "value_by_rarity_foil", Dimensions: []string{"rarity", "foil"}, Mode: "total_value"},
			{Name: "unit_price_by_tier", Dimensions: []string{"tier"}, Mode: "unit_price"},
		}
	}
}

// BuildTable returns the multiplier table: the baseline when no overrides are
// configured, otherwise the baseline with the configured rows replaced
func (c *Config) BuildTable() (pricetable.Table, error) {
	if len(c.Table) == 0 {
		return pricetable.Default(), nil
	}

	specs := defaultSpecs()
	for rarityName, row := range c.Table {
		rarity, ok := domain.ParseRarity(rarityName)
		if !ok {
			return pricetable.Table{}, fmt.Errorf("table override for unrecognized rarity %q", rarityName)
		}
		specs[rarity] = pricetable.RaritySpec{
			FoilMultiplier:    decimal.NewFromFloat(row.FoilMultiplier),
			NonfoilMultiplier: decimal.NewFromFloat(row.NonfoilMultiplier),
			FloorPrice:        decimal.NewFromFloat(row.FloorPrice),
		}
	}

	table, err := pricetable.New(specs)
	if err != nil {
		return pricetable.Table{}, fmt.Errorf("invalid table overrides: %w", err)
	}
	return table, nil
}

// defaultSpecs mirrors the pricetable baseline so overrides replace single
// rarities without dropping the rest
func defaultSpecs() map[domain.Rarity]pricetable.RaritySpec {
	return map[domain.Rarity]pricetable.RaritySpec{
		domain.RarityCommon: {
			FoilMultiplier:    decimal.NewFromFloat(2.0),
			NonfoilMultiplier: decimal.NewFromFloat(1.0),
			FloorPrice:        decimal.NewFromFloat(0.05),
		},
		domain.RarityUncommon: {
			FoilMultiplier:    decimal.NewFromFloat(3.0),
			NonfoilMultiplier: decimal.NewFromFloat(1.0),
			FloorPrice:        decimal.NewFromFloat(0.10),
		},
		domain.RarityRare: {
			FoilMultiplier:    decimal.NewFromFloat(4.0),
			NonfoilMultiplier: decimal.NewFromFloat(1.0),
			FloorPrice:        decimal.NewFromFloat(0.25),
		},
		domain.RarityMythic: {
			FoilMultiplier:    decimal.NewFromFloat(5.4),
			NonfoilMultiplier: decimal.NewFromFloat(1.0),
			FloorPrice:        decimal.NewFromFloat(0.50),
		},
	}
}

// BuildViews resolves configured views into enrichment views.
// An unrecognized dimension or mode name is a configuration error and fatal.
func (c *Config) BuildViews() ([]enrichment.View, error) {
	views := make([]enrichment.View, 0, len(c.Views))

	for _, viewCfg := range c.Views {
		groupBy := make([]valuation.Dimension, 0, len(viewCfg.Dimensions))
		for _, name := range viewCfg.Dimensions {
			dim, err := valuation.ParseDimension(name)
			if err != nil {
				return nil, fmt.Errorf("view %q: %w", viewCfg.Name, err)
			}
			groupBy = append(groupBy, dim)
		}

		mode, err := valuation.ParseMode(viewCfg.Mode)
		if err != nil {
			return nil, fmt.Errorf("view %q: %w", viewCfg.Name, err)
		}

		views = append(views, enrichment.View{
			Name:    viewCfg.Name,
			GroupBy: groupBy,
			Mode:    mode,
		})
	}

	return views, nil
}
