// Package config loads and saves endow preferences from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/endow/internal/model"
	"github.com/theirongolddev/endow/internal/pipeline"
	"github.com/theirongolddev/endow/internal/projection"

	"github.com/BurntSushi/toml"
)

// Config holds all endow configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Defaults   DefaultsConfig   `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds display preferences.
type GeneralConfig struct {
	Variant  string `toml:"variant"`
	Locale   string `toml:"locale"`
	Currency string `toml:"currency,omitempty"` // label appended to amounts, e.g. "CDN"
}

// DefaultsConfig holds the values the calculator form starts with.
type DefaultsConfig struct {
	AnnualContribution float64 `toml:"annual_contribution"`
	PledgePeriod       int     `toml:"pledge_period"`
	ROIRate            float64 `toml:"roi_rate"`
	Horizon            int     `toml:"horizon"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds `endow serve` settings. Environment variables take
// precedence, see server.LoadConfig.
type ServerConfig struct {
	Addr       string `toml:"addr,omitempty"`
	MaxHorizon int    `toml:"max_horizon,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Variant: string(model.DefaultVariant),
			Locale:  "en-CA",
		},
		Defaults: DefaultsConfig{
			AnnualContribution: pipeline.DefaultAnnualContribution,
			PledgePeriod:       pipeline.DefaultPledgePeriod,
			ROIRate:            pipeline.DefaultROIRate,
			Horizon:            pipeline.DefaultHorizon,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "endow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "endow")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Params converts the configured form defaults into projection inputs.
func (c Config) Params() (model.Params, error) {
	v, err := model.ParseVariant(c.General.Variant)
	if err != nil {
		return model.Params{}, fmt.Errorf("config general.variant: %w", err)
	}
	d := c.Defaults
	return projection.NewParams(d.AnnualContribution, d.PledgePeriod, d.ROIRate, d.Horizon, v)
}
