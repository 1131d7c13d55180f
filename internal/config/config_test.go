package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/endow/internal/model"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if Exists() {
		t.Fatal("Exists() = true for empty config dir")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p.Horizon != 5 || p.PledgePeriod != 5 || p.Variant != model.VariantDepositFirst {
		t.Errorf("default params = %+v", p)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.Variant = "b"
	cfg.General.Currency = "CDN"
	cfg.Defaults.Horizon = 20
	cfg.Appearance.Theme = "tokyo-night"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.Currency != "CDN" || got.Appearance.Theme != "tokyo-night" {
		t.Errorf("loaded config = %+v", got)
	}

	p, err := got.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p.Variant != model.VariantSeeded || p.Horizon != 20 {
		t.Errorf("params = %+v, want variant b horizon 20", p)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "endow", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[defaults]\nroi_rate = 7.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.ROIRate != 7.5 {
		t.Errorf("ROIRate = %v, want 7.5", cfg.Defaults.ROIRate)
	}
	if cfg.Defaults.AnnualContribution != 10000 {
		t.Errorf("AnnualContribution = %v, want default 10000", cfg.Defaults.AnnualContribution)
	}
}

func TestLoad_BadVariant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.Variant = "z"
	if _, err := cfg.Params(); err == nil {
		t.Fatal("Params accepted unknown variant")
	}
}
