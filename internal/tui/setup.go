package tui

import (
	"fmt"

	"github.com/theirongolddev/endow/internal/config"
	"github.com/theirongolddev/endow/internal/model"
	"github.com/theirongolddev/endow/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues receives the first-run form answers.
type setupValues struct {
	theme   string
	locale  string
	variant string
}

// Locales offered in setup. Any BCP 47 tag works in the config file.
var localeOptions = []struct{ label, tag string }{
	{"English (Canada)", "en-CA"},
	{"English (United States)", "en-US"},
	{"Français (Canada)", "fr-CA"},
	{"Deutsch", "de-DE"},
}

func setupValuesFrom(cfg config.Config) setupValues {
	return setupValues{
		theme:   cfg.Appearance.Theme,
		locale:  cfg.General.Locale,
		variant: cfg.General.Variant,
	}
}

// newSetupForm builds the preferences form shown on first launch and by
// `endow setup`. Answers are written into the returned values when the form
// completes.
func newSetupForm(vals *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Title, t.Name))
	}

	localeOpts := make([]huh.Option[string], 0, len(localeOptions))
	for _, l := range localeOptions {
		localeOpts = append(localeOpts, huh.NewOption(l.label, l.tag))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to endow").
				Description("Project how an endowment fund grows.\nA few preferences first; change them anytime with `endow setup`."),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
			huh.NewSelect[string]().
				Title("Number format").
				Options(localeOpts...).
				Value(&vals.locale),
			huh.NewSelect[string]().
				Title("Projection method").
				Options(variantOptions()...).
				Value(&vals.variant),
		),
	).WithShowHelp(true)
}

func variantOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(model.VariantDepositFirst.Label(), string(model.VariantDepositFirst)),
		huh.NewOption(model.VariantSeeded.Label(), string(model.VariantSeeded)),
	}
}

// apply copies the answers into cfg.
func (v setupValues) apply(cfg *config.Config) error {
	if _, err := model.ParseVariant(v.variant); err != nil {
		return err
	}
	cfg.Appearance.Theme = v.theme
	cfg.General.Locale = v.locale
	cfg.General.Variant = v.variant
	return nil
}

// RunSetup runs the preferences form standalone and saves the result.
func RunSetup() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	vals := setupValuesFrom(cfg)
	if err := newSetupForm(&vals).Run(); err != nil {
		return cfg, err
	}
	if err := vals.apply(&cfg); err != nil {
		return cfg, err
	}
	if err := config.Save(cfg); err != nil {
		return cfg, fmt.Errorf("saving config: %w", err)
	}
	return cfg, nil
}

// saveSetupConfig persists the first-run answers and applies them to the
// running app. An unreadable config file is left untouched.
func (a *App) saveSetupConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := a.setupVals.apply(&cfg); err != nil {
		return err
	}

	theme.SetActive(cfg.Appearance.Theme)
	a.money.Locale = cfg.General.Locale
	if v, err := model.ParseVariant(cfg.General.Variant); err == nil {
		a.state.SetVariant(v)
	}
	return config.Save(cfg)
}
