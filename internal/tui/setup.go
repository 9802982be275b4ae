package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/finportal/internal/config"
	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup wizard.
type SetupValues struct {
	Driver   string
	Host     string
	HTTPPath string
	Token    string
	Table    string
	Theme    string
}

// SetupValuesFrom pre-fills the wizard from the current config and secrets.
func SetupValuesFrom(cfg config.Config, sec config.Secrets) *SetupValues {
	return &SetupValues{
		Driver:   cfg.Warehouse.Driver,
		Host:     sec.Host,
		HTTPPath: sec.HTTPPath,
		Token:    sec.Token,
		Table:    cfg.Warehouse.Table,
		Theme:    cfg.Appearance.Theme,
	}
}

// Apply copies the answers into cfg and returns the secrets to store.
func (v *SetupValues) Apply(cfg *config.Config) config.Secrets {
	cfg.Warehouse.Driver = v.Driver
	if t := strings.TrimSpace(v.Table); t != "" {
		cfg.Warehouse.Table = t
	}
	cfg.Appearance.Theme = v.Theme
	return config.Secrets{
		Host:     strings.TrimSpace(v.Host),
		HTTPPath: strings.TrimSpace(v.HTTPPath),
		Token:    strings.TrimSpace(v.Token),
	}
}

// NewSetupForm builds the first-run wizard. The Databricks group is hidden
// when the local SQLite driver is chosen.
func NewSetupForm(v *SetupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	required := func(label string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New(label + " is required")
			}
			return nil
		}
	}
	notDatabricks := func() bool { return v.Driver != "databricks" }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to finportal").
				Description("Submit business unit financials and watch them on a live dashboard.\nThese answers are saved to "+config.Path()+"."),
			huh.NewSelect[string]().
				Title("Warehouse").
				Options(
					huh.NewOption("Local SQLite file", "sqlite"),
					huh.NewOption("Databricks SQL warehouse", "databricks"),
				).
				Value(&v.Driver),
			huh.NewInput().
				Title("Table").
				Placeholder("financial_submissions").
				Value(&v.Table),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Server hostname").
				Placeholder("adb-1234567890.12.azuredatabricks.net").
				Validate(required("hostname")).
				Value(&v.Host),
			huh.NewInput().
				Title("HTTP path").
				Placeholder("/sql/1.0/warehouses/abc123").
				Validate(required("HTTP path")).
				Value(&v.HTTPPath),
			huh.NewInput().
				Title("Access token").
				Description("Stored in "+config.SecretsPath()+" (mode 0600)").
				EchoMode(huh.EchoModePassword).
				Validate(required("token")).
				Value(&v.Token),
		).WithHideFunc(notDatabricks),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeBase16())
}
