package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/config"
	"github.com/theirongolddev/finportal/internal/form"
	"github.com/theirongolddev/finportal/internal/tui/components"
	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// settingField is one editable row of the Settings tab. set validates raw
// and writes it into cfg; it may also update live App state.
type settingField struct {
	label string
	hint  string
	get   func(a *App) string
	set   func(a *App, cfg *config.Config, raw string) error
}

func positiveInt(what string, dst *int) func(string) error {
	return func(raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number", what)
		}
		*dst = n
		return nil
	}
}

var settingFields = []settingField{
	{
		label: "Theme",
		hint:  "flexoki-dark, catppuccin-mocha, tokyo-night, terminal",
		get:   func(a *App) string { return a.cfg.Appearance.Theme },
		set: func(_ *App, cfg *config.Config, raw string) error {
			if !slices.ContainsFunc(theme.All, func(t theme.Theme) bool { return t.Name == raw }) {
				return fmt.Errorf("unknown theme %q", raw)
			}
			cfg.Appearance.Theme = raw
			theme.SetActive(raw)
			return nil
		},
	},
	{
		label: "Cache TTL",
		hint:  "30 (seconds, applies on restart)",
		get:   func(a *App) string { return strconv.Itoa(a.cfg.Cache.TTLSec) },
		set: func(_ *App, cfg *config.Config, raw string) error {
			return positiveInt("cache TTL", &cfg.Cache.TTLSec)(raw)
		},
	},
	{
		label: "Auto Refresh",
		hint:  "true or false",
		get:   func(a *App) string { return strconv.FormatBool(a.autoRefresh) },
		set: func(a *App, cfg *config.Config, raw string) error {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return errors.New("auto refresh must be true or false")
			}
			cfg.TUI.AutoRefresh = b
			a.autoRefresh = b
			return nil
		},
	},
	{
		label: "Recent Rows",
		hint:  "10",
		get:   func(a *App) string { return strconv.Itoa(a.cfg.General.RecentLimit) },
		set: func(_ *App, cfg *config.Config, raw string) error {
			return positiveInt("recent limit", &cfg.General.RecentLimit)(raw)
		},
	},
	{
		label: "Default Submitter",
		hint:  "name pre-filled in the form",
		get:   func(a *App) string { return a.cfg.Form.DefaultSubmitter },
		set: func(a *App, cfg *config.Config, raw string) error {
			cfg.Form.DefaultSubmitter = raw
			if !a.submit.submitting {
				a.submitter.Spec = form.NewSpec(cfg.Form)
			}
			return nil
		},
	},
	{
		label: "Warehouse Driver",
		hint:  "sqlite or databricks (applies on restart)",
		get:   func(a *App) string { return a.cfg.Warehouse.Driver },
		set: func(_ *App, cfg *config.Config, raw string) error {
			v := strings.ToLower(raw)
			if v != "sqlite" && v != "databricks" {
				return errors.New("driver must be sqlite or databricks")
			}
			cfg.Warehouse.Driver = v
			return nil
		},
	},
	{
		label: "Warehouse Table",
		hint:  "financial_submissions (applies on restart)",
		get:   func(a *App) string { return a.cfg.Warehouse.Table },
		set: func(_ *App, cfg *config.Config, raw string) error {
			if raw == "" {
				return errors.New("table name is required")
			}
			cfg.Warehouse.Table = raw
			return nil
		},
	},
}

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool
	saveErr error
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	f := settingFields[a.settings.cursor]
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	ti.Placeholder = f.hint
	ti.SetValue(f.get(&a))
	ti.Focus()

	a.settings.editing = true
	a.settings.saved = false
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited value to a copy of the config and only
// adopts it once it is on disk.
func (a *App) settingsSave() {
	cfg := a.cfg
	raw := strings.TrimSpace(a.settings.input.Value())
	if err := settingFields[a.settings.cursor].set(a, &cfg, raw); err != nil {
		a.settings.saveErr = err
		return
	}
	a.settings.saveErr = config.Save(cfg)
	if a.settings.saveErr == nil {
		a.cfg = cfg
		a.recompute()
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	plain := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hiLabel := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	hiValue := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	marker := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Render("▸ ")
	label := func(s string) string { return fmt.Sprintf("%-19s ", s) }

	var body strings.Builder
	for i, f := range settingFields {
		value := f.get(&a)
		if value == "" {
			value = "(not set)"
		}
		switch {
		case i == a.settings.cursor && a.settings.editing:
			body.WriteString(marker)
			body.WriteString(lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Render(label(f.label)))
			body.WriteString(a.settings.input.View())
		case i == a.settings.cursor:
			line := marker + hiLabel.Render(label(f.label+":")) + hiValue.Render(value)
			if gap := inner - lipgloss.Width(line); gap > 0 {
				line += lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", gap))
			}
			body.WriteString(line)
		default:
			body.WriteString(muted.Render("  " + label(f.label+":")))
			body.WriteString(plain.Render(value))
		}
		body.WriteString("\n")
	}

	switch {
	case a.settings.saveErr != nil:
		body.WriteString("\n" + lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).
			Render("Save failed: "+a.settings.saveErr.Error()))
	case a.settings.saved:
		body.WriteString("\n" + lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Render("Saved!"))
	}
	body.WriteString("\n" + muted.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	info := [][2]string{
		{"Warehouse", a.target},
		{"Rows loaded", cli.FormatNumber(int64(len(a.rows)))},
		{"Load time", fmt.Sprintf("%.1fs", a.loadTime.Seconds())},
		{"Config file", config.Path()},
		{"Secrets file", config.SecretsPath()},
		{"Log file", config.LogPath()},
	}
	lines := make([]string, len(info))
	for i, kv := range info {
		lines[i] = muted.Render(fmt.Sprintf("%-15s", kv[0]+":")) + plain.Render(kv[1])
	}

	return components.ContentCard("Settings", body.String(), cw) + "\n" +
		components.ContentCard("General", strings.Join(lines, "\n"), cw)
}
