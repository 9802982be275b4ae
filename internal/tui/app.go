// Package tui provides the interactive Bubble Tea dashboard for finportal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/config"
	"github.com/theirongolddev/finportal/internal/form"
	"github.com/theirongolddev/finportal/internal/model"
	"github.com/theirongolddev/finportal/internal/pipeline"
	"github.com/theirongolddev/finportal/internal/tui/components"
	"github.com/theirongolddev/finportal/internal/tui/theme"
	"github.com/theirongolddev/finportal/internal/warehouse"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// DataLoadedMsg is sent when a dashboard load finishes.
type DataLoadedMsg struct {
	Snapshot pipeline.Snapshot
	Err      error
	Took     time.Duration
}

// SubmitDoneMsg is sent when a form submission finishes.
type SubmitDoneMsg struct {
	Submission model.Submission
	Err        error
}

// Deps wires the dashboard to its data sources.
type Deps struct {
	Config    config.Config
	Loader    *pipeline.Loader
	Submitter *form.Submitter
	Target    string // connector description for the status bar
	Log       zerolog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	cfg       config.Config
	loader    *pipeline.Loader
	submitter *form.Submitter
	target    string
	log       zerolog.Logger

	// Data
	rows     []model.Submission
	stats    model.SummaryStats
	units    []model.UnitStats
	recent   []model.Submission
	loaded   bool
	loadTime time.Duration
	loadErr  error

	// Refresh state
	autoRefresh bool
	refreshing  bool

	// Transient notice in the status bar
	notice    string
	noticeErr bool
	noticeAt  time.Time

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	// Per-tab state
	submit   submitState
	settings settingsState
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	noticeTTL = 6 * time.Second
)

const (
	tabOverview = iota
	tabRevenue
	tabMargins
	tabUnits
	tabSubmit
	tabSettings
)

// NewApp creates a new TUI app model.
func NewApp(d Deps) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:         d.Config,
		loader:      d.Loader,
		submitter:   d.Submitter,
		target:      d.Target,
		log:         d.Log,
		autoRefresh: d.Config.TUI.AutoRefresh,
		spinner:     sp,
		refreshing:  true,
		submit:      newSubmitState(d.Submitter.Spec),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.loader, false),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a *App) recompute() {
	a.stats = pipeline.Aggregate(a.rows)
	a.units = pipeline.AggregateUnits(a.rows)
	a.recent = pipeline.Recent(a.rows, a.cfg.General.RecentLimit)
}

func (a *App) setNotice(msg string, isErr bool) {
	a.notice = msg
	a.noticeErr = isErr
	a.noticeAt = time.Now()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.submit.form != nil {
			a.submit.form = a.submit.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				return a.switchTab(tab)
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// The submission form owns the keyboard while it is focused.
		if a.activeTab == tabSubmit && a.submit.form != nil && !a.submit.submitting {
			if key == "esc" {
				return a.switchTab(tabOverview)
			}
			return a.updateSubmitForm(msg)
		}

		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				a.settings.cursor = min(a.settings.cursor+1, len(settingFields)-1)
				return a, nil
			case "k", "up":
				a.settings.cursor = max(a.settings.cursor-1, 0)
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if !a.refreshing {
				a.refreshing = true
				return a, loadDataCmd(a.loader, true)
			}
			return a, nil
		case "R":
			a.autoRefresh = !a.autoRefresh
			a.cfg.TUI.AutoRefresh = a.autoRefresh
			if err := config.Save(a.cfg); err != nil {
				a.log.Warn().Err(err).Msg("saving auto-refresh preference")
			}
			return a, nil
		case "left":
			return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		case "right", "tab":
			return a.switchTab((a.activeTab + 1) % len(components.Tabs))
		}
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				return a.switchTab(idx)
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.refreshing = false
		a.loadTime = msg.Took
		a.loadErr = msg.Err
		if msg.Err != nil {
			a.setNotice(describeError(msg.Err), true)
		}
		// Last-known-good rows come back with the error; an empty snapshot
		// after a failure keeps whatever is on screen.
		if msg.Err == nil || len(msg.Snapshot.Rows) > 0 {
			a.rows = msg.Snapshot.Rows
			a.recompute()
		}
		a.loaded = true
		return a, nil

	case SubmitDoneMsg:
		return a.handleSubmitDone(msg)

	case spinner.TickMsg:
		if a.refreshing || a.submit.submitting {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.notice != "" && time.Since(a.noticeAt) > noticeTTL {
			a.notice = ""
		}
		if a.loaded && a.autoRefresh && !a.refreshing && a.loader.State() == pipeline.StateStale {
			a.refreshing = true
			cmds = append(cmds, loadDataCmd(a.loader, false), a.spinner.Tick)
		}
		return a, tea.Batch(cmds...)
	}

	// Cursor blinks and other internal messages go to the active form.
	if a.activeTab == tabSubmit && a.submit.form != nil {
		return a.updateSubmitForm(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) switchTab(idx int) (tea.Model, tea.Cmd) {
	a.activeTab = idx
	a.showHelp = false
	if idx == tabSubmit && a.submit.form == nil {
		return a.resetSubmitForm(a.submitter.Spec.Defaults())
	}
	return a, nil
}

// describeError turns a load or submit failure into a one-line notice.
func describeError(err error) string {
	var ve *form.ValidationError
	switch {
	case errors.As(err, &ve):
		return err.Error()
	case errors.Is(err, warehouse.ErrConnect):
		return "Cannot reach the warehouse: " + rootCause(err)
	case errors.Is(err, warehouse.ErrQuery):
		return "Warehouse query failed: " + rootCause(err)
	default:
		return err.Error()
	}
}

func rootCause(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  finportal needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return fitHeight(msg, h)
}

// overlay centres a bordered panel on the full screen.
func (a App) overlay(body string, padY, padX int) string {
	t := theme.Active
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(padY, padX).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, panel,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	body := logo.Render("◈ finportal") + muted.Render(" · Financial Data Portal") + "\n\n" +
		a.spinner.View() + muted.Render(" Querying "+a.target)
	return a.overlay(body, 2, 4)
}

type binding struct{ key, desc string }

var helpSections = []struct {
	name     string
	bindings []binding
}{
	{"Navigation", []binding{
		{"o v m u n x", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k", "Move in settings"},
	}},
	{"Submit form", []binding{
		{"tab ⇧tab", "Next / Previous field"},
		{"enter", "Confirm field / Submit"},
		{"esc", "Leave the form"},
	}},
	{"Actions", []binding{
		{"r", "Refresh data (clears cache)"},
		{"R", "Toggle auto-refresh"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
}

func (a App) viewHelp() string {
	t := theme.Active
	bg := lipgloss.NewStyle().Background(t.Surface)
	keyStyle := bg.Foreground(t.Cyan).Bold(true)
	descStyle := bg.Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(bg.Foreground(t.AccentBright).Bold(true).Render("◈ Keyboard Shortcuts"))
	for _, s := range helpSections {
		b.WriteString("\n\n" + bg.Foreground(t.Accent).Bold(true).Render(s.name))
		for _, k := range s.bindings {
			fmt.Fprintf(&b, "\n  %s  %s", keyStyle.Render(fmt.Sprintf("%-12s", k.key)), descStyle.Render(k.desc))
		}
	}
	b.WriteString("\n\n" + bg.Foreground(t.TextDim).Render("Press any key to close"))
	return a.overlay(b.String(), 1, 3)
}

func (a App) status() components.Status {
	s := components.Status{
		TTL:         cli.FormatAge(a.loader.TTL()),
		Driver:      a.target,
		State:       a.loader.State().String(),
		Refreshing:  a.refreshing || a.submit.submitting,
		AutoRefresh: a.autoRefresh,
		Notice:      a.notice,
		NoticeIsErr: a.noticeErr,
	}
	if a.loader.State() != pipeline.StateEmpty {
		if age := a.loader.Age(); age > 0 {
			s.DataAge = cli.FormatAge(age)
		}
	}
	return s
}

func (a App) viewMain() string {
	t := theme.Active
	header := components.RenderTabBar(a.activeTab, a.width)
	footer := components.RenderStatusBar(a.width, a.status())
	bodyH := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), minContentHeight)

	cw := a.contentWidth()
	var body string
	switch a.activeTab {
	case tabOverview:
		body = a.renderOverviewTab(cw)
	case tabRevenue:
		body = a.renderRevenueTab(cw)
	case tabMargins:
		body = a.renderMarginsTab(cw)
	case tabUnits:
		body = a.renderUnitsTab(cw)
	case tabSubmit:
		body = a.renderSubmitTab(cw)
	case tabSettings:
		body = a.renderSettingsTab(cw)
	}

	body = fillBackground(fitHeight(body, bodyH), cw, t.Background)
	body = lipgloss.Place(a.width, bodyH, lipgloss.Center, lipgloss.Top, body,
		lipgloss.WithWhitespaceBackground(t.Background))

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, screen,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadDataCmd runs the dashboard query. force bypasses the cache.
func loadDataCmd(l *pipeline.Loader, force bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx := context.Background()
		var (
			snap pipeline.Snapshot
			err  error
		)
		if force {
			snap, err = l.Refresh(ctx)
		} else {
			snap, err = l.Load(ctx)
		}
		return DataLoadedMsg{Snapshot: snap, Err: err, Took: time.Since(start)}
	}
}

func submitCmd(s *form.Submitter, in form.Input) tea.Cmd {
	return func() tea.Msg {
		sub, err := s.Submit(context.Background(), in)
		return SubmitDoneMsg{Submission: sub, Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// unitSeries returns a stable colour index per business unit, following the
// configured choice order so colours do not shift as data changes.
func (a App) unitSeries(unit string) int {
	for i, u := range a.submitter.Spec.Units() {
		if u == unit {
			return i
		}
	}
	return len(a.submitter.Spec.Units()) + int(hashString(unit)%8)
}

func hashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// truncStr shortens s to limit runes, marking the cut with an ellipsis.
func truncStr(s string, limit int) string {
	r := []rune(s)
	switch {
	case limit <= 0:
		return ""
	case len(r) <= limit:
		return s
	}
	return string(r[:limit-1]) + "…"
}

// fitHeight clips or pads s to exactly h lines.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return strings.Join(lines[:h], "\n")
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillBackground widens every line to w so no cell is left unpainted.
func fillBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX maps a click column on the tab bar to a tab index, or -1. Widths
// follow RenderTabBar, with a one-column separator between tabs.
func (a App) tabAtX(x int) int {
	left := 0
	for i, tab := range components.Tabs {
		right := left + components.TabVisualWidth(tab, i == a.activeTab)
		if x >= left && x < right {
			return i
		}
		left = right + 1
	}
	return -1
}
