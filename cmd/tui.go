package cmd

import (
	"fmt"

	"github.com/theirongolddev/finportal/internal/config"
	"github.com/theirongolddev/finportal/internal/logging"
	"github.com/theirongolddev/finportal/internal/tui"
	"github.com/theirongolddev/finportal/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive dashboard and submission form",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The alt screen owns stdout; logs go to a file.
	level := cfg.General.LogLevel
	if flagVerbose {
		level = "debug"
	}
	log, closer, err := logging.OpenFile(config.LogPath(), level)
	if err != nil {
		return err
	}
	defer closer.Close()

	e, err := setup(&log)
	if err != nil {
		return err
	}
	log.Info().Str("target", e.conn.Describe()).Msg("dashboard starting")

	app := tui.NewApp(tui.Deps{
		Config:    e.cfg,
		Loader:    e.loader,
		Submitter: e.submitter,
		Target:    e.conn.Describe(),
		Log:       log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
