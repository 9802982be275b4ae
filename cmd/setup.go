package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/finportal/internal/config"
	"github.com/theirongolddev/finportal/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	sec, err := config.LoadSecrets()
	if err != nil {
		return err
	}

	vals := tui.SetupValuesFrom(cfg, sec)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing was saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	newSec := vals.Apply(&cfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if cfg.Warehouse.Driver == "databricks" {
		if err := config.SaveSecrets(newSec); err != nil {
			return fmt.Errorf("saving secrets: %w", err)
		}
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	if cfg.Warehouse.Driver == "databricks" {
		fmt.Printf("  Credentials saved to %s\n", config.SecretsPath())
	}
	fmt.Println("  Run `finportal config --ping` to test the connection.")
	fmt.Println("  Run `finportal setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
