package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finportal/internal/config"

	"github.com/spf13/cobra"
)

var flagPing bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagPing, "ping", false, "Also test the warehouse connection")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	sec, err := config.LoadSecrets()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file:  %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Secrets file: %s\n", config.SecretsPath())
	fmt.Println()

	fmt.Println("  [Warehouse]")
	fmt.Printf("    Driver:     %s\n", cfg.Warehouse.Driver)
	fmt.Printf("    Table:      %s\n", cfg.Warehouse.Table)
	fmt.Printf("    Timeout:    %ds\n", cfg.Warehouse.TimeoutSec)
	fmt.Printf("    Row limit:  %d\n", cfg.Warehouse.QueryLimit)
	if cfg.Warehouse.Driver == "sqlite" {
		fmt.Printf("    SQLite:     %s\n", cfg.SQLitePath())
	}
	fmt.Println()

	fmt.Println("  [Databricks]")
	fmt.Printf("    Host:       %s\n", config.Mask(sec.Host))
	fmt.Printf("    HTTP path:  %s\n", config.Mask(sec.HTTPPath))
	fmt.Printf("    Token:      %s\n", config.Mask(sec.Token))
	fmt.Println()

	fmt.Println("  [Cache]")
	fmt.Printf("    TTL:        %ds\n", cfg.Cache.TTLSec)
	fmt.Println()

	fmt.Println("  [Form]")
	fmt.Printf("    Units:      %v\n", cfg.Form.BusinessUnits)
	fmt.Printf("    Submitter:  %s\n", cfg.Form.DefaultSubmitter)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:      %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:    %s\n", cfg.Server.Addr)
	fmt.Println()

	if flagPing {
		e, err := setup(nil)
		if err != nil {
			return err
		}
		if err := e.conn.Ping(context.Background()); err != nil {
			fmt.Printf("  Connection: FAILED (%v)\n\n", err)
			return err
		}
		fmt.Printf("  Connection: ok (%s)\n\n", e.conn.Describe())
	}

	fmt.Println("  Run `finportal setup` to reconfigure.")
	return nil
}
