package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finportal/internal/warehouse"

	"github.com/spf13/cobra"
)

var flagApply bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print (or apply) the submissions table DDL",
	RunE:  runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&flagApply, "apply", false, "Create the table in the configured warehouse if missing")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(_ *cobra.Command, _ []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}

	ddl, err := warehouse.DDL(e.conn.Driver(), e.cfg.Warehouse.Table)
	if err != nil {
		return err
	}

	if !flagApply {
		fmt.Println(ddl)
		return nil
	}

	progress("Applying schema to %s...", e.conn.Describe())
	if err := e.conn.EnsureTable(context.Background()); err != nil {
		return err
	}
	fmt.Printf("  Table %s is ready.\n", e.cfg.Warehouse.Table)
	return nil
}
