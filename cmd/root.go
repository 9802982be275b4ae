// Package cmd implements the finportal CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/config"
	"github.com/theirongolddev/finportal/internal/form"
	"github.com/theirongolddev/finportal/internal/logging"
	"github.com/theirongolddev/finportal/internal/pipeline"
	"github.com/theirongolddev/finportal/internal/warehouse"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "finportal",
	Short: "Financial data submission portal",
	Long:  "Submit business unit revenue and expenses to a SQL warehouse and explore them on a live dashboard.",
	RunE:  runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagConfig != "" {
			config.SetPath(flagConfig)
		}
	},
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/finportal/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// env bundles what every data command needs.
type env struct {
	cfg       config.Config
	conn      *warehouse.Connector
	loader    *pipeline.Loader
	submitter *form.Submitter
	log       zerolog.Logger
}

// cliLogger logs to stderr at warn, or debug with --verbose.
func cliLogger() zerolog.Logger {
	if flagVerbose {
		return logging.New(os.Stderr, "debug", true)
	}
	return logging.New(os.Stderr, "warn", true)
}

// setup loads config and secrets and wires the connector, loader and
// submitter. A nil log uses cliLogger.
func setup(log *zerolog.Logger) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	sec, err := config.LoadSecrets()
	if err != nil {
		return nil, err
	}

	l := cliLogger()
	if log != nil {
		l = *log
	}

	conn, err := warehouse.New(warehouse.Config{
		Driver:   cfg.Warehouse.Driver,
		Host:     sec.Host,
		HTTPPath: sec.HTTPPath,
		Token:    sec.Token,
		Path:     cfg.SQLitePath(),
		Table:    cfg.Warehouse.Table,
		Timeout:  cfg.WarehouseTimeout(),
	}, l)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}

	loader := pipeline.NewLoader(conn, cfg.Warehouse.QueryLimit, cfg.CacheTTL(), nil, l)
	return &env{
		cfg:    cfg,
		conn:   conn,
		loader: loader,
		submitter: &form.Submitter{
			Spec:        form.NewSpec(cfg.Form),
			Inserter:    conn,
			Invalidator: loader,
			Log:         l,
		},
		log: l,
	}, nil
}

// progress prints a status line to stderr unless --quiet.
func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

// printViolations renders a validation failure in form field order. It
// reports false for any other error.
func printViolations(w io.Writer, spec form.Spec, err error) bool {
	var ve *form.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	var fields []string
	for _, f := range spec.Order {
		if _, ok := ve.Violations[f]; ok {
			fields = append(fields, f)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderViolations(fields, ve.Violations))
	return true
}
