package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/finportal/internal/config"
	"github.com/theirongolddev/finportal/internal/logging"
	"github.com/theirongolddev/finportal/internal/server"

	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve submissions and dashboard data over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8787)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.General.LogLevel
	if flagVerbose {
		level = "debug"
	}
	log := logging.New(os.Stderr, level, true)

	e, err := setup(&log)
	if err != nil {
		return err
	}

	addr := e.cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	svc := server.New(server.Config{
		Addr:         addr,
		EventsBuffer: e.cfg.Server.EventsBuffer,
		Target:       e.conn.Describe(),
	}, e.loader, e.submitter, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return svc.Run(ctx)
}
