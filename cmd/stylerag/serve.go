package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vichi100/style-api-server/internal/server"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API over HTTP",
		Long: `Initialize the vector index (ingesting the corpus if needed) and serve
the vector-score and rule-search endpoints. Initialization completes
before the listener accepts traffic.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}
			if err := svc.Initialize(cmd.Context()); err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			slog.Info("serving scoring API", "addr", addr)
			return server.New(svc, slog.Default()).Start(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
