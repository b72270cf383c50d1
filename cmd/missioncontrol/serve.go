package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/mission-control/internal/config"
	"github.com/MKhiriev/mission-control/internal/handler"
	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/internal/server"
	"github.com/MKhiriev/mission-control/models"
)

func newServeCommand(info models.AppBuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a JSON config document for development",
		Long: `Serve publishes --file at /config together with a few broken variants
(/config/empty, /config/invalid, /config/array) for exercising clients.

Example:
  missioncontrol serve -a localhost:8080 -f ./remote.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.GetServerConfig(cmd.Flags())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log := logger.NewLogger("missioncontrol-server")
			log.Debug().Any("config", cfg).Msg("received configs")

			handlers, err := handler.NewHandlers(cfg, info, log)
			if err != nil {
				return fmt.Errorf("create handlers: %w", err)
			}

			srv, err := server.NewServer(handlers, cfg, log)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
			defer stop()

			return srv.Run(ctx)
		},
	}

	config.RegisterCommonFlags(cmd.Flags())
	config.RegisterServerFlags(cmd.Flags())
	return cmd
}
