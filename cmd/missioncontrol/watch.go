package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/mission-control/internal/logger"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh periodically and print every outcome as a JSON line",
		Long: `Watch refreshes the remote document every --refresh-interval until
interrupted. With --metrics-address it also serves Prometheus metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, ctx, err := newClientApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			logger.FromContext(ctx).Info().Msg("watching remote config")
			return app.Watch(ctx, cmd.OutOrStdout())
		},
	}

	registerClientFlags(cmd)
	return cmd
}
