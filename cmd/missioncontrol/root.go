package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/mission-control/internal/client"
	"github.com/MKhiriev/mission-control/internal/config"
	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/models"
)

func newRootCommand() *cobra.Command {
	info := buildInfo()

	rootCmd := &cobra.Command{
		Use:   "missioncontrol",
		Short: "Remote settings with cached and local fallbacks",
		Long: `missioncontrol resolves settings from a remote JSON document, falling
back to the last cached copy and then to local defaults.

Settings are read from flags, environment variables (REMOTE_URL,
STORAGE_DB_DSN, ...), an optional JSON config file and built-in defaults,
in that order.`,
		Version:       info.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(
		newGetCommand(),
		newDumpCommand(),
		newWatchCommand(),
		newServeCommand(info),
		newVersionCommand(info),
	)

	return rootCmd
}

func buildInfo() models.AppBuildInfo {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
}

// registerClientFlags adds the flags shared by get, dump and watch.
func registerClientFlags(cmd *cobra.Command) {
	config.RegisterCommonFlags(cmd.Flags())
	config.RegisterClientFlags(cmd.Flags())
}

// newClientApp loads the client configuration from cmd's flags and opens the
// app. The returned context carries the command logger. The caller must
// Close the app.
func newClientApp(ctx context.Context, cmd *cobra.Command) (*client.App, context.Context, error) {
	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewClientLogger("missioncontrol-"+cmd.Name(), cfg.LogFile, cfg.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")
	ctx = log.WithContext(ctx)

	app, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		log.Err(err).Msg("init client app error")
		return nil, nil, err
	}
	return app, ctx, nil
}

// reportRefreshFailure logs a failed refresh and tells the user; resolution
// continues from the cached and local tiers.
func reportRefreshFailure(ctx context.Context, cmd *cobra.Command, err error) {
	logger.FromContext(ctx).Warn().Err(err).Msg("refresh failed")
	fmt.Fprintln(cmd.ErrOrStderr(), "refresh failed:", err)
}
