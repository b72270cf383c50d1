package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the merged config and its dates as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, ctx, err := newClientApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err = app.Resolve(ctx); err != nil {
				reportRefreshFailure(ctx, cmd, err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(app.Snapshot())
		},
	}

	registerClientFlags(cmd)
	return cmd
}
