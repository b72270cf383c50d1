package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/mission-control/models"
)

var errKeyNotFound = errors.New("key not found")

func newGetCommand() *cobra.Command {
	var (
		typeName string
		fallback string
	)

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Resolve one setting",
		Long: `Get refreshes the remote document once (when a URL is configured) and
prints the value of KEY from the first tier that holds it with the requested
type. A failed refresh is reported on stderr and resolution continues from
the cached and local tiers.

Example:
  missioncontrol get TestInt --type int --fallback 0 -u http://localhost:8080/config`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseKind(typeName)
			if err != nil {
				return err
			}

			var fb *models.Value
			if cmd.Flags().Changed("fallback") {
				v, err := parseFallback(kind, fallback)
				if err != nil {
					return err
				}
				fb = &v
			}

			app, ctx, err := newClientApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err = app.Resolve(ctx); err != nil {
				reportRefreshFailure(ctx, cmd, err)
			}

			value, ok := app.Lookup(args[0], kind)
			if !ok {
				if fb == nil {
					return fmt.Errorf("%w: %s (%s)", errKeyNotFound, args[0], kind)
				}
				value = *fb
			}

			fmt.Fprintln(cmd.OutOrStdout(), value.String())
			return nil
		},
	}

	registerClientFlags(cmd)
	cmd.Flags().StringVarP(&typeName, "type", "t", "string", "value type: bool, int, double or string")
	cmd.Flags().StringVar(&fallback, "fallback", "", "value printed when no tier holds KEY")

	return cmd
}

// parseFallback converts a command-line literal into a value of kind.
func parseFallback(kind models.Kind, s string) (models.Value, error) {
	switch kind {
	case models.KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return models.Value{}, fmt.Errorf("fallback %q is not a bool: %w", s, err)
		}
		return models.Bool(b), nil
	case models.KindInt:
		i, err := strconv.Atoi(s)
		if err != nil {
			return models.Value{}, fmt.Errorf("fallback %q is not an int: %w", s, err)
		}
		return models.Int(i), nil
	case models.KindDouble:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Value{}, fmt.Errorf("fallback %q is not a double: %w", s, err)
		}
		return models.Double(f), nil
	case models.KindString:
		return models.String(s), nil
	default:
		return models.Value{}, fmt.Errorf("%w: %s", models.ErrUnknownKind, kind)
	}
}
