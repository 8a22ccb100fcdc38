package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"toolchain-resolver/internal/app"
)

type validateOptions struct {
	catalogOptions
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load declarations and check every profile reference",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	bindCatalogFlags(cmd, &opts.catalogOptions)
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	catalog, err := catalogRequest(cmd, opts.catalogOptions)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{CatalogRequest: catalog})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "validated: %d declarations, %d platforms, %d dependencies, %d toggles\n",
		len(result.Sources), result.Platforms, result.Dependencies, result.Toggles)
	return nil
}
