package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"toolchain-resolver/internal/app"
)

type listOptions struct {
	catalogOptions
	Family  string
	Toggles bool
}

func newListCommand() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the platforms of an architecture family",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, opts)
		},
	}
	bindCatalogFlags(cmd, &opts.catalogOptions)
	cmd.Flags().StringVar(&opts.Family, "family", "", "Architecture family (empty for all platforms)")
	cmd.Flags().BoolVar(&opts.Toggles, "toggles", false, "Also list the optional flags")
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, opts listOptions) error {
	catalog, err := catalogRequest(cmd, opts.catalogOptions)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.List(ctx, app.ListRequest{
		CatalogRequest: catalog,
		Family:         resolveString(cmd, opts.Family, "family", "family"),
	})
	if err != nil {
		return err
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(profileTable(result.Profiles)).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	if resolveBool(cmd, opts.Toggles, "list_toggles", "toggles") {
		fmt.Fprintf(cmd.OutOrStdout(), "toggles: %s\n", strings.Join(result.Toggles, ", "))
	}
	return nil
}

func profileTable(profiles []app.ProfileSummary) pterm.TableData {
	data := pterm.TableData{{"PLATFORM", "OS", "ARCH", "EXTENDS", "COMPILER", "REQUIRED", "OPTIONAL"}}
	for _, profile := range profiles {
		data = append(data, []string{
			profile.PlatformID,
			profile.OS,
			profile.Arch,
			dash(profile.Extends),
			profile.Compiler,
			dash(strings.Join(profile.Required, ",")),
			dash(strings.Join(profile.Optional, ",")),
		})
	}
	return data
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
