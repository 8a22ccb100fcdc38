package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolchain-resolver/internal/adapters"
	"toolchain-resolver/internal/app"
	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

type resolveOptions struct {
	catalogOptions
	Platform  string
	Precision string
	BuildMode string
	Features  []string
	Toggles   []string
	OutputDir string
	Formats   []string
	Name      string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the build configuration of one target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	bindCatalogFlags(cmd, &opts.catalogOptions)
	cmd.Flags().StringVarP(&opts.Platform, "platform", "p", "", "Platform id")
	cmd.Flags().StringVar(&opts.Precision, "precision", string(types.PrecisionSingle), "Precision mode (single|double)")
	cmd.Flags().StringVar(&opts.BuildMode, "build", string(types.BuildModeRelease), "Build mode (debug|release)")
	cmd.Flags().StringSliceVar(&opts.Features, "feature", nil, "Optional dependency to enable (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Toggles, "toggle", nil, "Optional flag to enable (repeatable)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Output directory (stdout when empty)")
	cmd.Flags().StringSliceVar(&opts.Formats, "format", []string{string(types.OutputFormatJSON)}, "Output formats (json|yaml|toml|env|scons)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Output file name without extension")

	_ = viper.BindPFlag("precision", cmd.Flags().Lookup("precision"))
	_ = viper.BindPFlag("build", cmd.Flags().Lookup("build"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	catalog, err := catalogRequest(cmd, opts.catalogOptions)
	if err != nil {
		return err
	}
	formats, err := app.ParseFormats(resolveStrings(cmd, opts.Formats, "format", "format"))
	if err != nil {
		return err
	}
	outputDir := resolveString(cmd, opts.OutputDir, "output", "output")
	if outputDir == "" && len(formats) != 1 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exactly one --format is required when writing to stdout")
	}

	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		CatalogRequest: catalog,
		Selector: types.VariantSelector{
			PlatformID: opts.Platform,
			Precision:  types.PrecisionMode(resolveString(cmd, opts.Precision, "precision", "precision")),
			BuildMode:  types.BuildMode(resolveString(cmd, opts.BuildMode, "build", "build")),
			Features:   shared.TrimAll(opts.Features),
			Toggles:    shared.TrimAll(opts.Toggles),
		},
		OutputDir: outputDir,
		Formats:   formats,
		Name:      opts.Name,
	})
	if err != nil {
		return err
	}

	if outputDir == "" {
		content, err := adapters.EncodeConfig(result.Config, formats[0])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}
	for _, path := range result.Paths {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote: %s\n", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "fingerprint: %s\n", result.Config.Fingerprint)
	return nil
}
