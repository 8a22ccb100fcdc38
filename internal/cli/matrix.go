package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolchain-resolver/internal/app"
	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

type matrixOptions struct {
	catalogOptions
	Family     string
	Precisions []string
	BuildModes []string
	Features   []string
	Toggles    []string
	Filter     string
	OutputDir  string
	Format     string
	Workers    int
}

func newMatrixCommand() *cobra.Command {
	opts := matrixOptions{}
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Resolve every target of an architecture family",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatrix(cmd.Context(), cmd, opts)
		},
	}
	bindCatalogFlags(cmd, &opts.catalogOptions)
	cmd.Flags().StringVar(&opts.Family, "family", "", "Architecture family (empty for all platforms)")
	cmd.Flags().StringSliceVar(&opts.Precisions, "precision", nil, "Precision modes (default single,double)")
	cmd.Flags().StringSliceVar(&opts.BuildModes, "build", nil, "Build modes (default debug,release)")
	cmd.Flags().StringSliceVar(&opts.Features, "feature", nil, "Optional dependencies to enable where offered")
	cmd.Flags().StringSliceVar(&opts.Toggles, "toggle", nil, "Optional flags to enable on every target")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "Target filter expression over platform, os, arch, precision, build")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Output directory for per-target configs and matrix.manifest")
	cmd.Flags().StringVar(&opts.Format, "format", string(types.OutputFormatJSON), "Output format (json|yaml|toml|env|scons)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "Parallel resolution workers")

	_ = viper.BindPFlag("family", cmd.Flags().Lookup("family"))
	_ = viper.BindPFlag("matrix_workers", cmd.Flags().Lookup("workers"))
	return cmd
}

func runMatrix(ctx context.Context, cmd *cobra.Command, opts matrixOptions) error {
	catalog, err := catalogRequest(cmd, opts.catalogOptions)
	if err != nil {
		return err
	}
	formats, err := app.ParseFormats([]string{opts.Format})
	if err != nil {
		return err
	}
	precisions, err := parsePrecisions(opts.Precisions)
	if err != nil {
		return err
	}
	builds, err := parseBuildModes(opts.BuildModes)
	if err != nil {
		return err
	}

	service := newAppService()
	result, err := service.Matrix(ctx, app.MatrixRequest{
		CatalogRequest: catalog,
		Family:         resolveString(cmd, opts.Family, "family", "family"),
		Precisions:     precisions,
		BuildModes:     builds,
		Features:       shared.TrimAll(opts.Features),
		Toggles:        shared.TrimAll(opts.Toggles),
		Filter:         opts.Filter,
		OutputDir:      opts.OutputDir,
		Format:         formats[0],
		Workers:        resolveInt(cmd, opts.Workers, "matrix_workers", "workers"),
	})
	if err != nil {
		return err
	}
	for _, entry := range result.Entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s,%s,%s,%s\n", entry.Platform, entry.Precision, entry.BuildMode, entry.Fingerprint)
	}
	if result.ManifestPath != "" {
		pterm.Success.WithWriter(cmd.ErrOrStderr()).Printf("Resolved %d targets, manifest: %s\n", len(result.Entries), result.ManifestPath)
	}
	return nil
}

func parsePrecisions(values []string) ([]types.PrecisionMode, error) {
	out := make([]types.PrecisionMode, 0, len(values))
	for _, value := range values {
		precision := types.PrecisionMode(strings.ToLower(strings.TrimSpace(value)))
		if precision != types.PrecisionSingle && precision != types.PrecisionDouble {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid precision %q (expected single or double)", value))
		}
		out = append(out, precision)
	}
	return out, nil
}

func parseBuildModes(values []string) ([]types.BuildMode, error) {
	out := make([]types.BuildMode, 0, len(values))
	for _, value := range values {
		build := types.BuildMode(strings.ToLower(strings.TrimSpace(value)))
		if build != types.BuildModeDebug && build != types.BuildModeRelease {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid build mode %q (expected debug or release)", value))
		}
		out = append(out, build)
	}
	return out, nil
}
