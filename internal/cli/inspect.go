package cli

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"toolchain-resolver/internal/app"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <config-or-manifest>",
		Short: "Summarize an emitted config or matrix manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, path string) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{Path: path})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if result.Config == nil {
		fmt.Fprintf(out, "matrix.manifest entries: %d\n", len(result.Manifest))
		for _, entry := range result.Manifest {
			fmt.Fprintf(out, "- %s %s %s %s\n", entry.Platform, entry.Precision, entry.BuildMode, entry.Fingerprint)
		}
		return nil
	}

	config := result.Config
	fmt.Fprintf(out, "platform: %s\n", config.Platform)
	fmt.Fprintf(out, "precision: %s\n", config.Precision)
	fmt.Fprintf(out, "build_mode: %s\n", config.BuildMode)
	fmt.Fprintf(out, "features: %s\n", strings.Join(config.Features, ", "))
	fmt.Fprintf(out, "toggles: %s\n", strings.Join(config.Toggles, ", "))
	fmt.Fprintf(out, "compiler: %s\n", config.Compiler)
	fmt.Fprintf(out, "compile_flags: %d\n", len(config.CompileFlags))
	fmt.Fprintf(out, "link_flags: %d\n", len(config.LinkFlags))
	fmt.Fprintf(out, "include_paths: %d\n", len(config.IncludePaths))
	fmt.Fprintf(out, "library_dirs: %d\n", len(config.LibraryDirs))
	fmt.Fprintf(out, "library_names: %s\n", strings.Join(config.LibraryNames, ", "))
	fmt.Fprintf(out, "fingerprint: %s\n", config.Fingerprint)
	if !result.FingerprintValid {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("fingerprint mismatch in %s", path))
	}
	return nil
}
