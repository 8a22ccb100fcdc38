package ports

import "toolchain-resolver/internal/types"

type OutputPort interface {
	WriteConfig(name string, config types.ResolvedBuildConfig, format types.OutputFormat) (string, error)
	WriteMatrixManifest(entries []types.MatrixEntry) (string, error)
}
