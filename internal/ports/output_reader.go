package ports

import "toolchain-resolver/internal/types"

type OutputReaderPort interface {
	ReadConfig(path string) (types.ResolvedBuildConfig, error)
	ReadMatrixManifest(path string) ([]types.MatrixEntry, error)
}
