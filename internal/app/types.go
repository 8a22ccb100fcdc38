package app

import "toolchain-resolver/internal/types"

// CatalogRequest names the declaration files (or directories of them) to
// load and the placeholder overrides to apply while loading.
type CatalogRequest struct {
	Declarations []string
	Overrides    map[string]string
}

type ValidateRequest struct {
	CatalogRequest
}

type ValidateResult struct {
	Sources      []string
	Platforms    int
	Dependencies int
	Toggles      int
}

type ResolveRequest struct {
	CatalogRequest
	Selector  types.VariantSelector
	OutputDir string
	Formats   []types.OutputFormat
	Name      string
}

type ResolveResult struct {
	Config types.ResolvedBuildConfig
	Paths  []string
}

type MatrixRequest struct {
	CatalogRequest
	Family     string
	Precisions []types.PrecisionMode
	BuildModes []types.BuildMode
	Features   []string
	Toggles    []string
	Filter     string
	OutputDir  string
	Format     types.OutputFormat
	Workers    int
}

type MatrixResult struct {
	Entries      []types.MatrixEntry
	ManifestPath string
}

type ListRequest struct {
	CatalogRequest
	Family string
}

type ProfileSummary struct {
	PlatformID string
	OS         string
	Arch       string
	Extends    string
	Compiler   string
	Required   []string
	Optional   []string
}

type ListResult struct {
	Profiles []ProfileSummary
	Toggles  []string
}

type InspectRequest struct {
	Path string
}

type InspectResult struct {
	Config           *types.ResolvedBuildConfig
	FingerprintValid bool
	Manifest         []types.MatrixEntry
}
