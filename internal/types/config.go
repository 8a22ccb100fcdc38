package types

// VariantSelector is the caller-supplied target descriptor.  Features are
// optional dependency names and Toggles are optional flag names; both are
// applied in the order given.
type VariantSelector struct {
	PlatformID string
	Precision  PrecisionMode
	BuildMode  BuildMode
	Features   []string
	Toggles    []string
}

// LibraryOrigin records which dependency contributed a library name and the
// library directories that dependency declared.
type LibraryOrigin struct {
	Library     string
	Dependency  string
	LibraryDirs []string
}

// WorkingSet is the in-progress merge of a profile with its dependencies and
// variant deltas.  It is owned by the resolution call that created it.
type WorkingSet struct {
	Target       VariantSelector
	Compiler     string
	CompileFlags []string
	LinkFlags    []string
	IncludePaths []string
	LibraryDirs  []string
	LibraryNames []string
	Origins      []LibraryOrigin
	Dependencies []string
}

// ResolvedBuildConfig is the validated, emitted flag and path bundle.
type ResolvedBuildConfig struct {
	Platform     string        `json:"platform" yaml:"platform" toml:"platform"`
	Precision    PrecisionMode `json:"precision" yaml:"precision" toml:"precision"`
	BuildMode    BuildMode     `json:"build_mode" yaml:"build_mode" toml:"build_mode"`
	Features     []string      `json:"features" yaml:"features" toml:"features"`
	Toggles      []string      `json:"toggles" yaml:"toggles" toml:"toggles"`
	Compiler     string        `json:"compiler" yaml:"compiler" toml:"compiler"`
	CompileFlags []string      `json:"compile_flags" yaml:"compile_flags" toml:"compile_flags"`
	LinkFlags    []string      `json:"link_flags" yaml:"link_flags" toml:"link_flags"`
	IncludePaths []string      `json:"include_paths" yaml:"include_paths" toml:"include_paths"`
	LibraryDirs  []string      `json:"library_dirs" yaml:"library_dirs" toml:"library_dirs"`
	LibraryNames []string      `json:"library_names" yaml:"library_names" toml:"library_names"`
	Fingerprint  string        `json:"fingerprint" yaml:"fingerprint" toml:"fingerprint"`
}

// MatrixEntry is one line of a matrix manifest.
type MatrixEntry struct {
	Platform    string
	Precision   PrecisionMode
	BuildMode   BuildMode
	Fingerprint string
	Path        string
}
