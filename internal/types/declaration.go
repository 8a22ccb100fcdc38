package types

// DependencyDescriptor is a named, reusable bundle of include paths, library
// directories and library names for one third-party component.  Field order
// matters: include paths and library dirs are searched in order and
// libraries are linked in order.
type DependencyDescriptor struct {
	Name         string   `yaml:"name" toml:"name" json:"name"`
	IncludePaths []string `yaml:"include_paths,omitempty" toml:"include_paths,omitempty" json:"include_paths,omitempty"`
	LibraryDirs  []string `yaml:"library_dirs,omitempty" toml:"library_dirs,omitempty" json:"library_dirs,omitempty"`
	LibraryNames []string `yaml:"library_names,omitempty" toml:"library_names,omitempty" json:"library_names,omitempty"`
	ExtraFlags   []string `yaml:"extra_flags,omitempty" toml:"extra_flags,omitempty" json:"extra_flags,omitempty"`
}

// PlatformProfile is the base compiler and linker configuration for one
// (operating system, architecture) pair.
type PlatformProfile struct {
	PlatformID string `yaml:"platform_id" toml:"platform_id" json:"platform_id"`
	OS         string `yaml:"os,omitempty" toml:"os,omitempty" json:"os,omitempty"`
	Arch       string `yaml:"arch,omitempty" toml:"arch,omitempty" json:"arch,omitempty"`

	// Extends names a parent profile whose flags and dependency lists are
	// merged in before this profile's own.
	Extends string `yaml:"extends,omitempty" toml:"extends,omitempty" json:"extends,omitempty"`

	Compiler     string   `yaml:"compiler" toml:"compiler" json:"compiler"`
	CompileFlags []string `yaml:"compile_flags,omitempty" toml:"compile_flags,omitempty" json:"compile_flags,omitempty"`
	LinkFlags    []string `yaml:"link_flags,omitempty" toml:"link_flags,omitempty" json:"link_flags,omitempty"`
	Required     []string `yaml:"required,omitempty" toml:"required,omitempty" json:"required,omitempty"`
	Optional     []string `yaml:"optional,omitempty" toml:"optional,omitempty" json:"optional,omitempty"`
}

// ToggleDefinition is a named optional flag set a caller may switch on.
type ToggleDefinition struct {
	Name         string   `yaml:"name" toml:"name" json:"name"`
	CompileFlags []string `yaml:"compile_flags,omitempty" toml:"compile_flags,omitempty" json:"compile_flags,omitempty"`
	LinkFlags    []string `yaml:"link_flags,omitempty" toml:"link_flags,omitempty" json:"link_flags,omitempty"`
}

// DeclarationFile is one authored declaration.  Several files may be
// loaded together; they share a single dependency and profile namespace.
type DeclarationFile struct {
	APIVersion string `yaml:"api_version" toml:"api_version"`

	// Variables supplies default values for ${NAME} placeholders used in
	// paths.  Environment and command line overrides take precedence.
	Variables map[string]string `yaml:"variables,omitempty" toml:"variables,omitempty"`

	Dependencies []DependencyDescriptor `yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
	Toggles      []ToggleDefinition     `yaml:"toggles,omitempty" toml:"toggles,omitempty"`
	Profiles     []PlatformProfile      `yaml:"profiles,omitempty" toml:"profiles,omitempty"`

	// Source is the path the declaration was read from.
	Source string `yaml:"-" toml:"-"`
}
