package adapters

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"toolchain-resolver/internal/ports"
	"toolchain-resolver/internal/types"
)

// DeclarationFileAdapter reads declaration files written in YAML, TOML or
// HCL.  Unknown keys are rejected in every syntax.
type DeclarationFileAdapter struct{}

func NewDeclarationFileAdapter() DeclarationFileAdapter {
	return DeclarationFileAdapter{}
}

func (a DeclarationFileAdapter) LoadDeclaration(path string) (types.DeclarationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.DeclarationFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("declaration file not found: %s", path)).
			WithCause(err)
	}

	var decl types.DeclarationFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decl, err = decodeYAMLDeclaration(data)
	case ".toml":
		decl, err = decodeTOMLDeclaration(data)
	case ".hcl":
		decl, err = decodeHCLDeclaration(data, path)
	default:
		return types.DeclarationFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported declaration format %q: %s", ext, path))
	}
	if err != nil {
		return types.DeclarationFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse declaration %s", path)).
			WithCause(err)
	}
	decl.Source = path
	log.Debug().
		Str("path", path).
		Int("dependencies", len(decl.Dependencies)).
		Int("profiles", len(decl.Profiles)).
		Msg("declaration file read")
	return decl, nil
}

func decodeYAMLDeclaration(data []byte) (types.DeclarationFile, error) {
	var decl types.DeclarationFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&decl); err != nil {
		return types.DeclarationFile{}, err
	}
	return decl, nil
}

func decodeTOMLDeclaration(data []byte) (types.DeclarationFile, error) {
	var decl types.DeclarationFile
	meta, err := toml.Decode(string(data), &decl)
	if err != nil {
		return types.DeclarationFile{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return types.DeclarationFile{}, fmt.Errorf("unknown key %s", undecoded[0].String())
	}
	return decl, nil
}

// hclDeclarationFile is the block layout of an .hcl declaration.  Literal
// placeholders are written as $${NAME} so HCL leaves them for the loader.
type hclDeclarationFile struct {
	APIVersion   string            `hcl:"api_version"`
	Variables    map[string]string `hcl:"variables,optional"`
	Dependencies []hclDependency   `hcl:"dependency,block"`
	Toggles      []hclToggle       `hcl:"toggle,block"`
	Profiles     []hclProfile      `hcl:"profile,block"`
}

type hclDependency struct {
	Name         string   `hcl:"name,label"`
	IncludePaths []string `hcl:"include_paths,optional"`
	LibraryDirs  []string `hcl:"library_dirs,optional"`
	LibraryNames []string `hcl:"library_names,optional"`
	ExtraFlags   []string `hcl:"extra_flags,optional"`
}

type hclToggle struct {
	Name         string   `hcl:"name,label"`
	CompileFlags []string `hcl:"compile_flags,optional"`
	LinkFlags    []string `hcl:"link_flags,optional"`
}

type hclProfile struct {
	PlatformID   string   `hcl:"platform_id,label"`
	OS           string   `hcl:"os,optional"`
	Arch         string   `hcl:"arch,optional"`
	Extends      string   `hcl:"extends,optional"`
	Compiler     string   `hcl:"compiler,optional"`
	CompileFlags []string `hcl:"compile_flags,optional"`
	LinkFlags    []string `hcl:"link_flags,optional"`
	Required     []string `hcl:"required,optional"`
	Optional     []string `hcl:"optional,optional"`
}

func decodeHCLDeclaration(data []byte, path string) (types.DeclarationFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return types.DeclarationFile{}, diags
	}
	var parsed hclDeclarationFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return types.DeclarationFile{}, diags
	}

	decl := types.DeclarationFile{
		APIVersion:   parsed.APIVersion,
		Variables:    parsed.Variables,
		Dependencies: make([]types.DependencyDescriptor, 0, len(parsed.Dependencies)),
		Toggles:      make([]types.ToggleDefinition, 0, len(parsed.Toggles)),
		Profiles:     make([]types.PlatformProfile, 0, len(parsed.Profiles)),
	}
	for _, dep := range parsed.Dependencies {
		decl.Dependencies = append(decl.Dependencies, types.DependencyDescriptor(dep))
	}
	for _, toggle := range parsed.Toggles {
		decl.Toggles = append(decl.Toggles, types.ToggleDefinition(toggle))
	}
	for _, profile := range parsed.Profiles {
		decl.Profiles = append(decl.Profiles, types.PlatformProfile(profile))
	}
	return decl, nil
}

var _ ports.DeclarationPort = DeclarationFileAdapter{}
