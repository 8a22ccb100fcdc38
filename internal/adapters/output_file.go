package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"toolchain-resolver/internal/ports"
	"toolchain-resolver/internal/types"
)

// ManifestFile is the name of the matrix manifest written next to the
// per-target outputs.
const ManifestFile = "matrix.manifest"

// Variable names used by the env and scons formats.  They follow the SCons
// construction variable names so either file can seed an Environment.
const (
	VarCompiler     = "CXX"
	VarCompileFlags = "CXXFLAGS"
	VarLinkFlags    = "LINKFLAGS"
	VarIncludePaths = "CPPPATH"
	VarLibraryDirs  = "LIBPATH"
	VarLibraryNames = "LIBS"
	VarPlatform     = "PLATFORM"
	VarPrecision    = "PRECISION"
	VarBuildMode    = "BUILD_MODE"
	VarFeatures     = "FEATURES"
	VarToggles      = "TOGGLES"
	VarFingerprint  = "FINGERPRINT"
)

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

// WriteConfig writes config to <Dir>/<name><ext> and returns the path.
func (a OutputFileAdapter) WriteConfig(name string, config types.ResolvedBuildConfig, format types.OutputFormat) (string, error) {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid output name %q", name))
	}
	content, err := EncodeConfig(config, format)
	if err != nil {
		return "", err
	}
	path, err := a.ensurePath(name + format.Extension())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", path)).
			WithCause(err)
	}
	return path, nil
}

// EncodeConfig renders config in the given format.
func EncodeConfig(config types.ResolvedBuildConfig, format types.OutputFormat) ([]byte, error) {
	switch format {
	case types.OutputFormatJSON:
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, encodeError(format, err)
		}
		return append(data, '\n'), nil
	case types.OutputFormatYAML:
		data, err := yaml.Marshal(config)
		if err != nil {
			return nil, encodeError(format, err)
		}
		return data, nil
	case types.OutputFormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return nil, encodeError(format, err)
		}
		return buf.Bytes(), nil
	case types.OutputFormatEnv:
		return encodeEnv(config), nil
	case types.OutputFormatSCons:
		return encodeSCons(config), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported output format: %s", format))
	}
}

func encodeError(format types.OutputFormat, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("failed to encode %s output", format)).
		WithCause(err)
}

// encodeEnv writes one VAR=value line per field.  List values are a
// shell-quoted word list, quoted again as a single word so the file can be
// sourced by a POSIX shell.
func encodeEnv(config types.ResolvedBuildConfig) []byte {
	var builder strings.Builder
	scalar := func(name string, value string) {
		builder.WriteString(name)
		builder.WriteString("=")
		builder.WriteString(shellquote.Join(value))
		builder.WriteString("\n")
	}
	list := func(name string, values []string) {
		scalar(name, shellquote.Join(values...))
	}
	scalar(VarPlatform, config.Platform)
	scalar(VarPrecision, string(config.Precision))
	scalar(VarBuildMode, string(config.BuildMode))
	list(VarFeatures, config.Features)
	list(VarToggles, config.Toggles)
	scalar(VarCompiler, config.Compiler)
	list(VarCompileFlags, config.CompileFlags)
	list(VarLinkFlags, config.LinkFlags)
	list(VarIncludePaths, config.IncludePaths)
	list(VarLibraryDirs, config.LibraryDirs)
	list(VarLibraryNames, config.LibraryNames)
	scalar(VarFingerprint, config.Fingerprint)
	return []byte(builder.String())
}

// encodeSCons writes a Python assignment file in the shape of a SCons
// per-platform config module.
func encodeSCons(config types.ResolvedBuildConfig) []byte {
	var builder strings.Builder
	fmt.Fprintf(&builder, "# platform=%s precision=%s build_mode=%s\n", config.Platform, config.Precision, config.BuildMode)
	fmt.Fprintf(&builder, "# fingerprint=%s\n", config.Fingerprint)
	assignments := []struct {
		name  string
		value string
	}{
		{VarCompiler, pythonString(config.Compiler)},
		{VarCompileFlags, pythonList(config.CompileFlags)},
		{VarLinkFlags, pythonList(config.LinkFlags)},
		{VarIncludePaths, pythonList(config.IncludePaths)},
		{VarLibraryDirs, pythonList(config.LibraryDirs)},
		{VarLibraryNames, pythonList(config.LibraryNames)},
	}
	for _, assignment := range assignments {
		fmt.Fprintf(&builder, "%-10s = %s\n", assignment.name, assignment.value)
	}
	return []byte(builder.String())
}

func pythonString(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\t", `\t`)
	return "'" + replacer.Replace(value) + "'"
}

func pythonList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, pythonString(value))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// WriteMatrixManifest writes platform,precision,build,fingerprint lines in
// sorted order.
func (a OutputFileAdapter) WriteMatrixManifest(entries []types.MatrixEntry) (string, error) {
	path, err := a.ensurePath(ManifestFile)
	if err != nil {
		return "", err
	}
	ordered := append([]types.MatrixEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Platform != ordered[j].Platform {
			return ordered[i].Platform < ordered[j].Platform
		}
		if ordered[i].Precision != ordered[j].Precision {
			return ordered[i].Precision < ordered[j].Precision
		}
		if ordered[i].BuildMode != ordered[j].BuildMode {
			return ordered[i].BuildMode < ordered[j].BuildMode
		}
		return ordered[i].Fingerprint < ordered[j].Fingerprint
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%s", entry.Platform, entry.Precision, entry.BuildMode, entry.Fingerprint))
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write matrix manifest").
			WithCause(err)
	}
	return path, nil
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}
