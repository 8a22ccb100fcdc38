package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"toolchain-resolver/internal/ports"
	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

type OutputReaderAdapter struct{}

func NewOutputReaderAdapter() OutputReaderAdapter {
	return OutputReaderAdapter{}
}

// ReadConfig reads back an emitted configuration.  The format follows the
// file extension; scons output is write-only.
func (a OutputReaderAdapter) ReadConfig(path string) (types.ResolvedBuildConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.ResolvedBuildConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("config file not found: %s", path)).
			WithCause(err)
	}
	var config types.ResolvedBuildConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(content, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &config)
	case ".toml":
		_, err = toml.Decode(string(content), &config)
	case ".env":
		config, err = decodeEnv(string(content))
	default:
		return types.ResolvedBuildConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cannot read config format %q: %s", ext, path))
	}
	if err != nil {
		return types.ResolvedBuildConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid config file %s", path)).
			WithCause(err)
	}
	config.Features = shared.CloneStrings(config.Features)
	config.Toggles = shared.CloneStrings(config.Toggles)
	config.CompileFlags = shared.CloneStrings(config.CompileFlags)
	config.LinkFlags = shared.CloneStrings(config.LinkFlags)
	config.IncludePaths = shared.CloneStrings(config.IncludePaths)
	config.LibraryDirs = shared.CloneStrings(config.LibraryDirs)
	config.LibraryNames = shared.CloneStrings(config.LibraryNames)
	return config, nil
}

func decodeEnv(content string) (types.ResolvedBuildConfig, error) {
	config := types.ResolvedBuildConfig{}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		words, err := shellquote.Split(line)
		if err != nil {
			return types.ResolvedBuildConfig{}, err
		}
		if len(words) != 1 {
			return types.ResolvedBuildConfig{}, fmt.Errorf("invalid env line %q", line)
		}
		name, value, ok := strings.Cut(words[0], "=")
		if !ok {
			return types.ResolvedBuildConfig{}, fmt.Errorf("invalid env line %q", line)
		}
		list := func() ([]string, error) {
			return shellquote.Split(value)
		}
		switch name {
		case VarPlatform:
			config.Platform = value
		case VarPrecision:
			config.Precision = types.PrecisionMode(value)
		case VarBuildMode:
			config.BuildMode = types.BuildMode(value)
		case VarCompiler:
			config.Compiler = value
		case VarFingerprint:
			config.Fingerprint = value
		case VarFeatures:
			config.Features, err = list()
		case VarToggles:
			config.Toggles, err = list()
		case VarCompileFlags:
			config.CompileFlags, err = list()
		case VarLinkFlags:
			config.LinkFlags, err = list()
		case VarIncludePaths:
			config.IncludePaths, err = list()
		case VarLibraryDirs:
			config.LibraryDirs, err = list()
		case VarLibraryNames:
			config.LibraryNames, err = list()
		}
		if err != nil {
			return types.ResolvedBuildConfig{}, fmt.Errorf("invalid %s value: %w", name, err)
		}
	}
	return config, nil
}

func (a OutputReaderAdapter) ReadMatrixManifest(path string) ([]types.MatrixEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("matrix.manifest not found").
			WithCause(err)
	}
	entries := []types.MatrixEntry{}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 4 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid matrix.manifest format")
		}
		entries = append(entries, types.MatrixEntry{
			Platform:    strings.TrimSpace(parts[0]),
			Precision:   types.PrecisionMode(strings.TrimSpace(parts[1])),
			BuildMode:   types.BuildMode(strings.TrimSpace(parts[2])),
			Fingerprint: strings.TrimSpace(parts[3]),
		})
	}
	return entries, nil
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
