package adapters

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-resolver/internal/ports"
)

// ConfigFileName is the base name of the tool's own config file.  It shares
// an extension with declarations and is never loaded as one.
const ConfigFileName = "toolchain-resolver"

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

// FindDeclarations returns every .yaml, .yml, .toml and .hcl file below
// root in lexical path order, skipping build output, test data and VCS
// directories as well as the tool config file.
func (a WorkspaceAdapter) FindDeclarations(root string) ([]string, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("declaration root is empty")
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipWorkspaceDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsDeclarationFile(path) && !isConfigFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to scan declaration directory").
			WithCause(err)
	}
	sort.Strings(paths)
	return paths, nil
}

// IsDeclarationFile reports whether path has a declaration file extension.
func IsDeclarationFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml", ".hcl":
		return true
	default:
		return false
	}
}

func isConfigFile(name string) bool {
	return strings.TrimSuffix(name, filepath.Ext(name)) == ConfigFileName
}

func shouldSkipWorkspaceDir(name string) bool {
	switch name {
	case "build", "dist", "out", "release", "debug", "testdata", ".git", ".hg", ".svn", ".sconf_temp":
		return true
	default:
		return strings.HasPrefix(name, ".") && name != "."
	}
}

var _ ports.WorkspacePort = WorkspaceAdapter{}
