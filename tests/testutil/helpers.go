// Package testutil provides shared test helpers used across integration
// and e2e test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"toolchain-resolver/internal/app"
	"toolchain-resolver/internal/types"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// Fixture returns the absolute path of a file under fixtures/.
func Fixture(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "fixtures", name)
}

// ResolveFixture resolves one target against the given fixture files.
func ResolveFixture(t *testing.T, selector types.VariantSelector, fixtures ...string) types.ResolvedBuildConfig {
	t.Helper()
	paths := make([]string, 0, len(fixtures))
	for _, name := range fixtures {
		paths = append(paths, Fixture(t, name))
	}
	result, err := app.NewService().Resolve(t.Context(), app.ResolveRequest{
		CatalogRequest: app.CatalogRequest{Declarations: paths},
		Selector:       selector,
	})
	require.NoError(t, err)
	return result.Config
}
