package integration

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolchain-resolver/internal/adapters"
	"toolchain-resolver/internal/core"
	"toolchain-resolver/internal/policies"
	"toolchain-resolver/internal/types"
	"toolchain-resolver/tests/testutil"
)

func darwinOpenEXR() types.VariantSelector {
	return types.VariantSelector{
		PlatformID: "darwin-x86",
		Precision:  types.PrecisionSingle,
		BuildMode:  types.BuildModeRelease,
		Features:   []string{"openexr"},
	}
}

// goldenFormats are the byte-compared outputs.  The remaining formats are
// covered by TestGoldenFormatsAgree.
var goldenFormats = []types.OutputFormat{types.OutputFormatJSON, types.OutputFormatSCons}

// TestGoldenResolve resolves the darwin-x86 OpenEXR target and compares the
// json and scons outputs against committed golden files.
//
// To update golden files after an intentional change, re-run the test with
// UPDATE_GOLDEN=1 and commit the result.
func TestGoldenResolve(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")
	update := os.Getenv("UPDATE_GOLDEN") == "1"

	config := testutil.ResolveFixture(t, darwinOpenEXR(), "darwin-x86.yaml")
	outDir := t.TempDir()
	output := adapters.NewOutputFileAdapter(outDir)

	for _, format := range goldenFormats {
		t.Run(string(format), func(t *testing.T) {
			actualPath, err := output.WriteConfig("darwin-x86-openexr", config, format)
			require.NoError(t, err)
			actual, err := os.ReadFile(actualPath)
			require.NoError(t, err)

			goldenPath := filepath.Join(goldenDir, filepath.Base(actualPath))
			if update {
				require.NoError(t, os.MkdirAll(goldenDir, 0o755))
				require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
				t.Logf("golden file written: %s (commit it)", goldenPath)
				return
			}

			expected, err := os.ReadFile(goldenPath)
			require.NoError(t, err, "missing golden file -- re-run with UPDATE_GOLDEN=1")
			assert.Equal(t, string(expected), string(actual),
				"golden mismatch for %s -- re-run with UPDATE_GOLDEN=1 to regenerate", format)
		})
	}
}

// TestGoldenResolveStructure verifies the structural properties of the
// darwin-x86 output independent of exact bytes.
func TestGoldenResolveStructure(t *testing.T) {
	config := testutil.ResolveFixture(t, darwinOpenEXR(), "darwin-x86.yaml")

	t.Run("base libraries precede dependency libraries", func(t *testing.T) {
		pthread := slices.Index(config.LibraryNames, "pthread")
		require.GreaterOrEqual(t, pthread, 0)
		for _, name := range []string{"Half", "IlmImf", "Iex", "Imath", "z"} {
			assert.Greater(t, slices.Index(config.LibraryNames, name), pthread, name)
		}
	})

	t.Run("unrequested optional dependencies are absent", func(t *testing.T) {
		assert.NotContains(t, config.LibraryNames, "png")
		assert.NotContains(t, config.LibraryNames, "GLEW")
		assert.NotContains(t, config.CompileFlags, "-DGLEW_MX")
	})

	t.Run("placeholders are expanded", func(t *testing.T) {
		for _, dir := range slices.Concat(config.IncludePaths, config.LibraryDirs) {
			assert.NotContains(t, dir, "${", dir)
		}
		assert.Contains(t, config.LibraryDirs, "#dependencies/darwin/OpenEXR.framework/Resources/lib")
	})

	t.Run("mode flags match the selector", func(t *testing.T) {
		assert.Contains(t, config.CompileFlags, policies.SymbolSinglePrecision)
		assert.NotContains(t, config.CompileFlags, policies.SymbolDoublePrecision)
		assert.NotContains(t, config.CompileFlags, policies.SymbolDebug)
	})

	t.Run("fingerprint is stable", func(t *testing.T) {
		again := testutil.ResolveFixture(t, darwinOpenEXR(), "darwin-x86.yaml")
		assert.Equal(t, config.Fingerprint, again.Fingerprint)
		assert.Equal(t, core.Fingerprint(config), config.Fingerprint)
	})
}

// TestGoldenFormatsAgree reads every readable format back and checks it
// carries the same configuration.
func TestGoldenFormatsAgree(t *testing.T) {
	config := testutil.ResolveFixture(t, darwinOpenEXR(), "darwin-x86.yaml")
	output := adapters.NewOutputFileAdapter(t.TempDir())
	reader := adapters.NewOutputReaderAdapter()

	for _, format := range []types.OutputFormat{types.OutputFormatJSON, types.OutputFormatYAML, types.OutputFormatTOML, types.OutputFormatEnv} {
		t.Run(string(format), func(t *testing.T) {
			path, err := output.WriteConfig("target", config, format)
			require.NoError(t, err)
			read, err := reader.ReadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, config, read)
		})
	}
}
