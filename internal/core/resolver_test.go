package core

import (
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolchain-resolver/internal/policies"
	"toolchain-resolver/internal/types"
)

func TestResolveDarwinScenario(t *testing.T) {
	resolver := NewResolverCore(buildTestCatalog(t))
	selector := darwinSelector()
	selector.Features = []string{"openexr"}

	config, err := resolver.Resolve(t.Context(), selector)
	require.NoError(t, err)

	assert.Equal(t, "darwin-x86", config.Platform)
	assert.Equal(t, "g++", config.Compiler)
	if diff := cmp.Diff([]string{"m", "pthread", "gomp", "Half", "IlmImf", "Iex", "Imath", "z"}, config.LibraryNames); diff != "" {
		t.Fatalf("unexpected library names (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"#dependencies/darwin/OpenEXR.framework/Resources/lib"}, config.LibraryDirs)
	assert.Equal(t, []string{}, config.Toggles)
	assert.Len(t, config.Fingerprint, 64)
}

func TestResolveIsDeterministic(t *testing.T) {
	selector := darwinSelector()
	selector.Features = []string{"openexr", "glew"}
	selector.Toggles = []string{"sse", "coherent-rt"}

	first, err := NewResolverCore(buildTestCatalog(t)).Resolve(t.Context(), selector)
	require.NoError(t, err)
	second, err := NewResolverCore(buildTestCatalog(t)).Resolve(t.Context(), selector)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resolution not deterministic (-first +second):\n%s", diff)
	}
}

func TestResolveConcurrentReaders(t *testing.T) {
	resolver := NewResolverCore(buildTestCatalog(t))
	want, err := resolver.Resolve(t.Context(), darwinSelector())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]types.ResolvedBuildConfig, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = resolver.Resolve(t.Context(), darwinSelector())
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want.Fingerprint, got.Fingerprint)
	}
}

func TestResolvePrecisionIsExclusive(t *testing.T) {
	resolver := NewResolverCore(buildTestCatalog(t))
	for _, precision := range []types.PrecisionMode{types.PrecisionSingle, types.PrecisionDouble} {
		selector := darwinSelector()
		selector.Precision = precision
		config, err := resolver.Resolve(t.Context(), selector)
		require.NoError(t, err)

		hasSingle := slices.Contains(config.CompileFlags, policies.SymbolSinglePrecision)
		hasDouble := slices.Contains(config.CompileFlags, policies.SymbolDoublePrecision)
		assert.NotEqual(t, hasSingle, hasDouble, "exactly one precision symbol expected for %s", precision)
	}
}

func TestResolveNoPartialResultOnError(t *testing.T) {
	resolver := NewResolverCore(buildTestCatalog(t))
	selector := darwinSelector()
	selector.PlatformID = "win-x86"

	config, err := resolver.Resolve(t.Context(), selector)
	require.Error(t, err)
	assert.Equal(t, KindUnknownPlatform, KindOf(err))
	assert.Equal(t, types.ResolvedBuildConfig{}, config)
}

func TestResolveRejectsConflictingLibraryDirs(t *testing.T) {
	decl := darwinDeclaration()
	decl.Dependencies[2].LibraryNames = append(decl.Dependencies[2].LibraryNames, "z")
	resolver := NewResolverCore(buildTestCatalog(t, decl))

	selector := darwinSelector()
	selector.Features = []string{"openexr", "png"}
	_, err := resolver.Resolve(t.Context(), selector)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.True(t, HasKind(err, KindConflictingDependencyPath))
}

func TestResolverRequiresLookups(t *testing.T) {
	_, err := ResolverCore{}.Resolve(t.Context(), darwinSelector())
	require.Error(t, err)
}

func TestFingerprintTracksContent(t *testing.T) {
	config := types.ResolvedBuildConfig{Platform: "darwin-x86", Compiler: "g++", CompileFlags: []string{"-O3"}}
	base := Fingerprint(config)

	config.Fingerprint = "ignored"
	assert.Equal(t, base, Fingerprint(config))

	config.CompileFlags = []string{"-O", "3"}
	assert.NotEqual(t, base, Fingerprint(config))
}
