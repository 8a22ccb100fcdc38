package core

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolchain-resolver/internal/policies"
	"toolchain-resolver/internal/types"
)

func TestComposeDarwinWithOpenEXR(t *testing.T) {
	composer := buildTestCatalog(t).Composer()
	selector := darwinSelector()
	selector.Features = []string{"openexr"}

	ws, err := composer.Compose(t.Context(), selector)
	require.NoError(t, err)

	pthread := slices.Index(ws.LibraryNames, "pthread")
	half := slices.Index(ws.LibraryNames, "Half")
	require.GreaterOrEqual(t, pthread, 0)
	require.Greater(t, half, pthread)
	if diff := cmp.Diff([]string{"Half", "IlmImf", "Iex", "Imath", "z"}, ws.LibraryNames[half:]); diff != "" {
		t.Fatalf("unexpected openexr libraries (-want +got):\n%s", diff)
	}
	assert.NotContains(t, ws.LibraryNames, "png")
	assert.Equal(t, []string{"darwin-base", "openexr"}, ws.Dependencies)
	assert.Equal(t, []string{"#include", "#dependencies/darwin/OpenEXR.framework/Headers/OpenEXR"}, ws.IncludePaths)
}

func TestComposeMergeOrder(t *testing.T) {
	composer := buildTestCatalog(t).Composer()
	selector := darwinSelector()
	selector.Features = []string{"glew"}
	selector.Toggles = []string{"openmp", "sse"}

	ws, err := composer.Compose(t.Context(), selector)
	require.NoError(t, err)

	want := []string{
		"-arch", "i386", "-isysroot", "/Developer/SDKs/MacOSX10.5.sdk", "-Wall", "-pipe",
		"-DGLEW_MX",
		policies.SymbolSinglePrecision,
		policies.FlagOptimizeRelease,
		"-fopenmp",
		"-DMTS_SSE",
	}
	if diff := cmp.Diff(want, ws.CompileFlags); diff != "" {
		t.Fatalf("unexpected compile flags (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"-framework", "OpenGL", "-arch", "i386", "-fopenmp"}, ws.LinkFlags); diff != "" {
		t.Fatalf("unexpected link flags (-want +got):\n%s", diff)
	}
}

func TestComposeFeaturesKeepCallerOrder(t *testing.T) {
	composer := buildTestCatalog(t).Composer()
	selector := darwinSelector()
	selector.Features = []string{"png", "openexr"}

	ws, err := composer.Compose(t.Context(), selector)
	require.NoError(t, err)
	assert.Equal(t, []string{"darwin-base", "png", "openexr"}, ws.Dependencies)
}

func TestComposeDebugModeStripsOptimization(t *testing.T) {
	decl := darwinDeclaration()
	decl.Profiles[0].CompileFlags = append(decl.Profiles[0].CompileFlags, "-O2", policies.SymbolDoublePrecision)
	composer := buildTestCatalog(t, decl).Composer()

	selector := darwinSelector()
	selector.BuildMode = types.BuildModeDebug
	ws, err := composer.Compose(t.Context(), selector)
	require.NoError(t, err)

	for _, flag := range ws.CompileFlags {
		assert.False(t, policies.IsOptimizationFlag(flag), "unexpected optimization flag %s", flag)
	}
	assert.NotContains(t, ws.CompileFlags, policies.SymbolDoublePrecision)
	assert.Equal(t, []string{policies.SymbolSinglePrecision, "-g", policies.SymbolDebug}, ws.CompileFlags[len(ws.CompileFlags)-3:])
}

func TestComposeErrors(t *testing.T) {
	decl := darwinDeclaration()
	decl.Profiles = append(decl.Profiles, types.PlatformProfile{
		PlatformID: "darwin-ppc",
		Compiler:   "g++",
		Required:   []string{"carbon"},
	})
	composer := buildTestCatalog(t, decl).Composer()

	cases := []struct {
		name   string
		mutate func(*types.VariantSelector)
		kind   ErrorKind
		key    string
	}{
		{name: "unknown platform", mutate: func(s *types.VariantSelector) { s.PlatformID = "plan9-mips" }, kind: KindUnknownPlatform, key: "plan9-mips"},
		{name: "missing required", mutate: func(s *types.VariantSelector) { s.PlatformID = "darwin-ppc" }, kind: KindMissingRequiredDependency, key: "carbon"},
		{name: "unrequested optional", mutate: func(s *types.VariantSelector) { s.Features = []string{"darwin-base"} }, kind: KindUnrequestedOptionalFeature, key: "darwin-base"},
		{name: "unknown toggle", mutate: func(s *types.VariantSelector) { s.Toggles = []string{"lto"} }, kind: KindUnknownOptionalFlag, key: "lto"},
		{name: "bad precision", mutate: func(s *types.VariantSelector) { s.Precision = "half" }, kind: KindInvalidSelector, key: "half"},
		{name: "bad build mode", mutate: func(s *types.VariantSelector) { s.BuildMode = "profile" }, kind: KindInvalidSelector, key: "profile"},
		{name: "repeated feature", mutate: func(s *types.VariantSelector) { s.Features = []string{"png", "png"} }, kind: KindInvalidSelector, key: "png"},
		{name: "repeated toggle", mutate: func(s *types.VariantSelector) { s.Toggles = []string{"sse", "sse"} }, kind: KindInvalidSelector, key: "sse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			selector := darwinSelector()
			tc.mutate(&selector)
			ws, err := composer.Compose(t.Context(), selector)
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))
			key, _ := Offending(err)
			assert.Equal(t, tc.key, key)
			assert.Empty(t, ws.Compiler)
		})
	}
}

func TestComposeOptionalGatingIgnoresStoreMembership(t *testing.T) {
	decl := darwinDeclaration()
	decl.Profiles[0].Optional = []string{"openexr"}
	composer := buildTestCatalog(t, decl).Composer()

	selector := darwinSelector()
	selector.Features = []string{"png"}
	_, err := composer.Compose(t.Context(), selector)
	require.Error(t, err)
	assert.Equal(t, KindUnrequestedOptionalFeature, KindOf(err))
}

func TestComposeUnknownOptionalDependency(t *testing.T) {
	decl := darwinDeclaration()
	decl.Profiles[0].Optional = append(decl.Profiles[0].Optional, "collada")
	composer := buildTestCatalog(t, decl).Composer()

	selector := darwinSelector()
	selector.Features = []string{"collada"}
	_, err := composer.Compose(t.Context(), selector)
	require.Error(t, err)
	assert.Equal(t, KindUnknownDependency, KindOf(err))
}

func TestComposeDeclaredToggle(t *testing.T) {
	composer := buildTestCatalog(t).Composer()
	selector := darwinSelector()
	selector.Toggles = []string{"strict-aliasing"}

	ws, err := composer.Compose(t.Context(), selector)
	require.NoError(t, err)
	assert.Equal(t, "-fstrict-aliasing", ws.CompileFlags[len(ws.CompileFlags)-1])
}
