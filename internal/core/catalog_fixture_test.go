package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"toolchain-resolver/internal/types"
)

func darwinDeclaration() types.DeclarationFile {
	return types.DeclarationFile{
		APIVersion: "v1",
		Source:     "darwin.yaml",
		Variables:  map[string]string{"DEPS": "#dependencies/darwin"},
		Dependencies: []types.DependencyDescriptor{
			{Name: "darwin-base", IncludePaths: []string{"#include"}, LibraryNames: []string{"m", "pthread", "gomp"}},
			{
				Name:         "openexr",
				IncludePaths: []string{"${DEPS}/OpenEXR.framework/Headers/OpenEXR"},
				LibraryDirs:  []string{"${DEPS}/OpenEXR.framework/Resources/lib"},
				LibraryNames: []string{"Half", "IlmImf", "Iex", "Imath", "z"},
			},
			{
				Name:         "png",
				IncludePaths: []string{"${DEPS}/libpng.framework/Headers"},
				LibraryDirs:  []string{"${DEPS}/libpng.framework/Resources/lib"},
				LibraryNames: []string{"png"},
			},
			{
				Name:         "glew",
				IncludePaths: []string{"${DEPS}/GLEW.framework/Headers"},
				LibraryDirs:  []string{"${DEPS}/GLEW.framework/Resources/libs"},
				LibraryNames: []string{"GLEW", "objc"},
				ExtraFlags:   []string{"-DGLEW_MX"},
			},
		},
		Toggles: []types.ToggleDefinition{
			{Name: "strict-aliasing", CompileFlags: []string{"-fstrict-aliasing"}},
		},
		Profiles: []types.PlatformProfile{
			{
				PlatformID:   "darwin-x86",
				Compiler:     "g++",
				CompileFlags: []string{"-arch", "i386", "-isysroot", "/Developer/SDKs/MacOSX10.5.sdk", "-Wall", "-pipe"},
				LinkFlags:    []string{"-framework", "OpenGL", "-arch", "i386"},
				Required:     []string{"darwin-base"},
				Optional:     []string{"openexr", "png", "glew"},
			},
		},
	}
}

func buildTestCatalog(t *testing.T, decls ...types.DeclarationFile) Catalog {
	t.Helper()
	if len(decls) == 0 {
		decls = []types.DeclarationFile{darwinDeclaration()}
	}
	catalog, err := NewCatalogBuilder(nil).Build(t.Context(), decls)
	require.NoError(t, err)
	return catalog
}

func darwinSelector() types.VariantSelector {
	return types.VariantSelector{
		PlatformID: "darwin-x86",
		Precision:  types.PrecisionSingle,
		BuildMode:  types.BuildModeRelease,
	}
}
