package core

import (
	"slices"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolchain-resolver/internal/types"
)

func TestDependencyStoreRegisterLookup(t *testing.T) {
	store := NewDependencyStore()
	require.NoError(t, store.Register(types.DependencyDescriptor{Name: " png ", LibraryNames: []string{"png"}}))

	got, err := store.Lookup("png")
	require.NoError(t, err)
	assert.Equal(t, []string{"png"}, got.LibraryNames)
	assert.Equal(t, []string{}, got.IncludePaths)

	got.LibraryNames[0] = "mutated"
	again, err := store.Lookup("png")
	require.NoError(t, err)
	assert.Equal(t, []string{"png"}, again.LibraryNames)

	err = store.Register(types.DependencyDescriptor{Name: "png"})
	assert.Equal(t, KindDuplicateDependency, KindOf(err))

	_, err = store.Lookup("jpeg")
	assert.Equal(t, KindUnknownDependency, KindOf(err))
}

func TestDependencyStoreSealed(t *testing.T) {
	store := NewDependencyStore()
	store.Seal()

	err := store.Register(types.DependencyDescriptor{Name: "png"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestProfileStoreDerivesOSAndArch(t *testing.T) {
	store := NewProfileStore()
	require.NoError(t, store.Register(types.PlatformProfile{PlatformID: "linux-x86_64", Compiler: "g++"}))
	require.NoError(t, store.Register(types.PlatformProfile{PlatformID: "win-i386", OS: "windows", Compiler: "cl"}))

	linux, err := store.Lookup("linux-x86_64")
	require.NoError(t, err)
	assert.Equal(t, "linux", linux.OS)
	assert.Equal(t, "x86_64", linux.Arch)

	win, err := store.Lookup("win-i386")
	require.NoError(t, err)
	assert.Equal(t, "windows", win.OS)

	_, err = store.Lookup("plan9-mips")
	assert.Equal(t, KindUnknownPlatform, KindOf(err))

	err = store.Register(types.PlatformProfile{PlatformID: "linux-x86_64", Compiler: "clang++"})
	assert.Equal(t, KindDuplicatePlatform, KindOf(err))

	err = store.Register(types.PlatformProfile{PlatformID: "linux-arm64"})
	assert.Equal(t, KindMalformedDeclaration, KindOf(err))
}

func TestProfileStoreListCompatible(t *testing.T) {
	store := NewProfileStore()
	for _, id := range []string{"linux-x86_64", "darwin-ppc", "darwin-x86", "linux-arm64", "win-i386"} {
		require.NoError(t, store.Register(types.PlatformProfile{PlatformID: id, Compiler: "cc"}))
	}
	store.Seal()

	ids := func(family string) []string {
		out := []string{}
		for profile := range store.ListCompatible(family) {
			out = append(out, profile.PlatformID)
		}
		return out
	}

	assert.Equal(t, []string{"darwin-x86", "linux-x86_64", "win-i386"}, ids("x86"))
	assert.Equal(t, []string{"linux-arm64"}, ids("arm"))
	assert.Equal(t, []string{"darwin-ppc", "darwin-x86", "linux-arm64", "linux-x86_64", "win-i386"}, ids("all"))
	assert.Empty(t, ids("mips"))

	seq := store.ListCompatible("x86")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second, "sequence must be restartable")

	for profile := range seq {
		assert.Equal(t, "darwin-x86", profile.PlatformID)
		break
	}
}
