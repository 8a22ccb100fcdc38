package policies

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"toolchain-resolver/internal/types"
)

func TestApplyPrecisionReplacesOtherSymbol(t *testing.T) {
	base := []string{"-Wall", SymbolSinglePrecision, "-pipe"}

	got := ApplyPrecision(base, types.PrecisionDouble)
	if diff := cmp.Diff([]string{"-Wall", "-pipe", SymbolDoublePrecision}, got); diff != "" {
		t.Fatalf("unexpected flags (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"-Wall", SymbolSinglePrecision, "-pipe"}, base, "input must not be modified")
}

func TestApplyPrecisionIsIdempotentPerSide(t *testing.T) {
	got := ApplyPrecision(ApplyPrecision([]string{"-Wall"}, types.PrecisionSingle), types.PrecisionSingle)
	if diff := cmp.Diff([]string{"-Wall", SymbolSinglePrecision}, got); diff != "" {
		t.Fatalf("unexpected flags (-want +got):\n%s", diff)
	}
}

func TestApplyBuildModeDebugStripsOptimization(t *testing.T) {
	base := []string{"-O3", "-Wall", "-Os", "-pipe"}

	got := ApplyBuildMode(base, types.BuildModeDebug)
	if diff := cmp.Diff([]string{"-Wall", "-pipe", FlagDebugSymbols, SymbolDebug}, got); diff != "" {
		t.Fatalf("unexpected flags (-want +got):\n%s", diff)
	}
}

func TestApplyBuildModeReleaseStripsDebugContribution(t *testing.T) {
	base := []string{"-O3", "-Wall", "-g", "-pipe", SymbolDebug}

	got := ApplyBuildMode(base, types.BuildModeRelease)
	if diff := cmp.Diff([]string{"-Wall", "-pipe", FlagOptimizeRelease}, got); diff != "" {
		t.Fatalf("unexpected flags (-want +got):\n%s", diff)
	}
}

func TestValidModes(t *testing.T) {
	assert.True(t, ValidPrecision(types.PrecisionSingle))
	assert.True(t, ValidPrecision(types.PrecisionDouble))
	assert.False(t, ValidPrecision("half"))
	assert.True(t, ValidBuildMode(types.BuildModeDebug))
	assert.True(t, ValidBuildMode(types.BuildModeRelease))
	assert.False(t, ValidBuildMode("profile"))
}

func TestModeFlags(t *testing.T) {
	got := ModeFlags(types.PrecisionDouble, types.BuildModeDebug)
	if diff := cmp.Diff([]string{SymbolDoublePrecision, FlagDebugSymbols, SymbolDebug}, got); diff != "" {
		t.Fatalf("unexpected flags (-want +got):\n%s", diff)
	}
}

func TestIsOptimizationFlag(t *testing.T) {
	tests := []struct {
		flag string
		want bool
	}{
		{"-O", true},
		{"-O0", true},
		{"-O3", true},
		{"-Ofast", true},
		{"-Oz", true},
		{"-Og", true},
		{"-ObjC", false},
		{"-ObjC++", false},
		{"-O4x", false},
		{"-o", false},
		{"-fomit-frame-pointer", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOptimizationFlag(tt.flag), tt.flag)
	}
}

func TestApplyBuildModeKeepsObjectiveCFlags(t *testing.T) {
	base := []string{"-ObjC++", "-Wall", "-O2"}

	for _, mode := range []types.BuildMode{types.BuildModeDebug, types.BuildModeRelease} {
		got := ApplyBuildMode(base, mode)
		assert.Contains(t, got, "-ObjC++", string(mode))
		assert.NotContains(t, got, "-O2", string(mode))
	}
}
