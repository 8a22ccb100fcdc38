package policies

import "toolchain-resolver/internal/types"

const (
	SymbolSinglePrecision = "-DSINGLE_PRECISION"
	SymbolDoublePrecision = "-DDOUBLE_PRECISION"
	SymbolDebug           = "-DMTS_DEBUG"
	SymbolNoDebug         = "-DNDEBUG"
	FlagDebugSymbols      = "-g"
	FlagOptimizeRelease   = "-O3"
)

// ExclusiveGroup is a set of flags of which at most one may appear in a
// resolved compile flag list.
type ExclusiveGroup struct {
	Name  string
	Flags []string
}

var ExclusiveGroups = []ExclusiveGroup{
	{Name: "precision", Flags: []string{SymbolSinglePrecision, SymbolDoublePrecision}},
	{Name: "build-mode", Flags: []string{SymbolDebug, SymbolNoDebug}},
}

var precisionDeltas = map[types.PrecisionMode][]string{
	types.PrecisionSingle: {SymbolSinglePrecision},
	types.PrecisionDouble: {SymbolDoublePrecision},
}

var buildModeDeltas = map[types.BuildMode][]string{
	types.BuildModeDebug:   {FlagDebugSymbols, SymbolDebug},
	types.BuildModeRelease: {FlagOptimizeRelease},
}

func ValidPrecision(mode types.PrecisionMode) bool {
	_, ok := precisionDeltas[mode]
	return ok
}

func ValidBuildMode(mode types.BuildMode) bool {
	_, ok := buildModeDeltas[mode]
	return ok
}

// ApplyPrecision strips every precision symbol from flags and appends the
// symbol selected by mode.  The input slice is not modified.
func ApplyPrecision(flags []string, mode types.PrecisionMode) []string {
	return applyAxis(flags, ownsPrecision, precisionDeltas[mode])
}

// ApplyBuildMode strips optimization levels, debug symbol flags and debug
// defines from flags and appends the flags selected by mode.  The input
// slice is not modified.
func ApplyBuildMode(flags []string, mode types.BuildMode) []string {
	return applyAxis(flags, ownsBuildMode, buildModeDeltas[mode])
}

// ModeFlags returns the flags the two mode axes append for a selector.
func ModeFlags(precision types.PrecisionMode, build types.BuildMode) []string {
	out := append([]string{}, precisionDeltas[precision]...)
	return append(out, buildModeDeltas[build]...)
}

func applyAxis(flags []string, owns func(string) bool, delta []string) []string {
	out := make([]string, 0, len(flags)+len(delta))
	for _, flag := range flags {
		if owns(flag) {
			continue
		}
		out = append(out, flag)
	}
	return append(out, delta...)
}

func ownsPrecision(flag string) bool {
	return flag == SymbolSinglePrecision || flag == SymbolDoublePrecision
}

func ownsBuildMode(flag string) bool {
	return IsOptimizationFlag(flag) || isDebugSymbolFlag(flag) || flag == SymbolDebug || flag == SymbolNoDebug
}

var optimizationFlags = map[string]bool{
	"-O": true, "-O0": true, "-O1": true, "-O2": true, "-O3": true,
	"-Os": true, "-Oz": true, "-Og": true, "-Ofast": true,
}

// IsOptimizationFlag reports whether flag selects a compiler optimization
// level (-O, -O0 ... -O3, -Os, -Oz, -Og, -Ofast).  Other -O spellings such
// as -ObjC++ are left alone.
func IsOptimizationFlag(flag string) bool {
	return optimizationFlags[flag]
}

func isDebugSymbolFlag(flag string) bool {
	switch flag {
	case "-g", "-g0", "-g1", "-g2", "-g3", "-ggdb", "-ggdb3":
		return true
	default:
		return false
	}
}
