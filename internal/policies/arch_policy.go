package policies

import "strings"

// FamilyAll matches every architecture.
const FamilyAll = "all"

var archFamilies = map[string][]string{
	"x86": {"x86", "i386", "i686", "x86_64", "amd64"},
	"arm": {"arm", "armv7", "arm64", "aarch64"},
	"ppc": {"ppc", "ppc64", "ppc64le"},
}

// ArchFamilyMatches reports whether arch belongs to family.  Families not in
// the table only match an architecture of the same name.
func ArchFamilyMatches(family string, arch string) bool {
	family = strings.ToLower(strings.TrimSpace(family))
	arch = strings.ToLower(strings.TrimSpace(arch))
	if family == "" || family == FamilyAll {
		return true
	}
	members, ok := archFamilies[family]
	if !ok {
		return family == arch
	}
	for _, member := range members {
		if member == arch {
			return true
		}
	}
	return false
}

// SplitPlatformID splits "<os>-<arch>" at the first dash.  An id without a
// dash is returned as the OS with an empty architecture.
func SplitPlatformID(platformID string) (string, string) {
	os, arch, _ := strings.Cut(strings.TrimSpace(platformID), "-")
	return os, arch
}
