package core

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-resolver/internal/policies"
	"toolchain-resolver/internal/ports"
	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

// ProfileStore holds platform profiles keyed by platform id, with the same
// load-then-seal contract as DependencyStore.
type ProfileStore struct {
	byID   map[string]types.PlatformProfile
	sealed bool
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{byID: map[string]types.PlatformProfile{}}
}

// Register adds a fully inherited profile.  OS and Arch default to the two
// halves of the platform id.
func (s *ProfileStore) Register(profile types.PlatformProfile) error {
	if s.sealed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("profile store is sealed")
	}
	id := strings.TrimSpace(profile.PlatformID)
	if id == "" {
		return newError(KindMalformedDeclaration, "", "profiles.platform_id", "platform_id must not be empty")
	}
	if strings.TrimSpace(profile.Compiler) == "" {
		return newError(KindMalformedDeclaration, id, "profiles.compiler", fmt.Sprintf("profile %s missing compiler", id))
	}
	if _, exists := s.byID[id]; exists {
		return newError(KindDuplicatePlatform, id, "profiles.platform_id", fmt.Sprintf("duplicate platform: %s", id))
	}
	profile.PlatformID = id
	os, arch := policies.SplitPlatformID(id)
	if strings.TrimSpace(profile.OS) == "" {
		profile.OS = os
	}
	if strings.TrimSpace(profile.Arch) == "" {
		profile.Arch = arch
	}
	s.byID[id] = cloneProfile(profile)
	return nil
}

func (s *ProfileStore) Seal() {
	s.sealed = true
}

func (s *ProfileStore) Lookup(platformID string) (types.PlatformProfile, error) {
	profile, ok := s.byID[platformID]
	if !ok {
		return types.PlatformProfile{}, newError(KindUnknownPlatform, platformID, "platform_id", fmt.Sprintf("unknown platform: %s", platformID))
	}
	return cloneProfile(profile), nil
}

// ListCompatible yields, in platform id order, every profile whose
// architecture belongs to family.  Each range over the sequence starts from
// the beginning.
func (s *ProfileStore) ListCompatible(family string) iter.Seq[types.PlatformProfile] {
	return func(yield func(types.PlatformProfile) bool) {
		for _, id := range s.IDs() {
			profile := s.byID[id]
			if !policies.ArchFamilyMatches(family, profile.Arch) {
				continue
			}
			if !yield(cloneProfile(profile)) {
				return
			}
		}
	}
}

// IDs returns every platform id in lexical order.
func (s *ProfileStore) IDs() []string {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func cloneProfile(profile types.PlatformProfile) types.PlatformProfile {
	profile.CompileFlags = shared.CloneStrings(profile.CompileFlags)
	profile.LinkFlags = shared.CloneStrings(profile.LinkFlags)
	profile.Required = shared.CloneStrings(profile.Required)
	profile.Optional = shared.CloneStrings(profile.Optional)
	return profile
}

var _ ports.ProfileLookupPort = (*ProfileStore)(nil)
