package ports

import (
	"iter"

	"toolchain-resolver/internal/types"
)

type DependencyLookupPort interface {
	Lookup(name string) (types.DependencyDescriptor, error)
}

type ProfileLookupPort interface {
	Lookup(platformID string) (types.PlatformProfile, error)
	ListCompatible(family string) iter.Seq[types.PlatformProfile]
}

// TogglePort resolves optional flag toggles by name.
type TogglePort interface {
	Toggle(name string) (types.ToggleDefinition, bool)
}
