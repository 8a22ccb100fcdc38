package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"toolchain-resolver/internal/policies"
	"toolchain-resolver/internal/ports"
	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

// VariantComposer merges a platform profile, its dependencies and the
// selected variant deltas into a working set.
type VariantComposer struct {
	Dependencies ports.DependencyLookupPort
	Profiles     ports.ProfileLookupPort
	Toggles      ports.TogglePort
}

func NewVariantComposer(deps ports.DependencyLookupPort, profiles ports.ProfileLookupPort, toggles ports.TogglePort) VariantComposer {
	return VariantComposer{
		Dependencies: deps,
		Profiles:     profiles,
		Toggles:      toggles,
	}
}

// Compose applies, in order: base profile flags, required dependencies,
// enabled optional features, precision and build mode deltas, then optional
// toggles.  Nothing is de-duplicated.
func (c VariantComposer) Compose(ctx context.Context, selector types.VariantSelector) (types.WorkingSet, error) {
	if err := checkSelector(selector); err != nil {
		return types.WorkingSet{}, err
	}
	profile, err := c.Profiles.Lookup(selector.PlatformID)
	if err != nil {
		return types.WorkingSet{}, err
	}

	ws := types.WorkingSet{
		Target: types.VariantSelector{
			PlatformID: profile.PlatformID,
			Precision:  selector.Precision,
			BuildMode:  selector.BuildMode,
			Features:   shared.CloneStrings(selector.Features),
			Toggles:    shared.CloneStrings(selector.Toggles),
		},
		Compiler:     profile.Compiler,
		CompileFlags: shared.CloneStrings(profile.CompileFlags),
		LinkFlags:    shared.CloneStrings(profile.LinkFlags),
		IncludePaths: []string{},
		LibraryDirs:  []string{},
		LibraryNames: []string{},
		Origins:      []types.LibraryOrigin{},
		Dependencies: []string{},
	}

	for _, name := range profile.Required {
		descriptor, err := c.Dependencies.Lookup(name)
		if err != nil {
			return types.WorkingSet{}, newError(KindMissingRequiredDependency, name, "required",
				fmt.Sprintf("platform %s requires missing dependency %s", profile.PlatformID, name)).WithCause(err)
		}
		appendDependency(&ws, descriptor)
	}

	for _, name := range selector.Features {
		if !shared.ContainsString(profile.Optional, name) {
			return types.WorkingSet{}, newError(KindUnrequestedOptionalFeature, name, "features",
				fmt.Sprintf("feature %s is not an optional dependency of platform %s", name, profile.PlatformID))
		}
		descriptor, err := c.Dependencies.Lookup(name)
		if err != nil {
			return types.WorkingSet{}, err
		}
		appendDependency(&ws, descriptor)
	}

	ws.CompileFlags = policies.ApplyPrecision(ws.CompileFlags, selector.Precision)
	ws.CompileFlags = policies.ApplyBuildMode(ws.CompileFlags, selector.BuildMode)

	for _, name := range selector.Toggles {
		toggle, ok := c.Toggles.Toggle(name)
		if !ok {
			return types.WorkingSet{}, newError(KindUnknownOptionalFlag, name, "toggles",
				fmt.Sprintf("unknown optional flag: %s", name))
		}
		ws.CompileFlags = append(ws.CompileFlags, toggle.CompileFlags...)
		ws.LinkFlags = append(ws.LinkFlags, toggle.LinkFlags...)
	}

	log.Ctx(ctx).Debug().
		Str("platform", profile.PlatformID).
		Str("precision", string(selector.Precision)).
		Str("build_mode", string(selector.BuildMode)).
		Strs("dependencies", ws.Dependencies).
		Msg("variant composed")
	return ws, nil
}

func appendDependency(ws *types.WorkingSet, descriptor types.DependencyDescriptor) {
	ws.IncludePaths = append(ws.IncludePaths, descriptor.IncludePaths...)
	ws.LibraryDirs = append(ws.LibraryDirs, descriptor.LibraryDirs...)
	ws.LibraryNames = append(ws.LibraryNames, descriptor.LibraryNames...)
	ws.CompileFlags = append(ws.CompileFlags, descriptor.ExtraFlags...)
	for _, library := range descriptor.LibraryNames {
		ws.Origins = append(ws.Origins, types.LibraryOrigin{
			Library:     library,
			Dependency:  descriptor.Name,
			LibraryDirs: shared.CloneStrings(descriptor.LibraryDirs),
		})
	}
	ws.Dependencies = append(ws.Dependencies, descriptor.Name)
}

func checkSelector(selector types.VariantSelector) error {
	if !policies.ValidPrecision(selector.Precision) {
		return newError(KindInvalidSelector, string(selector.Precision), "precision",
			fmt.Sprintf("invalid precision mode %q (want single or double)", selector.Precision))
	}
	if !policies.ValidBuildMode(selector.BuildMode) {
		return newError(KindInvalidSelector, string(selector.BuildMode), "build_mode",
			fmt.Sprintf("invalid build mode %q (want debug or release)", selector.BuildMode))
	}
	if name, ok := firstRepeat(selector.Features); ok {
		return newError(KindInvalidSelector, name, "features", fmt.Sprintf("feature listed twice: %s", name))
	}
	if name, ok := firstRepeat(selector.Toggles); ok {
		return newError(KindInvalidSelector, name, "toggles", fmt.Sprintf("optional flag listed twice: %s", name))
	}
	return nil
}

func firstRepeat(values []string) (string, bool) {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			return value, true
		}
		seen[value] = struct{}{}
	}
	return "", false
}
