package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"toolchain-resolver/internal/policies"
	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

// SupportedAPIVersions is the constraint every declaration's api_version
// must satisfy.
const SupportedAPIVersions = "^1"

// Catalog is the sealed result of one load phase.
type Catalog struct {
	Dependencies *DependencyStore
	Profiles     *ProfileStore
	Toggles      policies.ToggleTable
	Sources      []string
}

type CatalogBuilder struct {
	Overrides map[string]string
}

func NewCatalogBuilder(overrides map[string]string) CatalogBuilder {
	return CatalogBuilder{Overrides: overrides}
}

// Build loads every declaration into fresh stores and seals them.  Any error
// aborts the whole load; no partially populated catalog is returned.
func (b CatalogBuilder) Build(ctx context.Context, decls []types.DeclarationFile) (Catalog, error) {
	if len(decls) == 0 {
		return Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one declaration file is required")
	}
	constraint, err := semver.NewConstraint(SupportedAPIVersions)
	if err != nil {
		return Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("invalid api_version constraint").
			WithCause(err)
	}

	deps := NewDependencyStore()
	profiles := NewProfileStore()
	declared := map[string]types.PlatformProfile{}
	order := []string{}
	toggles := []types.ToggleDefinition{}
	sources := make([]string, 0, len(decls))

	for _, raw := range decls {
		if err := checkAPIVersion(constraint, raw); err != nil {
			return Catalog{}, err
		}
		decl, err := expandDeclaration(raw, b.Overrides)
		if err != nil {
			return Catalog{}, err
		}
		if err := checkDeclarationFlags(decl); err != nil {
			return Catalog{}, err
		}
		for _, dep := range decl.Dependencies {
			if err := deps.Register(dep); err != nil {
				return Catalog{}, withSource(err, decl.Source)
			}
		}
		for _, profile := range decl.Profiles {
			id := strings.TrimSpace(profile.PlatformID)
			if id == "" {
				return Catalog{}, newError(KindMalformedDeclaration, "", "profiles.platform_id",
					fmt.Sprintf("%s: platform_id must not be empty", decl.Source))
			}
			if _, exists := declared[id]; exists {
				return Catalog{}, newError(KindDuplicatePlatform, id, "profiles.platform_id",
					fmt.Sprintf("%s: duplicate platform: %s", decl.Source, id))
			}
			profile.PlatformID = id
			profile.Extends = strings.TrimSpace(profile.Extends)
			declared[id] = profile
			order = append(order, id)
		}
		toggles = append(toggles, decl.Toggles...)
		sources = append(sources, decl.Source)
		log.Ctx(ctx).Debug().
			Str("source", decl.Source).
			Int("dependencies", len(decl.Dependencies)).
			Int("profiles", len(decl.Profiles)).
			Msg("declaration loaded")
	}

	table, err := policies.NewToggleTable(toggles)
	if err != nil {
		return Catalog{}, newError(KindMalformedDeclaration, offendingToggle(toggles), "toggles.name", "invalid toggle declaration").WithCause(err)
	}

	flattener := profileFlattener{declared: declared, done: map[string]types.PlatformProfile{}, visiting: map[string]bool{}}
	for _, id := range order {
		profile, err := flattener.flatten(id, nil)
		if err != nil {
			return Catalog{}, err
		}
		if err := profiles.Register(profile); err != nil {
			return Catalog{}, err
		}
	}

	deps.Seal()
	profiles.Seal()
	log.Ctx(ctx).Debug().
		Int("dependencies", len(deps.Names())).
		Int("profiles", len(order)).
		Int("toggles", len(table.Names())).
		Msg("catalog sealed")
	return Catalog{Dependencies: deps, Profiles: profiles, Toggles: table, Sources: sources}, nil
}

func checkAPIVersion(constraint *semver.Constraints, decl types.DeclarationFile) error {
	value := strings.TrimSpace(decl.APIVersion)
	if value == "" {
		return newError(KindMalformedDeclaration, decl.Source, "api_version",
			fmt.Sprintf("%s: api_version must be set", decl.Source))
	}
	version, err := semver.NewVersion(value)
	if err != nil {
		return newError(KindMalformedDeclaration, value, "api_version",
			fmt.Sprintf("%s: invalid api_version %q", decl.Source, value)).WithCause(err)
	}
	if !constraint.Check(version) {
		return newError(KindMalformedDeclaration, value, "api_version",
			fmt.Sprintf("%s: unsupported api_version %s (want %s)", decl.Source, value, SupportedAPIVersions))
	}
	return nil
}

// offendingToggle names the first declared toggle that is empty or collides
// with a built-in or earlier toggle.
func offendingToggle(toggles []types.ToggleDefinition) string {
	builtin, _ := policies.NewToggleTable(nil)
	seen := map[string]bool{}
	for _, name := range builtin.Names() {
		seen[name] = true
	}
	for _, toggle := range toggles {
		name := strings.TrimSpace(toggle.Name)
		if name == "" || seen[name] {
			return name
		}
		seen[name] = true
	}
	return ""
}

// checkDeclarationFlags rejects flags that are empty or carry control
// characters once placeholders are expanded.  Emitted formats are line
// based and cannot represent them.
func checkDeclarationFlags(decl types.DeclarationFile) error {
	type flagList struct {
		owner string
		field string
		flags []string
	}
	lists := []flagList{}
	for _, dep := range decl.Dependencies {
		lists = append(lists, flagList{dep.Name, "dependencies.extra_flags", dep.ExtraFlags})
	}
	for _, toggle := range decl.Toggles {
		lists = append(lists,
			flagList{toggle.Name, "toggles.compile_flags", toggle.CompileFlags},
			flagList{toggle.Name, "toggles.link_flags", toggle.LinkFlags})
	}
	for _, profile := range decl.Profiles {
		lists = append(lists,
			flagList{profile.PlatformID, "profiles.compile_flags", profile.CompileFlags},
			flagList{profile.PlatformID, "profiles.link_flags", profile.LinkFlags})
	}
	for _, list := range lists {
		for _, flag := range list.flags {
			if strings.TrimSpace(flag) != "" && !shared.HasControlCharacter(flag) {
				continue
			}
			return newError(KindMalformedDeclaration, flag, list.field,
				fmt.Sprintf("%s: %s flag %q of %s is empty or contains control characters", decl.Source, list.field, flag, list.owner))
		}
	}
	return nil
}

func withSource(err error, source string) error {
	if resolution, ok := err.(*ResolutionError); ok && source != "" {
		resolution.Msg = fmt.Sprintf("%s: %s", source, resolution.Msg)
	}
	return err
}

type profileFlattener struct {
	declared map[string]types.PlatformProfile
	done     map[string]types.PlatformProfile
	visiting map[string]bool
}

// flatten resolves the extends chain of id.  Parent flags precede child
// flags; dependency lists are merged parent-first without repeats and the
// child's compiler wins when set.
func (f profileFlattener) flatten(id string, chain []string) (types.PlatformProfile, error) {
	if profile, ok := f.done[id]; ok {
		return profile, nil
	}
	profile, ok := f.declared[id]
	if !ok {
		child := ""
		if len(chain) > 0 {
			child = chain[len(chain)-1]
		}
		return types.PlatformProfile{}, newError(KindMalformedDeclaration, child, "profiles.extends",
			fmt.Sprintf("profile %s extends unknown profile %s", child, id))
	}
	if f.visiting[id] {
		cycle := append(append([]string{}, chain...), id)
		return types.PlatformProfile{}, newError(KindMalformedDeclaration, id, "profiles.extends",
			fmt.Sprintf("profile inheritance cycle: %s", strings.Join(cycle, " -> ")))
	}
	if profile.Extends == "" {
		f.done[id] = profile
		return profile, nil
	}

	f.visiting[id] = true
	parent, err := f.flatten(profile.Extends, append(chain, id))
	delete(f.visiting, id)
	if err != nil {
		return types.PlatformProfile{}, err
	}

	merged := profile
	if strings.TrimSpace(merged.Compiler) == "" {
		merged.Compiler = parent.Compiler
	}
	merged.CompileFlags = append(shared.CloneStrings(parent.CompileFlags), profile.CompileFlags...)
	merged.LinkFlags = append(shared.CloneStrings(parent.LinkFlags), profile.LinkFlags...)
	merged.Required = mergeUnique(parent.Required, profile.Required)
	merged.Optional = mergeUnique(parent.Optional, profile.Optional)
	f.done[id] = merged
	return merged, nil
}

func mergeUnique(first []string, second []string) []string {
	out := make([]string, 0, len(first)+len(second))
	for _, list := range [][]string{first, second} {
		for _, value := range list {
			if shared.ContainsString(out, value) {
				continue
			}
			out = append(out, value)
		}
	}
	return out
}

// DanglingReferences reports every required or optional dependency name, in
// platform id order, that no loaded descriptor satisfies.
func (c Catalog) DanglingReferences() []*ResolutionError {
	problems := []*ResolutionError{}
	for _, id := range c.Profiles.IDs() {
		profile, err := c.Profiles.Lookup(id)
		if err != nil {
			continue
		}
		for _, name := range profile.Required {
			if !c.Dependencies.Has(name) {
				problems = append(problems, newError(KindMissingRequiredDependency, name, "profiles.required",
					fmt.Sprintf("platform %s requires unknown dependency %s", id, name)))
			}
		}
		for _, name := range profile.Optional {
			if !c.Dependencies.Has(name) {
				problems = append(problems, newError(KindUnknownDependency, name, "profiles.optional",
					fmt.Sprintf("platform %s lists unknown optional dependency %s", id, name)))
			}
		}
	}
	return problems
}

// Check returns a ValidationError aggregating every dangling reference, or
// nil when the catalog is closed under its references.
func (c Catalog) Check() error {
	problems := c.DanglingReferences()
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func (c Catalog) Composer() VariantComposer {
	return NewVariantComposer(c.Dependencies, c.Profiles, c.Toggles)
}
