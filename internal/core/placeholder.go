package core

import (
	"fmt"
	"regexp"
	"strings"

	"toolchain-resolver/internal/types"
)

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandPlaceholders replaces every ${NAME} in value.  Substituted text is
// not expanded again.  Names without a value are returned in first-seen
// order and left in place.
func expandPlaceholders(value string, values map[string]string) (string, []string) {
	var missing []string
	expanded := placeholderPattern.ReplaceAllStringFunc(value, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if replacement, ok := values[name]; ok {
			return replacement
		}
		missing = append(missing, name)
		return match
	})
	return expanded, missing
}

// placeholderScope layers override values over the variables a declaration
// file defines for itself.
func placeholderScope(variables map[string]string, overrides map[string]string) map[string]string {
	scope := make(map[string]string, len(variables)+len(overrides))
	for name, value := range variables {
		scope[name] = value
	}
	for name, value := range overrides {
		scope[name] = value
	}
	return scope
}

type placeholderExpander struct {
	scope  map[string]string
	source string
	err    error
}

func (e *placeholderExpander) one(value string, key string, field string) string {
	if e.err != nil {
		return value
	}
	expanded, missing := expandPlaceholders(value, e.scope)
	if len(missing) > 0 {
		e.err = newError(KindMalformedDeclaration, key, field,
			fmt.Sprintf("%s: unresolved placeholder ${%s} in %s", e.source, missing[0], value))
	}
	return expanded
}

func (e *placeholderExpander) all(values []string, key string, field string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = e.one(value, key, field)
	}
	return out
}

// expandDeclaration resolves placeholders in every string a declaration
// contributes to the stores: compilers, flags and paths.
func expandDeclaration(decl types.DeclarationFile, overrides map[string]string) (types.DeclarationFile, error) {
	e := &placeholderExpander{scope: placeholderScope(decl.Variables, overrides), source: decl.Source}

	out := decl
	out.Dependencies = make([]types.DependencyDescriptor, len(decl.Dependencies))
	for i, dep := range decl.Dependencies {
		out.Dependencies[i] = types.DependencyDescriptor{
			Name:         dep.Name,
			IncludePaths: e.all(dep.IncludePaths, dep.Name, "dependencies.include_paths"),
			LibraryDirs:  e.all(dep.LibraryDirs, dep.Name, "dependencies.library_dirs"),
			LibraryNames: e.all(dep.LibraryNames, dep.Name, "dependencies.library_names"),
			ExtraFlags:   e.all(dep.ExtraFlags, dep.Name, "dependencies.extra_flags"),
		}
	}
	out.Toggles = make([]types.ToggleDefinition, len(decl.Toggles))
	for i, toggle := range decl.Toggles {
		out.Toggles[i] = types.ToggleDefinition{
			Name:         toggle.Name,
			CompileFlags: e.all(toggle.CompileFlags, toggle.Name, "toggles.compile_flags"),
			LinkFlags:    e.all(toggle.LinkFlags, toggle.Name, "toggles.link_flags"),
		}
	}
	out.Profiles = make([]types.PlatformProfile, len(decl.Profiles))
	for i, profile := range decl.Profiles {
		expanded := profile
		expanded.Compiler = e.one(profile.Compiler, profile.PlatformID, "profiles.compiler")
		expanded.CompileFlags = e.all(profile.CompileFlags, profile.PlatformID, "profiles.compile_flags")
		expanded.LinkFlags = e.all(profile.LinkFlags, profile.PlatformID, "profiles.link_flags")
		out.Profiles[i] = expanded
	}
	if e.err != nil {
		return types.DeclarationFile{}, e.err
	}
	return out, nil
}

// ParseAssignments parses NAME=VALUE pairs as given to --set.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, newError(KindInvalidSelector, pair, "set", fmt.Sprintf("invalid placeholder assignment %q, want NAME=VALUE", pair))
		}
		out[name] = value
	}
	return out, nil
}
