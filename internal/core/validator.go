package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"toolchain-resolver/internal/policies"
	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

// Validator runs every consistency check over a working set and reports all
// failures together.
type Validator struct{}

func NewValidator() Validator {
	return Validator{}
}

func (v Validator) Validate(ctx context.Context, ws types.WorkingSet) (types.WorkingSet, error) {
	problems := []*ResolutionError{}
	problems = append(problems, checkModeFlags(ws.CompileFlags)...)
	problems = append(problems, checkPaths(ws.IncludePaths, "include_paths")...)
	problems = append(problems, checkPaths(ws.LibraryDirs, "library_dirs")...)
	problems = append(problems, checkLibraryOrigins(ws.Origins)...)
	if len(problems) > 0 {
		log.Ctx(ctx).Debug().
			Str("platform", ws.Target.PlatformID).
			Int("problems", len(problems)).
			Msg("working set rejected")
		return types.WorkingSet{}, &ValidationError{Problems: problems}
	}
	return ws, nil
}

func checkModeFlags(flags []string) []*ResolutionError {
	problems := []*ResolutionError{}
	for _, group := range policies.ExclusiveGroups {
		present := []string{}
		for _, member := range group.Flags {
			if shared.ContainsString(flags, member) {
				present = append(present, member)
			}
		}
		if len(present) > 1 {
			problems = append(problems, newError(KindConflictingModeFlags, strings.Join(present, ","), "compile_flags",
				fmt.Sprintf("mutually exclusive %s flags present: %s", group.Name, strings.Join(present, " "))))
		}
	}
	return problems
}

func checkPaths(paths []string, field string) []*ResolutionError {
	problems := []*ResolutionError{}
	for _, path := range paths {
		switch {
		case strings.TrimSpace(path) == "":
			problems = append(problems, newError(KindMalformedPath, path, field, fmt.Sprintf("empty path in %s", field)))
		case shared.HasControlCharacter(path):
			problems = append(problems, newError(KindMalformedPath, path, field,
				fmt.Sprintf("path %q in %s contains control characters", path, field)))
		}
	}
	return problems
}

// checkLibraryOrigins flags a library name supplied by two dependencies that
// disagree on where libraries live.  Each offending dependency is reported
// once per library.
func checkLibraryOrigins(origins []types.LibraryOrigin) []*ResolutionError {
	problems := []*ResolutionError{}
	first := map[string]types.LibraryOrigin{}
	reported := map[string]bool{}
	for _, origin := range origins {
		existing, ok := first[origin.Library]
		if !ok {
			first[origin.Library] = origin
			continue
		}
		if existing.Dependency == origin.Dependency || slices.Equal(existing.LibraryDirs, origin.LibraryDirs) {
			continue
		}
		key := origin.Library + "\x00" + origin.Dependency
		if reported[key] {
			continue
		}
		reported[key] = true
		problems = append(problems, newError(KindConflictingDependencyPath, origin.Library, "library_names",
			fmt.Sprintf("library %s provided by %s and %s with different library dirs", origin.Library, existing.Dependency, origin.Dependency)))
	}
	return problems
}
