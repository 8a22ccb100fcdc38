package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-resolver/internal/ports"
	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

// DependencyStore holds dependency descriptors by name.  It is written only
// during the load phase; after Seal it is read-only and safe for concurrent
// lookups without locking.
type DependencyStore struct {
	byName map[string]types.DependencyDescriptor
	sealed bool
}

func NewDependencyStore() *DependencyStore {
	return &DependencyStore{byName: map[string]types.DependencyDescriptor{}}
}

func (s *DependencyStore) Register(descriptor types.DependencyDescriptor) error {
	if s.sealed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("dependency store is sealed")
	}
	name := strings.TrimSpace(descriptor.Name)
	if name == "" {
		return newError(KindMalformedDeclaration, "", "dependencies.name", "dependency name must not be empty")
	}
	if _, exists := s.byName[name]; exists {
		return newError(KindDuplicateDependency, name, "dependencies.name", fmt.Sprintf("duplicate dependency: %s", name))
	}
	descriptor.Name = name
	s.byName[name] = cloneDescriptor(descriptor)
	return nil
}

// Seal ends the load phase.
func (s *DependencyStore) Seal() {
	s.sealed = true
}

func (s *DependencyStore) Lookup(name string) (types.DependencyDescriptor, error) {
	descriptor, ok := s.byName[name]
	if !ok {
		return types.DependencyDescriptor{}, newError(KindUnknownDependency, name, "dependency", fmt.Sprintf("unknown dependency: %s", name))
	}
	return cloneDescriptor(descriptor), nil
}

func (s *DependencyStore) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Names returns every registered dependency name in lexical order.
func (s *DependencyStore) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneDescriptor(descriptor types.DependencyDescriptor) types.DependencyDescriptor {
	return types.DependencyDescriptor{
		Name:         descriptor.Name,
		IncludePaths: shared.CloneStrings(descriptor.IncludePaths),
		LibraryDirs:  shared.CloneStrings(descriptor.LibraryDirs),
		LibraryNames: shared.CloneStrings(descriptor.LibraryNames),
		ExtraFlags:   shared.CloneStrings(descriptor.ExtraFlags),
	}
}

var _ ports.DependencyLookupPort = (*DependencyStore)(nil)
