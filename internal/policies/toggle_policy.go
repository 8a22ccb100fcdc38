package policies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-resolver/internal/ports"
	"toolchain-resolver/internal/types"
)

var builtinToggles = []types.ToggleDefinition{
	{Name: "sse", CompileFlags: []string{"-DMTS_SSE"}},
	{Name: "coherent-rt", CompileFlags: []string{"-DMTS_HAS_COHERENT_RT"}},
	{Name: "openmp", CompileFlags: []string{"-fopenmp"}, LinkFlags: []string{"-fopenmp"}},
	{Name: "vectorize", CompileFlags: []string{"-ftree-vectorize"}},
}

// ToggleTable maps optional flag names to the flags they contribute.  It
// always contains the built-in toggles; declarations may add more but may
// not redefine an existing name.
type ToggleTable struct {
	byName map[string]types.ToggleDefinition
}

func NewToggleTable(declared []types.ToggleDefinition) (ToggleTable, error) {
	table := ToggleTable{byName: map[string]types.ToggleDefinition{}}
	for _, toggle := range builtinToggles {
		table.byName[toggle.Name] = toggle
	}
	for _, toggle := range declared {
		name := strings.TrimSpace(toggle.Name)
		if name == "" {
			return ToggleTable{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("toggle name must not be empty")
		}
		if _, exists := table.byName[name]; exists {
			return ToggleTable{}, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate toggle: %s", name))
		}
		toggle.Name = name
		table.byName[name] = toggle
	}
	return table, nil
}

func (t ToggleTable) Toggle(name string) (types.ToggleDefinition, bool) {
	toggle, ok := t.byName[name]
	return toggle, ok
}

// Names returns every toggle name in lexical order.
func (t ToggleTable) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ ports.TogglePort = ToggleTable{}
