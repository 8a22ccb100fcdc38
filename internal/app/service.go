package app

import (
	"toolchain-resolver/internal/adapters"
	"toolchain-resolver/internal/ports"
)

type Service struct {
	Declarations ports.DeclarationPort
	Workspace    ports.WorkspacePort
	OutputReader ports.OutputReaderPort
	NewOutput    func(dir string) ports.OutputPort
}

func NewService() Service {
	return Service{
		Declarations: adapters.NewDeclarationFileAdapter(),
		Workspace:    adapters.NewWorkspaceAdapter(),
		OutputReader: adapters.NewOutputReaderAdapter(),
		NewOutput: func(dir string) ports.OutputPort {
			return adapters.NewOutputFileAdapter(dir)
		},
	}
}
