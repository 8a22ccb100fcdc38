package ports

// WorkspacePort discovers declaration files below a directory.
type WorkspacePort interface {
	FindDeclarations(root string) ([]string, error)
}
