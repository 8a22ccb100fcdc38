package ports

import "toolchain-resolver/internal/types"

// DeclarationPort reads one declaration file.  The syntax is chosen from the
// file extension.
type DeclarationPort interface {
	LoadDeclaration(path string) (types.DeclarationFile, error)
}
