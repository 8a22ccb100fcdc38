package app

import (
	"context"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"toolchain-resolver/internal/core"
	"toolchain-resolver/internal/types"
)

// loadCatalog reads every requested declaration and builds one sealed
// catalog.  Directories are expanded to the declaration files below them.
// A catalog with dangling dependency references is rejected as a whole.
func (s Service) loadCatalog(ctx context.Context, req CatalogRequest) (core.Catalog, error) {
	paths, err := s.declarationPaths(req.Declarations)
	if err != nil {
		return core.Catalog{}, err
	}
	decls := make([]types.DeclarationFile, 0, len(paths))
	for _, path := range paths {
		decl, err := s.Declarations.LoadDeclaration(path)
		if err != nil {
			if errbuilder.CodeOf(err) == errbuilder.CodeInvalidArgument {
				return core.Catalog{}, core.NewMalformedDeclarationError(path, err)
			}
			return core.Catalog{}, err
		}
		decls = append(decls, decl)
	}
	log.Ctx(ctx).Debug().Strs("declarations", paths).Msg("loading catalog")
	catalog, err := core.NewCatalogBuilder(req.Overrides).Build(ctx, decls)
	if err != nil {
		return core.Catalog{}, err
	}
	if err := catalog.Check(); err != nil {
		return core.Catalog{}, err
	}
	return catalog, nil
}

func (s Service) declarationPaths(inputs []string) ([]string, error) {
	var paths []string
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		info, err := os.Stat(input)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("declaration path not found: " + input).
				WithCause(err)
		}
		if !info.IsDir() {
			paths = append(paths, input)
			continue
		}
		found, err := s.Workspace.FindDeclarations(input)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one declaration file is required")
	}
	return paths, nil
}
