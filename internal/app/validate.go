package app

import (
	"context"
)

// Validate loads the catalog and checks every profile for dangling
// dependency references.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	catalog, err := s.loadCatalog(ctx, req.CatalogRequest)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		Sources:      catalog.Sources,
		Platforms:    len(catalog.Profiles.IDs()),
		Dependencies: len(catalog.Dependencies.Names()),
		Toggles:      len(catalog.Toggles.Names()),
	}, nil
}
