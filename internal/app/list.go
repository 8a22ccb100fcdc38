package app

import (
	"context"
)

// List summarizes the profiles of an architecture family in platform id
// order.
func (s Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	catalog, err := s.loadCatalog(ctx, req.CatalogRequest)
	if err != nil {
		return ListResult{}, err
	}
	result := ListResult{Profiles: []ProfileSummary{}, Toggles: catalog.Toggles.Names()}
	for profile := range catalog.Profiles.ListCompatible(req.Family) {
		result.Profiles = append(result.Profiles, ProfileSummary{
			PlatformID: profile.PlatformID,
			OS:         profile.OS,
			Arch:       profile.Arch,
			Extends:    profile.Extends,
			Compiler:   profile.Compiler,
			Required:   profile.Required,
			Optional:   profile.Optional,
		})
	}
	return result, nil
}
