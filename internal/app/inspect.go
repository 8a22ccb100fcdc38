package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-resolver/internal/adapters"
	"toolchain-resolver/internal/core"
)

// Inspect reads an emitted config or a matrix manifest back.  For configs
// the stored fingerprint is recomputed and compared.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("path to inspect is required")
	}
	if filepath.Base(path) == adapters.ManifestFile {
		entries, err := s.OutputReader.ReadMatrixManifest(path)
		if err != nil {
			return InspectResult{}, err
		}
		return InspectResult{Manifest: entries}, nil
	}
	config, err := s.OutputReader.ReadConfig(path)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{
		Config:           &config,
		FingerprintValid: config.Fingerprint != "" && core.Fingerprint(config) == config.Fingerprint,
	}, nil
}
