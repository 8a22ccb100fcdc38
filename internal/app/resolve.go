package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-resolver/internal/core"
	"toolchain-resolver/internal/types"
)

// Resolve builds one configuration and, when an output directory is given,
// writes it in every requested format.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	if strings.TrimSpace(req.Selector.PlatformID) == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("platform is required")
	}
	catalog, err := s.loadCatalog(ctx, req.CatalogRequest)
	if err != nil {
		return ResolveResult{}, err
	}
	config, err := core.NewResolverCore(catalog).Resolve(ctx, req.Selector)
	if err != nil {
		return ResolveResult{}, err
	}

	result := ResolveResult{Config: config}
	if strings.TrimSpace(req.OutputDir) == "" {
		return result, nil
	}
	formats := req.Formats
	if len(formats) == 0 {
		formats = []types.OutputFormat{types.OutputFormatJSON}
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = targetName(config.Platform, config.Precision, config.BuildMode)
	}
	output := s.NewOutput(req.OutputDir)
	for _, format := range formats {
		path, err := output.WriteConfig(name, config, format)
		if err != nil {
			return ResolveResult{}, err
		}
		result.Paths = append(result.Paths, path)
	}
	return result, nil
}

func targetName(platform string, precision types.PrecisionMode, build types.BuildMode) string {
	return fmt.Sprintf("%s-%s-%s", platform, precision, build)
}

// ParseFormats validates output format names.
func ParseFormats(values []string) ([]types.OutputFormat, error) {
	formats := make([]types.OutputFormat, 0, len(values))
	for _, value := range values {
		format := types.OutputFormat(strings.ToLower(strings.TrimSpace(value)))
		if !isKnownFormat(format) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported output format: %s", value))
		}
		formats = append(formats, format)
	}
	return formats, nil
}

func isKnownFormat(format types.OutputFormat) bool {
	for _, known := range types.OutputFormats {
		if known == format {
			return true
		}
	}
	return false
}
