package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"toolchain-resolver/internal/core"
	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

// TargetEnv is the environment a --filter expression is evaluated against.
type TargetEnv struct {
	Platform  string `expr:"platform"`
	OS        string `expr:"os"`
	Arch      string `expr:"arch"`
	Precision string `expr:"precision"`
	Build     string `expr:"build"`
}

type matrixTarget struct {
	selector types.VariantSelector
}

// Matrix resolves every platform of a family across the requested modes in
// parallel.  Results keep enumeration order regardless of completion order.
func (s Service) Matrix(ctx context.Context, req MatrixRequest) (MatrixResult, error) {
	precisions := req.Precisions
	if len(precisions) == 0 {
		precisions = []types.PrecisionMode{types.PrecisionSingle, types.PrecisionDouble}
	}
	builds := req.BuildModes
	if len(builds) == 0 {
		builds = []types.BuildMode{types.BuildModeDebug, types.BuildModeRelease}
	}
	format := req.Format
	if format == "" {
		format = types.OutputFormatJSON
	}
	program, err := CompileFilter(req.Filter)
	if err != nil {
		return MatrixResult{}, err
	}

	catalog, err := s.loadCatalog(ctx, req.CatalogRequest)
	if err != nil {
		return MatrixResult{}, err
	}

	targets := []matrixTarget{}
	for profile := range catalog.Profiles.ListCompatible(req.Family) {
		features := offeredFeatures(profile, req.Features)
		for _, precision := range precisions {
			for _, build := range builds {
				if program != nil {
					keep, err := MatchFilter(program, TargetEnv{
						Platform:  profile.PlatformID,
						OS:        profile.OS,
						Arch:      profile.Arch,
						Precision: string(precision),
						Build:     string(build),
					})
					if err != nil {
						return MatrixResult{}, err
					}
					if !keep {
						continue
					}
				}
				targets = append(targets, matrixTarget{selector: types.VariantSelector{
					PlatformID: profile.PlatformID,
					Precision:  precision,
					BuildMode:  build,
					Features:   features,
					Toggles:    shared.CloneStrings(req.Toggles),
				}})
			}
		}
	}
	if len(targets) == 0 {
		return MatrixResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("no targets match family %q", req.Family))
	}

	resolver := core.NewResolverCore(catalog)
	writeOutputs := strings.TrimSpace(req.OutputDir) != ""
	output := s.NewOutput(req.OutputDir)

	entries := make([]types.MatrixEntry, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	if req.Workers > 0 {
		g.SetLimit(req.Workers)
	}
	for i, target := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			config, err := resolver.Resolve(gctx, target.selector)
			if err != nil {
				return err
			}
			entry := types.MatrixEntry{
				Platform:    config.Platform,
				Precision:   config.Precision,
				BuildMode:   config.BuildMode,
				Fingerprint: config.Fingerprint,
			}
			if writeOutputs {
				path, err := output.WriteConfig(targetName(config.Platform, config.Precision, config.BuildMode), config, format)
				if err != nil {
					return err
				}
				entry.Path = path
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MatrixResult{}, err
	}

	result := MatrixResult{Entries: entries}
	if writeOutputs {
		path, err := output.WriteMatrixManifest(entries)
		if err != nil {
			return MatrixResult{}, err
		}
		result.ManifestPath = path
	}
	log.Ctx(ctx).Debug().Int("targets", len(entries)).Str("family", req.Family).Msg("matrix resolved")
	return result, nil
}

// offeredFeatures keeps, in request order, the features the profile lists
// as optional.
func offeredFeatures(profile types.PlatformProfile, requested []string) []string {
	out := []string{}
	for _, name := range requested {
		if shared.ContainsString(profile.Optional, name) {
			out = append(out, name)
		}
	}
	return out
}

// CompileFilter compiles a boolean target filter.  An empty expression
// compiles to nil, which matches everything.
func CompileFilter(filter string) (*vm.Program, error) {
	if strings.TrimSpace(filter) == "" {
		return nil, nil
	}
	program, err := expr.Compile(filter, expr.Env(TargetEnv{}), expr.AsBool())
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid --filter expression (example: os == 'linux' && build == 'release'): %s", filter)).
			WithCause(err)
	}
	return program, nil
}

func MatchFilter(program *vm.Program, env TargetEnv) (bool, error) {
	output, err := expr.Run(program, env)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("filter expression failed").
			WithCause(err)
	}
	keep, ok := output.(bool)
	if !ok {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("filter expression must return a boolean")
	}
	return keep, nil
}
