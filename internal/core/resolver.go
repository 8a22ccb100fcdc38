package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"toolchain-resolver/internal/types"
)

// ResolverCore runs the one-way pipeline selector -> compose -> validate ->
// emit against a sealed catalog.
type ResolverCore struct {
	Composer  VariantComposer
	Validator Validator
	Emitter   Emitter
}

func NewResolverCore(catalog Catalog) ResolverCore {
	return ResolverCore{
		Composer:  catalog.Composer(),
		Validator: NewValidator(),
		Emitter:   NewEmitter(),
	}
}

// Resolve returns a complete configuration or an error; never both and never
// a partial result.
func (r ResolverCore) Resolve(ctx context.Context, selector types.VariantSelector) (types.ResolvedBuildConfig, error) {
	if r.Composer.Dependencies == nil || r.Composer.Profiles == nil || r.Composer.Toggles == nil {
		return types.ResolvedBuildConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires dependency, profile and toggle lookups")
	}
	ws, err := r.Composer.Compose(ctx, selector)
	if err != nil {
		return types.ResolvedBuildConfig{}, err
	}
	ws, err = r.Validator.Validate(ctx, ws)
	if err != nil {
		return types.ResolvedBuildConfig{}, err
	}
	config := r.Emitter.Emit(ctx, ws)
	log.Ctx(ctx).Debug().
		Str("platform", config.Platform).
		Str("fingerprint", config.Fingerprint).
		Msg("build config resolved")
	return config, nil
}
