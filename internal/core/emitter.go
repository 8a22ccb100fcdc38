package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"toolchain-resolver/internal/shared"
	"toolchain-resolver/internal/types"
)

// Emitter is the only producer of ResolvedBuildConfig values.
type Emitter struct{}

func NewEmitter() Emitter {
	return Emitter{}
}

// Emit copies a validated working set into an immutable record.  Lists are
// never nil and the fingerprint covers every emitted field.
func (e Emitter) Emit(ctx context.Context, ws types.WorkingSet) types.ResolvedBuildConfig {
	assert.NotEmpty(ctx, ws.Target.PlatformID, "working set must name a platform")
	assert.NotEmpty(ctx, ws.Compiler, "working set must name a compiler")

	config := types.ResolvedBuildConfig{
		Platform:     ws.Target.PlatformID,
		Precision:    ws.Target.Precision,
		BuildMode:    ws.Target.BuildMode,
		Features:     shared.CloneStrings(ws.Target.Features),
		Toggles:      shared.CloneStrings(ws.Target.Toggles),
		Compiler:     ws.Compiler,
		CompileFlags: shared.CloneStrings(ws.CompileFlags),
		LinkFlags:    shared.CloneStrings(ws.LinkFlags),
		IncludePaths: shared.CloneStrings(ws.IncludePaths),
		LibraryDirs:  shared.CloneStrings(ws.LibraryDirs),
		LibraryNames: shared.CloneStrings(ws.LibraryNames),
	}
	config.Fingerprint = Fingerprint(config)
	return config
}

// Fingerprint hashes the canonical form of config, ignoring any fingerprint
// it already carries.
func Fingerprint(config types.ResolvedBuildConfig) string {
	var builder strings.Builder
	writeField := func(name string, values ...string) {
		builder.WriteString(name)
		for _, value := range values {
			builder.WriteString("\x1f")
			builder.WriteString(value)
		}
		builder.WriteString("\n")
	}
	writeField("platform", config.Platform)
	writeField("precision", string(config.Precision))
	writeField("build_mode", string(config.BuildMode))
	writeField("features", config.Features...)
	writeField("toggles", config.Toggles...)
	writeField("compiler", config.Compiler)
	writeField("compile_flags", config.CompileFlags...)
	writeField("link_flags", config.LinkFlags...)
	writeField("include_paths", config.IncludePaths...)
	writeField("library_dirs", config.LibraryDirs...)
	writeField("library_names", config.LibraryNames...)
	sum := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(sum[:])
}
