package types

type PrecisionMode string

const (
	PrecisionSingle PrecisionMode = "single"
	PrecisionDouble PrecisionMode = "double"
)

type BuildMode string

const (
	BuildModeDebug   BuildMode = "debug"
	BuildModeRelease BuildMode = "release"
)

type OutputFormat string

const (
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
	OutputFormatTOML  OutputFormat = "toml"
	OutputFormatEnv   OutputFormat = "env"
	OutputFormatSCons OutputFormat = "scons"
)

// OutputFormats lists every supported output format in a stable order.
var OutputFormats = []OutputFormat{
	OutputFormatJSON,
	OutputFormatYAML,
	OutputFormatTOML,
	OutputFormatEnv,
	OutputFormatSCons,
}

// Extension returns the file extension written for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatYAML:
		return ".yaml"
	case OutputFormatTOML:
		return ".toml"
	case OutputFormatEnv:
		return ".env"
	case OutputFormatSCons:
		return ".py"
	default:
		return ".json"
	}
}
