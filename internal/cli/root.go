package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolchain-resolver/internal/adapters"
	"toolchain-resolver/internal/app"
	"toolchain-resolver/internal/core"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "TOOLCHAIN_RESOLVER"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "toolchain-resolver",
		Short:         "Resolve per-platform compiler and linker configurations",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newMatrixCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newInspectCommand())
	return cmd
}

func newAppService() app.Service {
	return app.NewService()
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName(adapters.ConfigFileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/toolchain-resolver")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// setupLogging writes to stderr so resolved configs on stdout stay
// machine-readable.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	switch codeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition:
		switch core.KindOf(err) {
		case core.KindValidation, core.KindConflictingDependencyPath, core.KindConflictingModeFlags, core.KindMalformedPath:
			return 3
		}
		return 4
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

// codeOf prefers the code of a resolution error over any errbuilder cause
// wrapped inside it.
func codeOf(err error) errbuilder.ErrCode {
	var validation *core.ValidationError
	if errors.As(err, &validation) {
		return validation.Code()
	}
	var resolution *core.ResolutionError
	if errors.As(err, &resolution) {
		return resolution.Code()
	}
	return errbuilder.CodeOf(err)
}

func errorMessage(err error) string {
	var resolution *core.ResolutionError
	if errors.As(err, &resolution) && core.KindOf(err) != core.KindValidation {
		return resolution.Error()
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

// reportError prints the machine-readable error line followed by the human
// message.  Aggregated validation problems get one line each.
func reportError(w io.Writer, err error) {
	kind := core.KindOf(err)
	if kind == "" {
		fmt.Fprintf(w, "error_kind=%s key= field=\n", genericKind(codeOf(err)))
		fmt.Fprintf(w, "error: %s\n", errorMessage(err))
		return
	}
	var validation *core.ValidationError
	if errors.As(err, &validation) {
		fmt.Fprintf(w, "error_kind=%s key= field=\n", kind)
		for _, problem := range validation.Problems {
			fmt.Fprintf(w, "error_kind=%s key=%s field=%s\n", problem.Kind, problem.Key, problem.Field)
			fmt.Fprintf(w, "error: %s\n", problem.Error())
		}
		return
	}
	key, field := core.Offending(err)
	fmt.Fprintf(w, "error_kind=%s key=%s field=%s\n", kind, key, field)
	fmt.Fprintf(w, "error: %s\n", errorMessage(err))
}

func genericKind(code errbuilder.ErrCode) string {
	switch code {
	case errbuilder.CodeInvalidArgument:
		return "InvalidArgumentError"
	case errbuilder.CodeNotFound:
		return "NotFoundError"
	case errbuilder.CodeInternal:
		return "InternalError"
	default:
		return "Error"
	}
}
