package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolchain-resolver/internal/app"
	"toolchain-resolver/internal/core"
)

const placeholderEnvPrefix = envPrefix + "_"

type catalogOptions struct {
	Declarations []string
	Set          []string
}

func bindCatalogFlags(cmd *cobra.Command, opts *catalogOptions) {
	cmd.Flags().StringSliceVarP(&opts.Declarations, "declarations", "d", nil, "Declaration files or directories")
	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "Placeholder override NAME=VALUE (repeatable)")
	_ = viper.BindPFlag("declarations", cmd.Flags().Lookup("declarations"))
}

func catalogRequest(cmd *cobra.Command, opts catalogOptions) (app.CatalogRequest, error) {
	overrides, err := collectOverrides(viper.GetStringSlice("placeholders"), os.Environ(), opts.Set)
	if err != nil {
		return app.CatalogRequest{}, err
	}
	return app.CatalogRequest{
		Declarations: resolveStrings(cmd, opts.Declarations, "declarations", "declarations"),
		Overrides:    overrides,
	}, nil
}

// collectOverrides merges placeholder values from the config file, the
// environment and --set, later sources winning.  Config file entries use the
// NAME=VALUE form because viper folds map keys to lower case.
func collectOverrides(configured []string, environ []string, set []string) (map[string]string, error) {
	out := map[string]string{}
	fromConfig, err := core.ParseAssignments(configured)
	if err != nil {
		return nil, err
	}
	for name, value := range fromConfig {
		out[name] = value
	}
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, placeholderEnvPrefix) {
			continue
		}
		name = strings.TrimPrefix(name, placeholderEnvPrefix)
		if name == "" {
			continue
		}
		out[name] = value
	}
	fromFlags, err := core.ParseAssignments(set)
	if err != nil {
		return nil, err
	}
	for name, value := range fromFlags {
		out[name] = value
	}
	return out, nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if configured := viper.GetString(key); configured != "" {
		return configured
	}
	return value
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	if configured := viper.GetStringSlice(key); len(configured) > 0 {
		return configured
	}
	return values
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return value
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return value
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
