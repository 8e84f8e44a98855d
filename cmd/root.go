// Package cmd implements the astrolabe command tree.
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/astrolabe/internal/natal"
	"github.com/papapumpkin/astrolabe/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:           "astrolabe",
	Short:         "Natal chart and synastry scoring",
	Long:          "Astrolabe builds natal charts from tabulated planetary positions and scores the compatibility of two charts.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// errChecksFailed is returned when validate finds problems it has already
// reported.
var errChecksFailed = errors.New("data checks failed")

// Execute runs the root command and exits with a code derived from the
// failure kind.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			ui.New().Error(err.Error())
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errChecksFailed):
		return 2
	}
	switch natal.KindOf(err) {
	case natal.KindInvalidPosition:
		return 5
	case natal.KindEphemeris:
		return 4
	case natal.KindLocation:
		return 3
	case natal.KindValidation:
		return 2
	}
	return 1
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .astrolabe.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.Bool("json", false, "write JSON instead of a styled report")
	pf.String("ephemeris", "", "ephemeris table (TOML)")
	pf.String("gazetteer", "", "gazetteer of birth places (TOML)")
	pf.String("telemetry", "", "append JSONL events to this file")
	pf.Int("workers", 0, "aspect scan workers")
	pf.Duration("timeout", 0, "ephemeris lookup timeout")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("json", pf.Lookup("json"))
	_ = viper.BindPFlag("ephemeris_file", pf.Lookup("ephemeris"))
	_ = viper.BindPFlag("gazetteer_file", pf.Lookup("gazetteer"))
	_ = viper.BindPFlag("telemetry_file", pf.Lookup("telemetry"))
	_ = viper.BindPFlag("aspect_workers", pf.Lookup("workers"))
	_ = viper.BindPFlag("ephemeris_timeout", pf.Lookup("timeout"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".astrolabe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("ASTROLABE")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
