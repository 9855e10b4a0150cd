// Package cmd provides the command-line interface for vitae.
//
// Configuration sources, highest priority first:
//
//	1. Command-line flags (--output, --data, ...)
//	2. VITAE_* environment variables (VITAE_PATHS_OUTPUT, ...)
//	3. Configuration file (.vitae.yml)
//	4. Built-in defaults
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vitaforge/vitae/internal/config"
	"github.com/vitaforge/vitae/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vitae",
	Short: "A static-site generator for single-page resume websites",
	Long: `Vitae turns a JSON resume file into a complete static website:
a rendered HTML page, stylesheets, scripts, images, sitemap.xml,
robots.txt and an optional custom-domain pointer file.

Quick Start:
  vitae setup                     Answer a few questions, get a working site
  vitae build                     Generate the site into the output directory
  vitae validate                  Check the resume config without building
  vitae dev                       Watch for changes and rebuild automatically`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Accept underscore spellings (--log_level) alongside the canonical
	// dashed names.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default .vitae.yml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	// A local .env may carry VITAE_* overrides; absence is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vitae")
	}

	viper.SetEnvPrefix("VITAE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing or unreadable config files fall back to defaults; every
	// setting has one.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the logger shared by all commands from resolved settings.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}
