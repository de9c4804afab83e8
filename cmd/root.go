// Package cmd provides the command-line interface for sitekit with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --port, etc.) - highest priority
//	2. SITEKIT_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (SITEKIT_SERVER_PORT, etc.)
//	4. Configuration files (.sitekit.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sitekit",
	Short: "Content API server for the Novaforge marketing site",
	Long: `Sitekit serves the marketing site's content collections (services,
case studies, blog posts, testimonials, team, company profile) over a JSON
API, together with the contact-form endpoints.

Quick Start:
  sitekit serve                    Start the content server
  sitekit content validate         Validate a content directory
  sitekit content pack             Compile content into a seed database
  sitekit config show              Print the effective configuration`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .sitekit.yml, can also use SITEKIT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. SITEKIT_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .sitekit.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("SITEKIT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sitekit")
	}

	// Enable automatic environment variable binding with SITEKIT_ prefix
	// Examples: SITEKIT_SERVER_PORT, SITEKIT_MAIL_API_KEY
	viper.SetEnvPrefix("SITEKIT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine; defaults and env vars still apply
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
