// Package config provides configuration management for sitekit using
// Viper for flexible configuration loading from files, environment
// variables, and command-line flags.
//
// The configuration system supports YAML files, environment variable
// overrides with a SITEKIT_ prefix, and validation. It covers the HTTP
// server, the content source, query-layer latency, and the CAPTCHA and
// mail delivery collaborators.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Content source kinds.
const (
	SourceEmbedded = "embedded"
	SourceDir      = "dir"
	SourceSQLite   = "sqlite"
)

type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Content ContentConfig `yaml:"content" mapstructure:"content"`
	Query   QueryConfig   `yaml:"query" mapstructure:"query"`
	Captcha CaptchaConfig `yaml:"captcha" mapstructure:"captcha"`
	Mail    MailConfig    `yaml:"mail" mapstructure:"mail"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	Host           string   `yaml:"host" mapstructure:"host"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	Environment    string   `yaml:"environment" mapstructure:"environment"`
}

type ContentConfig struct {
	Source   string `yaml:"source" mapstructure:"source"`     // embedded, dir, or sqlite
	Dir      string `yaml:"dir" mapstructure:"dir"`           // content directory for the dir source
	Database string `yaml:"database" mapstructure:"database"` // seed database path for the sqlite source
	Watch    bool   `yaml:"watch" mapstructure:"watch"`       // reload on content file changes (dir source only)
}

type QueryConfig struct {
	Latency time.Duration `yaml:"latency" mapstructure:"latency"`
}

type CaptchaConfig struct {
	VerifyURL string `yaml:"verify_url" mapstructure:"verify_url"`
	Secret    string `yaml:"secret" mapstructure:"secret"`
}

type MailConfig struct {
	APIURL string `yaml:"api_url" mapstructure:"api_url"`
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	From   string `yaml:"from" mapstructure:"from"`
	To     string `yaml:"to" mapstructure:"to"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Apply defaults for values not set by file, env, or flag
	if config.Server.Port == 0 {
		config.Server.Port = 8090
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Server.Environment == "" {
		config.Server.Environment = "development"
	}
	if config.Content.Source == "" {
		config.Content.Source = SourceEmbedded
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}

	// Handle values set via viper that Unmarshal misses for slices/bools
	if viper.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	}
	if viper.IsSet("content.watch") {
		config.Content.Watch = viper.GetBool("content.watch")
	}
	if viper.IsSet("query.latency") {
		config.Query.Latency = viper.GetDuration("query.latency")
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validateContentConfig(&config.Content); err != nil {
		return fmt.Errorf("content config: %w", err)
	}
	if config.Query.Latency < 0 {
		return fmt.Errorf("query config: latency must not be negative")
	}
	switch config.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging config: unknown format %q", config.Logging.Format)
	}
	return nil
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	return nil
}

// validateContentConfig validates the content source selection
func validateContentConfig(config *ContentConfig) error {
	switch config.Source {
	case SourceEmbedded:
	case SourceDir:
		if config.Dir == "" {
			return fmt.Errorf("dir source requires content.dir")
		}
		if err := validatePath(config.Dir); err != nil {
			return fmt.Errorf("invalid content dir %q: %w", config.Dir, err)
		}
	case SourceSQLite:
		if config.Database == "" {
			return fmt.Errorf("sqlite source requires content.database")
		}
		if err := validatePath(config.Database); err != nil {
			return fmt.Errorf("invalid content database %q: %w", config.Database, err)
		}
	default:
		return fmt.Errorf("unknown source %q (expected embedded, dir, or sqlite)", config.Source)
	}

	if config.Watch && config.Source != SourceDir {
		return fmt.Errorf("content.watch requires the dir source")
	}

	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
