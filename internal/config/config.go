// Package config manages tool-level settings for vitae using Viper, loaded
// from .vitae.yml, VITAE_* environment variables and command-line flags in
// that (reversed) precedence order.
//
// Tool settings cover where the resume data, template and assets live and
// how development mode behaves. They are distinct from the resume config
// itself, which is the JSON document the site is rendered from (see the
// resume package).
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tool-level settings.
type Config struct {
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Dev   DevConfig   `yaml:"dev" mapstructure:"dev"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// PathsConfig locates the inputs and output of a build.
type PathsConfig struct {
	// Data is the resume config JSON file.
	Data string `yaml:"data" mapstructure:"data"`
	// Template is the HTML template file.
	Template string `yaml:"template" mapstructure:"template"`
	// Styles, Scripts and Images are the static asset roots copied into the
	// output tree. A missing root is skipped with a warning.
	Styles  string `yaml:"styles" mapstructure:"styles"`
	Scripts string `yaml:"scripts" mapstructure:"scripts"`
	Images  string `yaml:"images" mapstructure:"images"`
	// Output is the directory the site is generated into.
	Output string `yaml:"output" mapstructure:"output"`
}

// DevConfig controls development (watch) mode.
type DevConfig struct {
	// DebounceMs is the debounce window for filesystem events.
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
	// Host and Port configure the optional preview server.
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Debounce returns the debounce window as a duration.
func (d DevConfig) Debounce() time.Duration {
	return time.Duration(d.DebounceMs) * time.Millisecond
}

// Load resolves the effective tool configuration from viper. Missing keys
// fall back to defaults; an unreadable config file is not an error because
// every setting has a sensible default.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling tool config: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without consulting viper.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Paths.Data == "" {
		cfg.Paths.Data = "config/resume.config.json"
	}
	if cfg.Paths.Template == "" {
		cfg.Paths.Template = "template/index.html"
	}
	if cfg.Paths.Styles == "" {
		cfg.Paths.Styles = "styles"
	}
	if cfg.Paths.Scripts == "" {
		cfg.Paths.Scripts = "scripts"
	}
	if cfg.Paths.Images == "" {
		cfg.Paths.Images = "images"
	}
	if cfg.Paths.Output == "" {
		cfg.Paths.Output = "dist"
	}
	if cfg.Dev.DebounceMs == 0 {
		cfg.Dev.DebounceMs = 300
	}
	if cfg.Dev.Host == "" {
		cfg.Dev.Host = "localhost"
	}
	if cfg.Dev.Port == 0 {
		cfg.Dev.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func validate(cfg *Config) error {
	if cfg.Dev.Port < 1 || cfg.Dev.Port > 65535 {
		return fmt.Errorf("dev.port %d out of range [1,65535]", cfg.Dev.Port)
	}
	if cfg.Dev.DebounceMs < 0 {
		return fmt.Errorf("dev.debounce_ms must not be negative")
	}
	if cfg.Paths.Output == "" {
		return fmt.Errorf("paths.output must not be empty")
	}
	return nil
}
