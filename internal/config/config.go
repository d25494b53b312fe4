package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonmatch/internal/errors"
)

// ColorMode selects when visualizations carry ANSI styles
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config represents the complete configuration for jsonmatch
type Config struct {
	Color   ColorMode     `yaml:"color"`
	Objects ObjectsConfig `yaml:"objects"`
	Dev     DevConfig     `yaml:"dev"`
}

// ObjectsConfig holds the defaults applied to every object expectation
type ObjectsConfig struct {
	IgnoreExtraFields       bool `yaml:"ignore_extra_fields"`
	ElideIgnoredFieldValues bool `yaml:"elide_ignored_field_values"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Color: ColorAuto,
		Objects: ObjectsConfig{
			IgnoreExtraFields:       true,
			ElideIgnoredFieldValues: false,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// ParseColorMode converts a user supplied color mode, ignoring case
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", errors.NewConfigError(
			fmt.Sprintf("unknown color mode '%s', expected auto, always or never", s),
			errors.ErrInvalidConfig,
		)
	}
}

// Validate checks the values that YAML decoding cannot
func (c *Config) Validate() error {
	mode, err := ParseColorMode(string(c.Color))
	if err != nil {
		return err
	}
	c.Color = mode
	return nil
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonmatch.yml", ".jsonmatch.yaml", "jsonmatch.yml", "jsonmatch.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadConfigWithCLI loads config with CLI argument precedence. An empty
// cliColor keeps the configured color mode; cliDebug can only switch
// debugging on.
func LoadConfigWithCLI(configPath, cliColor string, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliColor != "" {
		mode, err := ParseColorMode(cliColor)
		if err != nil {
			return nil, err
		}
		cfg.Color = mode
	}
	if cliDebug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}
