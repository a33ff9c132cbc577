package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"sql-lint/internal/model"
)

// Config is the full linter configuration, loaded from sql-lint.yaml layered
// over built-in defaults.
type Config struct {
	Rules          RulesConfig `koanf:"rules"`
	ValidateSyntax bool        `koanf:"validate_syntax"`
}

type RulesConfig struct {
	Aliasing         AliasingConfig `koanf:"aliasing"`
	Ordering         OrderingConfig `koanf:"ordering"`
	ForbiddenColumns []string       `koanf:"forbidden_columns"`
}

type AliasingConfig struct {
	Enabled         bool   `koanf:"enabled"`
	AliasUsageStyle string `koanf:"alias_usage_style"`
}

type OrderingConfig struct {
	Enabled bool `koanf:"enabled"`
}

// defaults mirror the plugin's built-in configuration resource: they apply
// whenever the user config omits a key.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"rules.aliasing.enabled":           true,
		"rules.aliasing.alias_usage_style": string(model.PolicyAlways),
		"rules.ordering.enabled":           true,
		"rules.forbidden_columns":          []string{},
		"validate_syntax":                  false,
	}
}

// findConfigFile returns the config file to use. Priority: explicit path,
// then sql-lint.yaml, then sql-lint.yml in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"sql-lint.yaml", "sql-lint.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads the configuration, applying defaults for missing keys and
// validating option values. Validation failures surface here, before any
// file is linted.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load default config: %w", err)
	}

	if p := findConfigFile(path); p != "" {
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", p, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects option values the rules would otherwise have to guess at.
func (c *Config) Validate() error {
	if _, err := model.ParseAliasPolicy(c.Rules.Aliasing.AliasUsageStyle); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
