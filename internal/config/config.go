// Package config reads the linter configuration.
//
//	rules:
//	  require-reactive-value-suffix:
//	    severity: error
//	    functionNamesToIgnoreValueCheck: [toRaw]
//	  restrict-directive-to-template:
//	    severity: warn
//	    directives: [if, else-if, else]
//	types:
//	  suffix: .types.yaml
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/vuelint/internal/directive"
	"github.com/sirkon/vuelint/internal/reactive"
	"github.com/sirkon/vuelint/internal/rules"
)

const (
	// DefaultFile is looked up in the working directory when no config is given.
	DefaultFile = ".vuelint.yaml"

	// DefaultTypesSuffix is appended to source paths to get their type tables.
	DefaultTypesSuffix = ".types.yaml"
)

// Config of the linter.
type Config struct {
	Rules Rules `yaml:"rules"`
	Types Types `yaml:"types"`
}

// Rules settings.
type Rules struct {
	ReactiveValueSuffix ReactiveValueSuffix `yaml:"require-reactive-value-suffix"`
	DirectiveToTemplate DirectiveToTemplate `yaml:"restrict-directive-to-template"`
}

// ReactiveValueSuffix settings of the require-reactive-value-suffix rule.
type ReactiveValueSuffix struct {
	Severity         rules.Severity `yaml:"severity"`
	reactive.Options `yaml:",inline"`
}

// DirectiveToTemplate settings of the restrict-directive-to-template rule.
type DirectiveToTemplate struct {
	Severity          rules.Severity `yaml:"severity"`
	directive.Options `yaml:",inline"`
}

// Types settings of type tables lookup.
type Types struct {
	// Suffix is appended to a source file path to get the path of its type table.
	Suffix string `yaml:"suffix"`
}

// Default returns the configuration used when there is no config file.
func Default() *Config {
	return &Config{
		Rules: Rules{
			ReactiveValueSuffix: ReactiveValueSuffix{Severity: rules.SeverityError},
			DirectiveToTemplate: DirectiveToTemplate{
				Severity: rules.SeverityError,
				Options:  directive.Options{Directives: directive.DefaultDirectives()},
			},
		},
		Types: Types{Suffix: DefaultTypesSuffix},
	}
}

// Parse reads the configuration over defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Load reads the configuration file. Defaults are returned for a missing file
// unless it is required.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(filepath.Ext(c.Types.Suffix)) {
	case ".yaml", ".yml", ".json":
	default:
		return fmt.Errorf("types suffix %q must end with .yaml, .yml or .json", c.Types.Suffix)
	}

	if len(c.Rules.DirectiveToTemplate.Directives) == 0 {
		c.Rules.DirectiveToTemplate.Directives = directive.DefaultDirectives()
	}
	for _, name := range c.Rules.DirectiveToTemplate.Directives {
		if name == "" || strings.HasPrefix(name, "v-") {
			return fmt.Errorf("directive names go without the v- prefix, got %q", name)
		}
	}

	return nil
}

// Severities returns severities of all rules.
func (c *Config) Severities() map[rules.Rule]rules.Severity {
	return map[rules.Rule]rules.Severity{
		rules.RequireReactiveValueSuffix:  c.Rules.ReactiveValueSuffix.Severity,
		rules.RestrictDirectiveToTemplate: c.Rules.DirectiveToTemplate.Severity,
	}
}

// Enabled checks if the rule is not turned off.
func (c *Config) Enabled(rule rules.Rule) bool {
	return c.Severities()[rule] != rules.SeverityOff
}

// TypesPath returns the path of the type table of the source file.
func (c *Config) TypesPath(sourcePath string) string {
	return sourcePath + c.Types.Suffix
}
