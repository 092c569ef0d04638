// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/thumbfix/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "THUMBFIX_"

// ErrNoTarget is returned when no target path was configured anywhere
var ErrNoTarget = errors.Base("no target file configured")

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	Target         string   `json:"target,omitempty" yaml:"target,omitempty" hcl:"target,optional" env:"TARGET"`
	RequireMatch   bool     `json:"require_match,omitempty" yaml:"require_match,omitempty" hcl:"require_match,optional" env:"REQUIRE_MATCH"`
	DryRun         bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional" env:"DRY_RUN"`
	FileFilterGlob string   `json:"file_filter_glob,omitempty" yaml:"file_filter_glob,omitempty" hcl:"file_filter_glob,optional"`
	Rules          []string `json:"rules,omitempty" yaml:"rules,omitempty" hcl:"rules,optional"`

	location string
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data, path)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🌱 ApplyEnv overrides fields from THUMBFIX_* variables. A nil environ reads the
// process environment.
func (cfg *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return errors.Errorf("parsing environment: %w", err)
	}
	return nil
}

// 🔧 SetDefaults fills unset fields
func (cfg *Config) SetDefaults() {
	if cfg.FileFilterGlob == "" {
		cfg.FileFilterGlob = rewrite.DefaultFileFilterGlob
	}
	if len(cfg.Rules) == 0 {
		cfg.Rules = rewrite.RuleNames()
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	known := make([]interface{}, 0, len(rewrite.RuleNames()))
	for _, name := range rewrite.RuleNames() {
		known = append(known, name)
	}

	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.FileFilterGlob, validation.Required, validation.By(validGlob)),
		validation.Field(&cfg.Rules, validation.Required, validation.Each(validation.In(known...)), validation.By(uniqueNames)),
	)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func validGlob(value interface{}) error {
	s, _ := value.(string)
	if !doublestar.ValidatePattern(s) {
		return validation.NewError("validation_invalid_glob", "must be a valid glob pattern")
	}
	return nil
}

func uniqueNames(value interface{}) error {
	names, _ := value.([]string)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return validation.NewError("validation_duplicate_rule", fmt.Sprintf("rule %q is listed twice", n))
		}
		seen[n] = true
	}
	return nil
}

// 📍 Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 ResolveTarget returns the target path. Relative targets from a config file
// are resolved against the file's directory.
func (cfg *Config) ResolveTarget() (string, error) {
	target := strings.TrimSpace(cfg.Target)
	if target == "" {
		return "", ErrNoTarget
	}
	location := cfg.Location()
	if strings.Contains(target, "://") || filepath.IsAbs(target) || location == "" {
		return target, nil
	}
	return filepath.Join(filepath.Dir(location), target), nil
}

// 📋 SelectedRules returns the configured built-in rules in their fixed run order,
// each restricted to the configured glob
func (cfg *Config) SelectedRules() ([]rewrite.Rule, error) {
	enabled := make(map[string]bool, len(cfg.Rules))
	for _, name := range cfg.Rules {
		if _, err := rewrite.RuleByName(name); err != nil {
			return nil, err
		}
		enabled[name] = true
	}

	var rules []rewrite.Rule
	for _, rule := range rewrite.ThumbnailRules() {
		if !enabled[rule.Name] {
			continue
		}
		if cfg.FileFilterGlob != "" {
			rule.FileFilterGlob = cfg.FileFilterGlob
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	target := cfg.Target
	if target == "" {
		target = "<unset>"
	}
	return fmt.Sprintf("%s [%s] glob=%s require_match=%t dry_run=%t",
		target, strings.Join(cfg.Rules, ","), cfg.FileFilterGlob, cfg.RequireMatch, cfg.DryRun)
}
