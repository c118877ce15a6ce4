// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config implements the configuration of dictionary builds.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrInvalid indicates that the configuration is invalid.
var ErrInvalid = errors.New("invalid configuration")

// Build holds the settings of a dictionary build.
type Build struct {
	// Lexicon is the path to the JMdict XML file.
	Lexicon string `yaml:"lexicon" env:"JDICT_LEXICON"`

	// Rules is a directory containing kwpos.csv, conj.csv and conjo.csv. If
	// empty the built-in rule table is used.
	Rules string `yaml:"rules" env:"JDICT_RULES"`

	// Output is the path of the artifact. The extension selects the
	// compression format.
	Output string `yaml:"output" env:"JDICT_OUTPUT" env-default:"jdict.json.gz"`

	// GlossLanguage is the ISO 639-2 code of glosses to include.
	GlossLanguage string `yaml:"gloss_language" env:"JDICT_GLOSS_LANGUAGE" env-default:"eng"`

	// StripMarkup converts HTML markup in glosses to plain text.
	StripMarkup bool `yaml:"strip_markup" env:"JDICT_STRIP_MARKUP"`

	Log Log `yaml:"log"`
}

// Log holds logging settings.
type Log struct {
	Level  string `yaml:"level"  env:"JDICT_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"JDICT_LOG_FORMAT" env-default:"text"`
}

// Load reads the build configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags). If path
// is empty configuration is read from ENV and defaults only.
func Load(path string) (*Build, error) {
	var cfg Build

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for errors.
func (c *Build) Validate() error {
	var errs []error
	if c.Lexicon == "" {
		errs = append(errs, errors.New("lexicon is required"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}
	if len(c.GlossLanguage) != 3 {
		errs = append(errs, fmt.Errorf("gloss_language %q is not an ISO 639-2 code", c.GlossLanguage))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q must be text or json", c.Log.Format))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (l *Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return level, nil
}
