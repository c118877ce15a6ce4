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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-jdict/conj"
	"github.com/ianlewis/go-jdict/generate"
	"github.com/ianlewis/go-jdict/internal/config"
	"github.com/ianlewis/go-jdict/jmdict"
)

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "build a dictionary artifact from a JMdict lexicon",
		ArgsUsage: "[LEXICON]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read build settings from the YAML file at `PATH`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:    "rules",
				Usage:   "read conjugation rules from `DIR` instead of the built-in table",
				Aliases: []string{"r"},
			},
			&cli.StringFlag{
				Name:    "output",
				Usage:   "write the artifact to `PATH`",
				Aliases: []string{"o"},
			},
			&cli.StringFlag{
				Name:  "gloss-language",
				Usage: "include glosses in the ISO 639-2 language `LANG`",
			},
			&cli.BoolFlag{
				Name:  "strip-markup",
				Usage: "convert HTML markup in glosses to plain text",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log in `FORMAT` (text, json)",
			},
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			cfg, err := buildConfig(c)
			if err != nil {
				return err
			}

			logger, err := newLogger(c.App.ErrWriter, &cfg.Log)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJdict, err)
			}

			rules, err := loadRules(cfg.Rules)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJdict, err)
			}

			err = generate.BuildFile(cfg.Lexicon, cfg.Output, rules, &jmdict.Options{
				GlossLanguage: cfg.GlossLanguage,
				StripMarkup:   cfg.StripMarkup,
			}, &generate.Options{
				Logger: logger,
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJdict, err)
			}
			return nil
		},
	}
}

// buildConfig reads the build configuration and applies command line
// overrides.
func buildConfig(c *cli.Context) (*config.Build, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJdict, err)
	}

	if c.NArg() > 1 {
		return nil, fmt.Errorf("%w: expected at most one lexicon, got %d", ErrFlagParse, c.NArg())
	}
	if c.NArg() == 1 {
		cfg.Lexicon = c.Args().First()
	}
	if c.IsSet("rules") {
		cfg.Rules = c.String("rules")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("gloss-language") {
		cfg.GlossLanguage = c.String("gloss-language")
	}
	if c.IsSet("strip-markup") {
		cfg.StripMarkup = c.Bool("strip-markup")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	return cfg, nil
}

// loadRules loads the rule table in dir or the built-in table if dir is
// empty.
func loadRules(dir string) (*conj.Table, error) {
	if dir == "" {
		return conj.Default()
	}
	return conj.Load(os.DirFS(dir))
}

// newLogger returns a logger writing to w.
func newLogger(w io.Writer, cfg *config.Log) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}
