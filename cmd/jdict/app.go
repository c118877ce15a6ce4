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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-jdict"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeNotFound is the exit code when a query has no results.
	ExitCodeNotFound
)

// ErrJdict is a parent error for all command errors.
var ErrJdict = errors.New("jdict")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrJdict)

// ErrNoDictionary indicates that no dictionary artifact could be found.
var ErrNoDictionary = fmt.Errorf("%w: no dictionary found", ErrJdict)

// ErrNotFound indicates that a query had no results.
var ErrNotFound = fmt.Errorf("%w: not found", ErrJdict)

var copyrightNames = []string{
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, ErrNotFound):
		return ExitCodeNotFound
	default:
		return ExitCodeUnknownError
	}
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, strings.Join(copyrightNames, "\n"), versionInfo.String())
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrJdict, err)
	}
	return nil
}

// findDictionary returns the first dictionary artifact that exists in the
// default locations.
func findDictionary() (string, error) {
	for _, path := range dictLocations() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: searched %s", ErrNoDictionary, strings.Join(dictLocations(), ", "))
}

// dictionaryPath returns the dictionary named by the --dict flag or the first
// one found in the default locations.
func dictionaryPath(c *cli.Context) (string, error) {
	if path := c.String("dict"); path != "" {
		return path, nil
	}
	return findDictionary()
}

// loadDictionary loads the dictionary named by the --dict flag or found in
// the default locations.
func loadDictionary(c *cli.Context, opts *jdict.Options) (*jdict.Dictionary, error) {
	path, err := dictionaryPath(c)
	if err != nil {
		return nil, err
	}

	d, err := jdict.LoadWithOptions(path, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJdict, err)
	}
	return d, nil
}

func newJdictApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Build and search Japanese dictionaries.",
		Description: strings.Join([]string{
			"Japanese dictionary utility written in Go.",
			"http://github.com/ianlewis/go-jdict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dict",
				Usage:   "use the dictionary artifact at `PATH`",
				Aliases: []string{"d"},
				EnvVars: []string{"JDICT_DICT"},
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			buildCommand(),
			lookupCommand(),
			wordCommand(),
			completeCommand(),
			infoCommand(),
		},
		ExitErrHandler: func(_ *cli.Context, _ error) {},
	}
}
