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

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-jdict"
)

func completeCommand() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "list surface forms starting with a prefix",
		ArgsUsage: "PREFIX",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Usage:   "print at most `N` forms (0 for no limit)",
				Aliases: []string{"n"},
				Value:   20,
			},
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: expected one prefix, got %d", ErrFlagParse, c.NArg())
			}
			limit := c.Int("limit")
			if limit < 0 {
				return fmt.Errorf("%w: limit must not be negative", ErrFlagParse)
			}

			d, err := loadDictionary(c, jdict.DefaultOptions)
			if err != nil {
				return err
			}

			n := 0
			for s := range d.Complete(c.Args().First()) {
				if limit > 0 && n >= limit {
					break
				}
				if _, err := fmt.Fprintln(c.App.Writer, s); err != nil {
					return fmt.Errorf("%w: %w", ErrJdict, err)
				}
				n++
			}
			if n == 0 {
				return ErrNotFound
			}
			return nil
		},
	}
}
