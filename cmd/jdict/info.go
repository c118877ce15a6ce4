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

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "print dictionary statistics",
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 0 {
				return fmt.Errorf("%w: unexpected arguments", ErrFlagParse)
			}

			path, err := dictionaryPath(c)
			if err != nil {
				return err
			}
			d, err := loadDictionary(c, jdict.DefaultOptions)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(c.App.Writer, "Path:           %s\nWords:          %d\nSurface forms:  %d\n",
				path, d.Len(), d.SurfaceForms())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJdict, err)
			}
			return nil
		},
	}
}
