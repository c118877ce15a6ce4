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
	"strconv"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-jdict"
)

func wordCommand() *cli.Command {
	return &cli.Command{
		Name:      "word",
		Usage:     "print words by id",
		ArgsUsage: "ID...",
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("%w: no word ids", ErrFlagParse)
			}
			ids := make([]int, 0, c.NArg())
			for _, arg := range c.Args().Slice() {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("%w: invalid word id %q", ErrFlagParse, arg)
				}
				ids = append(ids, id)
			}

			d, err := loadDictionary(c, jdict.DefaultOptions)
			if err != nil {
				return err
			}

			for _, id := range ids {
				w, err := d.GetWord(id)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrJdict, err)
				}
				if err := printWord(c.App.Writer, w); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// printWord writes the word's forms as a table followed by its glosses.
func printWord(w io.Writer, word *jdict.Word) error {
	if _, err := fmt.Fprintf(w, "%d: %s\n", word.ID, word.POS); err != nil {
		return fmt.Errorf("%w: %w", ErrJdict, err)
	}

	tbl := table.New("Form", "Type", "Priority", "Info").WithWriter(w)
	for _, forms := range []struct {
		kind  string
		forms []jdict.Form
	}{
		{kind: "kanji", forms: word.Kanji},
		{kind: "kana", forms: word.Kana},
	} {
		for _, f := range forms.forms {
			tbl.AddRow(
				f.Text,
				forms.kind,
				strings.Join(f.Info.Priority, ", "),
				strings.Join(f.Info.Annotations, ", "),
			)
		}
	}
	tbl.Print()

	for i, g := range word.Gloss {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, g); err != nil {
			return fmt.Errorf("%w: %w", ErrJdict, err)
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("%w: %w", ErrJdict, err)
	}
	return nil
}
