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
	"bufio"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-jdict"
)

func lookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "look up words by surface form",
		ArgsUsage: "[QUERY...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "precise",
				Usage: "only match surface forms exactly",
			},
			&cli.BoolFlag{
				Name:  "voiced",
				Usage: "also resolve voiced auxiliaries such as でいる after godan verbs",
			},
			&cli.BoolFlag{
				Name:  "stdin",
				Usage: "read queries from standard input, one per line",
			},
			&cli.IntFlag{
				Name:  "jobs",
				Usage: "resolve up to `N` queries concurrently",
				Value: runtime.NumCPU(),
			},
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			queries := c.Args().Slice()
			if c.Bool("stdin") {
				lines, err := readQueries(c.App.Reader)
				if err != nil {
					return err
				}
				queries = append(queries, lines...)
			}
			if len(queries) == 0 {
				return fmt.Errorf("%w: no queries", ErrFlagParse)
			}
			if c.Int("jobs") < 1 {
				return fmt.Errorf("%w: jobs must be at least 1", ErrFlagParse)
			}

			d, err := loadDictionary(c, &jdict.Options{
				Folder:            jdict.DefaultOptions.Folder,
				VoicedAuxiliaries: c.Bool("voiced"),
			})
			if err != nil {
				return err
			}

			results := resolveAll(d, queries, c.Bool("precise"), c.Int("jobs"))

			found := false
			for i, q := range queries {
				if len(results[i]) > 0 {
					found = true
				}
				if err := printResults(c.App.Writer, q, results[i]); err != nil {
					return err
				}
			}
			if !found {
				return ErrNotFound
			}
			return nil
		},
	}
}

// readQueries reads non-empty lines from r.
func readQueries(r io.Reader) ([]string, error) {
	var queries []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if q := strings.TrimSpace(s.Text()); q != "" {
			queries = append(queries, q)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading queries: %w", ErrJdict, err)
	}
	return queries, nil
}

// resolveAll resolves the queries concurrently. Results are returned in
// query order.
func resolveAll(d *jdict.Dictionary, queries []string, precise bool, jobs int) [][]jdict.Result {
	results := make([][]jdict.Result, len(queries))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, q := range queries {
		g.Go(func() error {
			seq := d.Lookup(q)
			if precise {
				seq = d.LookupPrecise(q)
			}
			results[i] = slices.Collect(seq)
			return nil
		})
	}
	// Lookups do not fail.
	_ = g.Wait()

	return results
}

// printResults writes the results of a query as a table.
func printResults(w io.Writer, query string, results []jdict.Result) error {
	if _, err := fmt.Fprintf(w, "%s\n", query); err != nil {
		return fmt.Errorf("%w: %w", ErrJdict, err)
	}
	if len(results) == 0 {
		if _, err := fmt.Fprintf(w, "  no results\n\n"); err != nil {
			return fmt.Errorf("%w: %w", ErrJdict, err)
		}
		return nil
	}

	tbl := table.New("ID", "Match", "Form", "Reading", "Conjugation", "Gloss").WithWriter(w)
	for _, r := range results {
		tbl.AddRow(
			r.Word.ID,
			r.Query,
			r.Text,
			reading(r.Word),
			conjugation(&r),
			strings.Join(r.Word.Gloss, "; "),
		)
	}
	tbl.Print()

	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("%w: %w", ErrJdict, err)
	}
	return nil
}

// reading returns the first kana form of w.
func reading(w *jdict.Word) string {
	if len(w.Kana) == 0 {
		return ""
	}
	return w.Kana[0].Text
}

// conjugation describes the conjugation of a result.
func conjugation(r *jdict.Result) string {
	if !r.Conjugated && r.Conjugation == "Unconjugated" {
		return ""
	}
	var parts []string
	parts = append(parts, r.Conjugation)
	if r.Formal {
		parts = append(parts, "formal")
	}
	if r.Negative {
		parts = append(parts, "negative")
	}
	return strings.Join(parts, ", ")
}
