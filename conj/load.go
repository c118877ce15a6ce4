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

package conj

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
)

const (
	kwposFile = "kwpos.csv"
	conjFile  = "conj.csv"
	conjoFile = "conjo.csv"
)

// Load reads a rule table from the kwpos.csv, conj.csv and conjo.csv files
// at the root of fsys.
func Load(fsys fs.FS) (*Table, error) {
	t := &Table{
		pos:          map[string]*POS{},
		posID:        map[int]*POS{},
		conjNames:    map[int]string{},
		rules:        map[ruleKey]*Rule{},
		conjugatable: map[int]bool{},
	}

	if err := readTable(fsys, kwposFile, 3, func(rec []string) error {
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return fmt.Errorf("parsing id: %w", err)
		}
		return t.addPOS(&POS{
			ID:          id,
			Tag:         rec[1],
			Description: rec[2],
		})
	}); err != nil {
		return nil, err
	}

	if err := readTable(fsys, conjFile, 2, func(rec []string) error {
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return fmt.Errorf("parsing id: %w", err)
		}
		return t.addConj(id, rec[1])
	}); err != nil {
		return nil, err
	}

	if err := readTable(fsys, conjoFile, 9, func(rec []string) error {
		r, err := parseRule(rec)
		if err != nil {
			return err
		}
		return t.addRule(r)
	}); err != nil {
		return nil, err
	}

	return t, nil
}

func parseRule(rec []string) (*Rule, error) {
	var ints [4]int
	for i, col := range [...]int{0, 1, 4, 5} {
		n, err := strconv.Atoi(rec[col])
		if err != nil {
			return nil, fmt.Errorf("parsing column %d: %w", col+1, err)
		}
		ints[i] = n
	}
	neg, err := strconv.ParseBool(rec[2])
	if err != nil {
		return nil, fmt.Errorf("parsing neg: %w", err)
	}
	fml, err := strconv.ParseBool(rec[3])
	if err != nil {
		return nil, fmt.Errorf("parsing fml: %w", err)
	}

	return &Rule{
		POS:           ints[0],
		Conj:          ints[1],
		Negative:      neg,
		Formal:        fml,
		Ordinal:       ints[2],
		Stem:          ints[3],
		Okurigana:     rec[6],
		EuphonicKana:  rec[7],
		EuphonicKanji: rec[8],
	}, nil
}

// readTable calls fn for each record after the header row. Records must have
// at least minFields fields.
func readTable(fsys fs.FS, name string, minFields int, fn func([]string) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: reading %s: %w", ErrInvalidTable, name, err)
		}
		if header {
			header = false
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < minFields {
			line, _ := r.FieldPos(0)
			return fmt.Errorf("%w: %s:%d: want at least %d fields, got %d", ErrInvalidTable, name, line, minFields, len(rec))
		}
		if err := fn(rec); err != nil {
			line, _ := r.FieldPos(0)
			if errors.Is(err, ErrInvalidTable) {
				return fmt.Errorf("%s:%d: %w", name, line, err)
			}
			return fmt.Errorf("%w: %s:%d: %w", ErrInvalidTable, name, line, err)
		}
	}
	return nil
}
