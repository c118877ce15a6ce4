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

// Package conj implements conjugation rule tables.
//
// A rule table is made of three tab separated files:
//  1. kwpos.csv lists the parts-of-speech (id, keyword, description).
//  2. conj.csv lists the conjugations (id, name).
//  3. conjo.csv lists the rules (pos, conj, neg, fml, onum, stem, okuri,
//     euphr, euphk, pos2). Each rule strips stem runes from the end of a
//     dictionary form and appends okuri, optionally replacing one more rune
//     with a euphonic change.
//
// Each file starts with a header row.
package conj

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"unicode/utf8"
)

//go:embed data/*.csv
var defaultData embed.FS

var (
	// ErrUnknownPartOfSpeech indicates that a part-of-speech is not listed in
	// the rule table.
	ErrUnknownPartOfSpeech = errors.New("unknown part-of-speech")

	// ErrInvalidTable indicates that a rule table file is malformed.
	ErrInvalidTable = errors.New("invalid conjugation table")
)

// MaxConjugation is the largest conjugation id a rule table may define.
const MaxConjugation = 15

// maxOrdinal is the largest variant ordinal considered per rule key.
const maxOrdinal = 9

// POS is a part-of-speech.
type POS struct {
	// ID is the part-of-speech id.
	ID int

	// Tag is the short keyword, e.g. "v5u".
	Tag string

	// Description is the long description, e.g. "Godan verb with 'u' ending".
	Description string
}

// Rule is a single conjugation rule.
type Rule struct {
	POS      int
	Conj     int
	Negative bool
	Formal   bool
	Ordinal  int

	// Stem is the number of runes removed from the end of the base text.
	Stem int

	// Okurigana is appended after the stem.
	Okurigana string

	// EuphonicKana replaces the last rune of the stem for kana-only text.
	EuphonicKana string

	// EuphonicKanji replaces the last rune of the stem for text containing
	// kanji.
	EuphonicKanji string
}

type ruleKey struct {
	pos      int
	conj     int
	negative bool
	formal   bool
	ordinal  int
}

// Conjugation is a conjugated surface form produced by a rule.
type Conjugation struct {
	Text     string
	Conj     int
	Negative bool
	Formal   bool
}

// Table is a conjugation rule table. A Table is immutable and safe for
// concurrent use.
type Table struct {
	// pos is keyed by both tag and description.
	pos   map[string]*POS
	posID map[int]*POS

	conjNames map[int]string
	conjIDs   []int

	rules map[ruleKey]*Rule

	// conjugatable is the set of part-of-speech ids with at least one rule.
	conjugatable map[int]bool
}

// Default returns the built-in rule table.
func Default() (*Table, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, fmt.Errorf("opening built-in tables: %w", err)
	}
	return Load(sub)
}

// LookupPOS returns the part-of-speech for a tag or description.
func (t *Table) LookupPOS(name string) (*POS, bool) {
	p, ok := t.pos[name]
	return p, ok
}

// Rule returns the rule for the given key.
func (t *Table) Rule(pos, conj int, negative, formal bool, ordinal int) (*Rule, bool) {
	r, ok := t.rules[ruleKey{
		pos:      pos,
		conj:     conj,
		negative: negative,
		formal:   formal,
		ordinal:  ordinal,
	}]
	return r, ok
}

// ConjugationNames returns the conjugation labels indexed by conjugation id.
// Index 0 is always "Unconjugated". Unused ids hold an empty string.
func (t *Table) ConjugationNames() []string {
	maxID := 0
	if len(t.conjIDs) > 0 {
		maxID = t.conjIDs[len(t.conjIDs)-1]
	}
	names := make([]string, maxID+1)
	names[0] = "Unconjugated"
	for id, name := range t.conjNames {
		names[id] = name
	}
	return names
}

// POSNames returns the part-of-speech descriptions indexed by id. Unused ids
// hold an empty string.
func (t *Table) POSNames() []string {
	maxID := -1
	for id := range t.posID {
		maxID = max(maxID, id)
	}
	names := make([]string, maxID+1)
	for id, p := range t.posID {
		names[id] = p.Description
	}
	return names
}

// Conjugate returns the conjugated forms of text for the given
// part-of-speech. Forms are produced for each conjugation in id order, then
// for each (negative, formal) combination, then for each ordinal variant.
// Only forms longer than one rune are returned.
//
// If the part-of-speech has no rules no forms are returned. If it is not
// listed in the table at all ErrUnknownPartOfSpeech is returned.
func (t *Table) Conjugate(text, pos string) ([]Conjugation, error) {
	p, ok := t.LookupPOS(pos)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPartOfSpeech, pos)
	}
	if !t.conjugatable[p.ID] {
		return nil, nil
	}
	if utf8.RuneCountInString(text) < 2 {
		return nil, nil
	}

	var forms []Conjugation
	for _, cj := range t.conjIDs {
		for _, flags := range [...][2]bool{{false, false}, {false, true}, {true, false}, {true, true}} {
			neg, fml := flags[0], flags[1]
			for onum := 1; onum <= maxOrdinal; onum++ {
				r, ok := t.Rule(p.ID, cj, neg, fml, onum)
				if !ok {
					break
				}
				kt, ok := Construct(text, r)
				if !ok || utf8.RuneCountInString(kt) <= 1 {
					continue
				}
				forms = append(forms, Conjugation{
					Text:     kt,
					Conj:     cj,
					Negative: neg,
					Formal:   fml,
				})
			}
		}
	}
	return forms, nil
}

// Construct applies the rule to text. It returns false if the rule strips
// more runes than text contains.
func Construct(text string, r *Rule) (string, bool) {
	runes := []rune(text)

	euph := r.EuphonicKanji
	if isKana(runes) {
		euph = r.EuphonicKana
	}

	strip := r.Stem
	if euph != "" {
		strip++
	}
	if strip < 0 || strip > len(runes) {
		return "", false
	}

	return string(runes[:len(runes)-strip]) + euph + r.Okurigana, true
}

// isKana returns true if every rune is hiragana, katakana or the
// prolonged sound mark.
func isKana(runes []rune) bool {
	for _, r := range runes {
		switch {
		case r >= 0x3041 && r <= 0x309F: // hiragana
		case r >= 0x30A0 && r <= 0x30FF: // katakana, including ー
		default:
			return false
		}
	}
	return true
}

func (t *Table) addPOS(p *POS) error {
	if _, ok := t.posID[p.ID]; ok {
		return fmt.Errorf("%w: duplicate part-of-speech id %d", ErrInvalidTable, p.ID)
	}
	t.posID[p.ID] = p
	t.pos[p.Tag] = p
	if p.Description != "" {
		t.pos[p.Description] = p
	}
	return nil
}

func (t *Table) addConj(id int, name string) error {
	if id < 1 || id > MaxConjugation {
		return fmt.Errorf("%w: conjugation id %d not in 1..%d", ErrInvalidTable, id, MaxConjugation)
	}
	if _, ok := t.conjNames[id]; ok {
		return fmt.Errorf("%w: duplicate conjugation id %d", ErrInvalidTable, id)
	}
	t.conjNames[id] = name
	t.conjIDs = append(t.conjIDs, id)
	slices.Sort(t.conjIDs)
	return nil
}

func (t *Table) addRule(r *Rule) error {
	if _, ok := t.posID[r.POS]; !ok {
		return fmt.Errorf("%w: rule for unknown part-of-speech id %d", ErrInvalidTable, r.POS)
	}
	if _, ok := t.conjNames[r.Conj]; !ok {
		return fmt.Errorf("%w: rule for unknown conjugation id %d", ErrInvalidTable, r.Conj)
	}
	if r.Ordinal < 1 || r.Ordinal > maxOrdinal {
		return fmt.Errorf("%w: ordinal %d not in 1..%d", ErrInvalidTable, r.Ordinal, maxOrdinal)
	}
	if r.Stem < 0 {
		return fmt.Errorf("%w: negative stem %d", ErrInvalidTable, r.Stem)
	}
	k := ruleKey{
		pos:      r.POS,
		conj:     r.Conj,
		negative: r.Negative,
		formal:   r.Formal,
		ordinal:  r.Ordinal,
	}
	if _, ok := t.rules[k]; ok {
		return fmt.Errorf("%w: duplicate rule %+v", ErrInvalidTable, k)
	}
	t.rules[k] = r
	t.conjugatable[r.POS] = true
	return nil
}
