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

package jdict

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// auxiliary is a grammatical pattern following the conjunctive (~te) form of
// a verb.
type auxiliary struct {
	suffix string

	// strip is the number of runes removed from the end of the query. The
	// remaining text ends with the conjunctive form.
	strip int

	formal      bool
	conjugation string
}

// auxiliaries are checked in order. Only the first match applies.
var auxiliaries = []auxiliary{
	{suffix: "ている", strip: 2, formal: false, conjugation: "Progressive"},
	{suffix: "てる", strip: 1, formal: false, conjugation: "Progressive"},
	{suffix: "ています", strip: 3, formal: true, conjugation: "Progressive"},
	{suffix: "ておく", strip: 2, formal: false, conjugation: "Future"},
	{suffix: "ておきます", strip: 4, formal: true, conjugation: "Future"},
	{suffix: "てある", strip: 2, formal: false, conjugation: "Finished"},
	{suffix: "てあります", strip: 4, formal: true, conjugation: "Finished"},
}

// voicedAuxiliaries follow auxiliaries when Options.VoicedAuxiliaries is set.
var voicedAuxiliaries = []auxiliary{
	{suffix: "でいる", strip: 2, formal: false, conjugation: "Progressive"},
	{suffix: "でる", strip: 1, formal: false, conjugation: "Progressive"},
	{suffix: "でいます", strip: 3, formal: true, conjugation: "Progressive"},
	{suffix: "でおく", strip: 2, formal: false, conjugation: "Future"},
	{suffix: "でおきます", strip: 4, formal: true, conjugation: "Future"},
	{suffix: "であります", strip: 4, formal: true, conjugation: "Finished"},
}

// prolongations are trailing characters used to draw out the final sound of
// a word. They are ignored when they follow a known word.
var prolongations = []rune{
	'ー', // U+30FC KATAKANA-HIRAGANA PROLONGED SOUND MARK
	'〜', // U+301C WAVE DASH
	'～', // U+FF5E FULLWIDTH TILDE
	'~', // U+007E TILDE, the width folded form of U+FF5E
}

// LookupPrecise returns the words whose surface forms exactly match query.
// The query is folded with the dictionary's folder first.
func (d *Dictionary) LookupPrecise(query string) iter.Seq[Result] {
	q := d.fold(query)
	return func(yield func(Result) bool) {
		d.precise(q, yield)
	}
}

// Lookup returns the words matching query. In addition to exact matches it
// resolves progressive, future and finished auxiliary constructions to the
// underlying verb and ignores trailing prolonged sound marks. Results are
// not deduplicated.
func (d *Dictionary) Lookup(query string) iter.Seq[Result] {
	q := d.fold(query)
	return func(yield func(Result) bool) {
		d.lookup(q, yield)
	}
}

// Complete returns the surface forms starting with prefix in code point
// order. The prefix is folded with the dictionary's folder first.
func (d *Dictionary) Complete(prefix string) iter.Seq[string] {
	p := d.fold(prefix)
	return func(yield func(string) bool) {
		for s := range d.surfaces.Prefix(p) {
			if !yield(s.String()) {
				return
			}
		}
	}
}

// precise yields the results for q. It returns false if yield returned
// false.
func (d *Dictionary) precise(q string, yield func(Result) bool) bool {
	for _, r := range d.strToWord[q] {
		if !yield(d.resolve(q, r)) {
			return false
		}
	}
	return true
}

// lookup yields the full set of results for q. It returns false if yield
// returned false.
func (d *Dictionary) lookup(q string, yield func(Result) bool) bool {
	if !d.precise(q, yield) {
		return false
	}

	for _, aux := range d.auxiliaries {
		if !strings.HasSuffix(q, aux.suffix) {
			continue
		}
		stem := trimRunes(q, aux.strip)
		ok := d.precise(stem, func(r Result) bool {
			r.Formal = aux.formal
			r.Conjugation = aux.conjugation
			return yield(r)
		})
		if !ok {
			return false
		}
		break
	}

	last, size := utf8.DecodeLastRuneInString(q)
	for _, p := range prolongations {
		if last == p {
			return d.lookup(q[:len(q)-size], yield)
		}
	}
	return true
}

// trimRunes removes n runes from the end of s.
func trimRunes(s string, n int) string {
	for range n {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}
