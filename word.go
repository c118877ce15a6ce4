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
	"strings"
)

// Info holds the tags of a word form.
type Info struct {
	// Priority are the priority tags (e.g. "ichi1", "news1"), sorted.
	Priority []string

	// Annotations are the annotation tags (e.g. "ateji (phonetic) reading").
	Annotations []string
}

// Form is a written form of a word.
type Form struct {
	// Text is the written form.
	Text string

	// Info are the form's tags.
	Info *Info
}

// Word is a dictionary entry.
type Word struct {
	// ID is the word's id.
	ID uint32

	// Kanji are the kanji forms.
	Kanji []Form

	// Kana are the kana forms.
	Kana []Form

	// POS is the part-of-speech description.
	POS string

	// Gloss are the word's translations.
	Gloss []string
}

// String returns a string representation of the Word.
func (w *Word) String() string {
	var b strings.Builder
	for i, f := range w.Kanji {
		if i > 0 {
			b.WriteString("、")
		}
		b.WriteString(f.Text)
	}
	if len(w.Kanji) > 0 {
		b.WriteString(" ")
	}
	b.WriteString("【")
	for i, f := range w.Kana {
		if i > 0 {
			b.WriteString("、")
		}
		b.WriteString(f.Text)
	}
	b.WriteString("】")
	if w.POS != "" {
		b.WriteString(" (" + w.POS + ")")
	}
	b.WriteString("\n")
	for _, g := range w.Gloss {
		b.WriteString(g + "\n")
	}
	return b.String()
}

// Result is a single lookup result.
type Result struct {
	// Query is the text that was matched in the surface form index.
	Query string

	// Word is the matched word.
	Word *Word

	// Kanji is true if Text is one of the word's kanji forms.
	Kanji bool

	// Text is the form of the word the query resolved to.
	Text string

	// Info are the tags of Text.
	Info *Info

	// Conjugated is true if the query is a conjugated form of Text.
	Conjugated bool

	// Formal is true if the query is a formal (polite) form.
	Formal bool

	// Negative is true if the query is a negative form.
	Negative bool

	// Conjugation is the name of the conjugation.
	Conjugation string
}

// String returns a string representation of the Result.
func (r *Result) String() string {
	var b strings.Builder
	b.WriteString(r.Query + " → " + r.Text)
	if r.Conjugated {
		b.WriteString(" [" + r.Conjugation)
		if r.Formal {
			b.WriteString(", formal")
		}
		if r.Negative {
			b.WriteString(", negative")
		}
		b.WriteString("]")
	}
	if r.Word != nil && len(r.Word.Gloss) > 0 {
		b.WriteString(": " + strings.Join(r.Word.Gloss, "; "))
	}
	return b.String()
}
