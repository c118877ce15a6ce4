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

// Package artifact implements the dictionary artifact interchange format.
//
// An artifact is a single JSON document with the following fields:
//  1. conj: conjugation names indexed by conjugation id. Index 0 is the
//     unconjugated marker.
//  2. pos: part-of-speech names indexed by id.
//  3. infos: deduplicated {priority, info} tag records.
//  4. words: {kanji, kana, pos, gloss} word records where kanji and kana are
//     lists of [text, info index] pairs.
//  5. str_to_word: surface form to packed candidate record, or list of
//     packed candidate records.
//
// Artifacts may be compressed. See package compress for supported formats.
package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/ianlewis/go-jdict/internal/compress"
	"github.com/ianlewis/go-jdict/record"
)

// ErrMalformed indicates that an artifact could not be decoded or that it
// has inconsistent references.
var ErrMalformed = errors.New("malformed artifact")

// Artifact is a compiled dictionary.
type Artifact struct {
	Conj      []string           `json:"conj"`
	POS       []string           `json:"pos"`
	Infos     []Info             `json:"infos"`
	Words     []Word             `json:"words"`
	StrToWord map[string]Records `json:"str_to_word"`
}

// Info is a deduplicated set of priority and annotation tags.
type Info struct {
	Priority []string `json:"priority"`
	Info     []string `json:"info"`
}

// Word is a lexicon entry.
type Word struct {
	Kanji []Form   `json:"kanji"`
	Kana  []Form   `json:"kana"`
	POS   int      `json:"pos"`
	Gloss []string `json:"gloss"`
}

// Form is a written form of a word and the index of its Info.
type Form struct {
	Text string
	Info int
}

// MarshalJSON encodes the form as a [text, info] pair.
func (f Form) MarshalJSON() ([]byte, error) {
	//nolint:wrapcheck // error is returned to the encoder.
	return gojson.Marshal([2]any{f.Text, f.Info})
}

// UnmarshalJSON decodes a [text, info] pair.
func (f *Form) UnmarshalJSON(b []byte) error {
	var pair []gojson.RawMessage
	if err := gojson.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("decoding form: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: form has %d elements, want 2", ErrMalformed, len(pair))
	}
	if err := gojson.Unmarshal(pair[0], &f.Text); err != nil {
		return fmt.Errorf("decoding form text: %w", err)
	}
	if err := gojson.Unmarshal(pair[1], &f.Info); err != nil {
		return fmt.Errorf("decoding form info: %w", err)
	}
	return nil
}

// Records are the candidate records for a surface form. A single record is
// encoded as a bare integer and multiple records as a list.
type Records []record.Record

// MarshalJSON implements [json.Marshaler].
func (r Records) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		//nolint:wrapcheck // error is returned to the encoder.
		return gojson.Marshal(uint32(r[0]))
	}
	//nolint:wrapcheck // error is returned to the encoder.
	return gojson.Marshal([]record.Record(r))
}

// UnmarshalJSON implements [json.Unmarshaler].
func (r *Records) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var list []record.Record
		if err := gojson.Unmarshal(b, &list); err != nil {
			return fmt.Errorf("decoding records: %w", err)
		}
		*r = list
		return nil
	}

	var one record.Record
	if err := gojson.Unmarshal(b, &one); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	*r = Records{one}
	return nil
}

// Decode reads an artifact from r and validates it.
func Decode(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := gojson.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Encode writes the artifact to w.
func (a *Artifact) Encode(w io.Writer) error {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	return nil
}

// Read reads the artifact file at path. Compressed files are decompressed.
func Read(path string) (*Artifact, error) {
	r, err := compress.Open(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped with the path.
	}
	defer r.Close()

	a, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return a, nil
}

// Write writes the artifact to the file at path, compressing it according
// to the file extension.
func (a *Artifact) Write(path string) error {
	w, err := compress.Create(path)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped with the path.
	}
	if err := a.Encode(w); err != nil {
		w.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}

// Validate checks that every index in the artifact refers to existing data.
func (a *Artifact) Validate() error {
	if len(a.Conj) == 0 {
		return fmt.Errorf("%w: missing unconjugated marker", ErrMalformed)
	}
	if len(a.Conj) > record.MaxConjugations {
		return fmt.Errorf("%w: %d conjugations exceeds %d", ErrMalformed, len(a.Conj), record.MaxConjugations)
	}
	if len(a.Words) > record.MaxWords {
		return fmt.Errorf("%w: %d words exceeds %d", ErrMalformed, len(a.Words), record.MaxWords)
	}

	for id, w := range a.Words {
		if w.POS < 0 || w.POS >= len(a.POS) {
			return fmt.Errorf("%w: word %d: part-of-speech %d out of range", ErrMalformed, id, w.POS)
		}
		for _, forms := range [...][]Form{w.Kanji, w.Kana} {
			for _, f := range forms {
				if f.Info < 0 || f.Info >= len(a.Infos) {
					return fmt.Errorf("%w: word %d: info %d out of range", ErrMalformed, id, f.Info)
				}
			}
		}
	}

	for text, recs := range a.StrToWord {
		if len(recs) == 0 {
			return fmt.Errorf("%w: %q: no records", ErrMalformed, text)
		}
		for _, r := range recs {
			if err := a.validateRecord(r); err != nil {
				return fmt.Errorf("%w: %q: %w", ErrMalformed, text, err)
			}
		}
	}
	return nil
}

var errBadRecord = errors.New("bad record")

func (a *Artifact) validateRecord(r record.Record) error {
	if r >= 1<<30 {
		return fmt.Errorf("%w: %#x exceeds 30 bits", errBadRecord, uint32(r))
	}
	f := r.Decode()
	if int(f.WordID) >= len(a.Words) {
		return fmt.Errorf("%w: word %d out of range", errBadRecord, f.WordID)
	}
	w := a.Words[f.WordID]
	forms := w.Kana
	if f.Kanji {
		forms = w.Kanji
	}
	if int(f.FormIndex) >= len(forms) {
		return fmt.Errorf("%w: word %d: form %d out of range", errBadRecord, f.WordID, f.FormIndex)
	}
	if int(f.Conj) >= len(a.Conj) {
		return fmt.Errorf("%w: conjugation %d out of range", errBadRecord, f.Conj)
	}
	return nil
}
