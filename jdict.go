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
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-jdict/artifact"
	"github.com/ianlewis/go-jdict/internal/folding"
	"github.com/ianlewis/go-jdict/internal/index"
	"github.com/ianlewis/go-jdict/record"
)

var (
	// ErrLoad indicates that a dictionary artifact could not be loaded.
	ErrLoad = errors.New("loading dictionary")

	// ErrIndexOutOfRange indicates that a word id is outside the dictionary.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Options are options for a Dictionary.
type Options struct {
	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// width folding, whitespace removal, etc.) on queries. A new transformer
	// is created per query. If nil, queries are not folded.
	Folder func() transform.Transformer

	// VoicedAuxiliaries also resolves the voiced auxiliaries (でいる, でる,
	// etc.) that follow the conjunctive form of godan verbs ending in む, ぶ,
	// ぬ and ぐ. They are off by default because they also match words ending
	// in the particle で.
	VoicedAuxiliaries bool
}

// DefaultOptions is the default options for a Dictionary.
var DefaultOptions = &Options{
	Folder: folding.Default,
}

// Dictionary is a loaded dictionary. A Dictionary is immutable and safe for
// concurrent use.
type Dictionary struct {
	conj      []string
	words     []Word
	strToWord map[string]artifact.Records
	surfaces  *index.Index[surfaceForm]

	folder      func() transform.Transformer
	auxiliaries []auxiliary
}

// Load loads the dictionary artifact at path with the default options.
// Compressed artifacts are decompressed.
func Load(path string) (*Dictionary, error) {
	return LoadWithOptions(path, DefaultOptions)
}

// LoadWithOptions loads the dictionary artifact at path.
func LoadWithOptions(path string, options *Options) (*Dictionary, error) {
	a, err := artifact.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return fromArtifact(a, options), nil
}

// New reads an uncompressed dictionary artifact from r.
func New(r io.Reader, options *Options) (*Dictionary, error) {
	a, err := artifact.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return fromArtifact(a, options), nil
}

// fromArtifact materializes the words of a validated artifact.
func fromArtifact(a *artifact.Artifact, options *Options) *Dictionary {
	if options == nil {
		options = DefaultOptions
	}

	infos := make([]Info, len(a.Infos))
	for i, inf := range a.Infos {
		infos[i] = Info{
			Priority:    inf.Priority,
			Annotations: inf.Info,
		}
	}

	forms := func(fs []artifact.Form) []Form {
		out := make([]Form, len(fs))
		for i, f := range fs {
			out[i] = Form{
				Text: f.Text,
				Info: &infos[f.Info],
			}
		}
		return out
	}

	words := make([]Word, len(a.Words))
	for id, w := range a.Words {
		words[id] = Word{
			ID:    uint32(id),
			Kanji: forms(w.Kanji),
			Kana:  forms(w.Kana),
			POS:   a.POS[w.POS],
			Gloss: w.Gloss,
		}
	}

	d := &Dictionary{
		conj:        a.Conj,
		words:       words,
		folder:      options.Folder,
		auxiliaries: auxiliaries,
	}
	if options.VoicedAuxiliaries {
		d.auxiliaries = slices.Concat(auxiliaries, voicedAuxiliaries)
	}

	// Surface forms are folded like queries. Records of forms that fold to
	// the same key are merged in key order without duplicates.
	d.strToWord = make(map[string]artifact.Records, len(a.StrToWord))
	for _, k := range slices.Sorted(maps.Keys(a.StrToWord)) {
		fk := d.fold(k)
		recs := d.strToWord[fk]
		for _, r := range a.StrToWord[k] {
			if !slices.Contains(recs, r) {
				recs = append(recs, r)
			}
		}
		d.strToWord[fk] = recs
	}

	keys := make([]surfaceForm, 0, len(d.strToWord))
	for k := range d.strToWord {
		keys = append(keys, surfaceForm(k))
	}
	d.surfaces = index.NewIndex(keys)

	return d
}

// surfaceForm is a key of the surface form index.
type surfaceForm string

func (s surfaceForm) String() string {
	return string(s)
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// SurfaceForms returns the number of searchable surface forms after folding.
func (d *Dictionary) SurfaceForms() int {
	return len(d.strToWord)
}

// GetWord returns the word with the given id.
func (d *Dictionary) GetWord(id int) (*Word, error) {
	if id < 0 || id >= len(d.words) {
		return nil, fmt.Errorf("%w: word %d, dictionary has %d words", ErrIndexOutOfRange, id, len(d.words))
	}
	return &d.words[id], nil
}

// fold applies the query folder to q.
func (d *Dictionary) fold(q string) string {
	if d.folder == nil {
		return q
	}
	return folding.String(d.folder(), q)
}

// resolve converts a candidate record into a Result. Records are validated
// at load so a record that does not resolve indicates corruption.
func (d *Dictionary) resolve(query string, r record.Record) Result {
	f := r.Decode()
	w, err := d.GetWord(int(f.WordID))
	if err != nil {
		panic(fmt.Sprintf("corrupt record %#x for %q: %v", uint32(r), query, err))
	}
	forms := w.Kana
	if f.Kanji {
		forms = w.Kanji
	}
	form := forms[f.FormIndex]

	return Result{
		Query:       query,
		Word:        w,
		Kanji:       f.Kanji,
		Text:        form.Text,
		Info:        form.Info,
		Conjugated:  f.Conj != 0,
		Formal:      f.Formal,
		Negative:    f.Negative,
		Conjugation: d.conj[f.Conj],
	}
}
