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

// Package generate compiles a lexicon and a conjugation rule table into a
// dictionary artifact.
//
// Generation is a single pass over the lexicon. Each entry is assigned the
// next word id, the tags of each written form are interned into a shared
// info table, and every form is registered in the surface form index either
// through its conjugated forms or, when it has none, as itself.
package generate

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/ianlewis/go-jdict/artifact"
	"github.com/ianlewis/go-jdict/conj"
	"github.com/ianlewis/go-jdict/jmdict"
	"github.com/ianlewis/go-jdict/record"
)

var (
	// ErrBuild is the parent error for all generation errors.
	ErrBuild = errors.New("build")

	// ErrUnknownPartOfSpeech indicates that a lexicon entry uses a
	// part-of-speech missing from the rule table.
	ErrUnknownPartOfSpeech = fmt.Errorf("%w: %w", ErrBuild, conj.ErrUnknownPartOfSpeech)

	// ErrCapacityExceeded indicates that the lexicon has more entries than a
	// candidate record can address.
	ErrCapacityExceeded = fmt.Errorf("%w: word capacity exceeded", ErrBuild)

	// ErrFormIndexOverflow indicates that an entry has more kanji or kana
	// forms than a candidate record can address.
	ErrFormIndexOverflow = fmt.Errorf("%w: form index overflow", ErrBuild)
)

// progressInterval is the number of entries between progress log messages.
const progressInterval = 10000

// Options are options for a Generator.
type Options struct {
	// Logger receives progress messages. Defaults to slog.Default().
	Logger *slog.Logger
}

// Candidate is a conjugated surface form and its packed record.
type Candidate struct {
	Text   string
	Record record.Record
}

// Generator accumulates lexicon entries into an artifact. A Generator is not
// safe for concurrent use.
type Generator struct {
	rules  *conj.Table
	logger *slog.Logger

	words   []artifact.Word
	infos   []artifact.Info
	infoIDs map[string]int
	surface *SurfaceIndex
}

// New returns a new Generator using the given rule table.
func New(rules *conj.Table, opts *Options) *Generator {
	logger := slog.Default()
	if opts != nil && opts.Logger != nil {
		logger = opts.Logger
	}
	return &Generator{
		rules:   rules,
		logger:  logger,
		words:   []artifact.Word{},
		infos:   []artifact.Info{},
		infoIDs: map[string]int{},
		surface: NewSurfaceIndex(),
	}
}

// AssignID returns the id for the next entry. Ids are assigned sequentially
// starting at zero.
func (g *Generator) AssignID() (uint32, error) {
	id := len(g.words)
	if id >= record.MaxWords {
		return 0, fmt.Errorf("%w: entry %d, maximum is %d", ErrCapacityExceeded, id+1, record.MaxWords)
	}
	g.words = append(g.words, artifact.Word{})
	return uint32(id), nil
}

// InternInfo returns the id of the info record with the given tags, adding
// it if no structurally equal record exists. Tags are compared as sets.
func (g *Generator) InternInfo(priority, annotations []string) int {
	pri := canonical(priority)
	inf := canonical(annotations)

	key := strings.Join(pri, "\x1f") + "\x1e" + strings.Join(inf, "\x1f")
	if id, ok := g.infoIDs[key]; ok {
		return id
	}

	id := len(g.infos)
	g.infos = append(g.infos, artifact.Info{
		Priority: pri,
		Info:     inf,
	})
	g.infoIDs[key] = id
	return id
}

// canonical returns a sorted copy of tags without duplicates.
func canonical(tags []string) []string {
	c := slices.Clone(tags)
	if c == nil {
		c = []string{}
	}
	slices.Sort(c)
	return slices.Compact(c)
}

// Conjugate returns the conjugated forms of text with their candidate
// records.
func (g *Generator) Conjugate(text, pos string, wordID uint32, kanji bool, index int) ([]Candidate, error) {
	forms, err := g.rules.Conjugate(text, pos)
	if err != nil {
		if errors.Is(err, conj.ErrUnknownPartOfSpeech) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPartOfSpeech, pos)
		}
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	if index < 0 || index >= record.MaxForms {
		return nil, fmt.Errorf("%w: word %d: form %d", ErrFormIndexOverflow, wordID, index)
	}

	var candidates []Candidate
	for _, f := range forms {
		r, err := record.Encode(record.Fields{
			WordID:    wordID,
			Kanji:     kanji,
			FormIndex: uint8(index),
			Conj:      uint8(f.Conj),
			Formal:    f.Formal,
			Negative:  f.Negative,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuild, err)
		}
		candidates = append(candidates, Candidate{
			Text:   f.Text,
			Record: r,
		})
	}
	return candidates, nil
}

// AddSurfaceForm registers a record for a surface form.
func (g *Generator) AddSurfaceForm(text string, r record.Record) {
	g.surface.Add(text, r)
}

// Add processes a lexicon entry.
func (g *Generator) Add(e *jmdict.Entry) error {
	p, ok := g.rules.LookupPOS(e.POS)
	if !ok {
		return fmt.Errorf("%w: %q (entry %d)", ErrUnknownPartOfSpeech, e.POS, e.Seq)
	}

	id, err := g.AssignID()
	if err != nil {
		return err
	}

	kana, err := g.addForms(e.Kana, e.POS, id, false)
	if err != nil {
		return err
	}
	kanji, err := g.addForms(e.Kanji, e.POS, id, true)
	if err != nil {
		return err
	}

	gloss := slices.Clone(e.Gloss)
	if gloss == nil {
		gloss = []string{}
	}
	g.words[id] = artifact.Word{
		Kanji: kanji,
		Kana:  kana,
		POS:   p.ID,
		Gloss: gloss,
	}
	return nil
}

func (g *Generator) addForms(elements []jmdict.Element, pos string, id uint32, kanji bool) ([]artifact.Form, error) {
	forms := make([]artifact.Form, 0, len(elements))
	for index, ele := range elements {
		if index >= record.MaxForms {
			return nil, fmt.Errorf("%w: word %d has more than %d forms", ErrFormIndexOverflow, id, record.MaxForms)
		}

		forms = append(forms, artifact.Form{
			Text: ele.Text,
			Info: g.InternInfo(ele.Priority, ele.Info),
		})
		if ele.Text == "" {
			continue
		}

		candidates, err := g.Conjugate(ele.Text, pos, id, kanji, index)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			g.AddSurfaceForm(c.Text, c.Record)
		}
		if len(candidates) == 0 {
			r, err := record.Base(id, kanji, index)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrBuild, err)
			}
			g.AddSurfaceForm(ele.Text, r)
		}
	}
	return forms, nil
}

// Artifact assembles the artifact from the entries added so far.
func (g *Generator) Artifact() *artifact.Artifact {
	return &artifact.Artifact{
		Conj:      g.rules.ConjugationNames(),
		POS:       g.rules.POSNames(),
		Infos:     slices.Clone(g.infos),
		Words:     slices.Clone(g.words),
		StrToWord: maps.Clone(g.surface.m),
	}
}

// Build reads every entry from s and returns the resulting artifact.
func (g *Generator) Build(s *jmdict.Scanner) (*artifact.Artifact, error) {
	start := time.Now()
	n := 0
	for s.Scan() {
		if err := g.Add(s.Entry()); err != nil {
			return nil, err
		}
		n++
		if n%progressInterval == 0 {
			g.logger.Info("processing entries", "entries", n)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading lexicon: %w", ErrBuild, err)
	}

	a := g.Artifact()
	g.logger.Info("built dictionary",
		"entries", len(a.Words),
		"infos", len(a.Infos),
		"surface_forms", len(a.StrToWord),
		"elapsed", time.Since(start),
	)
	return a, nil
}

// BuildFile compiles the lexicon at lexiconPath and writes the artifact to
// outputPath.
func BuildFile(lexiconPath, outputPath string, rules *conj.Table, lexOpts *jmdict.Options, opts *Options) error {
	s, err := jmdict.Open(lexiconPath, lexOpts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuild, err)
	}
	defer s.Close()

	g := New(rules, opts)
	g.logger.Info("reading lexicon", "path", lexiconPath)
	a, err := g.Build(s)
	if err != nil {
		return err
	}

	g.logger.Info("writing dictionary", "path", outputPath)
	if err := a.Write(outputPath); err != nil {
		return fmt.Errorf("%w: %w", ErrBuild, err)
	}
	return nil
}
