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

// Package jmdict implements reading JMdict XML lexicon files.
//
// A JMdict file is a single <JMdict> document with one <entry> element per
// lexicon entry. Parts-of-speech and other tags are written as XML entities
// declared in the document's internal DTD subset. The Scanner expands them to
// their descriptions.
package jmdict

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/k3a/html2text"

	"github.com/ianlewis/go-jdict/internal/compress"
)

// ErrInvalidLexicon indicates that the lexicon XML is malformed.
var ErrInvalidLexicon = errors.New("invalid lexicon")

// DefaultPOS is used for entries that have no part-of-speech.
const DefaultPOS = "unclassified"

var entityRegex = regexp.MustCompile(`<!ENTITY\s+([^\s]+)\s+"([^"]*)"\s*>`)

// Element is a kanji or reading element of an entry.
type Element struct {
	// Text is the written form.
	Text string

	// Priority are the priority tags (e.g. "news1", "ichi1").
	Priority []string

	// Info are the annotation tags (e.g. "ateji").
	Info []string
}

// Entry is a lexicon entry.
type Entry struct {
	// Seq is the JMdict sequence number.
	Seq int

	// Kanji are the kanji elements in document order.
	Kanji []Element

	// Kana are the reading elements in document order.
	Kana []Element

	// POS is the first part-of-speech listed in the entry, or DefaultPOS.
	POS string

	// Gloss are the glosses of all senses in document order.
	Gloss []string
}

type xmlGloss struct {
	Lang string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Text string `xml:",chardata"`
}

type xmlEntry struct {
	Seq   int `xml:"ent_seq"`
	KEles []struct {
		Keb string   `xml:"keb"`
		Inf []string `xml:"ke_inf"`
		Pri []string `xml:"ke_pri"`
	} `xml:"k_ele"`
	REles []struct {
		Reb string   `xml:"reb"`
		Inf []string `xml:"re_inf"`
		Pri []string `xml:"re_pri"`
	} `xml:"r_ele"`
	Senses []struct {
		POS   []string   `xml:"pos"`
		Gloss []xmlGloss `xml:"gloss"`
	} `xml:"sense"`
}

// Options are options for reading a lexicon.
type Options struct {
	// GlossLanguage is the ISO 639-2 code of the glosses to keep. Glosses
	// without a language attribute are English.
	GlossLanguage string

	// StripMarkup converts HTML markup in glosses to plain text.
	StripMarkup bool
}

// DefaultOptions is the default options for a Scanner.
var DefaultOptions = &Options{
	GlossLanguage: "eng",
}

// Scanner scans a lexicon from start to end.
type Scanner struct {
	r     io.Reader
	d     *xml.Decoder
	opts  Options
	entry *Entry
	err   error
}

// NewScanner returns a new Scanner that reads entries from r.
func NewScanner(r io.Reader, options *Options) *Scanner {
	if options == nil {
		options = DefaultOptions
	}
	opts := *options
	if opts.GlossLanguage == "" {
		opts.GlossLanguage = DefaultOptions.GlossLanguage
	}

	d := xml.NewDecoder(r)
	d.Strict = true
	d.Entity = map[string]string{}

	return &Scanner{
		r:    r,
		d:    d,
		opts: opts,
	}
}

// Open opens the lexicon at path. Compressed files are decompressed.
// The Scanner assumes ownership of the file and should be closed with the
// Close method.
func Open(path string, options *Options) (*Scanner, error) {
	r, err := compress.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lexicon: %w", err)
	}
	return NewScanner(r, options), nil
}

// Scan advances the scanner to the next entry. It returns false when the
// scan stops, either by reaching the end of the lexicon or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	s.entry = nil

	for {
		tok, err := s.d.Token()
		if errors.Is(err, io.EOF) {
			return false
		}
		if err != nil {
			s.err = fmt.Errorf("%w: %w", ErrInvalidLexicon, err)
			return false
		}

		switch t := tok.(type) {
		case xml.Directive:
			for _, m := range entityRegex.FindAllStringSubmatch(string(t), -1) {
				s.d.Entity[m[1]] = m[2]
			}
		case xml.StartElement:
			if t.Name.Local != "entry" {
				continue
			}
			var x xmlEntry
			if err := s.d.DecodeElement(&x, &t); err != nil {
				s.err = fmt.Errorf("%w: %w", ErrInvalidLexicon, err)
				return false
			}
			s.entry = s.convert(&x)
			return true
		}
	}
}

// Entry returns the most recent entry read by Scan.
func (s *Scanner) Entry() *Entry {
	return s.entry
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

// Close closes the underlying reader if it is an io.Closer.
func (s *Scanner) Close() error {
	c, ok := s.r.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("closing lexicon: %w", err)
	}
	return nil
}

func (s *Scanner) convert(x *xmlEntry) *Entry {
	e := &Entry{
		Seq: x.Seq,
		POS: DefaultPOS,
	}

	for _, k := range x.KEles {
		e.Kanji = append(e.Kanji, Element{
			Text:     strings.TrimSpace(k.Keb),
			Priority: k.Pri,
			Info:     k.Inf,
		})
	}
	for _, r := range x.REles {
		e.Kana = append(e.Kana, Element{
			Text:     strings.TrimSpace(r.Reb),
			Priority: r.Pri,
			Info:     r.Inf,
		})
	}

	posFound := false
	for _, sense := range x.Senses {
		if !posFound && len(sense.POS) > 0 {
			e.POS = strings.TrimSpace(sense.POS[0])
			posFound = true
		}
		for _, g := range sense.Gloss {
			lang := g.Lang
			if lang == "" {
				lang = "eng"
			}
			if lang != s.opts.GlossLanguage {
				continue
			}
			text := g.Text
			if s.opts.StripMarkup {
				text = html2text.HTML2Text(text)
			}
			e.Gloss = append(e.Gloss, strings.TrimSpace(text))
		}
	}

	return e
}
