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

// Package record implements the packed candidate records stored in the
// surface form index.
//
// A record is a 30-bit value with the following layout (bit 0 is the least
// significant bit):
//
//	bits  width  field
//	0-17  18     word id
//	18    1      kanji (1) or kana (0) form list
//	19-23 5      index into the form list
//	24-27 4      conjugation id (0 is unconjugated)
//	28    1      formal
//	29    1      negative
package record

import (
	"errors"
	"fmt"
)

const (
	wordIDBits    = 18
	formIndexBits = 5
	conjBits      = 4

	kanjiShift     = wordIDBits
	formIndexShift = kanjiShift + 1
	conjShift      = formIndexShift + formIndexBits
	formalShift    = conjShift + conjBits
	negativeShift  = formalShift + 1
)

const (
	// MaxWords is the number of distinct word ids a record can address.
	MaxWords = 1 << wordIDBits

	// MaxForms is the number of kanji or kana forms a record can address
	// on a single word.
	MaxForms = 1 << formIndexBits

	// MaxConjugations is the number of conjugation ids, including the
	// reserved unconjugated id 0.
	MaxConjugations = 1 << conjBits
)

// ErrOutOfRange indicates that a field does not fit in its bit width.
var ErrOutOfRange = errors.New("record field out of range")

// Record is a packed candidate record.
type Record uint32

// Fields are the unpacked fields of a Record.
type Fields struct {
	// WordID is the index into the word table.
	WordID uint32

	// Kanji is true if the display form is taken from the kanji list and
	// false if it is taken from the kana list.
	Kanji bool

	// FormIndex is the index into the selected form list.
	FormIndex uint8

	// Conj is the conjugation id. Zero means unconjugated.
	Conj uint8

	// Formal is the politeness flag.
	Formal bool

	// Negative is the negation flag.
	Negative bool
}

// Encode packs the fields into a Record.
func Encode(f Fields) (Record, error) {
	if f.WordID >= MaxWords {
		return 0, fmt.Errorf("%w: word id %d", ErrOutOfRange, f.WordID)
	}
	if f.FormIndex >= MaxForms {
		return 0, fmt.Errorf("%w: form index %d", ErrOutOfRange, f.FormIndex)
	}
	if f.Conj >= MaxConjugations {
		return 0, fmt.Errorf("%w: conjugation %d", ErrOutOfRange, f.Conj)
	}

	r := Record(f.WordID)
	r |= Record(f.FormIndex) << formIndexShift
	r |= Record(f.Conj) << conjShift
	if f.Kanji {
		r |= 1 << kanjiShift
	}
	if f.Formal {
		r |= 1 << formalShift
	}
	if f.Negative {
		r |= 1 << negativeShift
	}
	return r, nil
}

// Decode unpacks the record. Bits above bit 29 are ignored.
func (r Record) Decode() Fields {
	return Fields{
		WordID:    uint32(r) & (MaxWords - 1),
		Kanji:     (r>>kanjiShift)&1 == 1,
		FormIndex: uint8((r >> formIndexShift) & (MaxForms - 1)),
		Conj:      uint8((r >> conjShift) & (MaxConjugations - 1)),
		Formal:    (r>>formalShift)&1 == 1,
		Negative:  (r>>negativeShift)&1 == 1,
	}
}

// Base returns the unconjugated record for a word form.
func Base(wordID uint32, kanji bool, formIndex int) (Record, error) {
	if formIndex < 0 || formIndex >= MaxForms {
		return 0, fmt.Errorf("%w: form index %d", ErrOutOfRange, formIndex)
	}
	return Encode(Fields{
		WordID:    wordID,
		Kanji:     kanji,
		FormIndex: uint8(formIndex),
	})
}
