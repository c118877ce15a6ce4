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

package generate

import (
	"slices"

	"github.com/ianlewis/go-jdict/artifact"
	"github.com/ianlewis/go-jdict/record"
)

// SurfaceIndex maps surface forms to their candidate records. Records for a
// surface form are kept in insertion order without duplicates.
type SurfaceIndex struct {
	m map[string]artifact.Records
}

// NewSurfaceIndex returns an empty SurfaceIndex.
func NewSurfaceIndex() *SurfaceIndex {
	return &SurfaceIndex{
		m: map[string]artifact.Records{},
	}
}

// Add adds a record for text. Adding a record that is already present is a
// no-op.
func (s *SurfaceIndex) Add(text string, r record.Record) {
	recs := s.m[text]
	if slices.Contains(recs, r) {
		return
	}
	s.m[text] = append(recs, r)
}

// Records returns the records for text.
func (s *SurfaceIndex) Records(text string) []record.Record {
	return s.m[text]
}

// Len returns the number of surface forms.
func (s *SurfaceIndex) Len() int {
	return len(s.m)
}
