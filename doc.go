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

// Package jdict implements a Japanese dictionary that resolves inflected
// surface forms to their lexicon entries in pure Go.
//
// A dictionary is built ahead of time from a JMdict lexicon and a table of
// conjugation rules (see the generate package and the jdict command). The
// resulting artifact maps every surface form, including the conjugated forms
// of verbs and adjectives, to compact candidate records:
//
//  1. Conjugation names, indexed by conjugation id. Id 0 is "Unconjugated".
//  2. Part-of-speech names, indexed by part-of-speech id.
//  3. Info records holding the priority and annotation tags of word forms.
//  4. Word records holding kanji forms, kana forms, part-of-speech and glosses.
//  5. The surface form index.
//
// A loaded [Dictionary] is immutable and safe for concurrent use.
//
//	d, err := jdict.Load("jdict.json.gz")
//	if err != nil {
//		return err
//	}
//	for r := range d.Lookup("食べています") {
//		fmt.Println(r)
//	}
package jdict
