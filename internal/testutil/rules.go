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

package testutil

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ianlewis/go-jdict/conj"
)

// POS is a part-of-speech row of a test rule table.
type POS struct {
	ID          int
	Tag         string
	Description string
}

// RulesFS returns an in-memory rule table with the given rows.
func RulesFS(pos []POS, conjNames map[int]string, rules []conj.Rule) fstest.MapFS {
	var kwpos strings.Builder
	kwpos.WriteString("id\tkw\tdescr\n")
	for _, p := range pos {
		fmt.Fprintf(&kwpos, "%d\t%s\t%s\n", p.ID, p.Tag, p.Description)
	}

	var names strings.Builder
	names.WriteString("id\tname\n")
	for id := 1; id <= conj.MaxConjugation; id++ {
		if name, ok := conjNames[id]; ok {
			fmt.Fprintf(&names, "%d\t%s\n", id, name)
		}
	}

	var conjo strings.Builder
	conjo.WriteString("pos\tconj\tneg\tfml\tonum\tstem\tokuri\teuphr\teuphk\tpos2\n")
	for _, r := range rules {
		fmt.Fprintf(&conjo, "%d\t%d\t%t\t%t\t%d\t%d\t%s\t%s\t%s\t\n",
			r.POS, r.Conj, r.Negative, r.Formal, r.Ordinal, r.Stem,
			r.Okurigana, r.EuphonicKana, r.EuphonicKanji)
	}

	return fstest.MapFS{
		"kwpos.csv": {Data: []byte(kwpos.String())},
		"conj.csv":  {Data: []byte(names.String())},
		"conjo.csv": {Data: []byte(conjo.String())},
	}
}

// Rules loads a test rule table and fails the test on error.
func Rules(t *testing.T, pos []POS, conjNames map[int]string, rules []conj.Rule) *conj.Table {
	t.Helper()

	table, err := conj.Load(RulesFS(pos, conjNames, rules))
	if err != nil {
		t.Fatal(err)
	}
	return table
}

// DefaultRules loads the built-in rule table and fails the test on error.
func DefaultRules(t *testing.T) *conj.Table {
	t.Helper()

	table, err := conj.Default()
	if err != nil {
		t.Fatal(err)
	}
	return table
}
