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
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-jdict/artifact"
	"github.com/ianlewis/go-jdict/conj"
	"github.com/ianlewis/go-jdict/internal/testutil"
	"github.com/ianlewis/go-jdict/jmdict"
	"github.com/ianlewis/go-jdict/record"
)

var testPOS = []testutil.POS{
	{ID: 1, Tag: "v", Description: "verb"},
	{ID: 2, Tag: "n", Description: "noun"},
}

var testConjNames = map[int]string{1: "Progressive"}

var testRules = []conj.Rule{
	{POS: 1, Conj: 1, Ordinal: 1, Stem: 2, Okurigana: "してる"},
	{POS: 1, Conj: 1, Formal: true, Ordinal: 1, Stem: 2, Okurigana: "しています"},
}

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	return New(testutil.Rules(t, testPOS, testConjNames, testRules), &Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func mustEncode(t *testing.T, f record.Fields) record.Record {
	t.Helper()
	r, err := record.Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestGenerator_AssignID(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	for want := range uint32(3) {
		got, err := g.AssignID()
		if err != nil {
			t.Fatalf("AssignID: %v", err)
		}
		if got != want {
			t.Fatalf("AssignID: want: %d, got: %d", want, got)
		}
	}
}

func TestGenerator_AssignID_capacity(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	g.words = make([]artifact.Word, record.MaxWords-1)

	id, err := g.AssignID()
	if err != nil {
		t.Fatalf("AssignID: %v", err)
	}
	if id != record.MaxWords-1 {
		t.Fatalf("AssignID: want: %d, got: %d", record.MaxWords-1, id)
	}

	if _, err := g.AssignID(); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("AssignID: unexpected error, want: %v, got: %v", ErrCapacityExceeded, err)
	}
}

func TestGenerator_InternInfo(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)

	empty := g.InternInfo(nil, nil)
	if got := g.InternInfo([]string{}, []string{}); got != empty {
		t.Errorf("InternInfo(empty): want: %d, got: %d", empty, got)
	}

	news := g.InternInfo([]string{"news1", "ichi1"}, nil)
	if news == empty {
		t.Errorf("InternInfo(news1, ichi1): got the empty info id %d", news)
	}
	if got := g.InternInfo([]string{"ichi1", "news1", "ichi1"}, nil); got != news {
		t.Errorf("InternInfo(ichi1, news1, ichi1): want: %d, got: %d", news, got)
	}

	// The same tags as annotations are a different info.
	if got := g.InternInfo(nil, []string{"news1", "ichi1"}); got == news {
		t.Errorf("InternInfo(annotations): got the priority info id %d", got)
	}

	want := []artifact.Info{
		{Priority: []string{}, Info: []string{}},
		{Priority: []string{"ichi1", "news1"}, Info: []string{}},
		{Priority: []string{}, Info: []string{"ichi1", "news1"}},
	}
	if diff := cmp.Diff(want, g.Artifact().Infos); diff != "" {
		t.Errorf("Infos (-want, +got):\n%s", diff)
	}
}

func TestGenerator_AddSurfaceForm(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	g.AddSurfaceForm("する", 1)
	g.AddSurfaceForm("する", 2)
	g.AddSurfaceForm("する", 1)

	if diff := cmp.Diff([]record.Record{1, 2}, g.surface.Records("する")); diff != "" {
		t.Errorf("Records (-want, +got):\n%s", diff)
	}
	if got, want := g.surface.Len(), 1; got != want {
		t.Errorf("Len: want: %d, got: %d", want, got)
	}
}

func TestGenerator_Conjugate(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	got, err := g.Conjugate("する", "verb", 5, false, 1)
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}

	want := []Candidate{
		{
			Text:   "してる",
			Record: mustEncode(t, record.Fields{WordID: 5, FormIndex: 1, Conj: 1}),
		},
		{
			Text:   "しています",
			Record: mustEncode(t, record.Fields{WordID: 5, FormIndex: 1, Conj: 1, Formal: true}),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Conjugate (-want, +got):\n%s", diff)
	}
}

func TestGenerator_Conjugate_formIndexOverflow(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	if _, err := g.Conjugate("する", "verb", 0, false, record.MaxForms); !errors.Is(err, ErrFormIndexOverflow) {
		t.Fatalf("Conjugate: unexpected error, want: %v, got: %v", ErrFormIndexOverflow, err)
	}
}

func TestGenerator_Add(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	entries := []*jmdict.Entry{
		{
			Seq:   1000,
			Kana:  []jmdict.Element{{Text: "する"}},
			POS:   "verb",
			Gloss: []string{"to do"},
		},
		{
			Seq:   1001,
			Kanji: []jmdict.Element{{Text: "林檎", Priority: []string{"ichi1"}}},
			Kana:  []jmdict.Element{{Text: "りんご"}},
			POS:   "n",
			Gloss: []string{"apple"},
		},
	}
	for _, e := range entries {
		if err := g.Add(e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	want := &artifact.Artifact{
		Conj: []string{"Unconjugated", "Progressive"},
		POS:  []string{"", "verb", "noun"},
		Infos: []artifact.Info{
			{Priority: []string{}, Info: []string{}},
			{Priority: []string{"ichi1"}, Info: []string{}},
		},
		Words: []artifact.Word{
			{
				Kanji: []artifact.Form{},
				Kana:  []artifact.Form{{Text: "する", Info: 0}},
				POS:   1,
				Gloss: []string{"to do"},
			},
			{
				Kanji: []artifact.Form{{Text: "林檎", Info: 1}},
				Kana:  []artifact.Form{{Text: "りんご", Info: 0}},
				POS:   2,
				Gloss: []string{"apple"},
			},
		},
		StrToWord: map[string]artifact.Records{
			"してる": {mustEncode(t, record.Fields{WordID: 0, Conj: 1})},
			"しています": {mustEncode(t, record.Fields{WordID: 0, Conj: 1, Formal: true})},
			"りんご": {mustEncode(t, record.Fields{WordID: 1})},
			"林檎":  {mustEncode(t, record.Fields{WordID: 1, Kanji: true})},
		},
	}
	got := g.Artifact()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Artifact (-want, +got):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestGenerator_Add_unknownPOS(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	err := g.Add(&jmdict.Entry{
		Seq:  1,
		Kana: []jmdict.Element{{Text: "なに"}},
		POS:  "pronoun",
	})
	if !errors.Is(err, ErrUnknownPartOfSpeech) {
		t.Fatalf("Add: unexpected error, want: %v, got: %v", ErrUnknownPartOfSpeech, err)
	}
	if !errors.Is(err, conj.ErrUnknownPartOfSpeech) {
		t.Fatalf("Add: unexpected error, want: %v, got: %v", conj.ErrUnknownPartOfSpeech, err)
	}
	if got := len(g.Artifact().Words); got != 0 {
		t.Fatalf("Words: want: 0, got: %d", got)
	}
}

func TestGenerator_Add_formIndexOverflow(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	e := &jmdict.Entry{POS: "n"}
	for i := range record.MaxForms + 1 {
		e.Kana = append(e.Kana, jmdict.Element{Text: fmt.Sprintf("か%d", i)})
	}
	if err := g.Add(e); !errors.Is(err, ErrFormIndexOverflow) {
		t.Fatalf("Add: unexpected error, want: %v, got: %v", ErrFormIndexOverflow, err)
	}
}

func TestGenerator_Add_lastFormIndex(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	e := &jmdict.Entry{POS: "n"}
	for i := range record.MaxForms {
		e.Kana = append(e.Kana, jmdict.Element{Text: fmt.Sprintf("か%d", i)})
	}
	if err := g.Add(e); err != nil {
		t.Fatalf("Add: %v", err)
	}

	want := []record.Record{mustEncode(t, record.Fields{FormIndex: record.MaxForms - 1})}
	if diff := cmp.Diff(want, g.surface.Records(fmt.Sprintf("か%d", record.MaxForms-1))); diff != "" {
		t.Errorf("Records (-want, +got):\n%s", diff)
	}
}

func TestGenerator_Build(t *testing.T) {
	t.Parallel()

	lexicon := testutil.MakeLexicon([]*jmdict.Entry{
		{
			Seq:   1000,
			Kana:  []jmdict.Element{{Text: "する"}},
			POS:   "vs",
			Gloss: []string{"to do"},
		},
		{
			Seq:   1001,
			Kana:  []jmdict.Element{{Text: "りんご"}},
			Gloss: []string{"apple"},
		},
	}, map[string]string{"vs": "verb"})

	rules := testutil.Rules(t, append(testPOS, testutil.POS{ID: 3, Tag: "unc", Description: jmdict.DefaultPOS}), testConjNames, testRules)
	g := New(rules, &Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	a, err := g.Build(jmdict.NewScanner(bytes.NewReader(lexicon), nil))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got, want := len(a.Words), 2; got != want {
		t.Fatalf("Words: want: %d, got: %d", want, got)
	}
	if got, want := a.Words[1].POS, 3; got != want {
		t.Errorf("Words[1].POS: want: %d, got: %d", want, got)
	}
	if _, ok := a.StrToWord["してる"]; !ok {
		t.Errorf("StrToWord: missing %q", "してる")
	}
	if _, ok := a.StrToWord["する"]; ok {
		t.Errorf("StrToWord: unexpected unconjugated form %q", "する")
	}
}

func TestGenerator_Build_invalidLexicon(t *testing.T) {
	t.Parallel()

	g := testGenerator(t)
	_, err := g.Build(jmdict.NewScanner(bytes.NewReader([]byte("<JMdict><entry>")), nil))
	if !errors.Is(err, ErrBuild) {
		t.Fatalf("Build: unexpected error, want: %v, got: %v", ErrBuild, err)
	}
	if !errors.Is(err, jmdict.ErrInvalidLexicon) {
		t.Fatalf("Build: unexpected error, want: %v, got: %v", jmdict.ErrInvalidLexicon, err)
	}
}

func TestBuildFile(t *testing.T) {
	t.Parallel()

	lexicon := testutil.WriteLexicon(t, []*jmdict.Entry{
		{
			Seq:   1000,
			Kanji: []jmdict.Element{{Text: "食べる", Priority: []string{"ichi1"}}},
			Kana:  []jmdict.Element{{Text: "たべる"}},
			POS:   "v1",
			Gloss: []string{"to eat"},
		},
	}, map[string]string{"v1": "Ichidan verb"})

	out := filepath.Join(t.TempDir(), "jdict.json.gz")
	err := BuildFile(lexicon, out, testutil.DefaultRules(t), nil, &Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("BuildFile: %v", err)
	}

	a, err := artifact.Read(out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	recs, ok := a.StrToWord["食べて"]
	if !ok {
		t.Fatalf("StrToWord: missing %q", "食べて")
	}
	f := recs[0].Decode()
	if !f.Kanji || f.WordID != 0 {
		t.Errorf("Decode: unexpected fields %+v", f)
	}
}

func TestBuildFile_notExist(t *testing.T) {
	t.Parallel()

	err := BuildFile(filepath.Join(t.TempDir(), "missing.xml"), filepath.Join(t.TempDir(), "out.json"), testutil.DefaultRules(t), nil, nil)
	if !errors.Is(err, ErrBuild) {
		t.Fatalf("BuildFile: unexpected error, want: %v, got: %v", ErrBuild, err)
	}
}
