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

package conj

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func texts(forms []Conjugation) []string {
	var s []string
	for _, f := range forms {
		s = append(s, f.Text)
	}
	return s
}

func TestDefault_Conjugate(t *testing.T) {
	t.Parallel()

	table, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	tests := []struct {
		name     string
		text     string
		pos      string
		expected []string
	}{
		{
			name: "ichidan",
			text: "食べる",
			pos:  "v1",
			expected: []string{
				"食べる", "食べます", "食べない", "食べません",
				"食べた", "食べました", "食べなかった", "食べませんでした",
				"食べて", "食べまして", "食べなくて", "食べないで", "食べませんで",
			},
		},
		{
			name: "ichidan by description",
			text: "たべる",
			pos:  "Ichidan verb",
			expected: []string{
				"たべる", "たべます", "たべない", "たべません",
				"たべた", "たべました", "たべなかった", "たべませんでした",
				"たべて", "たべまして", "たべなくて", "たべないで", "たべませんで",
			},
		},
		{
			name: "godan ku",
			text: "書く",
			pos:  "v5k",
			expected: []string{
				"書く", "書きます", "書かない", "書きません",
				"書いた", "書きました", "書かなかった", "書きませんでした",
				"書いて", "書きまして", "書かなくて", "書かないで", "書きませんで",
			},
		},
		{
			name: "suru kana",
			text: "する",
			pos:  "vs-i",
			expected: []string{
				"する", "します", "しない", "しません",
				"した", "しました", "しなかった", "しませんでした",
				"して", "しまして", "しなくて", "しないで", "しませんで",
			},
		},
		{
			name: "kuru kana",
			text: "くる",
			pos:  "vk",
			expected: []string{
				"くる", "きます", "こない", "きません",
				"きた", "きました", "こなかった", "きませんでした",
				"きて", "きまして", "こなくて", "こないで", "きませんで",
			},
		},
		{
			name: "kuru kanji",
			text: "来る",
			pos:  "vk",
			expected: []string{
				"来る", "来ます", "来ない", "来ません",
				"来た", "来ました", "来なかった", "来ませんでした",
				"来て", "来まして", "来なくて", "来ないで", "来ませんで",
			},
		},
		{
			name: "i-adjective",
			text: "高い",
			pos:  "adj-i",
			expected: []string{
				"高い", "高いです", "高くない", "高くないです", "高くありません",
				"高かった", "高かったです", "高くなかった", "高くなかったです", "高くありませんでした",
				"高くて", "高くなくて",
			},
		},
		{
			name:     "no rules",
			text:     "りんご",
			pos:      "n",
			expected: nil,
		},
		{
			name:     "single rune",
			text:     "る",
			pos:      "v1",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			forms, err := table.Conjugate(test.text, test.pos)
			if err != nil {
				t.Fatalf("Conjugate: %v", err)
			}
			if diff := cmp.Diff(test.expected, texts(forms)); diff != "" {
				t.Fatalf("Conjugate (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDefault_ConjugateFlags(t *testing.T) {
	t.Parallel()

	table, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	forms, err := table.Conjugate("買う", "v5u")
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}

	want := map[string]Conjugation{
		"買います":     {Text: "買います", Conj: 1, Formal: true},
		"買わなかった":   {Text: "買わなかった", Conj: 2, Negative: true},
		"買って":      {Text: "買って", Conj: 3},
		"買いませんでした": {Text: "買いませんでした", Conj: 2, Negative: true, Formal: true},
	}
	got := map[string]Conjugation{}
	for _, f := range forms {
		if _, ok := want[f.Text]; ok {
			got[f.Text] = f
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Conjugate (-want, +got):\n%s", diff)
	}
}

func TestDefault_unknownPOS(t *testing.T) {
	t.Parallel()

	table, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	if _, err := table.Conjugate("食べる", "no-such-pos"); !errors.Is(err, ErrUnknownPartOfSpeech) {
		t.Fatalf("Conjugate: unexpected error, want: %v, got: %v", ErrUnknownPartOfSpeech, err)
	}
}

func TestDefault_names(t *testing.T) {
	t.Parallel()

	table, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	conj := table.ConjugationNames()
	if diff := cmp.Diff("Unconjugated", conj[0]); diff != "" {
		t.Fatalf("ConjugationNames[0] (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("Conjunctive (~te)", conj[3]); diff != "" {
		t.Fatalf("ConjugationNames[3] (-want, +got):\n%s", diff)
	}

	pos := table.POSNames()
	if diff := cmp.Diff(65, len(pos)); diff != "" {
		t.Fatalf("len(POSNames) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("", pos[0]); diff != "" {
		t.Fatalf("POSNames[0] (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("Ichidan verb", pos[40]); diff != "" {
		t.Fatalf("POSNames[40] (-want, +got):\n%s", diff)
	}
}

func TestConstruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		rule     Rule
		expected string
		ok       bool
	}{
		{
			name:     "strip and append",
			text:     "食べる",
			rule:     Rule{Stem: 1, Okurigana: "た"},
			expected: "食べた",
			ok:       true,
		},
		{
			name:     "zero stem",
			text:     "ある",
			rule:     Rule{Stem: 0, Okurigana: "よ"},
			expected: "あるよ",
			ok:       true,
		},
		{
			name:     "kana euphonic change",
			text:     "くる",
			rule:     Rule{Stem: 1, Okurigana: "ない", EuphonicKana: "こ"},
			expected: "こない",
			ok:       true,
		},
		{
			name:     "kanji ignores kana euphonic change",
			text:     "来る",
			rule:     Rule{Stem: 1, Okurigana: "ない", EuphonicKana: "こ"},
			expected: "来ない",
			ok:       true,
		},
		{
			name:     "kanji euphonic change",
			text:     "為る",
			rule:     Rule{Stem: 1, Okurigana: "ない", EuphonicKanji: "為"},
			expected: "為ない",
			ok:       true,
		},
		{
			name: "stem too long",
			text: "る",
			rule: Rule{Stem: 2, Okurigana: "た"},
			ok:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Construct(test.text, &test.rule)
			if diff := cmp.Diff(test.ok, ok); diff != "" {
				t.Fatalf("Construct ok (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Construct (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	valid := fstest.MapFS{
		"kwpos.csv": {Data: []byte("id\tkw\tdescr\n1\tverb\tverb\n2\tnoun\tnoun\n")},
		"conj.csv":  {Data: []byte("id\tname\n1\tProgressive\n")},
		"conjo.csv": {Data: []byte("pos\tconj\tneg\tfml\tonum\tstem\tokuri\teuphr\teuphk\tpos2\n" +
			"1\t1\tf\tf\t1\t2\tしてる\t\t\t\n")},
	}

	tests := []struct {
		name  string
		patch map[string]string
		err   error
	}{
		{
			name: "valid",
		},
		{
			name:  "conjugation id too large",
			patch: map[string]string{"conj.csv": "id\tname\n16\tToo large\n"},
			err:   ErrInvalidTable,
		},
		{
			name:  "reserved conjugation id",
			patch: map[string]string{"conj.csv": "id\tname\n0\tUnconjugated\n"},
			err:   ErrInvalidTable,
		},
		{
			name: "rule for unknown part-of-speech",
			patch: map[string]string{"conjo.csv": "pos\tconj\tneg\tfml\tonum\tstem\tokuri\teuphr\teuphk\tpos2\n" +
				"9\t1\tf\tf\t1\t2\tしてる\t\t\t\n"},
			err: ErrInvalidTable,
		},
		{
			name: "bad boolean",
			patch: map[string]string{"conjo.csv": "pos\tconj\tneg\tfml\tonum\tstem\tokuri\teuphr\teuphk\tpos2\n" +
				"1\t1\tmaybe\tf\t1\t2\tしてる\t\t\t\n"},
			err: ErrInvalidTable,
		},
		{
			name:  "short record",
			patch: map[string]string{"kwpos.csv": "id\tkw\tdescr\n1\tverb\n"},
			err:   ErrInvalidTable,
		},
		{
			name:  "duplicate part-of-speech",
			patch: map[string]string{"kwpos.csv": "id\tkw\tdescr\n1\tverb\tverb\n1\tnoun\tnoun\n"},
			err:   ErrInvalidTable,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			fsys := fstest.MapFS{}
			for name, f := range valid {
				fsys[name] = f
			}
			for name, data := range test.patch {
				fsys[name] = &fstest.MapFile{Data: []byte(data)}
			}

			table, err := Load(fsys)
			if !errors.Is(err, test.err) {
				t.Fatalf("Load: unexpected error, want: %v, got: %v", test.err, err)
			}
			if err != nil {
				return
			}

			forms, err := table.Conjugate("する", "verb")
			if err != nil {
				t.Fatalf("Conjugate: %v", err)
			}
			want := []Conjugation{{Text: "してる", Conj: 1}}
			if diff := cmp.Diff(want, forms); diff != "" {
				t.Fatalf("Conjugate (-want, +got):\n%s", diff)
			}

			forms, err = table.Conjugate("ほん", "noun")
			if err != nil {
				t.Fatalf("Conjugate: %v", err)
			}
			if diff := cmp.Diff([]Conjugation(nil), forms); diff != "" {
				t.Fatalf("Conjugate (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(fstest.MapFS{
		"kwpos.csv": {Data: []byte("id\tkw\tdescr\n")},
	})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load: unexpected error, want: %v, got: %v", fs.ErrNotExist, err)
	}
}

func TestConjugate_discardsSingleRune(t *testing.T) {
	t.Parallel()

	table, err := Load(fstest.MapFS{
		"kwpos.csv": {Data: []byte("id\tkw\tdescr\n1\tv\tverb\n")},
		"conj.csv":  {Data: []byte("id\tname\n1\tShort\n2\tLong\n")},
		"conjo.csv": {Data: []byte("pos\tconj\tneg\tfml\tonum\tstem\tokuri\teuphr\teuphk\tpos2\n" +
			"1\t1\tf\tf\t1\t1\t\t\t\t\n" +
			"1\t2\tf\tf\t1\t1\tった\t\t\t\n" +
			"1\t2\tf\tf\t2\t1\tちゃった\t\t\t\n" +
			"1\t2\tf\tf\t4\t1\tこない\t\t\t\n")},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	forms, err := table.Conjugate("かう", "v")
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}

	// "か" is dropped for being a single rune and ordinal 4 is never reached
	// because ordinal 3 is missing.
	want := []Conjugation{
		{Text: "かった", Conj: 2},
		{Text: "かちゃった", Conj: 2},
	}
	if diff := cmp.Diff(want, forms); diff != "" {
		t.Fatalf("Conjugate (-want, +got):\n%s", diff)
	}
}
