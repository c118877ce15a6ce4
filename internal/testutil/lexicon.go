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
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ianlewis/go-jdict/jmdict"
)

// escape returns s escaped for use as XML character data.
func escape(s string) string {
	var b bytes.Buffer
	//nolint:errcheck // writes to a bytes.Buffer do not fail.
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// MakeLexicon creates a test JMdict document. Parts-of-speech that are keys
// of entities are written as entity references and the entities are declared
// in the document's DTD.
func MakeLexicon(entries []*jmdict.Entry, entities map[string]string) []byte {
	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<!DOCTYPE JMdict [\n<!ELEMENT JMdict (entry*)>\n")
	keys := make([]string, 0, len(entities))
	for k := range entities {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "<!ENTITY %s \"%s\">\n", k, entities[k])
	}
	b.WriteString("]>\n<JMdict>\n")

	for _, e := range entries {
		b.WriteString("<entry>\n")
		fmt.Fprintf(&b, "<ent_seq>%d</ent_seq>\n", e.Seq)
		for _, k := range e.Kanji {
			b.WriteString("<k_ele>\n")
			fmt.Fprintf(&b, "<keb>%s</keb>\n", escape(k.Text))
			for _, inf := range k.Info {
				fmt.Fprintf(&b, "<ke_inf>%s</ke_inf>\n", escape(inf))
			}
			for _, pri := range k.Priority {
				fmt.Fprintf(&b, "<ke_pri>%s</ke_pri>\n", escape(pri))
			}
			b.WriteString("</k_ele>\n")
		}
		for _, r := range e.Kana {
			b.WriteString("<r_ele>\n")
			fmt.Fprintf(&b, "<reb>%s</reb>\n", escape(r.Text))
			for _, inf := range r.Info {
				fmt.Fprintf(&b, "<re_inf>%s</re_inf>\n", escape(inf))
			}
			for _, pri := range r.Priority {
				fmt.Fprintf(&b, "<re_pri>%s</re_pri>\n", escape(pri))
			}
			b.WriteString("</r_ele>\n")
		}
		b.WriteString("<sense>\n")
		if e.POS != "" {
			if _, ok := entities[e.POS]; ok {
				fmt.Fprintf(&b, "<pos>&%s;</pos>\n", e.POS)
			} else {
				fmt.Fprintf(&b, "<pos>%s</pos>\n", escape(e.POS))
			}
		}
		for _, g := range e.Gloss {
			fmt.Fprintf(&b, "<gloss>%s</gloss>\n", escape(g))
		}
		b.WriteString("</sense>\n")
		b.WriteString("</entry>\n")
	}
	b.WriteString("</JMdict>\n")
	return b.Bytes()
}

// WriteLexicon writes a test JMdict document to a temporary directory and
// returns its path.
func WriteLexicon(t *testing.T, entries []*jmdict.Entry, entities map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "JMdict_e.xml")
	if err := os.WriteFile(path, MakeLexicon(entries, entities), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
