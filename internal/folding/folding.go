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

// Package folding implements normalization of dictionary queries.
package folding

import (
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Default returns the default query folder. It removes whitespace, folds
// full-width ASCII and half-width katakana to their canonical widths, and
// composes the result to NFC so that combining voiced sound marks match the
// precomposed kana stored in the dictionary.
func Default() transform.Transformer {
	return transform.Chain(
		WhitespaceRemover{},
		width.Fold,
		norm.NFC,
	)
}

// String folds s with t. If t is nil s is returned unchanged. If folding
// fails s is returned unchanged.
func String(t transform.Transformer, s string) string {
	if t == nil {
		return s
	}
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
