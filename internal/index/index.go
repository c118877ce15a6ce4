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

// Package index implements a sorted index of keys supporting prefix search.
package index

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Index is a generic sorted array index ordered by the values' string keys.
type Index[V fmt.Stringer] struct {
	index []V
}

// NewIndex creates an index from the given slice. Keys are ordered bytewise,
// which for UTF-8 text is the same as ordering by code point.
func NewIndex[V fmt.Stringer](values []V) *Index[V] {
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, func(a, b V) int {
		return strings.Compare(a.String(), b.String())
	})

	return &Index[V]{
		index: sorted,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}

// Prefix returns the values whose key starts with prefix in key order.
func (idx *Index[V]) Prefix(prefix string) iter.Seq[V] {
	return func(yield func(V) bool) {
		i := sort.Search(len(idx.index), func(i int) bool {
			return idx.index[i].String() >= prefix
		})
		for ; i < len(idx.index) && strings.HasPrefix(idx.index[i].String(), prefix); i++ {
			if !yield(idx.index[i]) {
				return
			}
		}
	}
}
