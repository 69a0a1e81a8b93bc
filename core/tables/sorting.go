/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tables

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/filters"
)

// SortState orders the display by one column. A nil *SortState means
// storage order.
type SortState struct {
	ColumnID  string
	Direction cells.Direction
}

func (s *SortState) String() string {
	if s == nil {
		return "unsorted"
	}
	return fmt.Sprintf("%s:%s", s.ColumnID, s.Direction)
}

// Pipeline computes display indices: the storage indices of the rows that
// pass the filter state, stably sorted by the sort state. A Pipeline is not
// safe for concurrent use.
type Pipeline struct {
	comparer *cells.Comparer
}

// NewPipeline returns a pipeline collating text for tag.
func NewPipeline(tag language.Tag) *Pipeline {
	return &Pipeline{comparer: cells.NewComparer(tag)}
}

// ComputeDisplayIndices runs a pipeline using the root collation.
func ComputeDisplayIndices(db *Database, fs filters.State, s *SortState) []int {
	return NewPipeline(language.Und).Compute(db, fs, s)
}

// Compute returns the display indices for db. Filtering always happens
// before sorting. A sort on a column that no longer exists is ignored.
func (p *Pipeline) Compute(db *Database, fs filters.State, s *SortState) []int {
	indices := make([]int, 0, len(db.rows))
	if fs.HasActiveFilters() {
		for i, r := range db.rows {
			if fs.Evaluate(r, db) {
				indices = append(indices, i)
			}
		}
	} else {
		for i := range db.rows {
			indices = append(indices, i)
		}
	}

	if s == nil || !db.HasColumn(s.ColumnID) {
		return indices
	}
	keys := make([]cells.Value, len(indices))
	for i, idx := range indices {
		keys[i] = db.rows[idx].Cell(s.ColumnID)
	}
	sort.Stable(&byKey{indices: indices, keys: keys, cmp: p.comparer, dir: s.Direction})
	return indices
}

// byKey sorts indices and their precomputed sort keys together.
type byKey struct {
	indices []int
	keys    []cells.Value
	cmp     *cells.Comparer
	dir     cells.Direction
}

func (b *byKey) Len() int { return len(b.indices) }

func (b *byKey) Less(i, j int) bool { return b.cmp.Less(b.keys[i], b.keys[j], b.dir) }

func (b *byKey) Swap(i, j int) {
	b.indices[i], b.indices[j] = b.indices[j], b.indices[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
