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

package filters

import (
	"maps"
	"slices"

	"github.com/google/dbgrid/core/cells"
)

// Mode combines the results of the active filters.
type Mode int

const (
	And Mode = iota
	Or
)

func (m Mode) String() string {
	if m == Or {
		return "or"
	}
	return "and"
}

// Row is the view of a row a filter state needs: its cell per column id,
// with missing cells reported as empty.
type Row interface {
	Cell(columnID string) cells.Value
}

// Schema reports which columns currently exist.
type Schema interface {
	HasColumn(columnID string) bool
}

// State holds at most one active filter per column id and the mode used to
// combine them.
type State struct {
	Filters map[string]Filter
	Mode    Mode
}

// NewState returns an empty state combining with mode.
func NewState(mode Mode) State {
	return State{Filters: map[string]Filter{}, Mode: mode}
}

// HasActiveFilters reports whether any filter is set.
func (s State) HasActiveFilters() bool { return len(s.Filters) > 0 }

// Set replaces the filter on columnID.
func (s *State) Set(columnID string, f Filter) {
	if s.Filters == nil {
		s.Filters = map[string]Filter{}
	}
	s.Filters[columnID] = f
}

// Remove drops the filter on columnID and reports whether one was set.
func (s *State) Remove(columnID string) bool {
	if _, ok := s.Filters[columnID]; !ok {
		return false
	}
	delete(s.Filters, columnID)
	return true
}

// Clear drops every filter, keeping the mode.
func (s *State) Clear() { s.Filters = map[string]Filter{} }

// Get returns the filter on columnID.
func (s State) Get(columnID string) (Filter, bool) {
	f, ok := s.Filters[columnID]
	return f, ok
}

// ColumnIDs returns the filtered column ids in ascending order.
func (s State) ColumnIDs() []string {
	return slices.Sorted(maps.Keys(s.Filters))
}

// Clone returns a copy that does not share the filter map.
func (s State) Clone() State {
	return State{Filters: maps.Clone(s.Filters), Mode: s.Mode}
}

// Evaluate reports whether row passes. An empty state passes every row.
// Filters on columns the schema no longer has are ignored; if every filter
// is ignored the row passes. A nil schema accepts every column id.
func (s State) Evaluate(row Row, schema Schema) bool {
	if !s.HasActiveFilters() {
		return true
	}
	results := make([]bool, 0, len(s.Filters))
	for columnID, f := range s.Filters {
		if schema != nil && !schema.HasColumn(columnID) {
			continue
		}
		results = append(results, f.Evaluate(row.Cell(columnID)))
	}
	if len(results) == 0 {
		return true
	}
	if s.Mode == Or {
		return slices.Contains(results, true)
	}
	return !slices.Contains(results, false)
}
