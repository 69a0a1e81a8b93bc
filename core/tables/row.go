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
	"maps"
	"slices"

	"github.com/google/dbgrid/core/cells"
)

// Row is an identified mapping from column id to cell value. Columns
// without an entry hold the empty value.
type Row struct {
	ID    string
	cells map[string]cells.Value
}

// NewRow creates a row holding a copy of values.
func NewRow(id string, values map[string]cells.Value) *Row {
	r := &Row{ID: id, cells: make(map[string]cells.Value, len(values))}
	for columnID, v := range values {
		r.Set(columnID, v)
	}
	return r
}

// Cell returns the value stored for columnID, or the empty value.
func (r *Row) Cell(columnID string) cells.Value {
	return r.cells[columnID]
}

// Has reports whether the row stores a value for columnID.
func (r *Row) Has(columnID string) bool {
	_, ok := r.cells[columnID]
	return ok
}

// Set replaces the value for columnID. Setting the Empty variant removes
// the entry.
func (r *Row) Set(columnID string, v cells.Value) {
	if v.Kind() == cells.KindEmpty {
		delete(r.cells, columnID)
		return
	}
	if r.cells == nil {
		r.cells = map[string]cells.Value{}
	}
	r.cells[columnID] = v
}

// Clear removes the entry for columnID and reports whether there was one.
func (r *Row) Clear(columnID string) bool {
	if _, ok := r.cells[columnID]; !ok {
		return false
	}
	delete(r.cells, columnID)
	return true
}

// ColumnIDs returns the ids of the stored entries in ascending order.
func (r *Row) ColumnIDs() []string {
	return slices.Sorted(maps.Keys(r.cells))
}

// Values returns a copy of the stored entries.
func (r *Row) Values() map[string]cells.Value {
	return maps.Clone(r.cells)
}
