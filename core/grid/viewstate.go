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

package grid

import (
	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/filters"
	"github.com/google/dbgrid/core/tables"
)

// FilterState returns a copy of the active filters.
func (c *Coordinator) FilterState() filters.State { return c.filter.Clone() }

// SortState returns a copy of the active sort, or nil.
func (c *Coordinator) SortState() *tables.SortState {
	if c.sort == nil {
		return nil
	}
	s := *c.sort
	return &s
}

// SetFilterState replaces every filter and the mode at once.
func (c *Coordinator) SetFilterState(fs filters.State) {
	c.filter = fs.Clone()
	if c.filter.Filters == nil {
		c.filter.Filters = map[string]filters.Filter{}
	}
	c.RecomputeDisplayIndices()
}

// SetFilter sets the filter on a column. It reports false, changing
// nothing, if the column does not exist or is not filterable.
func (c *Coordinator) SetFilter(columnID string, f filters.Filter) bool {
	col, ok := c.db.Column(columnID)
	if !ok || !col.Filterable {
		return false
	}
	c.filter.Set(columnID, f)
	c.RecomputeDisplayIndices()
	return true
}

// RemoveFilter drops the filter on a column.
func (c *Coordinator) RemoveFilter(columnID string) bool {
	if !c.filter.Remove(columnID) {
		return false
	}
	c.RecomputeDisplayIndices()
	return true
}

// SetFilterMode changes how filters combine.
func (c *Coordinator) SetFilterMode(m filters.Mode) {
	if c.filter.Mode == m {
		return
	}
	c.filter.Mode = m
	c.RecomputeDisplayIndices()
}

// ClearFilters drops every filter.
func (c *Coordinator) ClearFilters() {
	if !c.filter.HasActiveFilters() {
		return
	}
	c.filter.Clear()
	c.RecomputeDisplayIndices()
}

// SetSort sorts by a column. A nil sort restores storage order. Sorting by
// a missing or unsortable column is refused.
func (c *Coordinator) SetSort(s *tables.SortState) bool {
	if s != nil {
		col, ok := c.db.Column(s.ColumnID)
		if !ok || !col.Sortable {
			return false
		}
		copied := *s
		s = &copied
	}
	c.sort = s
	c.RecomputeDisplayIndices()
	return true
}

// ClearSort restores storage order.
func (c *Coordinator) ClearSort() {
	c.SetSort(nil)
}

// ToggleSort cycles a column through ascending, descending and unsorted, as
// a tap on its header does. Tapping another column starts it ascending.
func (c *Coordinator) ToggleSort(columnID string) bool {
	next := &tables.SortState{ColumnID: columnID, Direction: cells.Ascending}
	if s := c.sort; s != nil && s.ColumnID == columnID {
		if s.Direction == cells.Ascending {
			next.Direction = cells.Descending
		} else {
			next = nil
		}
	}
	if next == nil {
		c.ClearSort()
		return true
	}
	return c.SetSort(next)
}
