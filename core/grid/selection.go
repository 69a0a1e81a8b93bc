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
	"slices"
)

// ToggleSelection flips a row's membership in the selection. With single
// selection, selecting a new row first clears the others. The cells of
// every row whose state changed are reported.
func (c *Coordinator) ToggleSelection(rowID string) bool {
	c.ensureFresh()
	if _, ok := c.db.Row(rowID); !ok {
		return false
	}
	var touched []string
	_, selected := c.selection[rowID]
	if !c.opts.AllowsMultipleSelection && !selected {
		for id := range c.selection {
			touched = append(touched, id)
			delete(c.selection, id)
		}
	}
	if selected {
		delete(c.selection, rowID)
	} else {
		c.selection[rowID] = struct{}{}
	}
	touched = append(touched, rowID)
	c.reconcileRows(touched)
	return true
}

// IsSelected reports whether a row is selected.
func (c *Coordinator) IsSelected(rowID string) bool {
	_, ok := c.selection[rowID]
	return ok
}

// Selection returns the selected row ids: displayed rows in display order,
// followed by selected rows hidden by filters in storage order.
func (c *Coordinator) Selection() []string {
	c.ensureFresh()
	out := make([]string, 0, len(c.selection))
	var hidden []string
	for id := range c.selection {
		if _, ok := c.displayOf[id]; ok {
			out = append(out, id)
		} else {
			hidden = append(hidden, id)
		}
	}
	slices.SortFunc(out, func(a, b string) int { return c.displayOf[a] - c.displayOf[b] })
	slices.SortFunc(hidden, func(a, b string) int { return c.db.RowIndex(a) - c.db.RowIndex(b) })
	return append(out, hidden...)
}

// ClearSelection deselects every row.
func (c *Coordinator) ClearSelection() {
	c.ensureFresh()
	if len(c.selection) == 0 {
		return
	}
	touched := make([]string, 0, len(c.selection))
	for id := range c.selection {
		touched = append(touched, id)
	}
	clear(c.selection)
	c.reconcileRows(touched)
}

// SelectAll selects every displayed row. It does nothing with single
// selection.
func (c *Coordinator) SelectAll() bool {
	c.ensureFresh()
	if !c.opts.AllowsMultipleSelection {
		return false
	}
	var touched []string
	for _, id := range c.rowIDs {
		if _, ok := c.selection[id]; !ok {
			c.selection[id] = struct{}{}
			touched = append(touched, id)
		}
	}
	c.reconcileRows(touched)
	return true
}

// reconcileRows reports the displayed cells of rows, in display order.
func (c *Coordinator) reconcileRows(rowIDs []string) {
	visible := slices.DeleteFunc(rowIDs, func(id string) bool {
		_, ok := c.displayOf[id]
		return !ok
	})
	slices.SortFunc(visible, func(a, b string) int { return c.displayOf[a] - c.displayOf[b] })
	if ids := c.rowCells(visible...); len(ids) > 0 {
		c.reconcile(CellsChanged{Cells: ids})
	}
}

// SetSelection replaces the selection with rowIDs, ignoring ids that do not
// exist. With single selection only the first existing id is kept.
func (c *Coordinator) SetSelection(rowIDs []string) {
	c.ensureFresh()
	next := map[string]struct{}{}
	for _, id := range rowIDs {
		if _, ok := c.db.Row(id); !ok {
			continue
		}
		next[id] = struct{}{}
		if !c.opts.AllowsMultipleSelection {
			break
		}
	}
	var touched []string
	for id := range c.selection {
		if _, ok := next[id]; !ok {
			touched = append(touched, id)
		}
	}
	for id := range next {
		if _, ok := c.selection[id]; !ok {
			touched = append(touched, id)
		}
	}
	c.selection = next
	c.reconcileRows(touched)
}
