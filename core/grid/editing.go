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
)

// EditingCell returns the cell being edited, if any.
func (c *Coordinator) EditingCell() (CellID, bool) {
	if c.editing == nil {
		return CellID{}, false
	}
	return *c.editing, true
}

// BeginEditing makes cell the single editable cell. A previous edit ends
// implicitly. The surface is told about both the old and the new cell. It
// reports false for a cell that does not exist.
func (c *Coordinator) BeginEditing(cell CellID) bool {
	c.ensureFresh()
	if _, ok := c.db.CellValue(cell.RowID, cell.ColumnID); !ok {
		return false
	}
	if c.editing != nil && *c.editing == cell {
		return true
	}
	changed := make([]CellID, 0, 2)
	if c.editing != nil {
		changed = append(changed, *c.editing)
	}
	c.editing = &cell
	changed = append(changed, cell)
	c.log.Debug("begin editing", "row", cell.RowID, "column", cell.ColumnID)
	c.reconcile(CellsChanged{Cells: uniqueCells(changed)})
	return true
}

// EndEditing leaves edit mode and reports the cell that was being edited.
func (c *Coordinator) EndEditing() {
	if c.editing == nil {
		return
	}
	old := *c.editing
	c.editing = nil
	c.reconcile(CellsChanged{Cells: []CellID{old}})
}

// CommitEdit writes v to the cell being edited and ends editing. It
// reports false if nothing is being edited.
func (c *Coordinator) CommitEdit(v cells.Value) bool {
	if c.editing == nil {
		return false
	}
	cell := *c.editing
	c.editing = nil
	old, ok := c.db.CellValue(cell.RowID, cell.ColumnID)
	if !ok {
		return false
	}
	if !cells.Equal(old, v) {
		return c.SetCellValue(cell, v)
	}
	if _, visible := c.DisplayIndex(cell.RowID); visible {
		c.reconcile(CellsChanged{Cells: []CellID{cell}})
	}
	return true
}
