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

// Package grid coordinates a database with a virtualized, editable grid. The
// Coordinator owns the derived display view (filtered and sorted display
// indices), the selection, the cell being edited and the column resize
// gesture, and tells a Surface the narrowest thing to repaint after each
// change.
//
// A Coordinator is not safe for concurrent use. All calls are expected on
// one logical thread; hosts that serve several goroutines serialize access.
package grid

import (
	"log/slog"
	"slices"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/columns"
	"github.com/google/dbgrid/core/filters"
	"github.com/google/dbgrid/core/tables"
)

// Coordinator keeps a Database and a Surface in sync.
type Coordinator struct {
	db       *tables.Database
	opts     Options
	log      *slog.Logger
	pipeline *tables.Pipeline

	filter filters.State
	sort   *tables.SortState

	// indices maps display index to storage index. rowIDs holds the row id
	// at each display index and displayOf is its inverse.
	indices   []int
	rowIDs    []string
	displayOf map[string]int
	version   uint64

	selection map[string]struct{}
	editing   *CellID
	resize    ResizeState

	surface Surface
}

// New creates a coordinator over db and computes the initial view.
func New(db *tables.Database, opts Options) *Coordinator {
	opts = opts.withDefaults()
	c := &Coordinator{
		db:        db,
		opts:      opts,
		log:       opts.Logger,
		pipeline:  tables.NewPipeline(opts.Language),
		filter:    filters.NewState(filters.And),
		selection: map[string]struct{}{},
	}
	c.recompute()
	return c
}

// Attach connects a surface and asks it for a full reload. A nil surface
// detaches.
func (c *Coordinator) Attach(s Surface) {
	c.surface = s
	c.reconcile(FullReload{})
}

// Database returns the underlying database. Callers that mutate it
// directly must call RecomputeDisplayIndices afterwards.
func (c *Coordinator) Database() *tables.Database { return c.db }

// Options returns the effective options.
func (c *Coordinator) Options() Options { return c.opts }

func (c *Coordinator) reconcile(ch Change) {
	if c.surface == nil || ch == nil {
		return
	}
	c.log.Debug("reconcile", "change", ch.String())
	c.surface.Reconcile(ch)
}

// recompute replaces the cached display indices and returns the previous
// row ids.
func (c *Coordinator) recompute() []string {
	prev := c.rowIDs
	c.indices = c.pipeline.Compute(c.db, c.filter, c.sort)
	c.rowIDs = make([]string, len(c.indices))
	c.displayOf = make(map[string]int, len(c.indices))
	for d, i := range c.indices {
		r, _ := c.db.RowAt(i)
		c.rowIDs[d] = r.ID
		c.displayOf[r.ID] = d
	}
	c.version = c.db.Version()
	return prev
}

// RecomputeDisplayIndices recomputes the display view and tells the
// surface what changed. It must be called after any mutation of the
// database made outside the coordinator. If the database changed since the
// last computation the surface gets a full reload, as the coordinator
// cannot tell which cells were touched; otherwise only the display rows now
// showing a different row are reported.
func (c *Coordinator) RecomputeDisplayIndices() {
	external := c.version != c.db.Version()
	prev := c.recompute()
	c.dropStaleState()
	if external {
		c.reconcile(FullReload{})
		return
	}
	if ch := diffRows(prev, c.rowIDs); ch != nil {
		c.reconcile(ch)
	}
}

// refresh recomputes after a mutation the coordinator made itself, forcing
// a full reload.
func (c *Coordinator) refresh() {
	c.recompute()
	c.dropStaleState()
	c.reconcile(FullReload{})
}

// ensureFresh recomputes if the database changed behind the coordinator's
// back, so the cached view is never read stale.
func (c *Coordinator) ensureFresh() {
	if c.version == c.db.Version() {
		return
	}
	c.log.Warn("database mutated without recomputing display indices",
		"cached_version", c.version, "version", c.db.Version())
	c.RecomputeDisplayIndices()
}

// dropStaleState forgets selected rows and the editing cell if they no
// longer exist, and cancels a resize of a deleted column.
func (c *Coordinator) dropStaleState() {
	for id := range c.selection {
		if _, ok := c.db.Row(id); !ok {
			delete(c.selection, id)
		}
	}
	if e := c.editing; e != nil {
		if _, ok := c.db.Row(e.RowID); !ok || !c.db.HasColumn(e.ColumnID) {
			c.editing = nil
		}
	}
	if c.resize.Active && !c.db.HasColumn(c.resize.ColumnID) {
		c.resize = ResizeState{}
	}
}

// diffRows reports the display indices whose row id differs, or nil if the
// views are identical.
func diffRows(prev, next []string) Change {
	n := max(len(prev), len(next))
	var changed []int
	for i := 0; i < n; i++ {
		if i >= len(prev) || i >= len(next) || prev[i] != next[i] {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}
	return RowsChanged{Indices: changed, Count: len(next)}
}

// NumberOfDisplayRows is the number of rows in the filtered view.
func (c *Coordinator) NumberOfDisplayRows() int {
	c.ensureFresh()
	return len(c.indices)
}

// RowAt returns the row at a display index. Out of range yields no row.
func (c *Coordinator) RowAt(displayIndex int) (*tables.Row, bool) {
	i, ok := c.StorageIndex(displayIndex)
	if !ok {
		return nil, false
	}
	return c.db.RowAt(i)
}

// StorageIndex maps a display index to its storage index.
func (c *Coordinator) StorageIndex(displayIndex int) (int, bool) {
	c.ensureFresh()
	if displayIndex < 0 || displayIndex >= len(c.indices) {
		return 0, false
	}
	return c.indices[displayIndex], true
}

// DisplayIndex returns where a row is shown, if it passes the filters.
func (c *Coordinator) DisplayIndex(rowID string) (int, bool) {
	c.ensureFresh()
	d, ok := c.displayOf[rowID]
	return d, ok
}

// DisplayIndices returns a copy of the cached display-to-storage mapping.
func (c *Coordinator) DisplayIndices() []int {
	c.ensureFresh()
	return slices.Clone(c.indices)
}

// DisplayRowIDs returns the row ids in display order.
func (c *Coordinator) DisplayRowIDs() []string {
	c.ensureFresh()
	return slices.Clone(c.rowIDs)
}

// CellValue reads a cell.
func (c *Coordinator) CellValue(rowID, columnID string) (cells.Value, bool) {
	return c.db.CellValue(rowID, columnID)
}

// SetCellValue writes a cell. If the column drives the current filter or
// sort the view is recomputed and moved rows are reported; the cell itself
// is always reported as changed when it remains visible.
func (c *Coordinator) SetCellValue(cell CellID, v cells.Value) bool {
	c.ensureFresh()
	old, ok := c.db.CellValue(cell.RowID, cell.ColumnID)
	if !ok {
		return false
	}
	if cells.Equal(old, v) {
		return true
	}
	c.db.SetCellValue(cell.RowID, cell.ColumnID, v)
	// Our own write; the cached view stays valid unless the column feeds it.
	c.version = c.db.Version()
	if c.affectsView(cell.ColumnID) {
		prev := c.recompute()
		if ch := diffRows(prev, c.rowIDs); ch != nil {
			c.reconcile(ch)
		}
	}
	if _, visible := c.displayOf[cell.RowID]; visible {
		c.reconcile(CellsChanged{Cells: []CellID{cell}})
	}
	return true
}

func (c *Coordinator) affectsView(columnID string) bool {
	if _, ok := c.filter.Get(columnID); ok {
		return true
	}
	return c.sort != nil && c.sort.ColumnID == columnID
}

// AddRow appends a row built from values and reloads the surface.
func (c *Coordinator) AddRow(values map[string]cells.Value) (*tables.Row, error) {
	c.ensureFresh()
	r := tables.NewRow(tables.NewID(), values)
	if err := c.db.AddRow(r); err != nil {
		return nil, err
	}
	c.log.Debug("row added", "row", r.ID)
	c.refresh()
	return r, nil
}

// RemoveRow deletes a row, dropping it from the selection and ending an
// edit on it.
func (c *Coordinator) RemoveRow(rowID string) bool {
	c.ensureFresh()
	if !c.db.RemoveRow(rowID) {
		return false
	}
	c.log.Debug("row removed", "row", rowID)
	c.refresh()
	return true
}

// AddColumn appends a column and reloads the surface.
func (c *Coordinator) AddColumn(col *columns.Column) error {
	c.ensureFresh()
	if err := c.db.AddColumn(col); err != nil {
		return err
	}
	c.log.Debug("column added", "column", col.ID)
	c.refresh()
	return nil
}

// RemoveColumn deletes a column. Filters and sort on it become inert.
func (c *Coordinator) RemoveColumn(columnID string) bool {
	c.ensureFresh()
	if !c.db.RemoveColumn(columnID) {
		return false
	}
	c.log.Debug("column removed", "column", columnID)
	c.refresh()
	return true
}

// MoveColumn changes a column's display position and reloads the surface.
func (c *Coordinator) MoveColumn(columnID string, to int) bool {
	c.ensureFresh()
	if !c.db.MoveColumn(columnID, to) {
		return false
	}
	c.refresh()
	return true
}

// CellKeys returns the identity of every visual cell in display order.
func (c *Coordinator) CellKeys() []CellKey {
	c.ensureFresh()
	ncols := c.db.ColumnCount()
	keys := make([]CellKey, 0, len(c.rowIDs)*ncols)
	for d, id := range c.rowIDs {
		for j := 0; j < ncols; j++ {
			keys = append(keys, CellKey{DisplayRow: d, Column: j, RowID: id})
		}
	}
	return keys
}

// CellKey returns the identity of the visual cell at a display row and
// column position.
func (c *Coordinator) CellKey(displayRow, column int) (CellKey, bool) {
	c.ensureFresh()
	if displayRow < 0 || displayRow >= len(c.rowIDs) || column < 0 || column >= c.db.ColumnCount() {
		return CellKey{}, false
	}
	return CellKey{DisplayRow: displayRow, Column: column, RowID: c.rowIDs[displayRow]}, true
}

// rowCells lists every cell of the given rows that is currently displayed.
func (c *Coordinator) rowCells(rowIDs ...string) []CellID {
	cols := c.db.Columns()
	var out []CellID
	for _, id := range rowIDs {
		if _, ok := c.displayOf[id]; !ok {
			continue
		}
		for _, col := range cols {
			out = append(out, CellID{RowID: id, ColumnID: col.ID})
		}
	}
	return out
}
