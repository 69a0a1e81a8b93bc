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
	"fmt"
	"slices"
)

// CellID identifies one cell by row and column id. It is the key for the
// editing cell and for cell-scoped reconciliation.
type CellID struct {
	RowID    string
	ColumnID string
}

func (c CellID) String() string { return c.RowID + "/" + c.ColumnID }

// CellKey is the identity a rendering surface gives a visual cell. RowID is
// part of the key so that a row moving to another display index under a new
// sort is a change even though its content is the same.
type CellKey struct {
	DisplayRow int
	Column     int
	RowID      string
}

// Change tells a surface what to repaint. The variants are FullReload,
// RowsChanged and CellsChanged; a surface applies the one it is given.
type Change interface {
	fmt.Stringer
	isChange()
}

// FullReload means structure or data changed in a way that invalidates
// everything: a column was added or removed, or the row set changed.
type FullReload struct{}

// RowsChanged means the rows at Indices (display indices) now show
// different rows. Count is the new number of display rows; indices at or
// beyond it were removed from the view.
type RowsChanged struct {
	Indices []int
	Count   int
}

// CellsChanged means the value, editing or selection state of Cells
// changed. Nothing else needs repainting.
type CellsChanged struct {
	Cells []CellID
}

func (FullReload) isChange()   {}
func (RowsChanged) isChange()  {}
func (CellsChanged) isChange() {}

func (FullReload) String() string { return "full-reload" }

func (r RowsChanged) String() string {
	return fmt.Sprintf("rows-changed(%v, count=%d)", r.Indices, r.Count)
}

func (c CellsChanged) String() string {
	return fmt.Sprintf("cells-changed(%v)", c.Cells)
}

// Surface is a rendering surface driven by a Coordinator.
type Surface interface {
	Reconcile(Change)
}

// LayoutSurface is implemented by surfaces that want live column widths
// while a resize gesture is in progress.
type LayoutSurface interface {
	Surface
	ColumnResized(columnID string, width float64)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(Change)

func (f SurfaceFunc) Reconcile(c Change) { f(c) }

// Recorder is a Surface that keeps every change it receives. It is useful
// headless and in tests.
type Recorder struct {
	Changes []Change
	Resizes []float64
}

func (r *Recorder) Reconcile(c Change) { r.Changes = append(r.Changes, c) }

func (r *Recorder) ColumnResized(_ string, width float64) {
	r.Resizes = append(r.Resizes, width)
}

// Last returns the most recent change, or nil.
func (r *Recorder) Last() Change {
	if len(r.Changes) == 0 {
		return nil
	}
	return r.Changes[len(r.Changes)-1]
}

// Reset forgets recorded changes.
func (r *Recorder) Reset() {
	r.Changes = nil
	r.Resizes = nil
}

// uniqueCells drops duplicates, keeping first occurrences in order.
func uniqueCells(ids []CellID) []CellID {
	out := make([]CellID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
