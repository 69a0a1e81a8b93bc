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
	"math"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/columns"
)

// ResizeState is the column resize gesture. The zero value is idle.
type ResizeState struct {
	Active        bool
	ColumnID      string
	StartX        float64
	OriginalWidth float64
	// lastReported is the width the surface was last told about.
	lastReported float64
}

// ResizeState returns the current gesture state.
func (c *Coordinator) ResizeState() ResizeState { return c.resize }

// ColumnWidths resolves the width of every column in display order.
func (c *Coordinator) ColumnWidths() []float64 {
	c.ensureFresh()
	return columns.Layout(c.db.Columns(), c.sample, columns.LayoutOptions{
		ContentWidth: c.opts.ContentWidth,
		Padding:      c.opts.Padding,
		Measurer:     c.opts.Measurer,
	})
}

// sample returns the first n displayed values of col.
func (c *Coordinator) sample(col *columns.Column, n int) []cells.Value {
	n = min(n, len(c.indices))
	values := make([]cells.Value, 0, n)
	for _, i := range c.indices[:n] {
		r, _ := c.db.RowAt(i)
		values = append(values, r.Cell(col.ID))
	}
	return values
}

// BeginResize starts a resize gesture at x, measured from the grid's
// leading edge. It only starts if the column is resizable and x lies within
// the grip zone ending at the column's trailing boundary.
func (c *Coordinator) BeginResize(columnID string, x float64) bool {
	if c.resize.Active {
		c.EndResize()
	}
	idx := c.db.ColumnIndex(columnID)
	if idx < 0 {
		return false
	}
	col, _ := c.db.ColumnAt(idx)
	if !col.Resizable {
		return false
	}
	widths := c.ColumnWidths()
	edge := columns.TrailingEdges(widths)[idx]
	if x < edge-c.opts.GripWidth || x > edge {
		return false
	}
	c.resize = ResizeState{
		Active:        true,
		ColumnID:      columnID,
		StartX:        x,
		OriginalWidth: widths[idx],
		lastReported:  widths[idx],
	}
	c.log.Debug("begin resize", "column", columnID, "width", widths[idx])
	return true
}

// UpdateResize moves the gesture to x and writes the clamped width to the
// column. live is true when the width moved more than the live update
// threshold since the surface was last told, in which case a LayoutSurface
// is notified.
func (c *Coordinator) UpdateResize(x float64) (width float64, live bool) {
	if !c.resize.Active {
		return 0, false
	}
	col, ok := c.db.Column(c.resize.ColumnID)
	if !ok {
		c.resize = ResizeState{}
		return 0, false
	}
	width = col.SetExplicitWidth(c.resize.OriginalWidth + (x - c.resize.StartX))
	if math.Abs(width-c.resize.lastReported) <= c.opts.LiveUpdateThreshold {
		return width, false
	}
	c.resize.lastReported = width
	c.notifyResized(col.ID, width)
	return width, true
}

// EndResize finishes or cancels the gesture. The state always returns to
// idle. A width not yet reported because of the threshold is reported now.
func (c *Coordinator) EndResize() {
	rs := c.resize
	c.resize = ResizeState{}
	if !rs.Active {
		return
	}
	col, ok := c.db.Column(rs.ColumnID)
	if !ok {
		return
	}
	if w, ok := col.ExplicitWidth(); ok && w != rs.lastReported {
		c.notifyResized(col.ID, w)
	}
	c.log.Debug("end resize", "column", rs.ColumnID)
}

func (c *Coordinator) notifyResized(columnID string, width float64) {
	if ls, ok := c.surface.(LayoutSurface); ok {
		ls.ColumnResized(columnID, width)
	}
}
