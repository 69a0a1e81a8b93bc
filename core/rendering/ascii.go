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

package rendering

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/google/dbgrid/core/grid"
)

// AsciiSurface draws a coordinator's view as a text grid. It implements
// grid.LayoutSurface: reconciled changes only mark lines dirty, and Render
// repaints just those lines.
type AsciiSurface struct {
	coord *grid.Coordinator
	// CellWidth converts layout widths to terminal columns. It should match
	// the coordinator's measurer.
	CellWidth float64

	lines    []string // header, separator, then one line per display row
	widths   []int
	dirtyAll bool
	dirty    map[int]bool

	// Repainted lists the display rows drawn by the last Render.
	Repainted []int
}

const headerLines = 2

// NewAsciiSurface creates a surface for coord and attaches it.
func NewAsciiSurface(coord *grid.Coordinator, cellWidth float64) *AsciiSurface {
	s := &AsciiSurface{coord: coord, CellWidth: cellWidth, dirty: map[int]bool{}}
	coord.Attach(s)
	return s
}

// Reconcile implements grid.Surface.
func (s *AsciiSurface) Reconcile(ch grid.Change) {
	switch ch := ch.(type) {
	case grid.FullReload:
		s.dirtyAll = true
	case grid.RowsChanged:
		s.resizeRows(ch.Count)
		for _, d := range ch.Indices {
			if d < ch.Count {
				s.dirty[d] = true
			}
		}
	case grid.CellsChanged:
		for _, cell := range ch.Cells {
			if d, ok := s.coord.DisplayIndex(cell.RowID); ok {
				s.dirty[d] = true
			}
		}
	}
}

// ColumnResized implements grid.LayoutSurface. Every line depends on the
// column widths, so the whole grid is repainted.
func (s *AsciiSurface) ColumnResized(string, float64) {
	s.dirtyAll = true
}

func (s *AsciiSurface) resizeRows(n int) {
	want := headerLines + n
	if len(s.lines) > want {
		s.lines = s.lines[:want]
	}
	for len(s.lines) < want {
		s.lines = append(s.lines, "")
	}
}

// Render returns the grid, repainting dirty lines first.
func (s *AsciiSurface) Render() string {
	s.Repainted = s.Repainted[:0]
	// Picks up a database mutated behind the coordinator as a full reload.
	s.coord.NumberOfDisplayRows()
	if s.dirtyAll || s.lines == nil || len(s.widths) != s.coord.Database().ColumnCount() {
		s.layout()
		s.resizeRows(s.coord.NumberOfDisplayRows())
		s.lines[0], s.lines[1] = s.header()
		for d := 0; d < s.coord.NumberOfDisplayRows(); d++ {
			s.paintRow(d)
		}
		s.dirtyAll = false
		clear(s.dirty)
		return strings.Join(s.lines, "\n")
	}
	s.lines[0], s.lines[1] = s.header()
	for d := 0; d < len(s.lines)-headerLines; d++ {
		if s.dirty[d] {
			s.paintRow(d)
		}
	}
	clear(s.dirty)
	return strings.Join(s.lines, "\n")
}

func (s *AsciiSurface) layout() {
	cw := s.CellWidth
	if cw <= 0 {
		cw = 1
	}
	s.widths = s.widths[:0]
	for _, w := range s.coord.ColumnWidths() {
		s.widths = append(s.widths, max(1, int(math.Round(w/cw))))
	}
}

func (s *AsciiSurface) header() (string, string) {
	var names, rule []string
	for i, col := range s.coord.Database().Columns() {
		name := col.Name
		if srt := s.coord.SortState(); srt != nil && srt.ColumnID == col.ID {
			name += " " + srt.Direction.String()
		}
		names = append(names, fit(name, s.widths[i]))
		rule = append(rule, strings.Repeat("-", s.widths[i]))
	}
	return "  " + strings.Join(names, " | "), "  " + strings.Join(rule, "-+-")
}

func (s *AsciiSurface) paintRow(d int) {
	row, ok := s.coord.RowAt(d)
	if !ok {
		return
	}
	editing, isEditing := s.coord.EditingCell()
	var parts []string
	for i, col := range s.coord.Database().Columns() {
		text := col.DisplayText(row.Cell(col.ID))
		if isEditing && editing == (grid.CellID{RowID: row.ID, ColumnID: col.ID}) {
			text = "[" + text + "]"
		}
		parts = append(parts, fit(text, s.widths[i]))
	}
	marker := "  "
	if s.coord.IsSelected(row.ID) {
		marker = "> "
	}
	s.lines[headerLines+d] = strings.TrimRight(marker+strings.Join(parts, " | "), " ")
	s.Repainted = append(s.Repainted, d)
}

// fit truncates or pads text to exactly w terminal columns.
func fit(text string, w int) string {
	if runewidth.StringWidth(text) > w {
		text = runewidth.Truncate(text, w, "…")
	}
	return runewidth.FillRight(text, w)
}
