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

package views

import (
	"math"
	"net/url"

	"github.com/google/safehtml"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/columns"
	"github.com/google/dbgrid/core/filters"
	"github.com/google/dbgrid/core/grid"
	"github.com/google/dbgrid/core/query"
)

// TableViewModel contains the grid formatted for template consumption
type TableViewModel struct {
	Title      string
	Headers    []HeaderInfo
	Rows       []RowViewModel
	CurrentURL safehtml.URL // Current URL for building links

	FilterMode    string       // "and" or "or"
	ToggleModeURL safehtml.URL // URL switching the filter mode
	Errors        []string     // Ignored URL parameters

	// Pagination info
	TotalRows     int          // Rows in the database
	MatchingRows  int          // Rows passing the filters
	DisplayedRows int          // Rows actually rendered
	HasMoreRows   bool         // True if more rows match than are rendered
	CurrentLimit  int          // Current row limit
	ShowAllURL    safehtml.URL // URL lifting the limit
}

// HeaderInfo describes one column header
type HeaderInfo struct {
	ID            string
	Name          string
	Kind          string
	Width         int
	Sortable      bool
	Resizable     bool
	SortIndicator string       // "▲", "▼" or ""
	SortURL       safehtml.URL // URL cycling the sort on this column
	Filter        string       // Active filter as written in the URL
	HasFilter     bool
	ClearURL      safehtml.URL // URL removing the filter
	Operators     []string     // Filter operations offered for the column
}

// RowViewModel is one displayed row
type RowViewModel struct {
	ID        string
	Index     int // Display index
	Selected  bool
	SelectURL safehtml.URL // URL toggling the row's selection
	Cells     []CellViewModel
}

// CellViewModel is one rendered cell
type CellViewModel struct {
	ColumnID string
	Text     string
	Empty    bool
	Editing  bool
	Checked  bool
	Colors   []string     // Option colors for select cells
	Link     safehtml.URL // Set for url, email and phone cells
	HasLink  bool
}

// BuildViewModel renders the coordinator's current view. At most q.Limit
// rows are included, starting at display index 0.
func BuildViewModel(coord *grid.Coordinator, q *query.Query, title string) TableViewModel {
	db := coord.Database()
	cols := db.Columns()
	widths := coord.ColumnWidths()
	sort := coord.SortState()
	fs := coord.FilterState()

	vm := TableViewModel{
		Title:        title,
		CurrentURL:   q.ToSafeURL(),
		FilterMode:   fs.Mode.String(),
		TotalRows:    db.RowCount(),
		MatchingRows: coord.NumberOfDisplayRows(),
		CurrentLimit: q.Limit,
		ShowAllURL:   q.WithLimit(0),
	}
	if fs.Mode == filters.And {
		vm.ToggleModeURL = q.WithMode(filters.Or)
	} else {
		vm.ToggleModeURL = q.WithMode(filters.And)
	}
	for _, err := range q.Errors {
		vm.Errors = append(vm.Errors, err.Error())
	}

	for i, col := range cols {
		h := HeaderInfo{
			ID:        col.ID,
			Name:      col.Name,
			Kind:      col.Type.String(),
			Width:     int(math.Round(widths[i])),
			Sortable:  col.Sortable,
			Resizable: col.Resizable,
			SortURL:   q.WithSortToggled(col.ID),
			ClearURL:  q.WithoutFilter(col.ID),
		}
		if col.Filterable {
			h.Operators = filters.ForKind(col.Type)
		}
		if sort != nil && sort.ColumnID == col.ID {
			h.SortIndicator = "▲"
			if sort.Direction == cells.Descending {
				h.SortIndicator = "▼"
			}
		}
		if raw, ok := q.Filters[col.ID]; ok {
			if _, active := fs.Get(col.ID); active {
				h.Filter, h.HasFilter = raw, true
			}
		}
		vm.Headers = append(vm.Headers, h)
	}

	n := vm.MatchingRows
	if q.Limit > 0 && q.Limit < n {
		n = q.Limit
	}
	editing, isEditing := coord.EditingCell()
	multi := coord.Options().AllowsMultipleSelection
	for d := 0; d < n; d++ {
		row, _ := coord.RowAt(d)
		rvm := RowViewModel{
			ID:        row.ID,
			Index:     d,
			Selected:  coord.IsSelected(row.ID),
			SelectURL: q.WithSelectionToggled(row.ID, multi),
		}
		for _, col := range cols {
			v := row.Cell(col.ID)
			cell := buildCell(col, v)
			cell.Editing = isEditing && editing == grid.CellID{RowID: row.ID, ColumnID: col.ID}
			rvm.Cells = append(rvm.Cells, cell)
		}
		vm.Rows = append(vm.Rows, rvm)
	}
	vm.DisplayedRows = n
	vm.HasMoreRows = n < vm.MatchingRows
	return vm
}

func buildCell(col *columns.Column, v cells.Value) CellViewModel {
	cell := CellViewModel{
		ColumnID: col.ID,
		Text:     col.DisplayText(v),
		Empty:    v.IsEmpty(),
	}
	if b, ok := v.AsCheckbox(); ok {
		cell.Checked = b
	}
	for _, id := range v.OptionIDs() {
		if opt, ok := col.Option(id); ok {
			cell.Colors = append(cell.Colors, string(opt.Color))
		}
	}
	if v.IsEmpty() {
		return cell
	}
	switch v.Kind() {
	case cells.KindURL:
		cell.Link, cell.HasLink = safehtml.URLSanitized(v.Text()), true
	case cells.KindEmail:
		cell.Link, cell.HasLink = safehtml.URLSanitized((&url.URL{Scheme: "mailto", Opaque: v.Text()}).String()), true
	case cells.KindPhone:
		cell.Link, cell.HasLink = safehtml.URLSanitized("tel:"+v.Text()), true
	}
	return cell
}
