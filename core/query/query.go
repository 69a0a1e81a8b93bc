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

package query

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/safehtml"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/filters"
	"github.com/google/dbgrid/core/tables"
)

var (
	// ErrUnknownColumn is reported for a parameter naming a column the
	// database does not have.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrInvalidFilter is reported for a filter that cannot be parsed.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrNotSortable is reported for a sort on a column that refuses sorting.
	ErrNotSortable = errors.New("column is not sortable")
)

// Query represents the parsed state of a grid view URL
type Query struct {
	// Base path (e.g., "/")
	Path string

	SortColumn    string          // Column to sort by, "" for storage order
	SortDirection cells.Direction // Direction of SortColumn
	Mode          filters.Mode    // How filters combine
	Filters       map[string]string
	ColumnWidths  map[string]int // Column widths set by the user (columnID -> width)
	Selected      []string       // Selected row ids
	Limit         int            // Number of rows to display (0 = show all)

	// Errors collects parameters that were malformed. They are ignored.
	Errors []error
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:         u.Path,
		Filters:      make(map[string]string),
		ColumnWidths: make(map[string]int),
		Limit:        50,
	}

	q := u.Query()

	// Extract sort parameter (format: column:asc|desc)
	if sortStr := q.Get("sort"); sortStr != "" {
		col, dir, _ := strings.Cut(sortStr, ":")
		switch dir {
		case "", "asc":
			state.SortColumn, state.SortDirection = col, cells.Ascending
		case "desc":
			state.SortColumn, state.SortDirection = col, cells.Descending
		default:
			state.Errors = append(state.Errors, fmt.Errorf("sort %q: unknown direction %q", sortStr, dir))
		}
	}

	switch mode := q.Get("mode"); mode {
	case "", "and":
		state.Mode = filters.And
	case "or":
		state.Mode = filters.Or
	default:
		state.Errors = append(state.Errors, fmt.Errorf("unknown filter mode %q", mode))
	}

	// Extract widths parameter (format: col1:120,col2:80)
	if widthsStr := q.Get("widths"); widthsStr != "" {
		for _, part := range strings.Split(widthsStr, ",") {
			col, widthStr, ok := strings.Cut(part, ":")
			width, err := strconv.Atoi(widthStr)
			if !ok || err != nil || width <= 0 {
				state.Errors = append(state.Errors, fmt.Errorf("width %q: not column:pixels", part))
				continue
			}
			state.ColumnWidths[col] = width
		}
	}

	if selectedStr := q.Get("selected"); selectedStr != "" {
		state.Selected = strings.Split(selectedStr, ",")
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 {
			state.Limit = limit
		}
	}

	// Extract filter parameters (format: filter:columnID=op:operand)
	for key, values := range q {
		if strings.HasPrefix(key, "filter:") && len(values) > 0 && values[0] != "" {
			state.Filters[strings.TrimPrefix(key, "filter:")] = values[0]
		}
	}

	return state
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	return &Query{
		Path:          s.Path,
		SortColumn:    s.SortColumn,
		SortDirection: s.SortDirection,
		Mode:          s.Mode,
		Filters:       maps.Clone(s.Filters),
		ColumnWidths:  maps.Clone(s.ColumnWidths),
		Selected:      slices.Clone(s.Selected),
		Limit:         s.Limit,
	}
}

// Sort returns the sort state named by the URL, or nil.
func (s *Query) Sort() *tables.SortState {
	if s.SortColumn == "" {
		return nil
	}
	return &tables.SortState{ColumnID: s.SortColumn, Direction: s.SortDirection}
}

// Resolve turns the URL state into typed view state for db. Sorts and
// filters on unknown columns, and filters that do not parse, are left out
// and recorded in s.Errors.
func (s *Query) Resolve(db *tables.Database, clock filters.Clock) (filters.State, *tables.SortState) {
	fs := filters.NewState(s.Mode)
	for _, colID := range slices.Sorted(maps.Keys(s.Filters)) {
		col, ok := db.Column(colID)
		if !ok {
			s.Errors = append(s.Errors, fmt.Errorf("filter:%s: %w", colID, ErrUnknownColumn))
			continue
		}
		f, err := ParseFilter(col.Type, s.Filters[colID], clock)
		if err != nil {
			s.Errors = append(s.Errors, fmt.Errorf("filter:%s: %w", colID, err))
			continue
		}
		fs.Set(colID, f)
	}

	sort := s.Sort()
	if sort == nil {
		return fs, nil
	}
	if col, ok := db.Column(sort.ColumnID); !ok {
		s.Errors = append(s.Errors, fmt.Errorf("sort %s: %w", sort.ColumnID, ErrUnknownColumn))
		sort = nil
	} else if !col.Sortable {
		s.Errors = append(s.Errors, fmt.Errorf("sort %s: %w", sort.ColumnID, ErrNotSortable))
		sort = nil
	}
	return fs, sort
}

// IsSelected reports whether a row id is in the selection
func (s *Query) IsSelected(rowID string) bool {
	return slices.Contains(s.Selected, rowID)
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.SortColumn != "" {
		q.Set("sort", s.SortColumn+":"+s.SortDirection.String())
	}
	if s.Mode == filters.Or {
		q.Set("mode", "or")
	}

	if len(s.ColumnWidths) > 0 {
		widthStrs := make([]string, 0, len(s.ColumnWidths))
		for _, col := range slices.Sorted(maps.Keys(s.ColumnWidths)) {
			widthStrs = append(widthStrs, col+":"+strconv.Itoa(s.ColumnWidths[col]))
		}
		q.Set("widths", strings.Join(widthStrs, ","))
	}

	if len(s.Selected) > 0 {
		q.Set("selected", strings.Join(s.Selected, ","))
	}

	for colName, filterValue := range s.Filters {
		if filterValue != "" {
			q.Set("filter:"+colName, filterValue)
		}
	}

	q.Set("limit", strconv.Itoa(s.Limit))

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// WithSortToggled returns a URL with the sort on column cycled ascending,
// descending, unsorted. Another column starts ascending.
func (s *Query) WithSortToggled(column string) safehtml.URL {
	newState := s.Clone()
	switch {
	case s.SortColumn != column:
		newState.SortColumn, newState.SortDirection = column, cells.Ascending
	case s.SortDirection == cells.Ascending:
		newState.SortDirection = cells.Descending
	default:
		newState.SortColumn, newState.SortDirection = "", cells.Ascending
	}
	return newState.ToSafeURL()
}

// WithFilter returns a URL with the filter on column replaced by f
func (s *Query) WithFilter(column string, f filters.Filter) safehtml.URL {
	newState := s.Clone()
	newState.Filters[column] = FormatFilter(f)
	return newState.ToSafeURL()
}

// WithoutFilter returns a URL with the filter on column removed
func (s *Query) WithoutFilter(column string) safehtml.URL {
	newState := s.Clone()
	delete(newState.Filters, column)
	return newState.ToSafeURL()
}

// WithMode returns a URL combining filters with m
func (s *Query) WithMode(m filters.Mode) safehtml.URL {
	newState := s.Clone()
	newState.Mode = m
	return newState.ToSafeURL()
}

// WithSelected returns a URL with exactly the given rows selected
func (s *Query) WithSelected(rowIDs ...string) safehtml.URL {
	newState := s.Clone()
	newState.Selected = slices.Clone(rowIDs)
	return newState.ToSafeURL()
}

// WithSelectionToggled returns a URL with rowID added to or removed from
// the selection. Without multi, selecting replaces the selection.
func (s *Query) WithSelectionToggled(rowID string, multi bool) safehtml.URL {
	switch {
	case s.IsSelected(rowID):
		return s.WithSelected(slices.DeleteFunc(slices.Clone(s.Selected), func(id string) bool { return id == rowID })...)
	case multi:
		return s.WithSelected(append(slices.Clone(s.Selected), rowID)...)
	}
	return s.WithSelected(rowID)
}

// WithColumnWidth returns a URL with the width of column set
func (s *Query) WithColumnWidth(column string, width int) safehtml.URL {
	newState := s.Clone()
	newState.ColumnWidths[column] = width
	return newState.ToSafeURL()
}

// WithLimit returns a URL with a different row limit
func (s *Query) WithLimit(limit int) safehtml.URL {
	newState := s.Clone()
	newState.Limit = limit
	return newState.ToSafeURL()
}
