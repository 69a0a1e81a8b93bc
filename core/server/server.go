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

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/columns"
	"github.com/google/dbgrid/core/filters"
	"github.com/google/dbgrid/core/grid"
	"github.com/google/dbgrid/core/query"
	"github.com/google/dbgrid/core/rendering"
	"github.com/google/dbgrid/core/views"
)

var (
	// ErrUnknownRow is returned for a row id the database does not have.
	ErrUnknownRow = errors.New("unknown row")
	// ErrInvalidValue is returned for a cell value that does not parse for
	// its column.
	ErrInvalidValue = errors.New("invalid value")
)

// Options configure a Server.
type Options struct {
	Title  string
	Clock  filters.Clock
	Logger *slog.Logger
}

// Server serves one coordinator over HTTP. Requests are handled one at a
// time.
type Server struct {
	mu       sync.Mutex
	coord    *grid.Coordinator
	renderer *rendering.TableRenderer
	opts     Options
	log      *slog.Logger
}

// NewServer creates a new server for coord
func NewServer(coord *grid.Coordinator, opts Options) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock.Now == nil {
		opts.Clock = filters.SystemClock()
	}
	return &Server{
		coord:    coord,
		renderer: renderer,
		opts:     opts,
		log:      opts.Logger,
	}, nil
}

// TableHandlerResult represents the result of handling a table request
type TableHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	attrs []any
	start time.Time
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records a timing entry
func (tc *TimingCollector) Record(operation string, since time.Time) {
	tc.attrs = append(tc.attrs, slog.Duration(operation, time.Since(since)))
}

// Log writes every entry and the total as one debug record.
func (tc *TimingCollector) Log(log *slog.Logger, msg string) {
	log.Debug(msg, append(tc.attrs, slog.Duration("total", time.Since(tc.start)))...)
}

// HandleTableRequest applies the view state in requestURL to the
// coordinator and renders the grid. It returns nil on success.
func (s *Server) HandleTableRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *TableHandlerResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	timing := NewTimingCollector()

	start := time.Now()
	q := query.NewQuery(requestURL)
	fs, sort := q.Resolve(s.coord.Database(), s.opts.Clock)
	timing.Record("parse", start)

	start = time.Now()
	s.coord.SetFilterState(fs)
	if !s.coord.SetSort(sort) {
		q.Errors = append(q.Errors, fmt.Errorf("sort %s: %w", sort.ColumnID, query.ErrNotSortable))
		s.coord.ClearSort()
	}
	for colID, width := range q.ColumnWidths {
		col, ok := s.coord.Database().Column(colID)
		if !ok {
			q.Errors = append(q.Errors, fmt.Errorf("width %s: %w", colID, query.ErrUnknownColumn))
			continue
		}
		col.SetExplicitWidth(float64(width))
	}
	s.coord.SetSelection(q.Selected)
	timing.Record("apply", start)

	for _, err := range q.Errors {
		s.log.Info("ignoring url parameter", "error", err)
	}

	start = time.Now()
	vm := views.BuildViewModel(s.coord, q, s.opts.Title)
	timing.Record("view_model", start)

	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, vm); err != nil {
		s.log.Error("template rendering error", "error", err)
		return &TableHandlerResult{Error: err}
	}
	timing.Log(s.log, "table request")
	return nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		if res := s.HandleTableRequest(w, r.URL, w.Header().Set); res != nil && res.StatusCode != 0 {
			http.Error(w, res.Message, res.StatusCode)
		}
	})
	mux.HandleFunc("POST /select", s.post(s.handleSelect))
	mux.HandleFunc("POST /edit", s.post(s.handleEdit))
	mux.HandleFunc("POST /cell", s.post(s.handleCell))
	mux.HandleFunc("POST /resize", s.post(s.handleResize))
	mux.HandleFunc("POST /rows", s.post(s.handleAddRow))
	mux.HandleFunc("POST /rows/delete", s.post(s.handleDeleteRow))
	return mux
}

// response is the JSON body of every POST route.
type response struct {
	OK        bool     `json:"ok"`
	Error     string   `json:"error,omitempty"`
	RowID     string   `json:"row_id,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Selection []string `json:"selection,omitempty"`
}

func (s *Server) post(h func(r *http.Request) (response, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, response{Error: err.Error()})
			return
		}
		s.mu.Lock()
		resp, err := h(r)
		s.mu.Unlock()
		if err != nil {
			s.log.Info("request failed", "path", r.URL.Path, "error", err)
			writeJSON(w, statusFor(err), response{Error: err.Error()})
			return
		}
		resp.OK = true
		writeJSON(w, http.StatusOK, resp)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownRow), errors.Is(err, query.ErrUnknownColumn):
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("writing response", "error", err)
	}
}

func (s *Server) lookup(rowID, colID string) (*columns.Column, error) {
	if _, ok := s.coord.Database().Row(rowID); !ok {
		return nil, fmt.Errorf("row %q: %w", rowID, ErrUnknownRow)
	}
	col, ok := s.coord.Database().Column(colID)
	if !ok {
		return nil, fmt.Errorf("column %q: %w", colID, query.ErrUnknownColumn)
	}
	return col, nil
}

func (s *Server) handleSelect(r *http.Request) (response, error) {
	rowID := r.PostForm.Get("row")
	if !s.coord.ToggleSelection(rowID) {
		return response{}, fmt.Errorf("row %q: %w", rowID, ErrUnknownRow)
	}
	return response{Selection: s.coord.Selection()}, nil
}

// handleEdit begins editing a cell, or ends editing when no row is given.
func (s *Server) handleEdit(r *http.Request) (response, error) {
	rowID, colID := r.PostForm.Get("row"), r.PostForm.Get("column")
	if rowID == "" {
		s.coord.EndEditing()
		return response{}, nil
	}
	if _, err := s.lookup(rowID, colID); err != nil {
		return response{}, err
	}
	s.coord.BeginEditing(grid.CellID{RowID: rowID, ColumnID: colID})
	return response{RowID: rowID}, nil
}

// handleCell writes a cell. Committing the cell being edited also ends the
// edit.
func (s *Server) handleCell(r *http.Request) (response, error) {
	rowID, colID := r.PostForm.Get("row"), r.PostForm.Get("column")
	col, err := s.lookup(rowID, colID)
	if err != nil {
		return response{}, err
	}
	v, err := ParseCellValue(col, r.PostForm.Get("value"), s.opts.Clock.Location)
	if err != nil {
		return response{}, err
	}
	cell := grid.CellID{RowID: rowID, ColumnID: colID}
	if editing, ok := s.coord.EditingCell(); ok && editing == cell {
		s.coord.CommitEdit(v)
	} else {
		s.coord.SetCellValue(cell, v)
	}
	return response{RowID: rowID}, nil
}

// handleResize drives a whole resize gesture from the column's trailing
// edge to the requested width.
func (s *Server) handleResize(r *http.Request) (response, error) {
	colID := r.PostForm.Get("column")
	idx := s.coord.Database().ColumnIndex(colID)
	if idx < 0 {
		return response{}, fmt.Errorf("column %q: %w", colID, query.ErrUnknownColumn)
	}
	want, err := strconv.ParseFloat(r.PostForm.Get("width"), 64)
	if err != nil {
		return response{}, fmt.Errorf("width: %w", ErrInvalidValue)
	}
	widths := s.coord.ColumnWidths()
	edge := columns.TrailingEdges(widths)[idx]
	if !s.coord.BeginResize(colID, edge) {
		return response{}, fmt.Errorf("column %q is not resizable", colID)
	}
	got, _ := s.coord.UpdateResize(edge + want - widths[idx])
	s.coord.EndResize()
	return response{Width: got}, nil
}

// handleAddRow appends a row. Form fields named after columns set cells.
func (s *Server) handleAddRow(r *http.Request) (response, error) {
	values := map[string]cells.Value{}
	for key := range r.PostForm {
		col, ok := s.coord.Database().Column(key)
		if !ok {
			return response{}, fmt.Errorf("column %q: %w", key, query.ErrUnknownColumn)
		}
		v, err := ParseCellValue(col, r.PostForm.Get(key), s.opts.Clock.Location)
		if err != nil {
			return response{}, err
		}
		values[key] = v
	}
	row, err := s.coord.AddRow(values)
	if err != nil {
		return response{}, err
	}
	return response{RowID: row.ID}, nil
}

func (s *Server) handleDeleteRow(r *http.Request) (response, error) {
	rowID := r.PostForm.Get("row")
	if !s.coord.RemoveRow(rowID) {
		return response{}, fmt.Errorf("row %q: %w", rowID, ErrUnknownRow)
	}
	return response{RowID: rowID}, nil
}

// ParseCellValue parses raw as a value of col's type. An empty string is
// the empty value of that type. Select values are option ids and must be
// declared by the column; multi-select ids are comma separated. Dates are
// parsed leniently in loc.
func ParseCellValue(col *columns.Column, raw string, loc *time.Location) (cells.Value, error) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	switch col.Type {
	case cells.KindText:
		return cells.Text(raw), nil
	case cells.KindEmail:
		return cells.Email(raw), nil
	case cells.KindPhone:
		return cells.Phone(raw), nil
	case cells.KindURL:
		if raw == "" {
			return cells.NoURL(), nil
		}
		return cells.URL(raw), nil
	case cells.KindPerson:
		if raw == "" {
			return cells.NoPerson(), nil
		}
		return cells.PersonRef(cells.Person{ID: raw, Name: raw}), nil
	}
	if raw == "" {
		switch col.Type {
		case cells.KindSelect:
			return cells.NoSelect(), nil
		case cells.KindMultiSelect:
			return cells.MultiSelect(), nil
		}
		return cells.Empty(), nil
	}
	switch col.Type {
	case cells.KindNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cells.Value{}, fmt.Errorf("%w: number %q", ErrInvalidValue, raw)
		}
		return cells.Number(f), nil
	case cells.KindDate:
		t, err := dateparse.ParseIn(raw, loc)
		if err != nil {
			return cells.Value{}, fmt.Errorf("%w: date %q", ErrInvalidValue, raw)
		}
		return cells.Date(t), nil
	case cells.KindCheckbox:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return cells.Value{}, fmt.Errorf("%w: checkbox %q", ErrInvalidValue, raw)
		}
		return cells.Checkbox(b), nil
	case cells.KindSelect, cells.KindMultiSelect:
		ids := strings.Split(raw, ",")
		for i, id := range ids {
			id = strings.TrimSpace(id)
			ids[i] = id
			if _, ok := col.Option(id); !ok {
				return cells.Value{}, fmt.Errorf("%w: option %q of column %s", ErrInvalidValue, id, col.ID)
			}
		}
		if col.Type == cells.KindSelect {
			if len(ids) != 1 {
				return cells.Value{}, fmt.Errorf("%w: %d options for a single select", ErrInvalidValue, len(ids))
			}
			return cells.Select(ids[0]), nil
		}
		return cells.MultiSelect(ids...), nil
	}
	return cells.Value{}, fmt.Errorf("%w: unsupported column type %s", ErrInvalidValue, col.Type)
}
