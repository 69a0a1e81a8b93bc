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

package tables

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/columns"
)

var (
	ErrDuplicateColumn = errors.New("duplicate column id")
	ErrDuplicateRow    = errors.New("duplicate row id")
)

// Database owns an ordered list of columns (display order) and an ordered
// list of rows (storage order). Filtering and sorting never reorder
// storage; they produce display indices over it.
type Database struct {
	columns  []*columns.Column
	rows     []*Row
	rowIndex map[string]int
	version  uint64
}

// NewDatabase creates an empty database with the given columns.
func NewDatabase(cols ...*columns.Column) *Database {
	db := &Database{rowIndex: map[string]int{}}
	for _, c := range cols {
		// Duplicates are dropped; callers wanting an error use AddColumn.
		_ = db.AddColumn(c)
	}
	return db
}

// NewID returns a fresh random id for a row or column.
func NewID() string {
	return uuid.NewString()
}

// Version increases on every mutation. Derived views compare it to detect
// that they are stale.
func (db *Database) Version() uint64 { return db.version }

func (db *Database) touch() { db.version++ }

// Touch marks the database as mutated. Callers that mutate a column or row
// obtained from the database in place call it so derived views notice.
func (db *Database) Touch() { db.touch() }

func (db *Database) ColumnCount() int { return len(db.columns) }

func (db *Database) RowCount() int { return len(db.rows) }

// Columns returns the columns in display order. The slice is a copy; the
// columns are shared.
func (db *Database) Columns() []*columns.Column {
	return append([]*columns.Column(nil), db.columns...)
}

// Column looks up a column by id.
func (db *Database) Column(id string) (*columns.Column, bool) {
	if i := db.ColumnIndex(id); i >= 0 {
		return db.columns[i], true
	}
	return nil, false
}

// ColumnAt returns the column at display position i.
func (db *Database) ColumnAt(i int) (*columns.Column, bool) {
	if i < 0 || i >= len(db.columns) {
		return nil, false
	}
	return db.columns[i], true
}

// ColumnIndex returns the display position of a column, or -1.
func (db *Database) ColumnIndex(id string) int {
	for i, c := range db.columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column with id exists.
func (db *Database) HasColumn(id string) bool { return db.ColumnIndex(id) >= 0 }

// AddColumn appends a column.
func (db *Database) AddColumn(c *columns.Column) error {
	return db.InsertColumn(len(db.columns), c)
}

// InsertColumn inserts a column at display position i, clamped to the
// valid range.
func (db *Database) InsertColumn(i int, c *columns.Column) error {
	if db.HasColumn(c.ID) {
		return fmt.Errorf("add column %q: %w", c.ID, ErrDuplicateColumn)
	}
	i = max(0, min(i, len(db.columns)))
	db.columns = append(db.columns, nil)
	copy(db.columns[i+1:], db.columns[i:])
	db.columns[i] = c
	db.touch()
	return nil
}

// RemoveColumn deletes a column and purges its cell from every row.
func (db *Database) RemoveColumn(id string) bool {
	i := db.ColumnIndex(id)
	if i < 0 {
		return false
	}
	db.columns = append(db.columns[:i], db.columns[i+1:]...)
	for _, r := range db.rows {
		r.Clear(id)
	}
	db.touch()
	return true
}

// MoveColumn moves a column to display position to.
func (db *Database) MoveColumn(id string, to int) bool {
	from := db.ColumnIndex(id)
	if from < 0 {
		return false
	}
	c := db.columns[from]
	db.columns = append(db.columns[:from], db.columns[from+1:]...)
	to = max(0, min(to, len(db.columns)))
	db.columns = append(db.columns, nil)
	copy(db.columns[to+1:], db.columns[to:])
	db.columns[to] = c
	db.touch()
	return true
}

// Rows returns the rows in storage order. The slice is a copy; the rows
// are shared.
func (db *Database) Rows() []*Row {
	return append([]*Row(nil), db.rows...)
}

// Row looks up a row by id.
func (db *Database) Row(id string) (*Row, bool) {
	i, ok := db.rowIndex[id]
	if !ok {
		return nil, false
	}
	return db.rows[i], true
}

// RowAt returns the row at storage position i.
func (db *Database) RowAt(i int) (*Row, bool) {
	if i < 0 || i >= len(db.rows) {
		return nil, false
	}
	return db.rows[i], true
}

// RowIndex returns the storage position of a row, or -1.
func (db *Database) RowIndex(id string) int {
	if i, ok := db.rowIndex[id]; ok {
		return i
	}
	return -1
}

// AddRow appends a row. A row with an empty id is given a fresh one.
func (db *Database) AddRow(r *Row) error {
	return db.InsertRow(len(db.rows), r)
}

// InsertRow inserts a row at storage position i, clamped to the valid
// range.
func (db *Database) InsertRow(i int, r *Row) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if _, ok := db.rowIndex[r.ID]; ok {
		return fmt.Errorf("add row %q: %w", r.ID, ErrDuplicateRow)
	}
	if db.rowIndex == nil {
		db.rowIndex = map[string]int{}
	}
	i = max(0, min(i, len(db.rows)))
	db.rows = append(db.rows, nil)
	copy(db.rows[i+1:], db.rows[i:])
	db.rows[i] = r
	db.reindexFrom(i)
	db.touch()
	return nil
}

// RemoveRow deletes a row by id.
func (db *Database) RemoveRow(id string) bool {
	i, ok := db.rowIndex[id]
	if !ok {
		return false
	}
	db.rows = append(db.rows[:i], db.rows[i+1:]...)
	delete(db.rowIndex, id)
	db.reindexFrom(i)
	db.touch()
	return true
}

func (db *Database) reindexFrom(i int) {
	for ; i < len(db.rows); i++ {
		db.rowIndex[db.rows[i].ID] = i
	}
}

// CellValue returns the value at (rowID, columnID). ok is false if either
// does not exist.
func (db *Database) CellValue(rowID, columnID string) (cells.Value, bool) {
	r, ok := db.Row(rowID)
	if !ok || !db.HasColumn(columnID) {
		return cells.Empty(), false
	}
	return r.Cell(columnID), true
}

// SetCellValue replaces the value at (rowID, columnID) and reports whether
// the cell exists.
func (db *Database) SetCellValue(rowID, columnID string, v cells.Value) bool {
	r, ok := db.Row(rowID)
	if !ok || !db.HasColumn(columnID) {
		return false
	}
	r.Set(columnID, v)
	db.touch()
	return true
}
