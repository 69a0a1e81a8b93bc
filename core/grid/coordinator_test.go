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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/columns"
	"github.com/google/dbgrid/core/filters"
	"github.com/google/dbgrid/core/tables"
)

// newScenario builds Title/Priority/Done with rows b("B",2,false),
// a("A",1,true), c("C",empty,false) and attaches a Recorder.
func newScenario(t *testing.T, opts Options) (*Coordinator, *Recorder) {
	t.Helper()
	title := columns.NewColumn("title", "Title", cells.KindText).WithWidth(columns.Flexible(80, 300))
	title.SetExplicitWidth(150)
	db := tables.NewDatabase(
		title,
		columns.NewColumn("priority", "Priority", cells.KindNumber).WithWidth(columns.Fixed(100)),
		columns.NewColumn("done", "Done", cells.KindCheckbox).WithWidth(columns.Fixed(60)),
	)
	for _, r := range []*tables.Row{
		tables.NewRow("b", map[string]cells.Value{"title": cells.Text("B"), "priority": cells.Number(2), "done": cells.Checkbox(false)}),
		tables.NewRow("a", map[string]cells.Value{"title": cells.Text("A"), "priority": cells.Number(1), "done": cells.Checkbox(true)}),
		tables.NewRow("c", map[string]cells.Value{"title": cells.Text("C"), "done": cells.Checkbox(false)}),
	} {
		if err := db.AddRow(r); err != nil {
			t.Fatal(err)
		}
	}
	c := New(db, opts)
	rec := &Recorder{}
	c.Attach(rec)
	rec.Reset()
	return c, rec
}

func TestCoordinator_RowAt(t *testing.T) {
	c, _ := newScenario(t, Options{})
	if got := c.NumberOfDisplayRows(); got != 3 {
		t.Fatalf("NumberOfDisplayRows() = %d, want 3", got)
	}
	r, ok := c.RowAt(1)
	if !ok || r.ID != "a" {
		t.Errorf("RowAt(1) = %v, %v, want row a", r, ok)
	}
	for _, i := range []int{-1, 3, 100} {
		if r, ok := c.RowAt(i); ok || r != nil {
			t.Errorf("RowAt(%d) = %v, %v, want no row", i, r, ok)
		}
	}
}

func TestCoordinator_SortAndFilter(t *testing.T) {
	c, rec := newScenario(t, Options{})

	if !c.SetSort(&tables.SortState{ColumnID: "title"}) {
		t.Fatalf("SetSort(title) = false")
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, c.DisplayRowIDs()); diff != "" {
		t.Errorf("sorted rows mismatch (-want +got):\n%s", diff)
	}
	want := RowsChanged{Indices: []int{0, 1}, Count: 3}
	if diff := cmp.Diff([]Change{want}, rec.Changes); diff != "" {
		t.Errorf("sort changes mismatch (-want +got):\n%s", diff)
	}

	rec.Reset()
	c.SetFilter("done", filters.CheckboxFilter{Checked: false})
	if diff := cmp.Diff([]string{"b", "c"}, c.DisplayRowIDs()); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}
	want = RowsChanged{Indices: []int{0, 1, 2}, Count: 2}
	if diff := cmp.Diff([]Change{want}, rec.Changes); diff != "" {
		t.Errorf("filter changes mismatch (-want +got):\n%s", diff)
	}

	// Same result via the other composition order.
	c2, _ := newScenario(t, Options{})
	c2.SetFilter("done", filters.CheckboxFilter{Checked: false})
	c2.SetSort(&tables.SortState{ColumnID: "title"})
	if diff := cmp.Diff(c.DisplayRowIDs(), c2.DisplayRowIDs()); diff != "" {
		t.Errorf("composition order changed the view (-first +second):\n%s", diff)
	}
}

func TestCoordinator_NoChangeNoReconcile(t *testing.T) {
	c, rec := newScenario(t, Options{})
	c.RecomputeDisplayIndices()
	c.SetFilterMode(filters.Or)
	if len(rec.Changes) != 0 {
		t.Errorf("unchanged view reconciled: %v", rec.Changes)
	}
}

func TestCoordinator_ToggleSort(t *testing.T) {
	c, _ := newScenario(t, Options{})
	steps := []struct {
		wantSort *tables.SortState
		wantRows []string
	}{
		{&tables.SortState{ColumnID: "priority", Direction: cells.Ascending}, []string{"a", "b", "c"}},
		{&tables.SortState{ColumnID: "priority", Direction: cells.Descending}, []string{"b", "a", "c"}},
		{nil, []string{"b", "a", "c"}},
	}
	for i, step := range steps {
		c.ToggleSort("priority")
		if diff := cmp.Diff(step.wantSort, c.SortState()); diff != "" {
			t.Errorf("step %d sort mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(step.wantRows, c.DisplayRowIDs()); diff != "" {
			t.Errorf("step %d rows mismatch (-want +got):\n%s", i, diff)
		}
	}

	col, _ := c.Database().Column("done")
	col.Sortable = false
	if c.ToggleSort("done") {
		t.Errorf("ToggleSort on an unsortable column = true")
	}
	if c.ToggleSort("missing") {
		t.Errorf("ToggleSort on a missing column = true")
	}
}

func TestCoordinator_Editing(t *testing.T) {
	c, rec := newScenario(t, Options{})
	x := CellID{RowID: "a", ColumnID: "title"}
	y := CellID{RowID: "b", ColumnID: "priority"}

	if !c.BeginEditing(x) {
		t.Fatalf("BeginEditing(x) = false")
	}
	if diff := cmp.Diff([]Change{CellsChanged{Cells: []CellID{x}}}, rec.Changes); diff != "" {
		t.Errorf("begin mismatch (-want +got):\n%s", diff)
	}

	rec.Reset()
	c.BeginEditing(y)
	if diff := cmp.Diff([]Change{CellsChanged{Cells: []CellID{x, y}}}, rec.Changes); diff != "" {
		t.Errorf("switch mismatch (-want +got):\n%s", diff)
	}
	if got, _ := c.EditingCell(); got != y {
		t.Errorf("EditingCell() = %v, want %v", got, y)
	}

	rec.Reset()
	c.EndEditing()
	if diff := cmp.Diff([]Change{CellsChanged{Cells: []CellID{y}}}, rec.Changes); diff != "" {
		t.Errorf("end mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.EditingCell(); ok {
		t.Errorf("still editing after EndEditing")
	}

	rec.Reset()
	c.EndEditing()
	if len(rec.Changes) != 0 {
		t.Errorf("EndEditing while idle reconciled: %v", rec.Changes)
	}
	if c.BeginEditing(CellID{RowID: "a", ColumnID: "missing"}) {
		t.Errorf("BeginEditing on a missing column = true")
	}
}

func TestCoordinator_CommitEdit(t *testing.T) {
	c, rec := newScenario(t, Options{})
	cell := CellID{RowID: "c", ColumnID: "priority"}
	c.BeginEditing(cell)
	rec.Reset()

	if !c.CommitEdit(cells.Number(5)) {
		t.Fatalf("CommitEdit = false")
	}
	if v, _ := c.CellValue("c", "priority"); !cells.Equal(v, cells.Number(5)) {
		t.Errorf("CellValue = %v, want number(5)", v)
	}
	if diff := cmp.Diff([]Change{CellsChanged{Cells: []CellID{cell}}}, rec.Changes); diff != "" {
		t.Errorf("commit mismatch (-want +got):\n%s", diff)
	}
	if c.CommitEdit(cells.Number(6)) {
		t.Errorf("CommitEdit without an edit = true")
	}
}

func TestCoordinator_SetCellValueOnSortedColumn(t *testing.T) {
	c, rec := newScenario(t, Options{})
	c.SetSort(&tables.SortState{ColumnID: "title"})
	rec.Reset()

	cell := CellID{RowID: "a", ColumnID: "title"}
	c.SetCellValue(cell, cells.Text("Z"))
	if diff := cmp.Diff([]string{"b", "c", "a"}, c.DisplayRowIDs()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	want := []Change{
		RowsChanged{Indices: []int{0, 1, 2}, Count: 3},
		CellsChanged{Cells: []CellID{cell}},
	}
	if diff := cmp.Diff(want, rec.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}

	rec.Reset()
	c.SetCellValue(CellID{RowID: "b", ColumnID: "priority"}, cells.Number(9))
	if diff := cmp.Diff([]Change{CellsChanged{Cells: []CellID{{RowID: "b", ColumnID: "priority"}}}}, rec.Changes); diff != "" {
		t.Errorf("unrelated column mismatch (-want +got):\n%s", diff)
	}
}

func TestCoordinator_SingleSelection(t *testing.T) {
	c, rec := newScenario(t, Options{})
	c.ToggleSelection("a")
	rec.Reset()
	c.ToggleSelection("b")

	if diff := cmp.Diff([]string{"b"}, c.Selection()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	want := CellsChanged{Cells: []CellID{
		{"b", "title"}, {"b", "priority"}, {"b", "done"},
		{"a", "title"}, {"a", "priority"}, {"a", "done"},
	}}
	if diff := cmp.Diff([]Change{want}, rec.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}

	c.ToggleSelection("b")
	if len(c.Selection()) != 0 {
		t.Errorf("toggling the selected row did not deselect it")
	}
	if c.SelectAll() {
		t.Errorf("SelectAll with single selection = true")
	}
}

func TestCoordinator_MultipleSelection(t *testing.T) {
	c, _ := newScenario(t, Options{AllowsMultipleSelection: true})
	c.ToggleSelection("c")
	c.ToggleSelection("b")
	if diff := cmp.Diff([]string{"b", "c"}, c.Selection()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	c.ToggleSelection("c")
	if diff := cmp.Diff([]string{"b"}, c.Selection()); diff != "" {
		t.Errorf("selection after toggle mismatch (-want +got):\n%s", diff)
	}
	c.SelectAll()
	if len(c.Selection()) != 3 {
		t.Errorf("SelectAll selected %v", c.Selection())
	}
	c.ClearSelection()
	if len(c.Selection()) != 0 {
		t.Errorf("ClearSelection left %v", c.Selection())
	}
	if c.ToggleSelection("missing") {
		t.Errorf("ToggleSelection(missing) = true")
	}
}

func TestCoordinator_RemoveRowPurgesState(t *testing.T) {
	c, rec := newScenario(t, Options{AllowsMultipleSelection: true})
	c.ToggleSelection("a")
	c.ToggleSelection("b")
	c.BeginEditing(CellID{RowID: "a", ColumnID: "title"})
	rec.Reset()

	if !c.RemoveRow("a") {
		t.Fatalf("RemoveRow(a) = false")
	}
	if diff := cmp.Diff([]string{"b"}, c.Selection()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.EditingCell(); ok {
		t.Errorf("editing survived removal of its row")
	}
	if diff := cmp.Diff([]Change{FullReload{}}, rec.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestCoordinator_ColumnMutations(t *testing.T) {
	c, rec := newScenario(t, Options{})
	c.SetSort(&tables.SortState{ColumnID: "priority", Direction: cells.Descending})
	c.SetFilter("priority", filters.NumberFilter{Op: filters.NumberGreaterThan, Value: 1})
	rec.Reset()

	if !c.RemoveColumn("priority") {
		t.Fatalf("RemoveColumn(priority) = false")
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, c.DisplayRowIDs()); diff != "" {
		t.Errorf("stale sort/filter not inert (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Change{FullReload{}}, rec.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}

	rec.Reset()
	if err := c.AddColumn(columns.NewColumn("notes", "Notes", cells.KindText)); err != nil {
		t.Fatalf("AddColumn error: %v", err)
	}
	if err := c.AddColumn(columns.NewColumn("notes", "Notes", cells.KindText)); err == nil {
		t.Errorf("AddColumn(duplicate) succeeded")
	}
	if diff := cmp.Diff([]Change{FullReload{}}, rec.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
	r, err := c.AddRow(map[string]cells.Value{"title": cells.Text("D")})
	if err != nil {
		t.Fatalf("AddRow error: %v", err)
	}
	if d, ok := c.DisplayIndex(r.ID); !ok || d != 3 {
		t.Errorf("DisplayIndex(new row) = %d, %v, want 3, true", d, ok)
	}
}

func TestCoordinator_ExternalMutationIsNeverReadStale(t *testing.T) {
	c, rec := newScenario(t, Options{})
	c.ToggleSelection("a")
	rec.Reset()

	c.Database().RemoveRow("a")
	// No RecomputeDisplayIndices call: the next read recomputes.
	if got := c.NumberOfDisplayRows(); got != 2 {
		t.Errorf("NumberOfDisplayRows() = %d, want 2", got)
	}
	if c.IsSelected("a") {
		t.Errorf("deleted row still selected")
	}
	if diff := cmp.Diff([]Change{FullReload{}}, rec.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestCoordinator_CellKeysIncludeRowID(t *testing.T) {
	c, _ := newScenario(t, Options{})
	before, _ := c.CellKey(0, 0)
	c.SetSort(&tables.SortState{ColumnID: "title"})
	after, _ := c.CellKey(0, 0)
	if before == after {
		t.Errorf("re-sorting did not change the key at (0, 0): %v", after)
	}
	if after.RowID != "a" {
		t.Errorf("CellKey(0, 0).RowID = %q, want a", after.RowID)
	}
	if got := len(c.CellKeys()); got != 9 {
		t.Errorf("len(CellKeys()) = %d, want 9", got)
	}
	if _, ok := c.CellKey(3, 0); ok {
		t.Errorf("CellKey(3, 0) found a cell")
	}
}

func TestCoordinator_SetSelection(t *testing.T) {
	c, rec := newScenario(t, Options{})
	c.SetSelection([]string{"missing", "c", "a"})
	if diff := cmp.Diff([]string{"c"}, c.Selection()); diff != "" {
		t.Errorf("single selection mismatch (-want +got):\n%s", diff)
	}

	c, rec = newScenario(t, Options{AllowsMultipleSelection: true})
	c.SetSelection([]string{"c", "a"})
	rec.Reset()
	c.SetSelection([]string{"a", "b"})
	if diff := cmp.Diff([]string{"b", "a"}, c.Selection()); diff != "" {
		t.Errorf("multi selection mismatch (-want +got):\n%s", diff)
	}
	want := CellsChanged{Cells: []CellID{
		{"b", "title"}, {"b", "priority"}, {"b", "done"},
		{"c", "title"}, {"c", "priority"}, {"c", "done"},
	}}
	if diff := cmp.Diff([]Change{want}, rec.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}
