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
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/columns"
	"github.com/google/dbgrid/core/filters"
)

// scenarioDatabase is Title/Priority/Done with rows B, A, C.
func scenarioDatabase(t *testing.T) *Database {
	t.Helper()
	db := NewDatabase(
		columns.NewColumn("title", "Title", cells.KindText),
		columns.NewColumn("priority", "Priority", cells.KindNumber),
		columns.NewColumn("done", "Done", cells.KindCheckbox),
	)
	rows := []*Row{
		NewRow("b", map[string]cells.Value{"title": cells.Text("B"), "priority": cells.Number(2), "done": cells.Checkbox(false)}),
		NewRow("a", map[string]cells.Value{"title": cells.Text("A"), "priority": cells.Number(1), "done": cells.Checkbox(true)}),
		NewRow("c", map[string]cells.Value{"title": cells.Text("C"), "done": cells.Checkbox(false)}),
	}
	for _, r := range rows {
		if err := db.AddRow(r); err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func displayTitles(db *Database, indices []int) []string {
	var titles []string
	for _, i := range indices {
		r, _ := db.RowAt(i)
		titles = append(titles, r.Cell("title").Text())
	}
	return titles
}

func TestCompute_Unsorted(t *testing.T) {
	db := scenarioDatabase(t)
	got := ComputeDisplayIndices(db, filters.State{}, nil)
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_SortByTitle(t *testing.T) {
	db := scenarioDatabase(t)
	got := displayTitles(db, ComputeDisplayIndices(db, filters.State{}, &SortState{ColumnID: "title"}))
	if diff := cmp.Diff([]string{"A", "B", "C"}, got); diff != "" {
		t.Errorf("asc mismatch (-want +got):\n%s", diff)
	}
	got = displayTitles(db, ComputeDisplayIndices(db, filters.State{}, &SortState{ColumnID: "title", Direction: cells.Descending}))
	if diff := cmp.Diff([]string{"C", "B", "A"}, got); diff != "" {
		t.Errorf("desc mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_FilterBeforeSort(t *testing.T) {
	db := scenarioDatabase(t)
	fs := filters.NewState(filters.And)
	fs.Set("done", filters.CheckboxFilter{Checked: false})

	unsorted := displayTitles(db, ComputeDisplayIndices(db, fs, nil))
	if diff := cmp.Diff([]string{"B", "C"}, unsorted); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}
	sorted := displayTitles(db, ComputeDisplayIndices(db, fs, &SortState{ColumnID: "title", Direction: cells.Descending}))
	if diff := cmp.Diff([]string{"C", "B"}, sorted); diff != "" {
		t.Errorf("filtered and sorted mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_EmptySortsLastInBothDirections(t *testing.T) {
	db := scenarioDatabase(t)
	for _, dir := range []cells.Direction{cells.Ascending, cells.Descending} {
		got := displayTitles(db, ComputeDisplayIndices(db, filters.State{}, &SortState{ColumnID: "priority", Direction: dir}))
		if got[len(got)-1] != "C" {
			t.Errorf("%v: row with empty priority at %v, want last", dir, got)
		}
	}
}

func TestCompute_StableForEqualKeys(t *testing.T) {
	db := NewDatabase(
		columns.NewColumn("group", "Group", cells.KindText),
		columns.NewColumn("n", "N", cells.KindNumber),
	)
	groups := []string{"x", "y", "x", "y", "x", "", "y"}
	for i, g := range groups {
		db.AddRow(NewRow("", map[string]cells.Value{"group": cells.Text(g), "n": cells.Number(float64(i))}))
	}
	order := func(dir cells.Direction) []float64 {
		var ns []float64
		for _, i := range ComputeDisplayIndices(db, filters.State{}, &SortState{ColumnID: "group", Direction: dir}) {
			r, _ := db.RowAt(i)
			n, _ := r.Cell("n").AsNumber()
			ns = append(ns, n)
		}
		return ns
	}
	if diff := cmp.Diff([]float64{0, 2, 4, 1, 3, 6, 5}, order(cells.Ascending)); diff != "" {
		t.Errorf("asc mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 3, 6, 0, 2, 4, 5}, order(cells.Descending)); diff != "" {
		t.Errorf("desc mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	db := scenarioDatabase(t)
	fs := filters.NewState(filters.Or)
	fs.Set("done", filters.CheckboxFilter{Checked: false})
	fs.Set("priority", filters.NumberFilter{Op: filters.NumberGreaterThan, Value: 0})
	s := &SortState{ColumnID: "priority", Direction: cells.Descending}

	p := NewPipeline(language.Und)
	first := p.Compute(db, fs, s)
	second := p.Compute(db, fs, s)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("recompute not idempotent (-first +second):\n%s", diff)
	}
}

func TestCompute_StaleReferencesAreInert(t *testing.T) {
	db := scenarioDatabase(t)
	fs := filters.NewState(filters.And)
	fs.Set("priority", filters.NumberFilter{Op: filters.NumberGreaterThan, Value: 1})
	s := &SortState{ColumnID: "priority"}

	db.RemoveColumn("priority")

	got := ComputeDisplayIndices(db, fs, s)
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Errorf("stale filter/sort changed the view (-want +got):\n%s", diff)
	}
	if db.RowCount() != 3 || db.ColumnCount() != 2 {
		t.Errorf("database changed: %d rows, %d columns", db.RowCount(), db.ColumnCount())
	}
}

func TestCompute_DoesNotReorderStorage(t *testing.T) {
	db := scenarioDatabase(t)
	ComputeDisplayIndices(db, filters.State{}, &SortState{ColumnID: "title"})
	if diff := cmp.Diff([]string{"b", "a", "c"}, rowIDs(db)); diff != "" {
		t.Errorf("storage order changed (-want +got):\n%s", diff)
	}
}
