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

// Package demo builds sample databases for the grid server.
package demo

import (
	"fmt"
	"time"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/columns"
	"github.com/google/dbgrid/core/tables"
)

var statusOptions = []cells.SelectOption{
	{ID: "todo", Name: "To do", Color: cells.ColorGray},
	{ID: "doing", Name: "In progress", Color: cells.ColorBlue},
	{ID: "done", Name: "Done", Color: cells.ColorGreen},
}

var tagOptions = []cells.SelectOption{
	{ID: "bug", Name: "Bug", Color: cells.ColorRed},
	{ID: "docs", Name: "Docs", Color: cells.ColorYellow},
	{ID: "infra", Name: "Infra", Color: cells.ColorPurple},
	{ID: "ui", Name: "UI", Color: cells.ColorPink},
}

var people = []cells.Person{
	{ID: "u1", Name: "Ada Park", Email: "ada@example.com"},
	{ID: "u2", Name: "Noor Haddad", Email: "noor@example.com"},
	{ID: "u3", Name: "Kenji Sato", Email: "kenji@example.com"},
}

// TaskColumns are the columns of the task database, one per cell kind.
func TaskColumns() []*columns.Column {
	return []*columns.Column{
		columns.NewColumn("title", "Title", cells.KindText).WithWidth(columns.Fill(2)),
		columns.NewColumn("status", "Status", cells.KindSelect).WithWidth(columns.FitContent(20)).WithOptions(statusOptions...),
		columns.NewColumn("tags", "Tags", cells.KindMultiSelect).WithWidth(columns.Flexible(80, 240)).WithOptions(tagOptions...),
		columns.NewColumn("owner", "Owner", cells.KindPerson).WithWidth(columns.FitContent(20)),
		columns.NewColumn("points", "Points", cells.KindNumber).WithWidth(columns.FitHeader()),
		columns.NewColumn("due", "Due", cells.KindDate).WithWidth(columns.Fixed(96)),
		columns.NewColumn("done", "Done", cells.KindCheckbox).WithWidth(columns.Fixed(56)),
		columns.NewColumn("link", "Link", cells.KindURL).WithWidth(columns.Flexible(80, 0)),
		columns.NewColumn("contact", "Contact", cells.KindEmail).WithWidth(columns.FitContent(10)),
		columns.NewColumn("phone", "Phone", cells.KindPhone).WithWidth(columns.FitHeader()),
	}
}

type task struct {
	title  string
	status string
	tags   []string
	owner  int // index into people, -1 for nobody
	points float64
	due    int // days after the base date, 0 for none
}

var tasks = []task{
	{"Write the release notes", "todo", []string{"docs"}, 0, 2, 3},
	{"Fix crash on empty filter", "doing", []string{"bug"}, 1, 5, 1},
	{"Dark mode header", "todo", []string{"ui"}, -1, 3, 0},
	{"Rotate build secrets", "done", []string{"infra"}, 2, 1, -2},
	{"Resize grip too narrow", "doing", []string{"bug", "ui"}, 0, 2, 5},
	{"Document sort stability", "todo", nil, 1, 0, 10},
	{"Migrate CI runners", "done", []string{"infra"}, 2, 8, -7},
	{"Ünicode collation check", "todo", []string{"bug"}, -1, 1, 0},
}

// NewTaskDatabase returns a small task tracker with due dates relative to
// base. Row ids are stable: t1, t2, and so on.
func NewTaskDatabase(base time.Time) *tables.Database {
	db := tables.NewDatabase(TaskColumns()...)
	for i, t := range tasks {
		values := map[string]cells.Value{
			"title":  cells.Text(t.title),
			"status": cells.Select(t.status),
			"tags":   cells.MultiSelect(t.tags...),
			"done":   cells.Checkbox(t.status == "done"),
		}
		if t.points > 0 {
			values["points"] = cells.Number(t.points)
		}
		if t.due != 0 {
			values["due"] = cells.Date(base.AddDate(0, 0, t.due))
		}
		if t.owner >= 0 {
			p := people[t.owner]
			values["owner"] = cells.PersonRef(p)
			values["contact"] = cells.Email(p.Email)
			values["phone"] = cells.Phone(fmt.Sprintf("+1 555 010%d", t.owner))
		}
		if i%3 == 0 {
			values["link"] = cells.URL(fmt.Sprintf("https://issues.example.com/%d", 100+i))
		}
		if err := db.AddRow(tables.NewRow(fmt.Sprintf("t%d", i+1), values)); err != nil {
			panic(fmt.Sprintf("demo row %d: %v", i, err))
		}
	}
	return db
}
