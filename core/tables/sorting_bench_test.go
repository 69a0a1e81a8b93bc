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
	"fmt"
	"testing"

	"golang.org/x/text/language"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/columns"
	"github.com/google/dbgrid/core/filters"
)

const benchSize = 100_000

func newBenchDatabase(b *testing.B) *Database {
	b.Helper()
	db := NewDatabase(
		columns.NewColumn("name", "Name", cells.KindText),
		columns.NewColumn("amount", "Amount", cells.KindNumber),
	)
	for j := 0; j < benchSize; j++ {
		r := NewRow(fmt.Sprintf("r%d", j), map[string]cells.Value{
			"name":   cells.Text(fmt.Sprintf("value_%d", j%1000)),
			"amount": cells.Number(float64((j * 7919) % benchSize)),
		})
		if err := db.AddRow(r); err != nil {
			b.Fatal(err)
		}
	}
	return db
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

func BenchmarkPipeline_Unsorted_100K(b *testing.B) {
	db := newBenchDatabase(b)
	p := NewPipeline(language.Und)
	fs := filters.NewState(filters.And)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.Compute(db, fs, nil)
	}
}

func BenchmarkPipeline_SortNumber_100K(b *testing.B) {
	db := newBenchDatabase(b)
	p := NewPipeline(language.Und)
	fs := filters.NewState(filters.And)
	s := &SortState{ColumnID: "amount", Direction: cells.Descending}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.Compute(db, fs, s)
	}
}

func BenchmarkPipeline_SortText_100K(b *testing.B) {
	db := newBenchDatabase(b)
	p := NewPipeline(language.Und)
	fs := filters.NewState(filters.And)
	s := &SortState{ColumnID: "name"}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.Compute(db, fs, s)
	}
}

func BenchmarkPipeline_FilterAndSort_100K(b *testing.B) {
	db := newBenchDatabase(b)
	p := NewPipeline(language.Und)
	fs := filters.NewState(filters.And)
	fs.Set("name", filters.TextFilter{Op: filters.TextStartsWith, Value: "value_1"})
	s := &SortState{ColumnID: "amount"}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.Compute(db, fs, s)
	}
}
