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
)

func TestBeginResize_GripZone(t *testing.T) {
	testCases := []struct {
		name   string
		column string
		x      float64
		want   bool
	}{
		{"on trailing edge", "title", 150, true},
		{"inside grip", "title", 143, true},
		{"grip start", "title", 142, true},
		{"before grip", "title", 141, false},
		{"past edge", "title", 151, false},
		{"second column edge", "priority", 248, true},
		{"second column first edge", "priority", 150, false},
		{"missing column", "missing", 150, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newScenario(t, Options{})
			if got := c.BeginResize(tc.column, tc.x); got != tc.want {
				t.Errorf("BeginResize(%q, %v) = %v, want %v", tc.column, tc.x, got, tc.want)
			}
			if got := c.ResizeState().Active; got != tc.want {
				t.Errorf("ResizeState().Active = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBeginResize_NotResizable(t *testing.T) {
	c, _ := newScenario(t, Options{})
	col, _ := c.Database().Column("title")
	col.Resizable = false
	if c.BeginResize("title", 150) {
		t.Errorf("BeginResize on a fixed-size column = true")
	}
}

func TestResize_ClampsToMaximum(t *testing.T) {
	c, rec := newScenario(t, Options{})
	if !c.BeginResize("title", 148) {
		t.Fatalf("BeginResize = false")
	}
	if got := c.ResizeState().OriginalWidth; got != 150 {
		t.Errorf("OriginalWidth = %v, want 150", got)
	}
	width, live := c.UpdateResize(148 + 1000)
	if width != 300 || !live {
		t.Errorf("UpdateResize = %v, %v, want 300, true", width, live)
	}
	c.EndResize()
	if c.ResizeState().Active {
		t.Errorf("resize still active after EndResize")
	}
	col, _ := c.Database().Column("title")
	if w, ok := col.ExplicitWidth(); !ok || w != 300 {
		t.Errorf("ExplicitWidth() = %v, %v, want 300, true", w, ok)
	}
	if diff := cmp.Diff([]float64{300}, rec.Resizes); diff != "" {
		t.Errorf("live widths mismatch (-want +got):\n%s", diff)
	}
	if got := c.ColumnWidths()[0]; got != 300 {
		t.Errorf("ColumnWidths()[0] = %v, want 300", got)
	}
}

func TestResize_ClampsToMinimum(t *testing.T) {
	c, _ := newScenario(t, Options{})
	c.BeginResize("title", 150)
	if width, _ := c.UpdateResize(-500); width != 80 {
		t.Errorf("UpdateResize(-500) width = %v, want 80", width)
	}
}

func TestResize_LiveThreshold(t *testing.T) {
	c, rec := newScenario(t, Options{LiveUpdateThreshold: 5})
	c.BeginResize("title", 150)

	steps := []struct {
		x        float64
		want     float64
		wantLive bool
	}{
		{152, 152, false},
		{155, 155, false},
		{156, 156, true},
		{160, 160, false},
		{162, 162, true},
	}
	for _, s := range steps {
		width, live := c.UpdateResize(s.x)
		if width != s.want || live != s.wantLive {
			t.Errorf("UpdateResize(%v) = %v, %v, want %v, %v", s.x, width, live, s.want, s.wantLive)
		}
	}
	c.UpdateResize(163)
	c.EndResize()
	if diff := cmp.Diff([]float64{156, 162, 163}, rec.Resizes); diff != "" {
		t.Errorf("reported widths mismatch (-want +got):\n%s", diff)
	}
}

func TestResize_CancelWithoutMovement(t *testing.T) {
	c, rec := newScenario(t, Options{})
	c.BeginResize("title", 150)
	c.EndResize()
	if c.ResizeState() != (ResizeState{}) {
		t.Errorf("ResizeState() = %+v, want idle", c.ResizeState())
	}
	if len(rec.Resizes) != 0 {
		t.Errorf("cancelled resize reported %v", rec.Resizes)
	}
	if width, live := c.UpdateResize(400); width != 0 || live {
		t.Errorf("UpdateResize while idle = %v, %v, want 0, false", width, live)
	}
}

func TestResize_RemovedColumnCancels(t *testing.T) {
	c, _ := newScenario(t, Options{})
	c.BeginResize("title", 150)
	c.RemoveColumn("title")
	if c.ResizeState().Active {
		t.Errorf("resize of a removed column still active")
	}
}
