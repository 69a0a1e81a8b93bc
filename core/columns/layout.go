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

package columns

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/google/dbgrid/core/cells"
)

// Measurer returns the rendered width of a string. Font metrics belong to
// the rendering surface, so they are injected rather than looked up.
type Measurer interface {
	Measure(text string) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string) float64

func (f MeasureFunc) Measure(text string) float64 { return f(text) }

// RuneWidthMeasurer measures text in terminal cells (East Asian wide runes
// count double) scaled by CellWidth.
type RuneWidthMeasurer struct {
	CellWidth float64
}

func (m RuneWidthMeasurer) Measure(text string) float64 {
	w := m.CellWidth
	if w <= 0 {
		w = 1
	}
	return float64(runewidth.StringWidth(text)) * w
}

// Sampler returns up to n values of a column in display order. It is used
// by FitContent columns.
type Sampler func(c *Column, n int) []cells.Value

// LayoutOptions control Layout.
type LayoutOptions struct {
	// ContentWidth is the total width available. Fill columns share what is
	// left after all other columns are sized; with no fill column, flexible
	// columns grow evenly into it up to their maximum.
	ContentWidth float64
	// Padding is added on both sides of measured text.
	Padding  float64
	Measurer Measurer
}

// Layout resolves the width of every column. A user set explicit width
// takes precedence over the policy. Every width is within its policy
// bounds.
func Layout(cols []*Column, sample Sampler, opts LayoutOptions) []float64 {
	m := opts.Measurer
	if m == nil {
		m = RuneWidthMeasurer{CellWidth: 1}
	}
	widths := make([]float64, len(cols))
	var fills, flexibles []int
	used := 0.0
	totalWeight := 0.0

	for i, c := range cols {
		if w, ok := c.ExplicitWidth(); ok {
			widths[i] = c.Width.Clamp(w)
			used += widths[i]
			continue
		}
		switch c.Width.Kind() {
		case WidthFixed, WidthFlexible:
			widths[i] = c.Width.MinimumWidth()
			if c.Width.Kind() == WidthFlexible {
				flexibles = append(flexibles, i)
			}
		case WidthFitHeader:
			widths[i] = c.Width.Clamp(m.Measure(c.Name) + 2*opts.Padding)
		case WidthFitContent:
			widest := m.Measure(c.Name)
			if sample != nil {
				for _, v := range sample(c, c.Width.SampleSize()) {
					widest = math.Max(widest, m.Measure(c.DisplayText(v)))
				}
			}
			widths[i] = c.Width.Clamp(widest + 2*opts.Padding)
		case WidthFill:
			widths[i] = c.Width.MinimumWidth()
			fills = append(fills, i)
			totalWeight += c.Width.Weight()
			continue
		}
		used += widths[i]
	}

	if len(fills) > 0 {
		remaining := opts.ContentWidth - used
		for _, i := range fills {
			share := remaining * cols[i].Width.Weight() / totalWeight
			widths[i] = cols[i].Width.Clamp(share)
		}
		return widths
	}

	growFlexibles(cols, widths, flexibles, opts.ContentWidth-used)
	return widths
}

// growFlexibles hands out extra width evenly, redistributing what columns
// capped at their maximum cannot take.
func growFlexibles(cols []*Column, widths []float64, idx []int, extra float64) {
	for extra > 0.5 && len(idx) > 0 {
		share := extra / float64(len(idx))
		next := idx[:0:0]
		for _, i := range idx {
			grown := cols[i].Width.Clamp(widths[i] + share)
			extra -= grown - widths[i]
			widths[i] = grown
			if max, ok := cols[i].Width.MaximumWidth(); !ok || grown < max {
				next = append(next, i)
			}
		}
		if len(next) == len(idx) {
			return
		}
		idx = next
	}
}

// TrailingEdges returns, for each column, the x position of its trailing
// boundary given widths laid out from origin 0.
func TrailingEdges(widths []float64) []float64 {
	edges := make([]float64, len(widths))
	x := 0.0
	for i, w := range widths {
		x += w
		edges[i] = x
	}
	return edges
}
