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
	"fmt"
	"math"
)

// MinimumColumnWidth is the lower bound for width modes that do not declare
// one of their own.
const MinimumColumnWidth = 44

// WidthModeKind enumerates the width sizing policies.
type WidthModeKind int

const (
	WidthFixed WidthModeKind = iota
	WidthFlexible
	WidthFitContent
	WidthFitHeader
	WidthFill
)

// WidthMode is the policy a column's pixel width is derived from.
type WidthMode struct {
	kind       WidthModeKind
	width      float64 // fixed
	min, max   float64 // flexible; max is +Inf when unbounded
	sampleSize int     // fitContent
	weight     float64 // fill
}

// Fixed is a constant width.
func Fixed(width float64) WidthMode {
	return WidthMode{kind: WidthFixed, width: width}
}

// Flexible is bounded by min and max. A max that is zero, negative or
// infinite leaves the column unbounded above.
func Flexible(min, max float64) WidthMode {
	if max <= 0 || math.IsInf(max, 1) {
		max = math.Inf(1)
	}
	if max < min {
		max = min
	}
	return WidthMode{kind: WidthFlexible, min: min, max: max}
}

// FitContent sizes to the widest of the first sampleSize values.
func FitContent(sampleSize int) WidthMode {
	if sampleSize <= 0 {
		sampleSize = 1
	}
	return WidthMode{kind: WidthFitContent, sampleSize: sampleSize}
}

// FitHeader sizes to the column's display name.
func FitHeader() WidthMode {
	return WidthMode{kind: WidthFitHeader}
}

// Fill takes a share of the remaining width proportional to weight.
func Fill(weight float64) WidthMode {
	if weight <= 0 {
		weight = 1
	}
	return WidthMode{kind: WidthFill, weight: weight}
}

func (m WidthMode) Kind() WidthModeKind { return m.kind }

// SampleSize is the number of values a FitContent column measures.
func (m WidthMode) SampleSize() int { return m.sampleSize }

// Weight is the share of a Fill column.
func (m WidthMode) Weight() float64 { return m.weight }

// MinimumWidth is the smallest width the policy allows.
func (m WidthMode) MinimumWidth() float64 {
	switch m.kind {
	case WidthFixed:
		return m.width
	case WidthFlexible:
		return m.min
	}
	return MinimumColumnWidth
}

// MaximumWidth is the largest width the policy allows. ok is false when the
// policy is unbounded.
func (m WidthMode) MaximumWidth() (width float64, ok bool) {
	switch m.kind {
	case WidthFixed:
		return m.width, true
	case WidthFlexible:
		if math.IsInf(m.max, 1) {
			return 0, false
		}
		return m.max, true
	}
	return 0, false
}

// Clamp bounds w to [MinimumWidth, MaximumWidth].
func (m WidthMode) Clamp(w float64) float64 {
	if math.IsNaN(w) {
		return m.MinimumWidth()
	}
	if max, ok := m.MaximumWidth(); ok && w > max {
		w = max
	}
	if min := m.MinimumWidth(); w < min {
		w = min
	}
	return w
}

func (m WidthMode) String() string {
	switch m.kind {
	case WidthFixed:
		return fmt.Sprintf("fixed(%g)", m.width)
	case WidthFlexible:
		if max, ok := m.MaximumWidth(); ok {
			return fmt.Sprintf("flexible(%g,%g)", m.min, max)
		}
		return fmt.Sprintf("flexible(%g,inf)", m.min)
	case WidthFitContent:
		return fmt.Sprintf("fitContent(%d)", m.sampleSize)
	case WidthFitHeader:
		return "fitHeader"
	case WidthFill:
		return fmt.Sprintf("fill(%g)", m.weight)
	}
	return "unknown"
}
