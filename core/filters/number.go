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

package filters

import (
	"fmt"
	"math"

	"github.com/google/dbgrid/core/cells"
)

// Epsilon is the tolerance of NumberEquals and NumberNotEquals.
const Epsilon = 1e-9

// NumberOp is a number filter operation.
type NumberOp int

const (
	NumberEquals NumberOp = iota
	NumberNotEquals
	NumberGreaterThan
	NumberGreaterOrEqual
	NumberLessThan
	NumberLessOrEqual
	NumberBetween // inclusive
	NumberIsEmpty
	NumberIsNotEmpty
)

var numberOpNames = map[NumberOp]string{
	NumberEquals:         "eq",
	NumberNotEquals:      "ne",
	NumberGreaterThan:    "gt",
	NumberGreaterOrEqual: "ge",
	NumberLessThan:       "lt",
	NumberLessOrEqual:    "le",
	NumberBetween:        "between",
	NumberIsEmpty:        "is_empty",
	NumberIsNotEmpty:     "is_not_empty",
}

func (op NumberOp) String() string { return numberOpNames[op] }

// NumberFilter compares number cells. A cell that is not a number is
// treated as empty: it passes NumberIsEmpty and fails everything else.
type NumberFilter struct {
	Op    NumberOp
	Value float64
	// Min and Max bound NumberBetween.
	Min, Max float64
}

// Between returns an inclusive range filter.
func Between(min, max float64) NumberFilter {
	return NumberFilter{Op: NumberBetween, Min: min, Max: max}
}

func (NumberFilter) sealed()        {}
func (NumberFilter) Family() Family { return FamilyNumber }

func (f NumberFilter) String() string {
	if f.Op == NumberBetween {
		return fmt.Sprintf("number between %g and %g", f.Min, f.Max)
	}
	return fmt.Sprintf("number %s %g", f.Op, f.Value)
}

func (f NumberFilter) Evaluate(v cells.Value) bool {
	n, ok := v.AsNumber()
	if !ok {
		return f.Op == NumberIsEmpty
	}
	switch f.Op {
	case NumberEquals:
		return math.Abs(n-f.Value) < Epsilon
	case NumberNotEquals:
		return math.Abs(n-f.Value) >= Epsilon
	case NumberGreaterThan:
		return n > f.Value
	case NumberGreaterOrEqual:
		return n >= f.Value
	case NumberLessThan:
		return n < f.Value
	case NumberLessOrEqual:
		return n <= f.Value
	case NumberBetween:
		return n >= f.Min && n <= f.Max
	case NumberIsEmpty:
		return false
	case NumberIsNotEmpty:
		return true
	}
	return false
}
