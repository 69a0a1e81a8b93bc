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

	"github.com/google/dbgrid/core/cells"
)

// CheckboxFilter matches checkbox cells in the given state. Cells of any
// other kind never match; an empty cell is not treated as unchecked.
type CheckboxFilter struct {
	Checked bool
}

func (CheckboxFilter) sealed()        {}
func (CheckboxFilter) Family() Family { return FamilyCheckbox }

func (f CheckboxFilter) String() string {
	if f.Checked {
		return "checkbox checked"
	}
	return "checkbox unchecked"
}

func (f CheckboxFilter) Evaluate(v cells.Value) bool {
	b, ok := v.AsCheckbox()
	return ok && b == f.Checked
}

// SelectOp is a select filter operation.
type SelectOp int

const (
	// SelectIncludes passes cells sharing at least one option with the
	// filter.
	SelectIncludes SelectOp = iota
	// SelectExcludes passes cells sharing no option with the filter.
	SelectExcludes
	SelectIsEmpty
	SelectIsNotEmpty
)

var selectOpNames = map[SelectOp]string{
	SelectIncludes:   "includes",
	SelectExcludes:   "excludes",
	SelectIsEmpty:    "is_empty",
	SelectIsNotEmpty: "is_not_empty",
}

func (op SelectOp) String() string { return selectOpNames[op] }

// SelectFilter tests set membership of option ids. A single select is a
// singleton set; cells of other kinds are the empty set.
type SelectFilter struct {
	Op        SelectOp
	OptionIDs []string
}

func (SelectFilter) sealed()          {}
func (SelectFilter) Family() Family   { return FamilySelect }
func (f SelectFilter) String() string { return fmt.Sprintf("select %s %v", f.Op, f.OptionIDs) }

func (f SelectFilter) Evaluate(v cells.Value) bool {
	ids := v.OptionIDs()
	switch f.Op {
	case SelectIsEmpty:
		return len(ids) == 0
	case SelectIsNotEmpty:
		return len(ids) > 0
	case SelectIncludes:
		return intersects(ids, f.OptionIDs)
	case SelectExcludes:
		return !intersects(ids, f.OptionIDs)
	}
	return false
}

func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
