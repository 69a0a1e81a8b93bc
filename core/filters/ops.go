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
	"slices"

	"github.com/google/dbgrid/core/cells"
)

func lookupOp[T ~int](names map[T]string, s string) (T, bool) {
	for op, name := range names {
		if name == s {
			return op, true
		}
	}
	return 0, false
}

func sortedOps[T ~int](names map[T]string) []string {
	ops := make([]T, 0, len(names))
	for op := range names {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = names[op]
	}
	return out
}

// ParseTextOp returns the text operation named s.
func ParseTextOp(s string) (TextOp, bool) { return lookupOp(textOpNames, s) }

// ParseNumberOp returns the number operation named s.
func ParseNumberOp(s string) (NumberOp, bool) { return lookupOp(numberOpNames, s) }

// ParseDateOp returns the date operation named s.
func ParseDateOp(s string) (DateOp, bool) { return lookupOp(dateOpNames, s) }

// ParseSelectOp returns the select operation named s.
func ParseSelectOp(s string) (SelectOp, bool) { return lookupOp(selectOpNames, s) }

// ForKind returns the operation names offered for columns of kind k, in
// declaration order. Checkbox columns offer "checked" and "unchecked".
func ForKind(k cells.Kind) []string {
	switch FamilyOf(k) {
	case FamilyNumber:
		return sortedOps(numberOpNames)
	case FamilyDate:
		return sortedOps(dateOpNames)
	case FamilyCheckbox:
		return []string{"checked", "unchecked"}
	case FamilySelect:
		return sortedOps(selectOpNames)
	}
	return sortedOps(textOpNames)
}
