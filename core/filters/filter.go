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

// Package filters evaluates per-column predicates over cell values and
// combines them into a row filter.
package filters

import (
	"github.com/google/dbgrid/core/cells"
)

// Family groups filters by the kind of value they are written for.
type Family int

const (
	FamilyText Family = iota
	FamilyNumber
	FamilyDate
	FamilyCheckbox
	FamilySelect
)

func (f Family) String() string {
	switch f {
	case FamilyText:
		return "text"
	case FamilyNumber:
		return "number"
	case FamilyDate:
		return "date"
	case FamilyCheckbox:
		return "checkbox"
	case FamilySelect:
		return "select"
	}
	return "unknown"
}

// FamilyOf returns the filter family used for columns of kind k.
func FamilyOf(k cells.Kind) Family {
	switch k {
	case cells.KindNumber:
		return FamilyNumber
	case cells.KindDate:
		return FamilyDate
	case cells.KindCheckbox:
		return FamilyCheckbox
	case cells.KindSelect, cells.KindMultiSelect:
		return FamilySelect
	case cells.KindText, cells.KindEmail, cells.KindPhone, cells.KindURL, cells.KindPerson, cells.KindEmpty:
		return FamilyText
	}
	return FamilyText
}

// Filter is a predicate over one cell. The set of implementations is
// closed: TextFilter, NumberFilter, DateFilter, CheckboxFilter and
// SelectFilter.
type Filter interface {
	Evaluate(v cells.Value) bool
	Family() Family
	String() string
	sealed()
}
