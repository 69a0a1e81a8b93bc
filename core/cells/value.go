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

package cells

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the layout of a date's text projection.
const DateFormat = "2006-01-02"

// Person references a user by id. Name is what the cell displays and what
// text filters match against.
type Person struct {
	ID    string
	Name  string
	Email string
}

// Value is the content of one cell. It is a closed union over Kind; the zero
// Value is Empty. Values are immutable: an edit replaces the whole Value.
type Value struct {
	kind Kind
	// str holds text, email, phone, url, and the select option id.
	str    string
	num    float64
	date   time.Time
	flag   bool
	ids    []string // sorted, deduplicated
	person *Person
}

func Empty() Value { return Value{} }

func Text(s string) Value { return Value{kind: KindText, str: s} }

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

func Checkbox(b bool) Value { return Value{kind: KindCheckbox, flag: b} }

// Select returns a single-select value. An empty id means no option is
// chosen.
func Select(optionID string) Value { return Value{kind: KindSelect, str: optionID} }

// NoSelect is a single-select value with no option chosen.
func NoSelect() Value { return Value{kind: KindSelect} }

// MultiSelect returns a multi-select value holding the set of ids.
// Duplicates collapse and order is irrelevant.
func MultiSelect(optionIDs ...string) Value {
	ids := make([]string, 0, len(optionIDs))
	for _, id := range optionIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return Value{kind: KindMultiSelect, ids: slices.Compact(ids)}
}

func PersonRef(p Person) Value { return Value{kind: KindPerson, person: &p} }

// NoPerson is a person value with no one assigned.
func NoPerson() Value { return Value{kind: KindPerson} }

// URL returns a url value. An empty string means no url.
func URL(raw string) Value { return Value{kind: KindURL, str: raw} }

func NoURL() Value { return Value{kind: KindURL} }

func Email(s string) Value { return Value{kind: KindEmail, str: s} }

func Phone(s string) Value { return Value{kind: KindPhone, str: s} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v holds no content: the Empty variant, an empty
// string, a missing optional, or an empty set.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindEmpty:
		return true
	case KindText, KindEmail, KindPhone, KindURL, KindSelect:
		return v.str == ""
	case KindNumber, KindDate, KindCheckbox:
		return false
	case KindMultiSelect:
		return len(v.ids) == 0
	case KindPerson:
		return v.person == nil
	}
	return true
}

// Text returns the text projection of v, used for text filters and for
// ordering values of different kinds.
func (v Value) Text() string {
	switch v.kind {
	case KindText, KindEmail, KindPhone, KindURL, KindSelect:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format(DateFormat)
	case KindCheckbox:
		return strconv.FormatBool(v.flag)
	case KindMultiSelect:
		return strings.Join(v.ids, ", ")
	case KindPerson:
		if v.person == nil {
			return ""
		}
		return v.person.Name
	case KindEmpty:
		return ""
	}
	return ""
}

func (v Value) String() string {
	if v.kind == KindEmpty {
		return "empty"
	}
	return v.kind.String() + "(" + v.Text() + ")"
}

// AsText returns the string held by a text value.
func (v Value) AsText() (string, bool) { return v.str, v.kind == KindText }

func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

func (v Value) AsDate() (time.Time, bool) { return v.date, v.kind == KindDate }

func (v Value) AsCheckbox() (bool, bool) { return v.flag, v.kind == KindCheckbox }

// AsSelect returns the chosen option id. ok is false if v is not a select
// value or no option is chosen.
func (v Value) AsSelect() (string, bool) {
	return v.str, v.kind == KindSelect && v.str != ""
}

// OptionIDs returns the option ids of a select or multi-select value as a
// set in ascending order. A single select yields a singleton.
func (v Value) OptionIDs() []string {
	switch v.kind {
	case KindSelect:
		if v.str == "" {
			return nil
		}
		return []string{v.str}
	case KindMultiSelect:
		return slices.Clone(v.ids)
	}
	return nil
}

func (v Value) AsPerson() (Person, bool) {
	if v.kind != KindPerson || v.person == nil {
		return Person{}, false
	}
	return *v.person, true
}

func (v Value) AsURL() (string, bool) {
	return v.str, v.kind == KindURL && v.str != ""
}

func (v Value) AsEmail() (string, bool) { return v.str, v.kind == KindEmail }

func (v Value) AsPhone() (string, bool) { return v.str, v.kind == KindPhone }

// Equal reports whether a and b hold the same variant and content.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindEmpty:
		return true
	case KindText, KindEmail, KindPhone, KindURL, KindSelect:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindDate:
		return a.date.Equal(b.date)
	case KindCheckbox:
		return a.flag == b.flag
	case KindMultiSelect:
		return slices.Equal(a.ids, b.ids)
	case KindPerson:
		if a.person == nil || b.person == nil {
			return a.person == b.person
		}
		return *a.person == *b.person
	}
	return false
}
