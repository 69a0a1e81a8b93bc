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
	"fmt"
	"strings"
)

// Kind identifies which variant a Value holds. Column types are declared
// with the same set of kinds.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindDate
	KindCheckbox
	KindSelect
	KindMultiSelect
	KindPerson
	KindURL
	KindEmail
	KindPhone
)

var kindNames = [...]string{
	KindEmpty:       "empty",
	KindText:        "text",
	KindNumber:      "number",
	KindDate:        "date",
	KindCheckbox:    "checkbox",
	KindSelect:      "select",
	KindMultiSelect: "multi_select",
	KindPerson:      "person",
	KindURL:         "url",
	KindEmail:       "email",
	KindPhone:       "phone",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String. It accepts "multiselect" as an
// alias of "multi_select".
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "multiselect" {
		return KindMultiSelect, nil
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return KindEmpty, fmt.Errorf("unknown cell kind %q", s)
}

// IsTextual reports whether values of this kind are matched by text filters.
func (k Kind) IsTextual() bool {
	switch k {
	case KindText, KindEmail, KindPhone, KindURL, KindPerson:
		return true
	}
	return false
}

// HasOptions reports whether a column of this kind declares a select palette.
func (k Kind) HasOptions() bool {
	return k == KindSelect || k == KindMultiSelect
}
