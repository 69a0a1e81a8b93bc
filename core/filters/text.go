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
	"strings"

	"golang.org/x/text/cases"

	"github.com/google/dbgrid/core/cells"
)

// TextOp is a text filter operation.
type TextOp int

const (
	TextContains TextOp = iota
	TextEquals
	TextStartsWith
	TextEndsWith
	TextIsEmpty
	TextIsNotEmpty
)

var textOpNames = map[TextOp]string{
	TextContains:   "contains",
	TextEquals:     "equals",
	TextStartsWith: "starts_with",
	TextEndsWith:   "ends_with",
	TextIsEmpty:    "is_empty",
	TextIsNotEmpty: "is_not_empty",
}

func (op TextOp) String() string { return textOpNames[op] }

// TextFilter matches the text projection of a cell, ignoring case. Emails,
// phones, urls and people are matched by their projected string.
type TextFilter struct {
	Op    TextOp
	Value string
}

func (TextFilter) sealed()          {}
func (TextFilter) Family() Family   { return FamilyText }
func (f TextFilter) String() string { return fmt.Sprintf("text %s %q", f.Op, f.Value) }

func (f TextFilter) Evaluate(v cells.Value) bool {
	text := v.Text()
	switch f.Op {
	case TextIsEmpty:
		return text == ""
	case TextIsNotEmpty:
		return text != ""
	}

	fold := cases.Fold()
	text = fold.String(text)
	needle := fold.String(f.Value)
	switch f.Op {
	case TextContains:
		return strings.Contains(text, needle)
	case TextEquals:
		return text == needle
	case TextStartsWith:
		return strings.HasPrefix(text, needle)
	case TextEndsWith:
		return strings.HasSuffix(text, needle)
	}
	return false
}
