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
	"slices"
	"strings"

	"github.com/google/dbgrid/core/cells"
)

// Column declares one column of a database: its identity, the kind of value
// it holds and how it is sized, sorted, filtered and resized.
type Column struct {
	ID         string
	Name       string // display name, used as the header
	Type       cells.Kind
	Width      WidthMode
	Sortable   bool
	Filterable bool
	Resizable  bool
	// Options is the palette of a select or multi-select column, in
	// display order.
	Options []cells.SelectOption

	explicitWidth float64
	hasExplicit   bool
}

// NewColumn creates a sortable, filterable, resizable column with a
// flexible width.
func NewColumn(id, name string, kind cells.Kind) *Column {
	return &Column{
		ID:         id,
		Name:       name,
		Type:       kind,
		Width:      Flexible(80, 400),
		Sortable:   true,
		Filterable: true,
		Resizable:  true,
	}
}

// WithWidth sets the width policy and returns c.
func (c *Column) WithWidth(m WidthMode) *Column {
	c.Width = m
	if c.hasExplicit {
		c.explicitWidth = m.Clamp(c.explicitWidth)
	}
	return c
}

// WithOptions sets the select palette and returns c.
func (c *Column) WithOptions(opts ...cells.SelectOption) *Column {
	c.Options = slices.Clone(opts)
	return c
}

// ExplicitWidth returns the width set by a user resize, if any.
func (c *Column) ExplicitWidth() (float64, bool) {
	return c.explicitWidth, c.hasExplicit
}

// SetExplicitWidth overrides the resolved width. The width is clamped to
// the column's policy and the stored value is returned.
func (c *Column) SetExplicitWidth(w float64) float64 {
	c.explicitWidth = c.Width.Clamp(w)
	c.hasExplicit = true
	return c.explicitWidth
}

// ClearExplicitWidth returns the column to its policy width.
func (c *Column) ClearExplicitWidth() {
	c.explicitWidth = 0
	c.hasExplicit = false
}

// Option looks up a palette entry by id.
func (c *Column) Option(id string) (cells.SelectOption, bool) {
	for _, o := range c.Options {
		if o.ID == id {
			return o, true
		}
	}
	return cells.SelectOption{}, false
}

// DisplayText is the text shown for v in this column. Select ids resolve
// to option names; unknown ids are shown as is.
func (c *Column) DisplayText(v cells.Value) string {
	switch v.Kind() {
	case cells.KindSelect, cells.KindMultiSelect:
		ids := v.OptionIDs()
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			if o, ok := c.Option(id); ok {
				names = append(names, o.Name)
			} else {
				names = append(names, id)
			}
		}
		return strings.Join(names, ", ")
	}
	return v.Text()
}
