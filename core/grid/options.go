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

package grid

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/google/dbgrid/core/columns"
)

const (
	DefaultGripWidth           = 8
	DefaultLiveUpdateThreshold = 2
	DefaultContentWidth        = 1024
)

// Options configure a Coordinator. Zero fields take their defaults.
type Options struct {
	// AllowsMultipleSelection keeps earlier selections when a new row is
	// toggled. Otherwise selection is single.
	AllowsMultipleSelection bool
	// GripWidth is the width of the zone, ending at a column's trailing
	// boundary, in which a resize gesture may begin.
	GripWidth float64
	// LiveUpdateThreshold is how far a resize must move from the last
	// reported width before the surface is told again.
	LiveUpdateThreshold float64
	// ContentWidth and Padding feed column layout.
	ContentWidth float64
	Padding      float64
	Measurer     columns.Measurer
	// Language selects the collation for text sorting.
	Language language.Tag
	Logger   *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.GripWidth <= 0 {
		o.GripWidth = DefaultGripWidth
	}
	if o.LiveUpdateThreshold <= 0 {
		o.LiveUpdateThreshold = DefaultLiveUpdateThreshold
	}
	if o.ContentWidth <= 0 {
		o.ContentWidth = DefaultContentWidth
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.Measurer == nil {
		o.Measurer = columns.RuneWidthMeasurer{CellWidth: 7}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
