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
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Reversed returns the opposite direction.
func (d Direction) Reversed() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Comparer orders cell values. Text is compared with a collator for the
// configured language. A Comparer is not safe for concurrent use.
type Comparer struct {
	collator *collate.Collator
}

// NewComparer returns a Comparer collating text for tag.
func NewComparer(tag language.Tag) *Comparer {
	return &Comparer{collator: collate.New(tag)}
}

var (
	defaultMu       sync.Mutex
	defaultComparer = NewComparer(language.Und)
)

// Less reports whether a sorts before b in direction dir, using the root
// collation for text.
func Less(a, b Value, dir Direction) bool {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultComparer.Less(a, b, dir)
}

// Less reports whether a sorts before b in direction dir. Empty values sort
// after every non-empty value in both directions.
func (c *Comparer) Less(a, b Value, dir Direction) bool {
	ae, be := a.IsEmpty(), b.IsEmpty()
	switch {
	case ae:
		return false
	case be:
		return true
	}
	cmp := c.Compare(a, b)
	if dir == Descending {
		return cmp > 0
	}
	return cmp < 0
}

// Compare returns -1, 0 or 1 ordering a and b ascending. Empty values are
// greater than non-empty ones. Values of different kinds are ordered by
// their text projection.
func (c *Comparer) Compare(a, b Value) int {
	ae, be := a.IsEmpty(), b.IsEmpty()
	switch {
	case ae && be:
		return 0
	case ae:
		return 1
	case be:
		return -1
	}
	if a.kind != b.kind {
		return c.collator.CompareString(a.Text(), b.Text())
	}
	switch a.kind {
	case KindText, KindEmail, KindPhone:
		return c.collator.CompareString(a.str, b.str)
	case KindNumber:
		return compareFloat64s(a.num, b.num)
	case KindDate:
		return compareTimes(a.date, b.date)
	case KindCheckbox:
		return compareBools(a.flag, b.flag)
	case KindSelect:
		return strings.Compare(a.str, b.str)
	case KindMultiSelect:
		if len(a.ids) != len(b.ids) {
			if len(a.ids) < len(b.ids) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ids[0], b.ids[0])
	case KindPerson, KindURL:
		return c.collator.CompareString(a.Text(), b.Text())
	case KindEmpty:
		return 0
	}
	return 0
}

// compareFloat64s orders NaN after every other number.
func compareFloat64s(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}

// compareBools orders unchecked before checked.
func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}
