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
	"time"

	"github.com/google/dbgrid/core/cells"
)

// Clock supplies "now" and the calendar used by relative date filters.
type Clock struct {
	Now       func() time.Time
	Location  *time.Location
	WeekStart time.Weekday
}

// SystemClock reads the wall clock in the local time zone with weeks
// starting on Sunday.
func SystemClock() Clock {
	return Clock{Now: time.Now, Location: time.Local, WeekStart: time.Sunday}
}

// FixedClock always reports t, in t's location.
func FixedClock(t time.Time) Clock {
	return Clock{Now: func() time.Time { return t }, Location: t.Location(), WeekStart: time.Sunday}
}

func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.location())
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// startOfDay is midnight of t's day in the clock's location.
func (c Clock) startOfDay(t time.Time) time.Time {
	t = t.In(c.location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.location())
}

func (c Clock) startOfWeek(t time.Time) time.Time {
	day := c.startOfDay(t)
	back := (int(day.Weekday()) - int(c.WeekStart) + 7) % 7
	return day.AddDate(0, 0, -back)
}

// DateOp is a date filter operation.
type DateOp int

const (
	DateIs DateOp = iota // same calendar day as Date
	DateBefore           // strictly earlier day
	DateAfter            // strictly later day
	DateBetween          // Date..End inclusive, by day
	DateIsToday
	DateIsThisWeek
	DateIsThisMonth
	DatePastDays // within the last Days days, up to now
	DateNextDays // from now through the next Days days
	DateIsEmpty
	DateIsNotEmpty
)

var dateOpNames = map[DateOp]string{
	DateIs:          "is",
	DateBefore:      "before",
	DateAfter:       "after",
	DateBetween:     "between",
	DateIsToday:     "today",
	DateIsThisWeek:  "this_week",
	DateIsThisMonth: "this_month",
	DatePastDays:    "past_days",
	DateNextDays:    "next_days",
	DateIsEmpty:     "is_empty",
	DateIsNotEmpty:  "is_not_empty",
}

func (op DateOp) String() string { return dateOpNames[op] }

// DateFilter matches date cells. Relative operations read the clock on
// every evaluation. A cell that is not a date passes only DateIsEmpty.
type DateFilter struct {
	Op   DateOp
	Date time.Time
	End  time.Time // DateBetween
	Days int       // DatePastDays, DateNextDays
	// A nil Clock.Now reads time.Now; a nil Location is time.Local.
	Clock Clock
}

func (DateFilter) sealed()        {}
func (DateFilter) Family() Family { return FamilyDate }

func (f DateFilter) String() string {
	switch f.Op {
	case DateIs, DateBefore, DateAfter:
		return fmt.Sprintf("date %s %s", f.Op, f.Date.Format(cells.DateFormat))
	case DateBetween:
		return fmt.Sprintf("date between %s and %s", f.Date.Format(cells.DateFormat), f.End.Format(cells.DateFormat))
	case DatePastDays, DateNextDays:
		return fmt.Sprintf("date %s %d", f.Op, f.Days)
	}
	return "date " + f.Op.String()
}

func (f DateFilter) Evaluate(v cells.Value) bool {
	d, ok := v.AsDate()
	if !ok {
		return f.Op == DateIsEmpty
	}
	c := f.Clock
	day := c.startOfDay(d)
	switch f.Op {
	case DateIs:
		return day.Equal(c.startOfDay(f.Date))
	case DateBefore:
		return day.Before(c.startOfDay(f.Date))
	case DateAfter:
		return day.After(c.startOfDay(f.Date))
	case DateBetween:
		lo, hi := c.startOfDay(f.Date), c.startOfDay(f.End)
		if hi.Before(lo) {
			lo, hi = hi, lo
		}
		return !day.Before(lo) && !day.After(hi)
	case DateIsToday:
		return day.Equal(c.startOfDay(c.now()))
	case DateIsThisWeek:
		start := c.startOfWeek(c.now())
		return !d.Before(start) && d.Before(start.AddDate(0, 0, 7))
	case DateIsThisMonth:
		now := c.now()
		local := d.In(c.location())
		return local.Year() == now.Year() && local.Month() == now.Month()
	case DatePastDays:
		now := c.now()
		from := c.startOfDay(now).AddDate(0, 0, -f.Days)
		return !d.Before(from) && !d.After(now)
	case DateNextDays:
		now := c.now()
		until := c.startOfDay(now).AddDate(0, 0, f.Days+1)
		return !d.Before(now) && d.Before(until)
	case DateIsEmpty:
		return false
	case DateIsNotEmpty:
		return true
	}
	return false
}
