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

package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/google/dbgrid/core/cells"
	"github.com/google/dbgrid/core/filters"
)

// rangeSep separates the bounds of a between operand.
const rangeSep = ".."

// ParseFilter parses a filter URL value for a column of kind k. The format
// is op:operand, e.g. "contains:milk", "between:1..5", "past_days:7",
// "includes:a,b" or just "is_empty". For text columns a value without a
// known operation is a substring match on the whole value. Dates are parsed
// leniently in the clock's location.
func ParseFilter(k cells.Kind, raw string, clock filters.Clock) (filters.Filter, error) {
	opStr, operand, _ := strings.Cut(raw, ":")
	switch filters.FamilyOf(k) {
	case filters.FamilyNumber:
		return parseNumberFilter(opStr, operand)
	case filters.FamilyDate:
		return parseDateFilter(opStr, operand, clock)
	case filters.FamilyCheckbox:
		switch opStr {
		case "checked", "true":
			return filters.CheckboxFilter{Checked: true}, nil
		case "unchecked", "false":
			return filters.CheckboxFilter{Checked: false}, nil
		}
		return nil, fmt.Errorf("%w: checkbox %q", ErrInvalidFilter, raw)
	case filters.FamilySelect:
		op, ok := filters.ParseSelectOp(opStr)
		if !ok {
			op, operand = filters.SelectIncludes, raw
		}
		var ids []string
		if operand != "" {
			ids = strings.Split(operand, ",")
		}
		if (op == filters.SelectIncludes || op == filters.SelectExcludes) && len(ids) == 0 {
			return nil, fmt.Errorf("%w: %s needs option ids", ErrInvalidFilter, op)
		}
		return filters.SelectFilter{Op: op, OptionIDs: ids}, nil
	}
	op, ok := filters.ParseTextOp(opStr)
	if !ok {
		return filters.TextFilter{Op: filters.TextContains, Value: raw}, nil
	}
	return filters.TextFilter{Op: op, Value: operand}, nil
}

func parseNumberFilter(opStr, operand string) (filters.Filter, error) {
	op, ok := filters.ParseNumberOp(opStr)
	if !ok {
		return nil, fmt.Errorf("%w: unknown number operation %q", ErrInvalidFilter, opStr)
	}
	switch op {
	case filters.NumberIsEmpty, filters.NumberIsNotEmpty:
		return filters.NumberFilter{Op: op}, nil
	case filters.NumberBetween:
		lo, hi, ok := strings.Cut(operand, rangeSep)
		min, err1 := strconv.ParseFloat(lo, 64)
		max, err2 := strconv.ParseFloat(hi, 64)
		if !ok || err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: between %q", ErrInvalidFilter, operand)
		}
		return filters.Between(min, max), nil
	}
	v, err := strconv.ParseFloat(operand, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrInvalidFilter, op, operand, err)
	}
	return filters.NumberFilter{Op: op, Value: v}, nil
}

func parseDateFilter(opStr, operand string, clock filters.Clock) (filters.Filter, error) {
	op, ok := filters.ParseDateOp(opStr)
	if !ok {
		return nil, fmt.Errorf("%w: unknown date operation %q", ErrInvalidFilter, opStr)
	}
	loc := clock.Location
	if loc == nil {
		loc = time.Local
	}
	f := filters.DateFilter{Op: op, Clock: clock}
	switch op {
	case filters.DateIs, filters.DateBefore, filters.DateAfter:
		d, err := dateparse.ParseIn(operand, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: %v", ErrInvalidFilter, op, operand, err)
		}
		f.Date = d
	case filters.DateBetween:
		lo, hi, ok := strings.Cut(operand, rangeSep)
		start, err1 := dateparse.ParseIn(lo, loc)
		end, err2 := dateparse.ParseIn(hi, loc)
		if !ok || err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: between %q", ErrInvalidFilter, operand)
		}
		f.Date, f.End = start, end
	case filters.DatePastDays, filters.DateNextDays:
		n, err := strconv.Atoi(operand)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s %q", ErrInvalidFilter, op, operand)
		}
		f.Days = n
	}
	return f, nil
}

// FormatFilter is the inverse of ParseFilter.
func FormatFilter(f filters.Filter) string {
	switch f := f.(type) {
	case filters.TextFilter:
		return f.Op.String() + ":" + f.Value
	case filters.NumberFilter:
		switch f.Op {
		case filters.NumberIsEmpty, filters.NumberIsNotEmpty:
			return f.Op.String()
		case filters.NumberBetween:
			return "between:" + formatFloat(f.Min) + rangeSep + formatFloat(f.Max)
		}
		return f.Op.String() + ":" + formatFloat(f.Value)
	case filters.DateFilter:
		switch f.Op {
		case filters.DateIs, filters.DateBefore, filters.DateAfter:
			return f.Op.String() + ":" + f.Date.Format(cells.DateFormat)
		case filters.DateBetween:
			return "between:" + f.Date.Format(cells.DateFormat) + rangeSep + f.End.Format(cells.DateFormat)
		case filters.DatePastDays, filters.DateNextDays:
			return f.Op.String() + ":" + strconv.Itoa(f.Days)
		}
		return f.Op.String()
	case filters.CheckboxFilter:
		if f.Checked {
			return "checked"
		}
		return "unchecked"
	case filters.SelectFilter:
		if len(f.OptionIDs) == 0 {
			return f.Op.String()
		}
		return f.Op.String() + ":" + strings.Join(f.OptionIDs, ",")
	}
	return ""
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
