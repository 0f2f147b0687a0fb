// Package calendar implements the temporal functions of the booking engine:
// month grid generation, calendar-day bucketing, and the planner week strip.
//
// All functions operate on local calendar dates, not instants. A booking that
// crosses midnight belongs to the day it starts on; callers must not
// "correct" this, as clients depend on the attribution rule.
package calendar

import "time"

// Cell is one slot in a month grid. A nil Day is a leading placeholder
// before the first of the month.
type Cell struct {
	Day *time.Time
}

// Empty reports whether the cell is a placeholder.
func (c Cell) Empty() bool {
	return c.Day == nil
}

// MonthGrid produces a 7-column Monday-start grid for the given month.
//
// The sequence begins with empty placeholder cells for weekdays before day 1
// and continues with one cell per day of the month. There is no trailing
// fill: the final week may be short, which is a rendering concern left to
// the caller.
func MonthGrid(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Shift Sunday-start weekday numbering to Monday=0.
	lead := (int(first.Weekday()) + 6) % 7

	cells := make([]Cell, 0, lead+daysInMonth)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		cells = append(cells, Cell{Day: &day})
	}
	return cells
}

// WeekStrip returns seven consecutive calendar days centered on selected:
// three days before, the selected day, then three days after. Month
// boundaries are crossed transparently.
func WeekStrip(selected time.Time) [7]time.Time {
	base := DateOf(selected)
	var days [7]time.Time
	for i := 0; i < 7; i++ {
		days[i] = base.AddDate(0, 0, i-3)
	}
	return days
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOf truncates t to midnight of its local calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay parses a calendar day in "2006-01-02" form.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// FormatDay renders t as a calendar day in "2006-01-02" form.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}
