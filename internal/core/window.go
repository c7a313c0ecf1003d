package core

import "time"

// Window is a bounded date range used to scope which transactions participate
// in an aggregation. Both edges are inclusive; every lookback in the API goes
// through one of the constructors below so the boundary convention is uniform.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// MonthToDate spans from the first instant of the current month to now.
func MonthToDate(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: now}
}

// LastDays spans the n days up to now.
func LastDays(now time.Time, n int) Window {
	return Window{Start: now.AddDate(0, 0, -n), End: now}
}

// LastMonths spans from the first day of the month n months back to now,
// rolling the year back when the current month index is not past n.
func LastMonths(now time.Time, n int) Window {
	year, month := now.Year(), int(now.Month())
	if month > n {
		month -= n
	} else {
		year--
		month += 12 - n
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: now}
}
