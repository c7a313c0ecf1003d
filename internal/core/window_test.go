package core

import (
	"testing"
	"time"
)

func TestWindowContainsInclusiveEdges(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: end}

	if !w.Contains(start) || !w.Contains(end) {
		t.Fatal("window edges should be inclusive")
	}
	if w.Contains(start.Add(-time.Second)) || w.Contains(end.Add(time.Second)) {
		t.Fatal("instants outside the window should be excluded")
	}
}

func TestLastMonths(t *testing.T) {
	cases := []struct {
		now       time.Time
		n         int
		wantYear  int
		wantMonth time.Month
	}{
		// Plain subtraction when the month index is past the lookback.
		{time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC), 3, 2026, time.May},
		// Year rolls back when the current month index is <= n.
		{time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 3, 2025, time.November},
		{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 3, 2025, time.December},
		{time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), 3, 2026, time.January},
	}
	for i, tc := range cases {
		w := LastMonths(tc.now, tc.n)
		if w.Start.Year() != tc.wantYear || w.Start.Month() != tc.wantMonth {
			t.Fatalf("case %d: start = %v, want %d-%d", i, w.Start, tc.wantYear, tc.wantMonth)
		}
		if w.Start.Day() != 1 {
			t.Fatalf("case %d: start should be the first of the month, got day %d", i, w.Start.Day())
		}
		if !w.End.Equal(tc.now) {
			t.Fatalf("case %d: end = %v, want now", i, w.End)
		}
	}
}

func TestMonthToDate(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	w := MonthToDate(now)
	if w.Start.Day() != 1 || w.Start.Month() != time.August || w.Start.Hour() != 0 {
		t.Fatalf("start = %v, want midnight on 2026-08-01", w.Start)
	}
}
