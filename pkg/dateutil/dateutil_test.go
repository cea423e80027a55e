package dateutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.Local)
}

func TestFormatKey(t *testing.T) {
	got := FormatKey(date(2024, time.March, 7))
	if got != "2024-03-07" {
		t.Fatalf("FormatKey = %q, want 2024-03-07", got)
	}
}

func TestDaysLeft(t *testing.T) {
	tests := []struct {
		name     string
		deadline string
		now      time.Time
		want     int
	}{
		{"two days out", "2024-01-01", date(2023, time.December, 30), 2},
		{"due today", "2024-01-01", date(2024, time.January, 1), 0},
		{"overdue", "2024-01-01", date(2024, time.January, 2), -1},
		{"across month", "2024-03-02", date(2024, time.February, 28), 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DaysLeft(tc.deadline, tc.now)
			if err != nil {
				t.Fatalf("DaysLeft(%q): %v", tc.deadline, err)
			}
			if got != tc.want {
				t.Errorf("DaysLeft(%q, %s) = %d, want %d", tc.deadline, FormatKey(tc.now), got, tc.want)
			}
		})
	}
}

func TestDaysLeftMalformed(t *testing.T) {
	if _, err := DaysLeft("not-a-date", date(2024, time.January, 1)); err == nil {
		t.Fatal("expected error for malformed deadline")
	}
}

func TestOffset(t *testing.T) {
	got := FormatKey(Offset(date(2024, time.February, 28), 2))
	if got != "2024-03-01" {
		t.Fatalf("Offset across leap boundary = %q, want 2024-03-01", got)
	}
}

func TestWeekdayLabel(t *testing.T) {
	// 2024-03-03 is a Sunday.
	if got := WeekdayLabel(date(2024, time.March, 3)); got != "Sun" {
		t.Fatalf("WeekdayLabel = %q, want Sun", got)
	}
	if got := WeekdayLabel(date(2024, time.March, 8)); got != "Fri" {
		t.Fatalf("WeekdayLabel = %q, want Fri", got)
	}
}

func TestIsWeekend(t *testing.T) {
	if !IsWeekend(date(2024, time.March, 2)) || !IsWeekend(date(2024, time.March, 3)) {
		t.Fatal("Saturday/Sunday should be weekend")
	}
	if IsWeekend(date(2024, time.March, 4)) {
		t.Fatal("Monday should not be weekend")
	}
}
