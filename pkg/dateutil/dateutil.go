// Package dateutil holds the calendar helpers the display derives its rolling
// date window from. Everything works on local time and YYYY-MM-DD date keys.
package dateutil

import (
	"fmt"
	"time"
)

// KeyLayout is the date-key wire format, total-ordered by plain string
// comparison.
const KeyLayout = "2006-01-02"

// Weekdays indexes short weekday labels by time.Weekday (Sunday = 0).
var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatKey renders t as a date key in t's location.
func FormatKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// TodayKey returns now's date key.
func TodayKey(now time.Time) string {
	return FormatKey(now)
}

// Offset returns now shifted by days whole days.
func Offset(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, days)
}

// ParseKey parses a date key in the local location of now-style callers.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("dateutil: parse %q: %w", key, err)
	}
	return t, nil
}

// DaysLeft returns the signed number of days from now's date to the deadline
// key, measured midnight-to-midnight and rounded up. Today's deadline is 0,
// yesterday's is -1. Malformed keys return an error; callers must guard.
func DaysLeft(deadline string, now time.Time) (int, error) {
	d, err := time.Parse(KeyLayout, deadline)
	if err != nil {
		return 0, fmt.Errorf("dateutil: parse deadline %q: %w", deadline, err)
	}
	// Both sides pinned to UTC midnight so the difference is a whole number
	// of days regardless of DST in the local zone.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(today) / (24 * time.Hour)), nil
}

// WeekdayLabel returns the short weekday label for t.
func WeekdayLabel(t time.Time) string {
	return Weekdays[int(t.Weekday())]
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
