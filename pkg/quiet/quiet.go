// Package quiet evaluates the configured quiet-hours intervals during which
// the display suppresses audio and the ad surface.
package quiet

import (
	"strconv"
	"strings"
	"time"

	"github.com/gntech/signage/pkg/content"
)

// IsQuiet reports whether now falls inside any interval. Intervals are
// half-open [start, end) on minutes of the day, same-day only: an entry with
// start >= end (an overnight span) never matches, and entries with missing
// or malformed fields are skipped.
func IsQuiet(now time.Time, intervals []content.TimeInterval) bool {
	nowMinutes := now.Hour()*60 + now.Minute()
	for _, iv := range intervals {
		start, ok := parseMinutes(iv.Start)
		if !ok {
			continue
		}
		end, ok := parseMinutes(iv.End)
		if !ok {
			continue
		}
		if nowMinutes >= start && nowMinutes < end {
			return true
		}
	}
	return false
}

func parseMinutes(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
