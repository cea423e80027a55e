// Package adrotate cycles the ad surface through the configured ad list.
//
// The scheduler is a passive state machine: the caller owns the actual timer
// (a tea.Tick in the display program, a fake clock in tests) and drives it by
// calling Tick when the timer fires. Cancellation uses a generation token so
// a restart can never leave two rotation chains racing: every Restart bumps
// the generation and ticks scheduled under an older generation are ignored.
package adrotate

import (
	"time"

	"github.com/gntech/signage/pkg/content"
)

const (
	// QuietPollInterval is how often a hidden ad surface re-checks whether
	// quiet hours have ended.
	QuietPollInterval = 60 * time.Second

	// DefaultAdDuration applies when an ad has no duration of its own.
	DefaultAdDuration = 5 * time.Second
)

// View is what the ad surface should currently show.
type View struct {
	// Ad is the item on display, nil when the surface is hidden or idle.
	Ad *content.AdItem
	// Quiet marks the surface as hidden for quiet hours.
	Quiet bool
}

// Scheduler rotates through a bounded ad list with per-item durations.
type Scheduler struct {
	quiet   func(time.Time) bool
	ads     []content.AdItem
	index   int
	gen     int
	current View
}

// New creates a scheduler consulting quiet before every display tick.
func New(quiet func(time.Time) bool) *Scheduler {
	if quiet == nil {
		quiet = func(time.Time) bool { return false }
	}
	return &Scheduler{quiet: quiet}
}

// Current returns the view as of the last tick.
func (s *Scheduler) Current() View { return s.current }

// Gen returns the active generation token.
func (s *Scheduler) Gen() int { return s.gen }

// Restart replaces the ad list and resets rotation to the first ad. The
// pending timer chain is cancelled by the generation bump. active is false
// when the list is empty and no tick should be scheduled.
func (s *Scheduler) Restart(ads []content.AdItem) (gen int, active bool) {
	s.gen++
	s.ads = append([]content.AdItem(nil), ads...)
	s.index = 0
	s.current = View{}
	return s.gen, len(s.ads) > 0
}

// Tick runs one rotation step for the given generation. Stale generations
// return ok=false and must not be rescheduled. Otherwise the returned view is
// what to display now and delay is when to tick again.
func (s *Scheduler) Tick(gen int, now time.Time) (view View, delay time.Duration, ok bool) {
	if gen != s.gen || len(s.ads) == 0 {
		return View{}, 0, false
	}

	if s.quiet(now) {
		// Hide without advancing; re-check once quiet hours may be over.
		s.current = View{Quiet: true}
		return s.current, QuietPollInterval, true
	}

	ad := s.ads[s.index]
	s.index = (s.index + 1) % len(s.ads)
	s.current = View{Ad: &ad}

	delay = time.Duration(ad.DurationSec) * time.Second
	if delay <= 0 {
		delay = DefaultAdDuration
	}
	return s.current, delay, true
}
