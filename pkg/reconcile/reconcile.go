// Package reconcile merges the two realtime feeds (settings and daily data)
// into the single shared view model, and tracks the initial-load phase during
// which update side effects stay suppressed.
package reconcile

import (
	"sort"
	"time"

	"github.com/gntech/signage/pkg/content"
	"github.com/gntech/signage/pkg/dateutil"
)

// SettleDelay is how long after the second feed's first delivery the
// initial-load flag keeps suppressing side effects, absorbing the burst of
// near-simultaneous first deliveries.
const SettleDelay = 1000 * time.Millisecond

// DefaultSchoolName is shown when the settings document is absent.
const DefaultSchoolName = "School Name"

// Feed identifies one of the two realtime inputs.
type Feed int

const (
	FeedSettings Feed = iota
	FeedDaily
)

// FeedState tracks a feed's first delivery. It transitions Loading→Loaded
// exactly once.
type FeedState int

const (
	Loading FeedState = iota
	Loaded
)

// Delivery describes the outcome of applying one feed delivery.
type Delivery struct {
	// Suppressed is true while the initial-load phase is still active;
	// callers must not emit banner or audio effects for this delivery.
	Suppressed bool
	// SettleIn is nonzero exactly once per session: on the delivery that
	// completes both feeds' first loads. The caller schedules a single timer
	// and calls Settle when it fires.
	SettleIn time.Duration
}

// Reconciler owns the view model. It is the model's only writer; everything
// downstream reads the same instance.
type Reconciler struct {
	vm            *content.ViewModel
	settingsState FeedState
	dailyState    FeedState
	initialLoad   bool
	settleArmed   bool
}

// New creates a reconciler owning a fresh view model for today.
func New(now time.Time) *Reconciler {
	return &Reconciler{
		vm:          content.NewViewModel(dateutil.TodayKey(now)),
		initialLoad: true,
	}
}

// ViewModel exposes the shared model for read-only use.
func (r *Reconciler) ViewModel() *content.ViewModel { return r.vm }

// Snapshot returns a deep copy safe to hand to other goroutines (the HTTP
// surface).
func (r *Reconciler) Snapshot() content.ViewModel { return r.vm.Clone() }

// InitialLoad reports whether the startup suppression phase is still active.
func (r *Reconciler) InitialLoad() bool { return r.initialLoad }

// State returns the load state of the given feed.
func (r *Reconciler) State(f Feed) FeedState {
	if f == FeedSettings {
		return r.settingsState
	}
	return r.dailyState
}

// ApplySettings overwrites the settings-owned fields atomically. A nil doc is
// the explicit "absent" signal and resets them to defaults. Every delivery
// counts, even if the content is identical to the previous one: downstream
// re-render and ad-rotation restart happen unconditionally.
func (r *Reconciler) ApplySettings(doc *content.Settings) Delivery {
	if doc == nil {
		r.vm.SchoolName = DefaultSchoolName
		r.vm.ClassName = ""
		r.vm.Ads = nil
		r.vm.QuietHours = nil
	} else {
		r.vm.SchoolName = doc.SchoolName
		if r.vm.SchoolName == "" {
			r.vm.SchoolName = DefaultSchoolName
		}
		r.vm.ClassName = doc.ClassName
		r.vm.Ads = append([]content.AdItem(nil), doc.Ads...)
		r.vm.QuietHours = append([]content.TimeInterval(nil), doc.QuietHours...)
	}
	return r.markLoaded(FeedSettings)
}

// ApplyDaily fully rebuilds the daily-owned projections from the delivered
// document set; deliveries are complete snapshots, not incremental patches.
func (r *Reconciler) ApplyDaily(docs []content.DailyDoc, now time.Time) Delivery {
	today := dateutil.TodayKey(now)
	r.vm.DateToday = today
	r.vm.Schedules = make(map[string][]content.ScheduleItem)
	r.vm.Notices = nil
	r.vm.Assignments = nil

	for _, doc := range docs {
		if doc.Date >= today && len(doc.Schedules) > 0 {
			r.vm.Schedules[doc.Date] = append([]content.ScheduleItem(nil), doc.Schedules...)
		}
		if doc.Date == today {
			r.vm.Notices = append([]content.NoticeItem(nil), doc.Notices...)
		}
		r.vm.Assignments = append(r.vm.Assignments, doc.Assignments...)
	}

	// Deadline keys compare as calendar dates; the sort is stable so items
	// sharing a deadline keep document order.
	sort.SliceStable(r.vm.Assignments, func(i, j int) bool {
		return r.vm.Assignments[i].Deadline < r.vm.Assignments[j].Deadline
	})

	return r.markLoaded(FeedDaily)
}

// FeedFailed records a failed delivery: the feed still advances to Loaded so
// startup cannot hang on a broken feed, and the previous content is retained.
func (r *Reconciler) FeedFailed(f Feed) Delivery {
	return r.markLoaded(f)
}

// Settle ends the initial-load phase. Called once, when the timer scheduled
// via Delivery.SettleIn fires.
func (r *Reconciler) Settle() {
	r.initialLoad = false
}

func (r *Reconciler) markLoaded(f Feed) Delivery {
	if f == FeedSettings {
		r.settingsState = Loaded
	} else {
		r.dailyState = Loaded
	}
	d := Delivery{Suppressed: r.initialLoad}
	if r.initialLoad && !r.settleArmed && r.settingsState == Loaded && r.dailyState == Loaded {
		r.settleArmed = true
		d.SettleIn = SettleDelay
	}
	return d
}
