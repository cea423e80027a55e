// Package content defines the documents stored for a classroom display and
// the reconciled view model the presentation layer reads.
package content

// MaxAds is the largest ad list the editing side will persist. The display
// tolerates any length anyway.
const MaxAds = 5

// ScheduleItem is one row in a day's schedule column.
type ScheduleItem struct {
	Time    string `json:"time"`
	Content string `json:"content"`
}

// NoticeItem is one line in the notice board for a given day.
type NoticeItem struct {
	Text        string `json:"text"`
	IsHighlight bool   `json:"is_highlight,omitempty"`
}

// AssignmentItem is a dated deliverable. Deadline is a YYYY-MM-DD date key.
type AssignmentItem struct {
	Deadline string `json:"deadline"`
	Subject  string `json:"subject"`
	Task     string `json:"task"`
}

// AdItem is one entry in the rotating ad surface.
type AdItem struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	DurationSec int    `json:"duration_sec,omitempty"`
}

// TimeInterval is a same-day HH:MM range. Entries with missing fields or
// start >= end never match; the gate skips them.
type TimeInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Settings is the display_settings document.
type Settings struct {
	SchoolName string         `json:"school_name"`
	ClassName  string         `json:"class_name"`
	Ads        []AdItem       `json:"ads,omitempty"`
	QuietHours []TimeInterval `json:"quiet_hours,omitempty"`
}

// DailyDoc is one date-keyed document of daily data.
type DailyDoc struct {
	Date        string           `json:"date"`
	Schedules   []ScheduleItem   `json:"schedules,omitempty"`
	Notices     []NoticeItem     `json:"notices,omitempty"`
	Assignments []AssignmentItem `json:"assignments,omitempty"`
}

// ViewModel is the single reconciled snapshot of everything on screen.
// It has exactly one writer (the reconciler); every other component treats
// it as read-only.
type ViewModel struct {
	SchoolName string                    `json:"school_name"`
	ClassName  string                    `json:"class_name"`
	DateToday  string                    `json:"date_today"`
	Schedules  map[string][]ScheduleItem `json:"weekly_schedules"`
	Notices    []NoticeItem              `json:"notices"`
	// Assignments is kept sorted by deadline ascending.
	Assignments []AssignmentItem `json:"assignments"`
	Ads         []AdItem         `json:"ads"`
	QuietHours  []TimeInterval   `json:"quiet_hours"`
}

// NewViewModel returns an empty view model with the placeholder header used
// until the settings feed delivers.
func NewViewModel(today string) *ViewModel {
	return &ViewModel{
		SchoolName: "Loading...",
		DateToday:  today,
		Schedules:  make(map[string][]ScheduleItem),
	}
}

// Clone returns a deep copy, used by the HTTP surface so readers never hold
// a reference into the live model.
func (vm *ViewModel) Clone() ViewModel {
	out := *vm
	out.Schedules = make(map[string][]ScheduleItem, len(vm.Schedules))
	for k, v := range vm.Schedules {
		out.Schedules[k] = append([]ScheduleItem(nil), v...)
	}
	out.Notices = append([]NoticeItem(nil), vm.Notices...)
	out.Assignments = append([]AssignmentItem(nil), vm.Assignments...)
	out.Ads = append([]AdItem(nil), vm.Ads...)
	out.QuietHours = append([]TimeInterval(nil), vm.QuietHours...)
	return out
}
