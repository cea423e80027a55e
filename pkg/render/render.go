// Package render projects the view model into display sections. Rendering is
// a pure function of the model and "now": it never mutates shared state and
// may be repeated at any time with the same result.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/gntech/signage/pkg/content"
	"github.com/gntech/signage/pkg/dateutil"
	"github.com/gntech/signage/pkg/tui/theme"
)

// ColumnCount is how many weekday schedule columns the board shows.
const ColumnCount = 3

// AssignmentWindowDays is how far back past deadlines stay visible.
const AssignmentWindowDays = 5

// DueBucket classifies an assignment's countdown for styling.
type DueBucket int

const (
	Overdue DueBucket = iota
	DueToday
	Urgent // due within 3 days
	Upcoming
)

// Bucket maps a days-left count to its display bucket.
func Bucket(days int) DueBucket {
	switch {
	case days < 0:
		return Overdue
	case days == 0:
		return DueToday
	case days <= 3:
		return Urgent
	default:
		return Upcoming
	}
}

// Column is one weekday schedule column.
type Column struct {
	DateKey string
	Title   string
	IsToday bool
	Body    string
}

// Panel is a titled scrollable section body.
type Panel struct {
	Title string
	Body  string
}

// Frame is one full projection of the board.
type Frame struct {
	Header      string
	Columns     []Column
	Notices     Panel
	Assignments Panel
	Ad          string
}

// Renderer renders frames with a fixed theme.
type Renderer struct {
	th theme.Theme
}

// New creates a renderer.
func New(th theme.Theme) *Renderer {
	return &Renderer{th: th}
}

// Build projects vm at now into a frame. width is the per-panel content
// width used for wrapping; values below 10 fall back to 10.
func (r *Renderer) Build(vm *content.ViewModel, now time.Time, width int) Frame {
	if width < 10 {
		width = 10
	}
	return Frame{
		Header:      r.header(vm, now),
		Columns:     r.columns(vm, now, width),
		Notices:     Panel{Title: "Notices", Body: r.notices(vm, width)},
		Assignments: Panel{Title: "Assignments", Body: r.assignments(vm, now, width)},
		Ad:          r.AdSurface(firstAd(vm.Ads), false, width),
	}
}

func firstAd(ads []content.AdItem) *content.AdItem {
	if len(ads) == 0 {
		return nil
	}
	return &ads[0]
}

func (r *Renderer) header(vm *content.ViewModel, now time.Time) string {
	th := r.th.Header
	parts := []string{
		th.Date.Render(fmt.Sprintf("%d/%d", int(now.Month()), now.Day())),
		th.Day.Render("(" + dateutil.WeekdayLabel(now) + ")"),
	}
	if vm.ClassName != "" {
		parts = append(parts, th.Class.Render(vm.ClassName))
	}
	parts = append(parts, th.School.Render(vm.SchoolName))
	return strings.Join(parts, " ")
}

// WeekdayColumns returns the next n weekdays starting from now's date,
// skipping Saturdays and Sundays.
func WeekdayColumns(now time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	for offset := 0; len(days) < n; offset++ {
		d := dateutil.Offset(now, offset)
		if dateutil.IsWeekend(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

func (r *Renderer) columns(vm *content.ViewModel, now time.Time, width int) []Column {
	th := r.th.Column
	today := dateutil.TodayKey(now)
	cols := make([]Column, 0, ColumnCount)
	for _, day := range WeekdayColumns(now, ColumnCount) {
		key := dateutil.FormatKey(day)
		title := fmt.Sprintf("%02d/%02d (%s)", int(day.Month()), day.Day(), dateutil.WeekdayLabel(day))

		items := vm.Schedules[key]
		var body string
		if len(items) == 0 {
			body = th.Empty.Render("No schedule")
		} else {
			lines := make([]string, 0, len(items))
			for _, item := range items {
				line := th.Time.Render(item.Time) + " " + th.Content.Render(item.Content)
				lines = append(lines, wordwrap.String(line, width))
			}
			body = strings.Join(lines, "\n")
		}
		cols = append(cols, Column{
			DateKey: key,
			Title:   title,
			IsToday: key == today,
			Body:    body,
		})
	}
	return cols
}

func (r *Renderer) notices(vm *content.ViewModel, width int) string {
	th := r.th.Notice
	if len(vm.Notices) == 0 {
		return th.Empty.Render("No notices today")
	}
	lines := make([]string, 0, len(vm.Notices))
	for _, n := range vm.Notices {
		if n.IsHighlight {
			lines = append(lines, wordwrap.String(th.Highlight.Render("! "+n.Text), width))
		} else {
			lines = append(lines, wordwrap.String(th.Item.Render("• "+n.Text), width))
		}
	}
	return strings.Join(lines, "\n")
}

// VisibleAssignments filters vm's assignment list to the display window
// (deadline within the last AssignmentWindowDays or later). The input is
// already sorted by deadline; order is preserved.
func VisibleAssignments(vm *content.ViewModel, now time.Time) []content.AssignmentItem {
	cutoff := dateutil.FormatKey(dateutil.Offset(now, -AssignmentWindowDays))
	out := make([]content.AssignmentItem, 0, len(vm.Assignments))
	for _, a := range vm.Assignments {
		if a.Deadline >= cutoff {
			out = append(out, a)
		}
	}
	return out
}

// DaysLeftLabel renders the countdown annotation for a deadline.
func DaysLeftLabel(days int) string {
	switch Bucket(days) {
	case Overdue:
		return "overdue"
	case DueToday:
		return "due today"
	default:
		if days == 1 {
			return "1 day left"
		}
		return fmt.Sprintf("%d days left", days)
	}
}

func (r *Renderer) assignments(vm *content.ViewModel, now time.Time, width int) string {
	th := r.th.Assignment
	visible := VisibleAssignments(vm, now)
	if len(visible) == 0 {
		return th.Empty.Render("Nothing due")
	}

	lines := make([]string, 0, len(visible))
	for _, a := range visible {
		days, err := dateutil.DaysLeft(a.Deadline, now)
		label := "?"
		style := th.Normal
		if err == nil {
			label = DaysLeftLabel(days)
			switch Bucket(days) {
			case Overdue:
				style = th.Overdue
			case DueToday:
				style = th.DueToday
			case Urgent:
				style = th.Urgent
			}
		}
		line := fmt.Sprintf("%s  %s  %s  %s",
			th.Row.Render(shortDate(a.Deadline)),
			style.Render(label),
			th.Row.Render(a.Subject),
			th.Row.Render(a.Task),
		)
		lines = append(lines, wordwrap.String(line, width))
	}
	return strings.Join(lines, "\n")
}

// shortDate trims the year off a date key for the table.
func shortDate(key string) string {
	if len(key) == len(dateutil.KeyLayout) {
		return key[5:]
	}
	return key
}

// AdSurface renders the ad panel body for the given ad. A nil ad yields the
// placeholder; quiet hides the ad entirely and explains why.
func (r *Renderer) AdSurface(ad *content.AdItem, quietNow bool, width int) string {
	th := r.th.Ad
	switch {
	case quietNow:
		return th.QuietNote.Render("(quiet hours)")
	case ad == nil:
		return th.Placeholder.Render("No ads configured")
	default:
		label := ad.ID
		if label == "" {
			label = ad.URL
		}
		body := th.Label.Render(label)
		if ad.URL != "" && ad.URL != label {
			body += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(ad.URL)
		}
		return wordwrap.String(body, width)
	}
}
