package display

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/gntech/signage/pkg/autoscroll"
	"github.com/gntech/signage/pkg/content"
	"github.com/gntech/signage/pkg/store"
)

type memoryPersistence struct {
	settings *content.Settings
	daily    map[string]*content.DailyDoc
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{daily: make(map[string]*content.DailyDoc)}
}

func (m *memoryPersistence) Settings() (*content.Settings, error) {
	if m.settings == nil {
		return nil, store.ErrNotFound
	}
	return m.settings, nil
}

func (m *memoryPersistence) SaveSettings(s *content.Settings) error {
	m.settings = s
	return nil
}

func (m *memoryPersistence) Daily(date string) (*content.DailyDoc, error) {
	d, ok := m.daily[date]
	if !ok {
		return nil, store.ErrNotFound
	}
	return d, nil
}

func (m *memoryPersistence) SaveDaily(d *content.DailyDoc) error {
	m.daily[d.Date] = d
	return nil
}

func (m *memoryPersistence) DeleteDaily(date string) error {
	delete(m.daily, date)
	return nil
}

func (m *memoryPersistence) DailyRange(_ context.Context, from string, limit int) ([]content.DailyDoc, error) {
	docs := make([]content.DailyDoc, 0, len(m.daily))
	for date, d := range m.daily {
		if date >= from {
			docs = append(docs, *d)
		}
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (m *memoryPersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

var testClock = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, db store.Persistence) *Model {
	t.Helper()
	m := New(Options{DB: db, Kiosk: true, Now: func() time.Time { return testClock }})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestFeedMessagesDriveReconciler(t *testing.T) {
	db := newMemoryPersistence()
	db.settings = &content.Settings{SchoolName: "Northside High", ClassName: "3-B"}
	db.daily["2026-09-01"] = &content.DailyDoc{
		Date:    "2026-09-01",
		Notices: []content.NoticeItem{{Text: "assembly at noon"}},
	}
	m := newTestModel(t, db)

	if !m.rec.InitialLoad() {
		t.Fatal("expected initial-load phase at start")
	}

	m.Update(m.loadSettings()())
	m.Update(m.loadDaily()())

	vm := m.rec.ViewModel()
	if vm.SchoolName != "Northside High" {
		t.Fatalf("school = %q", vm.SchoolName)
	}
	if len(vm.Notices) != 1 {
		t.Fatalf("notices = %d, want 1", len(vm.Notices))
	}
	if !m.rec.InitialLoad() {
		t.Fatal("settle timer has not fired yet; still initial load")
	}
	if m.notifier.BannerVisible() {
		t.Fatal("no banner during initial load")
	}

	m.Update(settleMsg{})
	if m.rec.InitialLoad() {
		t.Fatal("settle should end the initial-load phase")
	}

	// A post-settle delivery notifies even when content is unchanged.
	m.Update(m.loadDaily()())
	if !m.notifier.BannerVisible() {
		t.Fatal("expected update banner after settle")
	}
}

func TestSettingsAbsenceResetsToDefaults(t *testing.T) {
	db := newMemoryPersistence()
	m := newTestModel(t, db)

	m.Update(m.loadSettings()())
	if got := m.rec.ViewModel().SchoolName; got != "School Name" {
		t.Fatalf("school = %q, want default", got)
	}
}

func TestAdRotationFollowsSettingsDeliveries(t *testing.T) {
	db := newMemoryPersistence()
	db.settings = &content.Settings{
		SchoolName: "Northside High",
		Ads: []content.AdItem{
			{ID: "sports-day", DurationSec: 5},
			{ID: "book-fair", DurationSec: 10},
		},
	}
	m := newTestModel(t, db)

	m.Update(m.loadSettings()())
	oldGen := m.rotator.Gen()

	m.Update(adTickMsg{gen: oldGen, t: testClock})
	if m.adView.Ad == nil || m.adView.Ad.ID != "sports-day" {
		t.Fatalf("adView = %+v, want sports-day", m.adView)
	}
	m.Update(adTickMsg{gen: oldGen, t: testClock})
	if m.adView.Ad.ID != "book-fair" {
		t.Fatalf("adView = %+v, want book-fair", m.adView)
	}

	// Redelivering settings restarts the chain; the old generation is dead.
	m.Update(m.loadSettings()())
	newGen := m.rotator.Gen()
	if newGen == oldGen {
		t.Fatal("settings delivery should bump the rotation generation")
	}
	m.Update(adTickMsg{gen: oldGen, t: testClock})
	if m.adView.Ad != nil {
		t.Fatal("stale rotation tick must not change the view")
	}
	m.Update(adTickMsg{gen: newGen, t: testClock})
	if m.adView.Ad == nil || m.adView.Ad.ID != "sports-day" {
		t.Fatalf("restart should rewind to the first ad, got %+v", m.adView)
	}
}

func TestQuietHoursHideAdSurface(t *testing.T) {
	db := newMemoryPersistence()
	db.settings = &content.Settings{
		SchoolName: "Northside High",
		Ads:        []content.AdItem{{ID: "sports-day"}},
		QuietHours: []content.TimeInterval{{Start: "09:00", End: "11:00"}},
	}
	m := newTestModel(t, db)

	m.Update(m.loadSettings()())
	m.Update(adTickMsg{gen: m.rotator.Gen(), t: testClock}) // 10:00, inside quiet
	if !m.adView.Quiet || m.adView.Ad != nil {
		t.Fatalf("expected quiet ad view, got %+v", m.adView)
	}
}

func TestStartupOverlayDismissedByKey(t *testing.T) {
	db := newMemoryPersistence()
	m := New(Options{DB: db, Now: func() time.Time { return testClock }})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if !m.starting {
		t.Fatal("non-kiosk start should show the overlay")
	}
	m.Update(tea.KeyPressMsg{Text: " ", Code: ' '})
	if m.starting {
		t.Fatal("any key should start the board")
	}
}

func TestStartupCountdownExpires(t *testing.T) {
	db := newMemoryPersistence()
	m := New(Options{DB: db, Now: func() time.Time { return testClock }})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	for i := 0; i < StartupCountdown; i++ {
		if !m.starting {
			t.Fatalf("overlay gone after %d ticks", i)
		}
		m.Update(startupTickMsg{})
	}
	if m.starting {
		t.Fatal("overlay should dismiss when the countdown runs out")
	}
}

func TestKioskSkipsOverlay(t *testing.T) {
	m := newTestModel(t, newMemoryPersistence())
	if m.starting {
		t.Fatal("kiosk mode must not show the overlay")
	}
	if !m.chipVisible {
		t.Fatal("audio chip starts visible")
	}
	m.Update(chipHideMsg{})
	if m.chipVisible {
		t.Fatal("chip should auto-hide in kiosk mode")
	}
}

func TestScheduleColumnsGetScrollers(t *testing.T) {
	db := newMemoryPersistence()
	rows := make([]content.ScheduleItem, 0, 40)
	for i := 0; i < 40; i++ {
		rows = append(rows, content.ScheduleItem{Time: "09:00", Content: "Math"})
	}
	db.daily["2026-09-01"] = &content.DailyDoc{Date: "2026-09-01", Schedules: rows}
	m := newTestModel(t, db)
	m.Update(m.loadDaily()())

	if len(m.frame.Columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(m.frame.Columns))
	}
	for _, c := range m.frame.Columns {
		if _, ok := m.scrollers.Get(c.DateKey); !ok {
			t.Fatalf("no scroller for column %s", c.DateKey)
		}
	}
	if _, ok := m.scrollers.Get(panelNotices); !ok {
		t.Fatal("notices scroller missing")
	}

	// Today's column holds far more rows than fit, so its surface must
	// report the overflow the scroller needs to see.
	today := m.columns["2026-09-01"]
	if today == nil {
		t.Fatal("no surface for today's column")
	}
	if today.ContentHeight() <= today.VisibleHeight() {
		t.Fatalf("content %d fits in %d lines, expected overflow",
			today.ContentHeight(), today.VisibleHeight())
	}
}

func TestWatchStartFailureSchedulesRetry(t *testing.T) {
	m := newTestModel(t, newMemoryPersistence())

	_, cmd := m.Update(watchStartedMsg{err: errors.New("inotify limit")})
	if cmd == nil {
		t.Fatal("expected a retry to be scheduled")
	}
	if m.status == "" {
		t.Fatal("expected the failure to surface in the status line")
	}
}

func TestImmediateAdTickUsesInjectedClock(t *testing.T) {
	m := newTestModel(t, newMemoryPersistence())

	msg, ok := m.adTickCmd(3, 0)().(adTickMsg)
	if !ok {
		t.Fatal("expected an immediate ad tick")
	}
	if msg.gen != 3 || !msg.t.Equal(testClock) {
		t.Fatalf("tick = %+v", msg)
	}
}

func TestUserInputPausesScrollers(t *testing.T) {
	db := newMemoryPersistence()
	db.daily["2026-09-01"] = &content.DailyDoc{
		Date: "2026-09-01",
		Notices: []content.NoticeItem{
			{Text: "one"}, {Text: "two"}, {Text: "three"}, {Text: "four"},
			{Text: "five"}, {Text: "six"}, {Text: "seven"}, {Text: "eight"},
		},
	}
	m := newTestModel(t, db)
	m.Update(m.loadDaily()())

	s, ok := m.scrollers.Get(panelNotices)
	if !ok {
		t.Fatal("expected a notices scroller after render")
	}
	gen := s.Gen()

	m.Update(tea.KeyPressMsg{Text: "x", Code: 'x'})
	if s.Gen() == gen {
		t.Fatal("user input should bump the scroller generation")
	}
	if got := s.Phase(); got != autoscroll.UserPaused {
		t.Fatalf("phase = %v, want UserPaused", got)
	}
}

func TestBannerHideIgnoresStaleGeneration(t *testing.T) {
	db := newMemoryPersistence()
	m := newTestModel(t, db)
	m.Update(m.loadSettings()())
	m.Update(m.loadDaily()())
	m.Update(settleMsg{})

	m.Update(m.loadDaily()())
	if !m.notifier.BannerVisible() {
		t.Fatal("expected banner")
	}
	m.Update(bannerHideMsg{gen: 0})
	if !m.notifier.BannerVisible() {
		t.Fatal("stale hide must not clear a re-triggered banner")
	}
}

func TestViewRendersBoardSections(t *testing.T) {
	db := newMemoryPersistence()
	db.settings = &content.Settings{SchoolName: "Northside High", ClassName: "3-B"}
	m := newTestModel(t, db)
	m.Update(m.loadSettings()())

	out := m.View()
	if out == "" {
		t.Fatal("expected rendered output")
	}
}
