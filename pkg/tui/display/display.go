// Package display hosts the Bubble Tea program for the signage board.
//
// The model is the hub the passive state machines hang off: feed loads and
// watch events arrive as messages, every timer is a tea.Tick carrying a
// generation token, and user input routes to the scroll and audio lifecycles
// before anything else sees it.
package display

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/gntech/signage/pkg/adrotate"
	"github.com/gntech/signage/pkg/api"
	"github.com/gntech/signage/pkg/autoscroll"
	"github.com/gntech/signage/pkg/content"
	"github.com/gntech/signage/pkg/dateutil"
	"github.com/gntech/signage/pkg/notify"
	"github.com/gntech/signage/pkg/quiet"
	"github.com/gntech/signage/pkg/reconcile"
	"github.com/gntech/signage/pkg/render"
	"github.com/gntech/signage/pkg/store"
	"github.com/gntech/signage/pkg/tui/theme"
)

// StartupCountdown is how long the boot overlay waits before the board starts
// on its own. Any key or tap starts it immediately.
const StartupCountdown = 5

// chipAutoHide hides the audio status chip in kiosk mode.
const chipAutoHide = 5 * time.Second

// dailyFeedLimit bounds one daily-feed delivery.
const dailyFeedLimit = 10

// watchRetryDelay spaces out watch restart attempts after a failed start.
const watchRetryDelay = 5 * time.Second

const (
	panelNotices     = "notices"
	panelAssignments = "assignments"
)

// Options configures the display program.
type Options struct {
	DB    store.Persistence
	Kiosk bool
	// Sound may be nil when no audio device is available.
	Sound notify.Tone
	// Published, when set, receives a snapshot after every reconcile for the
	// HTTP surface to serve.
	Published *api.State
	// Now is the clock source; nil means time.Now.
	Now func() time.Time
}

// Model contains the board state.
type Model struct {
	db     store.Persistence
	ctx    context.Context
	cancel context.CancelFunc

	rec       *reconcile.Reconciler
	renderer  *render.Renderer
	rotator   *adrotate.Scheduler
	scrollers *autoscroll.Manager
	notifier  *notify.Notifier
	published *api.State
	theme     theme.Theme
	now       func() time.Time

	frame  render.Frame
	adView adrotate.View

	notices     *panelSurface
	assignments *panelSurface
	columns     map[string]*panelSurface

	termWidth  int
	termHeight int

	kiosk       bool
	starting    bool
	countdown   int
	chipVisible bool

	clock     time.Time
	status    string

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// RefreshMsg forces a reload of both feeds. External callers (the HTTP
// refresh endpoint) deliver it with Program.Send.
type RefreshMsg struct{}

type errMsg struct{ err error }

type settingsMsg struct {
	doc *content.Settings
	err error
}

type dailyMsg struct {
	docs []content.DailyDoc
	err  error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct{ event store.Event }

type watchStoppedMsg struct{}

type clockTickMsg struct{ t time.Time }

type settleMsg struct{}

type startupTickMsg struct{}

type chipHideMsg struct{}

type bannerHideMsg struct{ gen int }

type adTickMsg struct {
	gen int
	t   time.Time
}

type scrollTimerMsg struct {
	id  string
	gen int
	t   time.Time
}

type scrollFrameMsg struct {
	id  string
	gen int
	t   time.Time
}

// New creates the board model.
func New(opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	th := theme.Default()
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		db:          opts.DB,
		ctx:         ctx,
		cancel:      cancel,
		rec:         reconcile.New(now()),
		renderer:    render.New(th),
		scrollers:   autoscroll.NewManager(autoscroll.DefaultSpeed),
		notifier:    notify.New(opts.Sound),
		published:   opts.Published,
		theme:       th,
		now:         now,
		notices:     &panelSurface{},
		assignments: &panelSurface{},
		columns:     make(map[string]*panelSurface),
		kiosk:       opts.Kiosk,
		starting:    !opts.Kiosk,
		countdown:   StartupCountdown,
		chipVisible: true,
		clock:       now(),
	}
	m.rotator = adrotate.New(func(t time.Time) bool {
		return quiet.IsQuiet(t, m.rec.ViewModel().QuietHours)
	})
	return m
}

// Init starts the feeds, the watch, and the clock.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadSettings(),
		m.loadDaily(),
		startWatchCmd(m.ctx, m.db),
		clockTickCmd(),
	}
	if m.starting {
		cmds = append(cmds, startupTickCmd())
	}
	if m.kiosk {
		cmds = append(cmds, tea.Tick(chipAutoHide, func(time.Time) tea.Msg { return chipHideMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadSettings() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.db.Settings()
		if errors.Is(err, store.ErrNotFound) {
			// Explicit absence: the reconciler resets the settings fields.
			return settingsMsg{}
		}
		if err != nil {
			return settingsMsg{err: err}
		}
		return settingsMsg{doc: doc}
	}
}

func (m *Model) loadDaily() tea.Cmd {
	from := dateutil.FormatKey(dateutil.Offset(m.now(), -render.AssignmentWindowDays))
	return func() tea.Msg {
		docs, err := m.db.DailyRange(m.ctx, from, dailyFeedLimit)
		if err != nil {
			return dailyMsg{err: err}
		}
		return dailyMsg{docs: docs}
	}
}

func startWatchCmd(parent context.Context, db store.Persistence) tea.Cmd {
	if db == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := db.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockTickMsg{t: t} })
}

func startupTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return startupTickMsg{} })
}

func (m *Model) adTickCmd(gen int, d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return adTickMsg{gen: gen, t: m.now()} }
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return adTickMsg{gen: gen, t: t} })
}

func (m *Model) scheduleScroll(id string, gen int, next autoscroll.Next) tea.Cmd {
	switch {
	case next.Frame:
		return tea.Tick(autoscroll.FrameInterval, func(t time.Time) tea.Msg {
			return scrollFrameMsg{id: id, gen: gen, t: t}
		})
	case next.Delay > 0:
		return tea.Tick(next.Delay, func(t time.Time) tea.Msg {
			return scrollTimerMsg{id: id, gen: gen, t: t}
		})
	default:
		return nil
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.rerender(&cmds)
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case settingsMsg:
		m.handleSettings(msg, &cmds)
	case dailyMsg:
		m.handleDaily(msg, &cmds)
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "ERR: watch " + msg.err.Error()
			cmds = append(cmds, tea.Tick(watchRetryDelay, func(time.Time) tea.Msg { return watchStoppedMsg{} }))
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		switch msg.event.Type {
		case store.EventSettingsChanged:
			cmds = append(cmds, m.loadSettings())
		case store.EventDailyChanged:
			cmds = append(cmds, m.loadDaily())
		}
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.db))
	case RefreshMsg:
		cmds = append(cmds, m.loadSettings(), m.loadDaily())
	case clockTickMsg:
		m.clock = msg.t
		cmds = append(cmds, clockTickCmd())
		// Midnight rollover: the daily projections key off today's date.
		if dateutil.TodayKey(msg.t) != m.rec.ViewModel().DateToday {
			cmds = append(cmds, m.loadDaily())
		}
	case settleMsg:
		m.rec.Settle()
		m.publish()
	case startupTickMsg:
		if !m.starting {
			break
		}
		m.countdown--
		if m.countdown <= 0 {
			m.startBoard()
		} else {
			cmds = append(cmds, startupTickCmd())
		}
	case chipHideMsg:
		m.chipVisible = false
	case bannerHideMsg:
		m.notifier.HideBanner(msg.gen)
	case adTickMsg:
		if view, delay, ok := m.rotator.Tick(msg.gen, msg.t); ok {
			m.adView = view
			cmds = append(cmds, m.adTickCmd(msg.gen, delay))
		}
	case scrollTimerMsg:
		if s, ok := m.scrollers.Get(msg.id); ok {
			if next, live := s.OnTimer(msg.gen, msg.t); live {
				if cmd := m.scheduleScroll(msg.id, msg.gen, next); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
		}
	case scrollFrameMsg:
		if s, ok := m.scrollers.Get(msg.id); ok {
			if next, live := s.OnFrame(msg.gen, msg.t); live {
				if cmd := m.scheduleScroll(msg.id, msg.gen, next); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
		}
	case tea.KeyPressMsg:
		if m.handleKey(msg, &cmds) {
			return m, tea.Batch(cmds...)
		}
	case tea.MouseMsg:
		if m.starting {
			m.startBoard()
			break
		}
		m.onUserInput(&cmds)
	}

	return m, tea.Batch(cmds...)
}

// handleKey returns true when the key quits the program.
func (m *Model) handleKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	key := msg.String()
	if key == "ctrl+c" || (!m.kiosk && key == "q") {
		m.shutdown()
		*cmds = append(*cmds, tea.Quit)
		return true
	}
	if m.starting {
		m.startBoard()
		return false
	}
	m.onUserInput(cmds)
	return false
}

// startBoard dismisses the boot overlay. The triggering gesture doubles as
// the audio priming gesture.
func (m *Model) startBoard() {
	m.starting = false
	if err := m.notifier.Unlock(); err != nil {
		fmt.Fprintf(os.Stderr, "display: audio unlock: %v\n", err)
	}
}

// onUserInput pauses every scroller and retries the audio unlock while the
// device is still locked.
func (m *Model) onUserInput(cmds *[]tea.Cmd) {
	now := m.now()
	for _, h := range m.scrollers.PauseAll(now) {
		if cmd := m.scheduleScroll(h.ID, h.Gen, h.Next); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	}
	if m.notifier.AudioState() == notify.Locked {
		if err := m.notifier.Unlock(); err != nil {
			fmt.Fprintf(os.Stderr, "display: audio unlock: %v\n", err)
		}
	}
}

func (m *Model) handleSettings(msg settingsMsg, cmds *[]tea.Cmd) {
	var d reconcile.Delivery
	if msg.err != nil {
		fmt.Fprintf(os.Stderr, "display: settings feed: %v\n", msg.err)
		m.status = "ERR: settings " + msg.err.Error()
		d = m.rec.FeedFailed(reconcile.FeedSettings)
	} else {
		d = m.rec.ApplySettings(msg.doc)
	}
	// Every settings delivery restates the ad list, so rotation restarts from
	// the first ad even when nothing changed.
	gen, active := m.rotator.Restart(m.rec.ViewModel().Ads)
	if active {
		*cmds = append(*cmds, m.adTickCmd(gen, 0))
	} else {
		m.adView = adrotate.View{}
	}
	m.afterDelivery(d, cmds)
}

func (m *Model) handleDaily(msg dailyMsg, cmds *[]tea.Cmd) {
	var d reconcile.Delivery
	if msg.err != nil {
		fmt.Fprintf(os.Stderr, "display: daily feed: %v\n", msg.err)
		m.status = "ERR: daily " + msg.err.Error()
		d = m.rec.FeedFailed(reconcile.FeedDaily)
	} else {
		d = m.rec.ApplyDaily(msg.docs, m.now())
	}
	m.afterDelivery(d, cmds)
}

// afterDelivery runs the unconditional per-delivery pipeline: re-render,
// restart scrollers, arm the settle timer, and emit the update notification.
func (m *Model) afterDelivery(d reconcile.Delivery, cmds *[]tea.Cmd) {
	m.rerender(cmds)

	if d.SettleIn > 0 {
		*cmds = append(*cmds, tea.Tick(d.SettleIn, func(time.Time) tea.Msg { return settleMsg{} }))
	}

	if eff, ok := m.notifier.OnUpdate(d.Suppressed, m.quietNow()); ok {
		gen := eff.BannerGen
		*cmds = append(*cmds, tea.Tick(eff.HideIn, func(time.Time) tea.Msg { return bannerHideMsg{gen: gen} }))
		if eff.PlayTone {
			*cmds = append(*cmds, func() tea.Msg {
				if err := m.notifier.PlayTone(); err != nil {
					return errMsg{err}
				}
				return nil
			})
		}
	}

	m.publish()
}

// rerender rebuilds the frame from the view model, reloads the panel
// surfaces, and restarts the scrollers against the fresh content.
func (m *Model) rerender(cmds *[]tea.Cmd) {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	now := m.now()
	m.frame = m.renderer.Build(m.rec.ViewModel(), now, m.panelWidth())

	colsHeight, panelHeight := m.layoutHeights()
	m.notices.Reset(m.frame.Notices.Body, m.panelWidth(), panelHeight)
	m.assignments.Reset(m.frame.Assignments.Body, m.panelWidth(), panelHeight)

	surfaces := map[string]autoscroll.Surface{
		panelNotices:     m.notices,
		panelAssignments: m.assignments,
	}

	// Column viewports are keyed by date, so a scroller never survives a
	// rollover into a different day's content.
	colInner := colsHeight - 3 // frame borders and the title line
	if colInner < 1 {
		colInner = 1
	}
	keep := make(map[string]*panelSurface, len(m.frame.Columns))
	for _, c := range m.frame.Columns {
		ps := m.columns[c.DateKey]
		if ps == nil {
			ps = &panelSurface{}
		}
		ps.Reset(c.Body, m.panelWidth(), colInner)
		keep[c.DateKey] = ps
		surfaces[c.DateKey] = ps
	}
	m.columns = keep

	handles := m.scrollers.Restart(surfaces)
	for _, h := range handles {
		if cmd := m.scheduleScroll(h.ID, h.Gen, h.Next); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	}
}

func (m *Model) quietNow() bool {
	return quiet.IsQuiet(m.now(), m.rec.ViewModel().QuietHours)
}

func (m *Model) publish() {
	if m.published == nil {
		return
	}
	m.published.Publish(m.rec.Snapshot(), m.rec.InitialLoad())
}

func (m *Model) shutdown() {
	m.stopWatch()
	m.scrollers.DestroyAll()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Run launches the display program.
func Run(opts Options) error {
	return RunWithProgram(opts, nil)
}

// RunWithProgram launches the display and hands the created program to ready
// before blocking, so callers can wire external message sources (the HTTP
// refresh endpoint) to Program.Send.
func RunWithProgram(opts Options, ready func(*tea.Program)) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if ready != nil {
		ready(p)
	}
	_, err := p.Run()
	return err
}
