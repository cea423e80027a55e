package autoscroll

import (
	"testing"
	"time"
)

type fakeSurface struct {
	content int
	visible int
	offset  float64
	sets    int
}

func (f *fakeSurface) ContentHeight() int  { return f.content }
func (f *fakeSurface) VisibleHeight() int  { return f.visible }
func (f *fakeSurface) Offset() float64     { return f.offset }
func (f *fakeSurface) SetOffset(o float64) { f.offset = o; f.sets++ }

var t0 = time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)

// drive runs the scroller through its start delay into scrolling.
func drive(t *testing.T, s *Scroller, gen int) time.Time {
	t.Helper()
	now := t0.Add(StartDelay)
	next, ok := s.OnTimer(gen, now)
	if !ok || !next.Frame {
		t.Fatalf("start timer should begin scrolling, got %+v ok=%v", next, ok)
	}
	return now
}

func TestNoOverflowStaysIdle(t *testing.T) {
	surface := &fakeSurface{content: 10, visible: 10}
	s, gen, next := New(surface, 0)
	if next.Delay != StartDelay {
		t.Fatalf("creation delay = %v", next.Delay)
	}

	now := t0.Add(StartDelay)
	for i := 0; i < 5; i++ {
		next, ok := s.OnTimer(gen, now)
		if !ok || next.Delay != OverflowPollInterval || next.Frame {
			t.Fatalf("poll %d = %+v ok=%v", i, next, ok)
		}
		if s.Phase() != Idle {
			t.Fatalf("poll %d phase = %v", i, s.Phase())
		}
		now = now.Add(next.Delay)
	}
	if surface.sets != 0 {
		t.Fatal("idle scroller must never move the offset")
	}
}

func TestScrollsDownThenReverses(t *testing.T) {
	surface := &fakeSurface{content: 30, visible: 10}
	s, gen, _ := New(surface, 10) // 10 lines/sec to keep the test short
	now := drive(t, s, gen)

	// One second of frames moves the offset 10 lines down.
	now = now.Add(time.Second)
	next, ok := s.OnFrame(gen, now)
	if !ok || !next.Frame {
		t.Fatalf("frame = %+v ok=%v", next, ok)
	}
	if surface.offset != 10 {
		t.Fatalf("offset = %v, want 10", surface.offset)
	}

	// Another 1.5s overshoots the 20-line overflow: clamp, flip, dwell.
	now = now.Add(1500 * time.Millisecond)
	next, ok = s.OnFrame(gen, now)
	if !ok || next.Delay != EdgeDwell {
		t.Fatalf("edge frame = %+v ok=%v", next, ok)
	}
	if surface.offset != 20 {
		t.Fatalf("offset clamped to %v, want 20", surface.offset)
	}
	if s.Phase() != PausedAtEdge {
		t.Fatalf("phase = %v, want PausedAtEdge", s.Phase())
	}

	// Dwell expiry resumes upward at 1.5x speed.
	now = now.Add(EdgeDwell)
	next, ok = s.OnTimer(gen, now)
	if !ok || !next.Frame {
		t.Fatalf("resume = %+v ok=%v", next, ok)
	}
	now = now.Add(time.Second)
	if _, ok := s.OnFrame(gen, now); !ok {
		t.Fatal("upward frame rejected")
	}
	if surface.offset != 5 { // 20 - 10*1.5
		t.Fatalf("upward offset = %v, want 5", surface.offset)
	}
}

func TestTopEdgeClampsAndFlips(t *testing.T) {
	surface := &fakeSurface{content: 30, visible: 10, offset: 1}
	s, gen, _ := New(surface, 10)
	now := drive(t, s, gen)
	// Force the upward leg.
	surface.offset = 1
	s.direction = -1

	now = now.Add(time.Second)
	next, ok := s.OnFrame(gen, now)
	if !ok || next.Delay != EdgeDwell {
		t.Fatalf("top edge = %+v ok=%v", next, ok)
	}
	if surface.offset != 0 || s.Phase() != PausedAtEdge {
		t.Fatalf("offset=%v phase=%v", surface.offset, s.Phase())
	}
}

func TestUserPauseAndCooldownReset(t *testing.T) {
	surface := &fakeSurface{content: 30, visible: 10}
	s, gen, _ := New(surface, 10)
	now := drive(t, s, gen)

	// Interaction pauses immediately and invalidates in-flight callbacks.
	pauseGen, next := s.OnUserInput(now)
	if s.Phase() != UserPaused {
		t.Fatalf("phase = %v, want UserPaused", s.Phase())
	}
	if next.Delay != UserPauseCooldown {
		t.Fatalf("cooldown = %v", next.Delay)
	}
	if _, ok := s.OnFrame(gen, now); ok {
		t.Fatal("stale frame after pause must be ignored")
	}

	// A second interaction inside the window resets it; the first cooldown
	// timer becomes stale instead of resuming early.
	now = now.Add(2 * time.Second)
	pauseGen2, _ := s.OnUserInput(now)
	if _, ok := s.OnTimer(pauseGen, now.Add(3*time.Second)); ok {
		t.Fatal("superseded cooldown must not resume the scroller")
	}

	// The live cooldown resumes via the normal overflow check.
	next, ok := s.OnTimer(pauseGen2, now.Add(UserPauseCooldown))
	if !ok || !next.Frame {
		t.Fatalf("resume = %+v ok=%v", next, ok)
	}
	if s.Phase() != Scrolling {
		t.Fatalf("phase after cooldown = %v", s.Phase())
	}
}

func TestManagerRestartInvalidatesOldScrollers(t *testing.T) {
	m := NewManager(0)
	a := &fakeSurface{content: 30, visible: 10}
	handles := m.Restart(map[string]Surface{"a": a})
	if len(handles) != 1 || handles[0].Next.Delay != StartDelay {
		t.Fatalf("handles = %+v", handles)
	}
	old, _ := m.Get("a")
	oldGen := handles[0].Gen

	m.Restart(map[string]Surface{"a": a, "b": &fakeSurface{content: 5, visible: 10}})
	if _, ok := old.OnTimer(oldGen, t0); ok {
		t.Fatal("destroyed scroller must ignore its pending timers")
	}
	if _, ok := m.Get("b"); !ok {
		t.Fatal("new panel missing")
	}
}
