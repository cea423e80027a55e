// Package autoscroll drives the slow bidirectional scrolling of overflowing
// board panels, yielding to the user whenever they touch a panel.
//
// Like adrotate, scrollers are passive state machines: the display program
// owns the timers and frame ticks and calls back in when they fire. Each
// scroller carries a generation token; pausing, destroying, or restarting
// bumps the generation so callbacks from superseded timer chains are ignored
// rather than racing the new ones.
package autoscroll

import (
	"time"
)

const (
	// StartDelay runs once after creation before the first overflow check,
	// giving the panel time to settle after a render.
	StartDelay = 2 * time.Second

	// OverflowPollInterval is how often a non-overflowing panel re-checks
	// whether new content made it scrollable.
	OverflowPollInterval = 3 * time.Second

	// EdgeDwell is the pause at either end before scrolling back.
	EdgeDwell = 2500 * time.Millisecond

	// UserPauseCooldown is how long after the last user interaction the
	// scroller stays paused. A new interaction restarts the window.
	UserPauseCooldown = 5 * time.Second

	// MinOverflow is the smallest overflow (in lines) worth scrolling.
	MinOverflow = 3

	// FrameInterval paces scroll animation steps.
	FrameInterval = time.Second / 15

	// DefaultSpeed is the downward scroll speed in lines per second.
	DefaultSpeed = 1.5

	// reverseFactor speeds up the return (upward) leg.
	reverseFactor = 1.5
)

// Phase is a scroller's current state.
type Phase int

const (
	// Idle: waiting for the start delay, or content does not overflow.
	Idle Phase = iota
	// Scrolling: advancing the offset each frame.
	Scrolling
	// PausedAtEdge: dwelling at the top or bottom before reversing.
	PausedAtEdge
	// UserPaused: suspended by user interaction until the cooldown passes.
	UserPaused
)

// Surface is the scrollable panel a scroller manipulates.
type Surface interface {
	ContentHeight() int
	VisibleHeight() int
	Offset() float64
	SetOffset(float64)
}

// Next tells the caller how to continue driving the scroller: schedule a
// timer after Delay, a frame tick after FrameInterval, or nothing.
type Next struct {
	Delay time.Duration
	Frame bool
}

var idleNext = Next{}

// Scroller animates one panel.
type Scroller struct {
	surface   Surface
	speed     float64
	phase     Phase
	direction float64 // +1 down, -1 up
	gen       int
	lastStep  time.Time
}

// New creates a scroller for surface. The caller must schedule the returned
// delay (the start delay) against the returned generation.
func New(surface Surface, speed float64) (*Scroller, int, Next) {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	s := &Scroller{surface: surface, speed: speed, direction: 1}
	return s, s.gen, Next{Delay: StartDelay}
}

// Phase returns the current state.
func (s *Scroller) Phase() Phase { return s.phase }

// Gen returns the active generation token.
func (s *Scroller) Gen() int { return s.gen }

func (s *Scroller) overflow() float64 {
	return float64(s.surface.ContentHeight() - s.surface.VisibleHeight())
}

// OnTimer handles an expired timer for the given generation: the start
// delay, an overflow re-check, an edge dwell, or the user-pause cooldown.
func (s *Scroller) OnTimer(gen int, now time.Time) (Next, bool) {
	if gen != s.gen {
		return idleNext, false
	}
	switch s.phase {
	case UserPaused:
		// Cooldown elapsed with no further interaction; fall through to the
		// same overflow check a fresh scroller performs.
		s.phase = Idle
		return s.checkOverflow(now), true
	case Idle:
		return s.checkOverflow(now), true
	case PausedAtEdge:
		s.phase = Scrolling
		s.lastStep = now
		return Next{Frame: true}, true
	default:
		return idleNext, false
	}
}

func (s *Scroller) checkOverflow(now time.Time) Next {
	if s.overflow() <= MinOverflow {
		return Next{Delay: OverflowPollInterval}
	}
	s.phase = Scrolling
	s.lastStep = now
	return Next{Frame: true}
}

// OnFrame advances the scroll position by one animation step.
func (s *Scroller) OnFrame(gen int, now time.Time) (Next, bool) {
	if gen != s.gen || s.phase != Scrolling {
		return idleNext, false
	}

	overflow := s.overflow()
	if overflow <= MinOverflow {
		// Content shrank mid-scroll; drop back to polling.
		s.phase = Idle
		return Next{Delay: OverflowPollInterval}, true
	}

	dt := now.Sub(s.lastStep).Seconds()
	if dt < 0 {
		dt = 0
	}
	s.lastStep = now

	speed := s.speed
	if s.direction < 0 {
		speed *= reverseFactor
	}
	offset := s.surface.Offset() + speed*dt*s.direction

	switch {
	case s.direction > 0 && offset >= overflow:
		s.surface.SetOffset(overflow)
		s.direction = -1
		s.phase = PausedAtEdge
		return Next{Delay: EdgeDwell}, true
	case s.direction < 0 && offset <= 0:
		s.surface.SetOffset(0)
		s.direction = 1
		s.phase = PausedAtEdge
		return Next{Delay: EdgeDwell}, true
	default:
		s.surface.SetOffset(offset)
		return Next{Frame: true}, true
	}
}

// OnUserInput suspends scrolling immediately and arms the resume cooldown.
// The generation bump cancels any pending timer or frame callback, so a
// second interaction inside the window replaces the countdown instead of
// stacking another one.
func (s *Scroller) OnUserInput(now time.Time) (int, Next) {
	s.phase = UserPaused
	s.gen++
	return s.gen, Next{Delay: UserPauseCooldown}
}

// destroy invalidates all outstanding callbacks.
func (s *Scroller) destroy() {
	s.gen++
	s.phase = Idle
}
