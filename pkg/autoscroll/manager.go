package autoscroll

import "time"

// Handle describes a freshly created scroller and its first scheduled timer.
type Handle struct {
	ID   string
	Gen  int
	Next Next
}

// Manager owns the set of live scrollers, one per rendered panel. A restart
// destroys every scroller and recreates them against the freshly rendered
// surfaces, so no scroller outlives the panel it was measured against.
type Manager struct {
	speed     float64
	scrollers map[string]*Scroller
}

// NewManager creates an empty registry. speed <= 0 uses DefaultSpeed.
func NewManager(speed float64) *Manager {
	return &Manager{speed: speed, scrollers: make(map[string]*Scroller)}
}

// Restart tears down all scrollers and creates one per surface, returning
// the start-delay timers the caller must schedule.
func (m *Manager) Restart(surfaces map[string]Surface) []Handle {
	m.DestroyAll()
	handles := make([]Handle, 0, len(surfaces))
	for id, surface := range surfaces {
		s, gen, next := New(surface, m.speed)
		m.scrollers[id] = s
		handles = append(handles, Handle{ID: id, Gen: gen, Next: next})
	}
	return handles
}

// Get returns the live scroller for a panel, if any. Callbacks for destroyed
// panels simply find nothing and stop.
func (m *Manager) Get(id string) (*Scroller, bool) {
	s, ok := m.scrollers[id]
	return s, ok
}

// DestroyAll invalidates every scroller's outstanding callbacks and empties
// the registry.
func (m *Manager) DestroyAll() {
	for id, s := range m.scrollers {
		s.destroy()
		delete(m.scrollers, id)
	}
}

// PauseAll routes a user interaction to every live scroller, returning the
// cooldown timers to schedule. Used when the interaction cannot be tied to a
// single panel (a key press on a kiosk touchscreen overlay, for example).
func (m *Manager) PauseAll(now time.Time) []Handle {
	handles := make([]Handle, 0, len(m.scrollers))
	for id, s := range m.scrollers {
		gen, next := s.OnUserInput(now)
		handles = append(handles, Handle{ID: id, Gen: gen, Next: next})
	}
	return handles
}
