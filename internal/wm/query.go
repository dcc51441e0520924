package wm

import (
	"slices"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
	"github.com/Gaurav-Gosain/tuidesk/internal/window"
)

// State is a read-only snapshot of one open window.
type State struct {
	Key       string
	Title     string
	Icon      string
	Rect      geometry.Rect
	Minimized bool
	Maximized bool
	Focused   bool
	ZRank     int
	OpenedAt  uint64
	Body      window.Body
}

// Frame is the rectangle the window occupies on screen: the stored geometry,
// or the whole desktop above the taskbar while maximized.
func (s State) Frame(vp geometry.Viewport) geometry.Rect {
	if s.Maximized {
		return geometry.Maximized(vp, config.TaskbarHeight)
	}
	return s.Rect
}

// zRank is the focused rank for the focused window and otherwise a step
// above the previous window in open order.
func (m *Manager) zRank(key string) (int, bool) {
	if !m.store.Has(key) {
		return 0, false
	}
	if key == m.focused {
		return config.ZFocused, true
	}
	i := slices.Index(m.order, key)
	return config.ZBase + config.ZStep*i, true
}

func (m *Manager) snapshot(w window.Window) State {
	rank, _ := m.zRank(w.Key)
	s := State{
		Key:       w.Key,
		Title:     w.Title(),
		Rect:      w.Rect,
		Minimized: w.Minimized,
		Maximized: w.Maximized,
		Focused:   w.Key == m.focused,
		ZRank:     rank,
		OpenedAt:  w.OpenedAt,
	}
	if w.Type != nil {
		s.Icon = w.Type.Icon
		s.Body = w.Type.Body
	}
	return s
}

// Get returns the state of key.
func (m *Manager) Get(key string) (State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.store.Get(key)
	if !ok {
		return State{}, false
	}
	return m.snapshot(w), true
}

// IsOpen reports whether key is open.
func (m *Manager) IsOpen(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Has(key)
}

// IsMinimized reports whether key is open and minimized.
func (m *Manager) IsMinimized(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.store.Get(key)
	return ok && w.Minimized
}

// Windows returns every open window in open order.
func (m *Manager) Windows() []State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.store.All()
	out := make([]State, 0, len(all))
	for _, w := range all {
		out = append(out, m.snapshot(w))
	}
	return out
}

// ZRank returns the stacking rank of key.
func (m *Manager) ZRank(key string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.zRank(key)
}

// OpenOrder returns the keys in first-open order.
func (m *Manager) OpenOrder() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

// Focused returns the focused key.
func (m *Manager) Focused() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focused, m.focused != ""
}

// Stack returns the visible windows from bottom to top.
func (m *Manager) Stack() []State {
	states := m.Windows()
	states = slices.DeleteFunc(states, func(s State) bool { return s.Minimized })
	slices.SortStableFunc(states, func(a, b State) int { return a.ZRank - b.ZRank })
	return states
}

// TopAt returns the topmost visible window whose frame contains p.
func (m *Manager) TopAt(p geometry.Point) (State, bool) {
	vp := m.Viewport()
	stack := m.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Frame(vp).Contains(p) {
			return stack[i], true
		}
	}
	return State{}, false
}
