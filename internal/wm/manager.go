// Package wm is the session controller of the desktop. It owns the open
// windows, the focus and the open order, and derives stacking from them.
//
// Commands never fail. A command on a window that is not open, or a gesture
// on a window that is minimized or maximized, changes nothing and reports
// false.
package wm

import (
	"io"
	"slices"
	"sync"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
	"github.com/Gaurav-Gosain/tuidesk/internal/window"
	"github.com/charmbracelet/log"
)

// GestureKind tells drags from resizes.
type GestureKind int

const (
	// GestureDrag moves a window by its title bar.
	GestureDrag GestureKind = iota
	// GestureResize moves one or two edges.
	GestureResize
)

// Gesture is an in-progress drag or resize. Updates are computed against
// Start, the geometry captured when the gesture began.
type Gesture struct {
	Kind  GestureKind
	Key   string
	Edges geometry.Edge
	Start geometry.Rect
}

// Manager is the window manager for one desktop session.
type Manager struct {
	mu       sync.RWMutex
	store    *window.Store
	catalog  *window.Catalog
	order    []string
	focused  string
	viewport geometry.Viewport
	gesture  *Gesture
	logger   *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger command effects are reported to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithViewport sets the initial viewport.
func WithViewport(vp geometry.Viewport) Option {
	return func(m *Manager) {
		m.viewport = vp
	}
}

// New returns an empty manager creating windows from catalog.
func New(catalog *window.Catalog, opts ...Option) *Manager {
	if catalog == nil {
		catalog = window.NewCatalog()
	}
	m := &Manager{
		store:    window.NewStore(),
		catalog:  catalog,
		viewport: geometry.Viewport{Width: 1920, Height: 1080},
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog returns the window type catalog.
func (m *Manager) Catalog() *window.Catalog {
	return m.catalog
}

// SetViewport records the desktop size used for centering and clamping.
// Existing geometry is not changed.
func (m *Manager) SetViewport(vp geometry.Viewport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewport = vp
}

// Viewport returns the current desktop size.
func (m *Manager) Viewport() geometry.Viewport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viewport
}

// Open shows the window for key, creating it centered at its default size
// when it is not open yet, and focuses it. Opening a window that is already
// open keeps its geometry; a minimized window is restored.
func (m *Manager) Open(key string) bool {
	if key == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store.Has(key) {
		restored := false
		if w, _ := m.store.Get(key); w.Minimized {
			m.store.ToggleMinimized(key)
			restored = true
			m.logger.Debug("restore on open", "key", key)
		}
		changed := restored || m.focused != key
		m.focused = key
		return changed
	}

	t := m.catalog.Lookup(key)
	rect := geometry.Rect{
		Point: geometry.Center(t.Size, m.viewport, config.TaskbarReserve),
		Size:  t.Size,
	}
	m.store.Insert(key, t, rect)
	if !slices.Contains(m.order, key) {
		m.order = append(m.order, key)
	}
	m.focused = key
	m.logger.Debug("open", "key", key, "x", rect.X, "y", rect.Y, "w", rect.Width, "h", rect.Height)
	return true
}

// Close removes the window for key.
func (m *Manager) Close(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.store.Remove(key) {
		return false
	}
	m.order = slices.DeleteFunc(m.order, func(k string) bool { return k == key })
	if m.focused == key {
		m.focused = ""
	}
	m.endGestureFor(key)
	m.logger.Debug("close", "key", key)
	return true
}

// Minimize toggles the minimized flag. Minimizing drops focus from the
// window; restoring focuses it.
func (m *Manager) Minimize(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	minimized, ok := m.store.ToggleMinimized(key)
	if !ok {
		return false
	}
	if minimized {
		if m.focused == key {
			m.focused = ""
		}
		m.endGestureFor(key)
	} else {
		m.focused = key
	}
	m.logger.Debug("minimize", "key", key, "minimized", minimized)
	return true
}

// Maximize toggles the maximized flag. Focus and the stored geometry are left
// alone, so un-maximizing returns to the previous position and size.
func (m *Manager) Maximize(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	maximized, ok := m.store.ToggleMaximized(key)
	if !ok {
		return false
	}
	m.endGestureFor(key)
	m.logger.Debug("maximize", "key", key, "maximized", maximized)
	return true
}

// Focus makes key the focused window.
func (m *Manager) Focus(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.store.Has(key) || m.focused == key {
		return false
	}
	m.focused = key
	m.logger.Debug("focus", "key", key)
	return true
}

// FocusNext moves focus step places through the visible windows in open
// order, wrapping around. It returns false when nothing is visible.
func (m *Manager) FocusNext(step int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	var visible []string
	for _, k := range m.order {
		if w, ok := m.store.Get(k); ok && w.Visible() {
			visible = append(visible, k)
		}
	}
	if len(visible) == 0 {
		return false
	}

	i := slices.Index(visible, m.focused)
	switch {
	case i < 0 && step >= 0:
		i = 0
	case i < 0:
		i = len(visible) - 1
	default:
		i = ((i+step)%len(visible) + len(visible)) % len(visible)
	}
	changed := m.focused != visible[i]
	m.focused = visible[i]
	return changed
}

// BeginDrag starts a drag of key from its current position.
func (m *Manager) BeginDrag(key string) bool {
	return m.begin(GestureDrag, key, geometry.EdgeNone)
}

// BeginResize starts a resize of key on edges.
func (m *Manager) BeginResize(key string, edges geometry.Edge) bool {
	if !edges.Valid() {
		return false
	}
	return m.begin(GestureResize, key, edges)
}

func (m *Manager) begin(kind GestureKind, key string, edges geometry.Edge) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.store.Get(key)
	if !ok || !w.Interactive() {
		return false
	}
	m.gesture = &Gesture{Kind: kind, Key: key, Edges: edges, Start: w.Rect}
	return true
}

// DragUpdate moves key by delta. During a drag gesture on key the delta is
// measured from where the gesture began, otherwise from the current position.
func (m *Manager) DragUpdate(key string, delta geometry.Point) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.store.Get(key)
	if !ok || !w.Interactive() {
		return false
	}
	start := w.Rect
	if g := m.gesture; g != nil && g.Key == key && g.Kind == GestureDrag {
		start = g.Start
	}
	rect := w.Rect
	rect.Point = geometry.Drag(start.Point, delta, w.Rect.Size, m.viewport, w.Limits())
	return m.store.SetRect(key, rect)
}

// ResizeUpdate resizes key on edges by delta, measured like DragUpdate.
func (m *Manager) ResizeUpdate(key string, edges geometry.Edge, delta geometry.Point) bool {
	if !edges.Valid() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.store.Get(key)
	if !ok || !w.Interactive() {
		return false
	}
	start := w.Rect
	if g := m.gesture; g != nil && g.Key == key && g.Kind == GestureResize {
		start = g.Start
	}
	return m.store.SetRect(key, geometry.Resize(edges, delta, start, m.viewport, w.Limits()))
}

// Gesture returns the active gesture, if any.
func (m *Manager) Gesture() (Gesture, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.gesture == nil {
		return Gesture{}, false
	}
	return *m.gesture, true
}

// EndGesture finishes the active gesture, keeping the last geometry.
func (m *Manager) EndGesture() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gesture = nil
}

func (m *Manager) endGestureFor(key string) {
	if m.gesture != nil && m.gesture.Key == key {
		m.gesture = nil
	}
}

// Shutdown closes every window and clears focus and open order.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.store.Len()
	m.store.Clear()
	m.order = nil
	m.focused = ""
	m.gesture = nil
	m.logger.Debug("shutdown", "closed", n)
}
