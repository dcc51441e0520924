// Package window holds the per-window records of the desktop and the catalog
// of window types they are created from.
package window

import (
	"slices"

	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
)

// Window is one open desktop window.
type Window struct {
	Key       string
	Type      *Type
	Rect      geometry.Rect
	Minimized bool
	Maximized bool
	// OpenedAt orders windows by first open; it never repeats within a store.
	OpenedAt uint64
}

// Title returns the title bar text.
func (w *Window) Title() string {
	if w.Type != nil && w.Type.Title != "" {
		return w.Type.Title
	}
	return w.Key
}

// Limits returns the drag and resize bounds of the window's type.
func (w *Window) Limits() geometry.Limits {
	if w.Type == nil {
		return geometry.Limits{}
	}
	return w.Type.Limits
}

// Visible reports whether the window is drawn. A minimized window is hidden
// even when it is also maximized.
func (w *Window) Visible() bool {
	return !w.Minimized
}

// Interactive reports whether drag and resize gestures apply.
func (w *Window) Interactive() bool {
	return !w.Minimized && !w.Maximized
}

// Store is the normalized set of open windows keyed by window key.
// Every mutation goes through one of its transition methods.
type Store struct {
	windows map[string]*Window
	seq     uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{windows: make(map[string]*Window)}
}

// Insert records a new open window. It returns false without changes when key
// is already open.
func (s *Store) Insert(key string, t *Type, rect geometry.Rect) bool {
	if _, ok := s.windows[key]; ok {
		return false
	}
	s.seq++
	s.windows[key] = &Window{Key: key, Type: t, Rect: rect, OpenedAt: s.seq}
	return true
}

// Remove deletes key. It returns false when key was not open.
func (s *Store) Remove(key string) bool {
	if _, ok := s.windows[key]; !ok {
		return false
	}
	delete(s.windows, key)
	return true
}

// ToggleMinimized flips the minimized flag and returns the new value.
// ok is false when key is not open.
func (s *Store) ToggleMinimized(key string) (minimized, ok bool) {
	w, ok := s.windows[key]
	if !ok {
		return false, false
	}
	w.Minimized = !w.Minimized
	return w.Minimized, true
}

// ToggleMaximized flips the maximized flag and returns the new value.
func (s *Store) ToggleMaximized(key string) (maximized, ok bool) {
	w, ok := s.windows[key]
	if !ok {
		return false, false
	}
	w.Maximized = !w.Maximized
	return w.Maximized, true
}

// SetRect replaces the geometry of an interactive window. Minimized,
// maximized and absent windows are left untouched and false is returned.
func (s *Store) SetRect(key string, rect geometry.Rect) bool {
	w, ok := s.windows[key]
	if !ok || !w.Interactive() {
		return false
	}
	w.Rect = rect
	return true
}

// Get returns a copy of the window record.
func (s *Store) Get(key string) (Window, bool) {
	w, ok := s.windows[key]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Has reports whether key is open.
func (s *Store) Has(key string) bool {
	_, ok := s.windows[key]
	return ok
}

// Len returns the number of open windows.
func (s *Store) Len() int {
	return len(s.windows)
}

// All returns copies of every record ordered by OpenedAt.
func (s *Store) All() []Window {
	out := make([]Window, 0, len(s.windows))
	for _, w := range s.windows {
		out = append(out, *w)
	}
	slices.SortFunc(out, func(a, b Window) int {
		switch {
		case a.OpenedAt < b.OpenedAt:
			return -1
		case a.OpenedAt > b.OpenedAt:
			return 1
		}
		return 0
	})
	return out
}

// Clear drops every record. The open sequence keeps counting.
func (s *Store) Clear() {
	clear(s.windows)
}
