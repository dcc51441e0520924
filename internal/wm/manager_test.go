package wm

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
	"github.com/Gaurav-Gosain/tuidesk/internal/window"
	"github.com/charmbracelet/log"
)

func newTestManager() *Manager {
	return New(window.CatalogFromConfig(config.DefaultWindowTypes()),
		WithViewport(geometry.Viewport{Width: 1920, Height: 1080}))
}

func rank(t *testing.T, m *Manager, key string) int {
	t.Helper()
	r, ok := m.ZRank(key)
	if !ok {
		t.Fatalf("no rank for %q", key)
	}
	return r
}

func TestOpenThenClose(t *testing.T) {
	m := newTestManager()
	m.Open("about")
	m.Close("about")

	if m.IsOpen("about") {
		t.Error("about should not be open")
	}
	if k, ok := m.Focused(); ok || k == "about" {
		t.Errorf("focus should be cleared, got %q", k)
	}
	if len(m.OpenOrder()) != 0 {
		t.Errorf("open order should be empty, got %v", m.OpenOrder())
	}
}

func TestOpenCentersAndFocuses(t *testing.T) {
	m := newTestManager()
	if !m.Open("about") {
		t.Fatal("Open should report a change")
	}

	s, _ := m.Get("about")
	want := geometry.Rect{Point: geometry.Point{X: 510, Y: 155}, Size: geometry.Size{Width: 900, Height: 700}}
	if s.Rect != want {
		t.Errorf("rect = %+v, want %+v", s.Rect, want)
	}
	if k, _ := m.Focused(); k != "about" {
		t.Errorf("focused = %q, want about", k)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	m := newTestManager()
	m.Open("about")
	m.DragUpdate("about", geometry.Point{X: 40, Y: 30})
	before, _ := m.Get("about")

	m.Open("projects")
	m.Open("about")
	after, _ := m.Get("about")

	if before.Rect != after.Rect {
		t.Errorf("re-open changed geometry: %+v -> %+v", before.Rect, after.Rect)
	}
	if k, _ := m.Focused(); k != "about" {
		t.Errorf("re-open should refocus, focused = %q", k)
	}
	if got := m.OpenOrder(); !slices.Equal(got, []string{"about", "projects"}) {
		t.Errorf("open order = %v", got)
	}
}

func TestMinimizeToggle(t *testing.T) {
	m := newTestManager()
	m.Open("mail")

	m.Minimize("mail")
	if !m.IsMinimized("mail") {
		t.Fatal("mail should be minimized")
	}
	if _, ok := m.Focused(); ok {
		t.Error("minimizing the focused window should clear focus")
	}

	m.Minimize("mail")
	if m.IsMinimized("mail") {
		t.Error("second minimize should restore")
	}
	if k, _ := m.Focused(); k != "mail" {
		t.Errorf("restore should focus, focused = %q", k)
	}
}

func TestMinimizeUnfocusedKeepsFocus(t *testing.T) {
	m := newTestManager()
	m.Open("a")
	m.Open("b")

	m.Minimize("a")
	if k, _ := m.Focused(); k != "b" {
		t.Errorf("focused = %q, want b", k)
	}
}

func TestMaximizeKeepsGeometryAndFocus(t *testing.T) {
	m := newTestManager()
	m.Open("a")
	m.Open("b")
	before, _ := m.Get("a")

	m.Maximize("a")
	s, _ := m.Get("a")
	if !s.Maximized {
		t.Fatal("a should be maximized")
	}
	if k, _ := m.Focused(); k != "b" {
		t.Errorf("maximize changed focus to %q", k)
	}
	if frame := s.Frame(m.Viewport()); frame != geometry.Maximized(m.Viewport(), config.TaskbarHeight) {
		t.Errorf("maximized frame = %+v", frame)
	}

	m.Maximize("a")
	after, _ := m.Get("a")
	if after.Maximized || after.Rect != before.Rect {
		t.Errorf("un-maximize should restore %+v, got %+v", before.Rect, after.Rect)
	}
}

func TestAbsentKeysAreNoOps(t *testing.T) {
	m := newTestManager()
	m.Open("a")

	for name, fn := range map[string]func() bool{
		"close":    func() bool { return m.Close("nope") },
		"minimize": func() bool { return m.Minimize("nope") },
		"maximize": func() bool { return m.Maximize("nope") },
		"focus":    func() bool { return m.Focus("nope") },
		"drag":     func() bool { return m.DragUpdate("nope", geometry.Point{X: 1}) },
		"resize":   func() bool { return m.ResizeUpdate("nope", geometry.EdgeRight, geometry.Point{X: 1}) },
		"open \"\"": func() bool { return m.Open("") },
	} {
		if fn() {
			t.Errorf("%s on absent key reported a change", name)
		}
	}
	if k, _ := m.Focused(); k != "a" {
		t.Errorf("focus changed to %q", k)
	}
}

func TestZOrder(t *testing.T) {
	m := newTestManager()
	m.Open("a")
	m.Open("b")
	m.Open("c")

	// c holds focus; compare the others by open order and c by focus
	if !(rank(t, m, "a") < rank(t, m, "b") && rank(t, m, "b") < rank(t, m, "c")) {
		t.Errorf("ranks not increasing: a=%d b=%d c=%d", rank(t, m, "a"), rank(t, m, "b"), rank(t, m, "c"))
	}

	m.Focus("a")
	if !(rank(t, m, "a") > rank(t, m, "b") && rank(t, m, "a") > rank(t, m, "c")) {
		t.Errorf("focused a not on top: a=%d b=%d c=%d", rank(t, m, "a"), rank(t, m, "b"), rank(t, m, "c"))
	}
	if rank(t, m, "b") != config.ZBase+config.ZStep || rank(t, m, "c") != config.ZBase+2*config.ZStep {
		t.Errorf("unexpected open-order ranks b=%d c=%d", rank(t, m, "b"), rank(t, m, "c"))
	}

	var keys []string
	for _, s := range m.Stack() {
		keys = append(keys, s.Key)
	}
	if got := strings.Join(keys, ","); got != "b,c,a" {
		t.Errorf("stack = %s, want b,c,a", got)
	}
}

func TestOpenOrderStableUnderFocusAndMinimize(t *testing.T) {
	m := newTestManager()
	for _, k := range []string{"a", "b", "c"} {
		m.Open(k)
	}
	m.Focus("a")
	m.Minimize("b")
	m.Minimize("b")

	if got := m.OpenOrder(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("open order = %v", got)
	}
}

func TestWindowsFollowOpenOrder(t *testing.T) {
	m := newTestManager()
	for _, k := range []string{"c", "a", "b"} {
		m.Open(k)
	}
	m.Close("a")
	m.Open("a")
	m.Focus("c")

	var keys []string
	for _, s := range m.Windows() {
		keys = append(keys, s.Key)
	}
	if !slices.Equal(keys, m.OpenOrder()) || !slices.Equal(keys, []string{"c", "b", "a"}) {
		t.Errorf("Windows() keys = %v, open order %v", keys, m.OpenOrder())
	}
}

func TestDragClamp(t *testing.T) {
	m := newTestManager()
	m.Open("about")

	m.BeginDrag("about")
	start, _ := m.Get("about")
	m.DragUpdate("about", geometry.Point{X: -5000 - start.Rect.X, Y: 0})
	m.EndGesture()

	s, _ := m.Get("about")
	if want := -(900 - 200); s.Rect.X != want {
		t.Errorf("x = %d, want %d", s.Rect.X, want)
	}
}

func TestDragDeltasAreFromGestureStart(t *testing.T) {
	m := newTestManager()
	m.Open("about")
	start, _ := m.Get("about")

	m.BeginDrag("about")
	m.DragUpdate("about", geometry.Point{X: 10, Y: 10})
	m.DragUpdate("about", geometry.Point{X: 30, Y: 20})
	m.EndGesture()

	s, _ := m.Get("about")
	if s.Rect.X != start.Rect.X+30 || s.Rect.Y != start.Rect.Y+20 {
		t.Errorf("rect = %+v, want start %+v moved by (30,20)", s.Rect, start.Rect)
	}
}

func TestResizeClamp(t *testing.T) {
	m := newTestManager()
	m.Open("about")
	m.BeginDrag("about")
	cur, _ := m.Get("about")
	m.DragUpdate("about", geometry.Point{X: 100 - cur.Rect.X, Y: 100 - cur.Rect.Y})
	m.EndGesture()

	if !m.BeginResize("about", geometry.EdgeLeft) {
		t.Fatal("BeginResize should succeed")
	}
	m.ResizeUpdate("about", geometry.EdgeLeft, geometry.Point{X: 1000})
	m.EndGesture()

	s, _ := m.Get("about")
	if s.Rect.Width != 400 || s.Rect.X != 600 {
		t.Errorf("rect = %+v, want width 400 at x 600", s.Rect)
	}
}

func TestGesturesRejectedWhenNotInteractive(t *testing.T) {
	m := newTestManager()
	m.Open("a")
	before, _ := m.Get("a")

	m.Maximize("a")
	if m.BeginDrag("a") || m.DragUpdate("a", geometry.Point{X: 50}) || m.ResizeUpdate("a", geometry.EdgeRight, geometry.Point{X: 50}) {
		t.Error("gestures on a maximized window should be rejected")
	}
	m.Maximize("a")

	m.Minimize("a")
	if m.BeginResize("a", geometry.EdgeBottom) || m.DragUpdate("a", geometry.Point{X: 50}) {
		t.Error("gestures on a minimized window should be rejected")
	}
	m.Minimize("a")

	after, _ := m.Get("a")
	if before.Rect != after.Rect {
		t.Errorf("geometry changed: %+v -> %+v", before.Rect, after.Rect)
	}
}

func TestMinimizeEndsGesture(t *testing.T) {
	m := newTestManager()
	m.Open("a")
	m.BeginDrag("a")
	m.Minimize("a")
	if _, ok := m.Gesture(); ok {
		t.Error("minimize should end the gesture on that window")
	}
}

func TestShutdownClearsEverything(t *testing.T) {
	m := newTestManager()
	m.Open("a")
	m.Open("b")
	m.Open("c")
	m.Minimize("b")

	m.Shutdown()

	if len(m.Windows()) != 0 {
		t.Errorf("windows = %v", m.Windows())
	}
	if len(m.OpenOrder()) != 0 {
		t.Errorf("open order = %v", m.OpenOrder())
	}
	if _, ok := m.Focused(); ok {
		t.Error("focus should be unset")
	}

	if !m.Open("a") {
		t.Error("opening after shutdown should create a new window")
	}
}

func TestFocusNext(t *testing.T) {
	m := newTestManager()
	for _, k := range []string{"a", "b", "c"} {
		m.Open(k)
	}
	m.Minimize("b")
	m.Focus("a")

	m.FocusNext(1)
	if k, _ := m.Focused(); k != "c" {
		t.Errorf("after next, focused = %q, want c (b is minimized)", k)
	}
	m.FocusNext(1)
	if k, _ := m.Focused(); k != "a" {
		t.Errorf("after wrap, focused = %q, want a", k)
	}
	m.FocusNext(-1)
	if k, _ := m.Focused(); k != "c" {
		t.Errorf("after prev, focused = %q, want c", k)
	}
}

func TestOpenRestoresMinimized(t *testing.T) {
	m := newTestManager()
	m.Open("a")
	m.Minimize("a")

	if !m.Open("a") {
		t.Error("re-open of minimized window should report a change")
	}
	if m.IsMinimized("a") {
		t.Error("re-open should restore")
	}
}

func TestTopAt(t *testing.T) {
	m := newTestManager()
	m.Open("a")
	m.Open("b")

	s, ok := m.TopAt(geometry.Point{X: 960, Y: 400})
	if !ok || s.Key != "b" {
		t.Fatalf("TopAt = %q, %v; want b", s.Key, ok)
	}

	m.Focus("a")
	if s, _ := m.TopAt(geometry.Point{X: 960, Y: 400}); s.Key != "a" {
		t.Errorf("after focus, TopAt = %q, want a", s.Key)
	}

	if _, ok := m.TopAt(geometry.Point{X: 5, Y: 5}); ok {
		t.Error("expected no window at the corner")
	}
}

func TestLoggerReceivesCommands(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	m := New(nil, WithLogger(logger))

	m.Open("notes")
	m.Close("notes")

	out := buf.String()
	if !strings.Contains(out, "open") || !strings.Contains(out, "close") || !strings.Contains(out, "notes") {
		t.Errorf("unexpected log output: %q", out)
	}
}
