package desktop

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
)

func pt(x, y int) geometry.Point { return geometry.Point{X: x, Y: y} }

func newTestGrid(n int, opts ...Option) *Grid {
	icons := make([]Icon, n)
	for i := range icons {
		icons[i] = Icon{ID: i + 1, Label: "Icon"}
	}
	return NewGrid(icons, opts...)
}

func drop(t *testing.T, g *Grid, id int, at geometry.Point) geometry.Point {
	t.Helper()
	icon, _ := g.Get(id)
	if !g.BeginDrag(id, icon.Pos) {
		t.Fatalf("BeginDrag(%d) failed", id)
	}
	g.Drag(at)
	p, ok := g.EndDrag()
	if !ok {
		t.Fatalf("EndDrag(%d) failed", id)
	}
	return p
}

func TestNewGridColumnLayout(t *testing.T) {
	g := FromConfig(config.DefaultConfig().Desktop)
	for i, icon := range g.Icons() {
		if want := pt(0, i*config.GridSize); icon.Pos != want {
			t.Errorf("icon %d at %+v, want %+v", icon.ID, icon.Pos, want)
		}
	}
}

func TestAppKey(t *testing.T) {
	tests := []struct {
		icon Icon
		want string
	}{
		{Icon{Label: "Resume", Key: "resume"}, "resume"},
		{Icon{Label: "VS Code"}, "vscode"},
		{Icon{Label: "Contact Me", Key: "mail"}, "mail"},
		{Icon{Label: " My\tBig  Projects "}, "mybigprojects"},
	}
	for _, tt := range tests {
		if got := tt.icon.AppKey(); got != tt.want {
			t.Errorf("AppKey(%q) = %q, want %q", tt.icon.Label, got, tt.want)
		}
	}
}

func TestEndDragSnaps(t *testing.T) {
	tests := []struct {
		name string
		at   geometry.Point
		want geometry.Point
	}{
		{"exact", pt(300, 400), pt(300, 400)},
		{"round down", pt(349, 449), pt(300, 400)},
		{"half rounds up", pt(350, 450), pt(400, 500)},
		{"negative", pt(-40, -60), pt(0, -100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(1)
			if got := drop(t, g, 1, tt.at); got != tt.want {
				t.Errorf("dropped at %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEndDragCollisionSearch(t *testing.T) {
	g := newTestGrid(2)
	if got := drop(t, g, 1, pt(200, 200)); got != pt(200, 200) {
		t.Fatalf("first icon at %+v", got)
	}
	if got := drop(t, g, 2, pt(210, 190)); got != pt(300, 200) {
		t.Errorf("second icon at %+v, want (300,200)", got)
	}
}

func TestEndDragProbeOrder(t *testing.T) {
	// Icons 1..3 hold (200,0), (300,0) and (100,0); icon 4 dropped on
	// (200,0) finds right and left taken at radius 1 and goes down.
	g := newTestGrid(4)
	drop(t, g, 1, pt(200, 0))
	drop(t, g, 2, pt(300, 0))
	drop(t, g, 3, pt(100, 0))
	if got := drop(t, g, 4, pt(200, 0)); got != pt(200, 100) {
		t.Errorf("icon 4 at %+v, want (200,100)", got)
	}
}

func TestEndDragLeftProbeRejectsNegative(t *testing.T) {
	g := newTestGrid(2)
	drop(t, g, 1, pt(0, 500))
	// Right is free at radius 1, so left (-100) is never chosen.
	if got := drop(t, g, 2, pt(0, 500)); got != pt(100, 500) {
		t.Errorf("icon 2 at %+v, want (100,500)", got)
	}
}

func TestEndDragExhaustedStaysOnCell(t *testing.T) {
	g := newTestGrid(2, WithSearchRadius(0))
	drop(t, g, 1, pt(200, 200))
	if got := drop(t, g, 2, pt(200, 200)); got != pt(200, 200) {
		t.Errorf("icon 2 at %+v, want (200,200)", got)
	}
}

func TestDragFollowsPointerOffset(t *testing.T) {
	g := newTestGrid(2)
	// Icon 2 starts at (0,100); grab it 30px in.
	g.BeginDrag(2, pt(30, 130))
	g.Drag(pt(530, 630))
	if icon, _ := g.Get(2); icon.Pos != pt(500, 600) {
		t.Errorf("dragged to %+v, want (500,600)", icon.Pos)
	}
	if id, ok := g.Selected(); !ok || id != 2 {
		t.Errorf("Selected() = %d, %v", id, ok)
	}
	g.EndDrag()
	if _, ok := g.Dragging(); ok {
		t.Error("still dragging after EndDrag")
	}
	if g.Drag(pt(0, 0)) {
		t.Error("Drag without a gesture should do nothing")
	}
}

func TestIconIDZero(t *testing.T) {
	g := NewGrid([]Icon{{ID: 0, Label: "Zero"}, {ID: 5, Label: "Five"}})
	if g.Drag(pt(777, 777)) {
		t.Error("Drag without a gesture moved an icon")
	}
	if icon, _ := g.Get(0); icon.Pos != pt(0, 0) {
		t.Errorf("icon 0 moved to %+v", icon.Pos)
	}
	if _, ok := g.Selected(); ok {
		t.Error("fresh grid reports a selection")
	}

	if !g.BeginDrag(0, pt(10, 10)) {
		t.Fatal("BeginDrag(0) failed")
	}
	if id, ok := g.Dragging(); !ok || id != 0 {
		t.Errorf("Dragging() = %d, %v", id, ok)
	}
	if id, ok := g.Selected(); !ok || id != 0 {
		t.Errorf("Selected() = %d, %v", id, ok)
	}
	g.Drag(pt(310, 410))
	if p, ok := g.EndDrag(); !ok || p != pt(300, 400) {
		t.Errorf("EndDrag() = %+v, %v", p, ok)
	}
	g.ClearSelection()
	if _, ok := g.Selected(); ok {
		t.Error("selection not cleared")
	}
}

func TestUnknownIcon(t *testing.T) {
	g := newTestGrid(1)
	if g.BeginDrag(9, pt(0, 0)) {
		t.Error("BeginDrag on unknown icon")
	}
	if _, ok := g.EndDrag(); ok {
		t.Error("EndDrag without drag")
	}
	g.Select(9)
	if _, ok := g.Selected(); ok {
		t.Error("unknown id selected")
	}
}

func TestAt(t *testing.T) {
	g := newTestGrid(2)
	if icon, ok := g.At(pt(50, 150)); !ok || icon.ID != 2 {
		t.Errorf("At(50,150) = %+v, %v", icon, ok)
	}
	if _, ok := g.At(pt(150, 50)); ok {
		t.Error("empty cell reported an icon")
	}
}

type fakeLauncher struct {
	minimized map[string]bool
	calls     []string
}

func (f *fakeLauncher) Open(key string) bool {
	f.calls = append(f.calls, "open:"+key)
	return true
}

func (f *fakeLauncher) Minimize(key string) bool {
	f.calls = append(f.calls, "minimize:"+key)
	return true
}

func (f *fakeLauncher) IsMinimized(key string) bool { return f.minimized[key] }

func TestOpen(t *testing.T) {
	g := NewGrid([]Icon{{ID: 1, Label: "VS Code"}, {ID: 2, Label: "Resume", Key: "resume"}})
	l := &fakeLauncher{minimized: map[string]bool{"resume": true}}

	if key, ok := g.Open(1, l); !ok || key != "vscode" {
		t.Errorf("Open(1) = %q, %v", key, ok)
	}
	if key, ok := g.Open(2, l); !ok || key != "resume" {
		t.Errorf("Open(2) = %q, %v", key, ok)
	}
	if _, ok := g.Open(3, l); ok {
		t.Error("Open on unknown icon")
	}

	want := []string{"open:vscode", "minimize:resume"}
	if len(l.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", l.calls, want)
	}
	for i := range want {
		if l.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, l.calls[i], want[i])
		}
	}
}
