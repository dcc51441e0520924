package taskbar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/window"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
	"github.com/charmbracelet/x/ansi"
)

func newManager(keys ...string) *wm.Manager {
	m := wm.New(window.NewCatalog())
	for _, k := range keys {
		m.Open(k)
	}
	return m
}

func keysOf(entries []Entry) string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return strings.Join(keys, ",")
}

func TestEntriesFollowOpenOrder(t *testing.T) {
	m := newManager("alpha", "beta", "gamma")
	p := New(m, nil)

	m.Focus("alpha")
	m.Minimize("beta")
	entries := p.Entries()
	if got := keysOf(entries); got != "alpha,beta,gamma" {
		t.Fatalf("entries = %s", got)
	}
	if !entries[0].Focused || entries[1].Focused {
		t.Errorf("focus flags wrong: %+v", entries)
	}
	if !entries[1].Minimized {
		t.Errorf("beta should be minimized: %+v", entries[1])
	}
	if entries[2].Label != "Gamma" {
		t.Errorf("label = %q", entries[2].Label)
	}
}

func TestClick(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(m *wm.Manager)
		want      Action
		minimized bool
		focused   bool
	}{
		{
			name:      "minimized restores and focuses",
			setup:     func(m *wm.Manager) { m.Minimize("alpha") },
			want:      ActionRestore,
			minimized: false,
			focused:   true,
		},
		{
			name:      "unfocused focuses",
			setup:     func(m *wm.Manager) { m.Focus("beta") },
			want:      ActionFocus,
			minimized: false,
			focused:   true,
		},
		{
			name:      "focused minimizes",
			setup:     func(m *wm.Manager) { m.Focus("alpha") },
			want:      ActionMinimize,
			minimized: true,
			focused:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager("alpha", "beta")
			tt.setup(m)
			p := New(m, nil)

			if got := p.Click("alpha"); got != tt.want {
				t.Errorf("Click = %v, want %v", got, tt.want)
			}
			if got := m.IsMinimized("alpha"); got != tt.minimized {
				t.Errorf("minimized = %v, want %v", got, tt.minimized)
			}
			focused, _ := m.Focused()
			if got := focused == "alpha"; got != tt.focused {
				t.Errorf("focused = %q, want alpha focused %v", focused, tt.focused)
			}
		})
	}
}

func TestClickUnknownKey(t *testing.T) {
	p := New(newManager("alpha"), nil)
	if got := p.Click("nope"); got != ActionNone {
		t.Errorf("Click(nope) = %v", got)
	}
}

func TestShutdownAndStartMenu(t *testing.T) {
	m := newManager("alpha", "beta", "gamma")
	m.Minimize("beta")
	p := New(m, nil)

	if !p.ToggleStart() || !p.StartOpen() {
		t.Fatal("start menu should be open")
	}
	p.Shutdown()
	if p.StartOpen() {
		t.Error("shutdown should close the start menu")
	}
	if len(p.Entries()) != 0 {
		t.Errorf("entries after shutdown: %v", p.Entries())
	}
	if _, ok := m.Focused(); ok {
		t.Error("focus survived shutdown")
	}
	if p.ToggleStart(); !p.StartOpen() {
		t.Error("toggle after shutdown")
	}
	p.CloseStart()
	if p.StartOpen() {
		t.Error("CloseStart left menu open")
	}
}

func TestTray(t *testing.T) {
	tray := Tray{Now: time.Date(2026, 3, 7, 15, 4, 0, 0, time.UTC)}
	clock, date := tray.Clock()
	if clock != "3:04 PM" || date != "3/7/2026" {
		t.Errorf("Clock() = %q, %q", clock, date)
	}
	if got := tray.Text(); got != "3:04 PM  3/7/2026" {
		t.Errorf("Text() without stats = %q", got)
	}

	tray.Apply(StatsMsg{CPU: 12.4, RAM: 56.6})
	if got := tray.Text(); got != "CPU 12%  RAM 57%  3:04 PM  3/7/2026" {
		t.Errorf("Text() = %q", got)
	}

	tray.Apply(StatsMsg{CPU: 99, Err: errors.New("boom")})
	if tray.CPU != 12.4 {
		t.Errorf("failed sample overwrote CPU: %v", tray.CPU)
	}

	tray.HideClock, tray.HideStats = true, true
	if got := tray.Text(); got != "" {
		t.Errorf("hidden tray = %q", got)
	}
}

func TestLayoutHitTest(t *testing.T) {
	entries := []Entry{{Key: "alpha", Label: "Alpha"}, {Key: "beta", Label: "Beta", Focused: true}}
	tray := Tray{Now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	const width = 120
	l := NewLayout(entries, tray, width)

	if s, ok := l.HitTest(0); !ok || s.Kind != SegmentStart {
		t.Errorf("HitTest(0) = %+v, %v", s, ok)
	}
	if s, ok := l.HitTest(width - 1); !ok || s.Kind != SegmentPower {
		t.Errorf("HitTest(last) = %+v, %v", s, ok)
	}

	var got []string
	for _, s := range l.Segments {
		switch s.Kind {
		case SegmentEntry:
			got = append(got, s.Key)
			if hit, ok := l.HitTest(s.X + s.Width - 1); !ok || hit.Key != s.Key {
				t.Errorf("HitTest inside %s = %+v", s.Key, hit)
			}
		case SegmentTray:
			if !strings.Contains(s.Text, "9:00 AM") {
				t.Errorf("tray text = %q", s.Text)
			}
		}
	}
	if strings.Join(got, ",") != "alpha,beta" {
		t.Errorf("entry segments = %v", got)
	}

	for i := 1; i < len(l.Segments); i++ {
		prev := l.Segments[i-1]
		if prev.X+prev.Width > l.Segments[i].X {
			t.Errorf("segments overlap: %+v and %+v", prev, l.Segments[i])
		}
	}
}

func TestLayoutNarrowDropsEntriesAndTray(t *testing.T) {
	sw := ansi.StringWidth(config.GetStartButton())
	pw := ansi.StringWidth(config.GetPowerButton())
	width := sw + pw + 4
	tray := Tray{Now: time.Now()}
	l := NewLayout([]Entry{{Key: "alpha", Label: "Alpha"}}, tray, width)

	for _, s := range l.Segments {
		if s.Kind == SegmentEntry || s.Kind == SegmentTray {
			t.Errorf("unexpected segment in narrow layout: %+v", s)
		}
	}
	if len(l.Segments) != 2 {
		t.Errorf("segments = %+v", l.Segments)
	}
}

func TestRenderFillsRows(t *testing.T) {
	const width = 80
	l := NewLayout([]Entry{{Key: "alpha", Label: "A very long window title here"}}, Tray{}, width)
	lines := strings.Split(l.Render(3, true), "\n")
	if len(lines) != 3 {
		t.Fatalf("rows = %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != width {
			t.Errorf("row %d width = %d, want %d", i, w, width)
		}
	}
	if NewLayout(nil, Tray{}, 0).Render(3, false) != "" {
		t.Error("zero width should render nothing")
	}
}
