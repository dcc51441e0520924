package tuidesk

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
)

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func newTestModel(opts ...Option) *Model {
	cfg := config.DefaultConfig()
	return New(append([]Option{WithUserConfig(cfg), WithSkipBoot(true)}, opts...)...)
}

func TestNewForPTY(t *testing.T) {
	m := NewForPTY(fakePTY{w: 120, h: 40}, WithUserConfig(config.DefaultConfig()))
	if m.Width != 120 || m.Height != 40 {
		t.Errorf("size = %dx%d", m.Width, m.Height)
	}
	if vp := m.Manager.Viewport(); vp.Width != 120*config.CellWidth {
		t.Errorf("viewport = %+v", vp)
	}
}

func TestWithBody(t *testing.T) {
	m := newTestModel(WithBody("notes", BodyFunc(func(w, h int) string {
		return "my notes"
	})))
	m.Manager.Open("notes")
	s, ok := m.Manager.Get("notes")
	if !ok {
		t.Fatal("notes did not open")
	}
	if got := s.Body.Render(20, 5); !strings.Contains(got, "my notes") {
		t.Errorf("body = %q", got)
	}
}

func TestWithScript(t *testing.T) {
	cmds, err := ParseScript("Open resume\n")
	if err != nil {
		t.Fatal(err)
	}
	m := newTestModel(WithScript(cmds))
	if !m.ScriptPlaying() {
		t.Error("script not loaded")
	}
}

func TestFilterMouseMotion(t *testing.T) {
	m := newTestModel(WithSize(192, 54))
	motion := tea.MouseMotionMsg{X: 10, Y: 10}

	if got := FilterMouseMotion(m, motion); got != nil {
		t.Errorf("idle motion passed: %v", got)
	}
	if got := FilterMouseMotion(m, tea.KeyPressMsg{Code: 'a', Text: "a"}); got == nil {
		t.Error("key press filtered")
	}

	m.Manager.Open("resume")
	m.Manager.BeginDrag("resume")
	if got := FilterMouseMotion(m, motion); got == nil {
		t.Error("motion during a drag filtered")
	}
	m.Manager.EndGesture()

	m.Grid.BeginDrag(1, m.Grid.Icons()[0].Pos)
	if got := FilterMouseMotion(m, motion); got == nil {
		t.Error("motion during an icon drag filtered")
	}
}
