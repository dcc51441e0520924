package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuidesk/internal/desktop"
	"github.com/Gaurav-Gosain/tuidesk/internal/window"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
	"gopkg.in/yaml.v3"
)

func sampleSnapshot() Snapshot {
	m := wm.New(window.NewCatalog())
	m.Open("alpha")
	m.Open("beta")
	m.Minimize("alpha")
	g := desktop.NewGrid([]desktop.Icon{{ID: 1, Label: "VS Code"}})
	return Capture(m, g)
}

func TestCapture(t *testing.T) {
	s := sampleSnapshot()
	if s.Focused != "beta" {
		t.Errorf("focused = %q", s.Focused)
	}
	if strings.Join(s.OpenOrder, ",") != "alpha,beta" {
		t.Errorf("open order = %v", s.OpenOrder)
	}
	if len(s.Windows) != 2 || !s.Windows[0].Minimized || !s.Windows[1].Focused {
		t.Errorf("windows = %+v", s.Windows)
	}
	if s.Viewport.Width != 1920 || s.Viewport.Height != 1080 {
		t.Errorf("viewport = %+v", s.Viewport)
	}
	if len(s.Icons) != 1 || s.Icons[0].Key != "vscode" {
		t.Errorf("icons = %+v", s.Icons)
	}
}

func TestCaptureEmpty(t *testing.T) {
	s := Capture(wm.New(nil), nil)
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, false, s); err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["icons"]; ok {
		t.Error("icons should be omitted without a grid")
	}
	if ws, ok := m["windows"].([]any); !ok || len(ws) != 0 {
		t.Errorf("windows = %#v, want empty list", m["windows"])
	}
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name      string
		pretty    bool
		multiline bool
	}{
		{"compact", false, false},
		{"pretty", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, FormatJSON, tt.pretty, sampleSnapshot()); err != nil {
				t.Fatal(err)
			}
			lines := bytes.Count(buf.Bytes(), []byte("\n"))
			if got := lines > 1; got != tt.multiline {
				t.Errorf("multiline = %v, output:\n%s", got, buf.String())
			}
			var decoded Snapshot
			if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if decoded.Focused != "beta" {
				t.Errorf("focused = %q", decoded.Focused)
			}
		})
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, false, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"focused: beta", "open_order:", "z_rank:", "minimized: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}
	var decoded Snapshot
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Windows) != 2 {
		t.Errorf("windows = %+v", decoded.Windows)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{"", FormatYAML, false},
		{"Json", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if err := Write(&bytes.Buffer{}, Format("xml"), false, nil); err == nil {
		t.Error("Write with unknown format should fail")
	}
}
