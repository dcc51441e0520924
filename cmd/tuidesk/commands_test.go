package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/output"
	"github.com/Gaurav-Gosain/tuidesk/internal/tape"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

func TestHeadlessScript(t *testing.T) {
	cmds, err := tape.ParseString(`
Open resume
Open mail
Drag resume 100 50
Minimize mail
IconDrag 1 300 400
`)
	if err != nil {
		t.Fatal(err)
	}

	target := newHeadless(config.DefaultConfig(), log.New(io.Discard))
	if err := tape.Run(context.Background(), cmds, target, nil); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := output.Write(&sb, output.FormatYAML, false, output.Capture(target.Manager, target.Grid)); err != nil {
		t.Fatal(err)
	}
	var snap output.Snapshot
	if err := yaml.Unmarshal([]byte(sb.String()), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Focused != "" {
		t.Errorf("focused = %q, want none after minimizing the focused window", snap.Focused)
	}
	if len(snap.Windows) != 2 {
		t.Fatalf("windows = %d", len(snap.Windows))
	}
	for _, w := range snap.Windows {
		if w.Key == "resume" && (w.Rect.X != 660 || w.Rect.Y != 255) {
			t.Errorf("resume at (%d, %d), want (660, 255)", w.Rect.X, w.Rect.Y)
		}
	}
	if snap.Icons[0].X != 300 || snap.Icons[0].Y != 400 {
		t.Errorf("icon 1 at (%d, %d)", snap.Icons[0].X, snap.Icons[0].Y)
	}
}

func TestRunScriptBadFormat(t *testing.T) {
	if err := runScript(context.Background(), io.Discard, config.DefaultConfig(), "missing.tape", "xml", false, false); err == nil {
		t.Error("xml format accepted")
	}
}

func TestRunScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.tape")
	if err := os.WriteFile(path, []byte("Open projects\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := runScript(context.Background(), &sb, config.DefaultConfig(), path, "json", true, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), `"focused": "projects"`) {
		t.Errorf("output = %s", sb.String())
	}
}

func TestFindEditor(t *testing.T) {
	t.Setenv("EDITOR", "myeditor --wait")
	if got, err := findEditor(); err != nil || got != "myeditor --wait" {
		t.Errorf("findEditor() = %q, %v", got, err)
	}
}
