package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
	"github.com/Gaurav-Gosain/tuidesk/internal/tape"
	"github.com/adrg/xdg"
)

// scriptTarget runs script commands inside the TUI. It differs from the
// headless target where the terminal owns the outcome: the viewport follows
// the terminal size and Shutdown runs the shutdown screen.
type scriptTarget struct {
	*tape.Target
	desktop *Desktop
}

func (t *scriptTarget) SetViewport(vp geometry.Viewport) error {
	t.desktop.LogWarn("script viewport %dx%d ignored, the terminal sets the size", vp.Width, vp.Height)
	return nil
}

func (t *scriptTarget) Shutdown() error {
	t.desktop.BeginShutdown()
	return nil
}

// ScriptStepMsg carries the next script command to the update loop.
type ScriptStepMsg struct {
	Command tape.Command
}

// ScriptPlaying reports whether a script still has commands to run.
func (d *Desktop) ScriptPlaying() bool {
	return d.script != nil && !d.script.Done()
}

// ScriptProgress returns how many script commands have run and the total.
func (d *Desktop) ScriptProgress() (done, total int) {
	if d.script == nil {
		return 0, 0
	}
	return d.script.Progress()
}

// nextScriptStep schedules the next command after the sleeps before it.
func (d *Desktop) nextScriptStep() tea.Cmd {
	if d.script == nil {
		return nil
	}
	cmd, delay, ok := d.script.Step()
	if !ok {
		d.ShowNotification("Script finished", "success", config.NotificationDuration)
		return nil
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ScriptStepMsg{Command: cmd}
	})
}

// runScriptStep executes one command and schedules the next. Playback stops
// when the session leaves the desktop.
func (d *Desktop) runScriptStep(msg ScriptStepMsg) tea.Cmd {
	if !d.OnDesktop() {
		d.LogWarn("script stopped at line %d: session ended", msg.Command.Line)
		return nil
	}
	if err := d.scriptExec.Execute(&msg.Command); err != nil {
		d.ShowNotification(fmt.Sprintf("Script line %d: %v", msg.Command.Line, err), "error", 3*config.NotificationDuration)
	} else {
		d.LogInfo("script: %s", msg.Command.String())
	}
	return d.nextScriptStep()
}

// ScriptDirectory returns the XDG data directory scripts are looked up in.
func ScriptDirectory() string {
	return filepath.Join(xdg.DataHome, "tuidesk", "scripts")
}

// ResolveScript finds a script by path, then by name in the script directory
// with or without the .tape extension.
func ResolveScript(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	dir := ScriptDirectory()
	candidates := []string{filepath.Join(dir, name)}
	if !strings.HasSuffix(name, ".tape") {
		candidates = append(candidates, filepath.Join(dir, name+".tape"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("failed to find script %q in . or %s", name, dir)
}
