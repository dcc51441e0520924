package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/app"
	"github.com/Gaurav-Gosain/tuidesk/internal/session"
)

// HandleKeyPress routes a key to the framing screens, the overlays, the start
// menu or the keybinding registry, in that order.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	key := msg.String()

	// The quit binding works on every screen
	if action, ok := d.Keybinds.Action(key); ok && action == "quit" {
		return GetDispatcher().Dispatch(action, msg, d)
	}

	if !d.OnDesktop() {
		return handleFramingKey(key, d)
	}

	if d.ShowLogs {
		return handleLogViewerKey(key, d)
	}
	if d.ShowHelp {
		switch key {
		case "esc", "q", "?":
			d.ShowHelp = false
		}
		return d, nil
	}
	if d.Taskbar.StartOpen() {
		if handled := handleStartMenuKey(key, d); handled {
			return d, nil
		}
	}

	if action, ok := d.Keybinds.Action(key); ok {
		return GetDispatcher().Dispatch(action, msg, d)
	}

	if key == "esc" {
		d.Grid.ClearSelection()
	}
	return d, nil
}

// handleFramingKey handles the boot, login and shutdown screens.
func handleFramingKey(key string, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	switch d.Session.Phase() {
	case session.PhaseLogin:
		if key == "enter" || key == "space" {
			d.SignIn()
		}
	case session.PhaseOff:
		switch key {
		case "enter":
			d.Restart()
		case "q":
			return d, tea.Quit
		}
	}
	return d, nil
}

func handleLogViewerKey(key string, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	switch key {
	case "esc", "q":
		d.ShowLogs = false
	case "up", "k":
		d.LogScrollOffset = max(d.LogScrollOffset-1, 0)
	case "down", "j":
		d.LogScrollOffset = min(d.LogScrollOffset+1, d.MaxLogScroll())
	case "home", "g":
		d.LogScrollOffset = 0
	case "end", "G":
		d.LogScrollOffset = d.MaxLogScroll()
	default:
		if action, ok := d.Keybinds.Action(key); ok && action == "toggle_logs" {
			d.ShowLogs = false
		}
	}
	return d, nil
}

// handleStartMenuKey reports whether the open start menu consumed key.
func handleStartMenuKey(key string, d *app.Desktop) bool {
	switch key {
	case "up", "k":
		d.MoveStartSelection(-1)
	case "down", "j":
		d.MoveStartSelection(1)
	case "enter":
		d.ChooseStartSelection()
	case "esc":
		d.Taskbar.CloseStart()
		d.StartSelection = 0
	default:
		return false
	}
	return true
}
