// Package input turns keyboard and mouse messages into desktop commands.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/app"
)

func init() {
	app.SetInputHandler(HandleInput)
}

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		_, cmd = HandleKeyPress(msg, d)
	case tea.MouseClickMsg:
		_, cmd = handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		_, cmd = handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		_, cmd = handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		_, cmd = handleMouseWheel(msg, d)
	default:
		return d, nil
	}

	// Input may have moved the session into a timed phase or onto the desktop
	return d, tea.Batch(cmd, d.AfterInput())
}
