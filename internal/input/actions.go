package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/app"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	// Desktop
	d.Register("toggle_start_menu", handleToggleStartMenu)
	d.Register("toggle_help", handleToggleHelp)
	d.Register("toggle_logs", handleToggleLogs)
	d.Register("open_selected", handleOpenSelected)

	// Windows
	d.Register("next_window", handleNextWindow)
	d.Register("prev_window", handlePrevWindow)
	d.Register("close_window", handleCloseWindow)
	d.Register("minimize_window", handleMinimizeWindow)
	d.Register("maximize_window", handleMaximizeWindow)
	d.Register("move_left", makeMoveHandler(-config.KeyboardMoveStep, 0))
	d.Register("move_right", makeMoveHandler(config.KeyboardMoveStep, 0))
	d.Register("move_up", makeMoveHandler(0, -config.KeyboardMoveStep))
	d.Register("move_down", makeMoveHandler(0, config.KeyboardMoveStep))

	// System
	d.Register("shutdown", handleShutdown)
	d.Register("quit", handleQuit)
}

// Register adds a handler for an action
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch runs the handler for action. Unknown actions do nothing.
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, desk *app.Desktop) (*app.Desktop, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, desk)
	}
	return desk, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

func handleToggleStartMenu(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.StartSelection = 0
	d.Taskbar.ToggleStart()
	return d, nil
}

func handleToggleHelp(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ShowHelp = !d.ShowHelp
	return d, nil
}

func handleToggleLogs(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ShowLogs = !d.ShowLogs
	if d.ShowLogs {
		d.LogScrollOffset = d.MaxLogScroll()
	}
	return d, nil
}

func handleOpenSelected(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if id, ok := d.Grid.Selected(); ok {
		if key, opened := d.Grid.Open(id, d.Manager); opened {
			d.LogInfo("opened %s", key)
		}
	}
	return d, nil
}

func handleNextWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.Manager.FocusNext(1)
	return d, nil
}

func handlePrevWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.Manager.FocusNext(-1)
	return d, nil
}

// withFocused runs fn on the focused window key, if any.
func withFocused(d *app.Desktop, fn func(key string)) (*app.Desktop, tea.Cmd) {
	if key, ok := d.Manager.Focused(); ok {
		fn(key)
	}
	return d, nil
}

func handleCloseWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	return withFocused(d, func(key string) {
		if d.Manager.Close(key) {
			d.LogInfo("closed %s", key)
		}
	})
}

func handleMinimizeWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	return withFocused(d, func(key string) { d.Manager.Minimize(key) })
}

func handleMaximizeWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	return withFocused(d, func(key string) { d.Manager.Maximize(key) })
}

// makeMoveHandler moves the focused window as a one step drag, so the same
// on-screen limits apply as for the mouse.
func makeMoveHandler(dx, dy int) ActionHandler {
	return func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
		return withFocused(d, func(key string) {
			if !d.Manager.BeginDrag(key) {
				return
			}
			defer d.Manager.EndGesture()
			d.Manager.DragUpdate(key, geometry.Point{X: dx, Y: dy})
		})
	}
}

func handleShutdown(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.BeginShutdown()
	return d, nil
}

func handleQuit(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.LogInfo("quit")
	return d, tea.Quit
}
