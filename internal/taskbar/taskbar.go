// Package taskbar projects the window manager's open windows into a taskbar
// and turns taskbar clicks back into manager commands. It keeps no window
// state of its own.
package taskbar

import (
	"io"

	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
	"github.com/charmbracelet/log"
)

// Controller is the window manager surface the taskbar reads and drives.
type Controller interface {
	Windows() []wm.State
	Minimize(key string) bool
	Focus(key string) bool
	Shutdown()
}

// Entry is one taskbar button.
type Entry struct {
	Key       string
	Icon      string
	Label     string
	Minimized bool
	Focused   bool
}

// Action is what a click on an entry did.
type Action int

const (
	ActionNone Action = iota
	ActionRestore
	ActionFocus
	ActionMinimize
)

func (a Action) String() string {
	switch a {
	case ActionRestore:
		return "restore"
	case ActionFocus:
		return "focus"
	case ActionMinimize:
		return "minimize"
	default:
		return "none"
	}
}

// Projector derives entries from a Controller and dispatches clicks.
type Projector struct {
	ctrl      Controller
	startOpen bool
	logger    *log.Logger
}

// New returns a projector over ctrl. A nil logger discards.
func New(ctrl Controller, logger *log.Logger) *Projector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Projector{ctrl: ctrl, logger: logger}
}

// Entries lists the open windows in open order. Focus changes and
// minimizing never reorder it.
func (p *Projector) Entries() []Entry {
	states := p.ctrl.Windows()
	out := make([]Entry, 0, len(states))
	for _, s := range states {
		out = append(out, Entry{
			Key:       s.Key,
			Icon:      s.Icon,
			Label:     s.Title,
			Minimized: s.Minimized,
			Focused:   s.Focused,
		})
	}
	return out
}

// Click handles a press on the entry for key: a minimized window is restored
// and focused, an unfocused one is focused, and the focused one is minimized.
func (p *Projector) Click(key string) Action {
	var entry *Entry
	for _, e := range p.Entries() {
		if e.Key == key {
			entry = &e
			break
		}
	}
	if entry == nil {
		return ActionNone
	}

	var action Action
	switch {
	case entry.Minimized:
		p.ctrl.Minimize(key)
		p.ctrl.Focus(key)
		action = ActionRestore
	case !entry.Focused:
		p.ctrl.Focus(key)
		action = ActionFocus
	default:
		p.ctrl.Minimize(key)
		action = ActionMinimize
	}
	p.logger.Debug("taskbar click", "key", key, "action", action)
	return action
}

// Shutdown is the power control.
func (p *Projector) Shutdown() {
	p.startOpen = false
	p.ctrl.Shutdown()
	p.logger.Debug("taskbar shutdown")
}

// ToggleStart opens or closes the start menu and reports the new state.
func (p *Projector) ToggleStart() bool {
	p.startOpen = !p.startOpen
	return p.startOpen
}

// CloseStart closes the start menu.
func (p *Projector) CloseStart() { p.startOpen = false }

// StartOpen reports whether the start menu is showing.
func (p *Projector) StartOpen() bool { return p.startOpen }
