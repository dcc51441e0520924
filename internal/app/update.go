package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/session"
	"github.com/Gaurav-Gosain/tuidesk/internal/taskbar"
)

// InputHandler handles keyboard and mouse messages. It is registered from
// the input package, which imports this one.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input handler.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the framing clock and the tray.
func (d *Desktop) Init() tea.Cmd {
	d.Tray.Now = d.now()
	cmds := []tea.Cmd{taskbar.Tick(config.TrayUpdateInterval), d.KeepFraming()}
	if !config.HideTrayStats {
		cmds = append(cmds, taskbar.SampleStats())
	}
	if d.scriptPending {
		d.scriptPending = false
		cmds = append(cmds, d.nextScriptStep())
	}
	return tea.Batch(cmds...)
}

// KeepFraming schedules a framing tick unless one is already pending or the
// current screen is static.
func (d *Desktop) KeepFraming() tea.Cmd {
	if d.framingTick || !d.Session.Animating() {
		return nil
	}
	d.framingTick = true
	return session.Tick()
}

// AfterInput collects the commands a session transition made by input needs:
// the framing clock and the start of script playback.
func (d *Desktop) AfterInput() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, d.KeepFraming())
	if d.scriptPending {
		d.scriptPending = false
		cmds = append(cmds, d.nextScriptStep())
	}
	return tea.Batch(cmds...)
}

// Update handles timer messages itself and hands input to the registered
// input handler.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)
		return d, nil

	case session.TickMsg:
		d.framingTick = false
		if d.Session.Advance(time.Time(msg)) {
			d.LogInfo("session phase %s", d.Session.Phase())
		}
		return d, d.AfterInput()

	case taskbar.TickMsg:
		d.Tray.Now = time.Time(msg)
		d.CleanupNotifications()
		cmds := []tea.Cmd{taskbar.Tick(config.TrayUpdateInterval)}
		if !config.HideTrayStats {
			cmds = append(cmds, taskbar.SampleStats())
		}
		return d, tea.Batch(cmds...)

	case taskbar.StatsMsg:
		if msg.Err != nil {
			d.logger.Debug("tray sample failed", "err", msg.Err)
		}
		d.Tray.Apply(msg)
		return d, nil

	case ScriptStepMsg:
		return d, d.runScriptStep(msg)
	}

	if inputHandler != nil {
		return inputHandler(msg, d)
	}
	return d, nil
}
