// Package app implements the tuidesk bubbletea model: a desktop of icons,
// windows and a taskbar framed by boot, login and shutdown screens.
package app

import (
	"fmt"
	"io"
	"time"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/desktop"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
	"github.com/Gaurav-Gosain/tuidesk/internal/session"
	"github.com/Gaurav-Gosain/tuidesk/internal/tape"
	"github.com/Gaurav-Gosain/tuidesk/internal/taskbar"
	"github.com/Gaurav-Gosain/tuidesk/internal/window"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Desktop is the application model. Sizes are in terminal cells; everything
// handed to the window manager and the icon grid is in desktop pixels.
type Desktop struct {
	Config   *config.UserConfig
	Manager  *wm.Manager
	Grid     *desktop.Grid
	Taskbar  *taskbar.Projector
	Tray     taskbar.Tray
	Session  *session.Machine
	Keybinds *config.KeybindRegistry

	// Terminal size in cells
	Width  int
	Height int

	// Overlays
	ShowHelp        bool
	ShowLogs        bool
	LogScrollOffset int
	StartSelection  int

	LogMessages   []LogMessage
	Notifications []Notification

	// Pointer state
	PressAt   geometry.Point // pixel position of the press that began the gesture
	lastClick click

	// Script playback
	script        *tape.Player
	scriptExec    *tape.CommandExecutor
	scriptPending bool

	catalog     *window.Catalog
	framingTick bool
	now         func() time.Time
	logger      *log.Logger
}

type click struct {
	icon int
	at   time.Time
}

// Notification is a transient message shown in the top right corner.
type Notification struct {
	ID        string
	Message   string
	Type      string // info, success, warning, error
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage is an entry of the in-app log viewer.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Option configures a Desktop.
type Option func(*Desktop)

// WithLogger sets the structured logger shared by the desktop components.
func WithLogger(l *log.Logger) Option {
	return func(d *Desktop) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Desktop) {
		if now != nil {
			d.now = now
		}
	}
}

// WithScript plays cmds once the desktop session begins.
func WithScript(cmds []tape.Command) Option {
	return func(d *Desktop) {
		if len(cmds) > 0 {
			d.script = tape.NewPlayer(cmds)
		}
	}
}

// WithCatalog replaces the window catalog built from the config.
func WithCatalog(c *window.Catalog) Option {
	return func(d *Desktop) {
		d.catalog = c
	}
}

// New builds a desktop from cfg. A nil cfg uses the defaults.
func New(cfg *config.UserConfig, opts ...Option) *Desktop {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d := &Desktop{
		Config:   cfg,
		Keybinds: config.NewKeybindRegistry(cfg),
		Width:    80,
		Height:   24,
		now:      time.Now,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.catalog == nil {
		d.catalog = window.CatalogFromConfig(cfg.Windows)
	}
	d.Manager = wm.New(d.catalog, wm.WithLogger(d.logger), wm.WithViewport(d.Viewport()))
	d.Grid = desktop.FromConfig(cfg.Desktop, desktop.WithLogger(d.logger))
	d.Taskbar = taskbar.New(d.Manager, d.logger)
	d.Tray = taskbar.Tray{
		Now:       d.now(),
		HideClock: config.HideClock,
		HideStats: config.HideTrayStats,
	}
	d.scriptExec = tape.NewCommandExecutor(&scriptTarget{
		Target:  tape.NewTarget(d.Manager, d.Grid, d.Taskbar, d.logger),
		desktop: d,
	})
	d.Session = session.New(
		session.DurationsFromConfig(cfg.Session),
		session.WithSkipBoot(cfg.Session.SkipBoot),
		session.WithLogger(d.logger),
		session.OnDesktop(d.sessionStarted),
		session.OnShutdown(d.sessionEnding),
	)
	d.Session.Start(d.now())
	return d
}

func (d *Desktop) sessionStarted(id string) {
	d.LogInfo("session %s started", id[:8])
	if d.script != nil && !d.script.Done() {
		d.scriptPending = true
	}
}

// sessionEnding resets the window manager and icon state.
func (d *Desktop) sessionEnding(id string) {
	d.Taskbar.Shutdown()
	d.Grid.ClearSelection()
	d.ShowHelp = false
	d.scriptPending = false
	if len(id) > 8 {
		id = id[:8]
	}
	d.LogInfo("session %s shutting down", id)
}

// Now returns the desktop clock.
func (d *Desktop) Now() time.Time { return d.now() }

// Logger returns the structured logger.
func (d *Desktop) Logger() *log.Logger { return d.logger }

// Viewport returns the terminal size in desktop pixels.
func (d *Desktop) Viewport() geometry.Viewport {
	return geometry.Viewport{Width: d.Width * config.CellWidth, Height: d.Height * config.CellHeight}
}

// Resize records a new terminal size and passes it on to the manager.
func (d *Desktop) Resize(width, height int) {
	d.Width, d.Height = max(width, 1), max(height, 1)
	d.Manager.SetViewport(d.Viewport())
	d.LogInfo("viewport %dx%d px", d.Width*config.CellWidth, d.Height*config.CellHeight)
}

// ToPixels converts a cell position to the desktop pixel at its top left.
func ToPixels(x, y int) geometry.Point {
	return geometry.Point{X: x * config.CellWidth, Y: y * config.CellHeight}
}

// ToCells converts a desktop pixel position to the cell containing it.
func ToCells(p geometry.Point) (x, y int) {
	return floorDiv(p.X, config.CellWidth), floorDiv(p.Y, config.CellHeight)
}

func floorDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// TaskbarRows is the taskbar height in rows.
func TaskbarRows() int {
	return max(1, (config.TaskbarHeight+config.CellHeight-1)/config.CellHeight)
}

// OnDesktop reports whether the desktop is up, as opposed to a framing screen.
func (d *Desktop) OnDesktop() bool {
	return d.Session.Phase() == session.PhaseDesktop
}

// UserName is the name on the login screen and start menu.
func (d *Desktop) UserName() string {
	if d.Config.Desktop.UserName == "" {
		return "Guest"
	}
	return d.Config.Desktop.UserName
}

// IsDoubleClick records a press on icon and reports whether it completes a
// double click: a second press on the same icon within DoubleClickInterval.
func (d *Desktop) IsDoubleClick(icon int) bool {
	now := d.now()
	double := d.lastClick.icon == icon && now.Sub(d.lastClick.at) <= config.DoubleClickInterval
	if double {
		d.lastClick = click{}
	} else {
		d.lastClick = click{icon: icon, at: now}
	}
	return double
}

// =============================================================================
// Session control
// =============================================================================

// SignIn leaves the login screen.
func (d *Desktop) SignIn() bool {
	return d.Session.SignIn(d.now())
}

// BeginShutdown closes every window and starts the shutdown screen.
func (d *Desktop) BeginShutdown() bool {
	return d.Session.BeginShutdown(d.now())
}

// Restart returns to the login screen after shutdown.
func (d *Desktop) Restart() bool {
	return d.Session.Restart(d.now())
}

// =============================================================================
// Logging and notifications
// =============================================================================

// logsPerPage is how many log lines fit the log viewer.
func (d *Desktop) logsPerPage() int {
	maxDisplayHeight := max(d.Height-8, 8)
	// title, blank, blank, hint; plus blank and indicator when scrollable
	fixed := 4
	if len(d.LogMessages) > maxDisplayHeight-fixed {
		fixed = 6
	}
	return max(maxDisplayHeight-fixed, 1)
}

// MaxLogScroll is the largest useful log scroll offset.
func (d *Desktop) MaxLogScroll() int {
	return max(len(d.LogMessages)-d.logsPerPage(), 0)
}

// Log adds a message to the log buffer. The viewer sticks to the bottom when
// it was already there.
func (d *Desktop) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	atBottom := d.ShowLogs && d.LogScrollOffset >= d.MaxLogScroll()-2

	d.LogMessages = append(d.LogMessages, LogMessage{Time: d.now(), Level: level, Message: message})
	if len(d.LogMessages) > config.MaxLogMessages {
		d.LogMessages = d.LogMessages[len(d.LogMessages)-config.MaxLogMessages:]
	}
	if atBottom {
		d.LogScrollOffset = d.MaxLogScroll()
	}

	switch level {
	case "ERROR":
		d.logger.Error(message)
	case "WARN":
		d.logger.Warn(message)
	default:
		d.logger.Debug(message)
	}
}

// LogInfo logs an informational message.
func (d *Desktop) LogInfo(format string, args ...any) { d.Log("INFO", format, args...) }

// LogWarn logs a warning.
func (d *Desktop) LogWarn(format string, args ...any) { d.Log("WARN", format, args...) }

// LogError logs an error.
func (d *Desktop) LogError(format string, args ...any) { d.Log("ERROR", format, args...) }

// ShowNotification displays message for duration and logs it.
func (d *Desktop) ShowNotification(message, notifType string, duration time.Duration) {
	d.Notifications = append(d.Notifications, Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Type:      notifType,
		StartTime: d.now(),
		Duration:  duration,
	})
	switch notifType {
	case "error":
		d.LogError("%s", message)
	case "warning":
		d.LogWarn("%s", message)
	default:
		d.LogInfo("%s", message)
	}
}

// CleanupNotifications drops expired notifications.
func (d *Desktop) CleanupNotifications() {
	now := d.now()
	active := d.Notifications[:0]
	for _, n := range d.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	d.Notifications = active
}
