// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Desktop Geometry (pixels)
// =============================================================================

const (
	// GridSize is the pitch of the desktop icon grid
	GridSize = 100

	// DefaultSearchRadius is how many grid steps an icon drop probes for a free cell
	DefaultSearchRadius = 10

	// HeaderGrabHeight is how far a title bar may be dragged above the top edge
	HeaderGrabHeight = 60

	// DefaultMinVisible is the part of a window kept on screen while dragging
	DefaultMinVisible = 200

	// TaskbarHeight is the height of the taskbar
	TaskbarHeight = 60

	// TaskbarReserve is the vertical space subtracted when centering new windows
	TaskbarReserve = 70
)

// =============================================================================
// Window Defaults (pixels)
// =============================================================================

const (
	// DefaultWindowWidth is the default width for window types without a catalog entry
	DefaultWindowWidth = 900

	// DefaultWindowHeight is the default height for window types without a catalog entry
	DefaultWindowHeight = 700

	// MinWindowWidth is the default resize floor for width
	MinWindowWidth = 400

	// MinWindowHeight is the default resize floor for height
	MinWindowHeight = 300
)

// =============================================================================
// Stacking
// =============================================================================

const (
	// ZBase is the rank of the first window in open order
	ZBase = 1000

	// ZStep is the gap between consecutive ranks in open order
	ZStep = 10

	// ZFocused is the rank of the focused window, above any open-order rank
	ZFocused = 10000
)

// =============================================================================
// Terminal Cell Metrics
// =============================================================================

const (
	// DefaultCellWidth is how many desktop pixels one terminal column covers
	DefaultCellWidth = 10

	// DefaultCellHeight is how many desktop pixels one terminal row covers
	DefaultCellHeight = 20
)

// =============================================================================
// Session Framing
// =============================================================================

const (
	// BootDuration is how long the boot screen stays up
	BootDuration = 3 * time.Second

	// LoginDuration is how long the login progress bar takes to fill
	LoginDuration = 4 * time.Second

	// ShutdownDuration is how long the shutdown progress bar takes to fill
	ShutdownDuration = 4 * time.Second

	// PhaseSettleDelay is the pause after a progress bar completes
	PhaseSettleDelay = 500 * time.Millisecond

	// FramingTickInterval is the refresh interval for progress bars
	FramingTickInterval = 50 * time.Millisecond
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// DoubleClickInterval is the maximum gap between two presses of a double click
	DoubleClickInterval = 400 * time.Millisecond

	// TrayUpdateInterval is the interval between tray (clock, CPU, RAM) refreshes
	TrayUpdateInterval = time.Second

	// NotificationDuration is the default duration notifications remain visible
	NotificationDuration = 1500 * time.Millisecond
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the refresh rate during regular operation
	NormalFPS = 60

	// InteractionFPS is the refresh rate while a drag or resize is active
	InteractionFPS = 30
)

// =============================================================================
// UI Layout (cells)
// =============================================================================

const (
	// MaxLogMessages caps the in-app log buffer
	MaxLogMessages = 500

	// LogViewerWidth is the width of the log viewer overlay
	LogViewerWidth = 80

	// MaxNotificationWidth is the maximum width of notification messages
	MaxNotificationWidth = 60

	// MaxVisibleNotifications is the maximum number of notifications shown at once
	MaxVisibleNotifications = 3

	// StartMenuWidth is the width of the start menu panel
	StartMenuWidth = 32

	// MaxTaskbarLabel is the maximum label length of a taskbar entry
	MaxTaskbarLabel = 14

	// ResizeHandleCells is how close to an edge, in cells, a press starts a resize
	ResizeHandleCells = 1
)

// KeyboardMoveStep is how far, in pixels, a move key shifts the focused window
const KeyboardMoveStep = 50

// =============================================================================
// Render Layers
// =============================================================================

// Window layers take their z from the manager's ranks (ZBase up to ZFocused),
// so every chrome layer above windows sits past ZFocused.
const (
	ZIndexWallpaper     = 0
	ZIndexIcons         = 10
	ZIndexDraggedIcon   = 20
	ZIndexTaskbar       = ZFocused + 1000
	ZIndexStartMenu     = ZFocused + 2000
	ZIndexNotifications = ZFocused + 3000
	ZIndexHelp          = ZFocused + 4000
	ZIndexLogs          = ZFocused + 4100
	ZIndexFraming       = ZFocused + 5000
)

// =============================================================================
// Icons and Buttons
// =============================================================================

const (
	// WindowButtonMinimize is the minimize title bar button
	WindowButtonMinimize = " − "
	// WindowButtonMaximize is the maximize title bar button
	WindowButtonMaximize = " □ "
	// WindowButtonRestore is the maximize button of a maximized window
	WindowButtonRestore = " ❐ "
	// WindowButtonClose is the close title bar button
	WindowButtonClose = " × "

	// WindowButtonMinimizeASCII is the ASCII fallback for minimize
	WindowButtonMinimizeASCII = " _ "
	// WindowButtonMaximizeASCII is the ASCII fallback for maximize
	WindowButtonMaximizeASCII = " O "
	// WindowButtonRestoreASCII is the ASCII fallback for restore
	WindowButtonRestoreASCII = " o "
	// WindowButtonCloseASCII is the ASCII fallback for close
	WindowButtonCloseASCII = " X "

	// StartButton is the label of the taskbar start control
	StartButton = " ⊞ Start "
	// StartButtonASCII is the ASCII fallback for the start control
	StartButtonASCII = " [Start] "
	// PowerButton is the label of the shutdown control
	PowerButton = " ⏻ "
	// PowerButtonASCII is the ASCII fallback for the shutdown control
	PowerButtonASCII = " (O) "

	// NotificationIconError is the error notification icon
	NotificationIconError = "[X]"
	// NotificationIconWarning is the warning notification icon
	NotificationIconWarning = "[!]"
	// NotificationIconSuccess is the success notification icon
	NotificationIconSuccess = "[OK]"
	// NotificationIconInfo is the info notification icon
	NotificationIconInfo = "[i]"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly controls whether to use ASCII fallback characters
// Set via --ascii-only flag or appearance.ascii_only config
var UseASCIIOnly = false

// BorderStyle controls which border style to use for windows
// Set via --border-style flag or appearance.border_style config
var BorderStyle = "rounded"

// HideClock controls whether the taskbar clock and date are hidden
// Set via --hide-clock flag or appearance.hide_clock config
var HideClock = false

// HideTrayStats controls whether CPU and RAM usage are hidden in the taskbar
// Set via appearance.hide_tray_stats config
var HideTrayStats = false

// CellWidth is the number of desktop pixels per terminal column
// Set via --cell-width flag or appearance.cell_width config
var CellWidth = DefaultCellWidth

// CellHeight is the number of desktop pixels per terminal row
// Set via --cell-height flag or appearance.cell_height config
var CellHeight = DefaultCellHeight

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "rounded":
		fallthrough
	default:
		return lipgloss.RoundedBorder()
	}
}

// GetWindowButtons returns the minimize, maximize and close buttons for the
// current character set. maximized selects the restore glyph.
func GetWindowButtons(maximized bool) (minimize, maximize, closeBtn string) {
	if UseASCIIOnly {
		maximize = WindowButtonMaximizeASCII
		if maximized {
			maximize = WindowButtonRestoreASCII
		}
		return WindowButtonMinimizeASCII, maximize, WindowButtonCloseASCII
	}
	maximize = WindowButtonMaximize
	if maximized {
		maximize = WindowButtonRestore
	}
	return WindowButtonMinimize, maximize, WindowButtonClose
}

// GetStartButton returns the start control label
func GetStartButton() string {
	if UseASCIIOnly {
		return StartButtonASCII
	}
	return StartButton
}

// GetPowerButton returns the shutdown control label
func GetPowerButton() string {
	if UseASCIIOnly {
		return PowerButtonASCII
	}
	return PowerButton
}
