// Package theme provides the desktop color palette, backed by bubbletint.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// If themeName is empty, theming is disabled and the built-in palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Warn("error loading custom themes", "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("theme %q not found, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the active theme, or nil when theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// pick returns the themed color chosen by f, or fallback without a theme.
func pick(fallback string, f func(t *tint.Tint) *tint.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	if c := f(t); c != nil {
		return c
	}
	return lipgloss.Color(fallback)
}

// Wallpaper is the desktop background.
func Wallpaper() color.Color {
	return pick("#1d4e89", func(t *tint.Tint) *tint.Color { return t.Blue })
}

// WallpaperPattern is the color of the dotted grid drawn on the wallpaper.
func WallpaperPattern() color.Color {
	return pick("#2a5fa0", func(t *tint.Tint) *tint.Color { return t.BrightBlue })
}

// BorderFocused returns the border color of the focused window.
func BorderFocused() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) *tint.Color { return t.BrightCyan })
}

// BorderUnfocused returns the border color of other windows.
func BorderUnfocused() color.Color {
	return pick("#8a8a9a", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// TitleBarFocused returns the title bar background of the focused window.
func TitleBarFocused() color.Color {
	return pick("#0a64d8", func(t *tint.Tint) *tint.Color { return t.Blue })
}

// TitleBarUnfocused returns the title bar background of other windows.
func TitleBarUnfocused() color.Color {
	return pick("#5a6a86", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// TitleFg returns the title text color.
func TitleFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) *tint.Color { return t.BrightWhite })
}

// CloseButtonBg returns the close button background.
func CloseButtonBg() color.Color {
	return pick("#d9432f", func(t *tint.Tint) *tint.Color { return t.Red })
}

// WindowBg returns the body background of a window.
func WindowBg() color.Color {
	return pick("#ece9d8", func(t *tint.Tint) *tint.Color { return t.Bg })
}

// WindowFg returns the body text color of a window.
func WindowFg() color.Color {
	return pick("#1a1a1a", func(t *tint.Tint) *tint.Color { return t.Fg })
}

// IconLabel returns the color of desktop icon labels.
func IconLabel() color.Color {
	return pick("#ffffff", func(t *tint.Tint) *tint.Color { return t.BrightWhite })
}

// IconSelectedBg returns the highlight behind a selected icon.
func IconSelectedBg() color.Color {
	return pick("#3a78c8", func(t *tint.Tint) *tint.Color { return t.Cyan })
}

// TaskbarBg returns the taskbar background.
func TaskbarBg() color.Color {
	return lipgloss.Color("#1f2a44")
}

// TaskbarFg returns the taskbar text color.
func TaskbarFg() color.Color {
	return lipgloss.Color("#d0d4dc")
}

// TaskbarActive returns the background of the focused taskbar entry.
func TaskbarActive() color.Color {
	return pick("#3c5a99", func(t *tint.Tint) *tint.Color { return t.Blue })
}

// TaskbarMinimized returns the text color of minimized taskbar entries.
func TaskbarMinimized() color.Color {
	return lipgloss.Color("#7a8294")
}

// StartButtonBg returns the start control background.
func StartButtonBg() color.Color {
	return pick("#2f8f3a", func(t *tint.Tint) *tint.Color { return t.Green })
}

// StartMenuBg returns the start menu background.
func StartMenuBg() color.Color {
	return lipgloss.Color("#243559")
}

// Accent returns the highlight color for menus and progress bars.
func Accent() color.Color {
	return pick("#f5a623", func(t *tint.Tint) *tint.Color { return t.Yellow })
}

// ScreenBg returns the background of the boot, login and shutdown screens.
func ScreenBg() color.Color {
	return pick("#00309c", func(t *tint.Tint) *tint.Color { return t.Bg })
}

// ScreenFg returns the text color of the boot, login and shutdown screens.
func ScreenFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) *tint.Color { return t.Fg })
}

// NotificationError is the accent of error notifications.
func NotificationError() color.Color {
	return pick("#ff5555", func(t *tint.Tint) *tint.Color { return t.BrightRed })
}

// NotificationWarning is the accent of warning notifications.
func NotificationWarning() color.Color {
	return pick("#ffb86c", func(t *tint.Tint) *tint.Color { return t.BrightYellow })
}

// NotificationSuccess is the accent of success notifications.
func NotificationSuccess() color.Color {
	return pick("#50fa7b", func(t *tint.Tint) *tint.Color { return t.BrightGreen })
}

// NotificationInfo is the accent of info notifications.
func NotificationInfo() color.Color {
	return pick("#8be9fd", func(t *tint.Tint) *tint.Color { return t.BrightCyan })
}

// NotificationBg is the background of notifications.
func NotificationBg() color.Color {
	return pick("#000000", func(t *tint.Tint) *tint.Color { return t.Bg })
}

// LogViewerError, LogViewerWarn and LogViewerInfo color log levels.
func LogViewerError() color.Color { return lipgloss.Color("#ff5555") }

func LogViewerWarn() color.Color { return lipgloss.Color("#ffb86c") }

func LogViewerInfo() color.Color { return lipgloss.Color("#8be9fd") }

// HelpKeyBadge returns the color for key badges in the help overlay.
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

// HelpGray returns the gray color for help overlay text.
func HelpGray() color.Color {
	return lipgloss.Color("8")
}

// CLITableHeader and CLITableKey color the keybinds listing.
func CLITableHeader() color.Color { return lipgloss.Color("12") }

func CLITableKey() color.Color { return lipgloss.Color("11") }

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
