package config

import (
	"github.com/Gaurav-Gosain/tuidesk/internal/theme"
	"github.com/charmbracelet/log"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII glyphs for buttons and controls
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// HideClock overrides hiding the taskbar clock
	HideClock bool

	// CellWidth and CellHeight override the pixel size of a terminal cell
	CellWidth  int
	CellHeight int

	// SkipBoot jumps straight to the desktop
	SkipBoot bool

	// ThemeName is the theme to load
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if userConfig != nil {
		UseASCIIOnly = overrides.ASCIIOnly || userConfig.Appearance.ASCIIOnly
		HideClock = overrides.HideClock || userConfig.Appearance.HideClock
		HideTrayStats = userConfig.Appearance.HideTrayStats
		if overrides.SkipBoot {
			userConfig.Session.SkipBoot = true
		}
	} else {
		UseASCIIOnly = overrides.ASCIIOnly
		HideClock = overrides.HideClock
	}

	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	// Cell metrics are bounded by the grid pitch so icons stay cell aligned
	switch {
	case overrides.CellWidth > 0:
		CellWidth = min(overrides.CellWidth, GridSize)
	case userConfig != nil && userConfig.Appearance.CellWidth > 0:
		CellWidth = userConfig.Appearance.CellWidth
	}
	switch {
	case overrides.CellHeight > 0:
		CellHeight = min(overrides.CellHeight, GridSize)
	case userConfig != nil && userConfig.Appearance.CellHeight > 0:
		CellHeight = userConfig.Appearance.CellHeight
	}

	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Warn("failed to load theme", "theme", themeName, "err", err)
		}
	}
}
