package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// configRelPath is the config file location below the XDG config home.
const configRelPath = "tuidesk/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig   `toml:"appearance"`
	Desktop     DesktopConfig      `toml:"desktop"`
	Session     SessionConfig      `toml:"session"`
	Windows     []WindowTypeConfig `toml:"windows"`
	Keybindings KeybindingsConfig  `toml:"keybindings"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle   string `toml:"border_style"`    // Border style: rounded, normal, thick, double, hidden, block, ascii
	Theme         string `toml:"theme"`           // Color theme name (e.g., dracula, nord, my-custom-theme)
	ASCIIOnly     bool   `toml:"ascii_only"`      // Use ASCII glyphs for buttons and controls
	HideClock     bool   `toml:"hide_clock"`      // Hide the taskbar clock and date
	HideTrayStats bool   `toml:"hide_tray_stats"` // Hide CPU and RAM usage in the taskbar
	CellWidth     int    `toml:"cell_width"`      // Desktop pixels per terminal column (default: 10)
	CellHeight    int    `toml:"cell_height"`     // Desktop pixels per terminal row (default: 20)
}

// DesktopConfig holds the icon grid settings
type DesktopConfig struct {
	UserName     string       `toml:"user_name"`     // Name shown on the login screen and start menu
	SearchRadius int          `toml:"search_radius"` // Grid steps probed for a free cell on icon drop (default: 10)
	Icons        []IconConfig `toml:"icons"`
}

// IconConfig describes one desktop icon
type IconConfig struct {
	ID    int    `toml:"id"`
	Label string `toml:"label"`
	Image string `toml:"image"` // Glyph drawn above the label
	Key   string `toml:"key"`   // Window key opened on double click; derived from the label when empty
}

// SessionConfig holds the boot, login and shutdown framing settings
type SessionConfig struct {
	SkipBoot   bool `toml:"skip_boot"`   // Go straight to the desktop
	BootMS     int  `toml:"boot_ms"`     // Boot screen duration in milliseconds
	LoginMS    int  `toml:"login_ms"`    // Login progress duration in milliseconds
	ShutdownMS int  `toml:"shutdown_ms"` // Shutdown progress duration in milliseconds
}

// WindowTypeConfig overrides or adds a window type in the catalog
type WindowTypeConfig struct {
	Key        string `toml:"key"`
	Title      string `toml:"title"`
	Icon       string `toml:"icon"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	MinWidth   int    `toml:"min_width"`
	MinHeight  int    `toml:"min_height"`
	MinVisible int    `toml:"min_visible"`
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	Desktop map[string][]string `toml:"desktop"`
	Windows map[string][]string `toml:"windows"`
	System  map[string][]string `toml:"system"`
}

// DefaultIcons returns the stock desktop icons
func DefaultIcons() []IconConfig {
	return []IconConfig{
		{ID: 1, Label: "Resume", Image: "[PDF]", Key: "resume"},
		{ID: 2, Label: "VS Code", Image: "</>"},
		{ID: 3, Label: "Projects", Image: "[==]"},
		{ID: 4, Label: "Contact Me", Image: "[@]", Key: "mail"},
	}
}

// DefaultWindowTypes returns the stock window catalog
func DefaultWindowTypes() []WindowTypeConfig {
	return []WindowTypeConfig{
		{Key: "resume", Title: "Resume", Icon: "[PDF]", Width: 800, Height: 600, MinWidth: 300, MinHeight: 200, MinVisible: 100},
		{Key: "vscode", Title: "VS Code", Icon: "</>", Width: 1100, Height: 700, MinWidth: 400, MinHeight: 300, MinVisible: 100},
		{Key: "projects", Title: "Projects", Icon: "[==]", Width: 900, Height: 700, MinWidth: 400, MinHeight: 300, MinVisible: 200},
		{Key: "mail", Title: "Contact Me", Icon: "[@]", Width: 600, Height: 500, MinWidth: 400, MinHeight: 300, MinVisible: 200},
		{Key: "about", Title: "About Me", Icon: "[i]", Width: 900, Height: 700, MinWidth: 400, MinHeight: 300, MinVisible: 200},
		{Key: "github", Title: "My GitHub", Icon: "[gh]", Width: 900, Height: 700, MinWidth: 400, MinHeight: 300, MinVisible: 200},
		{Key: "profile", Title: "Profile", Icon: "[:)]", Width: 1000, Height: 715, MinWidth: 400, MinHeight: 300, MinVisible: 200},
		{Key: "terminal", Title: "Terminal", Icon: "[>_]", Width: 1100, Height: 700, MinWidth: 400, MinHeight: 300, MinVisible: 100},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle: "rounded",
			CellWidth:   DefaultCellWidth,
			CellHeight:  DefaultCellHeight,
		},
		Desktop: DesktopConfig{
			UserName:     "Guest",
			SearchRadius: DefaultSearchRadius,
			Icons:        DefaultIcons(),
		},
		Session: SessionConfig{
			BootMS:     int(BootDuration.Milliseconds()),
			LoginMS:    int(LoginDuration.Milliseconds()),
			ShutdownMS: int(ShutdownDuration.Milliseconds()),
		},
		Windows: DefaultWindowTypes(),
		Keybindings: KeybindingsConfig{
			Desktop: map[string][]string{
				"toggle_start_menu": {"ctrl+s"},
				"toggle_help":       {"?"},
				"toggle_logs":       {"ctrl+l"},
				"open_selected":     {"enter"},
			},
			Windows: map[string][]string{
				"next_window":     {"tab"},
				"prev_window":     {"shift+tab"},
				"close_window":    {"ctrl+w"},
				"minimize_window": {"ctrl+n"},
				"maximize_window": {"ctrl+f"},
				"move_left":       {"shift+left"},
				"move_right":      {"shift+right"},
				"move_up":         {"shift+up"},
				"move_down":       {"shift+down"},
			},
			System: map[string][]string{
				"shutdown": {"ctrl+q"},
				"quit":     {"ctrl+c"},
			},
		},
	}
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadUserConfigFile(configPath)
}

// LoadUserConfigFile reads, fills and validates the config at path.
func LoadUserConfigFile(path string) (*UserConfig, error) {
	// #nosec G304 - path is from XDG search or an explicit flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingDesktop(&cfg, defaultCfg)
	fillMissingSession(&cfg, defaultCfg)
	fillMissingWindows(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, err := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", err.Field, err.Key, err.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}

	if validation.HasWarnings() {
		for _, warn := range validation.Warnings {
			fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
		}
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := WriteConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig marshals cfg with a commented header and writes it to path.
func WriteConfig(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tuidesk Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# For keybindings, run: tuidesk keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# border_style: rounded, normal, thick, double, hidden, block, ascii\n")
	sb.WriteString("# theme: bubbletint theme id, or a custom theme in ~/.config/tuidesk/themes/*.json\n")
	sb.WriteString("# cell_width / cell_height: desktop pixels per terminal cell (10 x 20)\n")
	sb.WriteString("#\n")
	sb.WriteString("# DESKTOP\n")
	sb.WriteString("# search_radius: grid steps probed for a free cell when an icon is dropped\n")
	sb.WriteString("#   on an occupied one. Past the radius the icon stays where it was dropped.\n")
	sb.WriteString("#\n")
	sb.WriteString("# WINDOWS\n")
	sb.WriteString("# Each [[windows]] entry defines a window type: default size, resize floor,\n")
	sb.WriteString("# and min_visible, the part kept on screen while dragging. Sizes are pixels.\n")
	sb.WriteString("# ============================================================================\n\n")

	if _, err := sb.Write(data); err != nil {
		return fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.CellWidth <= 0 {
		cfg.Appearance.CellWidth = defaultCfg.Appearance.CellWidth
	}
	if cfg.Appearance.CellHeight <= 0 {
		cfg.Appearance.CellHeight = defaultCfg.Appearance.CellHeight
	}
}

func fillMissingDesktop(cfg, defaultCfg *UserConfig) {
	if cfg.Desktop.UserName == "" {
		cfg.Desktop.UserName = defaultCfg.Desktop.UserName
	}
	if cfg.Desktop.SearchRadius <= 0 {
		cfg.Desktop.SearchRadius = defaultCfg.Desktop.SearchRadius
	}
	if len(cfg.Desktop.Icons) == 0 {
		cfg.Desktop.Icons = defaultCfg.Desktop.Icons
	}
}

func fillMissingSession(cfg, defaultCfg *UserConfig) {
	if cfg.Session.BootMS <= 0 {
		cfg.Session.BootMS = defaultCfg.Session.BootMS
	}
	if cfg.Session.LoginMS <= 0 {
		cfg.Session.LoginMS = defaultCfg.Session.LoginMS
	}
	if cfg.Session.ShutdownMS <= 0 {
		cfg.Session.ShutdownMS = defaultCfg.Session.ShutdownMS
	}
}

// fillMissingWindows adds stock window types the user did not redefine and
// fills zero sizes of user entries from the stock entry with the same key.
func fillMissingWindows(cfg, defaultCfg *UserConfig) {
	stock := make(map[string]WindowTypeConfig, len(defaultCfg.Windows))
	for _, w := range defaultCfg.Windows {
		stock[w.Key] = w
	}

	seen := make(map[string]bool, len(cfg.Windows))
	for i := range cfg.Windows {
		w := &cfg.Windows[i]
		seen[w.Key] = true
		base, ok := stock[w.Key]
		if !ok {
			base = WindowTypeConfig{
				Width: DefaultWindowWidth, Height: DefaultWindowHeight,
				MinWidth: MinWindowWidth, MinHeight: MinWindowHeight,
				MinVisible: DefaultMinVisible,
			}
		}
		if w.Title == "" {
			w.Title = base.Title
		}
		if w.Icon == "" {
			w.Icon = base.Icon
		}
		if w.Width <= 0 {
			w.Width = base.Width
		}
		if w.Height <= 0 {
			w.Height = base.Height
		}
		if w.MinWidth <= 0 {
			w.MinWidth = base.MinWidth
		}
		if w.MinHeight <= 0 {
			w.MinHeight = base.MinHeight
		}
		if w.MinVisible <= 0 {
			w.MinVisible = base.MinVisible
		}
	}

	for _, w := range defaultCfg.Windows {
		if !seen[w.Key] {
			cfg.Windows = append(cfg.Windows, w)
		}
	}
}

// fillMissingKeybinds fills in any missing keybinding sections
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Desktop == nil {
		cfg.Keybindings.Desktop = make(map[string][]string)
	}
	if cfg.Keybindings.Windows == nil {
		cfg.Keybindings.Windows = make(map[string][]string)
	}
	if cfg.Keybindings.System == nil {
		cfg.Keybindings.System = make(map[string][]string)
	}
	fillMapDefaults(cfg.Keybindings.Desktop, defaultCfg.Keybindings.Desktop)
	fillMapDefaults(cfg.Keybindings.Windows, defaultCfg.Keybindings.Windows)
	fillMapDefaults(cfg.Keybindings.System, defaultCfg.Keybindings.System)
}

// fillMapDefaults copies missing actions from defaults into target
func fillMapDefaults(target, defaults map[string][]string) {
	for action, keys := range defaults {
		if _, exists := target[action]; !exists {
			target[action] = keys
		}
	}
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(configRelPath)
}
