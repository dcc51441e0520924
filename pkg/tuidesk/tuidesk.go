// Package tuidesk provides a desktop metaphor for the terminal: draggable,
// resizable windows, desktop icons, a taskbar and a start menu. It can be
// embedded in other Bubble Tea applications or run as a standalone TUI.
//
// # Basic Usage
//
//	model := tuidesk.New()
//	p := tea.NewProgram(model, tuidesk.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model := tuidesk.New(
//		tuidesk.WithTheme("dracula"),
//		tuidesk.WithSkipBoot(true),
//		tuidesk.WithBody("resume", tuidesk.BodyFunc(renderResume)),
//	)
//
// # Using with sip (Web Terminal)
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		return tuidesk.New(), tuidesk.ProgramOptions()
//	})
package tuidesk

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/app"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/tape"
	"github.com/Gaurav-Gosain/tuidesk/internal/window"
	"github.com/charmbracelet/log"

	// Registers the keyboard and mouse handler with the app package
	_ "github.com/Gaurav-Gosain/tuidesk/internal/input"
)

// Model is the desktop model that implements tea.Model.
type Model = app.Desktop

// Body renders the inside of a window at the given cell size.
type Body = window.Body

// BodyFunc adapts a function to Body.
type BodyFunc = window.BodyFunc

// Command is one parsed script command.
type Command = tape.Command

// Options configures a desktop.
type Options struct {
	// Theme is the bubbletint theme id or custom theme name. Empty keeps the
	// built-in palette.
	Theme string

	// BorderStyle sets the window border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// ASCIIOnly uses ASCII glyphs for buttons and controls.
	ASCIIOnly bool

	// HideClock hides the taskbar clock and date.
	HideClock bool

	// CellWidth and CellHeight are the desktop pixels per terminal cell.
	CellWidth  int
	CellHeight int

	// SkipBoot starts on the desktop instead of the boot screen.
	SkipBoot bool

	// Script is played on the desktop once the session starts.
	Script []Command

	// Bodies replaces the body of window types by key.
	Bodies map[string]Body

	// Width and Height are the initial size in cells (set automatically if 0).
	Width  int
	Height int

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger

	// UserConfig is a custom user configuration. If nil, the config file is
	// loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring a desktop.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) { o.Theme = name }
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) { o.BorderStyle = style }
}

// WithASCIIOnly enables ASCII-only glyphs.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) { o.ASCIIOnly = enabled }
}

// WithHideClock hides the taskbar clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) { o.HideClock = hide }
}

// WithCellSize sets how many desktop pixels one terminal cell covers.
// Non-positive values keep the default.
func WithCellSize(width, height int) Option {
	return func(o *Options) {
		o.CellWidth = width
		o.CellHeight = height
	}
}

// WithSkipBoot starts on the desktop.
func WithSkipBoot(skip bool) Option {
	return func(o *Options) { o.SkipBoot = skip }
}

// WithScript plays cmds once the desktop session starts.
func WithScript(cmds []Command) Option {
	return func(o *Options) { o.Script = cmds }
}

// WithBody renders windows of type key with body.
func WithBody(key string, body Body) Option {
	return func(o *Options) {
		if o.Bodies == nil {
			o.Bodies = make(map[string]Body)
		}
		o.Bodies[key] = body
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) { o.UserConfig = cfg }
}

// New creates a desktop model with the given options.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY is the terminal a hosted session runs in.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a desktop sized to pty, for web terminals and other
// hosted sessions.
func NewForPTY(pty PTY, opts ...Option) *Model {
	return New(append(opts, WithSize(pty.Width(), pty.Height()))...)
}

// NewProgram creates a tea.Program running a new desktop with the
// recommended program options.
func NewProgram(opts ...Option) *tea.Program {
	return tea.NewProgram(New(opts...), ProgramOptions()...)
}

func newModel(options Options) *Model {
	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:   options.ASCIIOnly,
		BorderStyle: options.BorderStyle,
		HideClock:   options.HideClock,
		CellWidth:   options.CellWidth,
		CellHeight:  options.CellHeight,
		SkipBoot:    options.SkipBoot,
		ThemeName:   options.Theme,
	}, userConfig)

	catalog := window.CatalogFromConfig(userConfig.Windows)
	for key, body := range options.Bodies {
		catalog.Lookup(key)
		catalog.SetBody(key, body)
	}

	appOpts := []app.Option{app.WithCatalog(catalog)}
	if options.Logger != nil {
		appOpts = append(appOpts, app.WithLogger(options.Logger))
	}
	if len(options.Script) > 0 {
		appOpts = append(appOpts, app.WithScript(options.Script))
	}

	d := app.New(userConfig, appOpts...)
	if options.Width > 0 && options.Height > 0 {
		d.Resize(options.Width, options.Height)
	}
	return d
}

// ProgramOptions returns recommended tea.ProgramOption values for running a
// desktop:
//
//	p := tea.NewProgram(tuidesk.New(), tuidesk.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// unless a window gesture or an icon drag is in progress.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*Model)
	if !ok {
		return msg
	}
	if _, active := d.Manager.Gesture(); active {
		return msg
	}
	if _, dragging := d.Grid.Dragging(); dragging {
		return msg
	}
	return nil
}

// Config re-exports the config package for customization.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}

// ParseScript parses a command script.
func ParseScript(src string) ([]Command, error) {
	return tape.ParseString(src)
}
