// Package tape runs desktop scripts: one command per line, driving the window
// manager, the icon grid and the taskbar the same way pointer input does.
//
//	# open two windows and tidy up
//	Viewport 1920 1080
//	Open resume
//	Open mail
//	Drag mail -200 40
//	Resize resume bottom-right 120 80
//	Sleep 500ms
//	TaskbarClick resume
package tape

import (
	"errors"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
)

var (
	// ErrUnknownCommand is returned for a line that starts with no known command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingArgument is returned when a command has too few arguments.
	ErrMissingArgument = errors.New("missing argument")
	// ErrInvalidArgument is returned when an argument does not parse, or names
	// something that does not exist.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnterminatedQuote is returned for a quoted argument without its closing quote.
	ErrUnterminatedQuote = errors.New("unterminated quote")
)

// CommandType identifies a script command.
type CommandType int

const (
	CommandTypeOpen CommandType = iota + 1
	CommandTypeClose
	CommandTypeMinimize
	CommandTypeMaximize
	CommandTypeFocus
	CommandTypeNextWindow
	CommandTypePrevWindow
	CommandTypeDrag
	CommandTypeResize
	CommandTypeViewport
	CommandTypeIconDrag
	CommandTypeIconOpen
	CommandTypeTaskbarClick
	CommandTypeStartMenu
	CommandTypeShutdown
	CommandTypeSleep
)

var commandNames = map[CommandType]string{
	CommandTypeOpen:         "Open",
	CommandTypeClose:        "Close",
	CommandTypeMinimize:     "Minimize",
	CommandTypeMaximize:     "Maximize",
	CommandTypeFocus:        "Focus",
	CommandTypeNextWindow:   "NextWindow",
	CommandTypePrevWindow:   "PrevWindow",
	CommandTypeDrag:         "Drag",
	CommandTypeResize:       "Resize",
	CommandTypeViewport:     "Viewport",
	CommandTypeIconDrag:     "IconDrag",
	CommandTypeIconOpen:     "IconOpen",
	CommandTypeTaskbarClick: "TaskbarClick",
	CommandTypeStartMenu:    "StartMenu",
	CommandTypeShutdown:     "Shutdown",
	CommandTypeSleep:        "Sleep",
}

var commandsByName = func() map[string]CommandType {
	m := make(map[string]CommandType, len(commandNames))
	for t, name := range commandNames {
		m[strings.ToLower(name)] = t
	}
	return m
}()

func (t CommandType) String() string {
	if name, ok := commandNames[t]; ok {
		return name
	}
	return "Unknown"
}

// LookupCommand resolves a command name case-insensitively.
func LookupCommand(name string) (CommandType, bool) {
	t, ok := commandsByName[strings.ToLower(name)]
	return t, ok
}

// Command is one parsed script line. Only the fields its type uses are set.
type Command struct {
	Type     CommandType
	Args     []string
	Line     int
	Key      string
	IconID   int
	Edges    geometry.Edge
	Delta    geometry.Point
	Point    geometry.Point
	Size     geometry.Viewport
	Duration time.Duration
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Type.String()
	}
	return c.Type.String() + " " + strings.Join(c.Args, " ")
}
