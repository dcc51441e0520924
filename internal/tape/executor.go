package tape

import (
	"context"
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
)

// Executor carries out script commands against a desktop.
type Executor interface {
	// Window commands
	OpenWindow(key string) error
	CloseWindow(key string) error
	MinimizeWindow(key string) error
	MaximizeWindow(key string) error
	FocusWindow(key string) error
	NextWindow() error
	PrevWindow() error

	// Gestures, as one press-move-release
	DragWindow(key string, delta geometry.Point) error
	ResizeWindow(key string, edges geometry.Edge, delta geometry.Point) error

	// Desktop
	SetViewport(vp geometry.Viewport) error
	DragIcon(id int, to geometry.Point) error
	OpenIcon(id int) error

	// Taskbar
	ClickTaskbar(key string) error
	ToggleStartMenu() error
	Shutdown() error
}

// CommandExecutor dispatches commands to an Executor.
type CommandExecutor struct {
	executor Executor
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(executor Executor) *CommandExecutor {
	return &CommandExecutor{executor: executor}
}

// Execute executes a command. Sleep is left to the caller.
func (ce *CommandExecutor) Execute(cmd *Command) error {
	if ce.executor == nil || cmd == nil {
		return nil
	}

	switch cmd.Type {
	case CommandTypeOpen:
		return ce.executor.OpenWindow(cmd.Key)
	case CommandTypeClose:
		return ce.executor.CloseWindow(cmd.Key)
	case CommandTypeMinimize:
		return ce.executor.MinimizeWindow(cmd.Key)
	case CommandTypeMaximize:
		return ce.executor.MaximizeWindow(cmd.Key)
	case CommandTypeFocus:
		return ce.executor.FocusWindow(cmd.Key)
	case CommandTypeNextWindow:
		return ce.executor.NextWindow()
	case CommandTypePrevWindow:
		return ce.executor.PrevWindow()

	case CommandTypeDrag:
		return ce.executor.DragWindow(cmd.Key, cmd.Delta)
	case CommandTypeResize:
		return ce.executor.ResizeWindow(cmd.Key, cmd.Edges, cmd.Delta)

	case CommandTypeViewport:
		return ce.executor.SetViewport(cmd.Size)
	case CommandTypeIconDrag:
		return ce.executor.DragIcon(cmd.IconID, cmd.Point)
	case CommandTypeIconOpen:
		return ce.executor.OpenIcon(cmd.IconID)

	case CommandTypeTaskbarClick:
		return ce.executor.ClickTaskbar(cmd.Key)
	case CommandTypeStartMenu:
		return ce.executor.ToggleStartMenu()
	case CommandTypeShutdown:
		return ce.executor.Shutdown()

	case CommandTypeSleep:
		return nil
	}
	return fmt.Errorf("%w %s", ErrUnknownCommand, cmd.Type)
}

// SleepFunc waits out a Sleep command.
type SleepFunc func(ctx context.Context, d time.Duration) error

// WallClock sleeps for real, returning early when ctx ends.
func WallClock(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run executes cmds in order. A nil sleep skips Sleep commands. The first
// failing command stops the run; its error names the script line.
func Run(ctx context.Context, cmds []Command, exec Executor, sleep SleepFunc) error {
	ce := NewCommandExecutor(exec)
	for i := range cmds {
		cmd := &cmds[i]
		if err := ctx.Err(); err != nil {
			return err
		}
		if cmd.Type == CommandTypeSleep {
			if sleep != nil {
				if err := sleep(ctx, cmd.Duration); err != nil {
					return err
				}
			}
			continue
		}
		if err := ce.Execute(cmd); err != nil {
			return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd, err)
		}
	}
	return nil
}
