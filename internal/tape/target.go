package tape

import (
	"fmt"
	"io"

	"github.com/Gaurav-Gosain/tuidesk/internal/desktop"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
	"github.com/Gaurav-Gosain/tuidesk/internal/taskbar"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
	"github.com/charmbracelet/log"
)

// Target executes commands directly against the desktop components. It is
// what `tuidesk script` runs headless, and what the TUI executes through.
type Target struct {
	Manager *wm.Manager
	Grid    *desktop.Grid
	Taskbar *taskbar.Projector
	logger  *log.Logger
}

// NewTarget wires a target. grid and bar may be nil; the commands that need
// them then fail with ErrInvalidArgument.
func NewTarget(m *wm.Manager, grid *desktop.Grid, bar *taskbar.Projector, logger *log.Logger) *Target {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if bar == nil && m != nil {
		bar = taskbar.New(m, logger)
	}
	return &Target{Manager: m, Grid: grid, Taskbar: bar, logger: logger}
}

var _ Executor = (*Target)(nil)

// noEffect logs commands the desktop ignored. Scripts keep going, as the
// manager treats them as no-ops.
func (t *Target) noEffect(changed bool, cmd, key string) error {
	if !changed {
		t.logger.Debug("script command had no effect", "cmd", cmd, "key", key)
	}
	return nil
}

func (t *Target) OpenWindow(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty window key", ErrInvalidArgument)
	}
	return t.noEffect(t.Manager.Open(key), "open", key)
}

func (t *Target) CloseWindow(key string) error {
	return t.noEffect(t.Manager.Close(key), "close", key)
}

func (t *Target) MinimizeWindow(key string) error {
	return t.noEffect(t.Manager.Minimize(key), "minimize", key)
}

func (t *Target) MaximizeWindow(key string) error {
	return t.noEffect(t.Manager.Maximize(key), "maximize", key)
}

func (t *Target) FocusWindow(key string) error {
	return t.noEffect(t.Manager.Focus(key), "focus", key)
}

func (t *Target) NextWindow() error {
	return t.noEffect(t.Manager.FocusNext(1), "next", "")
}

func (t *Target) PrevWindow() error {
	return t.noEffect(t.Manager.FocusNext(-1), "prev", "")
}

func (t *Target) DragWindow(key string, delta geometry.Point) error {
	if !t.Manager.BeginDrag(key) {
		return t.noEffect(false, "drag", key)
	}
	defer t.Manager.EndGesture()
	return t.noEffect(t.Manager.DragUpdate(key, delta), "drag", key)
}

func (t *Target) ResizeWindow(key string, edges geometry.Edge, delta geometry.Point) error {
	if !edges.Valid() {
		return fmt.Errorf("%w: edge %s", ErrInvalidArgument, edges)
	}
	if !t.Manager.BeginResize(key, edges) {
		return t.noEffect(false, "resize", key)
	}
	defer t.Manager.EndGesture()
	return t.noEffect(t.Manager.ResizeUpdate(key, edges, delta), "resize", key)
}

func (t *Target) SetViewport(vp geometry.Viewport) error {
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidArgument, vp.Width, vp.Height)
	}
	t.Manager.SetViewport(vp)
	return nil
}

func (t *Target) icon(id int) (desktop.Icon, error) {
	if t.Grid == nil {
		return desktop.Icon{}, fmt.Errorf("%w: no desktop icons", ErrInvalidArgument)
	}
	icon, ok := t.Grid.Get(id)
	if !ok {
		return desktop.Icon{}, fmt.Errorf("%w: icon %d", ErrInvalidArgument, id)
	}
	return icon, nil
}

// DragIcon picks the icon up by its corner and drops it at to, snapping and
// resolving collisions as a pointer drop would.
func (t *Target) DragIcon(id int, to geometry.Point) error {
	icon, err := t.icon(id)
	if err != nil {
		return err
	}
	t.Grid.BeginDrag(id, icon.Pos)
	t.Grid.Drag(to)
	t.Grid.EndDrag()
	return nil
}

func (t *Target) OpenIcon(id int) error {
	if _, err := t.icon(id); err != nil {
		return err
	}
	t.Grid.Open(id, t.Manager)
	return nil
}

func (t *Target) ClickTaskbar(key string) error {
	return t.noEffect(t.Taskbar.Click(key) != taskbar.ActionNone, "taskbar", key)
}

func (t *Target) ToggleStartMenu() error {
	t.Taskbar.ToggleStart()
	return nil
}

func (t *Target) Shutdown() error {
	t.Taskbar.Shutdown()
	return nil
}
