package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/app"
	"github.com/Gaurav-Gosain/tuidesk/internal/session"
	"github.com/Gaurav-Gosain/tuidesk/internal/taskbar"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()

	if !d.OnDesktop() {
		if d.Session.Phase() == session.PhaseLogin {
			d.SignIn()
		}
		return d, nil
	}
	if d.ShowHelp || d.ShowLogs {
		return d, nil
	}
	if mouse.Button != tea.MouseLeft {
		return d, nil
	}

	hit := d.HitTest(mouse.X, mouse.Y)
	pointer := app.ToPixels(mouse.X, mouse.Y)
	d.PressAt = pointer

	// Any press outside the menu and its button closes the menu
	if d.Taskbar.StartOpen() && !isStartMenuHit(hit) {
		d.Taskbar.CloseStart()
		d.StartSelection = 0
		if hit.Kind == app.HitTaskbar && hit.Segment.Kind == taskbar.SegmentStart {
			return d, nil
		}
	}

	switch hit.Kind {
	case app.HitStartMenuItem:
		d.ChooseStartItem(hit.Key)

	case app.HitStartMenuPower:
		d.Taskbar.CloseStart()
		d.BeginShutdown()

	case app.HitTaskbar:
		handleTaskbarClick(hit.Segment, d)

	case app.HitClose:
		d.Manager.Close(hit.Key)

	case app.HitMinimize:
		d.Manager.Minimize(hit.Key)

	case app.HitMaximize:
		d.Manager.Focus(hit.Key)
		d.Manager.Maximize(hit.Key)

	case app.HitTitleBar:
		d.Manager.Focus(hit.Key)
		d.Manager.BeginDrag(hit.Key)

	case app.HitResizeEdge:
		d.Manager.Focus(hit.Key)
		d.Manager.BeginResize(hit.Key, hit.Edges)

	case app.HitWindowBody:
		d.Manager.Focus(hit.Key)

	case app.HitIcon:
		if d.IsDoubleClick(hit.IconID) {
			if key, ok := d.Grid.Open(hit.IconID, d.Manager); ok {
				d.LogInfo("opened %s", key)
			}
			return d, nil
		}
		d.Grid.BeginDrag(hit.IconID, pointer)

	case app.HitWallpaper:
		d.Grid.ClearSelection()
	}
	return d, nil
}

func isStartMenuHit(hit app.Hit) bool {
	switch hit.Kind {
	case app.HitStartMenuItem, app.HitStartMenuPower, app.HitStartMenuBlank:
		return true
	}
	return false
}

func handleTaskbarClick(seg taskbar.Segment, d *app.Desktop) {
	switch seg.Kind {
	case taskbar.SegmentStart:
		d.StartSelection = 0
		d.Taskbar.ToggleStart()
	case taskbar.SegmentEntry:
		action := d.Taskbar.Click(seg.Key)
		d.Logger().Debug("taskbar click", "key", seg.Key, "action", action)
	case taskbar.SegmentPower:
		d.BeginShutdown()
	}
}

// handleMouseMotion feeds the active gesture. Deltas are measured from the
// press that began it.
func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if !d.OnDesktop() {
		return d, nil
	}
	mouse := msg.Mouse()
	pointer := app.ToPixels(mouse.X, mouse.Y)

	if g, ok := d.Manager.Gesture(); ok {
		delta := pointer.Sub(d.PressAt)
		switch g.Kind {
		case wm.GestureDrag:
			d.Manager.DragUpdate(g.Key, delta)
		case wm.GestureResize:
			d.Manager.ResizeUpdate(g.Key, g.Edges, delta)
		}
		return d, nil
	}

	if _, ok := d.Grid.Dragging(); ok {
		d.Grid.Drag(pointer)
	}
	return d, nil
}

func handleMouseRelease(_ tea.MouseReleaseMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if _, ok := d.Manager.Gesture(); ok {
		d.Manager.EndGesture()
	}
	if id, ok := d.Grid.Dragging(); ok {
		if p, dropped := d.Grid.EndDrag(); dropped {
			d.Logger().Debug("icon dropped", "id", id, "x", p.X, "y", p.Y)
		}
	}
	return d, nil
}

func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if !d.ShowLogs {
		return d, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		d.LogScrollOffset = max(d.LogScrollOffset-1, 0)
	case tea.MouseWheelDown:
		d.LogScrollOffset = min(d.LogScrollOffset+1, d.MaxLogScroll())
	}
	return d, nil
}
