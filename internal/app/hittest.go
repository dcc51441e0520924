package app

import (
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
	"github.com/Gaurav-Gosain/tuidesk/internal/taskbar"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

// HitKind names what lies under a cell.
type HitKind int

const (
	HitWallpaper HitKind = iota
	HitIcon
	HitWindowBody
	HitTitleBar
	HitResizeEdge
	HitMinimize
	HitMaximize
	HitClose
	HitTaskbar
	HitStartMenuItem
	HitStartMenuPower
	HitStartMenuBlank
)

// Hit is the result of a hit test.
type Hit struct {
	Kind    HitKind
	Key     string // window key for window hits and start menu items
	IconID  int
	Edges   geometry.Edge
	Segment taskbar.Segment
}

// CellRect is a rectangle in terminal cells.
type CellRect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r CellRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Minimum frame size in cells: border, title bar, one body row.
const (
	minFrameCols = 14
	minFrameRows = 4
)

// FrameCells converts a window frame to cells. The frame has a border all
// round; its first inner row is the title bar.
func (d *Desktop) FrameCells(s wm.State) CellRect {
	f := s.Frame(d.Manager.Viewport())
	x, y := ToCells(f.Point)
	return CellRect{
		X: x,
		Y: y,
		W: max(f.Width/config.CellWidth, minFrameCols),
		H: max(f.Height/config.CellHeight, minFrameRows),
	}
}

// TitleButtons returns the cell rectangles of the minimize, maximize and
// close buttons, right aligned on the title bar.
func (d *Desktop) TitleButtons(s wm.State) (minimize, maximize, closeBtn CellRect) {
	r := d.FrameCells(s)
	minLabel, maxLabel, closeLabel := config.GetWindowButtons(s.Maximized)
	y := r.Y + 1
	right := r.X + r.W - 1
	cw := lipgloss.Width(closeLabel)
	xw := lipgloss.Width(maxLabel)
	mw := lipgloss.Width(minLabel)
	closeBtn = CellRect{X: right - cw, Y: y, W: cw, H: 1}
	maximize = CellRect{X: closeBtn.X - xw, Y: y, W: xw, H: 1}
	minimize = CellRect{X: maximize.X - mw, Y: y, W: mw, H: 1}
	return minimize, maximize, closeBtn
}

// EdgesAt returns the edges within the resize handle distance of (x, y).
func EdgesAt(r CellRect, x, y int) geometry.Edge {
	h := config.ResizeHandleCells
	var e geometry.Edge
	if x < r.X+h {
		e |= geometry.EdgeLeft
	} else if x >= r.X+r.W-h {
		e |= geometry.EdgeRight
	}
	if y < r.Y+h {
		e |= geometry.EdgeTop
	} else if y >= r.Y+r.H-h {
		e |= geometry.EdgeBottom
	}
	return e
}

// TaskbarTop is the first taskbar row.
func (d *Desktop) TaskbarTop() int {
	return d.Height - TaskbarRows()
}

// TaskbarLayout lays the taskbar out for the current terminal width.
func (d *Desktop) TaskbarLayout() taskbar.Layout {
	return taskbar.NewLayout(d.Taskbar.Entries(), d.Tray, d.Width)
}

// HitTest reports what a press at cell (x, y) lands on, topmost first: the
// start menu, the taskbar, windows in stacking order, then icons.
func (d *Desktop) HitTest(x, y int) Hit {
	if d.Taskbar.StartOpen() {
		if hit, ok := d.startMenuHit(x, y); ok {
			return hit
		}
	}

	if y >= d.TaskbarTop() {
		seg, _ := d.TaskbarLayout().HitTest(x)
		return Hit{Kind: HitTaskbar, Segment: seg, Key: seg.Key}
	}

	stack := d.Manager.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		s := stack[i]
		r := d.FrameCells(s)
		if !r.Contains(x, y) {
			continue
		}
		hit := Hit{Kind: HitWindowBody, Key: s.Key}

		minBtn, maxBtn, closeBtn := d.TitleButtons(s)
		switch {
		case closeBtn.Contains(x, y):
			hit.Kind = HitClose
			return hit
		case maxBtn.Contains(x, y):
			hit.Kind = HitMaximize
			return hit
		case minBtn.Contains(x, y):
			hit.Kind = HitMinimize
			return hit
		}

		if !s.Maximized {
			if e := EdgesAt(r, x, y); e != 0 {
				hit.Kind, hit.Edges = HitResizeEdge, e
				return hit
			}
		}
		if y == r.Y+1 {
			hit.Kind = HitTitleBar
		}
		return hit
	}

	if icon, ok := d.Grid.At(ToPixels(x, y)); ok {
		return Hit{Kind: HitIcon, IconID: icon.ID, Key: icon.AppKey()}
	}
	return Hit{Kind: HitWallpaper}
}
