// Package geometry holds the pure drag and resize math shared by every
// window on the desktop. All values are pixels.
package geometry

import "strings"

// Point is a position in desktop pixels. Coordinates may be negative.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height int
}

// Rect is a window's position and size.
type Rect struct {
	Point
	Size
}

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Viewport is the visible desktop area.
type Viewport struct {
	Width, Height int
}

// Limits are the per window type bounds applied by Drag and Resize.
type Limits struct {
	// MinWidth and MinHeight are the resize floors.
	MinWidth, MinHeight int
	// MinVisible is how much of the window must stay on screen while dragging.
	MinVisible int
	// HeaderGrab is how far above the top edge the title bar may travel.
	HeaderGrab int
}

// Edge is a bitmask of the window edges a resize acts on.
type Edge uint8

const (
	EdgeTop Edge = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft

	EdgeNone        Edge = 0
	EdgeTopLeft          = EdgeTop | EdgeLeft
	EdgeTopRight         = EdgeTop | EdgeRight
	EdgeBottomLeft       = EdgeBottom | EdgeLeft
	EdgeBottomRight      = EdgeBottom | EdgeRight
)

// Has reports whether every edge in o is set in e.
func (e Edge) Has(o Edge) bool {
	return o != 0 && e&o == o
}

// Valid reports whether e is one of the eight resize directions.
func (e Edge) Valid() bool {
	if e == EdgeNone || e&^(EdgeTop|EdgeRight|EdgeBottom|EdgeLeft) != 0 {
		return false
	}
	return !e.Has(EdgeTop|EdgeBottom) && !e.Has(EdgeLeft|EdgeRight)
}

func (e Edge) String() string {
	if e == EdgeNone {
		return "none"
	}
	var parts []string
	if e.Has(EdgeTop) {
		parts = append(parts, "top")
	}
	if e.Has(EdgeBottom) {
		parts = append(parts, "bottom")
	}
	if e.Has(EdgeLeft) {
		parts = append(parts, "left")
	}
	if e.Has(EdgeRight) {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "-")
}

// ParseEdge accepts names like "left", "top-right", "bottom left" or "se".
func ParseEdge(s string) (Edge, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "n":
		return EdgeTop, true
	case "s":
		return EdgeBottom, true
	case "e":
		return EdgeRight, true
	case "w":
		return EdgeLeft, true
	case "ne":
		return EdgeTopRight, true
	case "nw":
		return EdgeTopLeft, true
	case "se":
		return EdgeBottomRight, true
	case "sw":
		return EdgeBottomLeft, true
	}

	var e Edge
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == ' ' || r == '_' }) {
		switch part {
		case "top":
			e |= EdgeTop
		case "bottom":
			e |= EdgeBottom
		case "left":
			e |= EdgeLeft
		case "right":
			e |= EdgeRight
		default:
			return EdgeNone, false
		}
	}
	return e, e.Valid()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
