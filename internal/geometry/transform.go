package geometry

// Drag translates start by delta and clamps the result so that at least
// MinVisible pixels of the window stay inside the viewport horizontally and
// the title bar never rises more than HeaderGrab pixels above the top edge.
func Drag(start Point, delta Point, size Size, vp Viewport, lim Limits) Point {
	p := start.Add(delta)
	// hi wins over lo when the viewport is smaller than the margin
	p.X = clamp(p.X, -(size.Width - lim.MinVisible), vp.Width-lim.MinVisible)
	p.Y = clamp(p.Y, -lim.HeaderGrab, vp.Height-lim.MinVisible)
	return p
}

// Resize applies delta to the edges in edges, starting from start.
//
// Right and bottom edges grow the size, capped at the viewport edge. Left and
// top edges move the position so the opposite edge stays fixed. A left or top
// edge dragged past the viewport origin pins the position at zero and keeps
// the opposite edge in place. The minimum size always wins over the caps; when
// it does on a left or top edge, the opposite edge stays fixed instead.
func Resize(edges Edge, delta Point, start Rect, vp Viewport, lim Limits) Rect {
	r := start

	if edges.Has(EdgeRight) {
		r.Width = min(start.Width+delta.X, vp.Width-start.X)
		r.Width = max(lim.MinWidth, r.Width)
	}
	if edges.Has(EdgeLeft) {
		r.X, r.Width = resizeLow(start.X, start.Width, delta.X, lim.MinWidth)
	}

	if edges.Has(EdgeBottom) {
		r.Height = min(start.Height+delta.Y, vp.Height-start.Y)
		r.Height = max(lim.MinHeight, r.Height)
	}
	if edges.Has(EdgeTop) {
		r.Y, r.Height = resizeLow(start.Y, start.Height, delta.Y, lim.MinHeight)
	}

	return r
}

// resizeLow moves the low edge of the span [pos, pos+size) by d.
func resizeLow(pos, size, d, minSize int) (int, int) {
	end := pos + size
	n := max(minSize, size-d)
	p := end - n
	if p < 0 {
		p = 0
		n = end
		if n < minSize {
			n = minSize
			p = end - n
		}
	}
	return p, n
}

// Center returns the position that centers size in the viewport, leaving
// reserve pixels at the bottom for the taskbar. Neither coordinate goes
// below zero.
func Center(size Size, vp Viewport, reserve int) Point {
	return Point{
		X: max(0, vp.Width/2-size.Width/2),
		Y: max(0, (vp.Height-reserve)/2-size.Height/2),
	}
}

// Maximized returns the rectangle a maximized window occupies: the whole
// viewport above the taskbar.
func Maximized(vp Viewport, taskbar int) Rect {
	return Rect{Size: Size{Width: vp.Width, Height: max(0, vp.Height-taskbar)}}
}
