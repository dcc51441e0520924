// Package desktop implements the icon grid: free dragging, snap on drop with
// a bounded search for a free cell, and launching windows from icons.
package desktop

import (
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
	"github.com/charmbracelet/log"
)

// Icon is one desktop shortcut.
type Icon struct {
	ID    int
	Label string
	Image string
	Key   string
	Pos   geometry.Point
}

// AppKey returns the window key the icon opens: the explicit key, or the
// label lower-cased with whitespace removed for icons that lack one.
func (i Icon) AppKey() string {
	if i.Key != "" {
		return i.Key
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, i.Label)
}

// Launcher is the part of the window manager an icon needs.
type Launcher interface {
	Open(key string) bool
	Minimize(key string) bool
	IsMinimized(key string) bool
}

// Grid owns icon positions. It is independent of the window lifecycle.
type Grid struct {
	icons    []*Icon
	pitch    int
	radius   int
	selected    int
	hasSelected bool
	dragging    int
	isDragging  bool
	offset      geometry.Point
	logger   *log.Logger
}

// Option configures a Grid.
type Option func(*Grid)

// WithSearchRadius sets how many grid steps EndDrag probes for a free cell.
func WithSearchRadius(r int) Option {
	return func(g *Grid) {
		if r >= 0 {
			g.radius = r
		}
	}
}

// WithPitch sets the grid pitch in pixels.
func WithPitch(p int) Option {
	return func(g *Grid) {
		if p > 0 {
			g.pitch = p
		}
	}
}

// WithLogger sets the logger drops and launches are reported to.
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGrid lays icons out in one column from the top-left corner, one grid
// cell apart, in the order given. Icon positions passed in are ignored.
func NewGrid(icons []Icon, opts ...Option) *Grid {
	g := &Grid{
		pitch:  config.GridSize,
		radius: config.DefaultSearchRadius,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	for i, icon := range icons {
		icon.Pos = geometry.Point{X: 0, Y: i * g.pitch}
		g.icons = append(g.icons, &icon)
	}
	return g
}

// FromConfig builds the grid from the [desktop] section.
func FromConfig(cfg config.DesktopConfig, opts ...Option) *Grid {
	icons := make([]Icon, 0, len(cfg.Icons))
	for _, ic := range cfg.Icons {
		icons = append(icons, Icon{ID: ic.ID, Label: ic.Label, Image: ic.Image, Key: ic.Key})
	}
	return NewGrid(icons, append([]Option{WithSearchRadius(cfg.SearchRadius)}, opts...)...)
}

// Pitch returns the grid pitch in pixels.
func (g *Grid) Pitch() int { return g.pitch }

func (g *Grid) find(id int) *Icon {
	for _, icon := range g.icons {
		if icon.ID == id {
			return icon
		}
	}
	return nil
}

// Icons returns copies of all icons in layout order.
func (g *Grid) Icons() []Icon {
	out := make([]Icon, len(g.icons))
	for i, icon := range g.icons {
		out[i] = *icon
	}
	return out
}

// Get returns the icon with id.
func (g *Grid) Get(id int) (Icon, bool) {
	if icon := g.find(id); icon != nil {
		return *icon, true
	}
	return Icon{}, false
}

// At returns the icon whose cell contains p. The dragged icon wins over
// icons it is hovering above.
func (g *Grid) At(p geometry.Point) (Icon, bool) {
	cell := func(icon *Icon) geometry.Rect {
		return geometry.Rect{Point: icon.Pos, Size: geometry.Size{Width: g.pitch, Height: g.pitch}}
	}
	if icon := g.dragged(); icon != nil && cell(icon).Contains(p) {
		return *icon, true
	}
	for _, icon := range g.icons {
		if cell(icon).Contains(p) {
			return *icon, true
		}
	}
	return Icon{}, false
}

// Select highlights id.
func (g *Grid) Select(id int) {
	if g.find(id) != nil {
		g.selected, g.hasSelected = id, true
	}
}

// ClearSelection removes the highlight.
func (g *Grid) ClearSelection() { g.selected, g.hasSelected = 0, false }

// Selected returns the highlighted icon id.
func (g *Grid) Selected() (int, bool) { return g.selected, g.hasSelected }

// Dragging returns the id of the icon being dragged.
func (g *Grid) Dragging() (int, bool) { return g.dragging, g.isDragging }

func (g *Grid) dragged() *Icon {
	if !g.isDragging {
		return nil
	}
	return g.find(g.dragging)
}

// BeginDrag selects id and starts dragging it, remembering where on the
// icon the pointer grabbed it.
func (g *Grid) BeginDrag(id int, pointer geometry.Point) bool {
	icon := g.find(id)
	if icon == nil {
		return false
	}
	g.selected, g.hasSelected = id, true
	g.dragging, g.isDragging = id, true
	g.offset = pointer.Sub(icon.Pos)
	return true
}

// Drag moves the dragged icon under the pointer without snapping or clamping.
func (g *Grid) Drag(pointer geometry.Point) bool {
	icon := g.dragged()
	if icon == nil {
		return false
	}
	icon.Pos = pointer.Sub(g.offset)
	return true
}

// EndDrag drops the dragged icon on the nearest grid cell. If that cell is
// taken it probes right, left, down and up at growing distances up to the
// search radius, taking the first free cell with non-negative coordinates.
// When none is free the icon stays on the taken cell.
func (g *Grid) EndDrag() (geometry.Point, bool) {
	icon := g.dragged()
	g.dragging, g.isDragging = 0, false
	if icon == nil {
		return geometry.Point{}, false
	}

	snapped := geometry.Point{X: g.snap(icon.Pos.X), Y: g.snap(icon.Pos.Y)}
	icon.Pos = snapped
	if !g.occupied(snapped, icon.ID) {
		g.logger.Debug("icon drop", "id", icon.ID, "x", snapped.X, "y", snapped.Y)
		return snapped, true
	}

	for r := 1; r <= g.radius; r++ {
		step := r * g.pitch
		for _, p := range []geometry.Point{
			{X: snapped.X + step, Y: snapped.Y},
			{X: snapped.X - step, Y: snapped.Y},
			{X: snapped.X, Y: snapped.Y + step},
			{X: snapped.X, Y: snapped.Y - step},
		} {
			if p.X >= 0 && p.Y >= 0 && !g.occupied(p, icon.ID) {
				icon.Pos = p
				g.logger.Debug("icon drop relocated", "id", icon.ID, "x", p.X, "y", p.Y, "radius", r)
				return p, true
			}
		}
	}

	g.logger.Debug("icon drop collides", "id", icon.ID, "x", snapped.X, "y", snapped.Y)
	return snapped, true
}

// snap rounds v to the nearest multiple of the pitch, halves rounding up.
func (g *Grid) snap(v int) int {
	return int(math.Floor(float64(v)/float64(g.pitch)+0.5)) * g.pitch
}

func (g *Grid) occupied(p geometry.Point, except int) bool {
	for _, icon := range g.icons {
		if icon.ID != except && icon.Pos == p {
			return true
		}
	}
	return false
}

// Open launches the window bound to id. A window that is open but minimized
// is restored; anything else is opened, which focuses an already open window.
// It returns the window key acted on.
func (g *Grid) Open(id int, l Launcher) (string, bool) {
	icon := g.find(id)
	if icon == nil || l == nil {
		return "", false
	}
	key := icon.AppKey()
	if key == "" {
		return "", false
	}
	if l.IsMinimized(key) {
		l.Minimize(key)
		g.logger.Debug("icon restore", "id", id, "key", key)
	} else {
		l.Open(key)
		g.logger.Debug("icon open", "id", id, "key", key)
	}
	return key, true
}
