package geometry

import "testing"

var (
	testViewport = Viewport{Width: 1920, Height: 1080}
	testLimits   = Limits{MinWidth: 400, MinHeight: 300, MinVisible: 200, HeaderGrab: 60}
)

func TestDrag(t *testing.T) {
	size := Size{Width: 900, Height: 700}
	tests := []struct {
		name  string
		start Point
		delta Point
		want  Point
	}{
		{"plain move", Point{100, 100}, Point{50, -20}, Point{150, 80}},
		{"far left keeps margin", Point{0, 0}, Point{-5000, 0}, Point{-(900 - 200), 0}},
		{"far right keeps margin", Point{0, 0}, Point{5000, 0}, Point{1920 - 200, 0}},
		{"header grab above top", Point{100, 100}, Point{0, -500}, Point{100, -60}},
		{"far down keeps margin", Point{100, 100}, Point{0, 5000}, Point{100, 1080 - 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Drag(tt.start, tt.delta, size, testViewport, testLimits)
			if got != tt.want {
				t.Errorf("Drag() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResize(t *testing.T) {
	start := Rect{Point{100, 100}, Size{900, 700}}
	tests := []struct {
		name  string
		edges Edge
		delta Point
		want  Rect
	}{
		{
			name:  "left edge past floor keeps right edge fixed",
			edges: EdgeLeft,
			delta: Point{1000, 0},
			want:  Rect{Point{600, 100}, Size{400, 700}},
		},
		{
			name:  "left edge outward",
			edges: EdgeLeft,
			delta: Point{-50, 0},
			want:  Rect{Point{50, 100}, Size{950, 700}},
		},
		{
			name:  "left edge past origin pins at zero",
			edges: EdgeLeft,
			delta: Point{-300, 0},
			want:  Rect{Point{0, 100}, Size{1000, 700}},
		},
		{
			name:  "right edge capped at viewport",
			edges: EdgeRight,
			delta: Point{5000, 0},
			want:  Rect{Point{100, 100}, Size{1820, 700}},
		},
		{
			name:  "right edge floored",
			edges: EdgeRight,
			delta: Point{-5000, 0},
			want:  Rect{Point{100, 100}, Size{400, 700}},
		},
		{
			name:  "top edge past floor keeps bottom fixed",
			edges: EdgeTop,
			delta: Point{0, 1000},
			want:  Rect{Point{100, 500}, Size{900, 300}},
		},
		{
			name:  "bottom edge capped at viewport",
			edges: EdgeBottom,
			delta: Point{0, 5000},
			want:  Rect{Point{100, 100}, Size{900, 980}},
		},
		{
			name:  "bottom right corner",
			edges: EdgeBottomRight,
			delta: Point{20, 30},
			want:  Rect{Point{100, 100}, Size{920, 730}},
		},
		{
			name:  "top left corner",
			edges: EdgeTopLeft,
			delta: Point{10, 20},
			want:  Rect{Point{110, 120}, Size{890, 680}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(tt.edges, tt.delta, start, testViewport, testLimits)
			if got != tt.want {
				t.Errorf("Resize(%s) = %+v, want %+v", tt.edges, got, tt.want)
			}
		})
	}
}

func TestResizeKeepsFloorOffScreen(t *testing.T) {
	tests := []struct {
		name  string
		edges Edge
		start Rect
		delta Point
		want  Rect
	}{
		{
			name:  "left edge of window hanging off the left",
			edges: EdgeLeft,
			start: Rect{Point{-700, 100}, Size{900, 700}},
			delta: Point{5, 0},
			want:  Rect{Point{-200, 100}, Size{400, 700}},
		},
		{
			name:  "left edge pinned at zero above the floor",
			edges: EdgeLeft,
			start: Rect{Point{-100, 100}, Size{900, 700}},
			delta: Point{50, 0},
			want:  Rect{Point{0, 100}, Size{800, 700}},
		},
		{
			name:  "right edge of window hanging off the right",
			edges: EdgeRight,
			start: Rect{Point{1700, 100}, Size{900, 700}},
			delta: Point{1, 0},
			want:  Rect{Point{1700, 100}, Size{400, 700}},
		},
		{
			name:  "top edge of window above the viewport",
			edges: EdgeTop,
			start: Rect{Point{100, -50}, Size{900, 320}},
			delta: Point{0, 10},
			want:  Rect{Point{100, -30}, Size{900, 300}},
		},
		{
			name:  "bottom edge of window below the viewport",
			edges: EdgeBottom,
			start: Rect{Point{100, 1000}, Size{900, 700}},
			delta: Point{0, 1},
			want:  Rect{Point{100, 1000}, Size{900, 300}},
		},
		{
			name:  "corner off both edges",
			edges: EdgeBottomRight,
			start: Rect{Point{1800, 900}, Size{900, 700}},
			delta: Point{10, 10},
			want:  Rect{Point{1800, 900}, Size{400, 300}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(tt.edges, tt.delta, tt.start, testViewport, testLimits)
			if got != tt.want {
				t.Errorf("Resize(%s) = %+v, want %+v", tt.edges, got, tt.want)
			}
			if got.Width < testLimits.MinWidth || got.Height < testLimits.MinHeight {
				t.Errorf("Resize(%s) = %+v, below the minimum", tt.edges, got)
			}
		})
	}
}

func TestResizeIsDeterministic(t *testing.T) {
	start := Rect{Point{300, 200}, Size{800, 600}}
	a := Resize(EdgeTopLeft, Point{-40, 70}, start, testViewport, testLimits)
	b := Resize(EdgeTopLeft, Point{-40, 70}, start, testViewport, testLimits)
	if a != b {
		t.Fatalf("same inputs gave %+v and %+v", a, b)
	}
}

func TestCenter(t *testing.T) {
	got := Center(Size{900, 700}, Viewport{1920, 1080}, 70)
	if want := (Point{510, 155}); got != want {
		t.Errorf("Center() = %+v, want %+v", got, want)
	}

	got = Center(Size{1100, 900}, Viewport{1000, 800}, 70)
	if want := (Point{0, 0}); got != want {
		t.Errorf("Center() on small viewport = %+v, want %+v", got, want)
	}
}

func TestParseEdge(t *testing.T) {
	tests := []struct {
		in   string
		want Edge
		ok   bool
	}{
		{"left", EdgeLeft, true},
		{"top-right", EdgeTopRight, true},
		{"bottom left", EdgeBottomLeft, true},
		{"se", EdgeBottomRight, true},
		{"top-bottom", EdgeNone, false},
		{"middle", EdgeNone, false},
		{"", EdgeNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseEdge(tt.in)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("ParseEdge(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEdgeString(t *testing.T) {
	if got := EdgeTopLeft.String(); got != "top-left" {
		t.Errorf("EdgeTopLeft.String() = %q", got)
	}
	if got := EdgeNone.String(); got != "none" {
		t.Errorf("EdgeNone.String() = %q", got)
	}
}
