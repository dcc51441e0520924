package window

import (
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
	"github.com/charmbracelet/x/ansi"
)

// Body renders the inside of a window. The manager never looks at it.
type Body interface {
	Render(width, height int) string
}

// BodyFunc adapts a function to Body.
type BodyFunc func(width, height int) string

// Render calls f.
func (f BodyFunc) Render(width, height int) string { return f(width, height) }

// Type is the configuration record a window is created from.
type Type struct {
	Key    string
	Title  string
	Icon   string
	Size   geometry.Size
	Limits geometry.Limits
	Body   Body
}

// Catalog maps window keys to types. Unknown keys resolve to a fallback type.
// It is safe for concurrent use. Registered types are never mutated in place.
type Catalog struct {
	mu       sync.RWMutex
	types    map[string]*Type
	fallback Type
}

// NewCatalog returns a catalog holding types.
func NewCatalog(types ...Type) *Catalog {
	c := &Catalog{
		types: make(map[string]*Type, len(types)),
		fallback: Type{
			Size: geometry.Size{Width: config.DefaultWindowWidth, Height: config.DefaultWindowHeight},
			Limits: geometry.Limits{
				MinWidth:   config.MinWindowWidth,
				MinHeight:  config.MinWindowHeight,
				MinVisible: config.DefaultMinVisible,
				HeaderGrab: config.HeaderGrabHeight,
			},
		},
	}
	for _, t := range types {
		c.Register(t)
	}
	return c
}

// CatalogFromConfig builds the catalog from the [[windows]] entries of cfg.
func CatalogFromConfig(entries []config.WindowTypeConfig) *Catalog {
	c := NewCatalog()
	for _, e := range entries {
		c.Register(Type{
			Key:   e.Key,
			Title: e.Title,
			Icon:  e.Icon,
			Size:  geometry.Size{Width: e.Width, Height: e.Height},
			Limits: geometry.Limits{
				MinWidth:   e.MinWidth,
				MinHeight:  e.MinHeight,
				MinVisible: e.MinVisible,
				HeaderGrab: config.HeaderGrabHeight,
			},
		})
	}
	return c
}

// Register adds or replaces t. A missing body gets the placeholder body.
func (c *Catalog) Register(t Type) {
	if t.Body == nil {
		t.Body = Placeholder(t.Title)
	}
	if t.Limits.HeaderGrab == 0 {
		t.Limits.HeaderGrab = config.HeaderGrabHeight
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[t.Key] = &t
}

// SetBody replaces the body of a registered type. Windows already open keep
// the body they were opened with.
func (c *Catalog) SetBody(key string, body Body) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.types[key]
	if ok {
		next := *t
		next.Body = body
		c.types[key] = &next
	}
	return ok
}

// Lookup returns the type for key, synthesizing one from the fallback when
// key is not registered. The result is never nil.
func (c *Catalog) Lookup(key string) *Type {
	c.mu.RLock()
	t, ok := c.types[key]
	c.mu.RUnlock()
	if ok {
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.types[key]; ok {
		return t
	}
	nt := c.fallback
	nt.Key = key
	nt.Title = titleFromKey(key)
	nt.Body = Placeholder(nt.Title)
	c.types[key] = &nt
	return &nt
}

// Keys returns the registered keys in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.types))
	for k := range c.types {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func titleFromKey(key string) string {
	if key == "" {
		return "Untitled"
	}
	r, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[size:]
}

// Placeholder renders the title centered with a short hint.
func Placeholder(title string) Body {
	return BodyFunc(func(width, height int) string {
		if width <= 0 || height <= 0 {
			return ""
		}
		lines := make([]string, height)
		mid := height / 2
		lines[mid] = centerLine(title, width)
		if mid+1 < height {
			lines[mid+1] = centerLine("(no content)", width)
		}
		return strings.Join(lines, "\n")
	})
}

func centerLine(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + s
}
