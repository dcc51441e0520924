// Package output prints desktop state snapshots for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Gaurav-Gosain/tuidesk/internal/desktop"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml or json in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

// Rect is a window frame in desktop pixels.
type Rect struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Window is one open window.
type Window struct {
	Key       string `yaml:"key"                 json:"key"`
	Title     string `yaml:"title"               json:"title"`
	Rect      Rect   `yaml:"rect"                json:"rect"`
	Minimized bool   `yaml:"minimized,omitempty" json:"minimized,omitempty"`
	Maximized bool   `yaml:"maximized,omitempty" json:"maximized,omitempty"`
	Focused   bool   `yaml:"focused,omitempty"   json:"focused,omitempty"`
	ZRank     int    `yaml:"z_rank"              json:"z_rank"`
}

// Icon is one desktop icon.
type Icon struct {
	ID    int    `yaml:"id"    json:"id"`
	Label string `yaml:"label" json:"label"`
	Key   string `yaml:"key"   json:"key"`
	X     int    `yaml:"x"     json:"x"`
	Y     int    `yaml:"y"     json:"y"`
}

// Snapshot is the whole desktop at one moment.
type Snapshot struct {
	Session   string   `yaml:"session,omitempty" json:"session,omitempty"`
	Viewport  Rect     `yaml:"viewport"          json:"viewport"`
	Focused   string   `yaml:"focused,omitempty" json:"focused,omitempty"`
	OpenOrder []string `yaml:"open_order"        json:"open_order"`
	Windows   []Window `yaml:"windows"           json:"windows"`
	Icons     []Icon   `yaml:"icons,omitempty"   json:"icons,omitempty"`
}

// Capture reads a snapshot off the manager and, when given, the icon grid.
func Capture(m *wm.Manager, g *desktop.Grid) Snapshot {
	vp := m.Viewport()
	focused, _ := m.Focused()
	s := Snapshot{
		Viewport:  Rect{Width: vp.Width, Height: vp.Height},
		Focused:   focused,
		OpenOrder: m.OpenOrder(),
		Windows:   []Window{},
	}
	if s.OpenOrder == nil {
		s.OpenOrder = []string{}
	}
	for _, w := range m.Windows() {
		s.Windows = append(s.Windows, Window{
			Key:       w.Key,
			Title:     w.Title,
			Rect:      Rect{X: w.Rect.X, Y: w.Rect.Y, Width: w.Rect.Width, Height: w.Rect.Height},
			Minimized: w.Minimized,
			Maximized: w.Maximized,
			Focused:   w.Focused,
			ZRank:     w.ZRank,
		})
	}
	if g != nil {
		for _, ic := range g.Icons() {
			s.Icons = append(s.Icons, Icon{ID: ic.ID, Label: ic.Label, Key: ic.AppKey(), X: ic.Pos.X, Y: ic.Pos.Y})
		}
	}
	return s
}

// Write serializes v to w in format. pretty indents JSON.
func Write(w io.Writer, format Format, pretty bool, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
