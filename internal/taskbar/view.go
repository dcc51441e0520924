package taskbar

import (
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// SegmentKind identifies a clickable region of the taskbar.
type SegmentKind int

const (
	SegmentStart SegmentKind = iota
	SegmentEntry
	SegmentTray
	SegmentPower
)

// Segment is a run of cells on the taskbar row.
type Segment struct {
	Kind  SegmentKind
	Key   string
	X     int
	Width int
	Text  string
	Entry Entry
}

// Layout places taskbar segments along a row of cells.
type Layout struct {
	Width    int
	Segments []Segment
}

func pad(s string) string { return " " + s + " " }

func entryLabel(e Entry) string {
	tail := "…"
	if config.UseASCIIOnly {
		tail = "."
	}
	label := ansi.Truncate(e.Label, config.MaxTaskbarLabel, tail)
	if e.Icon != "" {
		label = e.Icon + " " + label
	}
	return pad(label)
}

// NewLayout arranges the start button on the left, the power button and tray
// on the right, and entries centered in between. Entries that do not fit are
// left off; the tray is dropped before the buttons when space runs out.
func NewLayout(entries []Entry, tray Tray, width int) Layout {
	l := Layout{Width: width}
	if width <= 0 {
		return l
	}

	start := config.GetStartButton()
	power := config.GetPowerButton()
	sw, pw := ansi.StringWidth(start), ansi.StringWidth(power)
	l.Segments = append(l.Segments, Segment{Kind: SegmentStart, X: 0, Width: sw, Text: start})

	right := width - pw
	if right < sw {
		return l
	}
	l.Segments = append(l.Segments, Segment{Kind: SegmentPower, X: right, Width: pw, Text: power})

	if text := tray.Text(); text != "" {
		text = pad(text)
		if tw := ansi.StringWidth(text); right-tw > sw {
			right -= tw
			l.Segments = append(l.Segments, Segment{Kind: SegmentTray, X: right, Width: tw, Text: text})
		}
	}

	labels := make([]string, len(entries))
	total := 0
	for i, e := range entries {
		labels[i] = entryLabel(e)
		if i > 0 {
			total++
		}
		total += ansi.StringWidth(labels[i])
	}

	lo, hi := sw+1, right-1
	x := (width - total) / 2
	if x+total > hi {
		x = hi - total
	}
	x = max(x, lo)

	for i, e := range entries {
		w := ansi.StringWidth(labels[i])
		if x+w > hi {
			break
		}
		l.Segments = append(l.Segments, Segment{Kind: SegmentEntry, Key: e.Key, X: x, Width: w, Text: labels[i], Entry: e})
		x += w + 1
	}

	slices.SortFunc(l.Segments, func(a, b Segment) int { return a.X - b.X })
	return l
}

// HitTest returns the segment covering cell column x.
func (l Layout) HitTest(x int) (Segment, bool) {
	for _, s := range l.Segments {
		if x >= s.X && x < s.X+s.Width {
			return s, true
		}
	}
	return Segment{}, false
}

// Render draws the taskbar as rows lines of Width cells, with the segments on
// the middle row.
func (l Layout) Render(rows int, startOpen bool) string {
	if l.Width <= 0 || rows <= 0 {
		return ""
	}
	base := lipgloss.NewStyle().Background(theme.TaskbarBg()).Foreground(theme.TaskbarFg())
	blank := base.Render(strings.Repeat(" ", l.Width))

	var row strings.Builder
	x := 0
	for _, s := range l.Segments {
		if s.X > x {
			row.WriteString(base.Render(strings.Repeat(" ", s.X-x)))
		}
		row.WriteString(segmentStyle(base, s, startOpen).Render(s.Text))
		x = s.X + s.Width
	}
	if x < l.Width {
		row.WriteString(base.Render(strings.Repeat(" ", l.Width-x)))
	}

	lines := make([]string, rows)
	for i := range lines {
		lines[i] = blank
	}
	lines[rows/2] = row.String()
	return strings.Join(lines, "\n")
}

func segmentStyle(base lipgloss.Style, s Segment, startOpen bool) lipgloss.Style {
	switch s.Kind {
	case SegmentStart:
		if startOpen {
			return base.Background(theme.Accent()).Bold(true)
		}
		return base.Background(theme.StartButtonBg()).Bold(true)
	case SegmentPower:
		return base.Background(theme.CloseButtonBg())
	case SegmentEntry:
		switch {
		case s.Entry.Minimized:
			return base.Foreground(theme.TaskbarMinimized()).Faint(true)
		case s.Entry.Focused:
			return base.Background(theme.TaskbarActive()).Bold(true).Underline(true)
		}
	}
	return base
}
