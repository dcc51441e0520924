package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// StartItem is a pinned app in the start menu.
type StartItem struct {
	Key   string
	Icon  string
	Label string
}

// StartItems lists the pinned apps: one per desktop icon, in icon order.
func (d *Desktop) StartItems() []StartItem {
	icons := d.Grid.Icons()
	items := make([]StartItem, 0, len(icons))
	for _, icon := range icons {
		key := icon.AppKey()
		label := icon.Label
		if t := d.Manager.Catalog().Lookup(key); t != nil && t.Title != "" {
			label = t.Title
		}
		items = append(items, StartItem{Key: key, Icon: icon.Image, Label: label})
	}
	return items
}

// Start menu rows below the top border: user name, a blank row, the items,
// a blank row and the power entry.
const startMenuHeaderRows = 2

func (d *Desktop) startMenuRows() int {
	return startMenuHeaderRows + len(d.StartItems()) + 2
}

// StartMenuRect is the start menu panel in cells, anchored to the bottom left
// above the taskbar.
func (d *Desktop) StartMenuRect() CellRect {
	h := d.startMenuRows() + 2
	return CellRect{X: 0, Y: d.TaskbarTop() - h, W: min(config.StartMenuWidth, d.Width), H: h}
}

func (d *Desktop) startMenuHit(x, y int) (Hit, bool) {
	r := d.StartMenuRect()
	if !r.Contains(x, y) {
		return Hit{}, false
	}
	row := y - r.Y - 1 - startMenuHeaderRows
	items := d.StartItems()
	switch {
	case row >= 0 && row < len(items):
		return Hit{Kind: HitStartMenuItem, Key: items[row].Key}, true
	case row == len(items)+1:
		return Hit{Kind: HitStartMenuPower}, true
	}
	return Hit{Kind: HitStartMenuBlank}, true
}

// MoveStartSelection moves the keyboard highlight, wrapping over the items
// and the power entry.
func (d *Desktop) MoveStartSelection(step int) {
	n := len(d.StartItems()) + 1
	d.StartSelection = ((d.StartSelection+step)%n + n) % n
}

// ChooseStartItem opens the app for key and closes the menu.
func (d *Desktop) ChooseStartItem(key string) bool {
	d.Taskbar.CloseStart()
	d.StartSelection = 0
	opened := d.Manager.Open(key)
	if opened {
		d.LogInfo("opened %s from start menu", key)
	}
	return opened
}

// ChooseStartSelection acts on the highlighted entry.
func (d *Desktop) ChooseStartSelection() {
	items := d.StartItems()
	if d.StartSelection < len(items) {
		d.ChooseStartItem(items[d.StartSelection].Key)
		return
	}
	d.Taskbar.CloseStart()
	d.StartSelection = 0
	d.BeginShutdown()
}

func (d *Desktop) renderStartMenu() *lipgloss.Layer {
	r := d.StartMenuRect()
	inner := max(r.W-2, 1)
	items := d.StartItems()

	base := lipgloss.NewStyle().Background(theme.StartMenuBg()).Foreground(theme.TaskbarFg())
	selected := base.Background(theme.Accent()).Bold(true)
	line := func(s string, style lipgloss.Style) string {
		s = ansi.Truncate(s, inner, "")
		return style.Render(s + strings.Repeat(" ", max(inner-ansi.StringWidth(s), 0)))
	}

	lines := []string{
		line(" "+d.UserName(), base.Bold(true)),
		line("", base),
	}
	for i, item := range items {
		style := base
		if i == d.StartSelection {
			style = selected
		}
		lines = append(lines, line(" "+item.Icon+" "+item.Label, style))
	}
	power := base
	if d.StartSelection == len(items) {
		power = selected
	}
	lines = append(lines, line("", base), line(config.GetPowerButton()+"Shut down", power))

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.Accent()).
		BorderBackground(theme.StartMenuBg()).
		Render(strings.Join(lines, "\n"))

	return lipgloss.NewLayer(box).X(r.X).Y(max(r.Y, 0)).Z(config.ZIndexStartMenu).ID("start-menu")
}
