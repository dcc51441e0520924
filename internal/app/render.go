package app

import (
	"image/color"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/desktop"
	"github.com/Gaurav-Gosain/tuidesk/internal/theme"
	"github.com/Gaurav-Gosain/tuidesk/internal/window"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
	"github.com/charmbracelet/x/ansi"
)

// GetCanvas composes every layer of the current frame.
func (d *Desktop) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(d.Width, d.Height)

	var layers []*lipgloss.Layer
	if !d.OnDesktop() {
		layers = append(layers, d.renderFraming())
	} else {
		layers = append(layers, d.renderWallpaper())
		layers = append(layers, d.renderIcons()...)
		for _, s := range d.Manager.Stack() {
			if layer := d.renderWindow(s); layer != nil {
				layers = append(layers, layer)
			}
		}
		layers = append(layers, d.renderTaskbar())
		if d.Taskbar.StartOpen() {
			layers = append(layers, d.renderStartMenu())
		}
	}
	layers = append(layers, d.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the model.
func (d *Desktop) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(d.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// =============================================================================
// Desktop layers
// =============================================================================

func (d *Desktop) renderWallpaper() *lipgloss.Layer {
	rows := max(d.TaskbarTop(), 0)
	style := lipgloss.NewStyle().Background(theme.Wallpaper()).Foreground(theme.WallpaperPattern())
	line := style.Render(strings.Repeat(" ", d.Width))
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return lipgloss.NewLayer(strings.Join(lines, "\n")).X(0).Y(0).Z(config.ZIndexWallpaper).ID("wallpaper")
}

// iconCells is the size of one grid cell in terminal cells.
func (d *Desktop) iconCells() (w, h int) {
	pitch := d.Grid.Pitch()
	return max(pitch/config.CellWidth, 4), max(pitch/config.CellHeight, 2)
}

func (d *Desktop) renderIcons() []*lipgloss.Layer {
	w, h := d.iconCells()
	selected, hasSelected := d.Grid.Selected()
	dragging, isDragging := d.Grid.Dragging()

	var layers []*lipgloss.Layer
	for _, icon := range d.Grid.Icons() {
		x, y := ToCells(icon.Pos)
		if y >= d.TaskbarTop() || x >= d.Width {
			continue
		}
		z := config.ZIndexIcons
		if isDragging && icon.ID == dragging {
			z = config.ZIndexDraggedIcon
		}
		content := renderIcon(icon, w, h, hasSelected && icon.ID == selected)
		content, cx, cy := clipContent(content, x, y, d.Width, d.TaskbarTop())
		if content == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(content).X(cx).Y(cy).Z(z).ID("icon-"+strconv.Itoa(icon.ID)))
	}
	return layers
}

func renderIcon(icon desktop.Icon, w, h int, selected bool) string {
	tail := "…"
	if config.UseASCIIOnly {
		tail = "."
	}
	label := ansi.Truncate(icon.Label, w, tail)
	image := ansi.Truncate(icon.Image, w, "")

	style := lipgloss.NewStyle().Foreground(theme.IconLabel()).Width(w).Align(lipgloss.Center)
	if selected {
		style = style.Background(theme.IconSelectedBg()).Bold(true)
	}
	lines := []string{style.Render(image), style.Render(label)}
	// Vertical centering inside the grid cell
	top := max((h-len(lines))/2, 0)
	out := make([]string, 0, top+len(lines))
	for range top {
		out = append(out, "")
	}
	out = append(out, lines...)
	return strings.Join(out, "\n")
}

func (d *Desktop) renderWindow(s wm.State) *lipgloss.Layer {
	r := d.FrameCells(s)
	content := d.renderFrame(s, r)
	clipped, x, y := clipContent(content, r.X, r.Y, d.Width, d.Height)
	if clipped == "" {
		return nil
	}
	return lipgloss.NewLayer(clipped).X(x).Y(y).Z(s.ZRank).ID("window-" + s.Key)
}

// renderFrame draws the border, the title bar and the body of a window.
func (d *Desktop) renderFrame(s wm.State, r CellRect) string {
	innerW, innerH := max(r.W-2, 1), max(r.H-2, 1)

	var border, titleBg color.Color
	if s.Focused {
		border, titleBg = theme.BorderFocused(), theme.TitleBarFocused()
	} else {
		border, titleBg = theme.BorderUnfocused(), theme.TitleBarUnfocused()
	}

	body := s.Body
	if body == nil {
		body = window.Placeholder(s.Title)
	}
	bodyLines := fitLines(body.Render(innerW, innerH-1), innerW, innerH-1)
	bodyStyle := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(theme.WindowFg())
	for i, line := range bodyLines {
		bodyLines[i] = bodyStyle.Render(line)
	}

	lines := append([]string{renderTitleBar(s, innerW, titleBg)}, bodyLines...)
	return lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(border).
		Render(strings.Join(lines, "\n"))
}

// renderTitleBar lays out the icon and title on the left and the window
// buttons on the right of a line width cells wide.
func renderTitleBar(s wm.State, width int, bg color.Color) string {
	base := lipgloss.NewStyle().Background(bg).Foreground(theme.TitleFg())
	minLabel, maxLabel, closeLabel := config.GetWindowButtons(s.Maximized)
	buttons := base.Render(minLabel) + base.Render(maxLabel) +
		base.Background(theme.CloseButtonBg()).Render(closeLabel)
	buttonsWidth := lipgloss.Width(buttons)

	title := s.Title
	if s.Icon != "" {
		title = s.Icon + " " + title
	}
	room := max(width-buttonsWidth-1, 0)
	tail := "…"
	if config.UseASCIIOnly {
		tail = "."
	}
	title = ansi.Truncate(" "+title, room, tail)
	gap := max(width-ansi.StringWidth(title)-buttonsWidth, 0)

	line := base.Bold(s.Focused).Render(title) + base.Render(strings.Repeat(" ", gap)) + buttons
	if lipgloss.Width(line) > width {
		return ansi.Truncate(line, width, "")
	}
	return line
}

func (d *Desktop) renderTaskbar() *lipgloss.Layer {
	rows := TaskbarRows()
	content := d.TaskbarLayout().Render(rows, d.Taskbar.StartOpen())
	return lipgloss.NewLayer(content).X(0).Y(max(d.TaskbarTop(), 0)).Z(config.ZIndexTaskbar).ID("taskbar")
}
