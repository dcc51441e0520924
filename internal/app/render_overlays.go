package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/session"
	"github.com/Gaurav-Gosain/tuidesk/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func (d *Desktop) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if d.OnDesktop() && d.ShowHelp {
		layers = append(layers, lipgloss.NewLayer(d.renderHelp()).X(0).Y(0).Z(config.ZIndexHelp).ID("help"))
	}
	if d.ShowLogs {
		layers = append(layers, lipgloss.NewLayer(d.renderLogs()).X(0).Y(0).Z(config.ZIndexLogs).ID("logs"))
	}
	if d.OnDesktop() && d.ScriptPlaying() {
		layers = append(layers, d.renderScriptIndicator())
	}
	layers = append(layers, d.renderNotifications()...)
	return layers
}

func (d *Desktop) renderNotifications() []*lipgloss.Layer {
	d.CleanupNotifications()

	var layers []*lipgloss.Layer
	const notifY, notifSpacing = 1, 4
	for i, notif := range d.Notifications {
		if i >= config.MaxVisibleNotifications {
			break
		}

		var bg lipgloss.Style
		var icon string
		switch notif.Type {
		case "error":
			bg, icon = lipgloss.NewStyle().Background(theme.NotificationError()), config.NotificationIconError
		case "warning":
			bg, icon = lipgloss.NewStyle().Background(theme.NotificationWarning()), config.NotificationIconWarning
		case "success":
			bg, icon = lipgloss.NewStyle().Background(theme.NotificationSuccess()), config.NotificationIconSuccess
		default:
			bg, icon = lipgloss.NewStyle().Background(theme.NotificationInfo()), config.NotificationIconInfo
		}

		maxWidth := min(max(d.Width-8, 20), config.MaxNotificationWidth)
		message := ansi.Truncate(notif.Message, maxWidth-10, "...")

		box := bg.
			Foreground(theme.TitleFg()).
			Padding(1, 2).
			Bold(true).
			MaxWidth(maxWidth).
			Render(fmt.Sprintf(" %s  %s ", icon, message))

		x := max(d.Width-lipgloss.Width(box)-2, 0)
		layers = append(layers, lipgloss.NewLayer(box).
			X(x).Y(notifY+i*notifSpacing).Z(config.ZIndexNotifications).
			ID("notif-"+notif.ID))
	}
	return layers
}

func (d *Desktop) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(theme.Accent()).Bold(true).Render("Keybindings")
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.HelpGray())
	sectionStyle := lipgloss.NewStyle().Bold(true).Underline(true)

	sections := config.GetKeybindings(d.Keybinds)
	keyWidth := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			keyWidth = max(keyWidth, ansi.StringWidth(b.Key))
		}
	}

	lines := []string{title, ""}
	for i, s := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, sectionStyle.Render(s.Title))
		for _, b := range s.Bindings {
			pad := strings.Repeat(" ", keyWidth-ansi.StringWidth(b.Key)+2)
			lines = append(lines, keyStyle.Render(b.Key)+pad+descStyle.Render(b.Description))
		}
	}
	lines = append(lines, "", descStyle.Render("Press 'q'/'esc' to exit"))

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.Accent()).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, box)
}

func (d *Desktop) renderLogs() string {
	title := lipgloss.NewStyle().Foreground(theme.Accent()).Bold(true).Render("System Logs")
	hint := lipgloss.NewStyle().Foreground(theme.HelpGray())

	perPage := d.logsPerPage()
	maxScroll := d.MaxLogScroll()
	d.LogScrollOffset = max(0, min(d.LogScrollOffset, maxScroll))

	lines := []string{title, ""}
	start := d.LogScrollOffset
	shown := 0
	for i := start; i < len(d.LogMessages) && shown < perPage; i++ {
		msg := d.LogMessages[i]
		level := lipgloss.NewStyle()
		switch msg.Level {
		case "ERROR":
			level = level.Foreground(theme.LogViewerError())
		case "WARN":
			level = level.Foreground(theme.LogViewerWarn())
		default:
			level = level.Foreground(theme.LogViewerInfo())
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			msg.Time.Format("15:04:05"), level.Render("["+msg.Level+"]"), msg.Message))
		shown++
	}

	if maxScroll > 0 {
		lines = append(lines, "", hint.Render(fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)",
			start+1, start+shown, len(d.LogMessages))))
	}
	lines = append(lines, "", hint.Render("Press 'q'/'esc' to exit, j/k or ↑/↓ to scroll"))

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.Accent()).
		Padding(1, 2).
		Width(min(config.LogViewerWidth, d.Width)).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, box)
}

func (d *Desktop) renderScriptIndicator() *lipgloss.Layer {
	done, total := d.ScriptProgress()
	status := fmt.Sprintf("SCRIPT %s %d/%d", progressBar(float64(done)/float64(max(total, 1)), 15), done, total)
	indicator := lipgloss.NewStyle().
		Foreground(theme.TitleFg()).
		Background(theme.Accent()).
		Padding(0, 1).
		Render(status)
	return lipgloss.NewLayer(indicator).
		X(max(d.Width-lipgloss.Width(indicator)-2, 0)).
		Y(max(d.TaskbarTop()-1, 0)).
		Z(config.ZIndexNotifications).
		ID("script")
}

// progressBar draws fraction of width cells filled.
func progressBar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	full, empty := "█", "░"
	if config.UseASCIIOnly {
		full, empty = "#", "-"
	}
	return strings.Repeat(full, filled) + strings.Repeat(empty, width-filled)
}

// =============================================================================
// Framing screens
// =============================================================================

func (d *Desktop) renderFraming() *lipgloss.Layer {
	now := d.now()
	headline := lipgloss.NewStyle().Foreground(theme.Accent()).Bold(true)
	text := lipgloss.NewStyle().Foreground(theme.ScreenFg())
	faint := text.Faint(true)
	barWidth := min(40, max(d.Width-10, 10))

	var parts []string
	switch d.Session.Phase() {
	case session.PhaseBoot:
		parts = []string{
			headline.Render("tuidesk"),
			"",
			text.Render("Starting up"),
			"",
			text.Render(progressBar(d.bootFraction(), barWidth)),
		}
	case session.PhaseLogin:
		button := lipgloss.NewStyle().
			Foreground(theme.TitleFg()).
			Background(theme.Accent()).
			Padding(0, 2).
			Render("Sign in")
		parts = []string{
			headline.Render(d.UserName()),
			"",
			button,
			"",
			faint.Render("Press Enter or click to sign in"),
		}
	case session.PhaseSigningIn:
		parts = []string{
			headline.Render("Welcome, " + d.UserName()),
			"",
			text.Render(progressBar(d.Session.Progress(now), barWidth)),
		}
	case session.PhaseShuttingDown:
		parts = []string{
			headline.Render("Shutting down"),
			"",
			text.Render(progressBar(d.Session.Progress(now), barWidth)),
		}
	case session.PhaseOff:
		parts = []string{
			text.Render("It is now safe to close this terminal."),
			"",
			faint.Render("Press Enter to start again or q to quit"),
		}
	}

	content := lipgloss.NewStyle().
		Background(theme.ScreenBg()).
		Width(d.Width).
		Height(d.Height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
	return lipgloss.NewLayer(content).X(0).Y(0).Z(config.ZIndexFraming).ID("framing")
}

// bootFraction is how far the boot screen has run.
func (d *Desktop) bootFraction() float64 {
	total := session.DurationsFromConfig(d.Config.Session).Boot
	if total <= 0 {
		return 1
	}
	return min(1, float64(d.now().Sub(d.Session.Since()))/float64(total))
}
