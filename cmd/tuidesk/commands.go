package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/app"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/desktop"
	"github.com/Gaurav-Gosain/tuidesk/internal/output"
	"github.com/Gaurav-Gosain/tuidesk/internal/tape"
	"github.com/Gaurav-Gosain/tuidesk/internal/taskbar"
	"github.com/Gaurav-Gosain/tuidesk/internal/theme"
	"github.com/Gaurav-Gosain/tuidesk/internal/window"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
	"github.com/charmbracelet/log"
)

// =============================================================================
// config
// =============================================================================

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor returns the editor named by $EDITOR or $VISUAL, or the first
// common editor on $PATH.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano"} {
		if path, err := exec.LookPath(e); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no editor found, set $EDITOR")
}

func editConfigFile() error {
	// Creates the file with defaults when missing
	if _, err := config.LoadUserConfig(); err != nil {
		log.Warn("current config has problems", "err", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	editor, err := findEditor()
	if err != nil {
		return err
	}

	fields := strings.Fields(editor)
	// #nosec G204 - the editor comes from the user's environment
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if _, err := config.LoadUserConfigFile(path); err != nil {
		return fmt.Errorf("config saved but invalid: %w", err)
	}
	fmt.Println("Configuration is valid.")
	return nil
}

func resetConfigToDefaults(in io.Reader, yes bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if !yes {
		fmt.Printf("This will overwrite %s with the defaults. Continue? [y/N] ", path)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}
	if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

// =============================================================================
// keybinds
// =============================================================================

func listKeybindings() error {
	userConfig := loadConfig()
	registry := config.NewKeybindRegistry(userConfig)

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader())
	key := lipgloss.NewStyle().Foreground(theme.CLITableKey())

	sections := config.GetKeybindings(registry)
	width := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			width = max(width, lipgloss.Width(b.Key))
		}
	}

	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(header.Render(s.Title) + "\n")
		for _, b := range s.Bindings {
			sb.WriteString("  " + key.Width(width).Render(b.Key) + "  " + b.Description + "\n")
		}
	}
	fmt.Print(lipgloss.Sprint(sb.String()))
	return nil
}

// =============================================================================
// script
// =============================================================================

// newHeadless wires a desktop without a terminal: the manager, the icon grid
// and the taskbar projector, as the TUI wires them.
func newHeadless(cfg *config.UserConfig, logger *log.Logger) *tape.Target {
	manager := wm.New(window.CatalogFromConfig(cfg.Windows), wm.WithLogger(logger))
	grid := desktop.FromConfig(cfg.Desktop, desktop.WithLogger(logger))
	return tape.NewTarget(manager, grid, taskbar.New(manager, logger), logger)
}

func runScript(ctx context.Context, w io.Writer, cfg *config.UserConfig, name, format string, pretty, sleep bool) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	path, err := app.ResolveScript(name)
	if err != nil {
		return err
	}
	cmds, err := tape.ParseFile(path)
	if err != nil {
		return err
	}

	logger, closeLog, err := debugLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	target := newHeadless(cfg, logger)
	var sleepFn tape.SleepFunc
	if sleep {
		sleepFn = tape.WallClock
	}
	if err := tape.Run(ctx, cmds, target, sleepFn); err != nil {
		return err
	}
	return output.Write(w, f, pretty, output.Capture(target.Manager, target.Grid))
}
