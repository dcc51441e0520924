package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/Gaurav-Gosain/tuidesk/internal/app"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/tape"
	"github.com/Gaurav-Gosain/tuidesk/pkg/tuidesk"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// errNoTTY is returned when the TUI is started without a terminal.
var errNoTTY = errors.New("tuidesk needs an interactive terminal (try `tuidesk script` for headless runs)")

// loadConfig reads the user config, falling back to defaults.
func loadConfig() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	return userConfig
}

// flagOptions turns the global flags into desktop options. They win over the
// config file.
func flagOptions() []tuidesk.Option {
	return []tuidesk.Option{
		tuidesk.WithASCIIOnly(asciiOnly),
		tuidesk.WithBorderStyle(borderStyle),
		tuidesk.WithHideClock(hideClock),
		tuidesk.WithCellSize(cellWidth, cellHeight),
		tuidesk.WithSkipBoot(skipBoot),
		tuidesk.WithTheme(themeName),
	}
}

// debugLogger opens the debug log under the XDG state directory. Without
// --debug it discards everything.
func debugLogger() (*log.Logger, func(), error) {
	if !debugMode {
		return log.New(io.Discard), func() {}, nil
	}
	path, err := xdg.StateFile("tuidesk/debug.log")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get debug log path: %w", err)
	}
	// #nosec G304 - path is from xdg
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "tuidesk",
	})
	fmt.Fprintf(os.Stderr, "Debug log: %s\n", path)
	return logger, func() { _ = f.Close() }, nil
}

func runLocal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTTY
	}

	logger, closeLog, err := debugLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := append(flagOptions(),
		tuidesk.WithUserConfig(loadConfig()),
		tuidesk.WithLogger(logger),
	)

	if scriptFile != "" {
		path, err := app.ResolveScript(scriptFile)
		if err != nil {
			return err
		}
		cmds, err := tape.ParseFile(path)
		if err != nil {
			return err
		}
		logger.Debug("script loaded", "path", path, "commands", len(cmds))
		opts = append(opts, tuidesk.WithScript(cmds))
	}

	p := tea.NewProgram(
		tuidesk.New(opts...),
		append(tuidesk.ProgramOptions(), tea.WithoutSignalHandler())...,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runWebServer(ctx context.Context) error {
	logger, closeLog, err := debugLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	userConfig := loadConfig()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("starting tuidesk web server")
	server := sip.NewServer(sip.DefaultConfig())
	return server.Serve(ctx, func(_ sip.Session) (tea.Model, []tea.ProgramOption) {
		// Each browser session gets its own desktop over a shared config
		cfg := *userConfig
		model := tuidesk.New(append(flagOptions(),
			tuidesk.WithUserConfig(&cfg),
			tuidesk.WithLogger(logger),
		)...)
		logger.Debug("web session", "id", model.Session.ID())
		return model, tuidesk.ProgramOptions()
	})
}
