// Package main implements tuidesk, a desktop for the terminal: windows that
// drag and resize with the mouse, desktop icons, a taskbar and a start menu.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/tuidesk/internal/app"
	"github.com/Gaurav-Gosain/tuidesk/internal/theme"
	"github.com/charmbracelet/fang"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode   bool
	asciiOnly   bool
	themeName   string
	listThemes  bool
	borderStyle string
	hideClock   bool
	cellWidth   int
	cellHeight  int
	skipBoot    bool
	scriptFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tuidesk",
		Short: "A desktop in your terminal",
		Long: `tuidesk - a desktop in your terminal

Windows you can drag, resize, minimize and maximize with the mouse, desktop
icons on a snapping grid, a taskbar with a start menu and a clock.`,
		Example: `  # Run tuidesk
  tuidesk

  # Skip the boot and login screens
  tuidesk --skip-boot

  # Run with a specific theme
  tuidesk --theme dracula

  # Play a script on the desktop
  tuidesk --script demo.tape

  # Run a script headless and print the final state
  tuidesk script demo.tape --format json

  # Serve the desktop in the browser
  tuidesk web

  # List all keybindings
  tuidesk keybinds list`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listThemes {
				return printThemes()
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write debug logs to the XDG state directory")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII glyphs for buttons and controls")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty for the built-in palette")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the taskbar clock")
	rootCmd.PersistentFlags().IntVar(&cellWidth, "cell-width", 0, "Desktop pixels per terminal column (default: from config or 10)")
	rootCmd.PersistentFlags().IntVar(&cellHeight, "cell-height", 0, "Desktop pixels per terminal row (default: from config or 20)")
	rootCmd.PersistentFlags().BoolVar(&skipBoot, "skip-boot", false, "Start on the desktop")
	rootCmd.Flags().StringVar(&scriptFile, "script", "", "Script to play once the desktop is up (path or name in the scripts directory)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuidesk configuration",
		Long:  `Manage the tuidesk configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuidesk configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi and nano in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tuidesk configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return resetConfigToDefaults(cmd.InOrStdin(), resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	var scriptFormat string
	var scriptPretty bool
	var scriptSleep bool
	scriptCmd := &cobra.Command{
		Use:   "script <file.tape>",
		Short: "Run a script headless and print the resulting desktop state",
		Long: `Execute a script against a headless desktop and print the final window
and icon state. Sleep commands are skipped unless --sleep is given.`,
		Example: `  # Print the state as YAML
  tuidesk script demo.tape

  # Print indented JSON
  tuidesk script demo.tape --format json --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd.Context(), cmd.OutOrStdout(), loadConfig(), args[0], scriptFormat, scriptPretty, scriptSleep)
		},
	}
	scriptCmd.Flags().StringVarP(&scriptFormat, "format", "f", "yaml", "Output format: yaml or json")
	scriptCmd.Flags().BoolVar(&scriptPretty, "pretty", false, "Indent JSON output")
	scriptCmd.Flags().BoolVar(&scriptSleep, "sleep", false, "Honour Sleep commands")

	scriptsDirCmd := &cobra.Command{
		Use:   "dir",
		Short: "Show the scripts directory path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.ScriptDirectory())
			return err
		},
	}
	scriptCmd.AddCommand(scriptsDirCmd)

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve tuidesk in the browser",
		Long: `Serve tuidesk through a web terminal. Every browser session gets its
own desktop.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWebServer(cmd.Context())
		},
	}

	rootCmd.AddCommand(configCmd, keybindsCmd, scriptCmd, webCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func printThemes() error {
	if err := theme.Initialize("default"); err != nil {
		return fmt.Errorf("failed to initialize themes: %w", err)
	}
	for _, t := range tint.TintIDs() {
		fmt.Println(t)
	}
	return nil
}
