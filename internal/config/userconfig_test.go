package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadUserConfigFile_FillsDefaults(t *testing.T) {
	path := writeConfig(t, `
[appearance]
theme = "nord"

[desktop]
search_radius = 4
`)

	cfg, err := LoadUserConfigFile(path)
	if err != nil {
		t.Fatalf("LoadUserConfigFile failed: %v", err)
	}

	if cfg.Appearance.Theme != "nord" {
		t.Errorf("expected theme nord, got %q", cfg.Appearance.Theme)
	}
	if cfg.Appearance.BorderStyle != "rounded" {
		t.Errorf("expected default border style, got %q", cfg.Appearance.BorderStyle)
	}
	if cfg.Desktop.SearchRadius != 4 {
		t.Errorf("expected search radius 4, got %d", cfg.Desktop.SearchRadius)
	}
	if len(cfg.Desktop.Icons) != len(DefaultIcons()) {
		t.Errorf("expected %d default icons, got %d", len(DefaultIcons()), len(cfg.Desktop.Icons))
	}
	if len(cfg.Windows) != len(DefaultWindowTypes()) {
		t.Errorf("expected %d window types, got %d", len(DefaultWindowTypes()), len(cfg.Windows))
	}
	if got := cfg.Keybindings.System["quit"]; len(got) == 0 {
		t.Error("expected default quit binding to be filled in")
	}
}

func TestLoadUserConfigFile_WindowOverride(t *testing.T) {
	path := writeConfig(t, `
[[windows]]
key = "resume"
width = 1000

[[windows]]
key = "notes"
title = "Notes"
`)

	cfg, err := LoadUserConfigFile(path)
	if err != nil {
		t.Fatalf("LoadUserConfigFile failed: %v", err)
	}

	byKey := map[string]WindowTypeConfig{}
	for _, w := range cfg.Windows {
		byKey[w.Key] = w
	}

	resume := byKey["resume"]
	if resume.Width != 1000 || resume.Height != 600 || resume.MinWidth != 300 {
		t.Errorf("resume override not merged with stock entry: %+v", resume)
	}

	notes := byKey["notes"]
	if notes.Width != DefaultWindowWidth || notes.MinHeight != MinWindowHeight || notes.MinVisible != DefaultMinVisible {
		t.Errorf("new window type not filled with defaults: %+v", notes)
	}

	if _, ok := byKey["mail"]; !ok {
		t.Error("expected stock window types to be kept")
	}
}

func TestLoadUserConfigFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid toml", "[appearance\n"},
		{"duplicate icon ids", `
[[desktop.icons]]
id = 1
label = "A"
key = "a"

[[desktop.icons]]
id = 1
label = "B"
key = "b"
`},
		{"duplicate window keys", `
[[windows]]
key = "x"

[[windows]]
key = "x"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadUserConfigFile(writeConfig(t, tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := WriteConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	cfg, err := LoadUserConfigFile(path)
	if err != nil {
		t.Fatalf("LoadUserConfigFile failed: %v", err)
	}
	if cfg.Desktop.Icons[3].Key != "mail" {
		t.Errorf("expected fourth icon key mail, got %q", cfg.Desktop.Icons[3].Key)
	}
}

func TestValidateConfig_UnknownBorderStyle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Appearance.BorderStyle = "wavy"

	v := ValidateConfig(cfg)
	if v.HasErrors() {
		t.Fatalf("unexpected errors: %+v", v.Errors)
	}
	if !v.HasWarnings() {
		t.Error("expected a warning for unknown border style")
	}
	if cfg.Appearance.BorderStyle != "rounded" {
		t.Errorf("expected border style reset to rounded, got %q", cfg.Appearance.BorderStyle)
	}
}

func TestKeybindRegistry(t *testing.T) {
	r := NewKeybindRegistry(DefaultConfig())

	if a, ok := r.Action("TAB"); !ok || a != "next_window" {
		t.Errorf("Action(TAB) = %q, %v", a, ok)
	}
	if _, ok := r.Action("f12"); ok {
		t.Error("expected f12 to be unbound")
	}
	if keys := r.Keys("quit"); len(keys) != 1 || keys[0] != "ctrl+c" {
		t.Errorf("Keys(quit) = %v", keys)
	}

	sections := GetKeybindings(r)
	if len(sections) == 0 || sections[0].Title != "Desktop" {
		t.Fatalf("unexpected sections: %+v", sections)
	}
	if last := sections[len(sections)-1]; last.Title != "Mouse" {
		t.Errorf("expected Mouse section last, got %q", last.Title)
	}
}
