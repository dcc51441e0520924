package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationIssue is one problem found in a user config.
type ValidationIssue struct {
	Field   string
	Key     string
	Message string
}

// ValidationResult collects errors, which stop loading, and warnings, which don't.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any error was recorded
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any warning was recorded
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) errorf(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) warnf(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

var validBorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}

// ValidateConfig checks cfg after defaults have been filled in.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	if !slices.Contains(validBorderStyles, cfg.Appearance.BorderStyle) {
		v.warnf("appearance", "border_style", "unknown style %q, using rounded", cfg.Appearance.BorderStyle)
		cfg.Appearance.BorderStyle = "rounded"
	}
	if cfg.Appearance.CellWidth > GridSize || cfg.Appearance.CellHeight > GridSize {
		v.errorf("appearance", "cell_width/cell_height", "cells larger than the %dpx grid are not supported", GridSize)
	}

	if cfg.Desktop.SearchRadius > 100 {
		v.warnf("desktop", "search_radius", "radius %d is very large, clamping to 100", cfg.Desktop.SearchRadius)
		cfg.Desktop.SearchRadius = 100
	}

	ids := make(map[int]bool, len(cfg.Desktop.Icons))
	for i, icon := range cfg.Desktop.Icons {
		key := fmt.Sprintf("icons[%d]", i)
		if ids[icon.ID] {
			v.errorf("desktop", key, "duplicate icon id %d", icon.ID)
		}
		ids[icon.ID] = true
		if strings.TrimSpace(icon.Label) == "" {
			v.errorf("desktop", key, "icon %d has no label", icon.ID)
		}
		if icon.Key == "" {
			v.warnf("desktop", key, "icon %q has no key, deriving one from its label", icon.Label)
		}
	}

	keys := make(map[string]bool, len(cfg.Windows))
	for i, w := range cfg.Windows {
		key := fmt.Sprintf("windows[%d]", i)
		if w.Key == "" {
			v.errorf("windows", key, "window type has no key")
			continue
		}
		if keys[w.Key] {
			v.errorf("windows", key, "duplicate window key %q", w.Key)
		}
		keys[w.Key] = true
		if w.Width < w.MinWidth || w.Height < w.MinHeight {
			v.warnf("windows", w.Key, "default size %dx%d is below the floor %dx%d", w.Width, w.Height, w.MinWidth, w.MinHeight)
		}
		if w.MinVisible > w.MinWidth {
			v.warnf("windows", w.Key, "min_visible %d exceeds min_width %d", w.MinVisible, w.MinWidth)
		}
	}

	seen := make(map[string]string)
	for _, section := range []map[string][]string{cfg.Keybindings.Desktop, cfg.Keybindings.Windows, cfg.Keybindings.System} {
		for action, bound := range section {
			for _, k := range bound {
				if prev, ok := seen[k]; ok && prev != action {
					v.warnf("keybindings", k, "bound to both %s and %s", prev, action)
				}
				seen[k] = action
			}
		}
	}

	return v
}
