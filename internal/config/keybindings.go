package config

import (
	"slices"
	"strings"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// actionDescriptions documents every bindable action. Order is the help order.
var actionDescriptions = []struct {
	section, action, description string
}{
	{"Desktop", "toggle_start_menu", "Toggle start menu"},
	{"Desktop", "open_selected", "Open selected icon"},
	{"Desktop", "toggle_help", "Toggle help"},
	{"Desktop", "toggle_logs", "Toggle log viewer"},
	{"Windows", "next_window", "Focus next window"},
	{"Windows", "prev_window", "Focus previous window"},
	{"Windows", "close_window", "Close focused window"},
	{"Windows", "minimize_window", "Minimize focused window"},
	{"Windows", "maximize_window", "Maximize or restore focused window"},
	{"Windows", "move_left", "Move focused window left"},
	{"Windows", "move_right", "Move focused window right"},
	{"Windows", "move_up", "Move focused window up"},
	{"Windows", "move_down", "Move focused window down"},
	{"System", "shutdown", "Shut down"},
	{"System", "quit", "Quit immediately"},
}

// KeybindRegistry maps key strings to actions.
type KeybindRegistry struct {
	byKey    map[string]string
	byAction map[string][]string
}

// NewKeybindRegistry builds a registry from cfg. Later sections win on clashes.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		byKey:    make(map[string]string),
		byAction: make(map[string][]string),
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, section := range []map[string][]string{cfg.Keybindings.Desktop, cfg.Keybindings.Windows, cfg.Keybindings.System} {
		for action, keys := range section {
			for _, k := range keys {
				k = normalizeKey(k)
				if k == "" {
					continue
				}
				r.byKey[k] = action
				r.byAction[action] = append(r.byAction[action], k)
			}
		}
	}
	return r
}

// Action returns the action bound to key, if any.
func (r *KeybindRegistry) Action(key string) (string, bool) {
	a, ok := r.byKey[normalizeKey(key)]
	return a, ok
}

// Keys returns the keys bound to action in sorted order.
func (r *KeybindRegistry) Keys(action string) []string {
	keys := slices.Clone(r.byAction[action])
	slices.Sort(keys)
	return keys
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// GetKeybindings returns the help sections for the registry
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	var sections []KeybindingSection
	index := map[string]int{}
	for _, d := range actionDescriptions {
		keys := registry.Keys(d.action)
		if len(keys) == 0 {
			continue
		}
		i, ok := index[d.section]
		if !ok {
			sections = append(sections, KeybindingSection{Title: d.section})
			i = len(sections) - 1
			index[d.section] = i
		}
		sections[i].Bindings = append(sections[i].Bindings, Keybinding{
			Key:         strings.Join(keys, ", "),
			Description: d.description,
		})
	}

	sections = append(sections, KeybindingSection{
		Title: "Mouse",
		Bindings: []Keybinding{
			{"Drag title bar", "Move window"},
			{"Drag edge or corner", "Resize window"},
			{"Double click icon", "Open window"},
			{"Click taskbar entry", "Focus, minimize or restore"},
		},
	})
	return sections
}
