// Package keys resolves configured key names into bubbles key bindings.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/Akashdeep-Patra/gitpane/internal/config"
)

// KeyConfig is the full set of bindings shared by all components.
type KeyConfig struct {
	Quit           key.Binding
	OpenHelp       key.Binding
	ExitPopup      key.Binding
	Enter          key.Binding
	FocusWorkDir   key.Binding
	FocusStage     key.Binding
	FocusRight     key.Binding
	FocusLeft      key.Binding
	MoveUp         key.Binding
	MoveDown       key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Home           key.Binding
	End            key.Binding
	EditFile       key.Binding
	StageAll       key.Binding
	ResetItem      key.Binding
	OpenCommit     key.Binding
	CommitConfirm  key.Binding
	CreateBranch   key.Binding
	Push           key.Binding
	ToggleSideDiff key.Binding
	Tab            key.Binding
}

// New builds bindings from config. Actions left empty in b fall back to the
// defaults.
func New(b config.KeyBindings) *KeyConfig {
	d := config.DefaultKeyBindings()
	pick := func(keys, fallback []string) []string {
		if len(keys) == 0 {
			return fallback
		}
		return keys
	}
	bind := func(keys, fallback []string, desc string) key.Binding {
		k := pick(keys, fallback)
		return key.NewBinding(key.WithKeys(k...), key.WithHelp(Display(k), desc))
	}

	return &KeyConfig{
		Quit:           bind(b.Quit, d.Quit, "quit"),
		OpenHelp:       bind(b.OpenHelp, d.OpenHelp, "help"),
		ExitPopup:      bind(b.ExitPopup, d.ExitPopup, "close"),
		Enter:          bind(b.Enter, d.Enter, "confirm"),
		FocusWorkDir:   bind(b.FocusWorkDir, d.FocusWorkDir, "unstaged"),
		FocusStage:     bind(b.FocusStage, d.FocusStage, "staged"),
		FocusRight:     bind(b.FocusRight, d.FocusRight, "diff"),
		FocusLeft:      bind(b.FocusLeft, d.FocusLeft, "back"),
		MoveUp:         bind(b.MoveUp, d.MoveUp, "up"),
		MoveDown:       bind(b.MoveDown, d.MoveDown, "down"),
		PageUp:         bind(b.PageUp, d.PageUp, "page up"),
		PageDown:       bind(b.PageDown, d.PageDown, "page down"),
		Home:           bind(b.Home, d.Home, "top"),
		End:            bind(b.End, d.End, "bottom"),
		EditFile:       bind(b.EditFile, d.EditFile, "edit"),
		StageAll:       bind(b.StageAll, d.StageAll, "stage all"),
		ResetItem:      bind(b.ResetItem, d.ResetItem, "reset"),
		OpenCommit:     bind(b.OpenCommit, d.OpenCommit, "commit"),
		CommitConfirm:  bind(b.CommitConfirm, d.CommitConfirm, "confirm commit"),
		CreateBranch:   bind(b.CreateBranch, d.CreateBranch, "branch"),
		Push:           bind(b.Push, d.Push, "push"),
		ToggleSideDiff: bind(b.ToggleSideDiff, d.ToggleSideDiff, "side-by-side"),
		Tab:            bind(b.Tab, d.Tab, "switch"),
	}
}

// Default returns bindings built from the default configuration.
func Default() *KeyConfig {
	return New(config.DefaultKeyBindings())
}

var symbols = map[string]string{
	"up":     "↑",
	"down":   "↓",
	"left":   "←",
	"right":  "→",
	"enter":  "⏎",
	"pgup":   "pgup",
	"pgdown": "pgdn",
}

// Display renders key names for help text, e.g. ["down", "j"] -> "↓/j".
func Display(keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if s, ok := symbols[k]; ok {
			k = s
		}
		parts = append(parts, k)
	}
	return strings.Join(parts, "/")
}
