package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

// groupOrder is the deterministic section order of the help screen.
var groupOrder = []string{GroupNavigation, GroupChanges, GroupDiff, GroupBranch, GroupGeneral}

// Help lists every command the application offers, grouped by area.
type Help struct {
	noFocus
	popup

	cmds   []CommandInfo
	scroll int
	styles ui.Styles
	keys   *keys.KeyConfig
}

// NewHelp returns a hidden help screen.
func NewHelp(styles ui.Styles, k *keys.KeyConfig) *Help {
	return &Help{styles: styles, keys: k}
}

// SetCommands replaces the listed commands. Callers pass the result of a
// forced command pump.
func (h *Help) SetCommands(cmds []CommandInfo) {
	h.cmds = cmds
}

// Show implements Component.
func (h *Help) Show() error {
	h.scroll = 0
	return h.popup.Show()
}

// Commands implements Component. While visible only the help's own commands
// remain.
func (h *Help) Commands(out *[]CommandInfo, forceAll bool) CommandBlocking {
	if h.IsVisible() && !forceAll {
		*out = (*out)[:0]
	}
	if h.IsVisible() {
		*out = append(*out,
			NewCommandInfo(CmdScroll(h.keys), true, true),
			NewCommandInfo(CmdClosePopup(h.keys), true, true),
		)
	}
	if !h.IsVisible() || forceAll {
		*out = append(*out, NewCommandInfo(CmdHelpOpen(h.keys), true, true).WithOrder(99))
	}
	return VisibilityBlocking(h)
}

// Event implements Component. The help key opens the screen; while visible
// all input is swallowed.
func (h *Help) Event(msg tea.Msg) (bool, error) {
	k, isKey := msg.(tea.KeyMsg)
	if !h.IsVisible() {
		if isKey && key.Matches(k, h.keys.OpenHelp) {
			return true, h.Show()
		}
		return false, nil
	}
	if !isKey {
		return true, nil
	}
	switch {
	case key.Matches(k, h.keys.ExitPopup, h.keys.OpenHelp):
		h.Hide()
	case key.Matches(k, h.keys.MoveDown):
		h.scroll++
	case key.Matches(k, h.keys.MoveUp):
		h.scroll = max(0, h.scroll-1)
	}
	return true, nil
}

// Lines returns the rendered help body, one entry per line, without styling.
func (h *Help) Lines() []string {
	return h.lines(func(s string) string { return s }, func(s string) string { return s }, func(s string) string { return s })
}

func (h *Help) lines(section, name, desc func(string) string) []string {
	groups := make(map[string][]CommandInfo)
	seen := make(map[string]bool)
	for _, c := range h.cmds {
		if c.Text.HideHelp || seen[c.Text.Name] {
			continue
		}
		seen[c.Text.Name] = true
		groups[c.Text.Group] = append(groups[c.Text.Group], c)
	}

	var out []string
	for _, g := range groupOrder {
		entries := groups[g]
		if len(entries) == 0 {
			continue
		}
		out = append(out, section(g))
		for _, c := range entries {
			out = append(out, "  "+name(ui.PadRight(c.Text.Name, 22))+"  "+desc(c.Text.Desc))
		}
		out = append(out, "")
	}
	return out
}

// Draw renders the help screen centred in the given area.
func (h *Help) Draw(width, height int) string {
	if !h.IsVisible() {
		return ""
	}
	t := h.styles.Theme
	sectionStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).Underline(true)
	render := func(st lipgloss.Style) func(string) string {
		return func(s string) string { return st.Render(s) }
	}
	lines := h.lines(render(sectionStyle), render(h.styles.KeyBind), render(h.styles.Body))

	visible := max(1, height-8)
	h.scroll = max(0, min(h.scroll, len(lines)-visible))
	end := min(len(lines), h.scroll+visible)

	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("Help")
	content := title + "\n\n" + strings.Join(lines[h.scroll:end], "\n")

	overlay := h.styles.Dialog.
		Width(min(70, width-4)).
		MaxHeight(height - 2).
		Render(content)
	return ui.PlaceCentre(width, height, overlay)
}
