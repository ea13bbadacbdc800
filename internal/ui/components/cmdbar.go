package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

// CommandBarData carries what the bottom bar shows besides commands.
type CommandBarData struct {
	Branch string
	// Busy is rendered at the right edge, e.g. a spinner frame.
	Busy string
}

// RenderCommandBar renders the available quick-bar commands separated by
// dim vertical bars, with the branch and busy indicator on the right.
// Commands that do not fit are dropped from the end.
func RenderCommandBar(styles ui.Styles, cmds []CommandInfo, data CommandBarData, width int) string {
	shown := make([]CommandInfo, 0, len(cmds))
	for _, c := range cmds {
		if c.ShowInQuickBar() {
			shown = append(shown, c)
		}
	}
	SortCommands(shown)

	var right string
	if data.Branch != "" {
		right = styles.BranchName.Render(" " + data.Branch)
	}
	if data.Busy != "" {
		right = data.Busy + " " + right
	}
	rightW := lipgloss.Width(right)

	sep := styles.CommandSep.Render(" │ ")
	avail := width - 2 - rightW - 1 // padding and gap

	var b strings.Builder
	used := 0
	for i, c := range shown {
		style := styles.CommandEnabled
		if !c.Enabled {
			style = styles.CommandDisabled
		}
		item := style.Render(c.Text.Name)
		w := lipgloss.Width(item)
		if i > 0 {
			w += lipgloss.Width(sep)
		}
		if used+w > avail {
			break
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(item)
		used += w
	}

	left := b.String()
	gap := width - 2 - lipgloss.Width(left) - rightW
	if gap < 1 {
		gap = 1
	}
	return styles.CommandBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
