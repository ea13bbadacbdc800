package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

func TestRenderCommandBar(t *testing.T) {
	cmds := []CommandInfo{
		NewCommandInfo(CommandText{Name: "Late"}, true, true).WithOrder(OrderRareAction),
		NewCommandInfo(CommandText{Name: "Early"}, true, true),
		NewCommandInfo(CommandText{Name: "Unavailable"}, true, false),
		NewCommandInfo(CommandText{Name: "HelpOnly"}, true, true).Hidden(),
		NewCommandInfo(CommandText{Name: "Disabled"}, false, true),
	}
	bar := RenderCommandBar(ui.DefaultStyles(), cmds, CommandBarData{Branch: "main"}, 120)
	out := ansi.Strip(bar)

	assert.Equal(t, 120, lipgloss.Width(bar))
	assert.Contains(t, out, "Early │ Disabled │ Late")
	assert.NotContains(t, out, "Unavailable")
	assert.NotContains(t, out, "HelpOnly")
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, " "), "main"))
}

func TestRenderCommandBarDropsWhatDoesNotFit(t *testing.T) {
	cmds := []CommandInfo{
		NewCommandInfo(CommandText{Name: "First"}, true, true),
		NewCommandInfo(CommandText{Name: strings.Repeat("x", 50)}, true, true),
		NewCommandInfo(CommandText{Name: "Third"}, true, true),
	}
	out := ansi.Strip(RenderCommandBar(ui.DefaultStyles(), cmds, CommandBarData{Busy: "*"}, 40))
	assert.Contains(t, out, "First")
	assert.NotContains(t, out, "xxx")
	assert.NotContains(t, out, "Third")
	assert.Contains(t, out, "*")
}
