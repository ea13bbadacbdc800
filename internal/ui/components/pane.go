package components

import (
	"strings"

	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

// renderPane draws body inside a bordered box of exactly width x height
// cells, with title on the first inner line.
func renderPane(styles ui.Styles, title string, focused bool, body []string, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	innerW, innerH := width-2, height-2

	box, titleStyle := styles.Pane, styles.PaneTitle
	if focused {
		box, titleStyle = styles.PaneFocused, styles.PaneTitleFocused
	}

	lines := make([]string, 0, innerH)
	if innerH > 0 {
		lines = append(lines, titleStyle.Render(ui.Truncate(title, innerW)))
	}
	for _, l := range body {
		if len(lines) >= innerH {
			break
		}
		lines = append(lines, l)
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	return box.Width(innerW).Height(innerH).MaxHeight(height).Render(strings.Join(lines, "\n"))
}
