package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

type currentDiff struct {
	path    string
	isStage bool
}

// Diff shows the diff of one file, either against the index or HEAD.
type Diff struct {
	alwaysVisible

	current    currentDiff
	diff       *git.FileDiff
	err        error
	pending    bool
	focused    bool
	sideBySide bool

	vp          viewport.Model
	dirty       bool
	renderWidth int

	styles ui.Styles
	keys   *keys.KeyConfig
}

// NewDiff returns an empty diff pane.
func NewDiff(styles ui.Styles, k *keys.KeyConfig) *Diff {
	return &Diff{
		vp:     viewport.New(0, 0),
		dirty:  true,
		styles: styles,
		keys:   k,
	}
}

// Current returns the path and side of the displayed diff. An empty path
// means nothing is displayed.
func (d *Diff) Current() (string, bool) {
	return d.current.path, d.current.isStage
}

// Update displays diff for path. Scrolling restarts at the top when the
// file changes and is kept when the same file is refreshed.
func (d *Diff) Update(path string, isStage bool, diff git.FileDiff) {
	next := currentDiff{path: path, isStage: isStage}
	if next != d.current {
		d.vp.GotoTop()
	}
	d.current = next
	d.diff = &diff
	d.err = nil
	d.pending = false
	d.dirty = true
}

// ShowError displays err in place of the diff for path.
func (d *Diff) ShowError(path string, isStage bool, err error) {
	d.current = currentDiff{path: path, isStage: isStage}
	d.diff = nil
	d.err = err
	d.pending = false
	d.dirty = true
	d.vp.GotoTop()
}

// Clear empties the pane. pending marks a diff as being computed.
func (d *Diff) Clear(pending bool) {
	d.current = currentDiff{}
	d.diff = nil
	d.err = nil
	d.pending = pending
	d.dirty = true
	d.vp.GotoTop()
}

// Pending reports whether the pane waits for a diff.
func (d *Diff) Pending() bool { return d.pending }

// Focused implements Component.
func (d *Diff) Focused() bool { return d.focused }

// Focus implements Component.
func (d *Diff) Focus(focus bool) { d.focused = focus }

// Commands implements Component.
func (d *Diff) Commands(out *[]CommandInfo, forceAll bool) CommandBlocking {
	available := d.focused || forceAll
	*out = append(*out,
		NewCommandInfo(CmdScroll(d.keys), d.diff != nil, available),
		NewCommandInfo(CmdToggleSideBySide(d.keys), true, available).WithOrder(OrderRareAction),
	)
	return PassingOn
}

// Event implements Component. Scroll keys are consumed only while focused.
func (d *Diff) Event(msg tea.Msg) (bool, error) {
	if !d.focused {
		return false, nil
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch {
	case key.Matches(k, d.keys.MoveDown):
		d.vp.ScrollDown(1)
	case key.Matches(k, d.keys.MoveUp):
		d.vp.ScrollUp(1)
	case key.Matches(k, d.keys.PageDown):
		d.vp.HalfPageDown()
	case key.Matches(k, d.keys.PageUp):
		d.vp.HalfPageUp()
	case key.Matches(k, d.keys.Home):
		d.vp.GotoTop()
	case key.Matches(k, d.keys.End):
		d.vp.GotoBottom()
	case key.Matches(k, d.keys.ToggleSideDiff):
		d.sideBySide = !d.sideBySide
		d.dirty = true
	default:
		return false, nil
	}
	return true, nil
}

// Draw renders the pane with a scrollbar.
func (d *Diff) Draw(width, height int) string {
	innerW, innerH := width-2, height-3
	if innerW < 2 || innerH < 1 {
		return renderPane(d.styles, "Diff", d.focused, nil, width, height)
	}

	title := "Diff"
	if d.current.path != "" {
		side := "unstaged"
		if d.current.isStage {
			side = "staged"
		}
		title = fmt.Sprintf("Diff: %s (%s)", d.current.path, side)
	}

	var body []string
	switch {
	case d.pending:
		body = []string{d.styles.Muted.Render(" loading…")}
	case d.err != nil:
		body = []string{d.styles.ErrorText.Render(ui.Truncate(" "+d.err.Error(), innerW))}
	case d.diff == nil:
		body = []string{d.styles.Muted.Render(" no file selected")}
	case d.diff.Binary:
		body = []string{d.styles.Muted.Render(" binary file")}
	case d.diff.Empty():
		body = []string{d.styles.Muted.Render(" no changes")}
	default:
		body = d.viewportLines(innerW, innerH)
	}
	return renderPane(d.styles, title, d.focused, body, width, height)
}

func (d *Diff) viewportLines(width, height int) []string {
	contentW := width - 1 // scrollbar column
	d.vp.Width = contentW
	d.vp.Height = height
	if d.dirty || d.renderWidth != contentW {
		if d.sideBySide {
			d.vp.SetContent(renderSideBySide(d.styles, *d.diff, contentW))
		} else {
			d.vp.SetContent(renderUnified(d.styles, *d.diff, contentW))
		}
		d.dirty = false
		d.renderWidth = contentW
	}

	lines := strings.Split(d.vp.View(), "\n")
	bar := scrollbar(d.styles, height, d.vp.TotalLineCount(), d.vp.ScrollPercent())
	for i := range lines {
		lines[i] = ui.PadRight(lines[i], contentW)
		if i < len(bar) {
			lines[i] += bar[i]
		}
	}
	return lines
}

// ── rendering ───────────────────────────────────────────────────────────────

const lineNumWidth = 5

func expandTabs(s string) string { return strings.ReplaceAll(s, "\t", "    ") }

func lineNum(styles ui.Styles, n int) string {
	if n == 0 {
		return styles.DiffLineNum.Render("")
	}
	return styles.DiffLineNum.Render(strconv.Itoa(n))
}

func renderUnified(styles ui.Styles, diff git.FileDiff, width int) string {
	textW := width - 2*lineNumWidth - 2
	var b strings.Builder
	for _, h := range diff.Hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case git.DiffHeader:
				b.WriteString(styles.DiffHunkHeader.Render(ui.Truncate(l.Content, width)))
			case git.DiffNoNewline:
				b.WriteString(styles.DiffMeta.Render(ui.Truncate(l.Content, width)))
			default:
				prefix, style := " ", styles.DiffContext
				if l.Kind == git.DiffAdd {
					prefix, style = "+", styles.DiffAdded
				} else if l.Kind == git.DiffDelete {
					prefix, style = "-", styles.DiffRemoved
				}
				b.WriteString(lineNum(styles, l.OldLine))
				b.WriteString(lineNum(styles, l.NewLine))
				b.WriteString(" ")
				b.WriteString(style.Render(ui.Truncate(prefix+expandTabs(l.Content), textW)))
			}
			b.WriteByte('\n')
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderSideBySide puts removed lines left and added lines right, pairing
// each run of removals with the run of additions that follows it.
func renderSideBySide(styles ui.Styles, diff git.FileDiff, width int) string {
	panelW := (width - 3) / 2 // 3 for separator
	if panelW < 12 {
		return renderUnified(styles, diff, width)
	}
	textW := panelW - lineNumWidth - 1
	sep := lipgloss.NewStyle().Foreground(styles.Theme.Border).Render(" │ ")

	cell := func(n int, content string, style lipgloss.Style) string {
		if n == 0 {
			return strings.Repeat(" ", panelW)
		}
		return ui.PadRight(lineNum(styles, n)+" "+style.Render(ui.Truncate(expandTabs(content), textW)), panelW)
	}

	var b strings.Builder
	row := func(left, right string) {
		b.WriteString(left)
		b.WriteString(sep)
		b.WriteString(right)
		b.WriteByte('\n')
	}

	for _, h := range diff.Hunks {
		var dels, adds []git.DiffLine
		flush := func() {
			for i := 0; i < max(len(dels), len(adds)); i++ {
				left, right := strings.Repeat(" ", panelW), strings.Repeat(" ", panelW)
				if i < len(dels) {
					left = cell(dels[i].OldLine, dels[i].Content, styles.DiffRemoved)
				}
				if i < len(adds) {
					right = cell(adds[i].NewLine, adds[i].Content, styles.DiffAdded)
				}
				row(left, right)
			}
			dels, adds = dels[:0], adds[:0]
		}

		for _, l := range h.Lines {
			switch l.Kind {
			case git.DiffDelete:
				if len(adds) > 0 {
					flush()
				}
				dels = append(dels, l)
			case git.DiffAdd:
				adds = append(adds, l)
			case git.DiffHeader:
				flush()
				b.WriteString(styles.DiffHunkHeader.Render(ui.Truncate(l.Content, width)))
				b.WriteByte('\n')
			case git.DiffNoNewline:
				flush()
				b.WriteString(styles.DiffMeta.Render(ui.Truncate(l.Content, width)))
				b.WriteByte('\n')
			default:
				flush()
				row(cell(l.OldLine, l.Content, styles.DiffContext), cell(l.NewLine, l.Content, styles.DiffContext))
			}
		}
		flush()
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// scrollbar returns one cell per row: a thumb proportional to the visible
// share of total, positioned by pct. Rows are blank when everything fits.
func scrollbar(styles ui.Styles, height, total int, pct float64) []string {
	rows := make([]string, height)
	if total <= height || height < 1 {
		for i := range rows {
			rows[i] = " "
		}
		return rows
	}

	thumb := max(1, min(height, height*height/total))
	maxOffset := height - thumb
	start := max(0, min(maxOffset, int(pct*float64(maxOffset))))

	for i := range rows {
		if i >= start && i < start+thumb {
			rows[i] = styles.ScrollThumb.Render("█")
		} else {
			rows[i] = styles.ScrollTrack.Render("░")
		}
	}
	return rows
}
