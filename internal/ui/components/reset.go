package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

// Reset asks for confirmation before discarding a file's changes.
type Reset struct {
	noFocus
	popup

	item   queue.ResetItem
	yes    bool // which button has focus
	queue  *queue.Queue
	styles ui.Styles
	keys   *keys.KeyConfig
}

// NewReset returns a hidden confirmation popup.
func NewReset(q *queue.Queue, styles ui.Styles, k *keys.KeyConfig) *Reset {
	return &Reset{queue: q, styles: styles, keys: k}
}

// Open shows the popup for item with "Yes" focused.
func (r *Reset) Open(item queue.ResetItem) error {
	r.item = item
	r.yes = true
	return r.Show()
}

// Item returns the item awaiting confirmation.
func (r *Reset) Item() queue.ResetItem { return r.item }

// Commands implements Component.
func (r *Reset) Commands(out *[]CommandInfo, _ bool) CommandBlocking {
	*out = append(*out,
		NewCommandInfo(CmdConfirmAction(r.keys), true, r.IsVisible()),
		NewCommandInfo(CmdClosePopup(r.keys), true, r.IsVisible()),
	)
	return VisibilityBlocking(r)
}

// Event implements Component. All input is swallowed while visible.
func (r *Reset) Event(msg tea.Msg) (bool, error) {
	if !r.IsVisible() {
		return false, nil
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return true, nil
	}
	switch {
	case key.Matches(k, r.keys.ExitPopup):
		r.Hide()
	case key.Matches(k, r.keys.Enter):
		if r.yes {
			r.queue.Push(queue.ResetFile{Item: r.item})
		}
		r.Hide()
	case key.Matches(k, r.keys.Tab, r.keys.FocusLeft, r.keys.FocusRight):
		r.yes = !r.yes
	}
	return true, nil
}

// Draw renders the popup centred in the given area.
func (r *Reset) Draw(width, height int) string {
	if !r.IsVisible() {
		return ""
	}
	title := r.styles.DialogTitle.Render("Reset")
	message := r.styles.Muted.Render(fmt.Sprintf("Discard all changes of\n%s ?", ui.TruncateLeft(r.item.Path, 48)))

	yes, no := r.styles.DialogButtonInactive, r.styles.DialogButton
	if r.yes {
		yes, no = r.styles.DialogButton, r.styles.DialogButtonInactive
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Yes"), "  ", no.Render("No"))

	content := title + "\n\n" + message + "\n\n" + buttons
	return ui.PlaceCentre(width, height, r.styles.Dialog.Width(min(56, width-4)).Render(content))
}
