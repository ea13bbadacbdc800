package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"

	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

// Msg is the error popup.
type Msg struct {
	noFocus
	popup

	msg    string
	styles ui.Styles
	keys   *keys.KeyConfig
}

// NewMsg returns a hidden message popup.
func NewMsg(styles ui.Styles, k *keys.KeyConfig) *Msg {
	return &Msg{styles: styles, keys: k}
}

// ShowError displays msg.
func (m *Msg) ShowError(msg string) error {
	m.msg = msg
	return m.Show()
}

// Message returns the displayed text.
func (m *Msg) Message() string { return m.msg }

// Commands implements Component.
func (m *Msg) Commands(out *[]CommandInfo, _ bool) CommandBlocking {
	*out = append(*out, NewCommandInfo(CmdCloseMsg(m.keys), true, m.IsVisible()))
	return VisibilityBlocking(m)
}

// Event implements Component. All input is swallowed while visible.
func (m *Msg) Event(msg tea.Msg) (bool, error) {
	if !m.IsVisible() {
		return false, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Enter, m.keys.ExitPopup) {
		m.Hide()
	}
	return true, nil
}

// Draw renders the popup centred in the given area.
func (m *Msg) Draw(width, height int) string {
	if !m.IsVisible() {
		return ""
	}
	boxW := max(20, min(70, width-4))
	textW := boxW - 6 // border and padding
	body := wrap.String(m.msg, textW)

	title := m.styles.ErrorText.Bold(true).Render("Error")
	content := title + "\n\n" + m.styles.Body.Render(body)
	return ui.PlaceCentre(width, height, m.styles.DialogError.Width(boxW-2).Render(content))
}
