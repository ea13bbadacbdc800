package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

// BranchCreator creates and checks out a branch.
type BranchCreator interface {
	CreateBranch(name string) error
}

// CreateBranch prompts for a branch name.
type CreateBranch struct {
	noFocus
	popup

	input  textinput.Model
	repo   BranchCreator
	queue  *queue.Queue
	styles ui.Styles
	keys   *keys.KeyConfig
}

// NewCreateBranch returns a hidden prompt.
func NewCreateBranch(repo BranchCreator, q *queue.Queue, styles ui.Styles, k *keys.KeyConfig) *CreateBranch {
	ti := textinput.New()
	ti.Placeholder = "branch name"
	ti.CharLimit = 200
	ti.Width = 48
	return &CreateBranch{input: ti, repo: repo, queue: q, styles: styles, keys: k}
}

// Open clears the input and shows the prompt.
func (c *CreateBranch) Open() error {
	c.input.Reset()
	c.input.Focus()
	return c.Show()
}

// Hide implements Component.
func (c *CreateBranch) Hide() {
	c.input.Blur()
	c.popup.Hide()
}

// Commands implements Component.
func (c *CreateBranch) Commands(out *[]CommandInfo, _ bool) CommandBlocking {
	*out = append(*out,
		NewCommandInfo(CmdCreateBranchConfirm(c.keys), strings.TrimSpace(c.input.Value()) != "", c.IsVisible()),
		NewCommandInfo(CmdClosePopup(c.keys), true, c.IsVisible()),
	)
	return VisibilityBlocking(c)
}

// Event implements Component. All input is swallowed while visible.
func (c *CreateBranch) Event(msg tea.Msg) (bool, error) {
	if !c.IsVisible() {
		return false, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, c.keys.ExitPopup):
			c.Hide()
			return true, nil
		case key.Matches(k, c.keys.Enter):
			c.create()
			return true, nil
		}
	}
	c.input, _ = c.input.Update(msg)
	return true, nil
}

func (c *CreateBranch) create() {
	name := strings.TrimSpace(c.input.Value())
	if name == "" {
		return
	}
	c.Hide()
	if err := c.repo.CreateBranch(name); err != nil {
		c.queue.Push(queue.ShowErrorMsg{Msg: fmt.Sprintf("create branch error:\n%s", err)})
		return
	}
	c.queue.Push(queue.Update{Flags: queue.UpdateAll})
}

// Draw renders the prompt centred in the given area.
func (c *CreateBranch) Draw(width, height int) string {
	if !c.IsVisible() {
		return ""
	}
	content := c.styles.DialogTitle.Render("Create branch") + "\n\n" + c.input.View()
	return ui.PlaceCentre(width, height, c.styles.Dialog.Width(min(56, width-4)).Render(content))
}
