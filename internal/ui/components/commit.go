package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

// Committer creates commits from the index.
type Committer interface {
	Commit(message string) error
}

// Commit is the commit message editor.
type Commit struct {
	noFocus
	popup

	input  textarea.Model
	repo   Committer
	queue  *queue.Queue
	styles ui.Styles
	keys   *keys.KeyConfig
}

// NewCommit returns a hidden editor.
func NewCommit(repo Committer, q *queue.Queue, styles ui.Styles, k *keys.KeyConfig) *Commit {
	ta := textarea.New()
	ta.Placeholder = "commit message"
	ta.ShowLineNumbers = false
	ta.SetWidth(56)
	ta.SetHeight(6)
	return &Commit{input: ta, repo: repo, queue: q, styles: styles, keys: k}
}

// Show implements Component. The message survives hiding so an aborted
// commit can be resumed.
func (c *Commit) Show() error {
	c.input.Focus()
	return c.popup.Show()
}

// Hide implements Component.
func (c *Commit) Hide() {
	c.input.Blur()
	c.popup.Hide()
}

// Commands implements Component.
func (c *Commit) Commands(out *[]CommandInfo, _ bool) CommandBlocking {
	*out = append(*out,
		NewCommandInfo(CmdCommitConfirm(c.keys), strings.TrimSpace(c.input.Value()) != "", c.IsVisible()),
		NewCommandInfo(CmdClosePopup(c.keys), true, c.IsVisible()),
	)
	return VisibilityBlocking(c)
}

// Event implements Component. All input is swallowed while visible.
func (c *Commit) Event(msg tea.Msg) (bool, error) {
	if !c.IsVisible() {
		return false, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, c.keys.ExitPopup):
			c.Hide()
			return true, nil
		case key.Matches(k, c.keys.CommitConfirm):
			c.commit()
			return true, nil
		}
	}
	c.input, _ = c.input.Update(msg)
	return true, nil
}

func (c *Commit) commit() {
	err := c.repo.Commit(strings.TrimSpace(c.input.Value()))
	switch {
	case errors.Is(err, git.ErrEmptyMessage):
		// editor stays open with the draft
		c.queue.Push(queue.ShowErrorMsg{Msg: fmt.Sprintf("commit failed:\n%s", err)})
		return
	case err != nil:
		c.Hide()
		c.queue.Push(queue.ShowErrorMsg{Msg: fmt.Sprintf("commit failed:\n%s", err)})
		return
	}
	c.input.Reset()
	c.Hide()
	c.queue.Push(queue.Update{Flags: queue.UpdateAll})
}

// Draw renders the editor centred in the given area.
func (c *Commit) Draw(width, height int) string {
	if !c.IsVisible() {
		return ""
	}
	hint := c.styles.Muted.Render(fmt.Sprintf("%s commit · %s cancel",
		c.keys.CommitConfirm.Help().Key, c.keys.ExitPopup.Help().Key))
	content := c.styles.DialogTitle.Render("Commit") + "\n\n" + c.input.View() + "\n\n" + hint
	return ui.PlaceCentre(width, height, c.styles.Dialog.Render(content))
}
