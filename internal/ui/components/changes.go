package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

// ChangesRepo is the git surface the file lists act on.
type ChangesRepo interface {
	BranchName() (string, error)
	Stage(paths ...string) error
	StageAll() error
	Unstage(paths ...string) error
}

// Changes is one of the two file lists: working directory changes or
// staged changes.
type Changes struct {
	alwaysVisible

	title         string
	isWorkingDir  bool
	items         []git.StatusItem
	selection     int
	offset        int
	pageSize      int
	focused       bool
	showSelection bool
	branch        string

	queue  *queue.Queue
	repo   ChangesRepo
	styles ui.Styles
	keys   *keys.KeyConfig
}

// NewChanges returns an empty list. focus sets both focus and selection
// highlight.
func NewChanges(title string, focus, isWorkingDir bool, q *queue.Queue, repo ChangesRepo, styles ui.Styles, k *keys.KeyConfig) *Changes {
	return &Changes{
		title:         title,
		isWorkingDir:  isWorkingDir,
		selection:     -1,
		pageSize:      10,
		focused:       focus,
		showSelection: focus,
		queue:         q,
		repo:          repo,
		styles:        styles,
		keys:          k,
	}
}

// SetItems replaces the list. The selected path stays selected when it is
// still present; otherwise the selection index is clamped.
func (c *Changes) SetItems(items []git.StatusItem) {
	prev, hadSel := c.Selection()
	c.items = items

	if len(items) == 0 {
		c.selection = -1
		c.offset = 0
		return
	}
	if hadSel {
		for i, it := range items {
			if it.Path == prev.Path {
				c.selection = i
				return
			}
		}
	}
	switch {
	case c.selection < 0:
		c.selection = 0
	case c.selection >= len(items):
		c.selection = len(items) - 1
	}
}

// Items returns the current list.
func (c *Changes) Items() []git.StatusItem { return c.items }

// Selection returns the selected item.
func (c *Changes) Selection() (git.StatusItem, bool) {
	if c.selection < 0 || c.selection >= len(c.items) {
		return git.StatusItem{}, false
	}
	return c.items[c.selection], true
}

// SelectionPath returns the selected path, or "" when nothing is selected.
func (c *Changes) SelectionPath() string {
	it, _ := c.Selection()
	return it.Path
}

// IsFileSelected reports whether a file is selected.
func (c *Changes) IsFileSelected() bool {
	_, ok := c.Selection()
	return ok
}

// IsEmpty reports whether the list has no files.
func (c *Changes) IsEmpty() bool { return len(c.items) == 0 }

// BranchName returns the checked out branch, known after Update.
func (c *Changes) BranchName() (string, bool) {
	return c.branch, c.branch != ""
}

// Update refreshes the branch name.
func (c *Changes) Update() error {
	name, err := c.repo.BranchName()
	if err != nil {
		// detached HEAD: no branch to push
		c.branch = ""
		return nil
	}
	c.branch = name
	return nil
}

// FocusSelect sets focus and selection highlight together.
func (c *Changes) FocusSelect(focus bool) {
	c.focused = focus
	c.showSelection = focus
}

// Focused implements Component.
func (c *Changes) Focused() bool { return c.focused }

// Focus implements Component. The selection highlight is left as is.
func (c *Changes) Focus(focus bool) { c.focused = focus }

// Commands implements Component.
func (c *Changes) Commands(out *[]CommandInfo, forceAll bool) CommandBlocking {
	available := c.focused || forceAll
	selected := c.IsFileSelected()

	if c.isWorkingDir {
		*out = append(*out,
			NewCommandInfo(CmdStageItem(c.keys), selected, available),
			NewCommandInfo(CmdStageAll(c.keys), !c.IsEmpty(), available),
			NewCommandInfo(CmdResetItem(c.keys), selected, available),
		)
	} else {
		*out = append(*out,
			NewCommandInfo(CmdUnstageItem(c.keys), selected, available),
			NewCommandInfo(CmdCommitOpen(c.keys), !c.IsEmpty(), available).WithOrder(-1),
		)
	}
	return PassingOn
}

// Event implements Component. Only the focused list handles keys.
func (c *Changes) Event(msg tea.Msg) (bool, error) {
	if !c.focused {
		return false, nil
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch {
	case key.Matches(k, c.keys.MoveDown):
		return c.moveTo(c.selection + 1), nil
	case key.Matches(k, c.keys.MoveUp):
		return c.moveTo(c.selection - 1), nil
	case key.Matches(k, c.keys.PageDown):
		return c.moveTo(c.selection + c.pageSize), nil
	case key.Matches(k, c.keys.PageUp):
		return c.moveTo(c.selection - c.pageSize), nil
	case key.Matches(k, c.keys.Home):
		return c.moveTo(0), nil
	case key.Matches(k, c.keys.End):
		return c.moveTo(len(c.items) - 1), nil

	case key.Matches(k, c.keys.Enter):
		item, ok := c.Selection()
		if !ok {
			return false, nil
		}
		if err := c.indexAddRemove(item); err != nil {
			return true, err
		}
		c.queue.Push(queue.Update{Flags: queue.UpdateAll})
		return true, nil

	case c.isWorkingDir && key.Matches(k, c.keys.StageAll):
		if c.IsEmpty() {
			return false, nil
		}
		if err := c.repo.StageAll(); err != nil {
			return true, fmt.Errorf("stage all: %w", err)
		}
		c.queue.Push(queue.Update{Flags: queue.UpdateAll})
		return true, nil

	case c.isWorkingDir && key.Matches(k, c.keys.ResetItem):
		item, ok := c.Selection()
		if !ok {
			return false, nil
		}
		c.queue.Push(queue.ConfirmResetItem{Item: queue.ResetItem{Path: item.Path}})
		return true, nil

	case !c.isWorkingDir && key.Matches(k, c.keys.OpenCommit):
		if c.IsEmpty() {
			return false, nil
		}
		c.queue.Push(queue.OpenCommit{})
		return true, nil
	}
	return false, nil
}

func (c *Changes) indexAddRemove(item git.StatusItem) error {
	if c.isWorkingDir {
		if err := c.repo.Stage(item.Path); err != nil {
			return fmt.Errorf("stage %s: %w", item.Path, err)
		}
		return nil
	}
	paths := []string{item.Path}
	if item.OrigPath != "" {
		// unstaging a rename restores both sides
		paths = append(paths, item.OrigPath)
	}
	if err := c.repo.Unstage(paths...); err != nil {
		return fmt.Errorf("unstage %s: %w", item.Path, err)
	}
	return nil
}

// moveTo selects index i, clamped to the list. It reports whether the
// selection changed; a change asks for the diff to follow.
func (c *Changes) moveTo(i int) bool {
	if len(c.items) == 0 {
		return false
	}
	i = max(0, min(i, len(c.items)-1))
	if i == c.selection {
		return false
	}
	c.selection = i
	c.queue.Push(queue.Update{Flags: queue.UpdateDiff})
	return true
}

// Draw renders the list as a bordered pane.
func (c *Changes) Draw(width, height int) string {
	innerW, rows := width-2, height-3
	if rows > 0 {
		c.pageSize = rows
	}

	// keep the selection on screen
	if c.selection >= 0 {
		if c.selection < c.offset {
			c.offset = c.selection
		}
		if rows > 0 && c.selection >= c.offset+rows {
			c.offset = c.selection - rows + 1
		}
	}
	c.offset = max(0, min(c.offset, len(c.items)-1))

	body := make([]string, 0, rows)
	if len(c.items) == 0 {
		body = append(body, c.styles.Muted.Render(" no changes"))
	}
	for i := c.offset; i < len(c.items) && len(body) < rows; i++ {
		body = append(body, c.renderItem(c.items[i], i == c.selection, innerW))
	}

	title := fmt.Sprintf("%s (%d)", c.title, len(c.items))
	return renderPane(c.styles, title, c.focused, body, width, height)
}

func (c *Changes) renderItem(it git.StatusItem, selected bool, width int) string {
	code := c.codeStyle(it.Code).Render(it.Code.String())
	path := it.Path
	if it.OrigPath != "" {
		path = it.OrigPath + " → " + it.Path
	}
	path = ui.TruncateLeft(path, width-3)

	if selected && c.showSelection {
		style := c.styles.ListSelected
		if !c.focused {
			style = c.styles.ListSelectedDim
		}
		return style.Width(width).Render(" " + it.Code.String() + " " + path)
	}
	return " " + code + " " + c.styles.ListItem.Render(path)
}

func (c *Changes) codeStyle(code git.StatusCode) lipgloss.Style {
	switch code {
	case git.StatusAdded:
		return c.styles.FileAdded
	case git.StatusModified, git.StatusTypeChanged:
		return c.styles.FileModified
	case git.StatusDeleted:
		return c.styles.FileDeleted
	case git.StatusRenamed, git.StatusCopied:
		return c.styles.FileRenamed
	case git.StatusUnmerged:
		return c.styles.FileConflict
	default:
		return c.styles.FileUntracked
	}
}
