package components

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

func newTestChanges(workDir, focus bool) (*Changes, *fakeRepo, *queue.Queue) {
	repo := &fakeRepo{branch: "main"}
	q := queue.New()
	c := NewChanges("Unstaged Changes", focus, workDir, q, repo, ui.DefaultStyles(), keys.Default())
	return c, repo, q
}

func TestChangesSetItemsSelection(t *testing.T) {
	c, _, _ := newTestChanges(true, true)
	assert.False(t, c.IsFileSelected())

	c.SetItems(items("a", "b", "c"))
	assert.Equal(t, "a", c.SelectionPath())

	consumed, err := c.Event(keyDown)
	require.NoError(t, err)
	require.True(t, consumed)
	assert.Equal(t, "b", c.SelectionPath())

	// selected path survives reordering
	c.SetItems(items("c", "b"))
	assert.Equal(t, "b", c.SelectionPath())

	// gone: index is clamped
	c.SetItems(items("x"))
	assert.Equal(t, "x", c.SelectionPath())

	c.SetItems(nil)
	assert.False(t, c.IsFileSelected())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "", c.SelectionPath())
}

func TestChangesMoveConsumedOnlyWhenMoved(t *testing.T) {
	c, _, q := newTestChanges(true, true)
	c.SetItems(items("a", "b"))

	consumed, _ := c.Event(keyUp)
	assert.False(t, consumed, "already at the top")

	consumed, _ = c.Event(runeKey("j"))
	assert.True(t, consumed)
	consumed, _ = c.Event(keyDown)
	assert.False(t, consumed, "already at the bottom")

	consumed, _ = c.Event(runeKey("g"))
	assert.True(t, consumed)
	assert.Equal(t, "a", c.SelectionPath())
	consumed, _ = c.Event(runeKey("G"))
	assert.True(t, consumed)
	assert.Equal(t, "b", c.SelectionPath())

	// one diff update per actual move
	events := drain(q)
	assert.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, queue.Update{Flags: queue.UpdateDiff}, ev)
	}
}

func TestChangesIgnoresInputWhenUnfocused(t *testing.T) {
	c, repo, q := newTestChanges(true, false)
	c.SetItems(items("a", "b"))

	consumed, err := c.Event(keyDown)
	require.NoError(t, err)
	assert.False(t, consumed)
	consumed, _ = c.Event(keyEnter)
	assert.False(t, consumed)
	assert.Empty(t, repo.staged)
	assert.Zero(t, q.Len())
}

func TestChangesEnterStagesInWorkDir(t *testing.T) {
	c, repo, q := newTestChanges(true, true)
	c.SetItems(items("a.go"))

	consumed, err := c.Event(keyEnter)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, [][]string{{"a.go"}}, repo.staged)
	assert.Equal(t, []queue.InternalEvent{queue.Update{Flags: queue.UpdateAll}}, drain(q))
}

func TestChangesEnterUnstagesInStage(t *testing.T) {
	c, repo, q := newTestChanges(false, true)
	c.SetItems([]git.StatusItem{{Path: "new.go", OrigPath: "old.go", Code: git.StatusRenamed}})

	consumed, err := c.Event(keyEnter)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, [][]string{{"new.go", "old.go"}}, repo.unstaged)
	assert.Len(t, drain(q), 1)
}

func TestChangesStageErrorPropagates(t *testing.T) {
	c, repo, q := newTestChanges(true, true)
	repo.err = errBoom
	c.SetItems(items("a.go"))

	consumed, err := c.Event(keyEnter)
	assert.True(t, consumed)
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, q.Len())
}

func TestChangesEnterWithoutSelection(t *testing.T) {
	c, repo, _ := newTestChanges(true, true)
	consumed, err := c.Event(keyEnter)
	require.NoError(t, err)
	assert.False(t, consumed)
	assert.Empty(t, repo.staged)
}

func TestChangesStageAll(t *testing.T) {
	c, repo, q := newTestChanges(true, true)
	consumed, _ := c.Event(runeKey("a"))
	assert.False(t, consumed, "nothing to stage")

	c.SetItems(items("a", "b"))
	consumed, err := c.Event(runeKey("a"))
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, 1, repo.stageAll)
	assert.Len(t, drain(q), 1)
}

func TestChangesResetAsksForConfirmation(t *testing.T) {
	c, _, q := newTestChanges(true, true)
	c.SetItems(items("a.go"))

	consumed, err := c.Event(runeKey("D"))
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, []queue.InternalEvent{
		queue.ConfirmResetItem{Item: queue.ResetItem{Path: "a.go"}},
	}, drain(q))

	stage, _, sq := newTestChanges(false, true)
	stage.SetItems(items("a.go"))
	consumed, _ = stage.Event(runeKey("D"))
	assert.False(t, consumed, "the stage list does not reset")
	assert.Zero(t, sq.Len())
}

func TestChangesCommitFromStage(t *testing.T) {
	c, _, q := newTestChanges(false, true)
	consumed, _ := c.Event(runeKey("c"))
	assert.False(t, consumed, "nothing staged")

	c.SetItems(items("a.go"))
	consumed, _ = c.Event(runeKey("c"))
	assert.True(t, consumed)
	assert.Equal(t, []queue.InternalEvent{queue.OpenCommit{}}, drain(q))
}

func TestChangesBranchName(t *testing.T) {
	c, repo, _ := newTestChanges(true, true)
	_, ok := c.BranchName()
	assert.False(t, ok)

	require.NoError(t, c.Update())
	name, ok := c.BranchName()
	assert.True(t, ok)
	assert.Equal(t, "main", name)

	repo.branchErr = git.ErrDetachedHead
	require.NoError(t, c.Update())
	_, ok = c.BranchName()
	assert.False(t, ok)
}

func TestChangesFocusSelect(t *testing.T) {
	c, _, _ := newTestChanges(true, false)
	assert.False(t, c.Focused())
	assert.False(t, c.showSelection)

	c.FocusSelect(true)
	assert.True(t, c.Focused())
	assert.True(t, c.showSelection)

	c.Focus(false)
	assert.False(t, c.Focused())
	assert.True(t, c.showSelection, "plain focus keeps the highlight")
}

func TestChangesCommands(t *testing.T) {
	c, _, _ := newTestChanges(true, true)
	var out []CommandInfo
	assert.Equal(t, PassingOn, c.Commands(&out, false))
	require.Len(t, out, 3)
	for _, cmd := range out {
		assert.True(t, cmd.Available)
		assert.False(t, cmd.Enabled, "nothing selected")
	}

	c.SetItems(items("a"))
	c.Focus(false)
	out = nil
	c.Commands(&out, false)
	for _, cmd := range out {
		assert.True(t, cmd.Enabled)
		assert.False(t, cmd.Available)
	}

	out = nil
	c.Commands(&out, true)
	for _, cmd := range out {
		assert.True(t, cmd.Available)
	}

	stage, _, _ := newTestChanges(false, true)
	out = nil
	stage.Commands(&out, false)
	require.Len(t, out, 2)
	assert.Equal(t, -1, out[1].Order)
}

func TestChangesDraw(t *testing.T) {
	c, _, _ := newTestChanges(true, true)
	out := ansi.Strip(c.Draw(40, 8))
	assert.Contains(t, out, "Unstaged Changes (0)")
	assert.Contains(t, out, "no changes")

	c.SetItems([]git.StatusItem{
		{Path: "main.go", Code: git.StatusModified},
		{Path: "new.go", OrigPath: "old.go", Code: git.StatusRenamed},
	})
	out = ansi.Strip(c.Draw(40, 8))
	assert.Contains(t, out, "Unstaged Changes (2)")
	assert.Contains(t, out, "M main.go")
	assert.Contains(t, out, "R old.go → new.go")
}

func TestChangesDrawScrollsToSelection(t *testing.T) {
	c, _, _ := newTestChanges(true, true)
	c.SetItems(items("f0", "f1", "f2", "f3", "f4", "f5", "f6", "f7"))
	for i := 0; i < 7; i++ {
		c.Event(keyDown)
	}
	out := ansi.Strip(c.Draw(30, 6)) // three rows
	assert.Contains(t, out, "f7")
	assert.NotContains(t, out, "f0")
}
