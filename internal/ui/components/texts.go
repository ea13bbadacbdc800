package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/Akashdeep-Patra/gitpane/internal/keys"
)

// Help groups.
const (
	GroupNavigation = "Navigation"
	GroupChanges    = "Changes"
	GroupDiff       = "Diff"
	GroupBranch     = "Branch"
	GroupGeneral    = "General"
)

func text(b key.Binding, name, desc, group string) CommandText {
	return CommandText{
		Name:  fmt.Sprintf("%s [%s]", name, b.Help().Key),
		Desc:  desc,
		Group: group,
	}
}

// CmdFocusRight moves focus to the diff pane.
func CmdFocusRight(k *keys.KeyConfig) CommandText {
	return text(k.FocusRight, "Diff", "focus the diff of the selected file", GroupNavigation)
}

// CmdFocusLeft moves focus back to the file list.
func CmdFocusLeft(k *keys.KeyConfig) CommandText {
	return text(k.FocusLeft, "Back", "return focus to the file list", GroupNavigation)
}

// CmdSelectUnstaged focuses the working directory list.
func CmdSelectUnstaged(k *keys.KeyConfig) CommandText {
	return text(k.FocusWorkDir, "Unstaged", "focus the unstaged changes", GroupNavigation)
}

// CmdSelectStaging focuses the stage list.
func CmdSelectStaging(k *keys.KeyConfig) CommandText {
	return text(k.FocusStage, "Staged", "focus the staged changes", GroupNavigation)
}

// CmdSelectStatus switches between the two lists with the arrow keys.
func CmdSelectStatus(k *keys.KeyConfig) CommandText {
	return CommandText{
		Name:  fmt.Sprintf("Focus [%s,%s]", k.MoveUp.Help().Key, k.MoveDown.Help().Key),
		Desc:  "move between staged and unstaged lists",
		Group: GroupNavigation,
	}
}

// CmdEditItem opens the selected file in the external editor.
func CmdEditItem(k *keys.KeyConfig) CommandText {
	return text(k.EditFile, "Edit", "open the selected file in $EDITOR", GroupChanges)
}

// CmdStageItem stages the selected file.
func CmdStageItem(k *keys.KeyConfig) CommandText {
	return text(k.Enter, "Stage", "stage the selected file", GroupChanges)
}

// CmdUnstageItem unstages the selected file.
func CmdUnstageItem(k *keys.KeyConfig) CommandText {
	return text(k.Enter, "Unstage", "remove the selected file from the index", GroupChanges)
}

// CmdStageAll stages every change.
func CmdStageAll(k *keys.KeyConfig) CommandText {
	return text(k.StageAll, "Stage All", "stage all changes", GroupChanges)
}

// CmdResetItem discards working tree changes of the selected file.
func CmdResetItem(k *keys.KeyConfig) CommandText {
	return text(k.ResetItem, "Reset", "discard changes of the selected file", GroupChanges)
}

// CmdCommitOpen opens the commit message editor.
func CmdCommitOpen(k *keys.KeyConfig) CommandText {
	return text(k.OpenCommit, "Commit", "commit the staged changes", GroupChanges)
}

// CmdCommitConfirm creates the commit.
func CmdCommitConfirm(k *keys.KeyConfig) CommandText {
	return text(k.CommitConfirm, "Commit", "create the commit", GroupChanges)
}

// CmdNavigateList moves the list selection.
func CmdNavigateList(k *keys.KeyConfig) CommandText {
	return CommandText{
		Name:  fmt.Sprintf("Move [%s,%s]", k.MoveUp.Help().Key, k.MoveDown.Help().Key),
		Desc:  "move the selection",
		Group: GroupNavigation,
	}
}

// CmdScroll scrolls the diff.
func CmdScroll(k *keys.KeyConfig) CommandText {
	return CommandText{
		Name:  fmt.Sprintf("Scroll [%s,%s]", k.MoveUp.Help().Key, k.MoveDown.Help().Key),
		Desc:  "scroll the diff",
		Group: GroupDiff,
	}
}

// CmdToggleSideBySide switches between unified and split diff.
func CmdToggleSideBySide(k *keys.KeyConfig) CommandText {
	return text(k.ToggleSideDiff, "Split", "toggle side-by-side diff", GroupDiff)
}

// CmdCreateBranch opens the branch name prompt.
func CmdCreateBranch(k *keys.KeyConfig) CommandText {
	return text(k.CreateBranch, "Branch", "create and check out a new branch", GroupBranch)
}

// CmdCreateBranchConfirm creates the branch.
func CmdCreateBranchConfirm(k *keys.KeyConfig) CommandText {
	return text(k.Enter, "Create", "create the branch", GroupBranch)
}

// CmdStatusPush pushes the current branch.
func CmdStatusPush(k *keys.KeyConfig) CommandText {
	return text(k.Push, "Push", "push the current branch", GroupBranch)
}

// CmdConfirmAction confirms a prompt.
func CmdConfirmAction(k *keys.KeyConfig) CommandText {
	return text(k.Enter, "Confirm", "confirm the action", GroupGeneral)
}

// CmdCloseMsg closes a popup.
func CmdCloseMsg(k *keys.KeyConfig) CommandText {
	return text(k.Enter, "Close", "close the popup", GroupGeneral)
}

// CmdClosePopup cancels a popup.
func CmdClosePopup(k *keys.KeyConfig) CommandText {
	return text(k.ExitPopup, "Close", "cancel", GroupGeneral)
}

// CmdHelpOpen shows the help screen.
func CmdHelpOpen(k *keys.KeyConfig) CommandText {
	return text(k.OpenHelp, "Help", "list all commands", GroupGeneral)
}

// CmdQuit exits the application.
func CmdQuit(k *keys.KeyConfig) CommandText {
	return text(k.Quit, "Quit", "exit", GroupGeneral)
}
