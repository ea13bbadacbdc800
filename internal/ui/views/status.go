package views

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/gitpane/internal/asyncgit"
	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/logger"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
	"github.com/Akashdeep-Patra/gitpane/internal/ui/components"
)

// ── Focus & diff target ─────────────────────────────────────────────────────

// Focus is the pane receiving input.
type Focus int

const (
	FocusWorkDir Focus = iota
	FocusDiff
	FocusStage
)

func (f Focus) String() string {
	switch f {
	case FocusWorkDir:
		return "workdir"
	case FocusDiff:
		return "diff"
	case FocusStage:
		return "stage"
	}
	return "unknown"
}

// DiffTarget is the list whose selection the diff pane shows.
type DiffTarget int

const (
	DiffTargetStage DiffTarget = iota
	DiffTargetWorkingDir
)

// ── Collaborators ───────────────────────────────────────────────────────────

// DiffJob computes diffs in the background.
type DiffJob interface {
	Request(p asyncgit.DiffParams) (*git.FileDiff, error)
	Last() (asyncgit.DiffParams, *git.FileDiff, bool)
	Refresh() error
	IsPending() bool
}

// StatusJob fetches one status listing in the background.
type StatusJob interface {
	Fetch(p asyncgit.StatusParams) error
	Last() git.Status
	LastResult() error
	IsPending() bool
}

// Repo is the synchronous git surface of the status screen.
type Repo interface {
	components.ChangesRepo
	ResetWorkdir(path string) error
}

// ── Status ──────────────────────────────────────────────────────────────────

// Status is the main screen: unstaged and staged file lists on the left,
// the diff of the selected file on the right.
//
//	┌─ Unstaged Changes ─┐┌─ Diff ──────────────────┐
//	│  M main.go         ││ @@ -1,3 +1,3 @@         │
//	└────────────────────┘│ -old                    │
//	┌─ Staged Changes ───┐│ +new                    │
//	│  A new.go          ││                         │
//	└────────────────────┘└─────────────────────────┘
//
// The diff follows the selection of the list matching the diff target, which
// keeps its value while the diff pane has focus.
type Status struct {
	visible    bool
	focus      Focus
	diffTarget DiffTarget

	index   *components.Changes
	indexWD *components.Changes
	diff    *components.Diff

	gitDiff     DiffJob
	gitWorkDir  StatusJob
	gitStage    StatusJob
	untracked   bool
	repo        Repo
	queue       *queue.Queue
	keys        *keys.KeyConfig
	log         *slog.Logger
	wdErrShown  string
	stgErrShown string

	// set when a child consumed input; the next completed status refresh
	// may move focus once
	gitActionExecuted bool
}

// NewStatus returns the status screen with the unstaged list focused.
func NewStatus(
	q *queue.Queue,
	repo Repo,
	diffJob DiffJob,
	workDirJob, stageJob StatusJob,
	styles ui.Styles,
	k *keys.KeyConfig,
	includeUntracked bool,
) *Status {
	return &Status{
		visible:    true,
		focus:      FocusWorkDir,
		diffTarget: DiffTargetWorkingDir,
		indexWD:    components.NewChanges("Unstaged Changes", true, true, q, repo, styles, k),
		index:      components.NewChanges("Staged Changes", false, false, q, repo, styles, k),
		diff:       components.NewDiff(styles, k),
		gitDiff:    diffJob,
		gitWorkDir: workDirJob,
		gitStage:   stageJob,
		untracked:  includeUntracked,
		repo:       repo,
		queue:      q,
		keys:       k,
		log:        logger.Component("status"),
	}
}

// components lists the children in event priority order.
func (s *Status) components() []components.Component {
	return []components.Component{s.index, s.indexWD, s.diff}
}

// CurrentFocus returns the focused pane.
func (s *Status) CurrentFocus() Focus { return s.focus }

// DiffTarget returns the list the diff pane follows.
func (s *Status) DiffTarget() DiffTarget { return s.diffTarget }

// WorkDir returns the unstaged list.
func (s *Status) WorkDir() *components.Changes { return s.indexWD }

// Stage returns the staged list.
func (s *Status) Stage() *components.Changes { return s.index }

// Diff returns the diff pane.
func (s *Status) Diff() *components.Diff { return s.diff }

func (s *Status) canFocusDiff() bool {
	switch s.focus {
	case FocusWorkDir:
		return s.indexWD.IsFileSelected()
	case FocusStage:
		return s.index.IsFileSelected()
	}
	return false
}

func (s *Status) switchFocus(f Focus) bool {
	if s.focus == f {
		return false
	}
	s.log.Debug("focus", "from", s.focus.String(), "to", f.String())
	s.focus = f

	switch f {
	case FocusWorkDir:
		s.setDiffTarget(DiffTargetWorkingDir)
		s.diff.Focus(false)
	case FocusStage:
		s.setDiffTarget(DiffTargetStage)
		s.diff.Focus(false)
	case FocusDiff:
		s.index.Focus(false)
		s.indexWD.Focus(false)
		s.diff.Focus(true)
	}

	s.UpdateDiff()
	return true
}

func (s *Status) setDiffTarget(t DiffTarget) {
	s.diffTarget = t
	isStage := t == DiffTargetStage
	s.indexWD.FocusSelect(!isStage)
	s.index.FocusSelect(isStage)
}

// SelectedPath returns the file the diff pane follows and whether it is the
// staged version.
func (s *Status) SelectedPath() (path string, isStage bool, ok bool) {
	list := s.indexWD
	if s.diffTarget == DiffTargetStage {
		list, isStage = s.index, true
	}
	item, ok := list.Selection()
	if !ok {
		return "", false, false
	}
	return item.Path, isStage, true
}

// ── Refresh ─────────────────────────────────────────────────────────────────

// Update starts fetching diff and both status listings. Results arrive
// through UpdateGit.
func (s *Status) Update() error {
	if !s.visible {
		return nil
	}
	if err := s.gitDiff.Refresh(); err != nil {
		return err
	}
	if err := s.gitWorkDir.Fetch(asyncgit.StatusParams{Type: git.StatusWorkingDir, IncludeUntracked: s.untracked}); err != nil {
		return err
	}
	if err := s.gitStage.Fetch(asyncgit.StatusParams{Type: git.StatusStage, IncludeUntracked: s.untracked}); err != nil {
		return err
	}
	return s.indexWD.Update()
}

// AnythingPending reports whether a background job is still running.
func (s *Status) AnythingPending() bool {
	return s.gitDiff.IsPending() || s.gitStage.IsPending() || s.gitWorkDir.IsPending()
}

// UpdateGit handles a completed background job.
func (s *Status) UpdateGit(n asyncgit.Notification) {
	switch n {
	case asyncgit.NotificationDiff:
		s.UpdateDiff()
	case asyncgit.NotificationStatus:
		s.updateStatus()
	}
}

func (s *Status) updateStatus() {
	stage := s.gitStage.Last()
	s.index.SetItems(stage.Items)

	workDir := s.gitWorkDir.Last()
	s.indexWD.SetItems(workDir.Items)

	s.reportStatusError(&s.stgErrShown, s.gitStage.LastResult())
	s.reportStatusError(&s.wdErrShown, s.gitWorkDir.LastResult())

	s.UpdateDiff()

	// both listings must be current before judging emptiness
	if !s.gitActionExecuted || s.gitStage.IsPending() || s.gitWorkDir.IsPending() {
		return
	}
	s.gitActionExecuted = false

	switch {
	case s.focus == FocusWorkDir && len(workDir.Items) == 0 && len(stage.Items) > 0:
		s.switchFocus(FocusStage)
	case s.focus == FocusStage && len(stage.Items) == 0:
		s.switchFocus(FocusWorkDir)
	}
}

// reportStatusError surfaces err once; the same failure on later polls
// stays quiet.
func (s *Status) reportStatusError(shown *string, err error) {
	if err == nil {
		*shown = ""
		return
	}
	if *shown == err.Error() {
		return
	}
	*shown = err.Error()
	s.queue.Push(queue.ShowErrorMsg{Msg: fmt.Sprintf("status failed:\n%s", err)})
}

// UpdateDiff brings the diff pane in line with the selection. When the pane
// already shows the selected file, the last computed diff is shown again
// without a new request.
func (s *Status) UpdateDiff() {
	path, isStage, ok := s.SelectedPath()
	if !ok {
		s.diff.Clear(false)
		return
	}

	params := asyncgit.DiffParams{Path: path, Type: asyncgit.DiffWorkDir}
	if isStage {
		params.Type = asyncgit.DiffStage
	}

	if curPath, curStage := s.diff.Current(); curPath == path && curStage == isStage {
		if last, d, ok := s.gitDiff.Last(); ok && last == params {
			s.diff.Update(path, isStage, *d)
		}
		return
	}

	d, err := s.gitDiff.Request(params)
	switch {
	case err != nil:
		s.log.Warn("diff request failed", "path", path, "stage", isStage, "error", err)
		s.diff.ShowError(path, isStage, err)
	case d != nil:
		s.diff.Update(path, isStage, *d)
	default:
		s.diff.Clear(true)
	}
}

// ── Actions ─────────────────────────────────────────────────────────────────

// Reset discards the working tree changes of item after confirmation. It
// reports whether the reset succeeded.
func (s *Status) Reset(item queue.ResetItem) bool {
	if err := s.repo.ResetWorkdir(item.Path); err != nil {
		s.queue.Push(queue.ShowErrorMsg{Msg: fmt.Sprintf("reset failed:\n%s", err)})
		return false
	}
	return true
}

func (s *Status) push() {
	if branch, ok := s.indexWD.BranchName(); ok {
		s.queue.Push(queue.Push{Branch: "refs/heads/" + branch})
	}
}

// ── Component ───────────────────────────────────────────────────────────────

// Commands implements components.Component.
func (s *Status) Commands(out *[]components.CommandInfo, forceAll bool) components.CommandBlocking {
	if s.visible || forceAll {
		components.CommandPump(out, forceAll, s.components())
	}

	focusOnDiff := s.focus == FocusDiff
	*out = append(*out,
		components.NewCommandInfo(components.CmdEditItem(s.keys), focusOnDiff || s.canFocusDiff(), s.visible || forceAll),
		components.NewCommandInfo(components.CmdFocusLeft(s.keys), true, (s.visible && focusOnDiff) || forceAll),
		components.NewCommandInfo(components.CmdFocusRight(s.keys), s.canFocusDiff(), (s.visible && !focusOnDiff) || forceAll),
		components.NewCommandInfo(components.CmdCreateBranch(s.keys), true, true),
	)
	_, hasBranch := s.indexWD.BranchName()
	*out = append(*out,
		components.NewCommandInfo(components.CmdStatusPush(s.keys), hasBranch, true),
		components.NewCommandInfo(components.CmdSelectStatus(s.keys), true, (s.visible && focusOnDiff) || forceAll).Hidden(),
		components.NewCommandInfo(components.CmdSelectStaging(s.keys), true, (s.visible && s.focus == FocusWorkDir) || forceAll).
			WithOrder(components.OrderNav),
		components.NewCommandInfo(components.CmdSelectUnstaged(s.keys), true, (s.visible && s.focus == FocusStage) || forceAll).
			WithOrder(components.OrderNav),
	)

	return components.VisibilityBlocking(s)
}

// Event implements components.Component.
func (s *Status) Event(msg tea.Msg) (bool, error) {
	if !s.visible {
		return false, nil
	}
	consumed, err := components.EventPump(msg, s.components())
	if err != nil {
		return false, err
	}
	if consumed {
		s.gitActionExecuted = true
		return true, nil
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch {
	case key.Matches(k, s.keys.FocusWorkDir):
		return s.switchFocus(FocusWorkDir), nil
	case key.Matches(k, s.keys.FocusStage):
		return s.switchFocus(FocusStage), nil
	case key.Matches(k, s.keys.EditFile) && (s.canFocusDiff() || s.focus == FocusDiff):
		if path, _, ok := s.SelectedPath(); ok {
			s.queue.Push(queue.OpenExternalEditor{Path: path})
		}
		return true, nil
	case key.Matches(k, s.keys.FocusRight) && s.canFocusDiff():
		return s.switchFocus(FocusDiff), nil
	case key.Matches(k, s.keys.FocusLeft):
		if s.diffTarget == DiffTargetStage {
			return s.switchFocus(FocusStage), nil
		}
		return s.switchFocus(FocusWorkDir), nil
	case key.Matches(k, s.keys.MoveDown) && s.focus == FocusWorkDir && !s.index.IsEmpty():
		return s.switchFocus(FocusStage), nil
	case key.Matches(k, s.keys.MoveUp) && s.focus == FocusStage && !s.indexWD.IsEmpty():
		return s.switchFocus(FocusWorkDir), nil
	case key.Matches(k, s.keys.CreateBranch):
		s.queue.Push(queue.CreateBranch{})
		return true, nil
	case key.Matches(k, s.keys.Push):
		s.push()
		return true, nil
	}
	return false, nil
}

// Focused implements components.Component. The screen itself never holds
// focus; its panes do.
func (s *Status) Focused() bool { return false }

// Focus implements components.Component.
func (s *Status) Focus(bool) {}

// IsVisible implements components.Component.
func (s *Status) IsVisible() bool { return s.visible }

// Hide implements components.Component.
func (s *Status) Hide() { s.visible = false }

// Show implements components.Component and refreshes the screen.
func (s *Status) Show() error {
	s.visible = true
	return s.Update()
}

// Draw renders the three panes into width x height cells.
func (s *Status) Draw(width, height int) string {
	leftPct := 50
	if s.focus == FocusDiff {
		leftPct = 30
	}
	leftW, rightW := ui.Split(width, leftPct)

	topPct := 60
	if s.diffTarget == DiffTargetStage {
		topPct = 40
	}
	topH, bottomH := ui.Split(height, topPct)

	left := lipgloss.JoinVertical(lipgloss.Left,
		s.indexWD.Draw(leftW, topH),
		s.index.Draw(leftW, bottomH),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, s.diff.Draw(rightW, height))
}
