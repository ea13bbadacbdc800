package components

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akashdeep-Patra/gitpane/internal/asyncgit"
	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
)

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(c Component, s string) {
	for _, r := range s {
		_, _ = c.Event(runeKey(string(r)))
	}
}

func drain(q *queue.Queue) []queue.InternalEvent {
	return q.Drain()
}

var errBoom = errors.New("boom")

type fakeRepo struct {
	branch    string
	branchErr error
	err       error

	staged   [][]string
	unstaged [][]string
	stageAll int
	commits  []string
	branches []string
}

func (r *fakeRepo) BranchName() (string, error) {
	if r.branchErr != nil {
		return "", r.branchErr
	}
	return r.branch, nil
}

func (r *fakeRepo) Stage(paths ...string) error {
	r.staged = append(r.staged, paths)
	return r.err
}

func (r *fakeRepo) StageAll() error {
	r.stageAll++
	return r.err
}

func (r *fakeRepo) Unstage(paths ...string) error {
	r.unstaged = append(r.unstaged, paths)
	return r.err
}

func (r *fakeRepo) Commit(message string) error {
	if message == "" {
		return git.ErrEmptyMessage
	}
	r.commits = append(r.commits, message)
	return r.err
}

func (r *fakeRepo) CreateBranch(name string) error {
	r.branches = append(r.branches, name)
	return r.err
}

type fakePushJob struct {
	requests []asyncgit.PushRequest
	reqErr   error
	pending  bool
	result   error
}

func (j *fakePushJob) Request(r asyncgit.PushRequest) error {
	if j.reqErr != nil {
		return j.reqErr
	}
	j.requests = append(j.requests, r)
	j.pending = true
	return nil
}

func (j *fakePushJob) IsPending() bool   { return j.pending }
func (j *fakePushJob) LastResult() error { return j.result }

func items(paths ...string) []git.StatusItem {
	out := make([]git.StatusItem, 0, len(paths))
	for _, p := range paths {
		out = append(out, git.StatusItem{Path: p, Code: git.StatusModified})
	}
	return out
}
