package app

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashdeep-Patra/gitpane/internal/asyncgit"
	"github.com/Akashdeep-Patra/gitpane/internal/common"
	"github.com/Akashdeep-Patra/gitpane/internal/config"
	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
	"github.com/Akashdeep-Patra/gitpane/internal/ui/views"
)

// fakeRepo is an in-memory repository. Background workers read it
// concurrently with the test goroutine.
type fakeRepo struct {
	mu       sync.Mutex
	root     string
	branch   string
	workDir  []git.StatusItem
	stage    []git.StatusItem
	stageErr error
	pushes   []string
	resets   []string
	commits  []string
	branches []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		root:    "/repo",
		branch:  "main",
		workDir: []git.StatusItem{{Path: "a.go", Code: git.StatusModified}},
	}
}

func (r *fakeRepo) RepoRoot() string { return r.root }
func (r *fakeRepo) GitDir() string   { return r.root + "/.git" }
func (r *fakeRepo) Head() (string, error) {
	return "0123456789abcdef", nil
}

func (r *fakeRepo) BranchName() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.branch == "" {
		return "", git.ErrDetachedHead
	}
	return r.branch, nil
}

func (r *fakeRepo) Status(t git.StatusType, _ bool) ([]git.StatusItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t == git.StatusStage {
		return append([]git.StatusItem(nil), r.stage...), nil
	}
	return append([]git.StatusItem(nil), r.workDir...), nil
}

func (r *fakeRepo) Stage(paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stageErr != nil {
		return r.stageErr
	}
	for _, p := range paths {
		for i, it := range r.workDir {
			if it.Path == p {
				r.workDir = append(r.workDir[:i], r.workDir[i+1:]...)
				r.stage = append(r.stage, it)
				break
			}
		}
	}
	return nil
}

func (r *fakeRepo) StageAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stage = append(r.stage, r.workDir...)
	r.workDir = nil
	return nil
}

func (r *fakeRepo) Unstage(paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range paths {
		for i, it := range r.stage {
			if it.Path == p {
				r.stage = append(r.stage[:i], r.stage[i+1:]...)
				r.workDir = append(r.workDir, it)
				break
			}
		}
	}
	return nil
}

func (r *fakeRepo) ResetWorkdir(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets = append(r.resets, path)
	for i, it := range r.workDir {
		if it.Path == path {
			r.workDir = append(r.workDir[:i], r.workDir[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRepo) Diff(path string, _ bool) (git.FileDiff, error) {
	return git.FileDiff{
		Hunks: []git.Hunk{{
			Header: "@@ -1 +1 @@",
			Lines: []git.DiffLine{
				{Kind: git.DiffHeader, Content: "@@ -1 +1 @@"},
				{Kind: git.DiffDelete, Content: "old " + path, OldLine: 1},
				{Kind: git.DiffAdd, Content: "new " + path, NewLine: 1},
			},
		}},
		Lines: 3,
	}, nil
}

func (r *fakeRepo) Commit(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, message)
	r.stage = nil
	return nil
}

func (r *fakeRepo) CreateBranch(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.branches = append(r.branches, name)
	return nil
}

func (r *fakeRepo) Push(remote, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = append(r.pushes, remote+" "+ref)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.PollInterval = 0
	return cfg
}

func newTestModel(t *testing.T, repo *fakeRepo) *Model {
	t.Helper()
	m := New(repo, testConfig(), keys.Default())
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m
}

func (m *Model) busy() bool {
	return m.status.AnythingPending() || m.push.Pending()
}

// settle feeds background notifications to the model until no job is left
// and the channel stays quiet. A job stops counting as pending just before
// its notification is sent, hence the quiet period.
func settle(t *testing.T, m *Model) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case n := <-m.notifications:
			m.Update(common.NotificationMsg{Notification: n})
		case <-time.After(30 * time.Millisecond):
			if !m.busy() {
				return
			}
		case <-deadline:
			t.Fatal("background jobs did not finish")
		}
	}
}

func press(t *testing.T, m *Model, k tea.KeyMsg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(k)
	settle(t, m)
	return cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, repo *fakeRepo) *Model {
	t.Helper()
	m := newTestModel(t, repo)
	m.Update(common.RefreshMsg{})
	settle(t, m)
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestViewEmptyBeforeSize(t *testing.T) {
	m := New(newFakeRepo(), testConfig(), keys.Default())
	defer m.Close()
	assert.Equal(t, "", m.View())
	assert.NotNil(t, m.Init())
}

func TestRefreshLoadsListsAndDiff(t *testing.T) {
	repo := newFakeRepo()
	repo.stage = []git.StatusItem{{Path: "b.go", Code: git.StatusAdded}}
	m := loaded(t, repo)

	require.Len(t, m.status.WorkDir().Items(), 1)
	require.Len(t, m.status.Stage().Items(), 1)

	path, isStage := m.status.Diff().Current()
	assert.Equal(t, "a.go", path)
	assert.False(t, isStage)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Unstaged Changes (1)")
	assert.Contains(t, out, "Staged Changes (1)")
	assert.Contains(t, out, "new a.go")
	assert.Contains(t, out, "main")
	assert.Len(t, strings.Split(m.View(), "\n"), 30)
}

func TestSelectionMoveUpdatesDiff(t *testing.T) {
	repo := newFakeRepo()
	repo.workDir = append(repo.workDir, git.StatusItem{Path: "b.go", Code: git.StatusModified})
	m := loaded(t, repo)

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	path, _ := m.status.Diff().Current()
	assert.Equal(t, "b.go", path)
	assert.Contains(t, ansi.Strip(m.View()), "new b.go")
}

func TestStagingLastFileMovesFocusToStage(t *testing.T) {
	m := loaded(t, newFakeRepo())
	require.Equal(t, views.FocusWorkDir, m.status.CurrentFocus())

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.status.WorkDir().Items())
	require.Len(t, m.status.Stage().Items(), 1)
	assert.Equal(t, views.FocusStage, m.status.CurrentFocus())
	path, isStage := m.status.Diff().Current()
	assert.Equal(t, "a.go", path)
	assert.True(t, isStage)
}

func TestEventErrorOpensMessage(t *testing.T) {
	repo := newFakeRepo()
	repo.stageErr = errors.New("index.lock exists")
	m := loaded(t, repo)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.msg.IsVisible())
	assert.Contains(t, m.msg.Message(), "index.lock exists")
	assert.Contains(t, ansi.Strip(m.View()), "index.lock exists")

	// the message owns input, quit included
	cmd := press(t, m, runeKey("q"))
	assert.False(t, isQuit(cmd))
	assert.True(t, m.msg.IsVisible())

	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.msg.IsVisible())
}

func TestRefreshFailureOpensMessage(t *testing.T) {
	m := loaded(t, newFakeRepo())
	m.workers.Close()

	m.queue.Push(queue.Update{Flags: queue.UpdateAll})
	m.processQueue()

	require.True(t, m.msg.IsVisible())
	assert.Contains(t, m.msg.Message(), asyncgit.ErrClosed.Error())
	assert.Zero(t, m.queue.Len())
}

func TestResetAfterConfirmation(t *testing.T) {
	repo := newFakeRepo()
	m := loaded(t, repo)

	press(t, m, runeKey("D"))
	require.True(t, m.reset.IsVisible())
	assert.Empty(t, repo.resets)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.reset.IsVisible())
	assert.Equal(t, []string{"a.go"}, repo.resets)
	assert.Empty(t, m.status.WorkDir().Items())
}

func TestCommitFlow(t *testing.T) {
	repo := newFakeRepo()
	repo.workDir = nil
	repo.stage = []git.StatusItem{{Path: "b.go", Code: git.StatusAdded}}
	m := loaded(t, repo)

	press(t, m, runeKey("s"))
	require.Equal(t, views.FocusStage, m.status.CurrentFocus())

	press(t, m, runeKey("c"))
	require.True(t, m.commit.IsVisible())
	for _, r := range "add b" {
		press(t, m, runeKey(string(r)))
	}
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.False(t, m.commit.IsVisible())
	assert.Equal(t, []string{"add b"}, repo.commits)
	assert.Empty(t, m.status.Stage().Items())
}

func TestCreateBranchFlow(t *testing.T) {
	repo := newFakeRepo()
	m := loaded(t, repo)

	press(t, m, runeKey("b"))
	require.True(t, m.createBranch.IsVisible())
	for _, r := range "topic" {
		press(t, m, runeKey(string(r)))
	}
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.createBranch.IsVisible())
	assert.Equal(t, []string{"topic"}, repo.branches)
}

func TestPushRunsInBackground(t *testing.T) {
	repo := newFakeRepo()
	m := loaded(t, repo)

	_, _ = m.Update(runeKey("p"))
	assert.True(t, m.push.IsVisible())
	settle(t, m)

	assert.False(t, m.push.IsVisible())
	assert.Equal(t, []string{"origin refs/heads/main"}, repo.pushes)
	assert.False(t, m.msg.IsVisible())
}

func TestHelpListsCommands(t *testing.T) {
	m := loaded(t, newFakeRepo())

	press(t, m, runeKey("?"))
	require.True(t, m.help.IsVisible())
	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Navigation")
	assert.Contains(t, out, "Quit [q]")

	cmd := press(t, m, runeKey("q"))
	assert.False(t, isQuit(cmd))
	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.help.IsVisible())
}

func TestQuit(t *testing.T) {
	m := loaded(t, newFakeRepo())
	cmd := press(t, m, runeKey("q"))
	assert.True(t, isQuit(cmd))
}

func TestEditorFinishedRefreshes(t *testing.T) {
	repo := newFakeRepo()
	m := loaded(t, repo)

	repo.mu.Lock()
	repo.workDir = append(repo.workDir, git.StatusItem{Path: "c.go", Code: git.StatusModified})
	repo.mu.Unlock()

	m.Update(common.EditorFinishedMsg{Err: errors.New("exit status 1")})
	settle(t, m)
	assert.Len(t, m.status.WorkDir().Items(), 2)
	require.True(t, m.msg.IsVisible())
	assert.Contains(t, m.msg.Message(), "editor failed")
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("GIT_EDITOR", "")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano")

	m := newTestModel(t, newFakeRepo())
	assert.Equal(t, "nano", m.editorCommand())

	m.cfg.Editor = "code --wait"
	assert.Equal(t, "code --wait", m.editorCommand())
	assert.NotNil(t, m.openEditor("a.go"))

	m.cfg.Editor = ""
	t.Setenv("EDITOR", "")
	assert.Equal(t, "vi", m.editorCommand())
}

func quitAvailable(m *Model) bool {
	for _, c := range m.commands(false) {
		if strings.HasPrefix(c.Text.Name, "Quit") {
			return c.Available
		}
	}
	return false
}

func TestCommandBarHidesQuitUnderPopup(t *testing.T) {
	m := loaded(t, newFakeRepo())
	assert.True(t, quitAvailable(m))

	press(t, m, runeKey("D"))
	assert.False(t, quitAvailable(m))
}

func TestProgramEndToEnd(t *testing.T) {
	m := New(newFakeRepo(), testConfig(), keys.Default())
	defer m.Close()

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 30))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return strings.Contains(ansi.Strip(string(b)), "a.go")
	}, teatest.WithCheckInterval(20*time.Millisecond), teatest.WithDuration(3*time.Second))

	tm.Send(runeKey("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final, ok := tm.FinalModel(t).(*Model)
	require.True(t, ok)
	assert.Len(t, final.status.WorkDir().Items(), 1)
}
