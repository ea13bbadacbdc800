package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/gitpane/internal/asyncgit"
	"github.com/Akashdeep-Patra/gitpane/internal/common"
	"github.com/Akashdeep-Patra/gitpane/internal/config"
	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/logger"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
	"github.com/Akashdeep-Patra/gitpane/internal/ui/components"
	"github.com/Akashdeep-Patra/gitpane/internal/ui/views"
)

// notificationBuffer lets a burst of finished jobs complete without waiting
// for the update loop.
const notificationBuffer = 16

// Model is the top-level Bubbletea model. It is the only place that drains
// the event queue, and all background results enter through it.
type Model struct {
	repo   git.Repository
	cfg    *config.Config
	styles ui.Styles
	keys   *keys.KeyConfig
	log    *slog.Logger

	queue         *queue.Queue
	notifications chan asyncgit.Notification
	workers       *asyncgit.Workers

	status       *views.Status
	msg          *components.Msg
	reset        *components.Reset
	createBranch *components.CreateBranch
	commit       *components.Commit
	push         *components.Push
	help         *components.Help
	spinner      spinner.Model

	width  int
	height int
}

// New creates the application model for repo.
func New(repo git.Repository, cfg *config.Config, k *keys.KeyConfig) *Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	q := queue.New()
	notifications := make(chan asyncgit.Notification, notificationBuffer)
	workers := asyncgit.NewWorkers(cfg.MaxGitJobs, notifications)

	diffJob := asyncgit.NewAsyncDiff(repo, workers, cfg.DiffCacheTTL)
	wdJob := asyncgit.NewAsyncStatus(repo, workers)
	stageJob := asyncgit.NewAsyncStatus(repo, workers)
	pushJob := asyncgit.NewAsyncPush(repo, workers)

	return &Model{
		repo:          repo,
		cfg:           cfg,
		styles:        styles,
		keys:          k,
		log:           logger.Component("app"),
		queue:         q,
		notifications: notifications,
		workers:       workers,
		status:        views.NewStatus(q, repo, diffJob, wdJob, stageJob, styles, k, cfg.IncludeUntracked),
		msg:           components.NewMsg(styles, k),
		reset:         components.NewReset(q, styles, k),
		createBranch:  components.NewCreateBranch(repo, q, styles, k),
		commit:        components.NewCommit(repo, q, styles, k),
		push:          components.NewPush(pushJob, cfg.Remote, q, styles, k),
		help:          components.NewHelp(styles, k),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
	}
}

// components lists the popups before the status screen: the first visible
// popup owns all input.
func (m *Model) components() []components.Component {
	return []components.Component{
		m.msg,
		m.reset,
		m.createBranch,
		m.commit,
		m.push,
		m.help,
		m.status,
	}
}

func (m *Model) popups() []components.Component {
	c := m.components()
	return c[:len(c)-1]
}

// Close stops background jobs. Call it after the program exits.
func (m *Model) Close() {
	m.workers.Close()
}

// Init starts the first refresh, the notification listener, and the poll.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		common.CmdRefresh,
		common.WaitForNotification(m.notifications),
		m.spinner.Tick,
	}
	if m.cfg.PollInterval > 0 {
		cmds = append(cmds, common.Tick(m.cfg.PollInterval))
	}
	return tea.Batch(cmds...)
}

// Update processes messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case common.NotificationMsg:
		m.log.Debug("notification", "kind", msg.Notification.String())
		m.status.UpdateGit(msg.Notification)
		m.push.UpdateGit(msg.Notification)
		return m, tea.Batch(m.processQueue(), common.WaitForNotification(m.notifications))

	case common.RefreshMsg:
		m.updateStatus()
		return m, m.processQueue()

	case common.TickMsg:
		m.updateStatus()
		return m, tea.Batch(m.processQueue(), common.Tick(m.cfg.PollInterval))

	case common.EditorFinishedMsg:
		if msg.Err != nil {
			m.queue.Push(queue.ShowErrorMsg{Msg: fmt.Sprintf("editor failed:\n%s", msg.Err)})
		}
		m.queue.Push(queue.Update{Flags: queue.UpdateAll})
		return m, m.processQueue()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.help.SetCommands(m.commands(true))

	consumed, err := components.EventPump(msg, m.components())
	if err != nil {
		m.log.Warn("event failed", "key", msg.String(), "error", err)
		m.queue.Push(queue.ShowErrorMsg{Msg: err.Error()})
		consumed = true
	}
	if !consumed && key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	return m, m.processQueue()
}

func (m *Model) updateStatus() {
	if err := m.status.Update(); err != nil {
		m.log.Warn("status update failed", "error", err)
		m.queue.Push(queue.ShowErrorMsg{Msg: err.Error()})
	}
}

// processQueue handles every queued event in order. Refresh requests are
// collected and applied once at the end.
func (m *Model) processQueue() tea.Cmd {
	var (
		cmds  []tea.Cmd
		flags queue.NeedsUpdate
	)
	for {
		ev, ok := m.queue.Pop()
		if !ok {
			break
		}
		m.log.Debug("event", "type", fmt.Sprintf("%T", ev))

		var err error
		switch ev := ev.(type) {
		case queue.ShowErrorMsg:
			err = m.msg.ShowError(ev.Msg)
		case queue.Update:
			flags |= ev.Flags
		case queue.ConfirmResetItem:
			err = m.reset.Open(ev.Item)
		case queue.ResetFile:
			if m.status.Reset(ev.Item) {
				flags |= queue.UpdateAll
			}
		case queue.OpenExternalEditor:
			cmds = append(cmds, m.openEditor(ev.Path))
		case queue.CreateBranch:
			err = m.createBranch.Open()
		case queue.Push:
			err = m.push.Push(ev.Branch)
		case queue.OpenCommit:
			err = m.commit.Show()
		}
		if err != nil {
			m.log.Warn("event failed", "type", fmt.Sprintf("%T", ev), "error", err)
			m.queue.Push(queue.ShowErrorMsg{Msg: err.Error()})
		}
	}

	switch {
	case flags.Has(queue.UpdateAll):
		m.updateStatus()
	case flags.Has(queue.UpdateDiff):
		m.status.UpdateDiff()
	}
	// errors raised by the refresh itself
	if m.queue.Len() > 0 {
		cmds = append(cmds, m.processQueue())
	}
	return tea.Batch(cmds...)
}

// editorCommand picks the editor: config first, then the usual variables.
func (m *Model) editorCommand() string {
	if e := strings.TrimSpace(m.cfg.Editor); e != "" {
		return e
	}
	for _, env := range []string{"GIT_EDITOR", "VISUAL", "EDITOR"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e
		}
	}
	return "vi"
}

// openEditor suspends the UI while the editor runs on path.
func (m *Model) openEditor(path string) tea.Cmd {
	fields := strings.Fields(m.editorCommand())
	args := fields[1:]
	if path != "" {
		args = append(args, filepath.Join(m.repo.RepoRoot(), path))
	}
	c := exec.Command(fields[0], args...) //nolint:gosec // user configured editor
	c.Dir = m.repo.RepoRoot()
	m.log.Info("opening editor", "cmd", fields[0], "path", path)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return common.EditorFinishedMsg{Err: err}
	})
}

// commands collects what the command bar and help screen show.
func (m *Model) commands(forceAll bool) []components.CommandInfo {
	var out []components.CommandInfo
	components.CommandPump(&out, forceAll, m.components())

	popupOpen := false
	for _, p := range m.popups() {
		if p.IsVisible() {
			popupOpen = true
			break
		}
	}
	out = append(out, components.NewCommandInfo(components.CmdQuit(m.keys), true, !popupOpen || forceAll).
		WithOrder(components.OrderRareAction+1))
	return out
}

// View renders the status screen, or the open popup over it, and the
// command bar.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentH := max(1, m.height-1)

	var content string
	for _, p := range m.popups() {
		if p.IsVisible() {
			content = p.(components.Drawable).Draw(m.width, contentH)
			break
		}
	}
	if content == "" {
		content = m.status.Draw(m.width, contentH)
	}
	content = lipgloss.NewStyle().Width(m.width).Height(contentH).MaxHeight(contentH).Render(content)

	data := components.CommandBarData{}
	if branch, ok := m.status.WorkDir().BranchName(); ok {
		data.Branch = branch
	}
	if m.status.AnythingPending() || m.push.Pending() {
		data.Busy = m.spinner.View()
	}
	bar := components.RenderCommandBar(m.styles, m.commands(false), data, m.width)

	return lipgloss.JoinVertical(lipgloss.Left, content, bar)
}
