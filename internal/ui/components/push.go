package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/gitpane/internal/asyncgit"
	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/queue"
	"github.com/Akashdeep-Patra/gitpane/internal/ui"
)

// PushJob is the background push the popup drives.
type PushJob interface {
	Request(r asyncgit.PushRequest) error
	IsPending() bool
	LastResult() error
}

// Push is the modal shown while a push runs. It swallows all input while
// visible and closes itself when the push finishes.
type Push struct {
	noFocus
	popup

	job     PushJob
	remote  string
	pending bool

	queue  *queue.Queue
	styles ui.Styles
	keys   *keys.KeyConfig
}

// NewPush returns a hidden push popup pushing to remote.
func NewPush(job PushJob, remote string, q *queue.Queue, styles ui.Styles, k *keys.KeyConfig) *Push {
	return &Push{
		job:    job,
		remote: remote,
		queue:  q,
		styles: styles,
		keys:   k,
	}
}

// Push starts pushing branch (a full ref) and shows the popup.
func (p *Push) Push(branch string) error {
	p.pending = true
	if err := p.job.Request(asyncgit.PushRequest{Remote: p.remote, Branch: branch}); err != nil {
		p.pending = false
		return err
	}
	return p.Show()
}

// UpdateGit reacts to background job notifications.
func (p *Push) UpdateGit(n asyncgit.Notification) {
	if p.IsVisible() && n == asyncgit.NotificationPush {
		p.update()
	}
}

func (p *Push) update() {
	p.pending = p.job.IsPending()
	if p.pending {
		return
	}
	if err := p.job.LastResult(); err != nil {
		p.queue.Push(queue.ShowErrorMsg{Msg: fmt.Sprintf("push failed:\n%s", err)})
	}
	p.Hide()
}

// Pending reports whether the popup waits for the push.
func (p *Push) Pending() bool { return p.pending }

// Commands implements Component. While visible the popup replaces every
// command collected before it.
func (p *Push) Commands(out *[]CommandInfo, _ bool) CommandBlocking {
	if p.IsVisible() {
		*out = (*out)[:0]
	}
	*out = append(*out, NewCommandInfo(CmdCloseMsg(p.keys), !p.pending, p.IsVisible()))
	return VisibilityBlocking(p)
}

// Event implements Component. The popup cannot be closed while the push
// runs; all input is swallowed while visible.
func (p *Push) Event(msg tea.Msg) (bool, error) {
	if !p.IsVisible() {
		return false, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && !p.pending && key.Matches(k, p.keys.Enter) {
		p.Hide()
	}
	return true, nil
}

// Draw renders the popup centred in the given area.
func (p *Push) Draw(width, height int) string {
	if !p.IsVisible() {
		return ""
	}
	body := lipgloss.NewStyle().Foreground(p.styles.Theme.Error).Render(fmt.Sprintf("Pushing to %s…", p.remote))
	box := p.styles.Dialog.Padding(0, 2).Render(body)
	return ui.PlaceCentre(width, height, box)
}
