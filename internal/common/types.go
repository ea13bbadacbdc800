// Package common holds the bubbletea messages shared by the command line
// entry point and the application model.
package common

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akashdeep-Patra/gitpane/internal/asyncgit"
)

// RefreshMsg asks for a status refresh after an external change, e.g. from
// the filesystem watcher.
type RefreshMsg struct{}

// TickMsg is the periodic poll.
type TickMsg struct{}

// NotificationMsg carries a finished background job into the update loop.
type NotificationMsg struct{ Notification asyncgit.Notification }

// EditorFinishedMsg is sent when the external editor exits.
type EditorFinishedMsg struct{ Err error }

// CmdRefresh returns a RefreshMsg (use as return from tea.Cmd).
func CmdRefresh() tea.Msg { return RefreshMsg{} }

// Tick schedules the next poll after d.
func Tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return TickMsg{} })
}

// WaitForNotification blocks on ch and delivers the next notification. The
// model re-arms it after each delivery. A closed channel yields nil.
func WaitForNotification(ch <-chan asyncgit.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationMsg{Notification: n}
	}
}
