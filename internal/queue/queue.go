// Package queue is the in-process event bus components use to ask the
// application for work they cannot do themselves: open a popup, show an
// error, refresh state. Events are handled in FIFO order by the owner loop.
package queue

import "sync"

// NeedsUpdate flags which parts of the UI must be refreshed.
type NeedsUpdate uint8

const (
	// UpdateAll re-fetches git state.
	UpdateAll NeedsUpdate = 1 << iota
	// UpdateDiff re-derives the diff pane.
	UpdateDiff
	// UpdateCommands rebuilds the command bar.
	UpdateCommands
)

// Has reports whether all bits of f are set.
func (n NeedsUpdate) Has(f NeedsUpdate) bool { return n&f == f }

// ResetItem identifies a working-tree file to discard changes for.
type ResetItem struct {
	Path string
}

// InternalEvent is implemented by every event that can travel on the Queue.
type InternalEvent interface {
	internalEvent()
}

// ShowErrorMsg opens the message popup with Msg.
type ShowErrorMsg struct{ Msg string }

// Update requests a refresh of the parts named by Flags.
type Update struct{ Flags NeedsUpdate }

// ConfirmResetItem asks the user before discarding Item.
type ConfirmResetItem struct{ Item ResetItem }

// ResetFile discards working-tree changes of Item. Sent after confirmation.
type ResetFile struct{ Item ResetItem }

// OpenExternalEditor opens Path (repo relative) in the user's editor. An
// empty path opens the editor without a file.
type OpenExternalEditor struct{ Path string }

// CreateBranch opens the branch-name prompt.
type CreateBranch struct{}

// Push pushes Branch, a full ref such as refs/heads/main.
type Push struct{ Branch string }

// OpenCommit opens the commit message editor.
type OpenCommit struct{}

func (ShowErrorMsg) internalEvent()       {}
func (Update) internalEvent()             {}
func (ConfirmResetItem) internalEvent()   {}
func (ResetFile) internalEvent()          {}
func (OpenExternalEditor) internalEvent() {}
func (CreateBranch) internalEvent()       {}
func (Push) internalEvent()               {}
func (OpenCommit) internalEvent()         {}

// Queue is a FIFO of InternalEvent shared by all components. It is safe for
// concurrent use.
type Queue struct {
	mu     sync.Mutex
	events []InternalEvent
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push appends ev.
func (q *Queue) Push(ev InternalEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Pop removes and returns the oldest event.
func (q *Queue) Pop() (InternalEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return ev, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Drain removes and returns all queued events in order.
func (q *Queue) Drain() []InternalEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}
