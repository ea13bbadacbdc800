// Package asyncgit runs git commands off the UI goroutine. Each job keeps the
// latest result and announces completion on a shared notification channel;
// the owner reacts by reading the job's state.
package asyncgit

import (
	"errors"
	"sync"

	"github.com/sourcegraph/conc"
)

// Notification tells the owner which job has new results.
type Notification int

// Notification kinds.
const (
	NotificationStatus Notification = iota + 1
	NotificationDiff
	NotificationPush
)

func (n Notification) String() string {
	switch n {
	case NotificationStatus:
		return "status"
	case NotificationDiff:
		return "diff"
	case NotificationPush:
		return "push"
	default:
		return "unknown"
	}
}

// ErrClosed is returned when work is submitted after Close.
var ErrClosed = errors.New("asyncgit: workers closed")

// Workers bounds how many git commands run at once and delivers completion
// notifications.
type Workers struct {
	// counting semaphore: starts full with limit tokens
	semaphore chan struct{}
	sender    chan<- Notification
	done      chan struct{}
	wg        conc.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewWorkers returns a pool running at most limit jobs concurrently.
func NewWorkers(limit int, sender chan<- Notification) *Workers {
	if limit < 1 {
		limit = 1
	}
	semaphore := make(chan struct{}, limit)
	for i := 0; i < limit; i++ {
		semaphore <- struct{}{}
	}
	return &Workers{
		semaphore: semaphore,
		sender:    sender,
		done:      make(chan struct{}),
	}
}

// Go runs f on a pooled goroutine.
func (w *Workers) Go(f func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.wg.Go(func() {
		<-w.semaphore
		defer func() { w.semaphore <- struct{}{} }()
		f()
	})
	return nil
}

// notify delivers n unless the pool is shutting down.
func (w *Workers) notify(n Notification) {
	select {
	case w.sender <- n:
	case <-w.done:
	}
}

// Close rejects new work and waits for running jobs. Pending notifications
// are dropped.
func (w *Workers) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()
	w.wg.Wait()
}
