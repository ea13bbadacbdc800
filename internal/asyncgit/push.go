package asyncgit

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/Akashdeep-Patra/gitpane/internal/logger"
)

// ErrPushPending is returned when a push is requested while one runs.
var ErrPushPending = errors.New("push already in progress")

// PushRequest names what to push where. Branch is a full ref.
type PushRequest struct {
	Remote string
	Branch string
}

// PushRepo is the git operation AsyncPush needs.
type PushRepo interface {
	Push(remote, ref string) error
}

// AsyncPush runs at most one push at a time.
type AsyncPush struct {
	repo    PushRepo
	workers *Workers
	log     *slog.Logger

	mu         sync.Mutex
	pending    bool
	lastResult error
}

// NewAsyncPush returns a push job using workers.
func NewAsyncPush(repo PushRepo, workers *Workers) *AsyncPush {
	return &AsyncPush{
		repo:    repo,
		workers: workers,
		log:     logger.Component("asyncgit.push"),
	}
}

// Request starts pushing r. NotificationPush announces completion.
func (a *AsyncPush) Request(r PushRequest) error {
	a.mu.Lock()
	if a.pending {
		a.mu.Unlock()
		return ErrPushPending
	}
	a.pending = true
	a.lastResult = nil
	a.mu.Unlock()

	a.log.Info("push started", "remote", r.Remote, "ref", r.Branch)
	err := a.workers.Go(func() {
		err := a.repo.Push(r.Remote, r.Branch)

		a.mu.Lock()
		a.pending = false
		a.lastResult = err
		a.mu.Unlock()

		if err != nil {
			a.log.Error("push failed", "remote", r.Remote, "ref", r.Branch, "error", err)
		} else {
			a.log.Info("push finished", "remote", r.Remote, "ref", r.Branch)
		}
		a.workers.notify(NotificationPush)
	})
	if err != nil {
		a.mu.Lock()
		a.pending = false
		a.mu.Unlock()
	}
	return err
}

// IsPending reports whether a push is running.
func (a *AsyncPush) IsPending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// LastResult returns the error of the last finished push.
func (a *AsyncPush) LastResult() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastResult
}
