package asyncgit

import (
	"log/slog"
	"sync"

	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/logger"
)

// StatusParams selects one status listing.
type StatusParams struct {
	Type             git.StatusType
	IncludeUntracked bool
}

// StatusRepo is the git operation AsyncStatus needs.
type StatusRepo interface {
	Status(t git.StatusType, includeUntracked bool) ([]git.StatusItem, error)
}

// AsyncStatus fetches one status listing in the background.
type AsyncStatus struct {
	repo    StatusRepo
	workers *Workers
	log     *slog.Logger

	mu        sync.Mutex
	last      git.Status
	lastErr   error
	inflight  *StatusParams
	rerun     bool
	requested uint64
	applied   uint64
	pending   int
}

// NewAsyncStatus returns a status job using workers.
func NewAsyncStatus(repo StatusRepo, workers *Workers) *AsyncStatus {
	return &AsyncStatus{
		repo:    repo,
		workers: workers,
		log:     logger.Component("asyncgit.status"),
	}
}

// Fetch starts a fetch for p. When one with the same params is already
// running it may have read the repository too early, so another fetch
// follows it once it completes; the job stays pending until then.
// Completion is announced with NotificationStatus; read it with Last.
func (a *AsyncStatus) Fetch(p StatusParams) error {
	a.mu.Lock()
	if a.inflight != nil && *a.inflight == p {
		a.rerun = true
		a.mu.Unlock()
		return nil
	}
	a.requested++
	gen := a.requested
	a.inflight = &p
	a.rerun = false
	a.pending++
	a.mu.Unlock()

	err := a.workers.Go(func() { a.run(p, gen) })
	if err != nil {
		a.mu.Lock()
		a.pending--
		a.inflight = nil
		a.mu.Unlock()
	}
	return err
}

func (a *AsyncStatus) run(p StatusParams, gen uint64) {
	items, err := a.repo.Status(p.Type, p.IncludeUntracked)

	a.mu.Lock()
	a.pending--
	// a slower, older fetch must not overwrite a newer result
	if gen > a.applied {
		a.applied = gen
		a.lastErr = err
		if err == nil {
			a.last = git.Status{Items: items}
		}
	}
	var next uint64
	if gen == a.requested {
		a.inflight = nil
		if a.rerun {
			a.rerun = false
			a.requested++
			next = a.requested
			a.inflight = &p
			a.pending++
		}
	}
	a.mu.Unlock()

	if err != nil {
		a.log.Warn("status fetch failed", "type", p.Type.String(), "error", err)
	} else {
		a.log.Debug("status fetched", "type", p.Type.String(), "items", len(items))
	}
	if next != 0 && a.redispatch(p, next) {
		return
	}
	a.workers.notify(NotificationStatus)
}

// redispatch runs the follow-up fetch for gen. It reports false when the
// workers are closed and the result at hand is final.
func (a *AsyncStatus) redispatch(p StatusParams, gen uint64) bool {
	a.log.Debug("status refetch", "type", p.Type.String(), "gen", gen)
	if err := a.workers.Go(func() { a.run(p, gen) }); err != nil {
		a.mu.Lock()
		a.pending--
		if gen == a.requested {
			a.inflight = nil
		}
		a.mu.Unlock()
		return false
	}
	return true
}

// Last returns the most recent successful listing.
func (a *AsyncStatus) Last() git.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// LastResult returns the error of the most recent fetch, if it failed.
func (a *AsyncStatus) LastResult() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// IsPending reports whether a fetch is running.
func (a *AsyncStatus) IsPending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending > 0
}
