package asyncgit

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/logger"
)

// DiffType selects what a path is diffed against.
type DiffType int

const (
	// DiffWorkDir diffs the working tree against the index.
	DiffWorkDir DiffType = iota
	// DiffStage diffs the index against HEAD.
	DiffStage
)

// DiffParams identifies one diff.
type DiffParams struct {
	Path string
	Type DiffType
}

// DiffRepo is the git operation AsyncDiff needs.
type DiffRepo interface {
	Diff(path string, staged bool) (git.FileDiff, error)
}

// maxCacheEntries caps the number of cached diffs. When exceeded, expired
// entries are evicted first and the whole cache is flushed if that is not
// enough.
const maxCacheEntries = 64

type cacheEntry struct {
	diff   git.FileDiff
	err    error
	expiry time.Time
}

type lastDiff struct {
	params DiffParams
	diff   git.FileDiff
	epoch  uint64
}

// AsyncDiff computes file diffs in the background and caches them for ttl.
// Failed diffs are cached too, so a broken path is not retried on every
// redraw.
type AsyncDiff struct {
	repo    DiffRepo
	workers *Workers
	ttl     time.Duration
	now     func() time.Time
	log     *slog.Logger

	mu       sync.Mutex
	cache    map[DiffParams]cacheEntry
	inflight map[DiffParams]uint64
	epoch    uint64
	current  *DiffParams
	last     *lastDiff
	pending  int
}

// NewAsyncDiff returns a diff job using workers.
func NewAsyncDiff(repo DiffRepo, workers *Workers, ttl time.Duration) *AsyncDiff {
	return &AsyncDiff{
		repo:     repo,
		workers:  workers,
		ttl:      ttl,
		now:      time.Now,
		log:      logger.Component("asyncgit.diff"),
		cache:    make(map[DiffParams]cacheEntry, 16),
		inflight: make(map[DiffParams]uint64),
	}
}

// Request returns the cached diff for p when one is fresh. Otherwise it
// starts a computation, unless one for p is already running, and returns
// nil; NotificationDiff announces the result.
func (a *AsyncDiff) Request(p DiffParams) (*git.FileDiff, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = &p
	if e, ok := a.get(p); ok {
		if e.err != nil {
			return nil, e.err
		}
		d := e.diff
		return &d, nil
	}
	if _, running := a.inflight[p]; running {
		return nil, nil
	}
	return nil, a.dispatch(p)
}

// Refresh drops all cached diffs and recomputes the most recently requested
// one.
func (a *AsyncDiff) Refresh() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.epoch++
	a.cache = make(map[DiffParams]cacheEntry, 16)
	a.inflight = make(map[DiffParams]uint64)
	if a.current == nil {
		return nil
	}
	return a.dispatch(*a.current)
}

// Last returns the most recently completed diff and its params.
func (a *AsyncDiff) Last() (DiffParams, *git.FileDiff, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return DiffParams{}, nil, false
	}
	d := a.last.diff
	return a.last.params, &d, true
}

// IsPending reports whether any diff is being computed.
func (a *AsyncDiff) IsPending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending > 0
}

// dispatch must be called with mu held.
func (a *AsyncDiff) dispatch(p DiffParams) error {
	epoch := a.epoch
	a.inflight[p] = epoch
	a.pending++
	err := a.workers.Go(func() { a.run(p, epoch) })
	if err != nil {
		delete(a.inflight, p)
		a.pending--
	}
	return err
}

func (a *AsyncDiff) run(p DiffParams, epoch uint64) {
	d, err := a.repo.Diff(p.Path, p.Type == DiffStage)

	a.mu.Lock()
	a.pending--
	if e, ok := a.inflight[p]; ok && e == epoch {
		delete(a.inflight, p)
	}
	if epoch == a.epoch {
		a.set(p, d, err)
	}
	if err == nil && (a.last == nil || epoch >= a.last.epoch) {
		a.last = &lastDiff{params: p, diff: d, epoch: epoch}
	}
	a.mu.Unlock()

	if err != nil {
		a.log.Warn("diff failed", "path", p.Path, "stage", p.Type == DiffStage, "error", err)
	} else {
		a.log.Debug("diff computed", "path", p.Path, "stage", p.Type == DiffStage, "lines", d.Lines)
	}
	a.workers.notify(NotificationDiff)
}

func (a *AsyncDiff) get(p DiffParams) (cacheEntry, bool) {
	e, found := a.cache[p]
	if !found || a.now().After(e.expiry) {
		return cacheEntry{}, false
	}
	return e, true
}

func (a *AsyncDiff) set(p DiffParams, d git.FileDiff, err error) {
	if len(a.cache) >= maxCacheEntries {
		now := a.now()
		for k, e := range a.cache {
			if now.After(e.expiry) {
				delete(a.cache, k)
			}
		}
		if len(a.cache) >= maxCacheEntries {
			a.cache = make(map[DiffParams]cacheEntry, 16)
		}
	}
	a.cache[p] = cacheEntry{diff: d, err: err, expiry: a.now().Add(a.ttl)}
}
