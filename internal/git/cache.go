package git

import (
	"sync"
	"time"
)

// CachedRepository wraps a Repository and remembers what HEAD points to for
// a short time. Every poll asks for the branch name, which rarely changes;
// writes that can move HEAD, and Invalidate, drop the cached values.
//
// Status and Diff are not cached here: the async jobs own their freshness.
type CachedRepository struct {
	Repository
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	cache map[string]refEntry
}

type refEntry struct {
	val    string
	err    error
	expiry time.Time
}

var _ Repository = (*CachedRepository)(nil)

// NewCachedRepository wraps inner with a ttl cache for Head and BranchName.
func NewCachedRepository(inner Repository, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		Repository: inner,
		ttl:        ttl,
		now:        time.Now,
		cache:      make(map[string]refEntry, 2),
	}
}

// Invalidate drops every cached value. Call it when the repository may have
// changed behind our back.
func (c *CachedRepository) Invalidate() {
	c.mu.Lock()
	clear(c.cache)
	c.mu.Unlock()
}

func (c *CachedRepository) cached(key string, load func() (string, error)) (string, error) {
	c.mu.Lock()
	e, ok := c.cache[key]
	c.mu.Unlock()
	if ok && c.now().Before(e.expiry) {
		return e.val, e.err
	}

	v, err := load()
	c.mu.Lock()
	c.cache[key] = refEntry{val: v, err: err, expiry: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return v, err
}

func (c *CachedRepository) invalidateOnSuccess(err error) error {
	if err == nil {
		c.Invalidate()
	}
	return err
}

// Head returns the HEAD commit (cached).
func (c *CachedRepository) Head() (string, error) {
	return c.cached("head", c.Repository.Head)
}

// BranchName returns the checked out branch (cached).
func (c *CachedRepository) BranchName() (string, error) {
	return c.cached("branch", c.Repository.BranchName)
}

// Commit commits and invalidates the cache.
func (c *CachedRepository) Commit(message string) error {
	return c.invalidateOnSuccess(c.Repository.Commit(message))
}

// CreateBranch creates and checks out a branch, then invalidates the cache.
func (c *CachedRepository) CreateBranch(name string) error {
	return c.invalidateOnSuccess(c.Repository.CreateBranch(name))
}
