package git

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo implements only what the cache touches.
type countingRepo struct {
	Repository
	branch    string
	branchErr error
	calls     int
	commitErr error
}

func (r *countingRepo) BranchName() (string, error) {
	r.calls++
	return r.branch, r.branchErr
}

func (r *countingRepo) Head() (string, error) {
	r.calls++
	return "abc123", nil
}

func (r *countingRepo) Commit(string) error         { return r.commitErr }
func (r *countingRepo) CreateBranch(n string) error { r.branch = n; return nil }

func newCached(inner *countingRepo) (*CachedRepository, *time.Time) {
	now := time.Unix(1000, 0)
	c := NewCachedRepository(inner, 2*time.Second)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCachedBranchName(t *testing.T) {
	inner := &countingRepo{branch: "main"}
	c, now := newCached(inner)

	for i := 0; i < 3; i++ {
		name, err := c.BranchName()
		require.NoError(t, err)
		assert.Equal(t, "main", name)
	}
	assert.Equal(t, 1, inner.calls)

	*now = now.Add(3 * time.Second)
	_, _ = c.BranchName()
	assert.Equal(t, 2, inner.calls)
}

func TestCachedErrorsToo(t *testing.T) {
	inner := &countingRepo{branchErr: ErrDetachedHead}
	c, _ := newCached(inner)

	_, err := c.BranchName()
	assert.ErrorIs(t, err, ErrDetachedHead)
	_, err = c.BranchName()
	assert.ErrorIs(t, err, ErrDetachedHead)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedInvalidatedByWrites(t *testing.T) {
	inner := &countingRepo{branch: "main"}
	c, _ := newCached(inner)

	_, _ = c.BranchName()
	require.NoError(t, c.CreateBranch("topic"))
	name, _ := c.BranchName()
	assert.Equal(t, "topic", name)

	_, _ = c.Head()
	calls := inner.calls
	inner.commitErr = errors.New("nothing to commit")
	assert.Error(t, c.Commit("x"))
	_, _ = c.Head()
	assert.Equal(t, calls, inner.calls, "failed commit keeps the cache")

	c.Invalidate()
	_, _ = c.Head()
	assert.Equal(t, calls+1, inner.calls)
}
