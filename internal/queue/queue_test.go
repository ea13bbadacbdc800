package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFO(t *testing.T) {
	q := New()
	q.Push(ShowErrorMsg{Msg: "one"})
	q.Push(Update{Flags: UpdateAll})
	q.Push(ConfirmResetItem{Item: ResetItem{Path: "a.txt"}})

	require.Equal(t, 3, q.Len())

	ev, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, ShowErrorMsg{Msg: "one"}, ev)

	ev, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, Update{Flags: UpdateAll}, ev)

	ev, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, ConfirmResetItem{Item: ResetItem{Path: "a.txt"}}, ev)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestDrain(t *testing.T) {
	q := New()
	q.Push(CreateBranch{})
	q.Push(OpenCommit{})

	events := q.Drain()
	assert.Equal(t, []InternalEvent{CreateBranch{}, OpenCommit{}}, events)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}

func TestConcurrentPush(t *testing.T) {
	q := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				q.Push(Update{Flags: UpdateDiff})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, q.Len())
}

func TestNeedsUpdateHas(t *testing.T) {
	f := UpdateAll | UpdateCommands
	assert.True(t, f.Has(UpdateAll))
	assert.True(t, f.Has(UpdateCommands))
	assert.False(t, f.Has(UpdateDiff))
	assert.False(t, f.Has(UpdateAll|UpdateDiff))
}
