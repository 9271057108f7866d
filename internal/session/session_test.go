package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func newBoard(t *testing.T) *mines.Board {
	t.Helper()
	b, err := mines.NewWithMines(3, 3, []mines.Point{{Row: 0, Col: 0}})
	require.NoError(t, err)
	return b
}

func TestCreateAndGet(t *testing.T) {
	store := NewStore()
	s := store.Create(newBoard(t), nil, nil)

	got, err := store.Get(s.Id)
	require.NoError(t, err)
	assert.Same(t, s, got)

	got, err = store.Lookup(s.Id.String())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = store.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Lookup("not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	store.Delete(s.Id)
	assert.Equal(t, 0, store.Len())
}

func TestEndedAtIsStampedOnce(t *testing.T) {
	store := NewStore()
	s := store.Create(newBoard(t), nil, nil)

	assert.False(t, s.MarkRecorded())
	s.Do(func(b *mines.Board) {
		_, err := b.Reveal(2, 2)
		require.NoError(t, err)
	})
	ended := s.EndedAt()
	require.NotNil(t, ended)

	s.Do(func(b *mines.Board) {})
	assert.Equal(t, ended, s.EndedAt())

	assert.True(t, s.MarkRecorded())
	assert.False(t, s.MarkRecorded())
}

func TestConcurrentMoves(t *testing.T) {
	store := NewStore()
	s := store.Create(newBoard(t), nil, nil)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(b *mines.Board) {
				_, _ = b.ToggleFlag(1, 1)
			})
		}()
	}
	wg.Wait()

	s.Do(func(b *mines.Board) {
		assert.Equal(t, 1, b.FlagsLeft())
	})
}

func TestSweep(t *testing.T) {
	store := NewStore()
	stale := store.Create(newBoard(t), nil, nil)
	fresh := store.Create(newBoard(t), nil, nil)
	stale.touched = time.Now().UTC().Add(-2 * time.Hour)

	assert.Equal(t, 1, store.Sweep(time.Hour))
	_, err := store.Get(stale.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(fresh.Id)
	assert.NoError(t, err)
}
