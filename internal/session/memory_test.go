package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AddLine_MergesByProduct(t *testing.T) {
	t.Parallel()

	s := New(1, "alice", false, time.Hour)
	s.AddLine(CartLine{ProductID: 7, Name: "Tee", Price: 4000, Quantity: 2})
	s.AddLine(CartLine{ProductID: 9, Name: "Cap", Price: 1500, Quantity: 1})
	s.AddLine(CartLine{ProductID: 7, Name: "Tee", Price: 4000, Quantity: 3})

	require.Len(t, s.Cart, 2)
	assert.Equal(t, uint(7), s.Cart[0].ProductID)
	assert.Equal(t, 5, s.Cart[0].Quantity)
	assert.Equal(t, 1, s.Cart[1].Quantity)
	assert.InDelta(t, 21500, s.Total(), 0.001)
}

func TestSession_Clone_DoesNotShareCart(t *testing.T) {
	t.Parallel()

	s := New(1, "alice", false, time.Hour)
	s.AddLine(CartLine{ProductID: 1, Price: 10, Quantity: 1})

	c := s.Clone()
	c.Cart[0].Quantity = 99

	assert.Equal(t, 1, s.Cart[0].Quantity)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	s := New(3, "bob", true, time.Hour)
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.True(t, got.IsAdmin)
	assert.Empty(t, got.Cart)

	updated, err := store.Update(ctx, s.ID, func(sess *Session) error {
		sess.AddLine(CartLine{ProductID: 2, Price: 5, Quantity: 4})
		return nil
	})
	require.NoError(t, err)
	assert.InDelta(t, 20, updated.Total(), 0.001)

	require.NoError(t, store.Delete(ctx, s.ID))
	require.NoError(t, store.Delete(ctx, s.ID))

	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Update(ctx, s.ID, func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateErrorLeavesRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	s := New(1, "alice", false, time.Hour)
	require.NoError(t, store.Create(ctx, s))

	boom := errors.New("boom")
	_, err := store.Update(ctx, s.ID, func(sess *Session) error {
		sess.AddLine(CartLine{ProductID: 1, Quantity: 1})
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Cart)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now().UTC()
	store.now = func() time.Time { return now }

	s := New(1, "alice", false, time.Minute)
	require.NoError(t, store.Create(ctx, s))

	_, err := store.Get(ctx, s.ID)
	require.NoError(t, err)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	s := New(1, "alice", false, time.Hour)
	require.NoError(t, store.Create(ctx, s))

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, s.ID, func(sess *Session) error {
				sess.AddLine(CartLine{ProductID: 1, Price: 1, Quantity: 1})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Cart, 1)
	assert.Equal(t, workers, got.Cart[0].Quantity)
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	t.Parallel()

	k := newKeyedMutex()
	unlock := k.Lock("a")
	unlock()

	k.mu.Lock()
	defer k.mu.Unlock()
	assert.Empty(t, k.locks)
}

func TestSession_AddLine_SaturatesQuantity(t *testing.T) {
	t.Parallel()

	s := New(1, "alice", false, time.Hour)
	s.AddLine(CartLine{ProductID: 1, Price: 1, Quantity: MaxLineQuantity - 1})
	s.AddLine(CartLine{ProductID: 1, Price: 1, Quantity: 5})
	s.AddLine(CartLine{ProductID: 2, Price: 1, Quantity: 0})

	require.Len(t, s.Cart, 2)
	assert.Equal(t, MaxLineQuantity, s.Cart[0].Quantity)
	assert.Equal(t, 1, s.Cart[1].Quantity)
}
