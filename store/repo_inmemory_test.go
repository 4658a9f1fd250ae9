package store_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-pkce-exchange/internal/errors"
	"github.com/jrsteele09/go-pkce-exchange/store"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	r := store.NewInMemoryRepo()

	t.Run("get missing", func(t *testing.T) {
		_, err := r.Get("nope")
		require.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("set get remove", func(t *testing.T) {
		key := store.VerifierKey("state-1")
		require.NoError(t, r.Set(key, "verifier"))

		v, err := r.Get(key)
		require.NoError(t, err)
		require.Equal(t, "verifier", v)

		require.NoError(t, r.Remove(key))
		_, err = r.Get(key)
		require.ErrorIs(t, err, errors.ErrNotFound)

		require.NoError(t, r.Remove(key))
	})

	t.Run("empty key", func(t *testing.T) {
		require.ErrorIs(t, r.Set("", "x"), errors.ErrEmptyKey)
		_, err := r.Get("")
		require.ErrorIs(t, err, errors.ErrEmptyKey)
		require.ErrorIs(t, r.Remove(""), errors.ErrEmptyKey)
	})

	t.Run("concurrent access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := store.TokensKey(fmt.Sprintf("s%d", i))
				_ = r.Set(key, "v")
				_, _ = r.Get(key)
				_ = r.Remove(key)
			}(i)
		}
		wg.Wait()
	})
}

func TestInMemoryRepo_TTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := store.NewInMemoryRepo(
		store.WithTTL(10*time.Minute),
		store.WithClock(func() time.Time { return now }),
	)

	require.NoError(t, r.Set(store.VerifierKey("s1"), "v1"))
	require.NoError(t, r.Set(store.TokensKey("s1"), "{}"))

	now = now.Add(9 * time.Minute)
	v, err := r.Get(store.VerifierKey("s1"))
	require.NoError(t, err)
	require.Equal(t, "v1", v)

	now = now.Add(time.Minute)
	_, err = r.Get(store.VerifierKey("s1"))
	require.ErrorIs(t, err, errors.ErrNotFound)
	require.Equal(t, 2, r.Len())

	// The next write sweeps everything past its TTL.
	require.NoError(t, r.Set(store.VerifierKey("s2"), "v2"))
	require.Equal(t, 1, r.Len())

	v, err = r.Get(store.VerifierKey("s2"))
	require.NoError(t, err)
	require.Equal(t, "v2", v)
}

func TestInMemoryRepo_NoTTLKeepsEntries(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := store.NewInMemoryRepo(store.WithClock(func() time.Time { return now }))

	require.NoError(t, r.Set("k", "v"))
	now = now.Add(24 * time.Hour)
	require.NoError(t, r.Set("other", "v"))

	v, err := r.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
	require.Equal(t, 2, r.Len())
}
