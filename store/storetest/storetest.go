// Package storetest holds behaviour shared by every store.Store backend.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/vetclinic/store"
)

// Run exercises s against the store.Store contract. s must start empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("SetGet", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "token", "abc123"))
		v, err := s.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "abc123", v)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "token", "first"))
		require.NoError(t, s.Set(ctx, "token", "second"))
		v, err := s.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "vet_name", ""))
		v, err := s.Get(ctx, "vet_name")
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "token", "abc123"))
		require.NoError(t, s.Set(ctx, "vet_name", "Clinica Sol"))
		require.NoError(t, s.Delete(ctx, "token", "vet_name"))

		_, err := s.Get(ctx, "token")
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Get(ctx, "vet_name")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "never-set"))
		assert.NoError(t, s.Delete(ctx))
	})

	t.Run("Concurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Set(ctx, "shared", "v")
				_, _ = s.Get(ctx, "shared")
			}()
		}
		wg.Wait()

		v, err := s.Get(ctx, "shared")
		require.NoError(t, err)
		assert.Equal(t, "v", v)
		require.NoError(t, s.Delete(ctx, "shared"))
	})
}
