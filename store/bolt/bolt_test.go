package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/vetclinic/store/storetest"
)

func TestStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.db"), time.Second)
	require.NoError(t, err)
	defer s.Close()

	storetest.Run(t, s)
}

func TestPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := Open(path, 0)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "vet_name", "Clinica Sol"))
	require.NoError(t, s.Close())

	s, err = Open(path, 0)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, "vet_name")
	require.NoError(t, err)
	assert.Equal(t, "Clinica Sol", v)
}

func TestLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(path, 0)
	require.NoError(t, err)
	defer s.Close()

	_, err = Open(path, 50*time.Millisecond)
	assert.Error(t, err)
}
