package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/vetclinic/store/storetest"
)

func TestStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	storetest.Run(t, s)
}

func TestPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "token", "abc123"))
	require.NoError(t, s.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path)
	require.NoError(t, err)
	v, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", v)
	assert.Equal(t, path, reopened.Path())
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s.data)
}

func TestFailedWriteKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "token", "abc123"))
	require.NoError(t, s.Set(ctx, "vet_name", "Clinica Norte"))

	// a directory in place of the temp file makes every write fail
	require.NoError(t, os.Mkdir(path+".tmp", 0o700))

	assert.Error(t, s.Delete(ctx, "token", "vet_name"))
	v, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", v)
	v, err = s.Get(ctx, "vet_name")
	require.NoError(t, err)
	assert.Equal(t, "Clinica Norte", v)

	assert.Error(t, s.Set(ctx, "token", "other"))
	v, err = s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", v)

	reopened, err := Open(path)
	require.NoError(t, err)
	v, err = reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", v)
}
