package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/vetclinic/store/storetest"
)

func openSQLite(t *testing.T, table string) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "session.sqlite"),
		Table:  table,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, openSQLite(t, ""))
}

func TestCustomTable(t *testing.T) {
	s := openSQLite(t, "vet_session")
	assert.True(t, s.DB().Migrator().HasTable("vet_session"))
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, parseLogLevel("info"), parseLogLevel("INFO"))
	assert.NotEqual(t, parseLogLevel("silent"), parseLogLevel("error"))
}
