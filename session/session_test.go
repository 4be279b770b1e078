package session

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/vetclinic/config"
	"github.com/kochabx/vetclinic/log"
	"github.com/kochabx/vetclinic/store/bolt"
	"github.com/kochabx/vetclinic/store/db"
	"github.com/kochabx/vetclinic/store/file"
	"github.com/kochabx/vetclinic/store/memory"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		name  string
		cfg   config.Session
		check func(t *testing.T, s any)
	}{
		{
			name: "memory",
			cfg:  config.Session{Driver: DriverMemory},
			check: func(t *testing.T, s any) {
				assert.IsType(t, &memory.Store{}, s)
			},
		},
		{
			name: "file",
			cfg:  config.Session{Driver: DriverFile, Path: filepath.Join(dir, "session.json")},
			check: func(t *testing.T, s any) {
				require.IsType(t, &file.Store{}, s)
				assert.Equal(t, filepath.Join(dir, "session.json"), s.(*file.Store).Path())
			},
		},
		{
			name: "bolt",
			cfg:  config.Session{Driver: DriverBolt, Path: filepath.Join(dir, "session.bolt")},
			check: func(t *testing.T, s any) {
				assert.IsType(t, &bolt.Store{}, s)
			},
		},
		{
			name: "sql",
			cfg: config.Session{Driver: DriverSQL, SQL: db.Config{
				Driver: db.DriverSQLite,
				DSN:    filepath.Join(dir, "session.sqlite"),
			}},
			check: func(t *testing.T, s any) {
				assert.IsType(t, &db.Store{}, s)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg, nil)
			require.NoError(t, err)
			defer s.Close()

			tt.check(t, s)

			require.NoError(t, s.Set(ctx, KeyToken, "abc123"))
			v, err := s.Get(ctx, KeyToken)
			require.NoError(t, err)
			assert.Equal(t, "abc123", v)
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Session{Driver: "etcd"}, nil)
	assert.ErrorContains(t, err, "unknown driver")
}

func TestOpenSQLUsesLogger(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := log.NewWriter(&buf, log.WithLevel(zerolog.DebugLevel), log.WithComponent("vetctl"))

	s, err := Open(ctx, config.Session{Driver: DriverSQL, SQL: db.Config{
		Driver:   db.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "session.sqlite"),
		LogLevel: "info",
	}}, logger)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, KeyToken, "abc123"))
	assert.Contains(t, buf.String(), "session table ready")
	assert.Contains(t, buf.String(), "vetctl")
	assert.Contains(t, buf.String(), "session_entries")
}
