package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolated(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("API_BASE_URL", "")
	t.Setenv("PUBLIC_API_URL", "")
	os.Unsetenv("API_BASE_URL")
	os.Unsetenv("PUBLIC_API_URL")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolated(t)

	s, err := Load(WithFile(DefaultFile, dir))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, s.API.BaseURL)
	assert.Equal(t, 30*time.Second, s.API.Timeout)
	assert.Equal(t, "file", s.Session.Driver)
	assert.Equal(t, filepath.Join(DefaultDir(), "session.json"), s.Session.Path)
	assert.Equal(t, "vetclinic:session:", s.Session.Redis.Prefix)
	assert.Equal(t, "session_entries", s.Session.SQL.Table)
	assert.Equal(t, "info", s.Log.Level)
	assert.False(t, s.Log.File.Enabled)
}

func TestLoadBaseURLFromEnv(t *testing.T) {
	dir := isolated(t)

	t.Setenv("PUBLIC_API_URL", "http://public:9000")
	s, err := Load(WithFile(DefaultFile, dir))
	require.NoError(t, err)
	assert.Equal(t, "http://public:9000", s.API.BaseURL)

	t.Setenv("API_BASE_URL", "http://primary:8000")
	s, err = Load(WithFile(DefaultFile, dir))
	require.NoError(t, err)
	assert.Equal(t, "http://primary:8000", s.API.BaseURL)
}

func TestLoadFile(t *testing.T) {
	dir := isolated(t)
	content := `
api:
  base_url: http://vet.example.com
  timeout: 5s
session:
  driver: bolt
  path: /tmp/vet.bolt
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(content), 0o600))

	s, err := Load(WithFile(DefaultFile, dir))
	require.NoError(t, err)
	assert.Equal(t, "http://vet.example.com", s.API.BaseURL)
	assert.Equal(t, 5*time.Second, s.API.Timeout)
	assert.Equal(t, "bolt", s.Session.Driver)
	assert.Equal(t, "/tmp/vet.bolt", s.Session.Path)
	assert.Equal(t, "debug", s.Log.Level)

	t.Setenv("SESSION_DRIVER", "memory")
	s, err = Load(WithFile(DefaultFile, dir))
	require.NoError(t, err)
	assert.Equal(t, "memory", s.Session.Driver)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := isolated(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://custom:1234\n"), 0o600))

	s, err := Load(WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, "http://custom:1234", s.API.BaseURL)

	_, err = Load(WithConfigFile(filepath.Join(dir, "missing.yaml")))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	dir := isolated(t)

	t.Setenv("SESSION_DRIVER", "etcd")
	_, err := Load(WithFile(DefaultFile, dir))
	assert.ErrorContains(t, err, "config validation failed")

	t.Setenv("SESSION_DRIVER", "memory")
	t.Setenv("API_BASE_URL", "not a url")
	_, err = Load(WithFile(DefaultFile, dir))
	assert.Error(t, err)
}

func TestWatchWithoutFile(t *testing.T) {
	dir := isolated(t)

	var s Settings
	c := New(&s, WithFile(DefaultFile, dir), WithDefaults(Defaults()))
	require.NoError(t, c.Load())
	assert.NoError(t, c.Watch())
	assert.Equal(t, DefaultBaseURL, c.GetViper().GetString("api.base_url"))
}

func TestWatchReloadsFile(t *testing.T) {
	dir := isolated(t)
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://before:8000\n"), 0o600))

	var s *Settings
	seen := make(chan string, 16)
	c, s, err := Open(WithFile(DefaultFile, dir), WithOnChange(func() {
		select {
		case seen <- s.API.BaseURL:
		default:
		}
	}))
	require.NoError(t, err)
	assert.Equal(t, "http://before:8000", s.API.BaseURL)
	require.NoError(t, c.Watch())

	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://after:9000\n"), 0o600))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-seen:
			if got == "http://after:9000" {
				return
			}
		case <-timeout:
			t.Fatal("settings were not reloaded after the file changed")
		}
	}
}
