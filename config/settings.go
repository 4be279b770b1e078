package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kochabx/vetclinic/log"
	"github.com/kochabx/vetclinic/store/db"
	"github.com/kochabx/vetclinic/store/redis"
)

const (
	// DefaultBaseURL is used when neither the file nor the environment sets api.base_url
	DefaultBaseURL = "http://127.0.0.1:8000"
	// DefaultFile is the config file looked up in "." and DefaultDir()
	DefaultFile = "vetclinic.yaml"
)

// Settings is the full client configuration. The single API value is shared by
// the session manager and every resource client.
type Settings struct {
	API     API        `mapstructure:"api"`
	Session Session    `mapstructure:"session"`
	Log     log.Config `mapstructure:"log"`
}

// API locates the remote service
type API struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
	UserAgent string        `mapstructure:"user_agent"`
}

// Session selects where the session token is persisted
type Session struct {
	Driver string       `mapstructure:"driver" validate:"oneof=memory file bolt sql redis"`
	Path   string       `mapstructure:"path"`
	Redis  redis.Config `mapstructure:"redis"`
	SQL    db.Config    `mapstructure:"sql"`
}

// DefaultDir is the per-user directory holding config and session files
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vetclinic"
	}
	return filepath.Join(home, ".vetclinic")
}

// Defaults returns every key with its default so that any of them can be
// overridden from the environment (api.timeout -> API_TIMEOUT).
func Defaults() map[string]any {
	dir := DefaultDir()
	return map[string]any{
		"api.base_url":   DefaultBaseURL,
		"api.timeout":    30 * time.Second,
		"api.user_agent": "vetclinic-go",

		"session.driver":         "file",
		"session.path":           filepath.Join(dir, "session.json"),
		"session.redis.addr":     "localhost:6379",
		"session.redis.password": "",
		"session.redis.db":       0,
		"session.redis.prefix":   "vetclinic:session:",
		"session.redis.ttl":      time.Duration(0),
		"session.sql.driver":     "sqlite",
		"session.sql.dsn":        filepath.Join(dir, "session.db"),
		"session.sql.table":      "session_entries",
		"session.sql.log_level":  "silent",

		"log.level":             "info",
		"log.mask_emails":       false,
		"log.file.enabled":      false,
		"log.file.filepath":     filepath.Join(dir, "log"),
		"log.file.filename":     "vetclinic",
		"log.file.file_ext":     "log",
		"log.file.rotate_mode":  "size",
		"log.file.max_size":     10,
		"log.file.max_backups":  3,
		"log.file.max_age_days": 30,
		"log.file.compress":     false,
	}
}

// Load resolves Settings from defaults, an optional vetclinic.yaml and the
// environment. The base URL also honours PUBLIC_API_URL.
func Load(opts ...Option) (*Settings, error) {
	_, s, err := Open(opts...)
	return s, err
}

// Open is Load for long-running callers: the returned Config can Watch the
// file and rewrites the returned Settings on every change.
func Open(opts ...Option) (*Config, *Settings, error) {
	s := new(Settings)
	base := []Option{
		WithFile(DefaultFile, ".", DefaultDir()),
		WithDefaults(Defaults()),
		WithEnvAliases("api.base_url", "API_BASE_URL", "PUBLIC_API_URL"),
	}

	c := New(s, append(base, opts...)...)
	if err := c.Load(); err != nil {
		return nil, nil, err
	}
	return c, s, nil
}
