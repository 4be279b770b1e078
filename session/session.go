// Package session opens the store that holds the authenticated session.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kochabx/vetclinic/config"
	"github.com/kochabx/vetclinic/log"
	"github.com/kochabx/vetclinic/store"
	"github.com/kochabx/vetclinic/store/bolt"
	"github.com/kochabx/vetclinic/store/db"
	"github.com/kochabx/vetclinic/store/file"
	"github.com/kochabx/vetclinic/store/memory"
	"github.com/kochabx/vetclinic/store/redis"
)

// Fixed keys under which session state is persisted
const (
	KeyToken       = "token"
	KeyDisplayName = "vet_name"
)

// Drivers accepted by session.driver
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverBolt   = "bolt"
	DriverSQL    = "sql"
	DriverRedis  = "redis"
)

const boltLockTimeout = 2 * time.Second

// Open returns the store selected by cfg.Driver. An empty driver means file.
// Backends that log, such as the SQL store, write through logger; nil keeps
// the global logger.
func Open(ctx context.Context, cfg config.Session, logger *log.Logger) (store.Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		return memory.New(nil), nil
	case DriverFile, "":
		return file.Open(pathOr(cfg.Path, "session.json"))
	case DriverBolt:
		return bolt.Open(pathOr(cfg.Path, "session.bolt"), boltLockTimeout)
	case DriverSQL:
		var opts []db.Option
		if logger != nil {
			opts = append(opts, db.WithLogger(logger))
		}
		return db.Open(ctx, cfg.SQL, opts...)
	case DriverRedis:
		return redis.New(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("session: unknown driver %q", cfg.Driver)
	}
}

func pathOr(path, name string) string {
	if path != "" {
		return path
	}
	return filepath.Join(config.DefaultDir(), name)
}
