package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/kochabx/vetclinic/log"
	"github.com/kochabx/vetclinic/store"
)

var (
	ErrUnsupportedDriver = errors.New("db: unsupported driver")
	ErrNotInitialized    = errors.New("db: not initialized")
)

// Driver database driver name
type Driver string

const (
	DriverMySQL    Driver = "mysql"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Config selects the database holding session entries
type Config struct {
	Driver   Driver `mapstructure:"driver" json:"driver"`
	DSN      string `mapstructure:"dsn" json:"dsn"`
	Table    string `mapstructure:"table" json:"table"`
	LogLevel string `mapstructure:"log_level" json:"log_level"`
}

// Entry is one session key/value row
type Entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// Store keeps session entries in a SQL table through gorm
type Store struct {
	db     *gorm.DB
	table  string
	logger *log.Logger
}

var _ store.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithLogger routes gorm logs through l
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Open connects, pings and migrates the entries table
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{table: cfg.Table, logger: log.G}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.table == "" {
		s.table = "session_entries"
	}

	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.New(gormLogWriter{logger: s.logger}, logger.Config{
			LogLevel:                  parseLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("db store: %w", err)
	}
	s.db = db

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db store: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// single writer
		sqlDB.SetMaxOpenConns(1)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("db store: %w", err)
	}

	if err = s.tx(ctx).AutoMigrate(&Entry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("db store: migrate: %w", err)
	}

	s.logger.Debug().Str("driver", string(cfg.Driver)).Str("table", s.table).Msg("session table ready")
	return s, nil
}

func dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case DriverSQLite, "":
		if dir := filepath.Dir(cfg.DSN); dir != "." && !strings.HasPrefix(cfg.DSN, "file:") {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("db store: %w", err)
			}
		}
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, ErrUnsupportedDriver
	}
}

func (s *Store) tx(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.table)
}

// DB returns the gorm handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var e Entry
	err := s.tx(ctx).Where("entry_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("db store: %w", err)
	}
	return e.Value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.tx(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("db store: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.tx(ctx).Where("entry_key IN ?", keys).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("db store: %w", err)
	}
	return nil
}

// Close closes the underlying pool
func (s *Store) Close() error {
	if s.db == nil {
		return ErrNotInitialized
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}

// gormLogWriter adapts log.Logger to gorm's logger.Writer
type gormLogWriter struct {
	logger *log.Logger
}

func (w gormLogWriter) Printf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Debug().Msgf(format, args...)
	}
}
