package redis

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kochabx/vetclinic/store"
)

var ErrClientNotInitialized = errors.New("redis client not initialized")

// Config for a single redis node
type Config struct {
	Addr        string        `mapstructure:"addr" json:"addr"`
	Username    string        `mapstructure:"username" json:"username"`
	Password    string        `mapstructure:"password" json:"password"`
	DB          int           `mapstructure:"db" json:"db"`
	Prefix      string        `mapstructure:"prefix" json:"prefix"`
	TTL         time.Duration `mapstructure:"ttl" json:"ttl"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" json:"dial_timeout"`
	PoolSize    int           `mapstructure:"pool_size" json:"pool_size"`
}

// Store keeps entries as plain redis strings under Prefix.
// A zero TTL means entries never expire.
type Store struct {
	Client *redis.Client
	config Config
}

var _ store.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithClient uses an existing client instead of dialing Config.Addr
func WithClient(client *redis.Client) Option {
	return func(s *Store) {
		s.Client = client
	}
}

// New connects and pings the server
func New(ctx context.Context, config Config, opts ...Option) (*Store, error) {
	s := &Store{config: config}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.Client == nil {
		s.Client = s.createClient()
	}

	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("redis store: %w", err)
	}

	return s, nil
}

func (s *Store) createClient() *redis.Client {
	poolSize := s.config.PoolSize
	if poolSize == 0 {
		poolSize = 2 * runtime.GOMAXPROCS(0)
	}
	dialTimeout := s.config.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}

	return redis.NewClient(&redis.Options{
		Addr:        s.config.Addr,
		Username:    s.config.Username,
		Password:    s.config.Password,
		DB:          s.config.DB,
		PoolSize:    poolSize,
		DialTimeout: dialTimeout,
	})
}

func (s *Store) key(k string) string {
	return s.config.Prefix + k
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	if s.Client == nil {
		return ErrClientNotInitialized
	}
	return s.Client.Ping(ctx).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.Client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis store: %w", err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.Client.Set(ctx, s.key(key), value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("redis store: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.Client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis store: %w", err)
	}
	return nil
}

// Close closes the client; calling it twice is safe
func (s *Store) Close() error {
	if s.Client == nil {
		return nil
	}
	err := s.Client.Close()
	s.Client = nil
	return err
}
