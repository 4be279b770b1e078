package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/vetclinic/core/validator"
	"github.com/kochabx/vetclinic/log"
)

// Config manages loading a target struct through a Loader
type Config struct {
	mu       sync.RWMutex
	viper    *viper.Viper
	validate validator.Validator
	target   any
	loader   Loader
	name     string
	file     string
	paths    []string
	defaults map[string]any
	aliases  map[string][]string
	onChange func()
}

// New creates a new Config instance with the given options
// If no loader is provided, a FileLoader is created for "config.yaml" in ".".
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
		name:     "config.yaml",
		paths:    []string{"."},
	}

	for _, opt := range opts {
		opt(c)
	}

	for key, value := range c.defaults {
		c.viper.SetDefault(key, value)
	}
	for key, envs := range c.aliases {
		_ = c.viper.BindEnv(append([]string{key}, envs...)...)
	}

	if c.loader == nil {
		c.loader = NewFileLoader(c.name, c.paths, c.viper, c.validate)
		if c.file != "" {
			c.viper.SetConfigFile(c.file)
		}
	}

	return c
}

// Load reads the configuration using the configured loader
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loader.Load(c.target)
}

// Watch reloads the target when the underlying file changes. The target is
// rewritten in place from the watcher goroutine, so callers that read it
// concurrently should do so from the WithOnChange callback.
func (c *Config) Watch() error {
	return c.loader.Watch(func() {
		log.Info().Msg("config change detected")

		if err := c.Load(); err != nil {
			log.Error().Err(err).Msg("failed to reload config after change")
			return
		}

		log.Info().Msg("config reloaded successfully")
		if c.onChange != nil {
			c.onChange()
		}
	})
}

// GetViper returns the underlying viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}
