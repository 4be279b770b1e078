package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/vetclinic/core/validator"
)

// Option is a function that configures a Config
type Option func(*Config)

// WithViper sets a custom viper instance
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

// WithValidator sets a custom validator
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithLoader sets the configuration loader
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithFile sets the config file name and search paths
func WithFile(name string, paths ...string) Option {
	return func(c *Config) {
		c.name = name
		if len(paths) > 0 {
			c.paths = paths
		}
	}
}

// WithConfigFile reads exactly path instead of searching for the file name.
// Unlike a searched file, a missing explicit file is an error.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.file = path
	}
}

// WithDefaults sets viper defaults, keyed by dotted path
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) {
		c.defaults = defaults
	}
}

// WithEnvAliases binds extra environment variable names to a key, in priority order
func WithEnvAliases(key string, envs ...string) Option {
	return func(c *Config) {
		if c.aliases == nil {
			c.aliases = make(map[string][]string)
		}
		c.aliases[key] = append(c.aliases[key], envs...)
	}
}

// WithOnChange registers fn to run after every successful reload triggered by Watch
func WithOnChange(fn func()) Option {
	return func(c *Config) {
		c.onChange = fn
	}
}
