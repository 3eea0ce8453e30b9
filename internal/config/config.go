// Package config loads kanadrill settings from defaults, an optional YAML
// file and KANADRILL_ environment variables, in that order of precedence.
// Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/kanadrill/internal/adaptive"
	"github.com/abhisek/kanadrill/internal/drill"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Persistence backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all kanadrill settings.
type Config struct {
	Selector adaptive.Params `yaml:"selector"`
	Drill    DrillConfig     `yaml:"drill"`
	Persist  PersistConfig   `yaml:"persist"`

	// Seed fixes the selector's random source. 0 seeds from the clock.
	Seed uint64 `yaml:"seed"`

	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path"`
}

// DrillConfig shapes the game rounds.
type DrillConfig struct {
	WordLength  int      `yaml:"word_length"`
	Distractors int      `yaml:"distractors"`
	Groups      []string `yaml:"groups"`
	Reverse     bool     `yaml:"reverse"`
}

// PersistConfig controls saving selector state between runs.
type PersistConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Backend   string `yaml:"backend"`    // sqlite or redis
	RedisAddr string `yaml:"redis_addr"` // host:port
	RedisKey  string `yaml:"redis_key"`
	Keep      int    `yaml:"keep"` // snapshots retained after a save
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Selector: adaptive.DefaultParams(),
		Drill: DrillConfig{
			WordLength:  3,
			Distractors: 3,
			Groups:      []string{"hiragana"},
		},
		Persist: PersistConfig{
			Backend:   BackendSQLite,
			RedisAddr: "localhost:6379",
			RedisKey:  "kanadrill:snapshots",
			Keep:      10,
		},
	}
}

// Load builds the configuration. path names a YAML file; when empty the
// KANADRILL_CONFIG variable and then the default location are tried, and a
// missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := os.Getenv("KANADRILL_CONFIG"); p != "" {
			path, explicit = p, true
		} else {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/kanadrill/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "kanadrill", "config.yaml"), nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("KANADRILL_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("KANADRILL_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("KANADRILL_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("KANADRILL_REDIS_ADDR"); v != "" {
		c.Persist.RedisAddr = v
		c.Persist.Backend = BackendRedis
	}
	if v := os.Getenv("KANADRILL_PERSIST"); v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes", "on":
			c.Persist.Enabled = true
		case "false", "0", "no", "off":
			c.Persist.Enabled = false
		default:
			return fmt.Errorf("KANADRILL_PERSIST: unrecognised value %q", v)
		}
	}
	return nil
}

// Validate checks that the configuration can drive a session.
func (c *Config) Validate() error {
	if err := c.Selector.Validate(); err != nil {
		return fmt.Errorf("selector: %w", err)
	}
	if c.Drill.WordLength < 1 {
		return fmt.Errorf("%w: drill.word_length %d must be >= 1", ErrInvalidConfig, c.Drill.WordLength)
	}
	if c.Drill.Distractors < 0 {
		return fmt.Errorf("%w: drill.distractors %d must be >= 0", ErrInvalidConfig, c.Drill.Distractors)
	}
	if n := c.Drill.WordLength + c.Drill.Distractors; n > drill.MaxTiles {
		return fmt.Errorf("%w: drill.word_length + drill.distractors = %d, the tile rack holds %d",
			ErrInvalidConfig, n, drill.MaxTiles)
	}
	if len(c.Drill.Groups) == 0 {
		return fmt.Errorf("%w: drill.groups is empty", ErrInvalidConfig)
	}
	switch c.Persist.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Persist.RedisAddr == "" {
			return fmt.Errorf("%w: persist.redis_addr is required for the redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown persist.backend %q", ErrInvalidConfig, c.Persist.Backend)
	}
	return nil
}

// SelectorOptions returns the adaptive options implied by the configuration.
func (c *Config) SelectorOptions() []adaptive.Option {
	return []adaptive.Option{adaptive.WithSeed(c.Seed)}
}
