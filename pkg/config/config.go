// Package config loads panlayout settings from a TOML file.
//
// The file is optional; every field has a default. Lookup order:
//
//  1. the path given with --config
//  2. $XDG_CONFIG_HOME/panlayout/config.toml
//  3. ~/.config/panlayout/config.toml
//
// A few deployment settings can be overridden from the environment:
// PANLAYOUT_REDIS_ADDR, PANLAYOUT_MONGO_URI and PANLAYOUT_ADDR.
//
// # Example
//
//	[render]
//	shell_radius = 300
//	formats = ["svg", "pdf"]
//	notation = "french"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	rate_limit = 20
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/pipeline"
	"github.com/panforge/panlayout/pkg/spell"
)

const appName = "panlayout"

// Environment variables that override file settings.
const (
	EnvRedisAddr = "PANLAYOUT_REDIS_ADDR"
	EnvMongoURI  = "PANLAYOUT_MONGO_URI"
	EnvAddr      = "PANLAYOUT_ADDR"
)

// Backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the full configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`

	// Presets is an optional user preset catalog merged over the built-in one.
	Presets string `toml:"presets"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	ShellRadius   float64  `toml:"shell_radius"`
	Formats       []string `toml:"formats"`
	Notation      string   `toml:"notation"`
	Accidentals   string   `toml:"accidentals"`
	Mode          string   `toml:"mode"`
	DefaultOctave int      `toml:"default_octave"`
	Style         string   `toml:"style"`
	SamplePath    string   `toml:"sample_path"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Prefix    string   `toml:"prefix"`
	TTL       Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr      string  `toml:"addr"`
	RateLimit float64 `toml:"rate_limit"` // requests per second per client
	Burst     int     `toml:"burst"`
}

// StoreConfig selects and configures the instrument store.
type StoreConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Duration is a time.Duration written as a string ("72h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			ShellRadius:   pipeline.DefaultShellRadius,
			Formats:       []string{pipeline.FormatSVG},
			Notation:      string(spell.NamingAmerican),
			Accidentals:   string(spell.AccidentalsAuto),
			Mode:          string(spell.DefaultMode),
			DefaultOctave: 3,
			Style:         pipeline.DefaultStyle,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Prefix:  appName,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			RateLimit: 10,
			Burst:     20,
		},
		Store: StoreConfig{
			Backend:  StoreFile,
			Database: "panlayout",
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. An empty path means [Path]; a missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case os.IsNotExist(err) && !explicit:
		case err != nil:
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %s", path, undecoded[0])
			}
		}
	}

	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a TOML document over the defaults without touching the
// environment.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
		if c.Cache.Backend == CacheFile {
			c.Cache.Backend = CacheRedis
		}
	}
	if v := getenv(EnvMongoURI); v != "" {
		c.Store.MongoURI = v
		if c.Store.Backend == StoreFile {
			c.Store.Backend = StoreMongo
		}
	}
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate rejects unknown enum values and inconsistent backends.
func (c *Config) Validate() error {
	r := c.Render
	if r.ShellRadius <= 0 || r.ShellRadius > pipeline.MaxShellRadius {
		return errors.New(errors.ErrCodeInvalidInput, "render.shell_radius must be between 0 and %g", pipeline.MaxShellRadius)
	}
	if err := pipeline.ValidateFormats(r.Formats); err != nil {
		return err
	}
	if _, err := spell.ParseNaming(r.Notation); err != nil {
		return err
	}
	if _, err := spell.ParseAccidentals(r.Accidentals); err != nil {
		return err
	}
	if _, err := spell.ParseMode(r.Mode); err != nil {
		return err
	}
	if r.DefaultOctave < 1 || r.DefaultOctave > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "render.default_octave must be between 1 and 8")
	}
	if err := pipeline.ValidateStyle(r.Style); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache.backend: %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}

	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.rate_limit and server.burst must not be negative")
	}

	switch c.Store.Backend {
	case StoreMemory, StoreFile:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid store.backend: %q (must be memory, file or mongo)", c.Store.Backend)
	}
	return nil
}

// Options returns pipeline options seeded from the render defaults.
func (c *Config) Options(layout string) pipeline.Options {
	return pipeline.Options{
		Layout:        layout,
		DefaultOctave: c.Render.DefaultOctave,
		Mode:          c.Render.Mode,
		ShellRadius:   c.Render.ShellRadius,
		Formats:       append([]string(nil), c.Render.Formats...),
		Accidentals:   c.Render.Accidentals,
		Naming:        c.Render.Notation,
		Style:         c.Render.Style,
		SamplePath:    c.Render.SamplePath,
	}
}
