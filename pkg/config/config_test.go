package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/panforge/panlayout/pkg/errors"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[render]
shell_radius = 150
formats = ["svg", "pdf"]
notation = "french"

[cache]
backend = "none"
ttl = "72h"

[server]
addr = ":9000"
rate_limit = 2.5
`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.ShellRadius != 150 || len(cfg.Render.Formats) != 2 || cfg.Render.Notation != "french" {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.Mode != "aeolian" {
		t.Errorf("unset field lost its default: mode = %q", cfg.Render.Mode)
	}
	if cfg.Cache.Backend != CacheNone || cfg.Cache.TTL.Duration != 72*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.RateLimit != 2.5 || cfg.Server.Burst != 20 {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "[render"},
		{"bad notation", "[render]\nnotation = \"german\""},
		{"bad format", "[render]\nformats = [\"gif\"]"},
		{"bad mode", "[render]\nmode = \"bebop\""},
		{"zero radius", "[render]\nshell_radius = -3"},
		{"bad style", "[render]\nstyle = \"neon\""},
		{"bad cache", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"bad store", "[store]\nbackend = \"sqlite\""},
		{"mongo without uri", "[store]\nbackend = \"mongo\""},
		{"negative burst", "[server]\nburst = -1"},
		{"octave zero", "[render]\ndefault_octave = 0"},
		{"octave too high", "[render]\ndefault_octave = 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.doc); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvRedisAddr, "")
	t.Setenv(EnvMongoURI, "")
	t.Setenv(EnvAddr, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nstyle = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Style != "dark" {
		t.Errorf("style = %q", cfg.Render.Style)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nradius = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvRedisAddr, "")
	t.Setenv(EnvMongoURI, "")
	t.Setenv(EnvAddr, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("backend = %q, want default", cfg.Cache.Backend)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit file should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvRedisAddr, "redis:6379")
	t.Setenv(EnvMongoURI, "mongodb://mongo:27017")
	t.Setenv(EnvAddr, ":7000")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Store.Backend != StoreMongo || cfg.Store.MongoURI != "mongodb://mongo:27017" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join("/tmp/xdg", "panlayout", "config.toml") {
		t.Errorf("Path = %q", p)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Render.Notation = "french"
	opts := cfg.Options("D/-A")
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	if opts.Naming != "french" || opts.ShellRadius != cfg.Render.ShellRadius {
		t.Errorf("Options = %+v", opts)
	}
	opts.Formats[0] = "png"
	if cfg.Render.Formats[0] != "svg" {
		t.Error("Options should copy the formats slice")
	}
}
