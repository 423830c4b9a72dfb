// Package cache provides the storage layer for computed layouts and rendered
// artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// Keys are built by a [Keyer] from the normalized layout string and every
// option that changes the output, hashed with SHA-256. [ScopedKeyer] adds a
// prefix so several deployments can share one Redis.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey("D/-A-Bb-C-D", cache.LayoutKeyOpts{Mode: "aeolian", ShellRadius: 300})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind. Layouts and artifacts are pure
// functions of their key, so entries only expire to bound disk use.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Get reports a miss as (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a parsed and positioned layout.
	LayoutKey(source string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes parsing or placement.
type LayoutKeyOpts struct {
	Mode          string  `json:"mode"`
	ShellRadius   float64 `json:"shell_radius"`
	DefaultOctave int     `json:"default_octave"`
}

// ArtifactKeyOpts holds every option that changes a rendered file.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style,omitempty"`
	Accidentals string  `json:"accidentals,omitempty"`
	Naming      string  `json:"naming,omitempty"`
	Title       string  `json:"title,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	SamplePath  string  `json:"sample_path,omitempty"`
	EmbedFont   bool    `json:"embed_font,omitempty"`
}

// DefaultKeyer hashes key components into "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(source string, opts LayoutKeyOpts) string {
	return digestKey("layout", source, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return digestKey("artifact:"+opts.Format, layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
