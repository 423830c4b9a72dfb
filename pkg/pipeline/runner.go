package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/panforge/panlayout/pkg/cache"
	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves identically.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default entry lifetimes when non-zero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Stage 1+2: Parse and place
	layoutStart := time.Now()
	placed, layoutHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	sp := opts.Spelling(placed.Layout)

	result := &Result{
		Layout:     placed.Layout,
		Positioned: placed.Positioned,
		UseFlats:   sp.UseFlats,
		Spelling:   sp,
	}
	result.Stats.NoteCount = len(placed.Layout.Notes)
	result.Stats.SkipCount = len(placed.Layout.Skipped)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("placed notes",
		"notes", result.Stats.NoteCount,
		"format", placed.Format,
		"flats", sp.UseFlats,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)
	for _, s := range placed.Layout.Skipped {
		r.Logger.Warn("skipped token", "token", s.Token, "position", s.Position, "reason", s.Reason)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, placed, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.ArtifactLen = make(map[string]int, len(artifacts))
	for f, data := range artifacts {
		result.Stats.ArtifactLen[f] = len(data)
	}
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo parses and places the layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (Placed, bool, error) {
	if err := opts.Validate(); err != nil {
		return Placed{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(notation.Normalize(opts.Layout), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if p, err := UnmarshalPlaced(data); err == nil {
				observability.Cache().OnCacheLookup(ctx, "layout", true)
				return p, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheLookup(ctx, "layout", false)
	}

	hooks := observability.Pipeline()

	start := time.Now()
	l, err := Parse(opts)
	ev := observability.ParseEvent{Layout: opts.Layout, Duration: time.Since(start), Err: err}
	if l != nil {
		ev.Notes, ev.Skipped = len(l.Notes), len(l.Skipped)
	}
	hooks.OnParse(ctx, ev)
	if err != nil {
		return Placed{}, false, err
	}

	start = time.Now()
	p := Place(l, opts)
	hooks.OnPlace(ctx, observability.PlaceEvent{
		Notes:       len(l.Notes),
		ShellRadius: opts.ShellRadius,
		Duration:    time.Since(start),
	})

	r.store(ctx, "layout", cacheKey, p, cache.TTLLayout)
	return p, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, opts Options) (Placed, error) {
	p, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return p, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p Placed, opts Options) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	// Compute cache key from placement data
	data, err := MarshalPlaced(p)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Digest(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit && !opts.Refresh {
			artifacts[format] = data
			observability.Cache().OnCacheLookup(ctx, "artifact", true)
			continue
		}
		missing = append(missing, format)
		observability.Cache().OnCacheLookup(ctx, "artifact", false)
	}

	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	start := time.Now()
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, p, renderOpts)
	ev := observability.RenderEvent{Formats: missing, Duration: time.Since(start), Err: err}
	for _, data := range rendered {
		ev.Bytes += len(data)
	}
	observability.Pipeline().OnRender(ctx, ev)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, "artifact", key, data, cache.TTLArtifact)
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, p Placed, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, kind, key string, p Placed, ttl time.Duration) {
	data, err := MarshalPlaced(p)
	if err != nil {
		r.Logger.Warn("serialize placement", "err", err)
		return
	}
	r.set(ctx, kind, key, data, ttl)
}

// set writes through to the cache; failures only cost a recompute later.
func (r *Runner) set(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheStore(ctx, kind, len(data))
}
