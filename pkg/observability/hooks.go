// Package observability lets callers watch the pipeline, the cache and the
// HTTP server without those packages depending on a metrics or tracing
// library.
//
// Each area has a small hooks interface. The packages that do the work call
// [Pipeline], [Cache] or [HTTP] and report one event per step; whatever the
// binary registered at startup receives it. Nothing is registered by default,
// so the calls cost an interface dispatch to [Nop].
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//
// The CLI registers [LogHooks] for all three areas when run with --verbose.
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ParseEvent describes one parse of a notation string.
type ParseEvent struct {
	Layout   string
	Notes    int // notes in the parsed layout, zero on failure
	Skipped  int // simple-grammar tokens that were dropped
	Duration time.Duration
	Err      error
}

// PlaceEvent describes the radial placement of a parsed layout.
type PlaceEvent struct {
	Notes       int
	ShellRadius float64
	Duration    time.Duration
}

// RenderEvent describes one render pass over the formats that missed the cache.
type RenderEvent struct {
	Formats  []string
	Bytes    int // total size of the rendered artifacts
	Duration time.Duration
	Err      error
}

// PipelineHooks receives one event per pipeline stage.
type PipelineHooks interface {
	OnParse(ctx context.Context, e ParseEvent)
	OnPlace(ctx context.Context, e PlaceEvent)
	OnRender(ctx context.Context, e RenderEvent)
}

// CacheHooks receives cache traffic. kind is "layout" or "artifact".
type CacheHooks interface {
	OnCacheLookup(ctx context.Context, kind string, hit bool)
	OnCacheStore(ctx context.Context, kind string, size int)
}

// HTTPHooks receives one event per served request and one per error response.
type HTTPHooks interface {
	OnResponse(ctx context.Context, method, path string, status int, d time.Duration)
	OnError(ctx context.Context, method, path string, err error)
}

// Nop implements every hooks interface and does nothing. Embed it to
// implement only the events you care about.
type Nop struct{}

func (Nop) OnParse(context.Context, ParseEvent) {}
func (Nop) OnPlace(context.Context, PlaceEvent) {}
func (Nop) OnRender(context.Context, RenderEvent) {}
func (Nop) OnCacheLookup(context.Context, string, bool) {}
func (Nop) OnCacheStore(context.Context, string, int) {}
func (Nop) OnResponse(context.Context, string, string, int, time.Duration) {}
func (Nop) OnError(context.Context, string, string, error) {}

// registry is replaced as a whole on every Set call so readers never lock.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var (
	current atomic.Pointer[registry]
	writeMu sync.Mutex
)

func init() { Reset() }

func update(fn func(*registry)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers h for pipeline events. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers h for HTTP events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Pipeline, Cache and HTTP return the registered hooks, or Nop.
func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks { return current.Load().cache }
func HTTP() HTTPHooks { return current.Load().http }

// Reset unregisters every hook. Tests call it in a deferred cleanup.
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	current.Store(&registry{pipeline: Nop{}, cache: Nop{}, http: Nop{}})
}
