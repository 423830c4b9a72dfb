package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. One value serves
// as pipeline, cache and HTTP hooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through l, or log.Default() when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("trace")}
}

func (h *LogHooks) OnParse(_ context.Context, e ParseEvent) {
	if e.Err != nil {
		h.logger.Debug("parse failed", "layout", e.Layout, "duration", e.Duration, "err", e.Err)
		return
	}
	h.logger.Debug("parsed", "layout", e.Layout, "notes", e.Notes, "skipped", e.Skipped, "duration", e.Duration)
}

func (h *LogHooks) OnPlace(_ context.Context, e PlaceEvent) {
	h.logger.Debug("placed", "notes", e.Notes, "radius", e.ShellRadius, "duration", e.Duration)
}

func (h *LogHooks) OnRender(_ context.Context, e RenderEvent) {
	if e.Err != nil {
		h.logger.Debug("render failed", "formats", e.Formats, "duration", e.Duration, "err", e.Err)
		return
	}
	h.logger.Debug("rendered", "formats", e.Formats, "bytes", e.Bytes, "duration", e.Duration)
}

func (h *LogHooks) OnCacheLookup(_ context.Context, kind string, hit bool) {
	h.logger.Debug("cache lookup", "kind", kind, "hit", hit)
}

func (h *LogHooks) OnCacheStore(_ context.Context, kind string, size int) {
	h.logger.Debug("cache store", "kind", kind, "bytes", size)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Debug("request error", "method", method, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
