// Package cli implements the panlayout command-line interface.
//
// The commands parse handpan notation, print the placed notes, render
// diagrams to files and manage saved instruments and the render cache. The
// same pipeline runner backs the CLI and the HTTP server started by serve, so
// a layout rendered from the shell is byte-identical to one served over HTTP.
//
// # Commands
//
//   - parse: Read a notation string and list its notes
//   - layout: Print each note's position on the diagram
//   - render: Write SVG, PNG, PDF, JSON or DOT output
//   - spell: Show whether a key is spelled with sharps or flats
//   - presets: Browse the built-in and user scale presets
//   - instruments: Save and recall named layouts
//   - serve: Run the HTTP API
//   - cache: Inspect or clear the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so helpers can report progress.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with short
// "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time:
//
//	14:32:01.45 INFO Parsed notes=9 elapsed=3ms
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}

type loggerKey struct{}

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
