package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/panforge/panlayout/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), 130},
		{"bad pitch", errors.New(errors.ErrCodeInvalidPitchClass, "unrecognized pitch class %q", "H"), 2},
		{"unknown preset", errors.New(errors.ErrCodePresetNotFound, "preset not found: %s", "x"), 2},
		{"missing converter", errors.New(errors.ErrCodeUnsupported, "pdf export requires librsvg"), 1},
		{"plain", fmt.Errorf("disk full"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
