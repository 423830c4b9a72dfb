package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	xdg := filepath.Join(t.TempDir(), "xdg-cache")

	tests := []struct {
		name string
		env  string
		want string
	}{
		{"home fallback", "", filepath.Join(home, ".cache", "panlayout")},
		{"XDG_CACHE_HOME", xdg, filepath.Join(xdg, "panlayout")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.env)
			got, err := cacheDir()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}
