package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFillFromBuildInfo(t *testing.T) {
	stamp(t, "dev", "none", "unknown")
	fill(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "4f1c2a9e8b7d6c5a4f3e2d1c"},
			{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
		},
	})
	if Version != "v0.3.1" || Commit != "4f1c2a9e8b7d" || Date != "2026-03-01T10:00:00Z" {
		t.Errorf("got %s %s %s", Version, Commit, Date)
	}
}

func TestFillKeepsLdflags(t *testing.T) {
	stamp(t, "v1.0.0", "abc123", "2026-01-01")
	fill(&debug.BuildInfo{
		Main:     debug.Module{Version: "v0.9.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffff"}},
	})
	if Version != "v1.0.0" || Commit != "abc123" {
		t.Errorf("ldflags values were overwritten: %s %s", Version, Commit)
	}
}

func TestFillIgnoresDevel(t *testing.T) {
	stamp(t, "dev", "none", "unknown")
	fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}
}

func TestTemplate(t *testing.T) {
	stamp(t, "v0.3.1", "4f1c2a9", "2026-03-01")
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version: v0.3.1\n") || !strings.Contains(got, "commit: 4f1c2a9") {
		t.Errorf("Template() = %q", got)
	}
}
