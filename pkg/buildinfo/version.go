// Package buildinfo reports which panlayout build is running.
//
// Release builds stamp the values with ldflags:
//
//	go build -ldflags "-X github.com/panforge/panlayout/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/panforge/panlayout/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/panforge/panlayout/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with go install carry no ldflags; for those, init fills in
// whatever the Go toolchain embedded: the module version and the VCS
// revision and time.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Stamped by ldflags; see the package doc.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fill(info)
	}
}

// fill replaces unstamped values with those embedded by the toolchain.
func fill(info *debug.BuildInfo) {
	if v := info.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none" && s.Value != "":
			Commit = s.Value[:min(len(s.Value), 12)]
		case s.Key == "vcs.time" && Date == "unknown" && s.Value != "":
			Date = s.Value
		}
	}
}

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns a cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
