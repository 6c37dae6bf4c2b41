// Package version reports what binary is running. Release builds set the
// variables with -ldflags; other builds fall back to the VCS stamp Go
// embeds in the binary.
package version

import (
	"runtime/debug"
	"sync"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// VersionInfo is the version triple served by /debug and contentctl.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	Modified  bool   `json:"modified,omitempty"`
}

var (
	once sync.Once
	info VersionInfo
)

// Info returns the version of the running binary.
func Info() VersionInfo {
	once.Do(func() {
		info = VersionInfo{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
		if bi, ok := debug.ReadBuildInfo(); ok {
			fillFromBuildInfo(&info, bi)
		}
	})
	return info
}

func fillFromBuildInfo(v *VersionInfo, bi *debug.BuildInfo) {
	if v.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if v.GitCommit == "unknown" && s.Value != "" {
				v.GitCommit = shortCommit(s.Value)
			}
		case "vcs.time":
			if v.BuildTime == "unknown" && s.Value != "" {
				v.BuildTime = s.Value
			}
		case "vcs.modified":
			v.Modified = s.Value == "true"
		}
	}
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String renders the version the way the CLI prints it.
func (v VersionInfo) String() string {
	s := v.Version + " (" + v.GitCommit
	if v.Modified {
		s += "+dirty"
	}
	return s + ", built " + v.BuildTime + ")"
}
