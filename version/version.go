package version

import (
	"fmt"
	"maps"
	"runtime/debug"
	"strings"
	"sync"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info represents version information.
type Info struct {
	Version   string            `json:"version"`
	GitCommit string            `json:"git_commit,omitempty"`
	BuildTime string            `json:"build_time,omitempty"`
	GoVersion string            `json:"go_version"`
	IsRelease bool              `json:"is_release"`
	IsDirty   bool              `json:"is_dirty"`
	Engines   map[string]string `json:"engines,omitempty"`
}

var (
	enginesMu sync.RWMutex
	engines   = map[string]string{}
)

// SetEngine records which backend serves a subsystem (e.g. "whisper" -> "whisper.cpp").
func SetEngine(subsystem, engine string) {
	enginesMu.Lock()
	engines[subsystem] = engine
	enginesMu.Unlock()
}

// Get returns version information, filling gaps from the embedded build info.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.modified":
				info.IsDirty = s.Value == "true"
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}

	enginesMu.RLock()
	if len(engines) > 0 {
		info.Engines = maps.Clone(engines)
	}
	enginesMu.RUnlock()

	return info
}

// Short returns "<version>[-<commit>][-dirty]".
func Short() string {
	info := Get()
	s := info.Version
	if info.GitCommit != "" {
		s = fmt.Sprintf("%s-%s", s, info.GitCommit)
	}
	if info.IsDirty {
		s += "-dirty"
	}
	return s
}
