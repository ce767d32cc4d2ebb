// Package version carries build metadata injected with -ldflags "-X".
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go"`
}

// Get resolves the build metadata. Without injected values it falls back to the module build info.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if build, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "dev" && build.Main.Version != "" && build.Main.Version != "(devel)" {
			info.Version = build.Main.Version
		}
		if info.Commit == "" {
			for _, setting := range build.Settings {
				if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
					info.Commit = setting.Value[:7]
				}
			}
		}
	}
	return info
}

// String renders the line printed by `sa version`.
func String() string {
	info := Get()
	out := info.Version
	if info.Commit != "" {
		out += fmt.Sprintf(" (%s)", info.Commit)
	}
	if info.Date != "" {
		out += " built " + info.Date
	}
	return out
}
