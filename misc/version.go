// Package misc holds build information.
package misc

import "runtime/debug"

// Set with -ldflags at build time.
var (
	appName = "twstyle"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns the commit the binary was built from, falling back to
// the VCS stamp recorded by the toolchain.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
