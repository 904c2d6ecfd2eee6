// Package misc carries build time information.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X slimock/misc.version=... -X slimock/misc.gitHash=..."
var (
	version = "dev"
	gitHash = ""
)

const appName = "slimock"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns revision program was built from. When it was not set
// at link time VCS information embedded by the toolchain is used.
func GetGitHash() string {
	if len(gitHash) > 0 {
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
