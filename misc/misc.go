// Package misc keeps build identification helpers used by logging and the
// debug reporter.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "mstand"

// GetAppName returns short program name used for log files, panic captures
// and report archives.
func GetAppName() string {
	return appName
}

var buildInfo = sync.OnceValue(func() (bi struct{ version, hash string }) {
	bi.version = "devel"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return bi
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		bi.version = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			bi.hash = s.Value
			break
		}
	}
	return bi
})

// GetVersion returns module version recorded in the binary.
func GetVersion() string {
	return buildInfo().version
}

// GetGitHash returns VCS revision recorded in the binary, empty string when
// built outside of a repository.
func GetGitHash() string {
	return buildInfo().hash
}
