// Package misc holds small helpers which do not belong anywhere else.
package misc

import (
	"runtime/debug"
)

const appName = "picdoc"

// GetAppName returns short program name used in logs, reports and file names.
func GetAppName() string {
	return appName
}

// GetVersion returns module version recorded by the toolchain.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns vcs revision recorded by the toolchain, if any.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
