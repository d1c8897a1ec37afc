// Package misc keeps build time program identification.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set by the linker: -ldflags "-X showcase/misc.version=... -X showcase/misc.githash=..."
var (
	version = "dev"
	githash = "unknown"
	appname = ""
)

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit the program was built from.
func GetGitHash() string {
	return githash
}

// GetAppName returns program name, either forced at build time or derived
// from the executable name.
func GetAppName() string {
	if len(appname) > 0 {
		return appname
	}
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}
