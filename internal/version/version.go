// Package version carries build metadata stamped in by the release build.
package version

import (
	"fmt"
)

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the version, followed by the short commit and build date
// when the build stamped them.
func Info() string {
	if Commit == "none" && Date == "unknown" {
		return Version
	}
	short := Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", Version, short, Date)
}
