// Package version reports the build identity stamped into the binary.
package version

import (
	"fmt"
	"runtime"
)

// Stamped at build time, e.g.
// -ldflags "-X github.com/felixgeelhaar/plancraft/internal/version.version=1.2.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Short returns the bare semantic version
func Short() string {
	return version
}

// Full returns a one-line build description for the version command.
// Commit hashes longer than 8 characters are truncated.
func Full() string {
	c := commit
	if len(c) > 8 {
		c = c[:8]
	}
	return fmt.Sprintf("plancraft %s (commit %s, built %s, %s, %s/%s)",
		version, c, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
