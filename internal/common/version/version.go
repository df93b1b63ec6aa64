// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// These variables are injected at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a one-line version string.
func String() string {
	return fmt.Sprintf("ltscheck %s (%s, %s)", Version, Commit, BuildDate)
}

// Info returns the version line followed by toolchain and platform details.
func Info() string {
	var b strings.Builder
	b.WriteString(String())
	fmt.Fprintf(&b, "\n  go: %s", runtime.Version())
	fmt.Fprintf(&b, "\n  os/arch: %s/%s", runtime.GOOS, runtime.GOARCH)
	return b.String()
}

// Short returns just the version number
func Short() string {
	return Version
}

// UserAgent is sent with every feed request
func UserAgent() string {
	return fmt.Sprintf("ltscheck/%s (+https://github.com/obentoo/ltscheck; %s)", Version, runtime.Version())
}
