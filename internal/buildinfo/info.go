// Package buildinfo carries version metadata stamped at link time.
package buildinfo

// Overridden via -ldflags on release builds; the defaults identify a
// from-source build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
