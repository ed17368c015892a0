// Package buildinfo carries version metadata stamped in at build time.
package buildinfo

// Set via -ldflags "-X ..." by the release build; defaults identify a
// from-source dev build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
