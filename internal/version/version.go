// Package version exposes the build identity stamped by the release scripts
// via -ldflags "-X ...".
package version

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the short git hash of the build.
	Commit = "unknown"
)
