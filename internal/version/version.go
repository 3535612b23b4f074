// Package version holds build metadata, set at link time with
// -ldflags "-X github.com/banshee-data/linda/internal/version.Version=...".
package version

var (
	// Version is the release version of lidarsim.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)
