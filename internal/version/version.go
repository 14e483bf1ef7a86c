// Package version provides build-time version information.
package version

// Set at build time via -ldflags, for example:
//
//	go build -ldflags "-X draftboard/internal/version.Version=1.2.0"
var (
	// Version is the semantic version of this build.
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built.
	BuildTime = "unknown"

	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)
