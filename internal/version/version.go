package version

import "fmt"

// Set at build time with -ldflags "-X github.com/banshee-data/minehint/internal/version.Version=...".
var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns the one-line version banner printed by "minehint version".
func String() string {
	return fmt.Sprintf("minehint %s (commit %s, built %s)", Version, GitSHA, BuildTime)
}
