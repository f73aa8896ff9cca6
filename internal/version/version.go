package version

import "fmt"

// Build metadata, overridden via ldflags.
var (
	Version   = "0.1.0"
	Commit    = "none"
	BuildTime = "unknown"
)

// Short returns the release number alone.
func Short() string {
	return Version
}

// Full returns the line printed by `bootstrapper version`.
func Full() string {
	return fmt.Sprintf("bootstrapper %s (commit %s, built %s)", Version, Commit, BuildTime)
}
