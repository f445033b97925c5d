package config

import "fmt"

// Build metadata, injected at link time:
//
//	go build -ldflags "-X github.com/alphapie/pieview/internal/config.Version=1.2.0 \
//	                   -X github.com/alphapie/pieview/internal/config.Build=2025-06-15T10:00:00Z \
//	                   -X github.com/alphapie/pieview/internal/config.GitCommit=abc1234"
//
// Unset values fall back to the dev defaults below.
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the semantic version string.
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp.
func GetBuild() string {
	return Build
}

// GetGitCommit returns the git commit hash.
func GetGitCommit() string {
	return GitCommit
}

// GetFullVersion returns the version with build metadata, for startup logs
// and the version endpoint.
func GetFullVersion() string {
	return fmt.Sprintf("%s (build %s, commit %s)", Version, Build, GitCommit)
}
