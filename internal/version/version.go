package version

import (
	git "github.com/go-git/go-git/v5"
)

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X github.com/hypersite/hypersite/internal/version.Version=v0.3.0".
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Generator returns the generator identification string embedded in pages
// and reports, e.g. "hypersite v0.3.0 (4f9c1d2)".
func Generator() string {
	if GitCommit == "unknown" || GitCommit == "" {
		return "hypersite " + Version
	}
	return "hypersite " + Version + " (" + GitCommit + ")"
}

// ResolveCommit attempts to resolve the current git HEAD commit for dir,
// searching parent directories for a repository. It is best-effort: when the
// directory is not inside a repository (or HEAD is unreadable) the current
// GitCommit value is returned unchanged.
func ResolveCommit(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return GitCommit
	}
	head, err := repo.Head()
	if err != nil {
		return GitCommit
	}
	sum := head.Hash().String()
	if len(sum) > 7 {
		sum = sum[:7]
	}
	return sum
}
