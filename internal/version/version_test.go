package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerator_WithoutCommit_OmitsParenthetical(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	Version = "v1.2.3"
	GitCommit = "unknown"
	require.Equal(t, "hypersite v1.2.3", Generator())
}

func TestGenerator_WithCommit_IncludesShortHash(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	Version = "v1.2.3"
	GitCommit = "4f9c1d2"
	got := Generator()
	require.True(t, strings.HasPrefix(got, "hypersite v1.2.3"))
	require.Contains(t, got, "(4f9c1d2)")
}

func TestResolveCommit_OutsideRepository_ReturnsExisting(t *testing.T) {
	origCommit := GitCommit
	t.Cleanup(func() { GitCommit = origCommit })

	GitCommit = "fallback"
	require.Equal(t, "fallback", ResolveCommit(t.TempDir()))
}
