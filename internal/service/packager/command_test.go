package packager

import (
	"context"
	"crypto/sha1" //nolint:gosec // Test manifest uses sha1.
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/oshokin/bootstrapper/internal/config"
	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
)

func sha1Hex(body []byte) string {
	sum := sha1.Sum(body) //nolint:gosec // Test manifest uses sha1.

	return hex.EncodeToString(sum[:])
}

func testManifest() *config.Manifest {
	return &config.Manifest{
		ChecksumAlgorithm: "sha1",
		Artifacts: map[string]config.ArtifactSource{
			"a.tar.gz": {URL: "https://example.com/a.tar.gz", Checksum: sha1Hex([]byte("old a"))},
			"b.tar.gz": {URL: "https://example.com/b.tar.gz", Checksum: sha1Hex([]byte("b"))},
		},
		BuildSteps: []config.StepSpec{{Label: "a", Command: "true"}},
	}
}

// TestRun_PinsChangedChecksums verifies changed files get new digests and the input stays untouched.
func TestRun_PinsChangedChecksums(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tar.gz"), []byte("new a"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.tar.gz"), []byte("b"), 0o600))

	manifest := testManifest()
	original := manifest.Artifacts["a.tar.gz"].Checksum

	pinned, err := Run(context.Background(), &Options{Dir: dir, Manifest: manifest})
	require.NoError(t, err)
	require.Equal(t, sha1Hex([]byte("new a")), pinned.Artifacts["a.tar.gz"].Checksum)
	require.Equal(t, "https://example.com/a.tar.gz", pinned.Artifacts["a.tar.gz"].URL)
	require.Equal(t, sha1Hex([]byte("b")), pinned.Artifacts["b.tar.gz"].Checksum)
	require.Equal(t, manifest.BuildSteps, pinned.BuildSteps)
	require.NoError(t, pinned.Validate())

	require.Equal(t, original, manifest.Artifacts["a.tar.gz"].Checksum)
}

// TestRun_ReportsEveryMissingArtifact verifies all missing files are reported together.
func TestRun_ReportsEveryMissingArtifact(t *testing.T) {
	t.Parallel()

	pinned, err := Run(context.Background(), &Options{Dir: t.TempDir(), Manifest: testManifest()})
	require.Nil(t, pinned)
	require.ErrorIs(t, err, domain.ErrArtifactMissing)
	require.Len(t, multierr.Errors(err), 2)
}

// TestRun_RequiresManifest verifies nil input is rejected.
func TestRun_RequiresManifest(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), &Options{Dir: t.TempDir()})
	require.ErrorIs(t, err, errManifestRequired)
}
