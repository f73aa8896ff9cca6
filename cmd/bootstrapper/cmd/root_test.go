package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/bootstrapper/internal/config"
	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
)

// execute runs a fresh root command with args and returns its captured streams.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

// TestHelp_ListsVerbs verifies help names the invocation form and every verb.
func TestHelp_ListsVerbs(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "help")
	require.NoError(t, err)
	require.Contains(t, stdout, "bootstrapper <VERB>")

	for _, verb := range domain.Verbs() {
		require.Contains(t, stdout, "  "+verb.String()+" ")
	}

	require.NotContains(t, stdout, "completion")
}

// TestNoVerb_FailsWithUsage verifies a bare invocation prints a diagnostic and usage.
func TestNoVerb_FailsWithUsage(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := execute(t)
	require.ErrorIs(t, err, errVerbRequired)
	require.Contains(t, stderr, "Must specify a verb on the command-line.")

	// Usage goes to the redirected output stream.
	require.Contains(t, stdout+stderr, "Usage:")
	require.Contains(t, stdout+stderr, "Available Commands:")
}

// TestUnknownVerb_Fails verifies a word outside the verb set is rejected.
func TestUnknownVerb_Fails(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "frobnicate")
	require.ErrorIs(t, err, domain.ErrUnknownVerb)
	require.Contains(t, stderr, "frobnicate")
}

// TestVerb_RejectsExtraArguments verifies verbs take no positional arguments.
func TestVerb_RejectsExtraArguments(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "clean", "extra")
	require.Error(t, err)
}

// TestClean_RemovesBuiltinArtifacts verifies clean works against the built-in manifest.
func TestClean_RemovesBuiltinArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	artifact := filepath.Join(dir, "SDL-1.2.14.tar.gz")
	require.NoError(t, os.WriteFile(artifact, []byte("stale"), config.DefaultFilePermissions))

	_, _, err := execute(t, "clean", "--dir", dir, "--no-color")
	require.NoError(t, err)
	require.NoFileExists(t, artifact)

	// Nothing left to delete.
	_, _, err = execute(t, "clean", "--dir", dir)
	require.NoError(t, err)
}

// TestVerb_FailsOnMissingDirectory verifies configuration errors fail the run.
func TestVerb_FailsOnMissingDirectory(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "clean", "--dir", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestVerb_FailsOnBadLogLevel verifies an unknown log level is reported before any work.
func TestVerb_FailsOnBadLogLevel(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "clean", "--dir", t.TempDir(), "--log-level", "loud")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown log level")
}

// TestManifest_PrintsBuiltinYAML verifies the effective manifest round-trips through YAML.
func TestManifest_PrintsBuiltinYAML(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "manifest", "--dir", t.TempDir())
	require.NoError(t, err)

	var printed config.Manifest
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &printed))
	require.Equal(t, config.DefaultManifest(), &printed)
}

// TestManifest_PrintsTOML verifies the format flag selects TOML output.
func TestManifest_PrintsTOML(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "manifest", "--dir", t.TempDir(), "--format", "toml")
	require.NoError(t, err)

	var printed config.Manifest
	require.NoError(t, toml.Unmarshal([]byte(stdout), &printed))
	require.Len(t, printed.Artifacts, len(config.DefaultManifest().Artifacts))
}

// TestManifest_OutputIsPickedUp verifies a saved manifest becomes the default of the working directory.
func TestManifest_OutputIsPickedUp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, config.DefaultManifestFilename)

	_, _, err := execute(t, "manifest", "--dir", dir, "--output", output)
	require.NoError(t, err)
	require.FileExists(t, output)

	loaded, source, err := config.Load(&config.Settings{Dir: dir})
	require.NoError(t, err)
	require.Equal(t, output, source)
	require.Equal(t, config.DefaultManifest(), loaded)
}

// TestManifest_PinRequiresArtifacts verifies pinning fails when artifacts are not downloaded.
func TestManifest_PinRequiresArtifacts(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "manifest", "--dir", t.TempDir(), "--pin")
	require.ErrorIs(t, err, domain.ErrArtifactMissing)
}

// TestVersion_Prints verifies the version subcommand is attached.
func TestVersion_Prints(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "bootstrapper ")
}
