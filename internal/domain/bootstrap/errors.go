package bootstrap

import (
	"errors"
	"fmt"
)

// ErrArtifactMissing is reported by verification for artifacts absent on disk.
var ErrArtifactMissing = errors.New("artifact is missing")

// ChecksumMismatchError reports an artifact whose content digest differs from the recorded one.
type ChecksumMismatchError struct {
	// Filename identifies the artifact.
	Filename string
	// Expected is the digest recorded in the manifest.
	Expected string
	// Actual is the digest computed over the file on disk.
	Actual string
}

// Error implements the error interface.
func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("%s: checksum mismatch: expected %s, actual %s", e.Filename, e.Expected, e.Actual)
}

// BuildStepError reports a build step whose command exited unsuccessfully.
type BuildStepError struct {
	// Label names the failed step.
	Label string
	// LogPath points to the captured output of the step.
	LogPath string
	// ExitStatus is the shell exit status, or -1 when the command did not run to completion.
	ExitStatus int
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *BuildStepError) Error() string {
	return fmt.Sprintf("build step %s failed (exit status %d), refer to %q: %v",
		e.Label, e.ExitStatus, e.LogPath, e.Err)
}

// Unwrap exposes the underlying failure to errors.Is and errors.As.
func (e *BuildStepError) Unwrap() error {
	return e.Err
}
