package bootstrap

import "strings"

// Artifact is a third-party source archive required as a build input.
type Artifact struct {
	// Filename is the local file name and the identity of the artifact.
	Filename string
	// URL is where the archive is downloaded from.
	URL string
	// Checksum is the expected lowercase hexadecimal digest of the full file content.
	Checksum string
}

// Matches reports whether the given digest equals the expected checksum.
// Comparison ignores case since manifests are edited by hand.
func (a Artifact) Matches(digest string) bool {
	return strings.EqualFold(a.Checksum, digest)
}

// BuildStep is one external command responsible for compiling one dependency.
type BuildStep struct {
	// Label names the step and its log file.
	Label string
	// Command is a shell command line run in the working directory.
	Command string
}

// LogFilename returns the name of the file receiving the step's combined output.
func (s BuildStep) LogFilename() string {
	return s.Label + ".log"
}
