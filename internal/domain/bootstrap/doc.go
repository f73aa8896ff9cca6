// Package bootstrap contains the core domain types of the dependency bootstrapper.
//
// It defines Artifact (a third-party source archive identified by filename),
// BuildStep (one external build command, ordered), the closed Verb set, and
// the typed errors reported by verification and build runs.
package bootstrap
