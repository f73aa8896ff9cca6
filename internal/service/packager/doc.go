// Package packager pins manifest checksums to the artifacts present on disk.
//
// It hashes every artifact in the working directory with the manifest's
// algorithm and returns a copy of the manifest carrying the computed digests.
// The result is meant to be saved as bootstrap.yaml after an upstream release
// was downloaded and inspected by hand.
package packager
