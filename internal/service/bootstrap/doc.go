// Package bootstrap fetches, verifies and builds third-party dependencies.
//
// A Bootstrapper is built once from a manifest and exposes one handler per
// verb: Fetch downloads missing archives and verifies every checksum,
// Build runs the ordered build steps until the first failure, Clean removes
// the archives, and All chains Fetch and Build.
package bootstrap
