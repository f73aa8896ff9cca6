// Package version identifies the bootstrapper binary that fetched and built
// a dependency tree.
//
// Release builds set Version, Commit and BuildTime with
// -ldflags "-X github.com/oshokin/bootstrapper/internal/version.Commit=...".
// `bootstrapper version` prints them, which helps match build logs to the
// manifest of the binary that produced them.
package version
