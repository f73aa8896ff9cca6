// Package config defines what the bootstrapper runs against.
//
// Settings are runtime knobs (working directory, manifest path, log level,
// download timeout, colors) read from BOOTSTRAP_* environment variables.
// Manifest is the immutable table of artifacts, checksums and ordered build
// steps, loaded from YAML or TOML or taken from the built-in default.
package config
