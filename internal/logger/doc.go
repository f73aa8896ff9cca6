// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder writing to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Human-facing status lines of the bootstrapper are printed by the console
// package on stdout; this logger carries diagnostics only, so the two never
// interleave on the same stream.
package logger
