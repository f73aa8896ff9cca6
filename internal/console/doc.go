// Package console prints the human-facing status lines of the bootstrapper.
//
// Messages may carry colorstring markup such as "[green]done.[reset]";
// colors are rendered only when stdout is a terminal and not disabled.
// Download progress is drawn on a single updating line.
package console
