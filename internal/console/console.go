package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/colorstring"
	"golang.org/x/term"
)

// Console writes status output to stdout and diagnostics to stderr.
type Console struct {
	out         io.Writer
	errOut      io.Writer
	colorize    colorstring.Colorize
	interactive bool
}

// Option tweaks a Console.
type Option func(*Console)

// WithColor forces colors on or off regardless of terminal detection.
func WithColor(enabled bool) Option {
	return func(c *Console) {
		c.colorize.Disable = !enabled
	}
}

// WithInteractive forces the progress line on or off regardless of terminal detection.
func WithInteractive(enabled bool) Option {
	return func(c *Console) {
		c.interactive = enabled
	}
}

// New returns a console over the given writers. Colors and progress are
// enabled only when out is a terminal.
func New(out, errOut io.Writer, options ...Option) *Console {
	interactive := isTerminal(out)

	c := &Console{
		out:    out,
		errOut: errOut,
		colorize: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !interactive,
			Reset:   true,
		},
		interactive: interactive,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Stdio returns a console over the process standard streams.
func Stdio(noColor bool) *Console {
	if noColor {
		return New(os.Stdout, os.Stderr, WithColor(false))
	}

	return New(os.Stdout, os.Stderr)
}

// Printf writes a formatted message to stdout. Markup is taken from format only.
func (c *Console) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, c.colorize.Color(format), args...)
}

// Println writes a formatted message followed by a newline to stdout.
func (c *Console) Println(format string, args ...any) {
	c.Printf(format+"\n", args...)
}

// Errorln writes a formatted message followed by a newline to stderr.
func (c *Console) Errorln(format string, args ...any) {
	_, _ = fmt.Fprintf(c.errOut, c.colorize.Color(format+"\n"), args...)
}

// Flush makes a partial line visible before a long-running operation.
func (c *Console) Flush() {
	if f, ok := c.out.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

// Interactive reports whether the console draws progress lines.
func (c *Console) Interactive() bool {
	return c.interactive
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit into int.
}
