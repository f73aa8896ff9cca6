package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// runShell interprets a command line with a POSIX shell in dir.
// Both output streams go to out; external programs run as sub-processes.
func runShell(ctx context.Context, dir, name, command string, out io.Writer) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), name)
	if err != nil {
		return fmt.Errorf("parse command: %w", err)
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, out, out),
	)
	if err != nil {
		return fmt.Errorf("initialize shell: %w", err)
	}

	return runner.Run(ctx, file)
}

// exitStatus extracts the shell exit status from err, or -1 if the command did not finish.
func exitStatus(err error) int {
	if status, ok := interp.IsExitStatus(err); ok {
		return int(status)
	}

	return -1
}
