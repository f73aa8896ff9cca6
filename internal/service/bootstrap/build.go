package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
	"github.com/oshokin/bootstrapper/internal/logger"
)

// Build runs every build step in order and stops at the first failure.
// Logs of all steps are removed up front, so each log reflects only this run.
func (b *Bootstrapper) Build(ctx context.Context) error {
	for _, step := range b.steps {
		if err := os.Remove(b.path(step.LogFilename())); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.WarnKV(ctx, "Unable to remove old build log", "log", step.LogFilename(), "error", err)
		}
	}

	for _, step := range b.steps {
		if err := b.buildStep(ctx, step); err != nil {
			return err
		}
	}

	return nil
}

func (b *Bootstrapper) buildStep(ctx context.Context, step domain.BuildStep) error {
	ctx = logger.WithKV(ctx, "step", step.Label)

	b.console.Printf("Building %s ... ", step.Label)
	b.console.Flush()

	logPath := b.path(step.LogFilename())

	logFile, err := os.Create(logPath)
	if err != nil {
		b.console.Println("[red]failed.")

		return &domain.BuildStepError{Label: step.Label, LogPath: logPath, ExitStatus: -1, Err: err}
	}

	logger.DebugKV(ctx, "Running build command", "command", step.Command, "log", logPath)

	runErr := runShell(ctx, b.dir, step.Label, step.Command, logFile)
	closeErr := logFile.Close()

	if runErr != nil {
		b.console.Println("[red]failed.[reset]\nRefer to \"%s\"", step.LogFilename())

		return &domain.BuildStepError{
			Label:      step.Label,
			LogPath:    logPath,
			ExitStatus: exitStatus(runErr),
			Err:        runErr,
		}
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", logPath, closeErr)
	}

	b.console.Println("[green]done.")

	return nil
}
