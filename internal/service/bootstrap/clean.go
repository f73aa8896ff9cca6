package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/oshokin/bootstrapper/internal/logger"
)

// Clean removes every artifact file. Missing files are not an error.
func (b *Bootstrapper) Clean(ctx context.Context) error {
	var result error

	for _, artifact := range b.artifacts {
		err := os.Remove(b.path(artifact.Filename))

		switch {
		case err == nil:
			logger.DebugKV(ctx, "Removed artifact", "artifact", artifact.Filename)
		case errors.Is(err, os.ErrNotExist):
		default:
			result = multierr.Append(result, fmt.Errorf("remove %s: %w", artifact.Filename, err))
		}
	}

	return result
}
