package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"

	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
	"github.com/oshokin/bootstrapper/internal/logger"
	"github.com/oshokin/bootstrapper/internal/service/common"
)

// Fetch downloads every artifact that is not on disk yet and then verifies all of them.
// A failed download does not stop the others; every problem is reported before returning.
func (b *Bootstrapper) Fetch(ctx context.Context) error {
	var downloadErrors error

	for _, artifact := range b.artifacts {
		if err := ctx.Err(); err != nil {
			return multierr.Append(downloadErrors, err)
		}

		present, err := b.exists(artifact.Filename)
		if err != nil {
			downloadErrors = multierr.Append(downloadErrors, err)
			continue
		}

		if present {
			b.console.Println("Skipping \"%s\" as it is already here.", artifact.Filename)
			continue
		}

		if err = b.download(ctx, artifact); err != nil {
			logger.DebugKV(ctx, "Download failed", "artifact", artifact.Filename, "error", err)
			b.console.Errorln("[red]Download failed:[reset] %s: %v", artifact.Filename, err)
			downloadErrors = multierr.Append(downloadErrors, fmt.Errorf("download %s: %w", artifact.Filename, err))

			continue
		}

		b.console.Println("Download complete: %s", artifact.Filename)
	}

	// Interrupted runs skip verification.
	if err := ctx.Err(); err != nil {
		return multierr.Append(downloadErrors, err)
	}

	return multierr.Append(downloadErrors, b.Verify(ctx))
}

// Verify checks that every artifact exists and hashes to its recorded checksum.
// All artifacts are checked; failures are printed to stderr and returned together.
func (b *Bootstrapper) Verify(ctx context.Context) error {
	var result error

	for _, artifact := range b.artifacts {
		if err := b.verify(ctx, artifact); err != nil {
			b.console.Errorln("[red]File fails checksum verification:[reset] %s", artifact.Filename)
			result = multierr.Append(result, err)
		}
	}

	return result
}

func (b *Bootstrapper) verify(ctx context.Context, artifact domain.Artifact) error {
	actual, err := common.GetFileChecksum(b.path(artifact.Filename), b.hash)
	if errors.Is(err, os.ErrNotExist) {
		b.console.Errorln("Expected\t%s", artifact.Checksum)
		b.console.Errorln("Actual  \t(missing)")

		return fmt.Errorf("%s: %w", artifact.Filename, domain.ErrArtifactMissing)
	}

	if err != nil {
		b.console.Errorln("Expected\t%s", artifact.Checksum)
		b.console.Errorln("Actual  \t(unreadable: %v)", err)

		return fmt.Errorf("checksum %s: %w", artifact.Filename, err)
	}

	if !artifact.Matches(actual) {
		b.console.Errorln("Expected\t%s", artifact.Checksum)
		b.console.Errorln("Actual  \t%s", actual)

		return &domain.ChecksumMismatchError{
			Filename: artifact.Filename,
			Expected: artifact.Checksum,
			Actual:   actual,
		}
	}

	logger.DebugKV(ctx, "Checksum verified", "artifact", artifact.Filename, "checksum", actual)

	return nil
}

// exists reports whether a file with the given name is present in the working directory.
func (b *Bootstrapper) exists(name string) (bool, error) {
	_, err := os.Stat(b.path(name))

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
}
