package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
	"github.com/oshokin/bootstrapper/internal/logger"
)

// artifactFileMode is the mode of downloaded archives.
const artifactFileMode os.FileMode = 0o644

var (
	errBadHTTPStatus      = errors.New("unexpected http status")
	errIncompleteDownload = errors.New("incomplete download")
)

// download streams an artifact into a temporary file next to its target and
// renames it into place once the body has been received completely.
func (b *Bootstrapper) download(ctx context.Context, artifact domain.Artifact) error {
	ctx = logger.WithKV(ctx, "artifact", artifact.Filename)
	logger.DebugKV(ctx, "Downloading", "url", artifact.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artifact.URL, http.NoBody)
	if err != nil {
		return err
	}

	response, err := b.client.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%s, %s: %w", artifact.URL, response.Status, errBadHTTPStatus)
	}

	partial, err := os.CreateTemp(b.dir, "."+artifact.Filename+".*.part")
	if err != nil {
		return err
	}

	defer func() {
		_ = partial.Close()
		_ = os.Remove(partial.Name())
	}()

	if !b.console.Interactive() {
		b.console.Println("Downloading '%s'", artifact.Filename)
	}

	progress := b.console.NewProgress(artifact.Filename, response.ContentLength)
	written, err := io.Copy(io.MultiWriter(partial, progress), response.Body)

	progress.Done()

	if err != nil {
		return fmt.Errorf("receive body: %w", err)
	}

	if response.ContentLength > 0 && written != response.ContentLength {
		return fmt.Errorf("got %d of %d bytes: %w", written, response.ContentLength, errIncompleteDownload)
	}

	logger.DebugKV(ctx, "Received", "bytes", written)

	if err = partial.Close(); err != nil {
		return fmt.Errorf("close %s: %w", partial.Name(), err)
	}

	return b.install(partial.Name(), artifact.Filename)
}

// install renames a fully received file to its final name.
func (b *Bootstrapper) install(partial, filename string) error {
	if err := os.Chmod(partial, artifactFileMode); err != nil {
		return fmt.Errorf("chmod %s: %w", filename, err)
	}

	if err := os.Rename(partial, b.path(filename)); err != nil {
		return fmt.Errorf("install %s: %w", filename, err)
	}

	return nil
}
