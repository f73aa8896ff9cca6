package packager

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/multierr"

	"github.com/oshokin/bootstrapper/internal/config"
	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
	"github.com/oshokin/bootstrapper/internal/logger"
	"github.com/oshokin/bootstrapper/internal/service/common"
)

// Options contains inputs for the packager entry point.
type Options struct {
	// Dir holds the artifacts to hash.
	Dir string
	// Manifest lists the artifacts. It is not modified.
	Manifest *config.Manifest
}

// errManifestRequired is returned when Run is called without a manifest.
var errManifestRequired = errors.New("manifest is required")

// Run hashes every artifact of the manifest found in Dir and returns a pinned copy of the manifest.
// Every missing or unreadable artifact is reported; the copy is only returned when all of them were hashed.
func Run(ctx context.Context, opts *Options) (*config.Manifest, error) {
	if opts == nil || opts.Manifest == nil {
		return nil, errManifestRequired
	}

	ctx = logger.WithName(ctx, "packager")

	hash, err := opts.Manifest.Hash()
	if err != nil {
		return nil, err
	}

	pinned := &config.Manifest{
		ChecksumAlgorithm: opts.Manifest.ChecksumAlgorithm,
		Artifacts:         maps.Clone(opts.Manifest.Artifacts),
		BuildSteps:        slices.Clone(opts.Manifest.BuildSteps),
	}

	var result error

	for _, artifact := range opts.Manifest.ArtifactList() {
		path := filepath.Join(opts.Dir, artifact.Filename)

		checksum, hashErr := common.GetFileChecksum(path, hash)
		if errors.Is(hashErr, os.ErrNotExist) {
			result = multierr.Append(result, fmt.Errorf("%s: %w", artifact.Filename, domain.ErrArtifactMissing))
			continue
		} else if hashErr != nil {
			result = multierr.Append(result, hashErr)
			continue
		}

		if artifact.Matches(checksum) {
			logger.DebugKV(ctx, "Checksum unchanged", "file", artifact.Filename)
			continue
		}

		logger.InfoKV(ctx, "Pinning checksum",
			"file", artifact.Filename,
			"previous", artifact.Checksum,
			"current", checksum)

		source := pinned.Artifacts[artifact.Filename]
		source.Checksum = checksum
		pinned.Artifacts[artifact.Filename] = source
	}

	if result != nil {
		return nil, result
	}

	return pinned, nil
}
