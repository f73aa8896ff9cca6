package bootstrap

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"

	"github.com/oshokin/bootstrapper/internal/config"
	"github.com/oshokin/bootstrapper/internal/console"
	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
	"github.com/oshokin/bootstrapper/internal/logger"
)

// Options are inputs accepted by New.
type Options struct {
	// Dir is the working directory for artifacts and build logs.
	Dir string
	// Manifest provides artifacts, build steps and the checksum algorithm.
	Manifest *config.Manifest
	// Console receives status output. Defaults to the process standard streams.
	Console *console.Console
	// HTTPClient downloads artifacts. Defaults to a client with config.DefaultTimeout.
	HTTPClient *http.Client
}

// Handler runs one verb.
type Handler func(ctx context.Context) error

// Bootstrapper holds the immutable tables for one run.
type Bootstrapper struct {
	dir       string
	artifacts []domain.Artifact
	steps     []domain.BuildStep
	hash      crypto.Hash
	console   *console.Console
	client    *http.Client
	handlers  map[domain.Verb]Handler
}

var (
	errManifestRequired = errors.New("manifest is required")
	errNotAnOperation   = errors.New("verb is handled by the command line")
)

// New validates the manifest and prepares a Bootstrapper.
func New(opts *Options) (*Bootstrapper, error) {
	if opts == nil || opts.Manifest == nil {
		return nil, errManifestRequired
	}

	if err := opts.Manifest.Validate(); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}

	hash, err := opts.Manifest.Hash()
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	out := opts.Console
	if out == nil {
		out = console.Stdio(false)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: config.DefaultTimeout}
	}

	b := &Bootstrapper{
		dir:       filepath.Clean(dir),
		artifacts: opts.Manifest.ArtifactList(),
		steps:     opts.Manifest.StepList(),
		hash:      hash,
		console:   out,
		client:    client,
	}

	b.handlers = map[domain.Verb]Handler{
		domain.VerbClean: b.Clean,
		domain.VerbFetch: b.Fetch,
		domain.VerbBuild: b.Build,
		domain.VerbAll:   b.All,
	}

	return b, nil
}

// Run dispatches a verb to its handler. Help is rendered by the command line and is rejected here.
func (b *Bootstrapper) Run(ctx context.Context, verb domain.Verb) error {
	if _, err := domain.ParseVerb(verb.String()); err != nil {
		return err
	}

	handler, ok := b.handlers[verb]
	if !ok {
		return fmt.Errorf("%s: %w", verb, errNotAnOperation)
	}

	ctx = logger.WithName(ctx, verb.String())
	logger.DebugKV(ctx, "Running verb", "dir", b.dir)

	return handler(ctx)
}

// All fetches and then builds. The first failure ends the run.
func (b *Bootstrapper) All(ctx context.Context) error {
	if err := b.Fetch(ctx); err != nil {
		return err
	}

	return b.Build(ctx)
}

// Artifacts returns a copy of the configured artifacts sorted by filename.
func (b *Bootstrapper) Artifacts() []domain.Artifact {
	return slices.Clone(b.artifacts)
}

// Steps returns a copy of the configured build steps in execution order.
func (b *Bootstrapper) Steps() []domain.BuildStep {
	return slices.Clone(b.steps)
}

// path resolves a file name inside the working directory.
func (b *Bootstrapper) path(name string) string {
	return filepath.Join(b.dir, name)
}
