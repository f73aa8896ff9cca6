package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/oshokin/bootstrapper/internal/logger"
)

// Settings holds runtime parameters that are not part of the manifest.
type Settings struct {
	// Dir is the working directory receiving artifacts and build logs.
	Dir string `env:"BOOTSTRAP_DIR" envDefault:"."`
	// ManifestPath points to a YAML or TOML manifest. Empty means auto-detect.
	ManifestPath string `env:"BOOTSTRAP_MANIFEST"`
	// LogLevel is the minimum level of diagnostic messages.
	LogLevel string `env:"BOOTSTRAP_LOG_LEVEL" envDefault:"warn"`
	// Timeout bounds a single artifact download.
	Timeout time.Duration `env:"BOOTSTRAP_HTTP_TIMEOUT" envDefault:"30m"`
	// NoColor disables colored console output.
	NoColor bool `env:"BOOTSTRAP_NO_COLOR"`
}

const (
	// DefaultManifestFilename is picked up from the working directory when no manifest is given.
	DefaultManifestFilename = "bootstrap.yaml"

	// DefaultTimeout is the default duration of a single download.
	DefaultTimeout = 30 * time.Minute

	// DefaultFilePermissions is the permission used for files written by the bootstrapper.
	DefaultFilePermissions = 0o644

	// noColorVariable is the cross-tool convention for disabling colors.
	noColorVariable = "NO_COLOR"
)

var (
	// errSettingsAreNotSet is returned when nil settings are validated.
	errSettingsAreNotSet = errors.New("settings are not set")
	// errNotADirectory is returned when the working directory is a file.
	errNotADirectory = errors.New("not a directory")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// LoadSettings reads settings from the process environment.
func LoadSettings() (*Settings, error) {
	return loadSettings(nil)
}

// loadSettings reads settings from environment, or from the process environment when it is nil.
func loadSettings(environment map[string]string) (*Settings, error) {
	var settings Settings

	//nolint:exhaustruct // Library defaults are fine for the rest.
	opts := env.Options{Environment: environment}
	if err := env.ParseWithOptions(&settings, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if lookupEnv(environment, noColorVariable) != "" {
		settings.NoColor = true
	}

	return &settings, nil
}

// Validate checks settings and fills defaults for zero values.
func (s *Settings) Validate() error {
	if s == nil {
		return errSettingsAreNotSet
	}

	if s.Dir == "" {
		s.Dir = "."
	}

	s.Dir = filepath.Clean(s.Dir)

	info, err := os.Stat(s.Dir)
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("working directory %s: %w", s.Dir, errNotADirectory)
	}

	if s.LogLevel == "" {
		s.LogLevel = "warn"
	}

	if _, ok := logger.ParseLogLevel(s.LogLevel); !ok {
		return fmt.Errorf("%q: %w", s.LogLevel, errUnknownLogLevel)
	}

	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}

	return nil
}

// ResolveManifestPath returns the manifest file to load, or "" when the built-in manifest applies.
// An explicit path wins; otherwise DefaultManifestFilename is used if it exists in Dir.
func (s *Settings) ResolveManifestPath() (string, error) {
	if s.ManifestPath != "" {
		return filepath.Clean(s.ManifestPath), nil
	}

	candidate := filepath.Join(s.Dir, DefaultManifestFilename)

	_, err := os.Stat(candidate)
	switch {
	case err == nil:
		return candidate, nil
	case errors.Is(err, os.ErrNotExist):
		return "", nil
	default:
		return "", fmt.Errorf("stat %s: %w", candidate, err)
	}
}

func lookupEnv(environment map[string]string, key string) string {
	if environment == nil {
		return os.Getenv(key)
	}

	return environment[key]
}
