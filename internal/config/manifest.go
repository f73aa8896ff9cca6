package config

import (
	"bytes"
	"crypto"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	goupdate "github.com/doitdistributed/go-update"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/syntax"

	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
	"github.com/oshokin/bootstrapper/internal/service/common"
)

// Manifest lists the artifacts to fetch and the build steps to run.
type Manifest struct {
	// ChecksumAlgorithm names the digest used for every artifact checksum.
	ChecksumAlgorithm string `yaml:"checksum_algorithm" toml:"checksum_algorithm"`
	// Artifacts maps artifact filenames to their source and checksum.
	Artifacts map[string]ArtifactSource `yaml:"artifacts" toml:"artifacts"`
	// BuildSteps are run in the listed order.
	BuildSteps []StepSpec `yaml:"build_steps" toml:"build_steps"`
}

// ArtifactSource tells where an artifact comes from and what it must hash to.
type ArtifactSource struct {
	// URL is the http(s) download location.
	URL string `yaml:"url" toml:"url"`
	// Checksum is the expected hex digest.
	Checksum string `yaml:"checksum" toml:"checksum"`
}

// StepSpec is the serialized form of a build step.
type StepSpec struct {
	// Label names the step and its log file.
	Label string `yaml:"label" toml:"label"`
	// Command is the shell command line.
	Command string `yaml:"command" toml:"command"`
}

var (
	errManifestIsNotSet      = errors.New("manifest is not set")
	errNoArtifacts           = errors.New("manifest has no artifacts")
	errBadArtifactFilename   = errors.New("artifact filename must be a plain file name")
	errArtifactURLRequired   = errors.New("artifact url must be provided")
	errUnsupportedURLScheme  = errors.New("unsupported url scheme")
	errBadChecksum           = errors.New("malformed checksum")
	errStepLabelRequired     = errors.New("build step label must be provided")
	errBadStepLabel          = errors.New("build step label must be usable as a file name")
	errDuplicateStepLabel    = errors.New("duplicate build step label")
	errStepCommandRequired   = errors.New("build step command must be provided")
	errUnsupportedFileFormat = errors.New("unsupported manifest format")
)

// LoadManifest reads a manifest from path; the format follows the file extension.
func LoadManifest(path string) (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest

	switch format := manifestFormat(path); format {
	case "yaml":
		decoder := yaml.NewDecoder(bytes.NewReader(contents))
		decoder.KnownFields(true)

		if err = decoder.Decode(&manifest); err != nil {
			return nil, fmt.Errorf("unmarshal manifest %s: %w", path, err)
		}
	case "toml":
		decoder := toml.NewDecoder(bytes.NewReader(contents))
		decoder.DisallowUnknownFields()

		if err = decoder.Decode(&manifest); err != nil {
			return nil, fmt.Errorf("unmarshal manifest %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, errUnsupportedFileFormat)
	}

	if err = manifest.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	return &manifest, nil
}

// SaveManifest writes the manifest to path in the format implied by its extension.
// An existing file is swapped atomically, so readers never see a half-written manifest.
func SaveManifest(path string, manifest *Manifest) error {
	if manifest == nil {
		return errManifestIsNotSet
	}

	if err := manifest.Validate(); err != nil {
		return err
	}

	data, err := manifest.Marshal(manifestFormat(path))
	if err != nil {
		return err
	}

	path = filepath.Clean(path)

	_, err = os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err = os.WriteFile(path, data, DefaultFilePermissions); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	case err != nil:
		return fmt.Errorf("stat %s: %w", path, err)
	default:
		//nolint:exhaustruct // Signatures and patches are not used for manifests.
		options := goupdate.Options{
			TargetPath: path,
			TargetMode: DefaultFilePermissions,
		}

		if err = goupdate.Apply(bytes.NewReader(data), options); err != nil {
			return fmt.Errorf("replace manifest: %w", err)
		}
	}

	return nil
}

// Marshal encodes the manifest as "yaml" or "toml".
func (m *Manifest) Marshal(format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case "yaml":
		data, err = yaml.Marshal(m)
	case "toml":
		data, err = toml.Marshal(m)
	default:
		return nil, fmt.Errorf("%q: %w", format, errUnsupportedFileFormat)
	}

	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}

	return data, nil
}

// Validate checks the manifest for problems that would only surface mid-run otherwise.
func (m *Manifest) Validate() error {
	if m == nil {
		return errManifestIsNotSet
	}

	hash, err := m.Hash()
	if err != nil {
		return err
	}

	if len(m.Artifacts) == 0 {
		return errNoArtifacts
	}

	for filename, source := range m.Artifacts {
		if err = validateArtifact(filename, source, hash); err != nil {
			return err
		}
	}

	parser := syntax.NewParser()
	labels := make(map[string]struct{}, len(m.BuildSteps))

	for i, step := range m.BuildSteps {
		if err = validateStep(parser, step); err != nil {
			return fmt.Errorf("build step #%d: %w", i+1, err)
		}

		if _, seen := labels[step.Label]; seen {
			return fmt.Errorf("%s: %w", step.Label, errDuplicateStepLabel)
		}

		labels[step.Label] = struct{}{}
	}

	return nil
}

// Hash resolves the manifest checksum algorithm.
func (m *Manifest) Hash() (crypto.Hash, error) {
	return common.ParseChecksumAlgorithm(m.ChecksumAlgorithm)
}

// ArtifactList returns the artifacts sorted by filename.
func (m *Manifest) ArtifactList() []domain.Artifact {
	result := make([]domain.Artifact, 0, len(m.Artifacts))
	for filename, source := range m.Artifacts {
		result = append(result, domain.Artifact{
			Filename: filename,
			URL:      source.URL,
			Checksum: strings.ToLower(source.Checksum),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Filename < result[j].Filename
	})

	return result
}

// StepList returns the build steps in execution order.
func (m *Manifest) StepList() []domain.BuildStep {
	result := make([]domain.BuildStep, 0, len(m.BuildSteps))
	for _, step := range m.BuildSteps {
		result = append(result, domain.BuildStep{
			Label:   step.Label,
			Command: step.Command,
		})
	}

	return result
}

func validateArtifact(filename string, source ArtifactSource, hash crypto.Hash) error {
	if filename == "" || filename == "." || filename == ".." || filepath.Base(filename) != filename {
		return fmt.Errorf("%q: %w", filename, errBadArtifactFilename)
	}

	if source.URL == "" {
		return fmt.Errorf("%s: %w", filename, errArtifactURLRequired)
	}

	parsed, err := url.ParseRequestURI(source.URL)
	if err != nil {
		return fmt.Errorf("%s: invalid url: %w", filename, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s: %q: %w", filename, parsed.Scheme, errUnsupportedURLScheme)
	}

	if len(source.Checksum) != common.DigestSize(hash) {
		return fmt.Errorf("%s: want %d hex characters: %w", filename, common.DigestSize(hash), errBadChecksum)
	}

	if _, err = hex.DecodeString(source.Checksum); err != nil {
		return fmt.Errorf("%s: %w", filename, errBadChecksum)
	}

	return nil
}

func validateStep(parser *syntax.Parser, step StepSpec) error {
	if step.Label == "" {
		return errStepLabelRequired
	}

	if strings.ContainsAny(step.Label, `/\`) || step.Label == "." || step.Label == ".." {
		return fmt.Errorf("%q: %w", step.Label, errBadStepLabel)
	}

	if strings.TrimSpace(step.Command) == "" {
		return fmt.Errorf("%s: %w", step.Label, errStepCommandRequired)
	}

	if _, err := parser.Parse(strings.NewReader(step.Command), step.Label); err != nil {
		return fmt.Errorf("%s: parse command: %w", step.Label, err)
	}

	return nil
}

// manifestFormat maps a file extension to a format name. Files without extension are YAML.
func manifestFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml", "":
		return "yaml"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}
