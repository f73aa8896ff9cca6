//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"crypto"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Register hash implementations used by checksum algorithms.
	_ "crypto/md5"  //nolint:gosec // MD5 is what upstream archives publish.
	_ "crypto/sha1" //nolint:gosec // Same as above.
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// DefaultChecksumAlgorithm matches the digests recorded in the built-in manifest.
const DefaultChecksumAlgorithm = "md5"

var (
	errHashUnavailable  = errors.New("hash function unavailable")
	errUnknownAlgorithm = errors.New("unknown checksum algorithm")
)

//nolint:gochecknoglobals // Read-only lookup table.
var checksumAlgorithms = map[string]crypto.Hash{
	"md5":    crypto.MD5,
	"sha1":   crypto.SHA1,
	"sha256": crypto.SHA256,
	"sha512": crypto.SHA512,
}

// ChecksumAlgorithms returns supported algorithm names in alphabetical order.
func ChecksumAlgorithms() []string {
	names := make([]string, 0, len(checksumAlgorithms))
	for name := range checksumAlgorithms {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ParseChecksumAlgorithm resolves an algorithm name; the empty name selects the default.
func ParseChecksumAlgorithm(name string) (crypto.Hash, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultChecksumAlgorithm
	}

	hash, ok := checksumAlgorithms[name]
	if !ok {
		return 0, fmt.Errorf("%q (supported: %s): %w",
			name, strings.Join(ChecksumAlgorithms(), ", "), errUnknownAlgorithm)
	}

	if !hash.Available() {
		return 0, fmt.Errorf("%s: %w", name, errHashUnavailable)
	}

	return hash, nil
}

// DigestSize returns the length in hex characters of a digest produced by hash.
func DigestSize(hash crypto.Hash) int {
	return hex.EncodedLen(hash.Size())
}

// GetFileChecksum returns the lowercase hex digest of the full file content.
func GetFileChecksum(path string, hash crypto.Hash) (string, error) {
	if !hash.Available() {
		return "", fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = file.Close()
	}()

	hasher := hash.New()
	if _, err = io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("calculate checksum: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
