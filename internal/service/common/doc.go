// Package common holds helpers shared by bootstrapper services.
//
// It maps checksum algorithm names to crypto.Hash values and computes
// lowercase hexadecimal digests over files on disk.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
