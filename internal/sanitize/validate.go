// Package sanitize validates names and paths that end up on disk or in the
// operating-system event log.
package sanitize

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation errors for security checks.
var (
	// ErrPathTraversal indicates a path contains directory traversal sequences.
	ErrPathTraversal = errors.New("path contains directory traversal")

	// ErrEmptyPath indicates an empty path was provided.
	ErrEmptyPath = errors.New("path cannot be empty")

	// ErrInvalidName indicates a name cannot be used as a file name component
	// or event source.
	ErrInvalidName = errors.New("invalid name")
)

// MaxNameLength bounds application, log and source names. The Windows event
// log rejects source names longer than this.
const MaxNameLength = 211

// reservedNameChars cannot appear in a file name on at least one supported
// platform.
const reservedNameChars = `/\:*?"<>|`

// ValidateName checks that name can be used both as part of a file name and
// as an event-log source or log name:
//   - non-empty, valid UTF-8, at most MaxNameLength bytes
//   - no path separators or characters reserved by Windows file names
//   - no control characters
//   - not "." or ".." and no ".." sequence
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: contains invalid UTF-8", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: exceeds max length %d", ErrInvalidName, MaxNameLength)
	}
	if strings.Contains(name, "..") || name == "." {
		return fmt.Errorf("%w: %w", ErrInvalidName, ErrPathTraversal)
	}
	if strings.ContainsAny(name, reservedNameChars) {
		return fmt.Errorf("%w: contains one of %s", ErrInvalidName, reservedNameChars)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: contains control characters", ErrInvalidName)
		}
	}
	return nil
}

// ValidatePath checks a path for security issues:
//   - No directory traversal (..)
//   - Resolves to absolute path and validates it stays within expected root
//   - Returns the cleaned, absolute path or an error
//
// If allowedRoot is empty, only traversal checks are performed.
// If allowedRoot is provided, the path must resolve within that directory.
func ValidatePath(path, allowedRoot string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	// Check for obvious traversal patterns before any processing
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("%w: contains '..'", ErrPathTraversal)
	}

	cleanPath := filepath.Clean(path)

	absPath := cleanPath
	if !filepath.IsAbs(cleanPath) {
		var err error
		absPath, err = filepath.Abs(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path: %w", err)
		}
	}

	if allowedRoot != "" {
		absRoot, err := filepath.Abs(allowedRoot)
		if err != nil {
			return "", fmt.Errorf("failed to resolve allowed root: %w", err)
		}

		rel, err := filepath.Rel(absRoot, absPath)
		if err != nil {
			return "", fmt.Errorf("%w: path outside allowed root", ErrPathTraversal)
		}
		if strings.HasPrefix(rel, "..") {
			return "", fmt.Errorf("%w: path escapes allowed root", ErrPathTraversal)
		}
	}

	return absPath, nil
}
