// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNameEmpty         = errors.New("file name cannot be empty")
	ErrNamePathTraversal = errors.New("file name contains path separator or null byte")
)

// File is one output file written by WriteAtomic
type File struct {
	Name    string
	Content []byte
}

// ValidateName checks that name is a plain file name without directories.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return ErrNamePathTraversal
	}
	return nil
}

// WriteAtomic writes every file into dir, creating dir if needed. Files are
// written to temporary names first and renamed once all writes succeeded,
// so a failure leaves none of the new files behind.
func WriteAtomic(dir string, files ...File) (paths []string, err error) {
	for _, f := range files {
		if err := ValidateName(f.Name); err != nil {
			return nil, fmt.Errorf("%q: %w", f.Name, err)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	temps := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}()

	for _, f := range files {
		tmp, err := writeTemp(dir, f)
		if err != nil {
			return nil, err
		}
		temps = append(temps, tmp)
	}

	renamed := make([]string, 0, len(files))
	for i, f := range files {
		target := filepath.Join(dir, f.Name)
		if err := os.Rename(temps[i], target); err != nil {
			for _, p := range renamed {
				_ = os.Remove(p)
			}
			return nil, fmt.Errorf("renaming %s: %w", f.Name, err)
		}
		renamed = append(renamed, target)
	}
	temps = temps[:0]

	return renamed, nil
}

// writeTemp writes f to a hidden temporary file in dir and returns its path
func writeTemp(dir string, f File) (string, error) {
	tmpFile, err := os.CreateTemp(dir, "."+f.Name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	path := tmpFile.Name()

	if _, writeErr := tmpFile.Write(f.Content); writeErr != nil {
		_ = tmpFile.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", f.Name, writeErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		_ = tmpFile.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("syncing %s: %w", f.Name, syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing %s: %w", f.Name, closeErr)
	}
	if chmodErr := os.Chmod(path, 0o644); chmodErr != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("chmod %s: %w", f.Name, chmodErr)
	}
	return path, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
