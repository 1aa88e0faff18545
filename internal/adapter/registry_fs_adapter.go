// Package adapter contains filesystem and storage adapters for the schemalens CLI.
package adapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "schemalens.dev/pkg/schemalens/internal/model"
)

// recursiveSuffix marks a path as "this directory and everything below",
// mirroring the Go tool's package pattern.
const recursiveSuffix = "/..."

// RegistryFSAdapter abstracts the filesystem operations the domain layer
// needs when collecting registry files, so workflow logic can be tested
// without touching the disk.
type RegistryFSAdapter interface {
	// Collect resolves path patterns to registry files (.yaml/.yml),
	// skipping files whose path matches any exclude regex. A "./..."
	// suffix walks the directory recursively; a plain directory is
	// scanned one level deep; a file path is taken as-is.
	Collect(paths []m.Path, exclude []string) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)
}

// LocalRegistryFSAdapter is a RegistryFSAdapter backed by the local disk.
type LocalRegistryFSAdapter struct{}

// NewLocalRegistryFSAdapter constructs a LocalRegistryFSAdapter.
func NewLocalRegistryFSAdapter() *LocalRegistryFSAdapter {
	return &LocalRegistryFSAdapter{}
}

// Collect implements RegistryFSAdapter.
func (a *LocalRegistryFSAdapter) Collect(paths []m.Path, exclude []string) ([]m.Path, error) {
	patterns, err := compilePatterns(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"." + recursiveSuffix}
	}

	var collected []m.Path

	for _, path := range paths {
		root := string(path)
		recursive := strings.HasSuffix(root, recursiveSuffix)
		if recursive {
			root = strings.TrimSuffix(root, recursiveSuffix)
			if root == "" {
				root = "."
			}
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if !excluded(root, patterns) {
				collected = append(collected, m.Path(root))
			}

			continue
		}

		files, err := collectDir(root, recursive, patterns)
		if err != nil {
			return nil, err
		}

		collected = append(collected, files...)
	}

	return collected, nil
}

// ReadFile implements RegistryFSAdapter.
func (a *LocalRegistryFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}

func collectDir(root string, recursive bool, patterns []*regexp.Regexp) ([]m.Path, error) {
	var collected []m.Path

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if !recursive && path != root {
				return fs.SkipDir
			}

			return nil
		}

		if !isRegistryFile(path) || excluded(path, patterns) {
			return nil
		}

		collected = append(collected, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return collected, nil
}

func isRegistryFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	return ext == ".yaml" || ext == ".yml"
}

func compilePatterns(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}

func excluded(path string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(path) {
			return true
		}
	}

	return false
}
