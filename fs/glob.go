package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob returns the regular files matching pattern, sorted. The pattern may
// be a plain path and supports ** for recursive matching. A pattern that
// matches nothing returns ErrNoMatch.
func Glob(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("fs: pattern is required")
	}
	if info, err := os.Stat(pattern); err == nil && info.Mode().IsRegular() {
		return []string{pattern}, nil
	}
	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("fs: invalid glob pattern: %s", pattern)
	}

	base, rest := doublestar.SplitPattern(pattern)
	info, err := os.Stat(filepath.FromSlash(base))
	if err != nil {
		return nil, fmt.Errorf("fs: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fs: %s is not a directory", base)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(filepath.FromSlash(base)), rest, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(filepath.FromSlash(base), filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fs: error matching pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoMatch, pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
