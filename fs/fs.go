// Package fs resolves file arguments for the commands that send local files
// to the server.
package fs

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoMatch is returned when a pattern matches no files.
var ErrNoMatch = errors.New("no files match")

// File is a matched file and its contents.
type File struct {
	Path string
	Data []byte
}

// ReadFiles reads every file matching pattern, in match order.
func ReadFiles(pattern string) ([]File, error) {
	paths, err := Glob(pattern)
	if err != nil {
		return nil, err
	}
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("fs: read %s: %w", p, err)
		}
		files = append(files, File{Path: p, Data: data})
	}
	return files, nil
}
