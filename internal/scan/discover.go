// Package scan finds the audio files below a root directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
)

// DefaultExtension is the file extension selected when none is given.
const DefaultExtension = ".mp3"

// Discover walks root recursively and returns the files whose extension is
// exactly ext (case-sensitive), depth-first in lexical order.
//
// Directories and files whose names start with a dot are skipped, except
// root itself. Symbolic links are included when they resolve to a regular
// file.
func Discover(root, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	root = filepath.Clean(root)

	var files []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if osPathname == root {
				return nil
			}

			hidden := strings.HasPrefix(de.Name(), ".")
			if de.IsDir() {
				if hidden {
					return godirwalk.SkipThis
				}
				return nil
			}
			if hidden || filepath.Ext(de.Name()) != ext {
				return nil
			}

			if de.IsSymlink() {
				fi, err := os.Stat(osPathname)
				if err != nil || !fi.Mode().IsRegular() {
					return nil
				}
			} else if !de.IsRegular() {
				return nil
			}

			files = append(files, osPathname)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return files, nil
}
