// Package fsutil provides small file system helpers for locating experiment
// documents.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoConfig indicates no experiment document was found under the root.
var ErrNoConfig = errors.New("fsutil: no experiment document found")

// FindConfigFile locates the experiment document directly under root: the
// lexically first regular file whose name ends with one of the given
// extensions. Earlier extensions take precedence over later ones.
func FindConfigFile(root string, extensions ...string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("fsutil: reading %s: %w", root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, ext := range extensions {
		for _, name := range names {
			if strings.HasSuffix(name, ext) {
				return filepath.Join(root, name), nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s (want %s)", ErrNoConfig, root, strings.Join(extensions, ", "))
}
