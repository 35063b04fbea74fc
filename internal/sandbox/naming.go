package sandbox

import (
	"path/filepath"
	"strings"

	"github.com/skyglowlab/skybatch/internal/matrix"
)

// compactKeys are the only parameters that contribute path segments in
// compact mode. Combinations differing solely in other parameters then fold
// into one shared sandbox.
var compactKeys = map[string]bool{
	"observer_coordinates": true,
	"wavelength":           true,
	"layer":                true,
}

// Naming derives sandbox directories and unique run IDs from a combination.
type Naming struct {
	// ExecDir is the root under which all sandboxes are nested.
	ExecDir string
	// Compact folds sandboxes down to the observer/wavelength/layer axes.
	Compact bool
}

// Dir returns the sandbox directory for a combination: nested key_value
// segments over the varying parameters in space order, restricted to the
// compact keys when folding.
func (n Naming) Dir(c matrix.Combination) string {
	segments := []string{n.ExecDir}
	for i := 0; i < c.Len(); i++ {
		name, value := c.At(i)
		if n.Compact && !compactKeys[name] {
			continue
		}
		segments = append(segments, name+"_"+value.Render())
	}
	return filepath.Join(segments...)
}

// UniqueID returns the globally unique run identifier: key_value pairs over
// all varying parameters joined by '-', independent of compact mode, so IDs
// stay pairwise distinct even when several runs share a sandbox.
func (n Naming) UniqueID(c matrix.Combination) string {
	parts := make([]string, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		name, value := c.At(i)
		parts = append(parts, name+"_"+value.Render())
	}
	return strings.Join(parts, "-")
}
