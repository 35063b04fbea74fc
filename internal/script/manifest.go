package script

import (
	"fmt"
	"os"
	"strings"
)

// ManifestName is the dispatch hand-off file written at the input root.
const ManifestName = "execute_info.txt"

// Entry is one manifest line: the absolute sandbox path plus the run's input
// and output filenames.
type Entry struct {
	Dir    string
	Input  string
	Output string
}

// Manifest collects one entry per retained combination, slotted by
// combination ordinal so parallel workers cannot reorder lines.
type Manifest struct {
	entries []Entry
}

// NewManifest allocates a manifest for n retained combinations.
func NewManifest(n int) *Manifest {
	return &Manifest{entries: make([]Entry, n)}
}

// Set records the entry for the i-th retained combination.
func (m *Manifest) Set(i int, e Entry) {
	m.entries[i] = e
}

// Entries returns all entries in generation order.
func (m *Manifest) Entries() []Entry {
	return m.entries
}

// Write emits the manifest, one "path,input,output" line per entry, in
// generation order.
func (m *Manifest) Write(path string) error {
	var sb strings.Builder
	for _, e := range m.entries {
		fmt.Fprintf(&sb, "%s,%s,%s\n", e.Dir, e.Input, e.Output)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("script: writing manifest %s: %w", path, err)
	}
	return nil
}
