// Package dispatch selects the shell command template used to launch
// sandbox run scripts and chunks the launches into batch files for an
// external dispatcher.
package dispatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scheduler selects how the dispatcher launches each sandbox script.
type Scheduler string

const (
	Sequential Scheduler = "sequential"
	Parallel   Scheduler = "parallel"
	Slurm      Scheduler = "slurm"
)

// ErrUnknownScheduler indicates an unsupported scheduler name.
var ErrUnknownScheduler = errors.New("dispatch: unknown scheduler")

// Parse validates a scheduler name.
func Parse(name string) (Scheduler, error) {
	switch Scheduler(name) {
	case Sequential, Parallel, Slurm:
		return Scheduler(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheduler, name)
}

// Command returns the shell line launching one sandbox script under this
// scheduler.
func (s Scheduler) Command() string {
	switch s {
	case Parallel:
		return "./execute &"
	case Slurm:
		return "sbatch ./execute"
	default:
		return "./execute"
	}
}

// BatchWriter emits the numbered batch files that drive dispatch: one launch
// stanza per sandbox, chunked by Size launches per file.
type BatchWriter struct {
	// Root is the directory receiving the batch files.
	Root string
	// BaseName prefixes every batch file: <BaseName>_1, <BaseName>_2, ...
	BaseName string
	// Size is the number of launches per batch file.
	Size int
	// Scheduler picks the launch command template.
	Scheduler Scheduler
}

// Clean removes stale batch files from an earlier run.
func (w *BatchWriter) Clean() error {
	matches, err := filepath.Glob(filepath.Join(w.Root, w.BaseName+"*"))
	if err != nil {
		return fmt.Errorf("dispatch: globbing stale batches: %w", err)
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return fmt.Errorf("dispatch: removing %s: %w", m, err)
		}
	}
	return nil
}

// Write emits the batch files for the given sandbox directories, one launch
// per sandbox, in order. The short sleep between launches keeps schedulers
// from being flooded with submissions.
func (w *BatchWriter) Write(sandboxDirs []string) error {
	size := w.Size
	if size <= 0 {
		size = len(sandboxDirs)
	}
	for start := 0; start < len(sandboxDirs); start += size {
		end := start + size
		if end > len(sandboxDirs) {
			end = len(sandboxDirs)
		}
		var sb strings.Builder
		for _, dir := range sandboxDirs[start:end] {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("dispatch: resolving %s: %w", dir, err)
			}
			fmt.Fprintf(&sb, "cd %s\n%s\nsleep 0.05\n", abs, w.Scheduler.Command())
		}
		name := fmt.Sprintf("%s_%d", w.BaseName, start/size+1)
		if err := os.WriteFile(filepath.Join(w.Root, name), []byte(sb.String()), 0o644); err != nil {
			return fmt.Errorf("dispatch: writing batch %s: %w", name, err)
		}
	}
	return nil
}
