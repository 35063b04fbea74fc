// Package script accumulates per-sandbox run scripts and the batch manifest
// consumed by downstream dispatch.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skyglowlab/skybatch/internal/config"
)

// ScriptName is the run script accumulated inside every sandbox.
const ScriptName = "execute"

// defaultHours is the requested wall time when the configuration does not
// set estimated_computing_time.
const defaultHours = 12

// Writer appends run blocks to sandbox scripts.
type Writer struct {
	exp *config.Experiment
}

// NewWriter returns a script writer for the experiment.
func NewWriter(exp *config.Experiment) *Writer {
	return &Writer{exp: exp}
}

// AppendRun adds one run block for uniqueID to the sandbox's script,
// creating the script with its shell header on first touch. A block already
// present for the same uniqueID is not appended again, so re-running an
// interrupted batch does not duplicate work. The caller must hold the
// sandbox's path lock; in compact mode several runs append to the same
// script.
func (w *Writer) AppendRun(dir, uniqueID string) error {
	path := filepath.Join(dir, ScriptName)
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := w.writeHeader(path, dir); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("script: probing %s: %w", path, err)
	}

	exp := w.exp.Name
	block := fmt.Sprintf("cp %s.in %s\n./%s\nmv %s.out %s_%s.out\nmv %s_pcl.bin %s_pcl_%s.bin\n",
		uniqueID, config.SolverInputName,
		config.SolverName,
		exp, exp, uniqueID,
		exp, exp, uniqueID)
	if strings.Contains(string(existing), block) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("script: opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("script: appending to %s: %w", path, err)
	}
	return nil
}

// writeHeader creates the script with its scheduler preamble and makes it
// executable.
func (w *Writer) writeHeader(path, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("script: resolving %s: %w", dir, err)
	}
	hours := float64(defaultHours)
	if v, ok := w.exp.Params.Get("estimated_computing_time"); ok {
		hours = v.First().Float()
	}
	header := fmt.Sprintf("#!/bin/sh\n#SBATCH --job-name=%s\n#SBATCH --time=%d:00:00\n#SBATCH --mem=2G\ncd %s\numask 0011\n",
		w.exp.Name, int(hours), abs)
	if err := os.WriteFile(path, []byte(header), 0o777); err != nil {
		return fmt.Errorf("script: writing %s: %w", path, err)
	}
	// WriteFile applies the umask; force the executable bits back on.
	if err := os.Chmod(path, 0o777); err != nil {
		return fmt.Errorf("script: chmod %s: %w", path, err)
	}
	return nil
}
