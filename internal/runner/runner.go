// Package runner orchestrates one batch build: matrix expansion, pruning,
// sandbox materialization, input file serialization, script accumulation and
// the dispatch hand-off.
//
// Combinations are embarrassingly parallel; the only shared state is a
// compact-mode sandbox receiving several runs. A per-path lock makes each
// sandbox's create-and-link happen before any script append to it, and the
// manifest is slotted by combination ordinal so worker scheduling can never
// reorder its lines.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/skyglowlab/skybatch/internal/config"
	"github.com/skyglowlab/skybatch/internal/ctxlog"
	"github.com/skyglowlab/skybatch/internal/dispatch"
	"github.com/skyglowlab/skybatch/internal/infile"
	"github.com/skyglowlab/skybatch/internal/matrix"
	"github.com/skyglowlab/skybatch/internal/sandbox"
	"github.com/skyglowlab/skybatch/internal/script"
)

// ExecDirName is the root directory, under the input path, holding all
// sandboxes.
const ExecDirName = "exec"

// Options tune one batch build.
type Options struct {
	// Compact folds combinations differing only outside the
	// observer/wavelength/layer axes into shared sandboxes.
	Compact bool
	// Workers bounds the sandbox materialization pool. Values below 1 mean
	// sequential.
	Workers int
	// BatchSize is the number of launches per dispatch batch file.
	BatchSize int
	// Scheduler picks the dispatch command template.
	Scheduler dispatch.Scheduler
}

// Result summarizes a finished build.
type Result struct {
	// Total is the pre-filter combination count.
	Total int
	// Retained is the number of combinations that produced a run.
	Retained int
	// Manifest holds one entry per retained combination, generation order.
	Manifest *script.Manifest
}

// Runner builds all batches of one experiment.
type Runner struct {
	exp  *config.Experiment
	opts Options
}

// New returns a runner for the experiment.
func New(exp *config.Experiment, opts Options) *Runner {
	return &Runner{exp: exp, opts: opts}
}

// Run executes the full pipeline. Validation failures surface before any
// combination is processed; a sandbox failure cancels the remaining work.
// Sandboxes already on disk are skipped, so re-running an interrupted batch
// is safe for sandboxes the earlier run never touched.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	if err := r.exp.Validate(); err != nil {
		return nil, err
	}

	execDir := filepath.Join(r.exp.Root, ExecDirName)
	if err := os.MkdirAll(execDir, 0o755); err != nil {
		return nil, fmt.Errorf("runner: creating exec root: %w", err)
	}

	space := matrix.NewSpace(r.exp.Params)
	combos := space.Combinations()
	kept := matrix.NewZenithFilter(r.exp.Params).Apply(combos)
	logger.Info("parameter matrix expanded",
		"varying", space.Varying(), "total", len(combos), "retained", len(kept))

	naming := sandbox.Naming{ExecDir: execDir, Compact: r.opts.Compact}
	builder := sandbox.NewBuilder(r.exp)
	writer := script.NewWriter(r.exp)
	locks := sandbox.NewPathLocks()
	manifest := script.NewManifest(len(kept))
	observersVary := false
	for _, name := range space.Varying() {
		if name == "observer_coordinates" {
			observersVary = true
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if r.opts.Workers > 1 {
		g.SetLimit(r.opts.Workers)
	} else {
		g.SetLimit(1)
	}

	for i, combo := range kept {
		i, combo := i, combo
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := space.Resolve(combo)
			dir := naming.Dir(combo)
			uid := naming.UniqueID(combo)
			bearing := r.exp.BearingFor(res.Coord("observer_coordinates"), observersVary)

			unlock := locks.Lock(dir)
			defer unlock()

			if _, err := builder.Ensure(gctx, dir, res); err != nil {
				return err
			}
			doc := infile.Build(r.exp, res, bearing)
			inPath := filepath.Join(dir, uid+".in")
			if err := os.WriteFile(inPath, []byte(doc.Render()), 0o644); err != nil {
				return fmt.Errorf("runner: writing %s: %w", inPath, err)
			}
			if err := writer.AppendRun(dir, uid); err != nil {
				return err
			}

			abs, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("runner: resolving %s: %w", dir, err)
			}
			manifest.Set(i, script.Entry{
				Dir:    abs,
				Input:  uid + ".in",
				Output: fmt.Sprintf("%s_%s.out", r.exp.Name, uid),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(r.exp.Root, script.ManifestName)
	if err := manifest.Write(manifestPath); err != nil {
		return nil, err
	}

	if err := r.writeBatches(manifest); err != nil {
		return nil, err
	}

	logger.Info("batch build finished",
		"runs", len(kept), "manifest", manifestPath)
	return &Result{Total: len(combos), Retained: len(kept), Manifest: manifest}, nil
}

// writeBatches emits the dispatch batch files: one launch per distinct
// sandbox, first-occurrence order, so a compact sandbox's script runs once
// even when it accumulated several run blocks.
func (r *Runner) writeBatches(manifest *script.Manifest) error {
	seen := make(map[string]bool)
	var dirs []string
	for _, e := range manifest.Entries() {
		if !seen[e.Dir] {
			seen[e.Dir] = true
			dirs = append(dirs, e.Dir)
		}
	}
	bw := &dispatch.BatchWriter{
		Root:      r.exp.Root,
		BaseName:  r.exp.BatchName,
		Size:      r.opts.BatchSize,
		Scheduler: r.opts.Scheduler,
	}
	if err := bw.Clean(); err != nil {
		return err
	}
	return bw.Write(dirs)
}
