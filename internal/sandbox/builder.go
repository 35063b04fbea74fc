package sandbox

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/skyglowlab/skybatch/internal/config"
	"github.com/skyglowlab/skybatch/internal/ctxlog"
	"github.com/skyglowlab/skybatch/internal/matrix"
)

// Builder materializes sandboxes for one experiment.
type Builder struct {
	exp *config.Experiment
}

// NewBuilder returns a builder over the experiment's asset inventory.
func NewBuilder(exp *config.Experiment) *Builder {
	return &Builder{exp: exp}
}

// Ensure creates the sandbox directory and its full symlink set for the
// resolved combination. An already-existing directory is skipped entirely.
// The caller must hold the path lock for dir; Ensure itself performs no
// locking. It reports whether the directory was created by this call.
func (b *Builder) Ensure(ctx context.Context, dir string, r matrix.Resolved) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("sandbox: probing %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("sandbox: creating %s: %w", dir, err)
	}
	ctxlog.FromContext(ctx).Debug("sandbox created", "dir", dir)

	exp := b.exp
	wl, _ := r.Get("wavelength")
	wavelength := wl.Render()
	layer := strconv.Itoa(int(r.Float("layer")))
	coords := r.Coord("observer_coordinates").String()

	aerosol := fmt.Sprintf("%s_%s.txt", r.Text("aerosol_profile"), wavelength)
	if err := b.link(filepath.Join(exp.Root, aerosol), filepath.Join(dir, "aerosol.txt")); err != nil {
		return true, err
	}
	layerFile := fmt.Sprintf("%s_%s.txt", r.Text("layer_type"), wavelength)
	if err := b.link(filepath.Join(exp.Root, layerFile), filepath.Join(dir, "layer.txt")); err != nil {
		return true, err
	}
	if err := b.link(filepath.Join(exp.Root, "MolecularAbs.txt"), filepath.Join(dir, "MolecularAbs.txt")); err != nil {
		return true, err
	}

	for i, lamp := range exp.Lamps {
		source := fmt.Sprintf("fctem_wl_%s_lamp_%s.dat", wavelength, lamp)
		linkName := fmt.Sprintf("%s_fctem_%03d.dat", exp.Name, i+1)
		if err := b.link(filepath.Join(exp.Root, source), filepath.Join(dir, linkName)); err != nil {
			return true, err
		}
	}

	if err := b.linkSolver(dir); err != nil {
		return true, err
	}

	// Per-(observer, layer) precomputed rasters.
	obsDir := filepath.Join(exp.Root, "obs_data", coords, layer)
	if err := b.link(filepath.Join(obsDir, "srtm.bin"), filepath.Join(dir, exp.Name+"_topogra.bin")); err != nil {
		return true, err
	}
	if err := b.link(filepath.Join(obsDir, "origin.bin"), filepath.Join(dir, "origin.bin")); err != nil {
		return true, err
	}
	for _, name := range []string{"obstd", "obsth", "obstf", "altlp"} {
		raster := fmt.Sprintf("%s_%s.bin", exp.Name, name)
		if err := b.link(filepath.Join(obsDir, raster), filepath.Join(dir, raster)); err != nil {
			return true, err
		}
	}
	for i, lamp := range exp.Lamps {
		source := fmt.Sprintf("%s_%s_lumlp_%s.bin", exp.Name, wavelength, lamp)
		linkName := fmt.Sprintf("%s_lumlp_%03d.bin", exp.Name, i+1)
		if err := b.link(filepath.Join(obsDir, source), filepath.Join(dir, linkName)); err != nil {
			return true, err
		}
	}

	return true, nil
}

// link creates a symlink at linkPath pointing at target through a
// sandbox-relative path. The target must exist.
func (b *Builder) link(target, linkPath string) error {
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingAsset, target)
		}
		return fmt.Errorf("sandbox: probing asset %s: %w", target, err)
	}
	rel, err := filepath.Rel(filepath.Dir(linkPath), target)
	if err != nil {
		return fmt.Errorf("sandbox: relativizing %s: %w", target, err)
	}
	if err := os.Symlink(rel, linkPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrLinkConflict, linkPath)
		}
		return fmt.Errorf("sandbox: linking %s: %w", linkPath, err)
	}
	return nil
}

// linkSolver links the solver executable by absolute path; the solver lives
// outside the experiment tree, so a relative link would not survive moves of
// the exec root.
func (b *Builder) linkSolver(dir string) error {
	abs, err := filepath.Abs(b.exp.SolverPath)
	if err != nil {
		return fmt.Errorf("sandbox: resolving solver path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingAsset, abs)
		}
		return fmt.Errorf("sandbox: probing solver %s: %w", abs, err)
	}
	if err := os.Symlink(abs, filepath.Join(dir, config.SolverName)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrLinkConflict, filepath.Join(dir, config.SolverName))
		}
		return fmt.Errorf("sandbox: linking solver: %w", err)
	}
	return nil
}
