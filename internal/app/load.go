package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skyglowlab/skybatch/internal/config"
	"github.com/skyglowlab/skybatch/internal/ctxlog"
	"github.com/skyglowlab/skybatch/internal/fsutil"
	"github.com/skyglowlab/skybatch/internal/hclconf"
	"github.com/skyglowlab/skybatch/internal/yamlconf"
)

// configSuffixes are the recognized experiment document names, in
// preference order. "params.in" matches the legacy inputs_params.in.
var configSuffixes = []string{".hcl", "params.in", ".yaml", ".yml"}

// loadExperiment assembles the full experiment: the parameter document plus
// the band/lamp/bearing inventories, with the wavelength and layer axes
// injected the way the raster preprocessing defines them.
func loadExperiment(ctx context.Context, root string, cfg Config) (*config.Experiment, error) {
	docPath, err := fsutil.FindConfigFile(root, configSuffixes...)
	if err != nil {
		return nil, err
	}

	var loader config.Loader
	if strings.HasSuffix(docPath, ".hcl") {
		loader = hclconf.NewLoader()
	} else {
		loader = yamlconf.NewLoader()
	}
	params, err := loader.Load(ctx, docPath)
	if err != nil {
		return nil, err
	}

	bands, err := config.ReadSpectralBands(filepath.Join(root, "wav.lst"), filepath.Join(root, "refl.lst"))
	if err != nil {
		return nil, err
	}
	lamps, err := config.ReadLamps(filepath.Join(root, "lamps.lst"))
	if err != nil {
		return nil, err
	}
	bearings, err := config.ReadBearings(filepath.Join(root, "brng.lst"))
	if err != nil {
		return nil, err
	}

	pixelSizes, err := popPixelSizes(params)
	if err != nil {
		return nil, err
	}

	// The wavelength axis comes from the band table, the layer axis from the
	// per-layer pixel size inventory.
	wavelengths := make([]config.Scalar, len(bands.Wavelength))
	for i, w := range bands.Wavelength {
		wavelengths[i] = config.Num(w)
	}
	params.Set("wavelength", config.List(wavelengths...))

	layers := make([]config.Scalar, len(pixelSizes))
	for i := range pixelSizes {
		layers[i] = config.Num(float64(i))
	}
	params.Set("layer", config.List(layers...))

	// Single-element layer and observer lists degrade to constants so they
	// do not show up as varying axes.
	for _, name := range []string{"layer", "observer_coordinates"} {
		if v, ok := params.Get(name); ok {
			params.Set(name, v.Collapse())
		}
	}

	name := ""
	if v, ok := params.Get("exp_name"); ok {
		name = v.First().Text()
	}
	if cfg.BatchName != "" {
		params.Set("batch_file_name", config.Single(config.Str(cfg.BatchName)))
	}
	batchName := ""
	if v, ok := params.Get("batch_file_name"); ok {
		batchName = v.First().Text()
	}

	solver := cfg.SolverPath
	if solver == "" {
		solver = filepath.Join(root, "bin", config.SolverName)
	}

	exp := &config.Experiment{
		Name:       name,
		BatchName:  batchName,
		Params:     params,
		Bands:      bands,
		Lamps:      lamps,
		Bearings:   bearings,
		PixelSizes: pixelSizes,
		SolverPath: solver,
		Root:       root,
	}
	ctxlog.FromContext(ctx).Debug("experiment assembled",
		"name", exp.Name, "bands", bands.Len(), "lamps", len(lamps),
		"layers", len(pixelSizes), "bearings", len(bearings))
	return exp, nil
}

// popPixelSizes extracts the per-layer pixel size list from the document.
// It must leave the parameter map, otherwise expansion would treat it as a
// varying axis.
func popPixelSizes(params *config.Params) ([]float64, error) {
	v, ok := params.Get("pixel_sizes")
	if !ok {
		return nil, fmt.Errorf("%w: pixel_sizes", config.ErrMissingKey)
	}
	params.Delete("pixel_sizes")
	sizes := make([]float64, 0, v.Len())
	for _, s := range v.Items() {
		if s.Kind() != config.KindNumber {
			return nil, fmt.Errorf("%w: pixel_sizes must be numeric", config.ErrBadValue)
		}
		sizes = append(sizes, s.Float())
	}
	return sizes, nil
}
