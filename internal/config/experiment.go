package config

import (
	"context"
	"fmt"
)

// Loader is the interface for a format-specific configuration loader. A
// loader parses one experiment document into the ordered parameter map,
// preserving the document's declaration order.
type Loader interface {
	Load(ctx context.Context, path string) (*Params, error)
}

// SpectralBands is the parallel wavelength/bandwidth/reflectance table. The
// three columns share index correspondence by wavelength ordinal.
type SpectralBands struct {
	Wavelength  []float64
	Bandwidth   []float64
	Reflectance []float64
}

// Len returns the number of bands.
func (b SpectralBands) Len() int { return len(b.Wavelength) }

// IndexOf returns the band ordinal of the given wavelength, or -1.
func (b SpectralBands) IndexOf(wl float64) int {
	for i, w := range b.Wavelength {
		if w == wl {
			return i
		}
	}
	return -1
}

// Validate checks the equal-length invariant of the three columns.
func (b SpectralBands) Validate() error {
	if len(b.Bandwidth) != len(b.Wavelength) || len(b.Reflectance) != len(b.Wavelength) {
		return fmt.Errorf("%w: %d wavelengths, %d bandwidths, %d reflectances",
			ErrBandMismatch, len(b.Wavelength), len(b.Bandwidth), len(b.Reflectance))
	}
	return nil
}

// Experiment is one fully resolved batch configuration: the parameter map
// plus the static inventories expansion and sandbox construction need.
type Experiment struct {
	// Name is the experiment root name; it prefixes most produced files.
	Name string
	// BatchName names the dispatch batch files.
	BatchName string
	// Params is the raw parameter map, wavelength/layer/observer lists
	// already injected.
	Params *Params
	// Bands is the spectral band table.
	Bands SpectralBands
	// Lamps lists the lamp type tokens, one photometric file each.
	Lamps []string
	// Bearings is the optional per-observer azimuth offset table, indexed by
	// observer ordinal in the original observer list. Nil when absent.
	Bearings []float64
	// PixelSizes holds the raster cell size per layer, in meters.
	PixelSizes []float64
	// SolverPath is the absolute path of the solver executable to link into
	// every sandbox.
	SolverPath string
	// Root is the input directory holding all static assets.
	Root string
}

// Fixed names of the solver contract: the executable link inside every
// sandbox and the input filename the solver reads.
const (
	SolverName      = "skysim"
	SolverInputName = "skysim.in"
)

// BearingFor resolves the azimuth offset for an observer: the bearing table
// entry at the observer's ordinal in the full original observer list, index
// 0 when observers do not vary, and 0 when no table was supplied.
func (e *Experiment) BearingFor(obs Coord, observersVary bool) float64 {
	if e.Bearings == nil {
		return 0
	}
	idx := 0
	if observersVary {
		for i, c := range e.Observers() {
			if c == obs {
				idx = i
				break
			}
		}
	}
	return e.Bearings[idx]
}

// requiredKeys are the parameters every document must define, directly or by
// injection, before expansion starts.
var requiredKeys = []string{
	"exp_name",
	"batch_file_name",
	"wavelength",
	"layer",
	"observer_coordinates",
	"azimuth_angle",
	"elevation_angle",
	"observer_elevation",
	"observer_obstacles",
	"direct_fov",
	"air_pressure",
	"aerosol_optical_depth",
	"angstrom_coefficient",
	"aerosol_height",
	"aerosol_profile",
	"layer_type",
	"layer_aod",
	"layer_alpha",
	"layer_height",
	"double_scattering",
	"single_scattering",
	"stop_limit",
	"reflection_radius",
	"cloud_model",
	"cloud_base",
	"cloud_fraction",
}

// Validate checks the experiment before any combination is processed. All
// failures here are fatal for the whole batch.
func (e *Experiment) Validate() error {
	for _, key := range requiredKeys {
		if _, ok := e.Params.Get(key); !ok {
			return fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
	}
	if err := e.Bands.Validate(); err != nil {
		return err
	}
	if len(e.Lamps) == 0 {
		return ErrNoLamps
	}
	layers, _ := e.Params.Get("layer")
	if len(e.PixelSizes) < layers.Len() {
		return fmt.Errorf("%w: %d pixel sizes for %d layers",
			ErrPixelSizes, len(e.PixelSizes), layers.Len())
	}
	if e.Bearings != nil {
		obs, _ := e.Params.Get("observer_coordinates")
		if len(e.Bearings) < obs.Len() {
			return fmt.Errorf("%w: %d bearings for %d observers",
				ErrBearingCount, len(e.Bearings), obs.Len())
		}
	}
	return nil
}

// Observers returns the original observer coordinate list, scalar values
// included, in declaration order.
func (e *Experiment) Observers() []Coord {
	v, ok := e.Params.Get("observer_coordinates")
	if !ok {
		return nil
	}
	coords := make([]Coord, 0, v.Len())
	for _, s := range v.Items() {
		coords = append(coords, s.Coord())
	}
	return coords
}
