package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyglowlab/skybatch/internal/config"
)

func validExperiment() *config.Experiment {
	p := config.NewParams()
	p.Set("exp_name", config.Single(config.Str("demo")))
	p.Set("batch_file_name", config.Single(config.Str("batch")))
	p.Set("wavelength", config.List(config.Num(400), config.Num(500)))
	p.Set("layer", config.Single(config.Num(0)))
	p.Set("observer_coordinates", config.List(
		config.Coordinate(45, -73.5), config.Coordinate(46, -74)))
	p.Set("azimuth_angle", config.Single(config.Num(0)))
	p.Set("elevation_angle", config.Single(config.Num(45)))
	p.Set("observer_elevation", config.Single(config.Num(10)))
	p.Set("observer_obstacles", config.Single(config.Bool(true)))
	p.Set("direct_fov", config.Single(config.Num(30)))
	p.Set("air_pressure", config.Single(config.Num(101.3)))
	p.Set("aerosol_optical_depth", config.Single(config.Num(0.2)))
	p.Set("angstrom_coefficient", config.Single(config.Num(1.1)))
	p.Set("aerosol_height", config.Single(config.Num(1500)))
	p.Set("aerosol_profile", config.Single(config.Str("maritime")))
	p.Set("layer_type", config.Single(config.Str("urban")))
	p.Set("layer_aod", config.Single(config.Num(0.1)))
	p.Set("layer_alpha", config.Single(config.Num(1.2)))
	p.Set("layer_height", config.Single(config.Num(2000)))
	p.Set("double_scattering", config.Single(config.Bool(true)))
	p.Set("single_scattering", config.Single(config.Bool(false)))
	p.Set("stop_limit", config.Single(config.Num(5000)))
	p.Set("reflection_radius", config.Single(config.Num(100)))
	p.Set("cloud_model", config.Single(config.Num(0)))
	p.Set("cloud_base", config.Single(config.Num(1000)))
	p.Set("cloud_fraction", config.Single(config.Num(0)))

	return &config.Experiment{
		Name:      "demo",
		BatchName: "batch",
		Params:    p,
		Bands: config.SpectralBands{
			Wavelength:  []float64{400, 500},
			Bandwidth:   []float64{10, 12},
			Reflectance: []float64{0.1, 0.2},
		},
		Lamps:      []string{"ho"},
		PixelSizes: []float64{150},
	}
}

func TestExperimentValidate(t *testing.T) {
	require.NoError(t, validExperiment().Validate())
}

func TestExperimentValidate_MissingKey(t *testing.T) {
	exp := validExperiment()
	exp.Params.Delete("cloud_base")
	err := exp.Validate()
	require.ErrorIs(t, err, config.ErrMissingKey)
	assert.Contains(t, err.Error(), "cloud_base")
}

func TestExperimentValidate_BandMismatch(t *testing.T) {
	exp := validExperiment()
	exp.Bands.Reflectance = exp.Bands.Reflectance[:1]
	require.ErrorIs(t, exp.Validate(), config.ErrBandMismatch)
}

func TestExperimentValidate_NoLamps(t *testing.T) {
	exp := validExperiment()
	exp.Lamps = nil
	require.ErrorIs(t, exp.Validate(), config.ErrNoLamps)
}

func TestExperimentValidate_ShortBearingTable(t *testing.T) {
	exp := validExperiment()
	exp.Bearings = []float64{10}
	require.ErrorIs(t, exp.Validate(), config.ErrBearingCount)
}

func TestExperimentValidate_PixelSizes(t *testing.T) {
	exp := validExperiment()
	exp.Params.Set("layer", config.List(config.Num(0), config.Num(1)))
	require.ErrorIs(t, exp.Validate(), config.ErrPixelSizes)
}

func TestBearingFor(t *testing.T) {
	exp := validExperiment()
	exp.Bearings = []float64{10, 20}

	// Varying observers index the table by original list position.
	assert.Equal(t, 20.0, exp.BearingFor(config.Coord{Lat: 46, Lon: -74}, true))
	// Constant observers always use entry 0.
	assert.Equal(t, 10.0, exp.BearingFor(config.Coord{Lat: 46, Lon: -74}, false))
}

func TestBearingFor_NoTable(t *testing.T) {
	exp := validExperiment()
	assert.Equal(t, 0.0, exp.BearingFor(config.Coord{Lat: 45, Lon: -73.5}, true))
}
