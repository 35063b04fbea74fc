package infile_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyglowlab/skybatch/internal/config"
	"github.com/skyglowlab/skybatch/internal/infile"
	"github.com/skyglowlab/skybatch/internal/matrix"
)

func serializerExperiment() (*config.Experiment, matrix.Resolved) {
	p := config.NewParams()
	p.Set("wavelength", config.Single(config.Num(400)))
	p.Set("layer", config.Single(config.Num(0)))
	p.Set("layer_aod", config.Single(config.Num(0.1)))
	p.Set("layer_alpha", config.Single(config.Num(1.2)))
	p.Set("layer_height", config.Single(config.Num(2000)))
	p.Set("double_scattering", config.Single(config.Bool(true)))
	p.Set("single_scattering", config.Single(config.Bool(false)))
	p.Set("air_pressure", config.Single(config.Num(101.3)))
	p.Set("aerosol_optical_depth", config.Single(config.Num(0.2)))
	p.Set("angstrom_coefficient", config.Single(config.Num(1.1)))
	p.Set("aerosol_height", config.Single(config.Num(1500)))
	p.Set("stop_limit", config.Single(config.Num(5000)))
	p.Set("observer_elevation", config.Single(config.Num(10)))
	p.Set("observer_obstacles", config.Single(config.Bool(true)))
	p.Set("elevation_angle", config.Single(config.Num(45)))
	p.Set("azimuth_angle", config.Single(config.Num(350)))
	p.Set("direct_fov", config.Single(config.Num(30)))
	p.Set("reflection_radius", config.Single(config.Num(100)))
	p.Set("cloud_model", config.Single(config.Num(0)))
	p.Set("cloud_base", config.Single(config.Num(1000)))
	p.Set("cloud_fraction", config.Single(config.Num(0)))

	exp := &config.Experiment{
		Name:   "demo",
		Params: p,
		Bands: config.SpectralBands{
			Wavelength:  []float64{400},
			Bandwidth:   []float64{10},
			Reflectance: []float64{0.2},
		},
		Lamps:      []string{"ho", "led"},
		PixelSizes: []float64{150},
	}
	space := matrix.NewSpace(p)
	return exp, space.Resolve(space.Combinations()[0])
}

// line mirrors the fixed-format rendering independently of the serializer's
// internals: value column left-justified to 30, then "!", then comments.
func line(value string, comments ...string) string {
	return fmt.Sprintf("%-30s ! %s", value, strings.Join(comments, " ; "))
}

func TestBuildRendersExactDocument(t *testing.T) {
	exp, r := serializerExperiment()

	// Bearing 20 shifts azimuth 350 across the wrap: (350+20) mod 360 = 10.
	got := infile.Build(exp, r, 20).Render()

	want := strings.Join([]string{
		line("", "Input file for SKYSIM"),
		line("demo", "Root file name"),
		line("150 150", "Cell size along X [m]", "Cell size along Y [m]"),
		line("aerosol.txt", "Aerosol optical cross section file"),
		line("layer.txt 0.1 1.2 2000",
			"Layer optical cross section file",
			"Layer aerosol optical depth at 500nm",
			"Layer angstrom coefficient",
			"Layer scale height [m]"),
		line("1", "Double scattering activated"),
		line("0", "Single scattering activated"),
		line("400 10", "Wavelength [nm]", "Bandwidth [nm]"),
		line("0.2", "Reflectance"),
		line("101.3", "Ground level pressure [kPa]"),
		line("0.2 1.1 1500",
			"Aerosol optical depth at 500nm",
			"Angstrom exponent",
			"Aerosol scale height [m]"),
		line("2", "Number of source types"),
		line("5000", "Contribution threshold"),
		line("", ""),
		line("256 256 10",
			"Observer X position",
			"Observer Y position",
			"Observer elevation above ground [m]"),
		line("1", "Obstacles around observer"),
		line("45 10", "Elevation viewing angle", "Azimuthal viewing angle"),
		line("30", "Direct field of view"),
		line("", ""),
		line("", ""),
		line("", ""),
		line("100", "Radius around light sources where reflections are computed"),
		line("0 1000 0",
			"Cloud model: 0=clear, 1=Thin Cirrus/Cirrostratus, 2=Thick Cirrus/Cirrostratus, 3=Altostratus/Altocumulus, 4=Cumulus/Cumulonimbus, 5=Stratocumulus",
			"Cloud base altitude [m]",
			"Cloud fraction"),
		line("", ""),
	}, "\n")

	assert.Equal(t, want, got)
}

func TestRenderPadding(t *testing.T) {
	// The value column is padded to exactly 30 characters, blanks included,
	// because the solver parses by position.
	doc := infile.Document{
		{{Value: "", Comment: "header"}},
		{{Value: "demo", Comment: "Root file name"}},
	}
	lines := strings.Split(doc.Render(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat(" ", 30)+" ! header", lines[0])
	assert.Equal(t, "demo"+strings.Repeat(" ", 26)+" ! Root file name", lines[1])
}

func TestBuildAzimuthWrapsNegative(t *testing.T) {
	exp, r := serializerExperiment()
	// azimuth 350 with bearing -360 stays in [0, 360).
	doc := infile.Build(exp, r, -360)
	assert.Equal(t, "350", doc[16][1].Value)
}

func TestBuildNoTrailingNewline(t *testing.T) {
	exp, r := serializerExperiment()
	out := infile.Build(exp, r, 0).Render()
	assert.False(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 24, len(strings.Split(out, "\n")))
}
