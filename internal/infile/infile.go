// Package infile renders the solver's fixed-format input document. The
// solver parses by line position, so every group is emitted even when blank;
// dropping a sentinel line breaks the contract.
package infile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/skyglowlab/skybatch/internal/config"
	"github.com/skyglowlab/skybatch/internal/matrix"
)

// fieldWidth is the minimum left-justified width of a line's value column.
const fieldWidth = 30

// Field is one value plus its trailing comment.
type Field struct {
	Value   string
	Comment string
}

// Line groups one or more fields rendered on a single physical line: values
// space-joined and left-justified, then "!", then comments joined by ";".
type Line []Field

// Document is the ordered sequence of lines of one input file.
type Document []Line

// Render produces the document's exact byte form. No trailing newline.
func (d Document) Render() string {
	lines := make([]string, len(d))
	for i, line := range d {
		values := make([]string, len(line))
		comments := make([]string, len(line))
		for j, f := range line {
			values[j] = f.Value
			comments[j] = f.Comment
		}
		lines[i] = fmt.Sprintf("%-*s ! %s", fieldWidth, strings.Join(values, " "), strings.Join(comments, " ; "))
	}
	return strings.Join(lines, "\n")
}

// blank is a positional placeholder line.
func blank() Line { return Line{{}} }

func num(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// flag serializes a boolean as 0/1.
func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Build assembles the document for one resolved combination. The bearing is
// the observer's azimuth offset; the serialized azimuth is bearing-adjusted
// and wrapped into [0, 360).
func Build(exp *config.Experiment, r matrix.Resolved, bearing float64) Document {
	wl, _ := r.Get("wavelength")
	wavelength := wl.Render()
	band := exp.Bands.IndexOf(wl.Float())
	layer := int(r.Float("layer"))
	pixel := num(exp.PixelSizes[layer])

	azimuth := math.Mod(r.Float("azimuth_angle")+bearing, 360)
	if azimuth < 0 {
		azimuth += 360
	}

	return Document{
		{{Value: "", Comment: "Input file for SKYSIM"}},
		{{Value: exp.Name, Comment: "Root file name"}},
		{
			{Value: pixel, Comment: "Cell size along X [m]"},
			{Value: pixel, Comment: "Cell size along Y [m]"},
		},
		{{Value: "aerosol.txt", Comment: "Aerosol optical cross section file"}},
		{
			{Value: "layer.txt", Comment: "Layer optical cross section file"},
			{Value: num(r.Float("layer_aod")), Comment: "Layer aerosol optical depth at 500nm"},
			{Value: num(r.Float("layer_alpha")), Comment: "Layer angstrom coefficient"},
			{Value: num(r.Float("layer_height")), Comment: "Layer scale height [m]"},
		},
		{{Value: flag(r.Truth("double_scattering")), Comment: "Double scattering activated"}},
		{{Value: flag(r.Truth("single_scattering")), Comment: "Single scattering activated"}},
		{
			{Value: wavelength, Comment: "Wavelength [nm]"},
			{Value: num(exp.Bands.Bandwidth[band]), Comment: "Bandwidth [nm]"},
		},
		{{Value: num(exp.Bands.Reflectance[band]), Comment: "Reflectance"}},
		{{Value: num(r.Float("air_pressure")), Comment: "Ground level pressure [kPa]"}},
		{
			{Value: num(r.Float("aerosol_optical_depth")), Comment: "Aerosol optical depth at 500nm"},
			{Value: num(r.Float("angstrom_coefficient")), Comment: "Angstrom exponent"},
			{Value: num(r.Float("aerosol_height")), Comment: "Aerosol scale height [m]"},
		},
		{{Value: strconv.Itoa(len(exp.Lamps)), Comment: "Number of source types"}},
		{{Value: num(r.Float("stop_limit")), Comment: "Contribution threshold"}},
		blank(),
		{
			{Value: "256", Comment: "Observer X position"},
			{Value: "256", Comment: "Observer Y position"},
			{Value: num(r.Float("observer_elevation")), Comment: "Observer elevation above ground [m]"},
		},
		{{Value: flag(r.Truth("observer_obstacles")), Comment: "Obstacles around observer"}},
		{
			{Value: num(r.Float("elevation_angle")), Comment: "Elevation viewing angle"},
			{Value: num(azimuth), Comment: "Azimuthal viewing angle"},
		},
		{{Value: num(r.Float("direct_fov")), Comment: "Direct field of view"}},
		blank(),
		blank(),
		blank(),
		{{Value: num(r.Float("reflection_radius")), Comment: "Radius around light sources where reflections are computed"}},
		{
			{Value: num(r.Float("cloud_model")), Comment: "Cloud model: " +
				"0=clear, " +
				"1=Thin Cirrus/Cirrostratus, " +
				"2=Thick Cirrus/Cirrostratus, " +
				"3=Altostratus/Altocumulus, " +
				"4=Cumulus/Cumulonimbus, " +
				"5=Stratocumulus"},
			{Value: num(r.Float("cloud_base")), Comment: "Cloud base altitude [m]"},
			{Value: num(r.Float("cloud_fraction")), Comment: "Cloud fraction"},
		},
		blank(),
	}
}
