package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadSpectralBands builds the band table from the wavelength list file
// (columns: wavelength, bandwidth) and the reflectance list file (one value
// per band). The equal-length invariant is enforced here.
func ReadSpectralBands(wavPath, reflPath string) (SpectralBands, error) {
	var bands SpectralBands

	rows, err := readNumericRows(wavPath)
	if err != nil {
		return bands, err
	}
	for _, row := range rows {
		if len(row) < 2 {
			return bands, fmt.Errorf("%w: %s: want wavelength and bandwidth columns", ErrBadValue, wavPath)
		}
		bands.Wavelength = append(bands.Wavelength, row[0])
		bands.Bandwidth = append(bands.Bandwidth, row[1])
	}

	refls, err := readNumericColumn(reflPath)
	if err != nil {
		return bands, err
	}
	bands.Reflectance = refls

	if err := bands.Validate(); err != nil {
		return bands, err
	}
	return bands, nil
}

// ReadLamps reads the lamp inventory: whitespace-separated lamp type tokens.
func ReadLamps(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading lamp inventory: %w", err)
	}
	lamps := strings.Fields(string(raw))
	if len(lamps) == 0 {
		return nil, ErrNoLamps
	}
	return lamps, nil
}

// ReadBearings reads the optional per-observer bearing table. A missing file
// is not an error: the caller receives (nil, nil) and bearings default to 0.
func ReadBearings(path string) ([]float64, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return readNumericColumn(path)
}

// readNumericRows parses a whitespace-separated numeric table, one row per
// non-empty line. Lines starting with '#' are comments.
func readNumericRows(path string) ([][]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var rows [][]float64
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %q is not numeric", ErrBadValue, path, f)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readNumericColumn parses a file of numbers, any whitespace layout, into a
// flat column.
func readNumericColumn(path string) ([]float64, error) {
	rows, err := readNumericRows(path)
	if err != nil {
		return nil, err
	}
	var col []float64
	for _, row := range rows {
		col = append(col, row...)
	}
	return col, nil
}
