package matrix

import "github.com/skyglowlab/skybatch/internal/config"

// zenithElevation is the viewing elevation at which the azimuth axis
// degenerates: looking straight up, every azimuth sees the same sky.
const zenithElevation = 90

// ZenithFilter prunes azimuth-redundant combinations. When the azimuth angle
// varies and a combination's elevation angle is 90 degrees, only the
// combination carrying the first azimuth of the original list is kept; its
// siblings would run the identical computation.
type ZenithFilter struct {
	base    *config.Params
	azimuth config.Value
	active  bool
}

// NewZenithFilter builds the filter for one parameter map.
func NewZenithFilter(base *config.Params) *ZenithFilter {
	az, ok := base.Get("azimuth_angle")
	return &ZenithFilter{base: base, azimuth: az, active: ok && az.IsList()}
}

// Keep reports whether the combination survives pruning. A false result is a
// deliberate omission, not an error.
func (f *ZenithFilter) Keep(c Combination) bool {
	if !f.active {
		return true
	}
	r := Resolved{combo: c, base: f.base}
	if r.Float("elevation_angle") != zenithElevation {
		return true
	}
	az, ok := c.Value("azimuth_angle")
	if !ok {
		return true
	}
	return f.azimuth.IndexOf(az) == 0
}

// Apply returns the retained combinations in their original order.
func (f *ZenithFilter) Apply(combos []Combination) []Combination {
	kept := make([]Combination, 0, len(combos))
	for _, c := range combos {
		if f.Keep(c) {
			kept = append(kept, c)
		}
	}
	return kept
}
