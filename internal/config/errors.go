package config

import "errors"

var (
	// ErrMissingKey indicates a required parameter is absent from the document.
	ErrMissingKey = errors.New("config: missing required parameter")
	// ErrBandMismatch indicates the wavelength, bandwidth and reflectance
	// lists do not share a common length.
	ErrBandMismatch = errors.New("config: spectral band table length mismatch")
	// ErrBadValue indicates a parameter value has an unusable shape or type.
	ErrBadValue = errors.New("config: invalid parameter value")
	// ErrNoLamps indicates the lamp inventory is empty.
	ErrNoLamps = errors.New("config: lamp inventory is empty")
	// ErrBearingCount indicates the bearing table is shorter than the
	// observer list it is indexed by.
	ErrBearingCount = errors.New("config: bearing table shorter than observer list")
	// ErrPixelSizes indicates the per-layer pixel size list does not cover
	// every layer.
	ErrPixelSizes = errors.New("config: pixel size list does not match layer count")
)
