// Package config defines the format-agnostic experiment configuration model:
// the ordered parameter map, scalar/list parameter values, the spectral band
// table and the auxiliary list files the batch builder consumes.
//
// Concrete loaders for specific configuration formats (HCL, YAML) live in
// separate packages and implement the Loader interface. The model is
// read-only once loaded; matrix expansion never mutates it.
package config
