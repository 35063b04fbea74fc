// Package hclconf loads experiment documents written in HCL. Every
// parameter is a top-level attribute; list attributes mark varying
// parameters. Declaration order is recovered from attribute source ranges,
// since HCL hands attributes back as an unordered map.
package hclconf

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/skyglowlab/skybatch/internal/config"
	"github.com/skyglowlab/skybatch/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader returns an HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses the document at path into an ordered parameter map.
func (l *Loader) Load(ctx context.Context, path string) (*config.Params, error) {
	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclconf: parsing %s: %w", path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclconf: reading attributes of %s: %w", path, diags)
	}

	// Restore document order from source positions.
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	params := config.NewParams()
	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("hclconf: evaluating %q: %w", attr.Name, diags)
		}
		value, err := translateValue(attr.Name, val)
		if err != nil {
			return nil, err
		}
		params.Set(attr.Name, value)
	}

	ctxlog.FromContext(ctx).Debug("experiment document loaded",
		"path", path, "format", "hcl", "parameters", params.Len())
	return params, nil
}

// translateValue maps a cty value to the config value model. Tuples and
// lists become varying values; observer_coordinates gets its pair handling.
func translateValue(key string, val cty.Value) (config.Value, error) {
	if !val.Type().IsTupleType() && !val.Type().IsListType() {
		s, err := translateScalar(key, val)
		if err != nil {
			return config.Value{}, err
		}
		return config.Single(s), nil
	}

	elems := val.AsValueSlice()
	if key == "observer_coordinates" {
		return translateObservers(elems)
	}

	items := make([]config.Scalar, 0, len(elems))
	for _, e := range elems {
		s, err := translateScalar(key, e)
		if err != nil {
			return config.Value{}, err
		}
		items = append(items, s)
	}
	return config.List(items...), nil
}

// translateObservers accepts one [lat, lon] pair or a list of pairs.
func translateObservers(elems []cty.Value) (config.Value, error) {
	if len(elems) == 2 && elems[0].Type() == cty.Number {
		c, err := translatePair(elems)
		if err != nil {
			return config.Value{}, err
		}
		return config.Single(c), nil
	}
	items := make([]config.Scalar, 0, len(elems))
	for _, e := range elems {
		if !e.Type().IsTupleType() && !e.Type().IsListType() {
			return config.Value{}, fmt.Errorf("%w: observer_coordinates entries must be [lat, lon]", config.ErrBadValue)
		}
		c, err := translatePair(e.AsValueSlice())
		if err != nil {
			return config.Value{}, err
		}
		items = append(items, c)
	}
	return config.List(items...), nil
}

func translatePair(elems []cty.Value) (config.Scalar, error) {
	if len(elems) != 2 || elems[0].Type() != cty.Number || elems[1].Type() != cty.Number {
		return config.Scalar{}, fmt.Errorf("%w: observer_coordinates entries must be [lat, lon]", config.ErrBadValue)
	}
	lat, _ := elems[0].AsBigFloat().Float64()
	lon, _ := elems[1].AsBigFloat().Float64()
	return config.Coordinate(lat, lon), nil
}

func translateScalar(key string, val cty.Value) (config.Scalar, error) {
	switch val.Type() {
	case cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return config.Num(f), nil
	case cty.String:
		return config.Str(val.AsString()), nil
	case cty.Bool:
		return config.Bool(val.True()), nil
	}
	return config.Scalar{}, fmt.Errorf("%w: parameter %q has unsupported type %s", config.ErrBadValue, key, val.Type().FriendlyName())
}
