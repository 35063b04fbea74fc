// Package yamlconf loads experiment documents in the legacy YAML format.
// Parsing goes through yaml.Node rather than a map so the document's
// declaration order survives; that order breaks cardinality ties during
// matrix expansion.
package yamlconf

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skyglowlab/skybatch/internal/config"
	"github.com/skyglowlab/skybatch/internal/ctxlog"
)

// ErrBadDocument indicates the YAML document is not a flat parameter mapping.
var ErrBadDocument = errors.New("yamlconf: document is not a parameter mapping")

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader returns a YAML loader.
func NewLoader() *Loader { return &Loader{} }

// Load parses the document at path into an ordered parameter map.
func (l *Loader) Load(ctx context.Context, path string) (*config.Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlconf: reading %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("yamlconf: parsing %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s", ErrBadDocument, path)
	}

	mapping := doc.Content[0]
	params := config.NewParams()
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valNode := mapping.Content[i], mapping.Content[i+1]
		value, err := translateValue(keyNode.Value, valNode)
		if err != nil {
			return nil, err
		}
		params.Set(keyNode.Value, value)
	}

	ctxlog.FromContext(ctx).Debug("experiment document loaded",
		"path", path, "format", "yaml", "parameters", params.Len())
	return params, nil
}

// translateValue maps a YAML node to the config value model. Sequences
// become varying values; the observer_coordinates key gets its pair handling.
func translateValue(key string, node *yaml.Node) (config.Value, error) {
	if node.Kind == yaml.ScalarNode {
		s, err := translateScalar(key, node)
		if err != nil {
			return config.Value{}, err
		}
		return config.Single(s), nil
	}
	if node.Kind != yaml.SequenceNode {
		return config.Value{}, fmt.Errorf("%w: parameter %q", config.ErrBadValue, key)
	}

	if key == "observer_coordinates" {
		return translateObservers(node)
	}

	items := make([]config.Scalar, 0, len(node.Content))
	for _, item := range node.Content {
		s, err := translateScalar(key, item)
		if err != nil {
			return config.Value{}, err
		}
		items = append(items, s)
	}
	return config.List(items...), nil
}

// translateObservers handles the two accepted observer shapes: one [lat,
// lon] pair, or a sequence of pairs.
func translateObservers(node *yaml.Node) (config.Value, error) {
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.ScalarNode {
		c, err := translatePair(node)
		if err != nil {
			return config.Value{}, err
		}
		return config.Single(c), nil
	}
	items := make([]config.Scalar, 0, len(node.Content))
	for _, item := range node.Content {
		c, err := translatePair(item)
		if err != nil {
			return config.Value{}, err
		}
		items = append(items, c)
	}
	return config.List(items...), nil
}

func translatePair(node *yaml.Node) (config.Scalar, error) {
	var pair [2]float64
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return config.Scalar{}, fmt.Errorf("%w: observer_coordinates entries must be [lat, lon]", config.ErrBadValue)
	}
	if err := node.Decode(&pair); err != nil {
		return config.Scalar{}, fmt.Errorf("%w: observer_coordinates: %v", config.ErrBadValue, err)
	}
	return config.Coordinate(pair[0], pair[1]), nil
}

func translateScalar(key string, node *yaml.Node) (config.Scalar, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return config.Scalar{}, fmt.Errorf("%w: parameter %q: %v", config.ErrBadValue, key, err)
	}
	switch t := v.(type) {
	case bool:
		return config.Bool(t), nil
	case int:
		return config.Num(float64(t)), nil
	case int64:
		return config.Num(float64(t)), nil
	case float64:
		return config.Num(t), nil
	case string:
		return config.Str(t), nil
	}
	return config.Scalar{}, fmt.Errorf("%w: parameter %q has unsupported type %T", config.ErrBadValue, key, v)
}
