package config

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/getmockd/pagegen/pkg/template"
)

// LoadData reads a JSON or YAML data file into a generic value tree.
func LoadData(path string) (any, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if isYAML(path) {
		doc, err := decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc, nil
	}
	return ParseData(data)
}

// ParseData parses JSON data. Integers decode as int64 and decimals as float64.
func ParseData(data []byte) (any, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return doc, nil
}

// SelectContexts picks render contexts out of data.
//
// With an empty selector, an object yields one context and an array
// yields one context per element. Otherwise selector is a JSONPath
// expression ("$.listings[*]", "$.cities[?(@.population > 10000)]") and
// each match becomes a context. Every selected value must be an object.
func SelectContexts(data any, selector string) ([]template.Context, error) {
	var selected []any
	if selector == "" {
		if list, ok := data.([]any); ok {
			selected = list
		} else {
			selected = []any{data}
		}
	} else {
		x, err := jp.ParseString(selector)
		if err != nil {
			return nil, fmt.Errorf("invalid JSONPath %q: %w", selector, err)
		}
		selected = x.Get(data)
	}

	contexts := make([]template.Context, 0, len(selected))
	for i, v := range selected {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("selected value %d is %T, expected an object", i, v)
		}
		contexts = append(contexts, template.Context(m))
	}
	return contexts, nil
}
