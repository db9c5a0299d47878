// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/registry"
)

// jsonpathParser is a package-level parser with RFC 9535 function extensions
var jsonpathParser = jsonpath.NewParser(jsonpath.WithRegistry(registry.New()))

// Select evaluates an RFC 9535 JSONPath query against n. Selected values are
// returned as plain maps, slices and scalars.
func Select(n Node, query string) ([]any, error) {
	path, err := jsonpathParser.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath query %q: %w", query, err)
	}

	return path.Select(ToAny(n)), nil
}

// GetPropertyJSONPath looks up a property using JSONPath syntax. Simple field
// names are accepted too, e.g. "Principal" is treated as "$.Principal".
func (r Resource) GetPropertyJSONPath(query string) (string, bool) {
	props := r.Properties()
	if props == nil {
		return "", false
	}
	if !strings.HasPrefix(query, "$") {
		query = "$." + query
	}
	nodes, err := Select(props, query)
	if err != nil {
		slog.Error("failed to parse jsonpath query", "query", query, "error", err)
		return "", false
	}
	if len(nodes) == 0 || nodes[0] == nil {
		return "", false
	}
	if strVal, ok := nodes[0].(string); ok {
		return strVal, true
	}
	return fmt.Sprintf("%v", nodes[0]), true
}
