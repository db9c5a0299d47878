// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"bytes"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// Node is a value in a template document. The set of implementations is closed:
// Mapping, Sequence, String and Scalar.
type Node interface {
	node()
}

// Mapping is a JSON object or YAML mapping.
type Mapping map[string]Node

// Sequence is a JSON array or YAML sequence.
type Sequence []Node

// String is a string scalar. Resource identifiers only ever appear as String values.
type String string

// Scalar holds every other leaf value: json.Number, bool or nil.
type Scalar struct {
	Value any
}

func (Mapping) node()  {}
func (Sequence) node() {}
func (String) node()   {}
func (Scalar) node()   {}

// Keys returns the keys of the mapping in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Ref builds the {"Ref": id} intrinsic.
func Ref(id string) Mapping {
	return Mapping{"Ref": String(id)}
}

// FromAny converts the output of a generic JSON or YAML decoder into a Node.
func FromAny(v any) Node {
	switch val := v.(type) {
	case Node:
		return val
	case map[string]any:
		m := make(Mapping, len(val))
		for k, elem := range val {
			m[k] = FromAny(elem)
		}
		return m
	case map[any]any:
		m := make(Mapping, len(val))
		for k, elem := range val {
			m[fmt.Sprintf("%v", k)] = FromAny(elem)
		}
		return m
	case []any:
		s := make(Sequence, len(val))
		for i, elem := range val {
			s[i] = FromAny(elem)
		}
		return s
	case []string:
		s := make(Sequence, len(val))
		for i, elem := range val {
			s[i] = String(elem)
		}
		return s
	case string:
		return String(val)
	case int:
		return Scalar{Value: json.Number(fmt.Sprintf("%d", val))}
	case int64:
		return Scalar{Value: json.Number(fmt.Sprintf("%d", val))}
	case float64:
		return Scalar{Value: json.Number(fmt.Sprintf("%v", val))}
	default:
		return Scalar{Value: val}
	}
}

// ToAny converts a Node back into plain maps, slices and scalars.
func ToAny(n Node) any {
	switch val := n.(type) {
	case Mapping:
		if val == nil {
			return nil
		}
		m := make(map[string]any, len(val))
		for k, elem := range val {
			m[k] = ToAny(elem)
		}
		return m
	case Sequence:
		if val == nil {
			return nil
		}
		s := make([]any, len(val))
		for i, elem := range val {
			s[i] = ToAny(elem)
		}
		return s
	case String:
		return string(val)
	case Scalar:
		return val.Value
	default:
		return nil
	}
}

// Clone returns a deep copy of the node.
func Clone(n Node) Node {
	switch val := n.(type) {
	case Mapping:
		if val == nil {
			return Mapping(nil)
		}
		m := make(Mapping, len(val))
		for k, elem := range val {
			m[k] = Clone(elem)
		}
		return m
	case Sequence:
		if val == nil {
			return Sequence(nil)
		}
		s := make(Sequence, len(val))
		for i, elem := range val {
			s[i] = Clone(elem)
		}
		return s
	default:
		return val
	}
}

// Decode parses JSON into a Node. Numbers are kept as json.Number.
func Decode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return FromAny(v), nil
}

func (m Mapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToAny(m))
}

func (m *Mapping) UnmarshalJSON(data []byte) error {
	n, err := Decode(data)
	if err != nil {
		return err
	}
	mapping, ok := n.(Mapping)
	if !ok {
		return fmt.Errorf("expected a JSON object, got %T", n)
	}
	*m = mapping

	return nil
}

func (s Sequence) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToAny(s))
}

func (s *Sequence) UnmarshalJSON(data []byte) error {
	n, err := Decode(data)
	if err != nil {
		return err
	}
	seq, ok := n.(Sequence)
	if !ok {
		return fmt.Errorf("expected a JSON array, got %T", n)
	}
	*s = seq

	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}
