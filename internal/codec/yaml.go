// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package codec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

const (
	tagStr   = "!!str"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagBool  = "!!bool"
	tagNull  = "!!null"
	tagMerge = "!!merge"
)

type YAML struct{}

var _ Codec = YAML{}

func (YAML) Name() string {
	return "yaml"
}

func (YAML) FileExtensions() []string {
	return []string{".yaml", ".yml"}
}

// Decode reads a YAML template. Short form intrinsics such as !Ref and !GetAtt
// are expanded to their long form and anchors are resolved.
func (YAML) Decode(data []byte) (*pkgmodel.Template, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	n, err := fromYAML(&doc)
	if err != nil {
		return nil, err
	}

	return pkgmodel.TemplateFromNode(n)
}

// Serialize writes the template in long form YAML with two space indentation.
func (YAML) Serialize(t *pkgmodel.Template, options *SerializeOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(t.Node())); err != nil {
		return nil, fmt.Errorf("yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml encode: %w", err)
	}

	data := buf.Bytes()
	if options != nil && options.Colorize {
		var err error
		data, err = Highlight(data, "yaml")
		if err != nil {
			return nil, fmt.Errorf("error colorizing YAML: %w", err)
		}
	}

	return data, nil
}

func fromYAML(n *yaml.Node) (pkgmodel.Node, error) {
	switch n.Kind {
	case 0:
		return pkgmodel.Mapping{}, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return pkgmodel.Mapping{}, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	}

	if name, ok := intrinsicName(n.Tag); ok {
		return expandIntrinsic(name, n)
	}

	switch n.Kind {
	case yaml.MappingNode:
		return mappingFromYAML(n)
	case yaml.SequenceNode:
		s := make(pkgmodel.Sequence, 0, len(n.Content))
		for _, c := range n.Content {
			elem, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			s = append(s, elem)
		}
		return s, nil
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d at line %d", n.Kind, n.Line)
	}
}

func mappingFromYAML(n *yaml.Node) (pkgmodel.Mapping, error) {
	m := make(pkgmodel.Mapping, len(n.Content)/2)
	var merged []pkgmodel.Mapping

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]

		if key.ShortTag() == tagMerge {
			sources, err := mergeSources(value)
			if err != nil {
				return nil, err
			}
			merged = append(merged, sources...)
			continue
		}

		v, err := fromYAML(value)
		if err != nil {
			return nil, err
		}
		m[key.Value] = v
	}

	// explicit keys win over merged ones, earlier merge sources win over later ones
	for _, src := range merged {
		for k, v := range src {
			if _, ok := m[k]; !ok {
				m[k] = v
			}
		}
	}

	return m, nil
}

func mergeSources(value *yaml.Node) ([]pkgmodel.Mapping, error) {
	var nodes []*yaml.Node
	if value.Kind == yaml.SequenceNode {
		nodes = value.Content
	} else {
		nodes = []*yaml.Node{value}
	}

	sources := make([]pkgmodel.Mapping, 0, len(nodes))
	for _, node := range nodes {
		src, err := fromYAML(node)
		if err != nil {
			return nil, err
		}
		m, ok := src.(pkgmodel.Mapping)
		if !ok {
			return nil, fmt.Errorf("merge key at line %d must reference a mapping", value.Line)
		}
		sources = append(sources, m)
	}

	return sources, nil
}

func scalarFromYAML(n *yaml.Node) (pkgmodel.Node, error) {
	switch n.ShortTag() {
	case tagStr:
		return pkgmodel.String(n.Value), nil
	case tagNull:
		return pkgmodel.Scalar{Value: nil}, nil
	case tagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return pkgmodel.Scalar{Value: b}, nil
	case tagInt:
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return pkgmodel.Scalar{Value: json.Number(strconv.FormatInt(i, 10))}, nil
	case tagFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return pkgmodel.String(n.Value), nil
		}
		return pkgmodel.Scalar{Value: json.Number(strconv.FormatFloat(f, 'f', -1, 64))}, nil
	default:
		return pkgmodel.String(n.Value), nil
	}
}

func toYAML(n pkgmodel.Node) *yaml.Node {
	switch val := n.(type) {
	case pkgmodel.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range val.Keys() {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: k},
				toYAML(val[k]))
		}
		return out
	case pkgmodel.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range val {
			out.Content = append(out.Content, toYAML(elem))
		}
		return out
	case pkgmodel.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: string(val)}
	case pkgmodel.Scalar:
		return scalarToYAML(val.Value)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}
	}
}

func scalarToYAML(v any) *yaml.Node {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBool, Value: strconv.FormatBool(val)}
	case json.Number:
		tag := tagInt
		if strings.ContainsAny(string(val), ".eE") {
			tag = tagFloat
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(val)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: fmt.Sprintf("%v", val)}
	}
}
