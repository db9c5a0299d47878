// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package codec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

// intrinsicName returns the function name of a short form tag such as !Sub.
// Standard YAML tags (!!str, !!map, ...) and the non-specific tag are not intrinsics.
func intrinsicName(tag string) (string, bool) {
	if !strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "!!") || tag == "!" {
		return "", false
	}
	return tag[1:], true
}

func expandIntrinsic(name string, n *yaml.Node) (pkgmodel.Node, error) {
	untagged := *n
	untagged.Tag = ""
	if untagged.Kind == yaml.ScalarNode {
		// arguments of scalar intrinsics are always strings
		untagged.Tag = tagStr
	}

	arg, err := fromYAML(&untagged)
	if err != nil {
		return nil, err
	}

	switch name {
	case "Ref", "Condition":
		return pkgmodel.Mapping{name: arg}, nil
	case "GetAtt":
		if s, ok := arg.(pkgmodel.String); ok {
			resource, attribute, found := strings.Cut(string(s), ".")
			if !found {
				return nil, fmt.Errorf("!GetAtt %q at line %d must have the form Resource.Attribute", s, n.Line)
			}
			arg = pkgmodel.Sequence{pkgmodel.String(resource), pkgmodel.String(attribute)}
		}
		return pkgmodel.Mapping{"Fn::GetAtt": arg}, nil
	default:
		return pkgmodel.Mapping{"Fn::" + name: arg}, nil
	}
}
