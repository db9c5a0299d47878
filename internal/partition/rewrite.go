// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partition

import (
	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

// RewriteReferences replaces target with replacement everywhere in node, in place.
// A string value equal to target is replaced wherever it sits, which covers both
// {"Ref": target} and bare identifiers in DependsOn or Fn::GetAtt. A mapping key
// equal to target is moved to replacement, carrying its (already rewritten) value.
func RewriteReferences(target, replacement string, node pkgmodel.Node) {
	if target == replacement {
		return
	}
	rewrite(target, replacement, node)
}

func rewrite(target, replacement string, node pkgmodel.Node) {
	switch n := node.(type) {
	case pkgmodel.Sequence:
		for i, elem := range n {
			switch e := elem.(type) {
			case pkgmodel.Mapping, pkgmodel.Sequence:
				rewrite(target, replacement, e)
			case pkgmodel.String:
				if string(e) == target {
					n[i] = pkgmodel.String(replacement)
				}
			}
		}
	case pkgmodel.Mapping:
		// Keys are snapshotted so a key moved to replacement is not visited twice.
		for _, key := range n.Keys() {
			switch v := n[key].(type) {
			case pkgmodel.Mapping, pkgmodel.Sequence:
				rewrite(target, replacement, v)
			case pkgmodel.String:
				if string(v) == target {
					n[key] = pkgmodel.String(replacement)
				}
			}
			if key == target {
				n[replacement] = n[key]
				delete(n, key)
			}
		}
	}
}
