// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partition

import (
	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

// Kind is one of the resource kinds moved into the alias stack.
type Kind string

const (
	KindTargetGroup  Kind = pkgmodel.TypeTargetGroup
	KindListenerRule Kind = pkgmodel.TypeListenerRule
	KindPermission   Kind = pkgmodel.TypePermission
)

// Kinds lists every kind in the order they are extracted.
var Kinds = []Kind{KindPermission, KindListenerRule, KindTargetGroup}

func (k Kind) String() string {
	switch k {
	case KindTargetGroup:
		return "target group"
	case KindListenerRule:
		return "listener rule"
	case KindPermission:
		return "permission"
	default:
		return string(k)
	}
}

// Classify returns the resources whose Type is the kind's type tag. Permissions
// are only kept when granted to the load balancer service principal. The input
// is never modified and the result is never nil.
func Classify(resources pkgmodel.Resources, kind Kind) pkgmodel.Resources {
	result := pkgmodel.Resources{}
	for id, r := range resources {
		if r.Type() != string(kind) {
			continue
		}
		if kind == KindPermission {
			if principal, _ := r.Property("Principal"); principal != pkgmodel.LoadBalancerPrincipal {
				continue
			}
		}
		result[id] = r
	}

	return result
}
