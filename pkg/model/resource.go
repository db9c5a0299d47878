// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"slices"
	"sort"
	"strings"
)

const (
	TypeTargetGroup  = "AWS::ElasticLoadBalancingV2::TargetGroup"
	TypeListenerRule = "AWS::ElasticLoadBalancingV2::ListenerRule"
	TypePermission   = "AWS::Lambda::Permission"

	LoadBalancerPrincipal = "elasticloadbalancing.amazonaws.com"
)

const (
	KeyType       = "Type"
	KeyProperties = "Properties"
	KeyDependsOn  = "DependsOn"
)

// Resource is a single entry of a template's Resources section. Its identity is
// the key it is stored under, not anything inside it.
type Resource Mapping

func (r Resource) Type() string {
	if s, ok := r[KeyType].(String); ok {
		return string(s)
	}
	return ""
}

// Fqn returns the type in reversed dotted form, e.g. targetgroup.elasticloadbalancingv2.aws
func (r Resource) Fqn() string {
	frags := strings.Split(r.Type(), "::")
	slices.Reverse(frags)
	return strings.ToLower(strings.Join(frags, "."))
}

// Properties returns the Properties mapping, or nil when the resource has none.
func (r Resource) Properties() Mapping {
	props, _ := r[KeyProperties].(Mapping)
	return props
}

// Property returns the string value of a top level property.
func (r Resource) Property(name string) (string, bool) {
	props := r.Properties()
	if props == nil {
		return "", false
	}
	s, ok := props[name].(String)
	return string(s), ok
}

// DependsOn returns the resource's dependency edges. A single string DependsOn is
// returned as a one element slice.
func (r Resource) DependsOn() []string {
	switch deps := r[KeyDependsOn].(type) {
	case String:
		return []string{string(deps)}
	case Sequence:
		result := make([]string, 0, len(deps))
		for _, d := range deps {
			if s, ok := d.(String); ok {
				result = append(result, string(s))
			}
		}
		return result
	default:
		return nil
	}
}

// AppendDependsOn adds id to the end of DependsOn, creating the list when absent
// and converting the single string form to a list.
func (r Resource) AppendDependsOn(id string) {
	switch deps := r[KeyDependsOn].(type) {
	case Sequence:
		r[KeyDependsOn] = append(deps, String(id))
	case String:
		r[KeyDependsOn] = Sequence{deps, String(id)}
	default:
		r[KeyDependsOn] = Sequence{String(id)}
	}
}

func (r Resource) Clone() Resource {
	return Resource(Clone(Mapping(r)).(Mapping))
}

// Resources maps resource identifiers to resources.
type Resources map[string]Resource

// IDs returns the identifiers in sorted order.
func (rs Resources) IDs() []string {
	ids := make([]string, 0, len(rs))
	for id := range rs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Node returns a Mapping sharing the resources' storage.
func (rs Resources) Node() Mapping {
	m := make(Mapping, len(rs))
	for id, r := range rs {
		m[id] = Mapping(r)
	}
	return m
}

// ResourcesFromNode is the inverse of Resources.Node. Entries that are not
// mappings are skipped and reported by id.
func ResourcesFromNode(m Mapping) (Resources, []string) {
	rs := make(Resources, len(m))
	var skipped []string
	for _, id := range m.Keys() {
		r, ok := m[id].(Mapping)
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		rs[id] = Resource(r)
	}
	return rs, skipped
}

// Merge copies every entry of other into rs, overwriting on identifier clash.
func (rs Resources) Merge(other Resources) {
	for id, r := range other {
		rs[id] = r
	}
}
