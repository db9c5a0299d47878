// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partition

import (
	"sort"
	"strings"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

// RenameMap maps old resource identifiers to their alias qualified replacement.
type RenameMap map[string]string

// RenamePair is a single old -> new substitution.
type RenamePair struct {
	Old string
	New string
}

// NewRenameMap renames every identifier of the given subsets by inserting suffix
// right after the first occurrence of functionID, which for routed resources is
// the prefix.
func NewRenameMap(functionID, suffix string, subsets ...pkgmodel.Resources) RenameMap {
	renames := RenameMap{}
	for _, subset := range subsets {
		for id := range subset {
			renames[id] = strings.Replace(id, functionID, functionID+suffix, 1)
		}
	}

	return renames
}

// Pairs returns the substitutions ordered by old identifier.
func (rm RenameMap) Pairs() []RenamePair {
	pairs := make([]RenamePair, 0, len(rm))
	for old, renamed := range rm {
		pairs = append(pairs, RenamePair{Old: old, New: renamed})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Old < pairs[j].Old })

	return pairs
}

// Apply rewrites every pair against node. node must contain every resource the
// map was built from, otherwise references between kinds are left dangling.
func (rm RenameMap) Apply(node pkgmodel.Node) {
	for _, pair := range rm.Pairs() {
		RewriteReferences(pair.Old, pair.New, node)
	}
}

// Injective reports whether no two identifiers are renamed to the same value.
func (rm RenameMap) Injective() bool {
	seen := make(map[string]struct{}, len(rm))
	for _, renamed := range rm {
		if _, ok := seen[renamed]; ok {
			return false
		}
		seen[renamed] = struct{}{}
	}
	return true
}
