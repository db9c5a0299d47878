// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partition

import (
	"strings"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

// InventoryEntry describes one load balancer resource found in a template.
type InventoryEntry struct {
	Kind Kind
	ID   string
	// Functions holds the normalized names of the functions whose prefix matches ID.
	Functions []string `json:"Functions,omitempty"`
}

// Inventory lists the resources Initialize would extract from source, without
// modifying it. Entries are grouped by kind in extraction order and sorted by
// identifier within a kind.
func Inventory(source *pkgmodel.Template, namer Namer, functions []string) []InventoryEntry {
	if source == nil || source.Resources == nil {
		return nil
	}

	normalized := make([]string, 0, len(functions))
	if namer != nil {
		for _, fn := range functions {
			normalized = append(normalized, namer.NormalizedFunctionName(fn))
		}
	}

	var entries []InventoryEntry
	for _, kind := range Kinds {
		resources := Classify(source.Resources, kind)
		for _, id := range resources.IDs() {
			entry := InventoryEntry{Kind: kind, ID: id}
			for _, fn := range normalized {
				if strings.HasPrefix(id, fn) {
					entry.Functions = append(entry.Functions, fn)
				}
			}
			entries = append(entries, entry)
		}
	}

	return entries
}
