// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/platform-engineering-labs/albalias/internal/cli/display"
	"github.com/platform-engineering-labs/albalias/internal/partition"
)

// RenderPartition renders the renames of every function as a tree, followed by
// the resources that were dropped.
func RenderPartition(result *partition.Result, dryRun bool) (string, error) {
	header := "Moved load balancer resources to alias "
	if dryRun {
		header = "Would move load balancer resources to alias "
	}
	root := gtree.NewRoot(header + display.LightBlue(result.Alias) + display.Grey(" (run "+result.RunID+")"))

	for _, fr := range result.Functions {
		node := root.Add(display.Grey("function ") + display.Green(fr.Function) + display.Grey(" as "+fr.Normalized))

		pairs := fr.Renames.Pairs()
		if len(pairs) == 0 {
			node.Add(display.Gold("no load balancer resources"))
			continue
		}
		for _, pair := range pairs {
			node.Add(pair.Old + display.Grey(" -> ") + display.LightBlue(pair.New))
		}
	}

	if len(result.Pruned) > 0 {
		dropped := root.Add(display.Redf("dropped %d resource(s) of undeclared functions", len(result.Pruned)))
		for _, id := range result.Pruned {
			dropped.Add(id)
		}
	}

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}

	buf.WriteString(display.Greenf("%d resource(s) moved, %d dropped\n", len(result.Moved), len(result.Pruned)))

	return buf.String(), nil
}

// RenderInventory renders the load balancer resources of a template as a table.
func RenderInventory(entries []partition.InventoryEntry, source string) (string, error) {
	if len(entries) == 0 {
		return display.Gold(fmt.Sprintf("No load balancer resources found in %s.\n", source)), nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})))

	table.Header(display.LightBlue("Identifier"), "Kind", display.Green("Function"))

	data := make([][]any, len(entries))
	for i, entry := range entries {
		function := display.Gold("none")
		switch {
		case len(entry.Functions) == 1:
			function = display.Green(entry.Functions[0])
		case len(entry.Functions) > 1:
			function = display.Red(strings.Join(entry.Functions, ", "))
		}

		data[i] = []any{display.LightBlue(entry.ID), entry.Kind.String(), function}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error formatting inventory: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering inventory: %v", err)
	}

	return display.Grey(source+"\n") + buf.String(), nil
}
