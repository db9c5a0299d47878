// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"errors"
	"strings"

	"github.com/ddddddO/gtree"

	"github.com/platform-engineering-labs/albalias/internal/cli/display"
	"github.com/platform-engineering-labs/albalias/internal/partition"
)

// RenderErrorMessage turns partitioning failures into a readable message.
// Errors it does not know are returned as their plain message.
func RenderErrorMessage(err error) (string, error) {
	var resourceErr *partition.ResourceError
	if errors.As(err, &resourceErr) {
		return renderResourceError(resourceErr)
	}

	var contractErr *partition.ContractError
	if errors.As(err, &contractErr) {
		return display.Redf("invalid input to %s: %s\n", contractErr.Op, contractErr.Reason), nil
	}

	if errors.Is(err, partition.ErrExtractionConsumed) {
		return display.Red("the extracted resources were already merged, run the extraction again\n"), nil
	}

	return err.Error(), nil
}

func renderResourceError(err *partition.ResourceError) (string, error) {
	root := gtree.NewRoot(display.Red("template contains a malformed resource"))
	node := root.Add(display.LightBlue(err.ID))
	node.Add(display.Greyf("of type %s", err.Type))
	node.Add(display.Grey("problem: ") + display.Red(err.Reason))

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}

	return buf.String(), nil
}
