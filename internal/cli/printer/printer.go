// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/albalias/internal/cli/renderer"
	"github.com/platform-engineering-labs/albalias/internal/partition"
)

type MachineReadablePrinter[T any] struct {
	w      io.Writer
	format string
}

func NewMachineReadablePrinter[T any](w io.Writer, format string) *MachineReadablePrinter[T] {
	return &MachineReadablePrinter[T]{
		w:      w,
		format: format,
	}
}

func (p *MachineReadablePrinter[T]) Print(v *T) error {
	var data []byte
	var err error
	switch p.format {
	case "json":
		data, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	case "yaml":
		intermediate, convertErr := convertViaJSON(v)
		if convertErr != nil {
			return fmt.Errorf("convert to yaml: %w", convertErr)
		}

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(intermediate); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = p.w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// convertViaJSON round trips v through JSON so the YAML output uses the same
// field names and number formatting as the JSON output.
func convertViaJSON(v any) (any, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var result any
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, err
	}

	return result, nil
}

type HumanReadablePrinter struct {
	w io.Writer
}

func NewHumanReadablePrinter(w io.Writer) *HumanReadablePrinter {
	return &HumanReadablePrinter{
		w: w,
	}
}

type PrintOptions struct {
	// Source is the template path shown in headlines.
	Source string
	DryRun bool
}

func (p *HumanReadablePrinter) Print(v any, opts PrintOptions) error {
	var output string
	var err error

	switch v := v.(type) {
	case *partition.Result:
		output, err = renderer.RenderPartition(v, opts.DryRun)
		if err != nil {
			return fmt.Errorf("render partition result: %w", err)
		}
	case *[]partition.InventoryEntry:
		output, err = renderer.RenderInventory(*v, opts.Source)
		if err != nil {
			return fmt.Errorf("render inventory: %w", err)
		}
	default:
		return fmt.Errorf("unsupported type: %T", v)
	}

	_, err = p.w.Write([]byte(output))
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
