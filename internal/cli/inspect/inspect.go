// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package inspect

import (
	"bytes"
	"io"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/albalias/internal/cli/cmd"
	"github.com/platform-engineering-labs/albalias/internal/cli/printer"
	"github.com/platform-engineering-labs/albalias/internal/codec"
	"github.com/platform-engineering-labs/albalias/internal/logging"
	"github.com/platform-engineering-labs/albalias/internal/partition"
	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

type InspectOptions struct {
	TemplatePath string
	Query        string
	Output       cmd.OutputOptions
}

func InspectCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "inspect",
		Short: "List the load balancer resources of a template",
		RunE: func(command *cobra.Command, args []string) error {
			opts := &InspectOptions{}
			opts.TemplatePath = command.Flags().Arg(0)
			opts.Query, _ = command.Flags().GetString("query")
			opts.Output = cmd.OutputOptionsFromFlags(command)

			return runInspect(command, opts, command.OutOrStdout())
		},
		Annotations: map[string]string{
			"type":     "Templates",
			"examples": "{{.Name}} {{.Command}} stage.json  |  {{.Name}} {{.Command}} --query '$.Resources.*.Type' stage.json",
			"args":     "<template file>",
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("query", "", "RFC 9535 JSONPath query evaluated against the whole template")
	cmd.AddConfigFlags(command)
	cmd.AddOutputFlags(command)

	return command
}

func runInspect(command *cobra.Command, opts *InspectOptions, out io.Writer) error {
	if err := validateInspectOptions(opts); err != nil {
		return err
	}

	cfg, err := cmd.LoadConfig(command, "")
	if err != nil {
		return err
	}
	logging.SetupLogging(&cfg.Logging)

	tpl, _, err := codec.ReadFile(opts.TemplatePath)
	if err != nil {
		return err
	}

	if opts.Query != "" {
		selected, err := pkgmodel.Select(tpl.Node(), opts.Query)
		if err != nil {
			return cmd.FlagErrorWrap(err)
		}
		if opts.Output.Consumer == cmd.ConsumerMachine {
			return printer.NewMachineReadablePrinter[[]any](out, opts.Output.Schema).Print(&selected)
		}

		var buf bytes.Buffer
		if err := printer.NewMachineReadablePrinter[[]any](&buf, "yaml").Print(&selected); err != nil {
			return err
		}
		highlighted, err := codec.Highlight(buf.Bytes(), "yaml")
		if err != nil {
			return err
		}
		_, err = out.Write(highlighted)
		return err
	}

	entries := partition.Inventory(tpl, partition.ServerlessNamer{}, cfg.Functions)
	if opts.Output.Consumer == cmd.ConsumerMachine {
		if entries == nil {
			entries = []partition.InventoryEntry{}
		}
		return printer.NewMachineReadablePrinter[[]partition.InventoryEntry](out, opts.Output.Schema).Print(&entries)
	}

	return printer.NewHumanReadablePrinter(out).Print(&entries, printer.PrintOptions{Source: opts.TemplatePath})
}

func validateInspectOptions(opts *InspectOptions) error {
	if opts.TemplatePath == "" {
		return cmd.FlagErrorf("template file is required")
	}

	if err := opts.Output.Validate(); err != nil {
		return err
	}

	return nil
}
