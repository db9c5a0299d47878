// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partition

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/albalias/internal/cli/cmd"
	"github.com/platform-engineering-labs/albalias/internal/cli/display"
	"github.com/platform-engineering-labs/albalias/internal/cli/printer"
	"github.com/platform-engineering-labs/albalias/internal/cli/prompter"
	"github.com/platform-engineering-labs/albalias/internal/cli/renderer"
	"github.com/platform-engineering-labs/albalias/internal/codec"
	"github.com/platform-engineering-labs/albalias/internal/logging"
	partitioning "github.com/platform-engineering-labs/albalias/internal/partition"
	"github.com/platform-engineering-labs/albalias/internal/util"
)

type PartitionOptions struct {
	StagePath    string
	AliasPath    string
	Alias        string
	OutStagePath string
	OutAliasPath string
	Format       string
	Beautify     bool
	DryRun       bool
	Yes          bool
	Output       cmd.OutputOptions
}

func PartitionCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "partition",
		Short: "Move load balancer resources from the stage stack into an alias stack",
		RunE: func(command *cobra.Command, args []string) error {
			opts := &PartitionOptions{}
			opts.StagePath, _ = command.Flags().GetString("stage")
			opts.AliasPath, _ = command.Flags().GetString("alias-template")
			opts.Alias, _ = command.Flags().GetString("alias")
			opts.OutStagePath, _ = command.Flags().GetString("out-stage")
			opts.OutAliasPath, _ = command.Flags().GetString("out-alias")
			opts.Format, _ = command.Flags().GetString("format")
			opts.Beautify, _ = command.Flags().GetBool("beautify")
			opts.DryRun, _ = command.Flags().GetBool("dry-run")
			opts.Yes, _ = command.Flags().GetBool("yes")
			opts.Output = cmd.OutputOptionsFromFlags(command)

			return runPartition(command, opts, prompter.NewBasicPrompter(), command.OutOrStdout())
		},
		Annotations: map[string]string{
			"type":     "Templates",
			"examples": "{{.Name}} {{.Command}} --stage stage.json --alias-template alias.json --alias live",
			"doc": "Target groups, listener rules and load balancer invoke permissions are renamed\n" +
				"with the alias and pointed at the function alias. Resources of functions that are\n" +
				"not declared are dropped.",
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("stage", "", "Compiled stage stack template")
	command.Flags().String("alias-template", "", "Compiled alias stack template")
	command.Flags().String("alias", "", "Alias name (overrides provider.alias)")
	command.Flags().String("out-stage", "", "Where to write the stage template [default: in place]")
	command.Flags().String("out-alias", "", "Where to write the alias template [default: in place]")
	command.Flags().String("format", "", "Output template format (json|yaml) [default: input format]")
	command.Flags().Bool("beautify", false, "Indent JSON output")
	command.Flags().Bool("dry-run", false, "Report the result without writing any template")
	command.Flags().Bool("yes", false, "Overwrite existing output files without prompting")
	cmd.AddConfigFlags(command)
	cmd.AddOutputFlags(command)

	return command
}

func runPartition(command *cobra.Command, opts *PartitionOptions, p prompter.Prompter, out io.Writer) error {
	if err := validatePartitionOptions(opts); err != nil {
		return err
	}

	cfg, err := cmd.LoadConfig(command, opts.Alias)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return cmd.FlagErrorWrap(err)
	}

	logging.SetupLogging(&cfg.Logging)

	if len(cfg.Functions) == 0 && opts.Output.Consumer == cmd.ConsumerHuman {
		display.Warning("no functions declared, every load balancer resource will be dropped")
	}

	stage, stageCodec, err := codec.ReadFile(opts.StagePath)
	if err != nil {
		return err
	}
	aliasTemplate, aliasCodec, err := codec.ReadFile(opts.AliasPath)
	if err != nil {
		return err
	}

	partitioner, err := partitioning.NewPartitioner(cfg.Alias, partitioning.ServerlessNamer{},
		partitioning.WithLogger(slog.Default().With("service", cfg.Service)))
	if err != nil {
		return renderError(err)
	}

	ext, err := partitioner.Initialize(stage)
	if err != nil {
		return renderError(err)
	}
	result, err := partitioner.Run(ext, aliasTemplate, cfg.Functions)
	if err != nil {
		return renderError(err)
	}

	if !opts.DryRun {
		if opts.Format != "" {
			c, err := codec.ByName(opts.Format)
			if err != nil {
				return cmd.FlagErrorWrap(err)
			}
			stageCodec, aliasCodec = c, c
		}

		options := &codec.SerializeOptions{Beautify: opts.Beautify}
		outputs := []struct{ source, target string }{
			{opts.AliasPath, outputPath(opts.OutAliasPath, opts.AliasPath)},
			{opts.StagePath, outputPath(opts.OutStagePath, opts.StagePath)},
		}
		for _, o := range outputs {
			if !confirmOverwrite(p, o.source, o.target, opts.Yes) {
				return fmt.Errorf("operation cancelled, %s was not written", o.target)
			}
		}

		aliasData, err := aliasCodec.Serialize(aliasTemplate, options)
		if err != nil {
			return err
		}
		stageData, err := stageCodec.Serialize(stage, options)
		if err != nil {
			return err
		}
		if err := util.WriteFile(outputs[0].target, aliasData); err != nil {
			return fmt.Errorf("failed to write alias template: %w", err)
		}
		if err := util.WriteFile(outputs[1].target, stageData); err != nil {
			return fmt.Errorf("failed to write stage template: %w", err)
		}
	}

	if opts.Output.Consumer == cmd.ConsumerMachine {
		return printer.NewMachineReadablePrinter[partitioning.Result](out, opts.Output.Schema).Print(result)
	}

	return printer.NewHumanReadablePrinter(out).Print(result, printer.PrintOptions{Source: opts.StagePath, DryRun: opts.DryRun})
}

func validatePartitionOptions(opts *PartitionOptions) error {
	if opts.StagePath == "" {
		return cmd.FlagErrorf("--stage is required")
	}
	if opts.AliasPath == "" {
		return cmd.FlagErrorf("--alias-template is required")
	}
	if opts.Format != "" {
		if _, err := codec.ByName(opts.Format); err != nil {
			return cmd.FlagErrorWrap(err)
		}
	}

	return opts.Output.Validate()
}

func outputPath(out, in string) string {
	if out == "" {
		return in
	}
	return out
}

// confirmOverwrite asks before replacing a file that is not the input it was
// read from.
func confirmOverwrite(p prompter.Prompter, source, target string, yes bool) bool {
	if yes || filepath.Clean(source) == filepath.Clean(target) {
		return true
	}
	if _, err := os.Stat(target); err != nil {
		return true
	}

	return p.Confirm(fmt.Sprintf("File '%s' already exists. Overwrite?", target), false)
}

func renderError(err error) error {
	msg, renderErr := renderer.RenderErrorMessage(err)
	if renderErr != nil {
		return fmt.Errorf("error rendering error message: %v", renderErr)
	}
	return fmt.Errorf("%s", strings.TrimSuffix(msg, "\n"))
}
