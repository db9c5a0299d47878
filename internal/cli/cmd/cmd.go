// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/albalias/internal/cli/display"
	"github.com/platform-engineering-labs/albalias/internal/config"
	"github.com/platform-engineering-labs/albalias/internal/util"
)

var RootCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}} [OPTIONS]{{if .HasAvailableSubCommands}} [COMMAND]{{end}}\n") +
	"{{if .HasAvailableSubCommands}}\n" + display.Gold("Commands:") + "{{$types := typeMap .Commands}}" +
	"{{$first := true}}{{range $type, $cmds := $types}}" +
	"{{if $first}}{{$first = false}}{{else}}\n{{end}}\n  " + display.Gold("{{$type}}:") +
	"{{range $cmd := $cmds}}\n    " + display.Green("{{rpad $cmd.Name $cmd.NamePadding}}") + "     {{$cmd.Short}}" +
	"{{if (index $cmd.Annotations \"examples\")}}\n                   " +
	display.Grey("  {{formatExamples (index $cmd.Annotations \"examples\") $cmd}}") + "{{end}}" +
	"{{if (index $cmd.Annotations \"doc\")}}\n" +
	display.Grey("{{formatDoc (index $cmd.Annotations \"doc\") $cmd}}\n") + "{{end}}" +
	"{{end}}{{end}}\n{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}\n"

var SimpleCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}}{{if .HasAvailableLocalFlags}} [OPTIONS]{{end}}") +
	display.Green("{{if index .Annotations \"args\"}} {{index .Annotations \"args\"}}{{end}}") + "\n" +
	"{{if (index .Annotations \"doc\")}}\n" +
	display.Grey("{{formatDoc (index .Annotations \"doc\") .}}\n") + "{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}\n"

const (
	ConsumerHuman   = "human"
	ConsumerMachine = "machine"
)

// OutputOptions are shared by every command that prints a result.
type OutputOptions struct {
	Consumer string
	Schema   string
}

func AddOutputFlags(command *cobra.Command) {
	command.Flags().String("output-consumer", ConsumerHuman, "Consumer of the command result (human|machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the machine output (json|yaml)")
}

func OutputOptionsFromFlags(command *cobra.Command) OutputOptions {
	var opts OutputOptions
	opts.Consumer, _ = command.Flags().GetString("output-consumer")
	opts.Schema, _ = command.Flags().GetString("output-schema")
	return opts
}

func (o OutputOptions) Validate() error {
	if o.Consumer != ConsumerHuman && o.Consumer != ConsumerMachine {
		return FlagErrorf("output consumer must be either 'human' or 'machine'")
	}
	if o.Consumer == ConsumerMachine && o.Schema != "json" && o.Schema != "yaml" {
		return FlagErrorf("output schema must be either 'json' or 'yaml' for machine consumer")
	}
	return nil
}

func AddConfigFlags(command *cobra.Command) {
	command.Flags().String("service", "", "Path to the serverless service file [default: ./"+config.ServiceFileName+" when present]")
	command.Flags().StringSlice("function", nil, "Function to process, may be repeated (overrides the service file)")
	command.Flags().String("log-level", "", "Console log level (debug|info|warn|error)")
	command.Flags().String("log-file", "", "Log file path [default: ~/"+config.DataDirectory+"/log/"+config.LogFileName+"]")
}

// LoadConfig reads the service file named by --service, or the one in the
// working directory, and applies the command line overrides.
func LoadConfig(command *cobra.Command, alias string) (*config.Config, error) {
	servicePath, _ := command.Flags().GetString("service")
	functions, _ := command.Flags().GetStringSlice("function")
	logLevel, _ := command.Flags().GetString("log-level")
	logFile, _ := command.Flags().GetString("log-file")

	if servicePath == "" {
		if _, err := os.Stat(config.ServiceFileName); err == nil {
			servicePath = config.ServiceFileName
		}
	}

	cfg := config.DefaultConfig()
	if servicePath != "" {
		var err error
		cfg, err = config.LoadFile(servicePath)
		if err != nil {
			return nil, err
		}
	}

	cfg.Override(alias, functions)

	if logLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, FlagErrorf("invalid log level '%s'", logLevel)
		}
		cfg.Logging.ConsoleLogLevel = level
	}
	if logFile != "" {
		cfg.Logging.FilePath = util.ExpandHomePath(logFile)
	}

	return cfg, nil
}
