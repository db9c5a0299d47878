// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/platform-engineering-labs/albalias"
	"github.com/platform-engineering-labs/albalias/internal/cli/cmd"
	"github.com/platform-engineering-labs/albalias/internal/cli/display"
	"github.com/platform-engineering-labs/albalias/internal/cli/inspect"
	"github.com/platform-engineering-labs/albalias/internal/cli/partition"
)

func longDescription() string {
	return display.Tool + ": " + display.Green("Moves application load balancer resources of serverless functions into their alias stacks")
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     display.Tool,
		Short:   display.Tool + " CLI",
		Long:    longDescription(),
		Version: albalias.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Redirect slog output to discard until the command sets up its own logging
			devNull, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
			slog.SetDefault(slog.New(slog.NewTextHandler(devNull, nil)))
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	hp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		display.PrintBanner()
		hp(cmd, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetUsageTemplate(cmd.RootCmdUsageTemplate)

	rootCmd.AddCommand(partition.PartitionCmd())
	rootCmd.AddCommand(inspect.InspectCmd())

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+rootCmd.Use)
	for _, cmd := range rootCmd.Commands() {
		cmd.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", cmd.Name()))
	}

	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show "+rootCmd.Use+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version: %s\ngo version: %s\n", display.Tool, albalias.Version, runtime.Version()))

	return rootCmd
}

func init() {
	longestFlagName := 0

	cobra.AddTemplateFunc("typeMap", func(cmds []*cobra.Command) map[string][]*cobra.Command {
		m := make(map[string][]*cobra.Command)
		for _, c := range cmds {
			if c.IsAvailableCommand() {
				t := c.Annotations["type"]
				if t == "" {
					t = "Tooling"
				}

				m[t] = append(m[t], c)
			}
		}
		return m
	})

	cobra.AddTemplateFunc("formatExamples", func(examples string, cmd *cobra.Command) string {
		cliName := cmd.Root().Name()
		cmdName := cmd.Name()
		replaced := strings.ReplaceAll(examples, "{{.Name}}", cliName)
		return strings.ReplaceAll(replaced, "{{.Command}}", cmdName)
	})

	cobra.AddTemplateFunc("formatDoc", func(doc string, cmd *cobra.Command) string {
		lines := strings.Split(doc, "\n")
		for i, line := range lines {
			lines[i] = "                     " + line
		}

		return strings.Join(lines, "\n")
	})

	cobra.AddTemplateFunc("optionsUsage", func(f *pflag.FlagSet) []string {
		var usage []string

		f.VisitAll(func(flag *pflag.Flag) {
			length := len(flag.Name)
			if flag.Shorthand != "" {
				length += 6
			}

			if length > longestFlagName {
				longestFlagName = length
			}
		})

		longestFlagName += 10

		f.VisitAll(func(flag *pflag.Flag) {
			s := fmt.Sprintf("      --%s ", flag.Name)
			if flag.Shorthand != "" {
				s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
			}

			s = fmt.Sprintf("%-*s%s", longestFlagName, s, flag.Usage)
			if flag.DefValue != "" &&
				flag.DefValue != "[]" &&
				flag.DefValue != "false" &&
				flag.Name != "help" &&
				flag.Name != "version" {
				s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
			}

			usage = append(usage, s)
		})
		return usage
	})
}

// Execute runs the command line and reports errors the way Start does, returning
// the exit code instead of exiting.
func Execute(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)

	executed, err := rootCmd.ExecuteC()
	if err == nil {
		return 0
	}

	fmt.Fprintln(rootCmd.ErrOrStderr(), display.Red("Error: "+err.Error()))

	var flagErr *cmd.FlagError
	if errors.As(err, &flagErr) && executed != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr())
		_ = executed.Usage()
	}

	return 1
}

func Start() {
	os.Exit(Execute(NewRootCmd(), os.Args[1:]))
}
