package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "benchviz",
		Short: "benchviz - render the BMS model comparison figure",
		Long: `benchviz renders a two-panel comparison of language models on a
battery-management-system benchmark.

The left panel is a radar chart of per-category scores. The right panel is
a bubble scatter of model size against aggregate score, where bubble area
encodes efficiency (score per billion parameters).

Running benchviz with no subcommand renders the figure.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}
	addRenderFlags(cmd, opts)

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newRenderCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newLayoutCommand())
	cmd.AddCommand(newDataCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
