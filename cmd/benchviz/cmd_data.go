package main

import (
	"fmt"

	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/spf13/cobra"
)

func newDataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Print the built-in dataset",
		Long: `Print the dataset compiled into the binary.

The YAML form is the exact embedded document and can be edited and passed
to "benchviz check FILE". The CSV form has one row per model with its
scatter metrics and one column per radar category.`,
		Args: cobra.NoArgs,
		RunE: runData,
	}
	cmd.Flags().String("format", "yaml", "Output format: yaml | csv")
	return cmd
}

func runData(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case "yaml":
		if _, err := w.Write(dataset.Raw()); err != nil {
			return fmt.Errorf("writing dataset: %w", err)
		}
		return nil
	case "csv":
		return dataset.WriteCSV(w, dataset.Default())
	default:
		return fmt.Errorf("invalid format %q: expected yaml or csv", format)
	}
}
