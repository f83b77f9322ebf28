package main

import (
	"encoding/json"
	"fmt"

	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/spboyer/benchviz/internal/figure"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newLayoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the computed figure layout without drawing it",
		Long: `Print the structural figure: the radar panel's category angles and
closed polygons, and the scatter panel's points with their marker areas
and annotations. Nothing is rendered or written to disk.`,
		Args: cobra.NoArgs,
		RunE: runLayout,
	}
	cmd.Flags().String("format", "yaml", "Output format: yaml | json")
	return cmd
}

func runLayout(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "yaml" && format != "json" {
		return fmt.Errorf("invalid format %q: expected yaml or json", format)
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	fig := figure.Compose(dataset.Default(), cfg.Size())

	w := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fig); err != nil {
			return fmt.Errorf("encoding layout: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fig); err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	return enc.Close()
}
