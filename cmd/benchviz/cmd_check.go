package main

import (
	"fmt"
	"os"

	"github.com/spboyer/benchviz/internal/checks"
	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/spboyer/benchviz/internal/projectconfig"
	"github.com/spboyer/benchviz/internal/reporting"
	"github.com/spboyer/benchviz/internal/validation"
	"github.com/spf13/cobra"
)

const embeddedSource = "embedded"

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [dataset.yaml]",
		Short: "Validate the dataset and run consistency checks",
		Long: `Validate a dataset document against the dataset schema, then run the
advisory consistency checks:

  1. score-count       - every model has one radar score per category
  2. score-range       - radar scores are within 0-100
  3. aggregate-mean    - the scatter aggregate equals the radar score mean
  4. efficiency-ratio  - the efficiency ratio equals aggregate / parameters

With no argument, checks the dataset built into the binary. A path checks
that document instead. Rendering always uses the built-in dataset.

A "checks" list in .benchviz.yaml replaces the default set and may set a
tolerance for aggregate-mean and efficiency-ratio.

Consistency warnings are advisory. Pass --strict to exit with status 1
when any of them fail. Schema errors always exit with status 2.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "text", "Output format: text | json | junit")
	cmd.Flags().Bool("strict", false, "Exit with status 1 when any consistency check fails")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" && format != "junit" {
		return fmt.Errorf("invalid format %q: expected text, json or junit", format)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	checkers, err := configuredCheckers(cfg)
	if err != nil {
		return err
	}

	report, err := buildCheckReport(checkers, args)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case "json":
		err = reporting.WriteCheckJSON(w, report)
	case "junit":
		err = reporting.WriteJUnitXML(w, report)
	default:
		err = reporting.WriteCheckText(w, report)
	}
	if err != nil {
		return err
	}

	if len(report.SchemaErrors) > 0 {
		return fmt.Errorf("dataset %s has %d schema error(s)", report.Source, len(report.SchemaErrors))
	}
	if strict && report.Warnings() > 0 {
		return &CheckFailureError{
			Message: fmt.Sprintf("dataset %s failed %d consistency check(s)", report.Source, report.Warnings()),
		}
	}
	return nil
}

// configuredCheckers returns the checks listed in .benchviz.yaml, or the
// default set when none are listed.
func configuredCheckers(cfg *projectconfig.ProjectConfig) ([]checks.Checker, error) {
	if len(cfg.Checks) == 0 {
		return checks.DefaultCheckers(), nil
	}
	out := make([]checks.Checker, 0, len(cfg.Checks))
	for i, c := range cfg.Checks {
		chk, err := checks.Create(checks.Kind(c.Kind), c.Params)
		if err != nil {
			return nil, fmt.Errorf("configuring checks[%d]: %w", i, err)
		}
		out = append(out, chk)
	}
	return out, nil
}

func buildCheckReport(checkers []checks.Checker, args []string) (*reporting.CheckReport, error) {
	report := &reporting.CheckReport{Source: embeddedSource}

	var ds *dataset.Dataset
	if len(args) == 0 {
		report.SchemaErrors = validation.ValidateDefault()
		ds = dataset.Default()
	} else {
		report.Source = args[0]
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading dataset file: %w", err)
		}
		report.SchemaErrors = validation.ValidateDatasetBytes(data)
		if len(report.SchemaErrors) > 0 {
			return report, nil
		}
		ds, err = dataset.Parse(data)
		if err != nil {
			return nil, err
		}
	}

	results, err := checks.RunChecks(checkers, ds)
	if err != nil {
		return nil, fmt.Errorf("running dataset checks: %w", err)
	}
	report.Results = results
	return report, nil
}
