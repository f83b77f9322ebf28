package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spboyer/benchviz/internal/checks"
	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/spboyer/benchviz/internal/figure"
	"github.com/spboyer/benchviz/internal/projectconfig"
	"github.com/spboyer/benchviz/internal/render"
	"github.com/spboyer/benchviz/internal/reporting"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// stdoutPath selects streaming the PNG to standard output.
const stdoutPath = "-"

type renderOptions struct {
	output string
	format string
	dpi    int
}

func addRenderFlags(cmd *cobra.Command, opts *renderOptions) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `Output PNG path, or "-" for stdout (default from .benchviz.yaml)`)
	cmd.Flags().StringVar(&opts.format, "format", "", "Console output format: text | json (default from .benchviz.yaml)")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "Override the output resolution in dots per inch")
}

func newRenderCommand() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the comparison figure to a PNG file",
		Long: `Render the radar and efficiency scatter panels side by side and save
them as a single PNG.

The output path, resolution and figure size default to the values in
.benchviz.yaml (searched upward from the working directory), falling back
to a 16x8 inch figure at 300 DPI.

Use --output - to stream the PNG to stdout. Progress lines then go to
stderr. Writing binary output to a terminal is refused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}
	addRenderFlags(cmd, opts)
	return cmd
}

func loadProjectConfig() (*projectconfig.ProjectConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return projectconfig.Load(wd)
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	output := cfg.Output.Path
	if opts.output != "" {
		output = opts.output
	}
	format := cfg.Report.Format
	if opts.format != "" {
		format = opts.format
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: expected text or json", format)
	}
	if opts.dpi < 0 {
		return fmt.Errorf("invalid --dpi %d: must be positive", opts.dpi)
	}
	size := cfg.Size()
	if opts.dpi > 0 {
		size.DPI = float64(opts.dpi)
	}

	// Console output shares stdout with the PNG when streaming.
	console := cmd.OutOrStdout()
	if output == stdoutPath {
		if isTerminal(cmd.OutOrStdout()) {
			return errors.New("refusing to write PNG data to a terminal: redirect stdout or pass --output PATH")
		}
		console = cmd.ErrOrStderr()
	}

	checkers, err := configuredCheckers(cfg)
	if err != nil {
		return err
	}
	ds := dataset.Default()
	warnInconsistencies(checkers, ds)

	fig := figure.Compose(ds, size)
	summary := reporting.Summarize(fig, output)

	if format == "text" {
		if err := reporting.WritePlotProgress(console, summary); err != nil {
			return fmt.Errorf("writing progress: %w", err)
		}
	}

	if output == stdoutPath {
		if err := render.Encode(fig, cmd.OutOrStdout()); err != nil {
			return err
		}
	} else if err := render.Save(fig, output); err != nil {
		return err
	}

	if format == "json" {
		return reporting.WriteRenderJSON(console, summary)
	}
	if err := reporting.WriteRenderSummary(console, summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// warnInconsistencies logs advisory check failures. They never stop a render.
func warnInconsistencies(checkers []checks.Checker, ds *dataset.Dataset) {
	results, err := checks.RunChecks(checkers, ds)
	if err != nil {
		slog.Warn("Dataset checks could not run", "error", err)
	}
	for _, r := range checks.Failed(results) {
		slog.Warn("Dataset consistency check failed", "check", r.Name, "summary", r.Summary)
		for _, d := range r.Details {
			slog.Debug("Dataset consistency detail", "check", r.Name, "detail", d)
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
