// Package projectconfig provides the ProjectConfig struct and loader for
// .benchviz.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/benchviz/internal/figure"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".benchviz.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultOutputPath = "H2LooP_Performance_Analysis_Simplified.png"
	DefaultDPI        = 300
	DefaultWidthIn    = 16.0
	DefaultHeightIn   = 8.0

	DefaultReportFormat = "text"
)

// maxWalkUp bounds how many parent directories Load searches.
const maxWalkUp = 10

// OutputConfig holds the rendered figure's destination and size.
type OutputConfig struct {
	Path     string  `yaml:"path,omitempty"`
	DPI      int     `yaml:"dpi,omitempty"`
	WidthIn  float64 `yaml:"width_in,omitempty"`
	HeightIn float64 `yaml:"height_in,omitempty"`
}

// ReportConfig holds console report settings.
type ReportConfig struct {
	Format string `yaml:"format,omitempty"`
}

// CheckConfig selects one dataset consistency check. Params are decoded by
// the check itself, e.g. {tolerance: 0.1}.
type CheckConfig struct {
	Kind   string         `yaml:"kind"`
	Params map[string]any `yaml:"params,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .benchviz.yaml.
// The chart data itself is never configurable.
type ProjectConfig struct {
	Output OutputConfig `yaml:"output,omitempty"`
	Report ReportConfig `yaml:"report,omitempty"`
	// Checks replaces the default check list when non-empty.
	Checks []CheckConfig `yaml:"checks,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Output: OutputConfig{
			Path:     DefaultOutputPath,
			DPI:      DefaultDPI,
			WidthIn:  DefaultWidthIn,
			HeightIn: DefaultHeightIn,
		},
		Report: ReportConfig{
			Format: DefaultReportFormat,
		},
	}
}

// Size returns the figure size described by the output settings.
func (c *ProjectConfig) Size() figure.Size {
	return figure.Size{
		WidthIn:  c.Output.WidthIn,
		HeightIn: c.Output.HeightIn,
		DPI:      float64(c.Output.DPI),
	}
}

// Load finds .benchviz.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if err := fileCfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// validate rejects values that cannot produce an image. Zero values are
// allowed because they mean "use the default".
func (c *ProjectConfig) validate() error {
	if c.Output.DPI < 0 {
		return fmt.Errorf("output.dpi must be positive, got %d", c.Output.DPI)
	}
	if c.Output.WidthIn < 0 || c.Output.HeightIn < 0 {
		return fmt.Errorf("output size must be positive, got %gx%g in", c.Output.WidthIn, c.Output.HeightIn)
	}
	switch c.Report.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("report.format must be text or json, got %q", c.Report.Format)
	}
	for i, chk := range c.Checks {
		if chk.Kind == "" {
			return fmt.Errorf("checks[%d]: kind is required", i)
		}
	}
	return nil
}

// findConfigFile walks up from dir looking for .benchviz.yaml.
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < maxWalkUp; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Output.Path != "" {
		dst.Output.Path = src.Output.Path
	}
	if src.Output.DPI != 0 {
		dst.Output.DPI = src.Output.DPI
	}
	if src.Output.WidthIn != 0 {
		dst.Output.WidthIn = src.Output.WidthIn
	}
	if src.Output.HeightIn != 0 {
		dst.Output.HeightIn = src.Output.HeightIn
	}

	if src.Report.Format != "" {
		dst.Report.Format = src.Report.Format
	}

	if len(src.Checks) > 0 {
		dst.Checks = src.Checks
	}
}
