// Package dataset holds the literal comparison data rendered by benchviz:
// the ordered evaluation categories, the model entries with their radar
// scores and scatter metrics, and the fixed panel texts.
package dataset

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var rawDataset []byte

// LineStyle is a stroke pattern for a model's radar polygon.
type LineStyle string

const (
	LineSolid   LineStyle = "-"
	LineDashed  LineStyle = "--"
	LineDashDot LineStyle = "-."
	LineDotted  LineStyle = ":"
)

// Marker is the vertex shape drawn on a model's radar polygon.
type Marker string

const (
	MarkerCircle   Marker = "o"
	MarkerSquare   Marker = "s"
	MarkerTriangle Marker = "^"
	MarkerDiamond  Marker = "D"
)

// Offset is a label displacement in points. Positive Y points up.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UnmarshalYAML accepts the two-element sequence form `[dx, dy]`.
func (o *Offset) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: label offset needs 2 values, got %d", node.Line, len(pair))
	}
	o.X, o.Y = pair[0], pair[1]
	return nil
}

// Style holds the presentation attributes of a model entry.
type Style struct {
	Color       string    `yaml:"color" json:"color"`
	LineStyle   LineStyle `yaml:"line_style" json:"line_style"`
	Marker      Marker    `yaml:"marker" json:"marker"`
	LabelOffset Offset    `yaml:"label_offset" json:"label_offset"`
}

// ModelEntry is one compared model.
type ModelEntry struct {
	Name            string    `yaml:"name" json:"name"`
	Scores          []float64 `yaml:"scores" json:"scores"`
	ParamsBillions  float64   `yaml:"params_billions" json:"params_billions"`
	AggregateScore  float64   `yaml:"aggregate_score" json:"aggregate_score"`
	EfficiencyRatio float64   `yaml:"efficiency_ratio" json:"efficiency_ratio"`
	Highlight       bool      `yaml:"highlight,omitempty" json:"highlight,omitempty"`
	Style           Style     `yaml:"style" json:"style"`
}

// Range is a closed [Min, Max] axis interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UnmarshalYAML accepts the two-element sequence form `[min, max]`.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: range needs 2 values, got %d", node.Line, len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// RadarText is the fixed text of the radar panel.
type RadarText struct {
	Title string `yaml:"title"`
}

// ScatterText is the fixed text and axis limits of the scatter panel.
type ScatterText struct {
	Title   string `yaml:"title"`
	XLabel  string `yaml:"x_label"`
	YLabel  string `yaml:"y_label"`
	XRange  Range  `yaml:"x_range"`
	YRange  Range  `yaml:"y_range"`
	Caption string `yaml:"caption"`
}

// Dataset is the complete, immutable input of one figure.
type Dataset struct {
	Categories []string     `yaml:"categories"`
	Models     []ModelEntry `yaml:"models"`
	Radar      RadarText    `yaml:"radar"`
	Scatter    ScatterText  `yaml:"scatter"`
}

// Parse decodes a dataset document.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return &ds, nil
}

var (
	defaultOnce sync.Once
	defaultDS   *Dataset
)

// Default returns the built-in dataset. The embedded document is part of
// the binary, so a decode failure panics.
func Default() *Dataset {
	defaultOnce.Do(func() {
		ds, err := Parse(rawDataset)
		if err != nil {
			panic(fmt.Sprintf("embedded dataset: %v", err))
		}
		defaultDS = ds
	})
	return defaultDS
}

// Raw returns a copy of the embedded dataset document.
func Raw() []byte {
	out := make([]byte, len(rawDataset))
	copy(out, rawDataset)
	return out
}

// Names returns the model names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.Models))
	for i, m := range d.Models {
		names[i] = m.Name
	}
	return names
}
