// Package figure lays out the two-panel model comparison figure. It turns a
// dataset into structural panels (polygons, bubble points, annotations,
// axis limits) without touching pixels; package render draws the result.
package figure

import (
	"fmt"
	"math"

	"github.com/spboyer/benchviz/internal/dataset"
)

// Radar panel constants.
const (
	RadialMax      = 100.0
	RadialStep     = 20.0
	FillAlpha      = 0.15
	LineWidthPt    = 2.5
	MarkerSizePt   = 8.0
	MarkerEdgePt   = 1.0
	CategoryFontPt = 10.0
	RadialFontPt   = 8.0
	LegendFontPt   = 10.0
	TitleFontPt    = 14.0
)

// Scatter panel constants.
const (
	MarkerScale     = 150.0
	MarkerFloor     = 100.0
	BubbleAlpha     = 0.7
	BubbleEdgePt    = 2.0
	AnnotationAlpha = 0.3
	CaptionAlpha    = 0.8
	GridAlpha       = 0.3
	AxisLabelFontPt = 12.0
	CaptionFontPt   = 9.0
	LabelFontPt     = 9.0
	HighlightFontPt = 10.0
)

// PanelKind identifies how a panel is drawn.
type PanelKind string

const (
	KindRadar   PanelKind = "radar"
	KindScatter PanelKind = "scatter"
)

// Panel is one sub-plot of a figure.
type Panel interface {
	PanelKind() PanelKind
}

// Size is the physical size of a figure.
type Size struct {
	WidthIn  float64 `json:"width_in" yaml:"width_in"`
	HeightIn float64 `json:"height_in" yaml:"height_in"`
	DPI      float64 `json:"dpi" yaml:"dpi"`
}

// DefaultSize is a 16x8 inch figure at 300 DPI.
var DefaultSize = Size{WidthIn: 16, HeightIn: 8, DPI: 300}

// Pixels returns the raster dimensions of the figure.
func (s Size) Pixels() (width, height int) {
	return int(math.Round(s.WidthIn * s.DPI)), int(math.Round(s.HeightIn * s.DPI))
}

// Points converts a length in points to pixels at this size's DPI.
func (s Size) Points(pt float64) float64 {
	return pt * s.DPI / 72
}

// Figure is a row of panels laid out left to right.
type Figure struct {
	Size   Size    `json:"size" yaml:"size"`
	Panels []Panel `json:"panels" yaml:"panels"`
}

// Radar returns the first radar panel, or nil.
func (f *Figure) Radar() *RadarPanel {
	for _, p := range f.Panels {
		if r, ok := p.(*RadarPanel); ok {
			return r
		}
	}
	return nil
}

// Scatter returns the first scatter panel, or nil.
func (f *Figure) Scatter() *ScatterPanel {
	for _, p := range f.Panels {
		if s, ok := p.(*ScatterPanel); ok {
			return s
		}
	}
	return nil
}

// Compose arranges the radar panel and the scatter panel side by side.
func Compose(ds *dataset.Dataset, size Size) *Figure {
	return &Figure{
		Size:   size,
		Panels: []Panel{RenderRadar(ds), RenderScatter(ds)},
	}
}

// RadialTick is one labelled radial grid circle.
type RadialTick struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label" yaml:"label"`
}

// Polygon is one model's closed radar outline.
type Polygon struct {
	Name     string        `json:"name" yaml:"name"`
	Vertices []PolarPoint  `json:"vertices" yaml:"vertices"`
	Style    dataset.Style `json:"style" yaml:"style"`
}

// Closed reports whether the outline ends where it starts.
func (p Polygon) Closed() bool {
	n := len(p.Vertices)
	return n > 1 && p.Vertices[0] == p.Vertices[n-1]
}

// Point is a position in axes-fraction coordinates: (0,0) bottom left,
// (1,1) top right.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Legend places the series key relative to the plot area.
type Legend struct {
	// Anchor is the legend's upper right corner in axes fraction. Values
	// above 1 put it outside the plot area.
	Anchor Point `json:"anchor" yaml:"anchor"`
}

// RadarPanel is the polar panel.
type RadarPanel struct {
	Kind             PanelKind     `json:"kind" yaml:"kind"`
	Title            string        `json:"title" yaml:"title"`
	Categories       []string      `json:"categories" yaml:"categories"`
	Angles           []float64     `json:"angles" yaml:"angles"`
	Axis             PolarAxis     `json:"axis" yaml:"axis"`
	RadialRange      dataset.Range `json:"radial_range" yaml:"radial_range"`
	RadialTicks      []RadialTick  `json:"radial_ticks" yaml:"radial_ticks"`
	RadialLabelAngle float64       `json:"radial_label_angle" yaml:"radial_label_angle"`
	Polygons         []Polygon     `json:"polygons" yaml:"polygons"`
	Legend           Legend        `json:"legend" yaml:"legend"`
}

func (p *RadarPanel) PanelKind() PanelKind { return p.Kind }

// RenderRadar lays out one closed polygon per model over evenly spaced
// category spokes.
func RenderRadar(ds *dataset.Dataset) *RadarPanel {
	angles := Angles(len(ds.Categories))

	var ticks []RadialTick
	for v := RadialStep; v <= RadialMax; v += RadialStep {
		ticks = append(ticks, RadialTick{Value: v, Label: fmt.Sprintf("%.0f%%", v)})
	}

	polys := make([]Polygon, 0, len(ds.Models))
	for _, m := range ds.Models {
		polys = append(polys, Polygon{
			Name:     m.Name,
			Vertices: ClosePolygon(angles, m.Scores),
			Style:    m.Style,
		})
	}

	return &RadarPanel{
		Kind:        KindRadar,
		Title:       ds.Radar.Title,
		Categories:  ds.Categories,
		Angles:      angles,
		Axis:        TopClockwise,
		RadialRange: dataset.Range{Min: 0, Max: RadialMax},
		RadialTicks: ticks,
		Polygons:    polys,
		Legend:      Legend{Anchor: Point{X: 1.3, Y: 1.1}},
	}
}

// Annotation is a text label attached to a scatter point.
type Annotation struct {
	Text string `json:"text" yaml:"text"`
	// Offset is the label displacement from the point, in points, Y up.
	Offset   dataset.Offset `json:"offset" yaml:"offset"`
	Bold     bool           `json:"bold,omitempty" yaml:"bold,omitempty"`
	FontSize float64        `json:"font_size" yaml:"font_size"`
}

// BubblePoint is one model on the scatter panel.
type BubblePoint struct {
	Name  string  `json:"name" yaml:"name"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Ratio float64 `json:"ratio" yaml:"ratio"`
	// Area is the marker area in square points.
	Area       float64    `json:"area" yaml:"area"`
	Color      string     `json:"color" yaml:"color"`
	Annotation Annotation `json:"annotation" yaml:"annotation"`
}

// Caption is a static text box anchored at its bottom left corner.
type Caption struct {
	Text   string `json:"text" yaml:"text"`
	Anchor Point  `json:"anchor" yaml:"anchor"`
}

// ScatterPanel is the Cartesian bubble panel.
type ScatterPanel struct {
	Kind    PanelKind     `json:"kind" yaml:"kind"`
	Title   string        `json:"title" yaml:"title"`
	XLabel  string        `json:"x_label" yaml:"x_label"`
	YLabel  string        `json:"y_label" yaml:"y_label"`
	XRange  dataset.Range `json:"x_range" yaml:"x_range"`
	YRange  dataset.Range `json:"y_range" yaml:"y_range"`
	Points  []BubblePoint `json:"points" yaml:"points"`
	Caption Caption       `json:"caption" yaml:"caption"`
}

func (p *ScatterPanel) PanelKind() PanelKind { return p.Kind }

// MarkerArea maps an efficiency ratio to a marker area in square points.
// The floor keeps near-zero ratios visible.
func MarkerArea(ratio float64) float64 {
	return math.Max(ratio*MarkerScale, MarkerFloor)
}

// AnnotationText formats a point label. Highlighted entries get one
// decimal, the rest two.
func AnnotationText(m dataset.ModelEntry) string {
	if m.Highlight {
		return fmt.Sprintf("%s\n(%.1fx efficiency)", m.Name, m.EfficiencyRatio)
	}
	return fmt.Sprintf("%s\n(%.2fx efficiency)", m.Name, m.EfficiencyRatio)
}

// RenderScatter lays out one annotated bubble per model at
// (parameter count, aggregate score).
func RenderScatter(ds *dataset.Dataset) *ScatterPanel {
	pts := make([]BubblePoint, 0, len(ds.Models))
	for _, m := range ds.Models {
		fontSize := LabelFontPt
		if m.Highlight {
			fontSize = HighlightFontPt
		}
		pts = append(pts, BubblePoint{
			Name:  m.Name,
			X:     m.ParamsBillions,
			Y:     m.AggregateScore,
			Ratio: m.EfficiencyRatio,
			Area:  MarkerArea(m.EfficiencyRatio),
			Color: m.Style.Color,
			Annotation: Annotation{
				Text:     AnnotationText(m),
				Offset:   m.Style.LabelOffset,
				Bold:     m.Highlight,
				FontSize: fontSize,
			},
		})
	}

	return &ScatterPanel{
		Kind:    KindScatter,
		Title:   ds.Scatter.Title,
		XLabel:  ds.Scatter.XLabel,
		YLabel:  ds.Scatter.YLabel,
		XRange:  ds.Scatter.XRange,
		YRange:  ds.Scatter.YRange,
		Points:  pts,
		Caption: Caption{Text: ds.Scatter.Caption, Anchor: Point{X: 0.02, Y: 0.02}},
	}
}
