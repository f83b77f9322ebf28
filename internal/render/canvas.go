package render

import (
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/spboyer/benchviz/internal/figure"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type hAlign int

const (
	alignLeft hAlign = iota
	alignCenter
	alignRight
)

type vAlign int

const (
	alignTop vAlign = iota
	alignMiddle
	alignBottom
)

// lineSpacing is the text line pitch as a multiple of the font size.
const lineSpacing = 1.25

// canvas wraps a go-chart renderer with point-based sizing and the
// multi-line text and marker primitives both panels share.
type canvas struct {
	r    chart.Renderer
	size figure.Size
	font *truetype.Font
}

// px converts points to whole pixels.
func (c canvas) px(pt float64) int {
	return int(math.Round(c.size.Points(pt)))
}

// pxf converts points to fractional pixels.
func (c canvas) pxf(pt float64) float64 {
	return c.size.Points(pt)
}

func (c canvas) path(xs, ys []int, closed bool) {
	for i := range xs {
		if i == 0 {
			c.r.MoveTo(xs[i], ys[i])
			continue
		}
		c.r.LineTo(xs[i], ys[i])
	}
	if closed {
		c.r.Close()
	}
}

// circle adds a full circle to the current path. go-chart's Circle is four
// quadratic curves that bulge past the radius on the diagonals.
func (c canvas) circle(x, y int, radius float64) {
	c.r.ArcTo(x, y, radius, radius, 0, 2*math.Pi)
	c.r.Close()
}

func (c canvas) fillRect(b chart.Box, fill drawing.Color) {
	c.r.SetFillColor(fill)
	c.path([]int{b.Left, b.Right, b.Right, b.Left}, []int{b.Top, b.Top, b.Bottom, b.Bottom}, true)
	c.r.Fill()
}

func (c canvas) box(b chart.Box, fill, edge drawing.Color, edgePt float64) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(edge)
	c.r.SetStrokeWidth(c.pxf(edgePt))
	c.r.SetStrokeDashArray(nil)
	c.path([]int{b.Left, b.Right, b.Right, b.Left}, []int{b.Top, b.Top, b.Bottom, b.Bottom}, true)
	c.r.FillStroke()
}

func (c canvas) line(x0, y0, x1, y1 int, col drawing.Color, widthPt float64, dash []float64) {
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(c.pxf(widthPt))
	c.r.SetStrokeDashArray(dash)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
	c.r.SetStrokeDashArray(nil)
}

func (c canvas) lineHeight(fontPt float64) int {
	return int(math.Round(c.pxf(fontPt) * lineSpacing))
}

// measure returns the pixel extent of a possibly multi-line string.
func (c canvas) measure(body string, fontPt float64) (w, h int) {
	c.r.SetFont(c.font)
	c.r.SetFontSize(fontPt)
	lines := strings.Split(body, "\n")
	for _, l := range lines {
		w = max(w, c.r.MeasureText(l).Width())
	}
	return w, len(lines) * c.lineHeight(fontPt)
}

// text draws body aligned to (x, y) and returns the occupied box. Each line
// is aligned on its own, so centered blocks stay centered line by line.
func (c canvas) text(body string, x, y int, fontPt float64, col drawing.Color, ha hAlign, va vAlign, bold bool) chart.Box {
	w, h := c.measure(body, fontPt)
	c.r.SetFontColor(col)

	top := y
	switch va {
	case alignMiddle:
		top = y - h/2
	case alignBottom:
		top = y - h
	}
	left := x
	switch ha {
	case alignCenter:
		left = x - w/2
	case alignRight:
		left = x - w
	}

	lh := c.lineHeight(fontPt)
	ascent := c.px(fontPt)
	for i, l := range strings.Split(body, "\n") {
		lw := c.r.MeasureText(l).Width()
		lx := left
		switch ha {
		case alignCenter:
			lx = x - lw/2
		case alignRight:
			lx = x - lw
		}
		baseline := top + i*lh + ascent
		c.r.Text(l, lx, baseline)
		if bold {
			c.r.Text(l, lx+max(1, c.px(0.35)), baseline)
		}
	}
	return chart.Box{Top: top, Left: left, Right: left + w, Bottom: top + h}
}

// verticalText draws a single line reading bottom to top, centered on y,
// with its baseline on x so the glyphs sit left of x.
func (c canvas) verticalText(body string, x, y int, fontPt float64, col drawing.Color) {
	w, _ := c.measure(body, fontPt)
	c.r.SetFontColor(col)
	c.r.SetTextRotation(-math.Pi / 2)
	c.r.Text(body, x, y+w/2)
	c.r.ClearTextRotation()
}

// marker draws one vertex marker centered on (x, y).
func (c canvas) marker(m dataset.Marker, x, y int, sizePt float64, fill, edge drawing.Color, edgePt float64) {
	rad := c.pxf(sizePt) / 2
	ir := int(math.Round(rad))
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(edge)
	c.r.SetStrokeWidth(c.pxf(edgePt))
	c.r.SetStrokeDashArray(nil)

	switch m {
	case dataset.MarkerSquare:
		s := int(math.Round(rad * 0.85))
		c.path([]int{x - s, x + s, x + s, x - s}, []int{y - s, y - s, y + s, y + s}, true)
	case dataset.MarkerTriangle:
		dx := int(math.Round(rad * math.Sqrt(3) / 2))
		c.path([]int{x, x + dx, x - dx}, []int{y - ir, y + ir/2, y + ir/2}, true)
	case dataset.MarkerDiamond:
		c.path([]int{x, x + ir*3/4, x, x - ir*3/4}, []int{y - ir, y, y + ir, y}, true)
	default:
		c.circle(x, y, rad)
	}
	c.r.FillStroke()
}

// dashes returns the dash pattern for a line style, scaled by line width.
func (c canvas) dashes(ls dataset.LineStyle, widthPt float64) []float64 {
	var unit []float64
	switch ls {
	case dataset.LineDashed:
		unit = []float64{3.7, 1.6}
	case dataset.LineDashDot:
		unit = []float64{6.4, 1.6, 1, 1.6}
	case dataset.LineDotted:
		unit = []float64{1, 1.65}
	default:
		return nil
	}
	out := make([]float64, len(unit))
	for i, u := range unit {
		out[i] = c.pxf(u * widthPt)
	}
	return out
}

// parseColor reads a "#rrggbb" color. Unknown input yields opaque black.
func parseColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 && len(hex) != 3 {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(hex)
}

// alpha converts a 0..1 opacity to an 8-bit alpha.
func alpha(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}
