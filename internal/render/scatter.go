package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/spboyer/benchviz/internal/figure"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var captionFill = drawing.Color{R: 211, G: 211, B: 211, A: 255}

// bubbleRadius converts a marker area in square points to a pixel radius.
func bubbleRadius(size figure.Size, area float64) float64 {
	return size.Points(math.Sqrt(area / math.Pi))
}

// niceTicks returns ticks from min to max on a 1-2-2.5-5 step grid.
func niceTicks(rng dataset.Range) []chart.Tick {
	span := rng.Max - rng.Min
	if span <= 0 {
		return nil
	}
	raw := span / 9
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := 10 * mag
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*mag >= raw {
			step = m * mag
			break
		}
	}

	var ticks []chart.Tick
	start := math.Ceil(rng.Min/step) * step
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > rng.Max+step*1e-9 {
			break
		}
		// Snap float noise so labels read 0.6, not 0.6000000000000001.
		v = math.Round(v*1e9) / 1e9
		ticks = append(ticks, chart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}

// fixedRange is an axis range that supplies its own ticks. Ticks set on a
// go-chart axis replace the range with the tick extremes, so they are
// provided through the range to keep the axis at its literal limits.
type fixedRange struct {
	*chart.ContinuousRange
	ticks []chart.Tick
}

var _ chart.TicksProvider = (*fixedRange)(nil)

func newFixedRange(rng dataset.Range) *fixedRange {
	return &fixedRange{
		ContinuousRange: &chart.ContinuousRange{Min: rng.Min, Max: rng.Max},
		ticks:           niceTicks(rng),
	}
}

func (f *fixedRange) GetTicks(chart.Renderer, chart.Style, chart.ValueFormatter) []chart.Tick {
	return f.ticks
}

// gridLines returns a grid line on every tick strictly inside the range.
// go-chart's default drops the first and last tick whatever their value.
func (f *fixedRange) gridLines(style chart.Style) []chart.GridLine {
	var out []chart.GridLine
	for _, t := range f.ticks {
		if t.Value > f.Min && t.Value < f.Max {
			out = append(out, chart.GridLine{Style: style, Value: t.Value})
		}
	}
	return out
}

// yLabelGutter is the left padding that holds the rotated y axis label.
// go-chart keeps its tick labels right of it.
func yLabelGutter(size figure.Size) int {
	return int(math.Round(size.Points(figure.AxisLabelFontPt*lineSpacing + 12)))
}

// scatterFrame is the plot area and the axis ranges go-chart settled on.
// Overlays map through it so they land where the axes say.
type scatterFrame struct {
	box  chart.Box
	x, y chart.Range
}

func (f scatterFrame) pixel(x, y float64) (int, int) {
	return f.box.Left + f.x.Translate(x), f.box.Bottom - f.y.Translate(y)
}

// drawScatter renders a scatter panel to a w×h image.
func drawScatter(p *figure.ScatterPanel, size figure.Size, font *truetype.Font, w, h int) (image.Image, error) {
	ch, _ := scatterChart(p, size, font, w, h)

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering scatter panel: %w", err)
	}
	return png.Decode(&buf)
}

// scatterChart builds the go-chart chart for a scatter panel. The chart
// draws the axes, ticks and grid; the bubbles, annotations, y label, caption
// and title are an element drawn over the canvas. The returned frame is
// filled in when the chart renders.
func scatterChart(p *figure.ScatterPanel, size figure.Size, font *truetype.Font, w, h int) (chart.Chart, *scatterFrame) {
	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}

	titleLines := strings.Count(p.Title, "\n") + 1
	titlePad := int(math.Round(size.Points(figure.TitleFontPt)*lineSpacing))*titleLines + int(math.Round(size.Points(24)))
	labelPad := yLabelGutter(size)

	grid := chart.Style{
		StrokeColor: drawing.ColorBlack.WithAlpha(alpha(figure.GridAlpha)),
		StrokeWidth: size.Points(0.8),
	}
	xRange := newFixedRange(p.XRange)
	yRange := newFixedRange(p.YRange)

	// The series only feeds the secondary axis. Its dots would be drawn with
	// go-chart's quadratic circle, so the bubbles are drawn by the element.
	series := chart.ContinuousSeries{
		Name:    "models",
		YAxis:   chart.YAxisSecondary,
		XValues: xs,
		YValues: ys,
		Style:   chart.Style{StrokeWidth: chart.Disabled},
	}

	ch := chart.Chart{
		Width:  w,
		Height: h,
		DPI:    size.DPI,
		Font:   font,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding: chart.Box{
				Top:    titlePad,
				Left:   labelPad,
				Right:  int(math.Round(size.Points(24))),
				Bottom: int(math.Round(size.Points(12))),
			},
		},
		Canvas: chart.Style{FillColor: drawing.ColorWhite},
		XAxis: chart.XAxis{
			Name:           p.XLabel,
			NameStyle:      chart.Style{FontSize: figure.AxisLabelFontPt, FontColor: drawing.ColorBlack},
			Range:          xRange,
			GridMajorStyle: grid,
			GridLines:      xRange.gridLines(grid),
		},
		// Series sit on the secondary axis, which go-chart draws on the left.
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: p.YRange.Min, Max: p.YRange.Max},
		},
		YAxisSecondary: chart.YAxis{
			Range:          yRange,
			GridMajorStyle: grid,
			GridLines:      yRange.gridLines(grid),
		},
		Series: []chart.Series{series},
	}

	frame := &scatterFrame{}
	c := canvas{size: size, font: font}
	ch.Elements = []chart.Renderable{
		func(r chart.Renderer, box chart.Box, _ chart.Style) {
			c.r = r
			*frame = scatterFrame{box: box, x: xRange, y: yRange}
			drawBubbles(c, p, *frame)
			drawAnnotations(c, p, *frame)
			drawCaption(c, p, box)
			c.verticalText(p.YLabel, labelPad-c.px(4), (box.Top+box.Bottom)/2, figure.AxisLabelFontPt, drawing.ColorBlack)
			c.text(p.Title, (box.Left+box.Right)/2, box.Top-c.px(10), figure.TitleFontPt, drawing.ColorBlack, alignCenter, alignBottom, true)
		},
	}
	return ch, frame
}

func drawBubbles(c canvas, p *figure.ScatterPanel, f scatterFrame) {
	for _, pt := range p.Points {
		x, y := f.pixel(pt.X, pt.Y)
		c.r.SetFillColor(parseColor(pt.Color).WithAlpha(alpha(figure.BubbleAlpha)))
		c.r.SetStrokeColor(drawing.ColorBlack)
		c.r.SetStrokeWidth(c.pxf(figure.BubbleEdgePt))
		c.r.SetStrokeDashArray(nil)
		c.circle(x, y, bubbleRadius(c.size, pt.Area))
		c.r.FillStroke()
	}
}

// drawAnnotations places each label at its point offset (Y up), with a box
// in the point color and an arrow back to the point.
func drawAnnotations(c canvas, p *figure.ScatterPanel, f scatterFrame) {
	arrow := drawing.ColorBlack.WithAlpha(alpha(0.5))
	for _, pt := range p.Points {
		a := pt.Annotation
		x, y := f.pixel(pt.X, pt.Y)
		tx := x + c.px(a.Offset.X)
		ty := y - c.px(a.Offset.Y)

		tw, th := c.measure(a.Text, a.FontSize)
		pad := c.px(0.3 * a.FontSize)
		label := chart.Box{Left: tx - pad, Right: tx + tw + pad, Top: ty - th - pad, Bottom: ty + pad}

		sx, sy := edgeToward(label, x, y)
		ex, ey := shorten(sx, sy, x, y, c.pxf(2))
		c.line(sx, sy, ex, ey, arrow, 1, nil)
		drawArrowHead(c, sx, sy, ex, ey, arrow)

		c.box(label, parseColor(pt.Color).WithAlpha(alpha(figure.AnnotationAlpha)), drawing.ColorBlack, 0.5)
		c.text(a.Text, tx, ty, a.FontSize, drawing.ColorBlack, alignLeft, alignBottom, a.Bold)
	}
}

func drawCaption(c canvas, p *figure.ScatterPanel, box chart.Box) {
	if p.Caption.Text == "" {
		return
	}
	x := box.Left + int(p.Caption.Anchor.X*float64(box.Right-box.Left))
	y := box.Bottom - int(p.Caption.Anchor.Y*float64(box.Bottom-box.Top))
	pad := c.px(0.5 * figure.CaptionFontPt)

	tw, th := c.measure(p.Caption.Text, figure.CaptionFontPt)
	bg := chart.Box{Left: x, Right: x + tw + 2*pad, Top: y - th - 2*pad, Bottom: y}
	c.box(bg, captionFill.WithAlpha(alpha(figure.CaptionAlpha)), drawing.ColorBlack, 0.5)
	c.text(p.Caption.Text, x+pad, y-pad, figure.CaptionFontPt, drawing.ColorBlack, alignLeft, alignBottom, false)
}

// edgeToward returns where the segment from the box center to (x, y)
// leaves the box.
func edgeToward(b chart.Box, x, y int) (int, int) {
	cx := float64(b.Left+b.Right) / 2
	cy := float64(b.Top+b.Bottom) / 2
	dx, dy := float64(x)-cx, float64(y)-cy
	hw := float64(b.Right-b.Left) / 2
	hh := float64(b.Bottom-b.Top) / 2
	if dx == 0 && dy == 0 {
		return int(cx), int(cy)
	}
	t := math.Inf(1)
	if dx != 0 {
		t = math.Min(t, hw/math.Abs(dx))
	}
	if dy != 0 {
		t = math.Min(t, hh/math.Abs(dy))
	}
	t = math.Min(t, 1)
	return int(math.Round(cx + dx*t)), int(math.Round(cy + dy*t))
}

// shorten pulls (x1, y1) back toward (x0, y0) by d pixels.
func shorten(x0, y0, x1, y1 int, d float64) (int, int) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	n := math.Hypot(dx, dy)
	if n <= d {
		return x1, y1
	}
	k := (n - d) / n
	return x0 + int(math.Round(dx*k)), y0 + int(math.Round(dy*k))
}

func drawArrowHead(c canvas, x0, y0, x1, y1 int, col drawing.Color) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	ux, uy := dx/n, dy/n
	l := c.pxf(5)
	for _, s := range []float64{1, -1} {
		// Wings at ±25° from the shaft.
		cos, sin := math.Cos(25*math.Pi/180), s*math.Sin(25*math.Pi/180)
		wx := -(ux*cos - uy*sin) * l
		wy := -(ux*sin + uy*cos) * l
		c.line(x1, y1, x1+int(math.Round(wx)), y1+int(math.Round(wy)), col, 1, nil)
	}
}
