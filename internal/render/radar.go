package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/spboyer/benchviz/internal/figure"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	gridColor   = drawing.Color{R: 176, G: 176, B: 176, A: 255}
	spineColor  = drawing.Color{R: 64, G: 64, B: 64, A: 255}
	mutedText   = drawing.Color{R: 128, G: 128, B: 128, A: 255}
	legendFrame = drawing.Color{R: 204, G: 204, B: 204, A: 255}
)

// radarLayout is the pixel geometry of a radar panel.
type radarLayout struct {
	cx, cy int
	radius float64
	title  chart.Box
	legend chart.Box
}

// layoutRadar sizes the polar area so the title, category labels and the
// outside legend all fit inside a w×h panel.
func layoutRadar(c canvas, p *figure.RadarPanel, w, h int) radarLayout {
	margin := c.px(12)
	pad := c.px(20)

	_, titleH := c.measure(p.Title, figure.TitleFontPt)
	titleBottom := margin + titleH

	labelW, labelH := 0, 0
	for _, cat := range p.Categories {
		lw, lh := c.measure(cat, figure.CategoryFontPt)
		labelW, labelH = max(labelW, lw), max(labelH, lh)
	}
	labelGap := c.px(8)

	legendW, legendH := legendExtent(c, p)

	availW := w - 2*margin - 2*(labelW+labelGap) - legendW
	availH := h - titleBottom - pad - 2*(labelH+labelGap) - margin
	side := max(min(availW, availH), 2)
	radius := float64(side) / 2

	left := margin + labelW + labelGap
	top := titleBottom + pad + labelH + labelGap
	cx := left + side/2
	cy := top + side/2

	// Legend anchor is in axes fraction, measured from the bounding square
	// of the polar area; clamp so it never leaves the panel.
	lr := left + int(p.Legend.Anchor.X*float64(side))
	lr = min(lr, w-margin)
	lt := top - int((p.Legend.Anchor.Y-1)*float64(side))
	lt = max(lt, titleBottom+c.px(4))

	return radarLayout{
		cx:     cx,
		cy:     cy,
		radius: radius,
		title:  chart.Box{Top: margin, Left: 0, Right: w, Bottom: titleBottom},
		legend: chart.Box{Top: lt, Left: lr - legendW, Right: lr, Bottom: lt + legendH},
	}
}

func legendExtent(c canvas, p *figure.RadarPanel) (w, h int) {
	for _, poly := range p.Polygons {
		tw, _ := c.measure(poly.Name, figure.LegendFontPt)
		w = max(w, tw)
	}
	sample := c.px(28)
	pad := c.px(6)
	rows := len(p.Polygons)
	return pad*3 + sample + w, pad*2 + rows*c.lineHeight(figure.LegendFontPt)
}

// point maps a polar data coordinate to pixels.
func (l radarLayout) point(axis figure.PolarAxis, theta, value, maxValue float64) (int, int) {
	ux, uy := axis.Unit(theta)
	r := l.radius * value / maxValue
	return l.cx + int(math.Round(r*ux)), l.cy - int(math.Round(r*uy))
}

// drawRadar renders a radar panel to a w×h image.
func drawRadar(p *figure.RadarPanel, size figure.Size, font *truetype.Font, w, h int) (image.Image, error) {
	r, err := chart.PNG(w, h)
	if err != nil {
		return nil, fmt.Errorf("creating radar renderer: %w", err)
	}
	r.SetDPI(size.DPI)
	r.SetFont(font)
	c := canvas{r: r, size: size, font: font}

	c.fillRect(chart.Box{Top: 0, Left: 0, Right: w, Bottom: h}, drawing.ColorWhite)

	l := layoutRadar(c, p, w, h)
	maxV := p.RadialRange.Max
	if maxV <= 0 {
		maxV = figure.RadialMax
	}

	drawRadarGrid(c, p, l, maxV)

	for _, poly := range p.Polygons {
		if len(poly.Vertices) == 0 {
			continue
		}
		col := parseColor(poly.Style.Color)
		xs := make([]int, len(poly.Vertices))
		ys := make([]int, len(poly.Vertices))
		for i, v := range poly.Vertices {
			xs[i], ys[i] = l.point(p.Axis, v.Angle, v.Value, maxV)
		}

		c.r.SetFillColor(col.WithAlpha(alpha(figure.FillAlpha)))
		c.path(xs, ys, true)
		c.r.Fill()

		c.r.SetStrokeColor(col)
		c.r.SetStrokeWidth(c.pxf(figure.LineWidthPt))
		c.r.SetStrokeDashArray(c.dashes(poly.Style.LineStyle, figure.LineWidthPt))
		c.path(xs, ys, false)
		c.r.Stroke()
		c.r.SetStrokeDashArray(nil)

		// The closing vertex repeats the first, so skip it for markers.
		for i := 0; i < len(xs)-1; i++ {
			c.marker(poly.Style.Marker, xs[i], ys[i], figure.MarkerSizePt, col, drawing.ColorWhite, figure.MarkerEdgePt)
		}
	}

	drawRadarLegend(c, p, l)

	c.text(p.Title, l.cx, l.title.Top, figure.TitleFontPt, drawing.ColorBlack, alignCenter, alignTop, true)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("encoding radar panel: %w", err)
	}
	return png.Decode(&buf)
}

func drawRadarGrid(c canvas, p *figure.RadarPanel, l radarLayout, maxV float64) {
	c.r.SetStrokeColor(gridColor)
	c.r.SetStrokeWidth(c.pxf(0.8))
	c.r.SetStrokeDashArray(nil)
	for _, t := range p.RadialTicks {
		c.circle(l.cx, l.cy, l.radius*t.Value/maxV)
		c.r.Stroke()
	}

	for _, theta := range p.Angles {
		x, y := l.point(p.Axis, theta, maxV, maxV)
		c.line(l.cx, l.cy, x, y, gridColor, 0.8, nil)
	}

	c.r.SetStrokeColor(spineColor)
	c.r.SetStrokeWidth(c.pxf(1))
	c.circle(l.cx, l.cy, l.radius)
	c.r.Stroke()

	for _, t := range p.RadialTicks {
		x, y := l.point(p.Axis, p.RadialLabelAngle, t.Value, maxV)
		c.text(t.Label, x+c.px(3), y, figure.RadialFontPt, mutedText, alignLeft, alignMiddle, false)
	}

	gap := float64(c.px(10))
	for i, cat := range p.Categories {
		if i >= len(p.Angles) {
			break
		}
		ux, uy := p.Axis.Unit(p.Angles[i])
		x := l.cx + int(math.Round((l.radius+gap)*ux))
		y := l.cy - int(math.Round((l.radius+gap)*uy))

		ha := alignCenter
		switch {
		case ux > 0.1:
			ha = alignLeft
		case ux < -0.1:
			ha = alignRight
		}
		va := alignMiddle
		switch {
		case uy > 0.1:
			va = alignBottom
		case uy < -0.1:
			va = alignTop
		}
		c.text(cat, x, y, figure.CategoryFontPt, drawing.ColorBlack, ha, va, false)
	}
}

func drawRadarLegend(c canvas, p *figure.RadarPanel, l radarLayout) {
	if len(p.Polygons) == 0 {
		return
	}
	c.box(l.legend, drawing.ColorWhite.WithAlpha(alpha(0.8)), legendFrame, 0.8)

	pad := c.px(6)
	sample := c.px(28)
	lh := c.lineHeight(figure.LegendFontPt)
	for i, poly := range p.Polygons {
		col := parseColor(poly.Style.Color)
		mid := l.legend.Top + pad + i*lh + lh/2
		x0 := l.legend.Left + pad
		x1 := x0 + sample
		c.line(x0, mid, x1, mid, col, figure.LineWidthPt, c.dashes(poly.Style.LineStyle, figure.LineWidthPt))
		c.marker(poly.Style.Marker, (x0+x1)/2, mid, figure.MarkerSizePt, col, drawing.ColorWhite, figure.MarkerEdgePt)
		c.text(poly.Name, x1+pad, mid, figure.LegendFontPt, drawing.ColorBlack, alignLeft, alignMiddle, false)
	}
}
