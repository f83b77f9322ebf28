package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"testing"

	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/spboyer/benchviz/internal/figure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"
)

// geometrySize is large enough that a 2pt stroke covers several pixels.
var geometrySize = figure.Size{WidthIn: 6, HeightIn: 6, DPI: 144}

func renderScatterPanel(t *testing.T, p *figure.ScatterPanel) (image.Image, *scatterFrame) {
	t.Helper()
	f, err := defaultFont()
	require.NoError(t, err)

	w, h := geometrySize.Pixels()
	ch, frame := scatterChart(p, geometrySize, f, w, h)
	var buf bytes.Buffer
	require.NoError(t, ch.Render(chart.PNG, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	return img, frame
}

// darkest returns the lowest gray level in the 3x3 block around (x, y).
func darkest(img image.Image, x, y int) uint32 {
	lo := uint32(0xffff)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			r, g, b, _ := img.At(x+dx, y+dy).RGBA()
			lo = min(lo, (r+g+b)/3)
		}
	}
	return lo
}

func TestScatterChart_KeepsLiteralRanges(t *testing.T) {
	p := figure.RenderScatter(dataset.Default())
	_, frame := renderScatterPanel(t, p)

	assert.Equal(t, p.XRange.Min, frame.x.GetMin())
	assert.Equal(t, p.XRange.Max, frame.x.GetMax())
	assert.Equal(t, p.YRange.Min, frame.y.GetMin())
	assert.Equal(t, p.YRange.Max, frame.y.GetMax())

	x, y := frame.pixel(p.XRange.Min, p.YRange.Min)
	assert.Equal(t, frame.box.Left, x)
	assert.Equal(t, frame.box.Bottom, y)

	x, y = frame.pixel(p.XRange.Max, p.YRange.Max)
	assert.Equal(t, frame.box.Right, x)
	assert.Equal(t, frame.box.Top, y)
}

func TestScatterChart_BubbleFillAndEdgeShareCenter(t *testing.T) {
	p := figure.RenderScatter(dataset.Default())
	p.Caption = figure.Caption{}
	p.Points = []figure.BubblePoint{{
		Name:  "m",
		X:     275,
		Y:     42.5,
		Area:  6000,
		Color: "#d62728",
		// Label up and right, away from the sampled side of the bubble.
		Annotation: figure.Annotation{Text: "m", Offset: dataset.Offset{X: 60, Y: 60}, FontSize: figure.LabelFontPt},
	}}

	img, frame := renderScatterPanel(t, p)
	cx, cy := frame.pixel(275, 42.5)
	rad := bubbleRadius(geometrySize, 6000)
	diag := int(math.Round(rad / math.Sqrt2))
	ir := int(math.Round(rad))

	// Fill inside the bubble, down and left of center.
	r, g, _, _ := img.At(cx-ir/2, cy+ir/2).RGBA()
	assert.Greater(t, r, g+0x3000, "bubble fill missing at (%d,%d)", cx-ir/2, cy+ir/2)

	// The black edge sits on the true circle around the same center.
	edge := map[string][2]int{
		"left":   {cx - ir, cy},
		"top":    {cx, cy - ir},
		"bottom": {cx, cy + ir},
		"45deg":  {cx - diag, cy + diag},
	}
	for name, pt := range edge {
		assert.Less(t, darkest(img, pt[0], pt[1]), uint32(0x4000), "edge missing at %s %v", name, pt)
	}

	// Nothing dark just outside the edge on the diagonal.
	out := int(math.Round(rad * 1.15 / math.Sqrt2))
	assert.Greater(t, darkest(img, cx-out, cy+out), uint32(0x8000))
}

func TestScatterChart_YLabelInGutter(t *testing.T) {
	p := figure.RenderScatter(dataset.Default())
	img, frame := renderScatterPanel(t, p)

	gutter := yLabelGutter(geometrySize)
	assert.Greater(t, frame.box.Left, gutter, "tick labels must sit right of the label gutter")

	dark := 0
	for y := frame.box.Top; y < frame.box.Bottom; y++ {
		for x := 0; x < gutter; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if (r+g+b)/3 < 0x8000 {
				dark++
			}
		}
	}
	assert.Positive(t, dark, "y axis label not drawn in the gutter")
}

func TestDrawRadar_RingsAreCircular(t *testing.T) {
	f, err := defaultFont()
	require.NoError(t, err)

	w, h := geometrySize.Pixels()
	p := figure.RenderRadar(dataset.Default())
	p.Polygons = nil

	img, err := drawRadar(p, geometrySize, f, w, h)
	require.NoError(t, err)

	r, err := chart.PNG(w, h)
	require.NoError(t, err)
	r.SetDPI(geometrySize.DPI)
	l := layoutRadar(canvas{r: r, size: geometrySize, font: f}, p, w, h)

	ringAt := func(radius, deg float64) (int, int) {
		rad := deg * math.Pi / 180
		return l.cx + int(math.Round(radius*math.Cos(rad))), l.cy - int(math.Round(radius*math.Sin(rad)))
	}

	for _, deg := range []float64{45, 90} {
		x, y := ringAt(l.radius, deg)
		assert.Less(t, darkest(img, x, y), uint32(0x8000), "outer spine missing at %v°", deg)

		x, y = ringAt(l.radius*0.8, deg)
		assert.Less(t, darkest(img, x, y), uint32(0xd000), "80%% ring missing at %v°", deg)
	}

	x, y := ringAt(l.radius*1.04, 45)
	assert.Greater(t, darkest(img, x, y), uint32(0xe000), "spine bulges past the radius")
}
