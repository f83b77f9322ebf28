// Package render draws a figure.Figure to a raster image. Each panel is
// rendered with go-chart into its own PNG, then the panels are composed
// left to right onto an opaque white canvas.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/spboyer/benchviz/internal/figure"
	chart "github.com/wcharczuk/go-chart/v2"
	xdraw "golang.org/x/image/draw"
)

var (
	fontOnce sync.Once
	font     *truetype.Font
	fontErr  error
)

func defaultFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		font, fontErr = chart.GetDefaultFont()
	})
	return font, fontErr
}

// Image draws every panel of fig and composes them into one image.
func Image(fig *figure.Figure) (*image.RGBA, error) {
	if len(fig.Panels) == 0 {
		return nil, errors.New("figure has no panels")
	}
	if fig.Size.DPI <= 0 || fig.Size.WidthIn <= 0 || fig.Size.HeightIn <= 0 {
		return nil, fmt.Errorf("invalid figure size %+v", fig.Size)
	}

	f, err := defaultFont()
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}

	w, h := fig.Size.Pixels()
	panelW := w / len(fig.Panels)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	for i, p := range fig.Panels {
		slog.Debug("Rendering panel", "index", i, "kind", p.PanelKind(), "width", panelW, "height", h)

		var img image.Image
		switch panel := p.(type) {
		case *figure.RadarPanel:
			img, err = drawRadar(panel, fig.Size, f, panelW, h)
		case *figure.ScatterPanel:
			img, err = drawScatter(panel, fig.Size, f, panelW, h)
		default:
			err = fmt.Errorf("unsupported panel kind %q", p.PanelKind())
		}
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i, err)
		}

		at := image.Rect(i*panelW, 0, (i+1)*panelW, h)
		xdraw.Draw(dst, at, img, img.Bounds().Min, xdraw.Over)
	}
	return dst, nil
}

// Encode writes fig to w as a PNG.
func Encode(fig *figure.Figure, w io.Writer) error {
	img, err := Image(fig)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Save renders fig and writes it to path, replacing any existing file.
// The image is rendered before the file is opened, so a render failure
// leaves an existing file untouched.
func Save(fig *figure.Figure, path string) error {
	img, err := Image(fig)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	b := img.Bounds()
	slog.Debug("Figure saved", "path", path, "width", b.Dx(), "height", b.Dy(), "dpi", fig.Size.DPI)
	return nil
}
