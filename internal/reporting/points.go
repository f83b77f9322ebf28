// Package reporting formats console output for rendered figures and
// dataset checks.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/benchviz/internal/figure"
)

// PlottedPoint is one scatter point as reported on the console.
type PlottedPoint struct {
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	BubbleSize float64 `json:"bubble_size"`
	Ratio      float64 `json:"efficiency_ratio"`
}

// RenderSummary describes a rendered figure.
type RenderSummary struct {
	Output     string         `json:"output"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Categories []string       `json:"categories"`
	Ranking    []string       `json:"ranking"`
	Points     []PlottedPoint `json:"points"`
}

// Summarize collects the reportable facts of fig, which was written to output.
func Summarize(fig *figure.Figure, output string) *RenderSummary {
	s := &RenderSummary{Output: output}
	s.Width, s.Height = fig.Size.Pixels()

	if radar := fig.Radar(); radar != nil {
		for _, c := range radar.Categories {
			s.Categories = append(s.Categories, strings.ReplaceAll(c, "\n", " "))
		}
	}
	if scatter := fig.Scatter(); scatter != nil {
		for _, p := range scatter.Points {
			s.Points = append(s.Points, PlottedPoint{
				Name:       p.Name,
				X:          p.X,
				Y:          p.Y,
				BubbleSize: p.Area,
				Ratio:      p.Ratio,
			})
		}
		ranked := slices.Clone(s.Points)
		slices.SortStableFunc(ranked, func(a, b PlottedPoint) int {
			switch {
			case a.Y > b.Y:
				return -1
			case a.Y < b.Y:
				return 1
			}
			return 0
		})
		for _, p := range ranked {
			s.Ranking = append(s.Ranking, p.Name)
		}
	}
	return s
}

// WritePlotProgress prints the per-point progress lines emitted while the
// scatter panel is drawn.
func WritePlotProgress(w io.Writer, s *RenderSummary) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Debug: Plotting %d points\n", len(s.Points)))
	for _, p := range s.Points {
		b.WriteString(fmt.Sprintf("  %s: x=%s, y=%s, bubble_size=%s\n",
			p.Name, formatNumber(p.X), formatNumber(p.Y), formatNumber(p.BubbleSize)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteRenderSummary prints the closing summary after the figure is saved.
func WriteRenderSummary(w io.Writer, s *RenderSummary) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\nFigure created successfully: %s (%dx%d)\n", s.Output, s.Width, s.Height))
	b.WriteString(fmt.Sprintf("- %d categories: %s\n", len(s.Categories), strings.Join(s.Categories, ", ")))
	b.WriteString(fmt.Sprintf("- Ranking by aggregate score: %s\n", strings.Join(s.Ranking, " > ")))

	if len(s.Points) > 0 {
		nameWidth := runewidth.StringWidth("Model")
		for _, p := range s.Points {
			nameWidth = max(nameWidth, runewidth.StringWidth(p.Name))
		}
		const colNum = 10

		b.WriteString("\nScatter plot data points:\n")
		b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
			padRight("Model", nameWidth),
			padRight("Size", colNum),
			padRight("Score", colNum),
			"Bubble"))
		b.WriteString(strings.Repeat("─", nameWidth+2*colNum+6+len("Bubble")) + "\n")
		for _, p := range s.Points {
			b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
				padRight(p.Name, nameWidth),
				padRight(formatNumber(p.X)+"B", colNum),
				padRight(formatNumber(p.Y)+"%", colNum),
				formatNumber(p.BubbleSize)))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteRenderJSON prints the summary as indented JSON.
func WriteRenderJSON(w io.Writer, s *RenderSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding render summary: %w", err)
	}
	return nil
}

// formatNumber prints v with at most six significant digits, so products
// like 5.87*150 print as 880.5.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
