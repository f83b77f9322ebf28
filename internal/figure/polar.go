package figure

import "math"

// FullTurn is one complete revolution in radians.
const FullTurn = 2 * math.Pi

// Direction is the rotation sense in which data angles advance on screen.
type Direction int

const (
	Clockwise        Direction = -1
	CounterClockwise Direction = 1
)

// PolarAxis maps data angles to display angles:
//
//	display = Offset + Direction*theta
//
// Display angles are measured counterclockwise from the positive X axis.
type PolarAxis struct {
	Offset    float64   `json:"offset" yaml:"offset"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// TopClockwise puts data angle 0 at twelve o'clock and advances clockwise.
var TopClockwise = PolarAxis{Offset: math.Pi / 2, Direction: Clockwise}

// Display returns the display angle for a data angle, normalized to [0, 2π).
func (a PolarAxis) Display(theta float64) float64 {
	d := math.Mod(a.Offset+float64(a.Direction)*theta, FullTurn)
	if d < 0 {
		d += FullTurn
	}
	return d
}

// Unit returns the Cartesian unit vector (Y up) for a data angle.
func (a PolarAxis) Unit(theta float64) (x, y float64) {
	d := a.Display(theta)
	return math.Cos(d), math.Sin(d)
}

// Angles returns n data angles evenly spaced around one turn, starting at 0.
func Angles(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range n {
		out[i] = float64(i) / float64(n) * FullTurn
	}
	return out
}

// PolarPoint is one radar vertex in data coordinates.
type PolarPoint struct {
	Angle float64 `json:"angle" yaml:"angle"`
	Value float64 `json:"value" yaml:"value"`
}

// ClosePolygon pairs angles with values and repeats the first pair at the
// end. Lengths are not checked: extra angles or values are ignored.
func ClosePolygon(angles, values []float64) []PolarPoint {
	n := min(len(angles), len(values))
	if n == 0 {
		return nil
	}
	pts := make([]PolarPoint, 0, n+1)
	for i := range n {
		pts = append(pts, PolarPoint{Angle: angles[i], Value: values[i]})
	}
	return append(pts, pts[0])
}
