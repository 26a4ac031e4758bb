// Package canvas translates positions on a drawing surface into wave nodes and back.
//
// A Canvas is a grid of Width×Height cells, pixels or terminal characters. The horizontal axis
// is the phase of the wave, from 0 at the left edge towards 1 at the right edge. The vertical
// axis is the amplitude, +1 on the top row and -1 on the bottom row.
package canvas

import (
	"math"

	"github.com/shaperaudio/shaper"
)

// ScrollStep is the frequency change caused by one notch of a scroll wheel.
const ScrollStep = 0.1

// columnEpsilon keeps x/Width*Width from rounding down to the previous column.
const columnEpsilon = 1e-9

// Canvas maps cells to the phase/amplitude plane.
type Canvas struct {
	Width, Height int
}

// Marker is the cell a node is drawn at.
type Marker struct {
	X, Y int
	Node shaper.Node
}

// Node returns the phase and the amplitude of a node placed at the cell (x, y). The ok return
// value is false if the cell lies outside the canvas.
func (c Canvas) Node(x, y int) (phase, amplitude float64, ok bool) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0, 0, false
	}
	phase = float64(x) / float64(c.Width)
	if c.Height > 1 {
		amplitude = 1 - 2*float64(y)/float64(c.Height-1)
	}
	return phase, amplitude, true
}

// Column returns the column of phase. Phases are wrapped into [0, 1).
func (c Canvas) Column(phase float64) int {
	_, phase = math.Modf(phase)
	if phase < 0 {
		phase += 1
	}
	x := int(math.Floor(phase*float64(c.Width) + columnEpsilon))
	if x >= c.Width {
		x = c.Width - 1
	}
	return x
}

// Row returns the row of amplitude, clipped to the canvas.
func (c Canvas) Row(amplitude float64) int {
	if c.Height <= 1 {
		return 0
	}
	amplitude = math.Max(-1, math.Min(1, amplitude))
	return int(math.Round((1 - amplitude) / 2 * float64(c.Height-1)))
}

// Markers returns the cells the nodes should be drawn at.
func (c Canvas) Markers(nodes []shaper.Node) []Marker {
	markers := make([]Marker, len(nodes))
	for i, n := range nodes {
		markers[i] = Marker{X: c.Column(n.Phase), Y: c.Row(n.Amplitude), Node: n}
	}
	return markers
}

// Shape returns the amplitude of the wave formed by nodes at every column. Waves with fewer
// than two nodes are flat.
func (c Canvas) Shape(nodes []shaper.Node) []float64 {
	shape := make([]float64, c.Width)
	w, err := shaper.NewWave(nodes...)
	if err != nil || w.Len() < 2 {
		return shape
	}
	// one cycle per Width samples, starting at the first node
	samples := make([][2]float64, c.Width)
	w.Stream(samples)
	start := w.Nodes()[0].Phase
	for i, s := range samples {
		shape[c.Column(start+float64(i)/float64(c.Width))] = s[0]
	}
	return shape
}

// Scroll converts scroll wheel notches to a frequency delta. Positive notches scroll up.
func Scroll(notches int) float64 {
	return float64(notches) * ScrollStep
}
