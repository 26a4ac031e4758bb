// Package presets provides node sets for classic waveforms, ready to be loaded into a
// shaper.Engine or a shaper.Wave.
package presets

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/shaperaudio/shaper"
)

// Edge is the phase span of the near-vertical edges of the sawtooth and square waves. Linear
// interpolation can't jump, so an edge is a very steep segment instead.
const Edge = 1.0 / 256

// SineNodes is the number of nodes Lookup uses for the sine approximation.
const SineNodes = 32

// Triangle returns a triangle wave starting at 0, peaking at +1 at phase 0.25 and at -1 at
// phase 0.75.
func Triangle() []shaper.Node {
	return []shaper.Node{node(0, 0), node(0.25, 1), node(0.5, 0), node(0.75, -1)}
}

// Sawtooth returns a sawtooth wave rising from -1 to +1 over the cycle.
func Sawtooth() []shaper.Node {
	return []shaper.Node{node(0, -1), node(1-Edge, 1)}
}

// SawtoothReversed returns a sawtooth wave falling from +1 to -1 over the cycle.
func SawtoothReversed() []shaper.Node {
	return []shaper.Node{node(0, 1), node(1-Edge, -1)}
}

// Square returns a square wave at +1 for the first half of the cycle and -1 for the second.
func Square() []shaper.Node {
	return []shaper.Node{node(0, 1), node(0.5-Edge, 1), node(0.5, -1), node(1-Edge, -1)}
}

// Sine approximates a sine wave with n evenly spaced nodes. It fails for n < 3, which would
// give a flat line.
func Sine(n int) ([]shaper.Node, error) {
	if n < 3 {
		return nil, errors.Errorf("presets: sine needs at least 3 nodes, got %d", n)
	}
	nodes := make([]shaper.Node, n)
	for i := range nodes {
		phase := float64(i) / float64(n)
		nodes[i] = shaper.Node{Phase: phase, Amplitude: math.Sin(2 * math.Pi * phase)}
	}
	return nodes, nil
}

var byName = map[string]func() ([]shaper.Node, error){
	"triangle":          func() ([]shaper.Node, error) { return Triangle(), nil },
	"sawtooth":          func() ([]shaper.Node, error) { return Sawtooth(), nil },
	"sawtooth-reversed": func() ([]shaper.Node, error) { return SawtoothReversed(), nil },
	"square":            func() ([]shaper.Node, error) { return Square(), nil },
	"sine":              func() ([]shaper.Node, error) { return Sine(SineNodes) },
}

func node(phase, amplitude float64) shaper.Node {
	return shaper.Node{Phase: phase, Amplitude: amplitude}
}

// Lookup returns the preset called name.
func Lookup(name string) ([]shaper.Node, error) {
	preset, ok := byName[name]
	if !ok {
		return nil, errors.Errorf("presets: unknown preset %q", name)
	}
	return preset()
}

// Names returns the names accepted by Lookup in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
