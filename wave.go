package shaper

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// MaxFrequency is the upper bound of a Wave's frequency multiplier.
const MaxFrequency = 100.0

// progressEpsilon absorbs rounding when a segment ends exactly on a sample boundary.
const progressEpsilon = 1e-9

// Wave is a periodic waveform defined by nodes on the cyclic phase domain [0, 1). Consecutive
// nodes are joined by straight segments, and the segment from the last node back to the first
// one wraps through 1.0.
//
// Wave is a Streamer. One full cycle lasts len(samples)/Frequency() samples of each Stream call,
// so callers should stream in blocks of a constant size. Stream continues exactly where the
// previous call ended.
//
// Use NewWave to create a Wave. The zero value is an empty Wave at frequency 0, which streams
// frozen until SetFrequency is called.
//
// Wave is not safe for concurrent use, see Engine for that.
type Wave struct {
	nodes []Node

	cursor   int     // index of the node the current segment starts at
	progress float64 // fraction of the current segment already played, in [0, 1)
	freq     float64

	degenerate int
}

// NewWave creates a Wave playing at frequency 1 from the seed nodes. The seed nodes don't need
// to be sorted, but their phases must be distinct.
func NewWave(seed ...Node) (*Wave, error) {
	w := &Wave{freq: 1}
	if err := w.Replace(seed); err != nil {
		return nil, err
	}
	return w, nil
}

// Len returns the number of nodes.
func (w *Wave) Len() int {
	return len(w.nodes)
}

// Nodes returns a copy of the nodes sorted by phase.
func (w *Wave) Nodes() []Node {
	return append([]Node(nil), w.nodes...)
}

// Insert places n among the nodes so that they stay sorted by phase. A node already sitting at
// exactly the same phase makes Insert fail with ErrDuplicatePhase and leaves the Wave unchanged.
//
// The playhead keeps its phase: the cursor is re-located to the segment that contains the
// phase being played before the insertion.
func (w *Wave) Insert(n Node) error {
	if err := n.Validate(); err != nil {
		return err
	}
	i := w.search(n.Phase)
	if i < len(w.nodes) && w.nodes[i].Phase == n.Phase {
		return errors.Wrapf(ErrDuplicatePhase, "phase %v", n.Phase)
	}
	phase, playing := w.Phase()
	w.nodes = append(w.nodes, Node{})
	copy(w.nodes[i+1:], w.nodes[i:])
	w.nodes[i] = n
	w.relocate(phase, playing)
	return nil
}

// Remove deletes the node at exactly phase. It reports whether there was such a node.
func (w *Wave) Remove(phase float64) bool {
	i := w.search(phase)
	if i == len(w.nodes) || w.nodes[i].Phase != phase {
		return false
	}
	playhead, playing := w.Phase()
	w.nodes = append(w.nodes[:i], w.nodes[i+1:]...)
	w.relocate(playhead, playing)
	return true
}

// Replace swaps all nodes for the given ones and rewinds playback to the first node. On error,
// the Wave is left unchanged.
func (w *Wave) Replace(nodes []Node) error {
	sorted := append([]Node(nil), nodes...)
	for _, n := range sorted {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Phase < sorted[j].Phase })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Phase == sorted[i-1].Phase {
			return errors.Wrapf(ErrDuplicatePhase, "phase %v", sorted[i].Phase)
		}
	}
	w.nodes = sorted
	w.cursor, w.progress = 0, 0
	return nil
}

// Frequency returns the frequency multiplier.
func (w *Wave) Frequency() float64 {
	return w.freq
}

// SetFrequency sets the frequency multiplier, clamped to [0, MaxFrequency]. At frequency 0
// the wave is frozen and streams its current value.
func (w *Wave) SetFrequency(freq float64) {
	switch {
	case math.IsNaN(freq) || freq < 0:
		freq = 0
	case freq > MaxFrequency:
		freq = MaxFrequency
	}
	w.freq = freq
}

// Phase returns the phase of the playhead. The second return value is false if the Wave has
// fewer than two nodes and therefore doesn't play.
func (w *Wave) Phase() (phase float64, ok bool) {
	if len(w.nodes) < 2 {
		return 0, false
	}
	start, _, rel := w.segment(w.cursor)
	_, phase = math.Modf(start.Phase + w.progress*rel)
	return phase, true
}

// Degenerate returns how many times a segment shorter than one sample has been played. Such
// segments are stretched to one sample.
func (w *Wave) Degenerate() int {
	return w.degenerate
}

// Stream fills samples with the piecewise linear waveform, the same value in both channels.
// A Wave with fewer than two nodes streams silence. Stream never drains.
func (w *Wave) Stream(samples [][2]float64) (n int, ok bool) {
	if len(w.nodes) < 2 {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}

	if w.freq == 0 {
		start, end, _ := w.segment(w.cursor)
		v := lerp(start.Amplitude, end.Amplitude, w.progress)
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	}

	cycle := float64(len(samples)) / w.freq
	for n < len(samples) {
		start, end, rel := w.segment(w.cursor)
		length := rel * cycle
		if length < 1 {
			length = 1
			w.degenerate++
		}

		pos := w.progress * length
		for ; n < len(samples) && pos < length-progressEpsilon; n++ {
			v := lerp(start.Amplitude, end.Amplitude, pos/length)
			samples[n] = [2]float64{v, v}
			pos++
		}

		if pos < length-progressEpsilon {
			w.progress = pos / length
			break
		}

		// carry the part of the last step that overshot the segment into the next one
		overflow := math.Max(pos-length, 0)
		w.cursor = (w.cursor + 1) % len(w.nodes)
		_, _, rel = w.segment(w.cursor)
		w.progress = overflow / math.Max(rel*cycle, 1)
	}
	return len(samples), true
}

// Err always returns nil.
func (w *Wave) Err() error {
	return nil
}

// segment returns the nodes delimiting the i-th segment and its length in phase.
func (w *Wave) segment(i int) (start, end Node, rel float64) {
	start = w.nodes[i]
	end = w.nodes[(i+1)%len(w.nodes)]
	rel = end.Phase - start.Phase
	if rel <= 0 {
		rel += 1
	}
	return start, end, rel
}

// search returns the index of the first node with a phase not lower than phase.
func (w *Wave) search(phase float64) int {
	return sort.Search(len(w.nodes), func(i int) bool {
		return w.nodes[i].Phase >= phase
	})
}

// relocate points the cursor at the segment containing phase. Waves which weren't playing
// before start from the first node.
func (w *Wave) relocate(phase float64, playing bool) {
	if !playing || len(w.nodes) < 2 {
		w.cursor, w.progress = 0, 0
		return
	}
	i := sort.Search(len(w.nodes), func(i int) bool {
		return w.nodes[i].Phase > phase
	}) - 1
	if i < 0 {
		i = len(w.nodes) - 1
	}
	start, _, rel := w.segment(i)
	d := phase - start.Phase
	if d < 0 {
		d += 1
	}
	w.cursor = i
	w.progress = math.Min(d/rel, math.Nextafter(1, 0))
}

func lerp(a, b, p float64) float64 {
	return a*(1-p) + b*p
}
