// Package effects implements output stages placed between a shaper.Engine and the speaker.
package effects

import (
	"math"
	"sync/atomic"

	"github.com/shaperaudio/shaper"
)

// Volume adjusts the volume of the wrapped Streamer in a human-natural way. Human's perception
// of volume is roughly logarithmic, so the gain is Base to the power of the volume: with Base 2,
// every step of 1 doubles or halves the amplitude. The zero volume leaves the samples unchanged.
//
// The volume and the silence can be changed from another goroutine while the Volume streams.
type Volume struct {
	Streamer shaper.Streamer
	Base     float64

	volume atomic.Uint64 // math.Float64bits of the volume
	silent atomic.Bool
}

// SetVolume sets the volume exponent.
func (v *Volume) SetVolume(volume float64) {
	v.volume.Store(math.Float64bits(volume))
}

// Volume returns the volume exponent.
func (v *Volume) Volume() float64 {
	return math.Float64frombits(v.volume.Load())
}

// SetSilent mutes or unmutes the Streamer. A silent Volume keeps pulling samples, so the wrapped
// Streamer keeps its pace.
func (v *Volume) SetSilent(silent bool) {
	v.silent.Store(silent)
}

// Silent reports whether the Streamer is muted.
func (v *Volume) Silent() bool {
	return v.silent.Load()
}

// Gain returns the factor the samples are multiplied by.
func (v *Volume) Gain() float64 {
	if v.Silent() {
		return 0
	}
	return math.Pow(v.Base, v.Volume())
}

// Stream streams the wrapped Streamer with the gain applied.
func (v *Volume) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = v.Streamer.Stream(samples)
	gain := v.Gain()
	for i := range samples[:n] {
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	return n, ok
}

// Err propagates the wrapped Streamer's errors.
func (v *Volume) Err() error {
	return v.Streamer.Err()
}
