package effects_test

import (
	"math"
	"sync"
	"testing"

	"github.com/shaperaudio/shaper"
	"github.com/shaperaudio/shaper/effects"
)

func ones() shaper.Streamer {
	return shaper.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			samples[i] = [2]float64{1, -1}
		}
		return len(samples), true
	})
}

func TestVolumeGain(t *testing.T) {
	for _, tc := range []struct {
		volume float64
		silent bool
		gain   float64
	}{
		{0, false, 1},
		{1, false, 2},
		{-1, false, 0.5},
		{-2, false, 0.25},
		{3, true, 0},
	} {
		v := &effects.Volume{Streamer: ones(), Base: 2}
		v.SetVolume(tc.volume)
		v.SetSilent(tc.silent)

		samples := make([][2]float64, 64)
		n, ok := v.Stream(samples)
		if n != len(samples) || !ok {
			t.Fatalf("Stream returned (%d, %v)", n, ok)
		}
		for i, s := range samples {
			if math.Abs(s[0]-tc.gain) > 1e-12 || math.Abs(s[1]+tc.gain) > 1e-12 {
				t.Fatalf("volume %v silent %v: sample %d is %v, expected gain %v", tc.volume, tc.silent, i, s, tc.gain)
			}
		}
	}
}

func TestVolumeConcurrentChanges(t *testing.T) {
	v := &effects.Volume{Streamer: ones(), Base: 2}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			v.SetVolume(float64(i%5) - 2)
			v.SetSilent(i%7 == 0)
		}
	}()

	samples := make([][2]float64, 128)
	for i := 0; i < 1000; i++ {
		v.Stream(samples)
	}
	wg.Wait()
}
