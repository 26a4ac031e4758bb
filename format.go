package shaper

import "fmt"

// Format describes how samples are encoded for an audio device or a file.
type Format struct {
	// SampleRate is the number of samples per second.
	SampleRate SampleRate

	// NumChannels is the number of channels. The value of 1 is mono, the value of 2 is stereo.
	// The samples are always interleaved.
	NumChannels int

	// Precision is the number of bytes used to encode a single sample of one channel.
	Precision int
}

// Width returns the number of bytes per one sample (all channels).
//
// This is equal to f.NumChannels * f.Precision.
func (f Format) Width() int {
	return f.NumChannels * f.Precision
}

// EncodeSigned encodes a single sample in f.Width() bytes to p as little-endian signed integers.
// Values outside [-1, 1] are clipped.
func (f Format) EncodeSigned(p []byte, sample [2]float64) (n int) {
	return f.encode(true, p, sample)
}

// EncodeUnsigned encodes a single sample in f.Width() bytes to p as little-endian unsigned
// integers, which is what 8-bit WAVE files use. Values outside [-1, 1] are clipped.
func (f Format) EncodeUnsigned(p []byte, sample [2]float64) (n int) {
	return f.encode(false, p, sample)
}

func (f Format) encode(signed bool, p []byte, sample [2]float64) (n int) {
	if f.NumChannels < 1 {
		panic(fmt.Errorf("format: encode: invalid number of channels: %d", f.NumChannels))
	}
	if f.NumChannels == 1 {
		putSample(signed, p, f.Precision, (sample[0]+sample[1])/2)
		return f.Width()
	}
	for c := 0; c < f.NumChannels; c++ {
		var x float64
		if c < len(sample) {
			x = sample[c]
		}
		putSample(signed, p[c*f.Precision:], f.Precision, x)
	}
	return f.Width()
}

func putSample(signed bool, p []byte, precision int, x float64) {
	x = clip(x)
	var bits uint64
	if signed {
		max := float64(uint64(1)<<uint(precision*8-1) - 1)
		bits = uint64(int64(x * max))
	} else {
		max := float64(uint64(1)<<uint(precision*8) - 1)
		bits = uint64((x + 1) / 2 * max)
	}
	for i := 0; i < precision; i++ {
		p[i] = byte(bits)
		bits >>= 8
	}
}

func clip(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > +1 {
		return +1
	}
	return x
}
