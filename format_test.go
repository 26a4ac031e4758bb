package shaper_test

import (
	"bytes"
	"testing"

	"github.com/shaperaudio/shaper"
)

func TestFormatEncodeSigned(t *testing.T) {
	stereo16 := shaper.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	for _, tc := range []struct {
		sample [2]float64
		want   []byte
	}{
		{[2]float64{0, 0}, []byte{0x00, 0x00, 0x00, 0x00}},
		{[2]float64{1, -1}, []byte{0xff, 0x7f, 0x01, 0x80}},
		{[2]float64{2, -3}, []byte{0xff, 0x7f, 0x01, 0x80}},
		{[2]float64{0.5, -0.5}, []byte{0xff, 0x3f, 0x01, 0xc0}},
	} {
		p := make([]byte, stereo16.Width())
		if n := stereo16.EncodeSigned(p, tc.sample); n != 4 {
			t.Fatalf("encoded %d bytes, expected 4", n)
		}
		if !bytes.Equal(p, tc.want) {
			t.Errorf("%v encoded as % x, expected % x", tc.sample, p, tc.want)
		}
	}
}

func TestFormatEncodeMonoAndExtraChannels(t *testing.T) {
	mono := shaper.Format{NumChannels: 1, Precision: 2}
	p := make([]byte, mono.Width())
	mono.EncodeSigned(p, [2]float64{1, 0})
	if !bytes.Equal(p, []byte{0xff, 0x3f}) {
		t.Errorf("mono downmix encoded as % x", p)
	}

	quad := shaper.Format{NumChannels: 4, Precision: 1}
	p = make([]byte, quad.Width())
	quad.EncodeUnsigned(p, [2]float64{1, -1})
	if !bytes.Equal(p, []byte{0xff, 0x00, 0x7f, 0x7f}) {
		t.Errorf("extra channels encoded as % x, expected silence after the stereo pair", p)
	}
}
