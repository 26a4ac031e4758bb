// Package pcm writes headerless PCM, for piping the output of a shaper.Streamer into other
// programs such as aplay or ffmpeg.
package pcm

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/shaperaudio/shaper"
)

// Encode writes all audio streamed from s to w in raw PCM format. 8-bit samples are unsigned,
// wider ones are signed little-endian. Engines and Waves never drain, so bound them with
// shaper.Take first.
func Encode(w io.Writer, s shaper.Streamer, format shaper.Format) error {
	if format.NumChannels <= 0 || format.Precision <= 0 {
		return errors.Errorf("pcm: invalid format %+v", format)
	}
	encode := format.EncodeSigned
	if format.Precision == 1 {
		encode = format.EncodeUnsigned
	}

	var (
		bw      = bufio.NewWriter(w)
		samples = make([][2]float64, 512)
		buffer  = make([]byte, len(samples)*format.Width())
	)
	for {
		n, ok := s.Stream(samples)
		if !ok {
			break
		}
		var offset int
		for _, sample := range samples[:n] {
			offset += encode(buffer[offset:], sample)
		}
		if _, err := bw.Write(buffer[:offset]); err != nil {
			return errors.Wrap(err, "pcm")
		}
	}
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "pcm: streamer failed")
	}
	return errors.Wrap(bw.Flush(), "pcm")
}
