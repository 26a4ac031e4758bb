// Package speaker implements playback of shaper.Streamer values, usually a shaper.Engine,
// through physical speakers.
package speaker

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"
	"github.com/shaperaudio/shaper"
)

const channelCount = 2
const bitDepthInBytes = 2
const bytesPerSample = bitDepthInBytes * channelCount

// oto allows a single context per process, so it's created by the first Open and shared by
// every Device opened afterwards. oto refuses a second attempt even when the first one failed,
// so the failure is kept and reported by every later Open.
var (
	mu          sync.Mutex
	context     *oto.Context
	contextRate shaper.SampleRate
	contextErr  error

	newContext = oto.NewContext
)

// Device plays a Streamer through the speaker. Close it to stop the playback.
type Device struct {
	mu     sync.Mutex
	player *oto.Player
	reader *sampleReader
}

// Open starts playing s through the speaker.
//
// The bufferSize argument specifies the number of samples pulled from s at once. Bigger
// bufferSize means lower CPU usage and more reliable playback. Lower bufferSize means better
// responsiveness and less delay. A shaper.Wave plays one cycle per bufferSize samples at
// frequency 1.
//
// All Devices share one driver context, so every Open must use the same sample rate. If the
// driver fails to initialize, the failure is final for the process and every Open returns it.
func Open(sampleRate shaper.SampleRate, bufferSize int, s shaper.Streamer) (*Device, error) {
	if bufferSize <= 0 {
		return nil, errors.Errorf("speaker: invalid buffer size %d", bufferSize)
	}
	ctx, err := driver(sampleRate, bufferSize)
	if err != nil {
		return nil, err
	}

	d := &Device{reader: newReaderFromStreamer(s, bufferSize)}
	d.player = ctx.NewPlayer(d.reader)
	d.player.SetBufferSize(bufferSize * bytesPerSample)
	d.player.Play()
	return d, nil
}

// Binder returns a shaper.Opener opening a Device with the given parameters, to be passed to
// shaper.Engine.Bind. Once the driver failed to initialize, binding through it keeps failing
// with the same cause.
func Binder(sampleRate shaper.SampleRate, bufferSize int) shaper.Opener {
	return func(s shaper.Streamer) (shaper.Device, error) {
		d, err := Open(sampleRate, bufferSize, s)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// Close stops the playback. The Streamer isn't pulled from after Close returns. Closing a closed
// Device does nothing.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player == nil {
		return nil
	}
	d.reader.closed.Store(true)
	d.player.Pause()
	d.player.Close()
	err := d.player.Err()
	d.player = nil
	return errors.Wrap(err, "speaker")
}

func driver(sampleRate shaper.SampleRate, bufferSize int) (*oto.Context, error) {
	mu.Lock()
	defer mu.Unlock()

	if contextErr != nil {
		return nil, contextErr
	}
	if context != nil {
		if sampleRate != contextRate {
			return nil, errors.Errorf("speaker: already initialized at %v, can't switch to %v", contextRate, sampleRate)
		}
		return context, nil
	}

	ctx, ready, err := newContext(&oto.NewContextOptions{
		SampleRate:   int(sampleRate),
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   sampleRate.D(bufferSize),
	})
	if err != nil {
		contextErr = errors.Wrap(err, "speaker: failed to initialize")
		return nil, contextErr
	}
	<-ready

	context, contextRate = ctx, sampleRate
	return context, nil
}

// sampleReader is a wrapper for shaper.Streamer to implement io.Reader.
type sampleReader struct {
	s      shaper.Streamer
	buf    [][2]float64
	format shaper.Format
	closed atomic.Bool
}

func newReaderFromStreamer(s shaper.Streamer, bufferSize int) *sampleReader {
	return &sampleReader{
		s:      shaper.Blocks(bufferSize, s),
		buf:    make([][2]float64, bufferSize),
		format: shaper.Format{NumChannels: channelCount, Precision: bitDepthInBytes},
	}
}

// Read pulls samples from the streamer and fills buf with the encoded samples. Read expects the
// size of buf be divisible by the length of a sample (= channel count * bit depth in bytes).
// Once the Device is closed, Read fills buf with silence.
func (r *sampleReader) Read(buf []byte) (n int, err error) {
	if len(buf)%bytesPerSample != 0 {
		return 0, errors.New("requested number of bytes do not align with the samples")
	}
	if r.closed.Load() {
		for i := range buf {
			buf[i] = 0
		}
		return len(buf), nil
	}

	for n < len(buf) {
		ns := (len(buf) - n) / bytesPerSample
		if ns > len(r.buf) {
			ns = len(r.buf)
		}
		ns, ok := r.s.Stream(r.buf[:ns])
		if !ok {
			if err := r.s.Err(); err != nil {
				return n, errors.Wrap(err, "streamer returned error when requesting samples")
			}
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		if ns == 0 {
			break
		}
		for _, sample := range r.buf[:ns] {
			n += r.format.EncodeSigned(buf[n:], sample)
		}
	}
	return n, nil
}
