package shaper

// Silence returns a Streamer which streams n samples of silence. If n is negative, silence is
// streamed forever.
func Silence(n int) Streamer {
	return StreamerFunc(func(samples [][2]float64) (m int, ok bool) {
		if n == 0 {
			return 0, false
		}
		for i := range samples {
			if n == 0 {
				break
			}
			samples[i] = [2]float64{}
			m++
			if n > 0 {
				n--
			}
		}
		return m, true
	})
}

// Take returns a Streamer which streams at most n samples from s. It's the usual way to capture
// a bounded piece of an Engine or a Wave, which never drain on their own.
//
// The returned Streamer propagates s's errors through Err.
func Take(n int, s Streamer) Streamer {
	return &take{
		s:          s,
		numSamples: n,
	}
}

type take struct {
	s          Streamer
	currSample int
	numSamples int
}

func (t *take) Stream(samples [][2]float64) (n int, ok bool) {
	if t.currSample >= t.numSamples {
		return 0, false
	}
	toStream := t.numSamples - t.currSample
	if len(samples) < toStream {
		toStream = len(samples)
	}
	n, ok = t.s.Stream(samples[:toStream])
	t.currSample += n
	return n, ok
}

func (t *take) Err() error {
	return t.s.Err()
}

// Seq takes zero or more Streamers and returns a Streamer which streams them one by one without
// pauses. A drained Streamer is left behind and the next one continues in the same call.
//
// Seq does not propagate errors from the Streamers.
func Seq(s ...Streamer) Streamer {
	i := 0
	return StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i < len(s) && len(samples) > 0 {
			sn, sok := s[i].Stream(samples)
			samples = samples[sn:]
			n, ok = n+sn, ok || sok
			if !sok {
				i++
			}
		}
		return n, ok
	})
}

// Blocks returns a Streamer which pulls samples from s in blocks of exactly size samples, no
// matter how many samples are requested from it. A Wave measures its cycle in samples per
// Stream call, so feeding it through Blocks keeps the pitch independent of the consumer.
//
// The returned Streamer propagates s's errors through Err.
func Blocks(size int, s Streamer) Streamer {
	if size <= 0 {
		panic("shaper: Blocks: size must be positive")
	}
	return &blocks{s: s, buf: make([][2]float64, size)}
}

type blocks struct {
	s        Streamer
	buf      [][2]float64
	pos, end int
	drained  bool
}

func (b *blocks) Stream(samples [][2]float64) (n int, ok bool) {
	for len(samples) > 0 {
		if b.pos == b.end {
			if b.drained {
				break
			}
			bn, bok := b.s.Stream(b.buf)
			if !bok || bn < len(b.buf) {
				b.drained = true
			}
			b.pos, b.end = 0, bn
			if bn == 0 {
				break
			}
		}
		c := copy(samples, b.buf[b.pos:b.end])
		b.pos += c
		n += c
		samples = samples[c:]
	}
	if n == 0 && b.drained {
		return 0, false
	}
	return n, true
}

func (b *blocks) Err() error {
	return b.s.Err()
}
