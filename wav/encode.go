// Package wav captures the output of a shaper.Streamer into WAVE files, for headless rendering.
package wav

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/shaperaudio/shaper"
)

// headerSize is the size of header when encoded.
const headerSize = 44

type header struct {
	RiffMark      [4]byte
	FileSize      int32
	WaveMark      [4]byte
	FmtMark       [4]byte
	FormatSize    int32
	FormatType    int16
	NumChans      int16
	SampleRate    int32
	ByteRate      int32
	BytesPerFrame int16
	BitsPerSample int16
	DataMark      [4]byte
	DataSize      int32
}

// Encode writes all audio streamed from s to w in WAVE format. Engines and Waves never drain,
// so bound them with shaper.Take first.
//
// Format precision must be 1, 2 or 3 bytes. 8-bit samples are unsigned, wider ones are signed.
func Encode(w io.WriteSeeker, s shaper.Streamer, format shaper.Format) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "wav")
		}
	}()

	if format.NumChannels <= 0 {
		return errors.New("invalid number of channels (less than 1)")
	}
	if format.Precision < 1 || format.Precision > 3 {
		return errors.New("unsupported precision, 1, 2 or 3 is supported")
	}

	h := header{
		RiffMark:      [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      -1, // finalization
		WaveMark:      [4]byte{'W', 'A', 'V', 'E'},
		FmtMark:       [4]byte{'f', 'm', 't', ' '},
		FormatSize:    16,
		FormatType:    1,
		NumChans:      int16(format.NumChannels),
		SampleRate:    int32(format.SampleRate),
		ByteRate:      int32(int(format.SampleRate) * format.Width()),
		BytesPerFrame: int16(format.Width()),
		BitsPerSample: int16(format.Precision) * 8,
		DataMark:      [4]byte{'d', 'a', 't', 'a'},
		DataSize:      -1, // finalization
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}

	encode := format.EncodeSigned
	if format.Precision == 1 {
		encode = format.EncodeUnsigned
	}

	var (
		bw      = bufio.NewWriter(w)
		samples = make([][2]float64, 512)
		buffer  = make([]byte, len(samples)*format.Width())
		written int
	)
	for {
		n, ok := s.Stream(samples)
		if !ok {
			break
		}
		offset := 0
		for _, sample := range samples[:n] {
			offset += encode(buffer[offset:], sample)
		}
		nn, err := bw.Write(buffer[:offset])
		if err != nil {
			return err
		}
		written += nn
	}
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "streamer failed")
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	// finalize header, the RIFF size excludes the mark and the size field itself
	h.FileSize = int32(headerSize - 8 + written)
	h.DataSize = int32(written)
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	if _, err := w.Seek(0, io.SeekEnd); err != nil {
		return err
	}

	return nil
}
