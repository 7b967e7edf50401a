// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/internal/pcm"
	"github.com/tphakala/flac"
)

// frameReader is the part of flac.Decoder used here, to allow testing.
// Next returns one block of interleaved little-endian PCM.
type frameReader interface {
	Next() ([]byte, error)
}

type source struct {
	dec        frameReader
	sampleRate int
	channels   int
	bitDepth   int
	scale      float32

	// decoded samples of the current block not yet handed out
	pending []float32
	eof     bool
}

func newSource(dec frameReader, sampleRate, channels, bitDepth int) *source {
	return &source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
		scale:      1 / pcm.FullScale(bitDepth),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		if len(s.pending) == 0 {
			if s.eof {
				break
			}
			if err := s.fill(); err != nil {
				return written, err
			}
			continue
		}

		n := copy(dst[written:], s.pending)
		s.pending = s.pending[n:]
		written += n
	}

	if written == 0 && s.eof {
		return 0, io.EOF
	}

	return written, nil
}

func (s *source) fill() error {
	frame, err := s.dec.Next()
	if err == io.EOF {
		s.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	width := s.bitDepth / 8
	count := len(frame) / width
	if cap(s.pending) < count {
		s.pending = make([]float32, count)
	}
	s.pending = s.pending[:count]

	for i := range count {
		b := frame[i*width:]
		var v int32
		switch s.bitDepth {
		case 8:
			v = int32(int8(b[0]))
		case 16:
			v = int32(int16(binary.LittleEndian.Uint16(b)))
		case 24:
			v = int32(b[0]) | int32(b[1])<<8 | int32(int8(b[2]))<<16
		case 32:
			v = int32(binary.LittleEndian.Uint32(b))
		}
		s.pending[i] = float32(v) * s.scale
	}

	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := flac.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	switch dec.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	if dec.SampleRate <= 0 || dec.NChannels <= 0 {
		return nil, ErrUnsupportedLayout
	}

	return newSource(dec, dec.SampleRate, dec.NChannels, dec.BitsPerSample), nil
}
