// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the part of the go-audio wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source wraps a go-audio decoder to implement audio.Source.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	scale      float32
	bias       int
	intBuf     *goaudio.IntBuffer
}

// NewSource normalises integer samples of bitDepth to [-1, 1]. Unsigned
// 8-bit data (as stored in WAV) is re-centred around zero first.
func NewSource(dec Reader, sampleRate, channels, bitDepth int, unsigned8 bool) *Source {
	s := &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      1 / FullScale(bitDepth),
	}
	if bitDepth == 8 && unsigned8 {
		s.bias = 128
	}

	return s
}

// FullScale is the magnitude of the most negative value at bitDepth.
func FullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]-s.bias) * s.scale
	}

	// A short read with no error is the end of the data chunk.
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}
