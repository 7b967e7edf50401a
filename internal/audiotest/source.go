// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides generated audio for tests: streaming sources
// and decoded buffers with known content.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of a frame on a channel.
type Waveform func(frame, channel int) float32

// Source generates frames from a Waveform. It satisfies audio.Source.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform
}

// NewSource returns a source of frames frames produced by wave.
func NewSource(sampleRate, channels, frames int, wave Waveform) *Source {
	return &Source{sampleRate: sampleRate, channels: channels, frames: frames, wave: wave}
}

// Constant is a Waveform with the same value everywhere.
func Constant(v float32) Waveform {
	return func(int, int) float32 { return v }
}

// Sine is a full-scale sine of freq Hz at sampleRate.
func Sine(sampleRate int, freq float64) Waveform {
	return func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	}
}

// Counter makes every frame's value its own index divided by scale, which
// makes offsets visible in rendered output.
func Counter(scale float32) Waveform {
	return func(frame, _ int) float32 { return float32(frame) / scale }
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

// Reset rewinds the source.
func (s *Source) Reset() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
