// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// generator is a Source computing every sample from its frame index.
// A negative length never ends.
type generator struct {
	rate     int
	channels int
	length   int
	pos      int
	at       func(frame, channel int) float32
}

func generate(rate, channels, frames int, at func(frame, channel int) float32) *generator {
	return &generator{rate: rate, channels: channels, length: frames, at: at}
}

func silence(rate, channels, frames int) *generator {
	return generate(rate, channels, frames, func(int, int) float32 { return 0 })
}

func dc(rate, channels, frames int, v float32) *generator {
	return generate(rate, channels, frames, func(int, int) float32 { return v })
}

func sine(rate, channels, frames int, freq float64) *generator {
	return generate(rate, channels, frames, func(f, _ int) float32 {
		return sineAt(rate, freq, f)
	})
}

func sineAt(rate int, freq float64, frame int) float32 {
	return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
}

func (g *generator) SampleRate() int { return g.rate }
func (g *generator) Channels() int   { return g.channels }
func (g *generator) BufSize() int    { return 4096 }
func (g *generator) Close() error    { return nil }

func (g *generator) ReadSamples(dst []float32) (int, error) {
	n := len(dst) / g.channels
	if g.length >= 0 {
		n = min(n, g.length-g.pos)
	}
	if n <= 0 {
		return 0, io.EOF
	}

	for f := range n {
		for c := range g.channels {
			dst[f*g.channels+c] = g.at(g.pos+f, c)
		}
	}
	g.pos += n

	if g.length >= 0 && g.pos >= g.length {
		return n * g.channels, io.EOF
	}
	return n * g.channels, nil
}
