// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"

	"github.com/ik5/podmix/project"
)

const (
	// DefaultQ is used when a filter has no Q.
	DefaultQ = 1.0
	// shelfQ is the Q of a shelf with slope 1.
	shelfQ = math.Sqrt2 / 2
)

// Biquad is a second-order IIR filter from Robert Bristow-Johnson's audio
// EQ cookbook, keeping separate state per channel.
type Biquad struct {
	// normalised by a0
	b0, b1, b2, a1, a2 float64

	x1, x2, y1, y2 []float64
}

// NewBiquad designs the filter described by s for sampleRate. Q defaults to
// DefaultQ and gain to 0 dB; shelves always use a slope of 1 and ignore Q.
func NewBiquad(s project.BiquadFilterSettings, sampleRate, channels int) (*Biquad, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("biquad: %d Hz, %d channels: %w", sampleRate, channels, ErrInvalidParameter)
	}
	if s.Frequency <= 0 {
		return nil, fmt.Errorf("biquad: frequency %v: %w", s.Frequency, ErrInvalidParameter)
	}

	q := DefaultQ
	if s.Q != nil {
		q = *s.Q
	}
	if q <= 0 {
		return nil, fmt.Errorf("biquad: Q %v: %w", q, ErrInvalidParameter)
	}
	var gain float64
	if s.Gain != nil {
		gain = *s.Gain
	}

	nyquist := float64(sampleRate) / 2
	freq := min(s.Frequency, nyquist*0.999)
	w0 := 2 * math.Pi * freq / float64(sampleRate)
	cosw, sinw := math.Cos(w0), math.Sin(w0)
	a := math.Pow(10, gain/40)

	var b0, b1, b2, a0, a1, a2 float64
	switch s.Type {
	case project.LowPass:
		alpha := sinw / (2 * q)
		b0, b1, b2 = (1-cosw)/2, 1-cosw, (1-cosw)/2
		a0, a1, a2 = 1+alpha, -2*cosw, 1-alpha
	case project.HighPass:
		alpha := sinw / (2 * q)
		b0, b1, b2 = (1+cosw)/2, -(1 + cosw), (1+cosw)/2
		a0, a1, a2 = 1+alpha, -2*cosw, 1-alpha
	case project.Peaking:
		alpha := sinw / (2 * q)
		b0, b1, b2 = 1+alpha*a, -2*cosw, 1-alpha*a
		a0, a1, a2 = 1+alpha/a, -2*cosw, 1-alpha/a
	case project.LowShelf:
		beta := math.Sqrt(a) / shelfQ
		b0 = a * ((a + 1) - (a-1)*cosw + beta*sinw)
		b1 = 2 * a * ((a - 1) - (a+1)*cosw)
		b2 = a * ((a + 1) - (a-1)*cosw - beta*sinw)
		a0 = (a + 1) + (a-1)*cosw + beta*sinw
		a1 = -2 * ((a - 1) + (a+1)*cosw)
		a2 = (a + 1) + (a-1)*cosw - beta*sinw
	case project.HighShelf:
		beta := math.Sqrt(a) / shelfQ
		b0 = a * ((a + 1) + (a-1)*cosw + beta*sinw)
		b1 = -2 * a * ((a - 1) + (a+1)*cosw)
		b2 = a * ((a + 1) + (a-1)*cosw - beta*sinw)
		a0 = (a + 1) - (a-1)*cosw + beta*sinw
		a1 = 2 * ((a - 1) - (a+1)*cosw)
		a2 = (a + 1) - (a-1)*cosw - beta*sinw
	default:
		return nil, fmt.Errorf("biquad: type %q: %w", s.Type, ErrUnknownFilter)
	}

	return &Biquad{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
		x1: make([]float64, channels), x2: make([]float64, channels),
		y1: make([]float64, channels), y2: make([]float64, channels),
	}, nil
}

// Process filters buf in place; buf holds one slice per channel.
func (f *Biquad) Process(buf [][]float32) {
	for c, ch := range buf {
		if c >= len(f.x1) {
			break
		}
		x1, x2, y1, y2 := f.x1[c], f.x2[c], f.y1[c], f.y2[c]
		for i, s := range ch {
			x := float64(s)
			y := f.b0*x + f.b1*x1 + f.b2*x2 - f.a1*y1 - f.a2*y2
			x2, x1 = x1, x
			y2, y1 = y1, y
			ch[i] = float32(y)
		}
		f.x1[c], f.x2[c], f.y1[c], f.y2[c] = x1, x2, y1, y2
	}
}

// Response returns the filter's magnitude response in dB at freq.
func (f *Biquad) Response(freq float64, sampleRate int) float64 {
	w := 2 * math.Pi * freq / float64(sampleRate)
	z1 := complex(math.Cos(-w), math.Sin(-w))
	z2 := z1 * z1
	num := complex(f.b0, 0) + complex(f.b1, 0)*z1 + complex(f.b2, 0)*z2
	den := 1 + complex(f.a1, 0)*z1 + complex(f.a2, 0)*z2
	h := num / den
	return 20 * math.Log10(math.Hypot(real(h), imag(h)))
}
