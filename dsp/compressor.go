// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"

	"github.com/ik5/podmix/project"
)

// silenceDB is the level the detector reports for digital silence.
const silenceDB = -200.0

// Compressor is a feed-forward dynamics compressor with a soft knee. The
// channels are linked: one gain computed from the loudest channel is
// applied to all of them. Makeup gain is derived from the settings the way
// browser compressors do, so full-scale input stays near full scale.
type Compressor struct {
	threshold float64
	knee      float64
	ratio     float64

	attackCoef  float64
	releaseCoef float64
	makeupDB    float64

	// smoothed gain reduction in dB, always <= 0
	envDB float64
}

// NewCompressor builds a compressor for sampleRate.
func NewCompressor(s project.CompressorSettings, sampleRate int) (*Compressor, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("compressor: %d Hz: %w", sampleRate, ErrInvalidParameter)
	}
	if s.Ratio < 1 || s.Knee < 0 || s.Attack < 0 || s.Release < 0 {
		return nil, fmt.Errorf("compressor: %+v: %w", s, ErrInvalidParameter)
	}

	c := &Compressor{
		threshold:   s.Threshold,
		knee:        s.Knee,
		ratio:       s.Ratio,
		attackCoef:  timeCoef(s.Attack, sampleRate),
		releaseCoef: timeCoef(s.Release, sampleRate),
	}
	c.makeupDB = -0.6 * c.reduction(0)
	return c, nil
}

func timeCoef(seconds float64, sampleRate int) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Exp(-1 / (seconds * float64(sampleRate)))
}

// reduction is the static gain change in dB for an input level in dB.
func (c *Compressor) reduction(levelDB float64) float64 {
	over := levelDB - c.threshold
	switch {
	case 2*over < -c.knee:
		return 0
	case c.knee > 0 && 2*math.Abs(over) <= c.knee:
		d := over + c.knee/2
		return (1/c.ratio - 1) * d * d / (2 * c.knee)
	default:
		return (1/c.ratio - 1) * over
	}
}

// Reduction returns the current smoothed gain reduction in dB.
func (c *Compressor) Reduction() float64 { return c.envDB }

// Process compresses buf in place.
func (c *Compressor) Process(buf [][]float32) {
	if len(buf) == 0 {
		return
	}

	for i := range buf[0] {
		var peak float64
		for _, ch := range buf {
			peak = max(peak, math.Abs(float64(ch[i])))
		}

		level := silenceDB
		if peak > 0 {
			level = 20 * math.Log10(peak)
		}

		target := c.reduction(level)
		coef := c.releaseCoef
		if target < c.envDB {
			coef = c.attackCoef
		}
		c.envDB = coef*c.envDB + (1-coef)*target

		g := float32(math.Pow(10, (c.envDB+c.makeupDB)/20))
		for _, ch := range buf {
			ch[i] *= g
		}
	}
}
