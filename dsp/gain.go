// SPDX-License-Identifier: EPL-2.0

package dsp

// Param supplies a parameter value at a render-local time. Calls come with
// non-decreasing times.
type Param interface {
	Value(t float64) float64
}

// Gain multiplies its input by a fixed value or, when it has a Param, by
// the param's value at each frame's time.
type Gain struct {
	value      float64
	param      Param
	sampleRate float64
	pos        int64
}

// NewGain returns a gain stage. param may be nil.
func NewGain(value float64, param Param, sampleRate int) *Gain {
	return &Gain{value: value, param: param, sampleRate: float64(sampleRate)}
}

// Process scales buf in place and advances the stage's clock.
func (g *Gain) Process(buf [][]float32) {
	if len(buf) == 0 {
		return
	}
	frames := len(buf[0])

	if g.param == nil {
		if g.value != 1 {
			v := float32(g.value)
			for _, ch := range buf {
				for i := range ch {
					ch[i] *= v
				}
			}
		}
		g.pos += int64(frames)
		return
	}

	for i := range frames {
		v := float32(g.param.Value(float64(g.pos+int64(i)) / g.sampleRate))
		for _, ch := range buf {
			ch[i] *= v
		}
	}
	g.pos += int64(frames)
}
