// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"

	"github.com/ik5/podmix/graph"
)

func TestGain_Fixed(t *testing.T) {
	t.Parallel()

	g := NewGain(0.5, nil, 10)
	buf := [][]float32{{1, -1}, {0.5, 0.25}}
	g.Process(buf)

	want := [][]float32{{0.5, -0.5}, {0.25, 0.125}}
	for c := range buf {
		for i := range buf[c] {
			if buf[c][i] != want[c][i] {
				t.Errorf("buf[%d][%d] = %v, want %v", c, i, buf[c][i], want[c][i])
			}
		}
	}
}

func TestGain_Automated(t *testing.T) {
	t.Parallel()

	// 10 Hz clock: frame i is at i/10 s. Ramp from 1 to 0 over the first second.
	a := graph.NewAutomation(1)
	a.SetValueAt(1, 0)
	a.LinearRampTo(0, 1)

	g := NewGain(1, a.Cursor(), 10)

	first := [][]float32{constant(5, 1)}
	second := [][]float32{constant(10, 1)}
	g.Process(first)
	g.Process(second)

	for i, v := range append(first[0], second[0]...) {
		want := math.Max(0, 1-float64(i)/10)
		if math.Abs(float64(v)-want) > 1e-6 {
			t.Errorf("frame %d = %v, want %v", i, v, want)
		}
	}
}
