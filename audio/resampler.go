// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/podmix/utils"
)

// Resampler converts a Source to another sample rate with Catmull-Rom
// interpolation over a four-frame window, keeping the channel count.
// When downsampling, input frames first pass a one-pole low-pass tuned to
// the output Nyquist frequency. Equal rates pass through untouched.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // input frames per output frame
	channels int

	// win holds four interleaved frames, oldest first: t-1, t0, t+1, t+2.
	// Output positions fall between t0 and t+1.
	win    []float32
	last   int // newest window slot holding real input
	phase  float64
	primed bool

	in     []float32
	off, n int
	done   bool

	lp *onePole
}

// NewResampler returns src converted to rate.
func NewResampler(src Source, rate int) *Resampler {
	ch := src.Channels()
	step := float64(src.SampleRate()) / float64(rate)

	size := max(src.BufSize(), 256)
	size -= size % ch

	r := &Resampler{
		src:      src,
		rate:     rate,
		step:     step,
		channels: ch,
		win:      make([]float32, 4*ch),
		in:       make([]float32, size),
	}
	if step > 1 {
		r.lp = &onePole{
			alpha: float32(1 - math.Exp(-math.Pi/step)),
			state: make([]float32, ch),
		}
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }
func (r *Resampler) Close() error    { return r.src.Close() }

// ReadSamples fills dst with interleaved frames at the target rate. len(dst)
// must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.step == 1 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	ch := r.channels
	want := len(dst) / ch
	n := 0

	for n < want {
		for r.phase >= 1 {
			r.phase--
			if err := r.advance(); err != nil {
				return n * ch, err
			}
		}
		if r.last < 2 {
			return n * ch, io.EOF
		}

		t := float32(r.phase)
		out := dst[n*ch : (n+1)*ch]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.win[c], r.win[ch+c], r.win[2*ch+c], r.win[3*ch+c], t)
		}

		n++
		r.phase += r.step
	}

	return n * ch, nil
}

// prime loads the first input frame into t0 and repeats it as t-1, then
// reads ahead two frames.
func (r *Resampler) prime() error {
	r.primed = true
	r.last = -1
	ch := r.channels

	ok, err := r.pull(r.win[ch : 2*ch])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.win[:ch], r.win[ch:2*ch])
	r.last = 1

	for i := 2; i < 4; i++ {
		frame := r.win[i*ch : (i+1)*ch]
		ok, err := r.pull(frame)
		if err != nil {
			return err
		}
		if !ok {
			copy(frame, r.win[(i-1)*ch:i*ch])
			continue
		}
		r.last = i
	}
	return nil
}

// advance slides the window one input frame. Past the end of input the
// newest frame is repeated.
func (r *Resampler) advance() error {
	ch := r.channels
	copy(r.win, r.win[ch:])
	r.last--

	frame := r.win[3*ch:]
	ok, err := r.pull(frame)
	if err != nil {
		return err
	}
	if ok {
		r.last = 3
	} else {
		copy(frame, r.win[2*ch:3*ch])
	}
	return nil
}

// pull copies the next input frame into frame, reading from src in chunks.
func (r *Resampler) pull(frame []float32) (bool, error) {
	for empty := 0; r.off >= r.n; empty++ {
		if r.done || empty == maxEmptyReads {
			r.done = true
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.off, r.n = 0, n-n%r.channels
		switch {
		case errors.Is(err, io.EOF):
			r.done = true
		case err != nil:
			return false, fmt.Errorf("resampling: %w", err)
		}
	}

	copy(frame, r.in[r.off:r.off+r.channels])
	r.off += r.channels

	if r.lp != nil {
		r.lp.apply(frame)
	}
	return true, nil
}

// onePole is y[n] = a*x[n] + (1-a)*y[n-1] per channel, seeded with the
// first frame so it starts without a transient.
type onePole struct {
	alpha float32
	state []float32
	warm  bool
}

func (p *onePole) apply(frame []float32) {
	if !p.warm {
		copy(p.state, frame)
		p.warm = true
	}
	for c, x := range frame {
		y := p.alpha*x + (1-p.alpha)*p.state[c]
		p.state[c] = y
		frame[c] = y
	}
}
