// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper converts an interleaved stream to a different channel count.
//
//   - to mono: all input channels are averaged
//   - from mono: the single channel is copied to every output channel
//   - otherwise: output channel c is the average of the input channels i
//     with i%out == c, or a copy of input c%in when widening
type ChannelMapper struct {
	src Source
	out int
	tmp []float32
}

func NewChannelMapper(src Source, channels int) *ChannelMapper {
	return &ChannelMapper{
		src: src,
		out: channels,
		tmp: make([]float32, 4096),
	}
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.out }
func (m *ChannelMapper) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMapper) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	samplesNeeded := frames * in

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / in

	switch {
	case m.out == 1 && in == 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	case in == 1:
		for f := range frames {
			s := m.tmp[f]
			base := f * m.out
			for c := range m.out {
				dst[base+c] = s
			}
		}
	case in < m.out:
		for f := range frames {
			for c := range m.out {
				dst[f*m.out+c] = m.tmp[f*in+c%in]
			}
		}
	default:
		m.fold(dst, frames, in)
	}

	return frames * m.out, err
}

// fold averages input channels into fewer output channels.
func (m *ChannelMapper) fold(dst []float32, frames, in int) {
	for f := range frames {
		for c := range m.out {
			var sum float32
			var count int
			for i := c; i < in; i += m.out {
				sum += m.tmp[f*in+i]
				count++
			}
			dst[f*m.out+c] = sum / float32(count)
		}
	}
}
