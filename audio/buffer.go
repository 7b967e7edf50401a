// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// Buffer is fully decoded PCM audio held as one float32 slice per channel.
// A Buffer is treated as immutable once it is shared; graph builds and
// renders only read from it.
type Buffer struct {
	sampleRate int
	data       [][]float32
}

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, frames int) (*Buffer, error) {
	if sampleRate <= 0 || channels <= 0 || frames < 0 {
		return nil, ErrInvalidFormat
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{sampleRate: sampleRate, data: data}, nil
}

// NewBufferFromChannels wraps existing per-channel slices without copying.
func NewBufferFromChannels(sampleRate int, channels ...[]float32) (*Buffer, error) {
	if sampleRate <= 0 || len(channels) == 0 {
		return nil, ErrInvalidFormat
	}

	for _, ch := range channels[1:] {
		if len(ch) != len(channels[0]) {
			return nil, ErrChannelMismatch
		}
	}

	return &Buffer{sampleRate: sampleRate, data: channels}, nil
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.data) }

// Frames is the length of every channel.
func (b *Buffer) Frames() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Channel returns the backing slice of channel ch. Callers must not modify
// it unless they own the buffer.
func (b *Buffer) Channel(ch int) []float32 {
	return b.data[ch]
}

// Samples returns up to length samples of channel ch starting at offset.
// The result is shorter than length near the end of the buffer and empty
// past it.
func (b *Buffer) Samples(ch, offset, length int) []float32 {
	data := b.data[ch]
	if offset < 0 {
		offset = 0
	}
	if offset >= len(data) || length <= 0 {
		return nil
	}

	return data[offset:min(offset+length, len(data))]
}

// Interleaved copies the buffer into a single frame-ordered slice.
func (b *Buffer) Interleaved() []float32 {
	channels := len(b.data)
	frames := b.Frames()
	out := make([]float32, frames*channels)

	for c, data := range b.data {
		for f, s := range data {
			out[f*channels+c] = s
		}
	}

	return out
}

// Reader streams the buffer as a Source, which lets buffers feed the
// Resampler and ChannelMapper.
func (b *Buffer) Reader() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels() }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.Frames() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = s.buf.data[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Frames() {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}
