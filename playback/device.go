// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"math"
	"sync"
)

// Stream produces audio for a device, one slice per channel. Process is
// called from the device's audio thread.
type Stream interface {
	Process(out [][]float32)
}

// Device is an output the Scheduler plays into. The Scheduler only sends
// commands (Attach, Detach) and reads the clock; the device pulls samples
// on its own thread.
type Device interface {
	SampleRate() int
	Channels() int
	// Clock is the device's running time in seconds. It only moves forward.
	Clock() float64
	// Attach makes the device pull s starting with its next frame,
	// replacing any stream attached before.
	Attach(s Stream) error
	// Detach silences the device. It returns after any Process call in
	// flight has finished, and the stream is never pulled again.
	Detach() error
}

// NullDevice is a device without hardware. Its clock only moves when
// Advance is called, which makes playback deterministic in tests and in
// headless tools.
type NullDevice struct {
	mu       sync.Mutex
	rate     int
	channels int
	frames   int64
	stream   Stream
	sink     func(block [][]float32)
	block    [][]float32
	views    [][]float32
}

// NewNullDevice returns a device with the given format. Every block pulled
// by Advance is passed to sink when it isn't nil; the block is reused
// between calls.
func NewNullDevice(sampleRate, channels int, sink func(block [][]float32)) (*NullDevice, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%d Hz, %d channels: %w", sampleRate, channels, ErrInvalidDevice)
	}
	return &NullDevice{rate: sampleRate, channels: channels, sink: sink}, nil
}

// SampleRate is the device rate in Hz.
func (d *NullDevice) SampleRate() int { return d.rate }

// Channels is the device channel count.
func (d *NullDevice) Channels() int { return d.channels }

// Clock is the time advanced so far, in seconds.
func (d *NullDevice) Clock() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return float64(d.frames) / float64(d.rate)
}

// Attach makes the next Advance pull from s.
func (d *NullDevice) Attach(s Stream) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stream = s
	return nil
}

// Detach waits for a running Advance, then silences the device.
func (d *NullDevice) Detach() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stream = nil
	return nil
}

// Advance moves the clock forward by frames, pulling them from the
// attached stream. Without a stream the frames are silent.
func (d *NullDevice) Advance(frames int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frames <= 0 {
		return
	}
	if len(d.block) == 0 || len(d.block[0]) < frames {
		d.block = make([][]float32, d.channels)
		for c := range d.block {
			d.block[c] = make([]float32, frames)
		}
		d.views = make([][]float32, d.channels)
	}
	out := d.views
	for c := range out {
		out[c] = d.block[c][:frames]
		clear(out[c])
	}

	if d.stream != nil {
		d.stream.Process(out)
	}
	d.frames += int64(frames)
	if d.sink != nil {
		d.sink(out)
	}
}

// AdvanceSeconds is Advance for a duration, rounded to whole frames.
func (d *NullDevice) AdvanceSeconds(seconds float64) {
	d.Advance(int(math.Round(seconds * float64(d.rate))))
}
