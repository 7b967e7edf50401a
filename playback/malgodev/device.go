// SPDX-License-Identifier: EPL-2.0

// Package malgodev plays a playback.Stream on the system's default output
// through miniaudio.
package malgodev

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
	"go.uber.org/zap"

	"github.com/ik5/podmix/playback"
)

var _ playback.Device = (*Device)(nil)

// Config selects the output format.
type Config struct {
	SampleRate int
	Channels   int
}

// Device is a float32 playback device. Its clock counts the frames handed
// to the hardware.
type Device struct {
	ctx *malgo.AllocatedContext
	dev *malgo.Device

	rate     int
	channels int
	frames   atomic.Int64

	// mu is held by the audio callback around Process.
	mu     sync.Mutex
	stream playback.Stream

	// block and views are only touched by the audio callback.
	block  [][]float32
	views  [][]float32
	logger *zap.Logger
}

func backends() []malgo.Backend {
	switch runtime.GOOS {
	case "linux":
		return []malgo.Backend{malgo.BackendAlsa}
	case "windows":
		return []malgo.Backend{malgo.BackendWasapi}
	case "darwin":
		return []malgo.Backend{malgo.BackendCoreaudio}
	default:
		return nil
	}
}

// Open starts the default output device. The device plays silence until a
// stream is attached.
func Open(cfg Config, logger *zap.Logger) (*Device, error) {
	if cfg.SampleRate <= 0 || cfg.Channels <= 0 {
		return nil, fmt.Errorf("%d Hz, %d channels: %w", cfg.SampleRate, cfg.Channels, playback.ErrInvalidDevice)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("malgo")

	ctx, err := malgo.InitContext(backends(), malgo.ContextConfig{}, func(message string) {
		logger.Debug(message)
	})
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}

	d := &Device{
		ctx:      ctx,
		rate:     cfg.SampleRate,
		channels: cfg.Channels,
		logger:   logger,
	}

	conf := malgo.DefaultDeviceConfig(malgo.Playback)
	conf.Playback.Format = malgo.FormatF32
	conf.Playback.Channels = uint32(cfg.Channels)
	conf.SampleRate = uint32(cfg.SampleRate)
	conf.Alsa.NoMMap = 1

	dev, err := malgo.InitDevice(ctx.Context, conf, malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frames uint32) {
			d.fill(out, int(frames))
		},
		Stop: func() {
			logger.Warn("audio device stopped")
		},
	})
	if err != nil {
		d.freeContext()
		return nil, fmt.Errorf("init playback device: %w", err)
	}
	d.dev = dev

	if err := dev.Start(); err != nil {
		dev.Uninit()
		d.freeContext()
		return nil, fmt.Errorf("start playback device: %w", err)
	}

	logger.Info("playback device started",
		zap.Int("sample_rate", cfg.SampleRate),
		zap.Int("channels", cfg.Channels),
	)
	return d, nil
}

// SampleRate is the output rate in Hz.
func (d *Device) SampleRate() int { return d.rate }

// Channels is the output channel count.
func (d *Device) Channels() int { return d.channels }

// Clock is the number of frames handed to the hardware, in seconds.
func (d *Device) Clock() float64 {
	return float64(d.frames.Load()) / float64(d.rate)
}

// Attach makes the next callback pull from s.
func (d *Device) Attach(s playback.Stream) error {
	d.mu.Lock()
	d.stream = s
	d.mu.Unlock()
	return nil
}

// Detach waits for a callback inside Process to return, then silences the
// device.
func (d *Device) Detach() error {
	d.mu.Lock()
	d.stream = nil
	d.mu.Unlock()
	return nil
}

// Close stops the hardware and frees the audio context.
func (d *Device) Close() error {
	_ = d.Detach()
	var err error
	if d.dev != nil {
		err = d.dev.Stop()
		d.dev.Uninit()
		d.dev = nil
	}
	d.freeContext()
	return err
}

func (d *Device) freeContext() {
	if d.ctx == nil {
		return
	}
	if err := d.ctx.Uninit(); err != nil {
		d.logger.Warn("uninit audio context", zap.Error(err))
	}
	d.ctx.Free()
	d.ctx = nil
}

// fill renders frames of the attached stream into out as interleaved
// little-endian float32.
func (d *Device) fill(out []byte, frames int) {
	if len(d.block) != d.channels || len(d.block[0]) < frames {
		d.block = make([][]float32, d.channels)
		for c := range d.block {
			d.block[c] = make([]float32, frames)
		}
		d.views = make([][]float32, d.channels)
	}
	for c := range d.views {
		d.views[c] = d.block[c][:frames]
		clear(d.views[c])
	}

	d.mu.Lock()
	if d.stream != nil {
		d.stream.Process(d.views)
	}
	d.mu.Unlock()

	interleave(out, d.views)
	d.frames.Add(int64(frames))
}

func interleave(dst []byte, block [][]float32) {
	channels := len(block)
	if channels == 0 {
		return
	}
	for i := range block[0] {
		for c := range channels {
			off := (i*channels + c) * 4
			if off+4 > len(dst) {
				return
			}
			binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(block[c][i]))
		}
	}
}
