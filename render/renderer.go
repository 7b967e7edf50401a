// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/graph"
	"github.com/ik5/podmix/internal/metrics"
	"github.com/ik5/podmix/project"
)

// Output formats the renderer accepts.
const (
	MinSampleRate = 8000
	MaxSampleRate = 192000
	// OutputChannels is the only supported layout: exports are stereo.
	OutputChannels = 2

	DefaultSampleRate = 44100
)

// Options configures a Renderer.
type Options struct {
	SampleRate int
	Channels   int
	BlockSize  int
	Ducking    graph.DuckingParams
	// Mastering is substituted when a project has no mastering compressor.
	// Nil means project.DefaultMastering.
	Mastering *project.CompressorSettings
}

// DefaultOptions renders 44.1kHz stereo with the default ducking.
func DefaultOptions() Options {
	return Options{
		SampleRate: DefaultSampleRate,
		Channels:   OutputChannels,
		BlockSize:  DefaultBlockSize,
		Ducking:    graph.DefaultDucking(),
	}
}

// Filter picks the tracks a render includes.
type Filter func(tracks []project.Track) []project.Track

// Renderer mixes projects offline. It holds no per-render state and is
// safe for concurrent use.
type Renderer struct {
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New returns a renderer. logger and m may be nil.
func New(opts Options, logger *zap.Logger, m *metrics.Metrics) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}
	return &Renderer{opts: opts, logger: logger.Named("render"), metrics: m}
}

// Options returns the renderer's configuration.
func (r *Renderer) Options() Options { return r.opts }

// Check reports whether the renderer can produce its configured format.
func (r *Renderer) Check() error {
	if r.opts.SampleRate < MinSampleRate || r.opts.SampleRate > MaxSampleRate {
		return fmt.Errorf("sample rate %d Hz outside %d-%d Hz: %w", r.opts.SampleRate, MinSampleRate, MaxSampleRate, ErrUnsupportedPlatform)
	}
	if r.opts.Channels != OutputChannels {
		return fmt.Errorf("%d output channels: %w", r.opts.Channels, ErrUnsupportedPlatform)
	}
	return nil
}

// Render mixes p from its beginning into a stereo buffer as long as the
// project's loop-aware duration. A nil filter renders project.RenderSet.
//
// A project without a mastering compressor is mastered with the default
// one. Render fails with ErrUnsupportedPlatform before doing any work when
// the configured format isn't supported, and with ErrEmptyProject when no
// selected track has a clip. The project is never modified.
func (r *Renderer) Render(ctx context.Context, p project.Project, filter Filter) (buf *audio.Buffer, err error) {
	started := time.Now()
	defer func() {
		r.metrics.RecordRender(renderStatus(err), time.Since(started), bufSeconds(buf))
	}()

	if err := r.Check(); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = project.RenderSet
	}
	tracks := filter(p.Tracks)

	total := project.TotalDuration(p.Tracks)
	if total <= 0 || !hasClips(tracks) {
		return nil, ErrEmptyProject
	}

	net, res, err := r.Compile(p, tracks, 0)
	if err != nil {
		return nil, err
	}
	r.metrics.RecordGraph(metrics.ModeOffline, net.Voices(), len(res.Skipped))

	frames := int(math.Ceil(total * float64(r.opts.SampleRate)))
	out, err := audio.NewBuffer(r.opts.SampleRate, r.opts.Channels, frames)
	if err != nil {
		return nil, err
	}

	chunk := make([][]float32, r.opts.Channels)
	for off := 0; off < frames; off += r.opts.BlockSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(off+r.opts.BlockSize, frames)
		for c := range chunk {
			chunk[c] = out.Channel(c)[off:end]
		}
		net.Process(chunk)
	}

	r.logger.Info("rendered project",
		zap.String("project", p.Name),
		zap.Float64("seconds", total),
		zap.Int("sources", net.Voices()),
		zap.Strings("ducked", res.Ducked),
		zap.Duration("took", time.Since(started)),
	)
	return out, nil
}

// Compile builds the graph of p's tracks for a render whose time zero is
// project time origin and compiles it with the entries still playing from
// there. Offline renders and live playback both go through Compile, which
// also applies the default mastering.
func (r *Renderer) Compile(p project.Project, tracks []project.Track, origin float64) (*Network, graph.Result, error) {
	mastering := p.Mastering
	if mastering == nil {
		mastering = r.opts.Mastering
		if mastering == nil {
			mastering = project.DefaultMastering()
		}
		r.logger.Debug("project has no mastering, using default")
	}

	res := graph.Build(graph.Input{
		Tracks:    tracks,
		AllTracks: p.Tracks,
		Files:     p.Files,
		Mastering: mastering,
		Origin:    origin,
		Ducking:   r.opts.Ducking,
	})
	if len(res.Skipped) > 0 {
		r.logger.Warn("clips without decoded audio left out", zap.Strings("clips", res.Skipped))
	}

	net, err := NewNetwork(res.Graph, graph.Schedule(res.Entries, origin), r.opts.SampleRate, r.opts.Channels, r.opts.BlockSize)
	if err != nil {
		return nil, res, fmt.Errorf("compiling graph: %w", err)
	}
	return net, res, nil
}

func hasClips(tracks []project.Track) bool {
	for _, t := range tracks {
		if len(t.Clips) > 0 {
			return true
		}
	}
	return false
}

func renderStatus(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, ErrEmptyProject):
		return metrics.StatusEmpty
	case errors.Is(err, ErrUnsupportedPlatform):
		return metrics.StatusUnsupported
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.StatusCanceled
	default:
		return metrics.StatusError
	}
}

func bufSeconds(buf *audio.Buffer) float64 {
	if buf == nil {
		return 0
	}
	return buf.Duration()
}

// Export renders p with the default filter and writes it with enc.
func Export(ctx context.Context, r *Renderer, p project.Project, enc audio.Encoder, w io.Writer) error {
	buf, err := r.Render(ctx, p, nil)
	if err != nil {
		return err
	}
	if err := enc.Encode(w, buf); err != nil {
		return fmt.Errorf("encoding mix: %w", err)
	}
	return nil
}
