// SPDX-License-Identifier: EPL-2.0

package podmix

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/config"
	"github.com/ik5/podmix/formats"
	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/history"
	"github.com/ik5/podmix/hydrate"
	"github.com/ik5/podmix/internal/metrics"
	"github.com/ik5/podmix/playback"
	"github.com/ik5/podmix/project"
	"github.com/ik5/podmix/render"
)

// Engine wires the components configured by one config.Config.
type Engine struct {
	cfg      config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	registry *audio.Registry
	renderer *render.Renderer
	hydrator *hydrate.Hydrator
}

// New returns an engine. logger may be nil; when reg is not nil the
// engine's metrics are registered on it.
func New(cfg config.Config, logger *zap.Logger, reg prometheus.Registerer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var m *metrics.Metrics
	if reg != nil {
		var err error
		if m, err = metrics.New(reg); err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}

	registry := formats.NewRegistry()
	return &Engine{
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		registry: registry,
		renderer: render.New(cfg.RenderOptions(), logger, m),
		hydrator: hydrate.New(
			hydrate.NewFetcher(cfg.Hydration.Root, nil),
			registry,
			cfg.HydrateOptions(),
			logger,
			m,
		),
	}, nil
}

func (e *Engine) Renderer() *render.Renderer { return e.renderer }

func (e *Engine) Hydrator() *hydrate.Hydrator { return e.hydrator }

// Open reads and validates a saved project. Its files have no buffers yet.
func (e *Engine) Open(path string) (project.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return project.Project{}, err
	}
	defer f.Close() //nolint:errcheck

	p, err := project.Load(f)
	if err != nil {
		return project.Project{}, err
	}
	if err := project.Validate(&p); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

// NewStore wraps p in an undoable store with the default history depth.
func (e *Engine) NewStore(p project.Project) *project.Store {
	return project.NewStore(p, history.New[project.Project](history.DefaultLimit), e.logger)
}

// Hydrate decodes every file of p that has no buffer. Files that fail are
// logged and left without audio; their clips are silent.
func (e *Engine) Hydrate(ctx context.Context, p project.Project) (project.Project, []error, error) {
	files, warnings, err := e.hydrator.Hydrate(ctx, p.Files)
	if err != nil {
		return p, nil, err
	}
	out := p.Clone()
	out.Files = files
	return out, warnings, nil
}

// Mixdown hydrates p, renders every audible track and writes the result
// to w as WAV.
func (e *Engine) Mixdown(ctx context.Context, p project.Project, w io.Writer) error {
	return e.MixdownWith(ctx, p, wav.Encoder{}, w)
}

// MixdownWith is Mixdown with another encoder.
func (e *Engine) MixdownWith(ctx context.Context, p project.Project, enc audio.Encoder, w io.Writer) error {
	hydrated, _, err := e.Hydrate(ctx, p)
	if err != nil {
		return err
	}
	return render.Export(ctx, e.renderer, hydrated, enc, w)
}

// Player returns a scheduler playing s on dev with the engine's playback
// settings.
func (e *Engine) Player(dev playback.Device, s *project.Store) (*playback.Scheduler, error) {
	return playback.New(dev, s, e.cfg.PlaybackOptions(), e.logger, e.metrics)
}
