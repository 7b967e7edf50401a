// SPDX-License-Identifier: EPL-2.0

package hydrate

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/internal/metrics"
	"github.com/ik5/podmix/project"
)

const (
	DefaultConcurrency = 4
	DefaultCacheTTL    = 30 * time.Minute
)

// Options configures a Hydrator.
type Options struct {
	// SampleRate buffers are decoded to; 0 keeps each file's own rate.
	SampleRate int
	// Concurrency is the number of files decoded at once.
	Concurrency int
	// CacheTTL is how long a decoded buffer stays cached after its last
	// use. A negative TTL disables the cache.
	CacheTTL time.Duration
}

func DefaultOptions() Options {
	return Options{
		SampleRate:  44100,
		Concurrency: DefaultConcurrency,
		CacheTTL:    DefaultCacheTTL,
	}
}

// Hydrator decodes project files. It is safe for concurrent use.
type Hydrator struct {
	fetch    Fetcher
	registry *audio.Registry
	cache    *cache.Cache
	opts     Options
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// New returns a hydrator decoding with the formats in registry. logger and
// m may be nil.
func New(fetch Fetcher, registry *audio.Registry, opts Options, logger *zap.Logger, m *metrics.Metrics) *Hydrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	h := &Hydrator{
		fetch:    fetch,
		registry: registry,
		opts:     opts,
		logger:   logger.Named("hydrate"),
		metrics:  m,
	}
	if opts.CacheTTL > 0 {
		h.cache = cache.New(opts.CacheTTL, opts.CacheTTL*2)
	}
	return h
}

// Hydrate returns a copy of files where every file without a buffer has
// been fetched and decoded, and its Duration taken from the result. Files
// that fail keep no buffer and are reported in warnings as
// *audio.DecodeError. The only error is the context's.
func (h *Hydrator) Hydrate(ctx context.Context, files []project.AudioFile) (out []project.AudioFile, warnings []error, err error) {
	out = make([]project.AudioFile, len(files))
	copy(out, files)
	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(h.opts.Concurrency)

	for i := range out {
		if out[i].Buffer != nil {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		f := &out[i]
		g.Go(func() error {
			buf, err := h.load(ctx, f)
			if err != nil {
				errs[i] = err
				return nil
			}
			f.Buffer = buf
			f.Duration = buf.Duration()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	for _, e := range errs {
		if e != nil {
			warnings = append(warnings, e)
		}
	}
	if len(warnings) > 0 {
		h.logger.Warn("files left without audio", zap.Errors("warnings", warnings))
	}
	return out, warnings, nil
}

func (h *Hydrator) load(ctx context.Context, f *project.AudioFile) (*audio.Buffer, error) {
	started := time.Now()

	if h.cache != nil && f.URL != "" {
		if v, ok := h.cache.Get(f.URL); ok {
			h.cache.SetDefault(f.URL, v)
			h.metrics.RecordHydration(metrics.StatusCached, 0)
			return v.(*audio.Buffer), nil
		}
	}

	buf, err := h.decode(ctx, f)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			h.metrics.RecordHydration(metrics.StatusFailed, time.Since(started))
		}
		return nil, err
	}

	if h.cache != nil && f.URL != "" {
		h.cache.SetDefault(f.URL, buf)
	}
	h.metrics.RecordHydration(metrics.StatusDecoded, time.Since(started))
	h.logger.Debug("decoded file",
		zap.String("file", f.ID),
		zap.String("name", f.Name),
		zap.Float64("seconds", buf.Duration()),
		zap.Duration("took", time.Since(started)),
	)
	return buf, nil
}

func (h *Hydrator) decode(ctx context.Context, f *project.AudioFile) (*audio.Buffer, error) {
	dec, _, err := h.registry.Lookup(f.Type, f.Name)
	if err != nil {
		// The URL may carry the extension when the name doesn't.
		if dec, _, err = h.registry.Lookup("", f.URL); err != nil {
			return nil, &audio.DecodeError{FileID: f.ID, Name: f.Name, Err: err}
		}
	}

	rc, err := h.fetch.Fetch(ctx, f.URL)
	if err != nil {
		return nil, &audio.DecodeError{FileID: f.ID, Name: f.Name, Err: err}
	}
	defer rc.Close() //nolint:errcheck

	return audio.Decode(dec, rc, f.ID, f.Name, h.opts.SampleRate, 0)
}

// Forget drops the cached buffer of url, so the next hydration fetches it
// again.
func (h *Hydrator) Forget(url string) {
	if h.cache != nil {
		h.cache.Delete(url)
	}
}

// Sync hydrates the files of the project in s and attaches the buffers
// with a non-undoable patch. Files removed while decoding are ignored.
func (h *Hydrator) Sync(ctx context.Context, s *project.Store) ([]error, error) {
	files, warnings, err := h.Hydrate(ctx, s.Snapshot().Files)
	if err != nil {
		return nil, err
	}

	err = s.Patch("hydrate", func(p project.Project) (project.Project, error) {
		for _, f := range files {
			if f.Buffer == nil {
				continue
			}
			cur, ok := p.File(f.ID)
			if !ok || cur.Buffer != nil || cur.URL != f.URL {
				continue
			}
			p, _ = p.AttachBuffer(f.ID, f.Buffer)
		}
		return p, nil
	})
	return warnings, err
}

// Evict drops the buffer of a file from the project in s and from the
// cache. The file keeps its duration.
func (h *Hydrator) Evict(s *project.Store, fileID string) error {
	var url string
	err := s.Patch("evict "+fileID, func(p project.Project) (project.Project, error) {
		if f, ok := p.File(fileID); ok {
			url = f.URL
		}
		return p.EvictBuffer(fileID)
	})
	if err != nil {
		return err
	}
	h.Forget(url)
	return nil
}
