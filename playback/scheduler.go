// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/podmix/graph"
	"github.com/ik5/podmix/internal/metrics"
	"github.com/ik5/podmix/project"
	"github.com/ik5/podmix/render"
)

const (
	// DefaultTick is roughly one display frame.
	DefaultTick = 16 * time.Millisecond
	// DefaultMinTimeline is the shortest timeline shown to users, in seconds.
	DefaultMinTimeline = 60.0
)

// Snapshotter hands out consistent copies of a project. *project.Store is
// one.
type Snapshotter interface {
	Snapshot() project.Project
}

// Options configures a Scheduler.
type Options struct {
	Tick        time.Duration
	MinTimeline float64
	BlockSize   int
	Ducking     graph.DuckingParams
	// Mastering replaces a project's missing mastering compressor, as it
	// does for offline renders. Nil means project.DefaultMastering.
	Mastering *project.CompressorSettings
}

// DefaultOptions returns a 16ms tick, a 60s minimum timeline and the
// default ducking.
func DefaultOptions() Options {
	return Options{
		Tick:        DefaultTick,
		MinTimeline: DefaultMinTimeline,
		BlockSize:   render.DefaultBlockSize,
		Ducking:     graph.DefaultDucking(),
	}
}

type ticker struct {
	stop chan struct{}
	done chan struct{}
}

// Scheduler plays a project on a device. All methods are safe for
// concurrent use.
type Scheduler struct {
	dev      Device
	src      Snapshotter
	opts     Options
	renderer *render.Renderer
	logger   *zap.Logger
	metrics  *metrics.Metrics

	mu       sync.Mutex
	state    State
	position float64
	origin   float64
	total    float64
	ticker   *ticker
	closed   bool

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// New returns a stopped scheduler at position 0. logger and m may be nil.
func New(dev Device, src Snapshotter, opts Options, logger *zap.Logger, m *metrics.Metrics) (*Scheduler, error) {
	if dev == nil || dev.SampleRate() <= 0 || dev.Channels() <= 0 {
		return nil, ErrInvalidDevice
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}

	s := &Scheduler{
		dev:  dev,
		src:  src,
		opts: opts,
		renderer: render.New(render.Options{
			SampleRate: dev.SampleRate(),
			Channels:   dev.Channels(),
			BlockSize:  opts.BlockSize,
			Ducking:    opts.Ducking,
			Mastering:  opts.Mastering,
		}, logger, m),
		logger:  logger.Named("playback"),
		metrics: m,
		subs:    make(map[int]func(Event)),
	}
	m.SetPlaybackState(Stopped.String(), stateNames)
	return s, nil
}

// State returns the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Position returns the playback position in project seconds.
func (s *Scheduler) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Playing {
		return s.livePosition()
	}
	return s.position
}

// Duration is where playback of the current project ends.
func (s *Scheduler) Duration() float64 {
	return project.TotalDuration(s.src.Snapshot().Tracks)
}

// Timeline is the length of the timeline to display, never shorter than
// Options.MinTimeline.
func (s *Scheduler) Timeline() float64 {
	return project.TimelineDuration(s.src.Snapshot().Tracks, s.opts.MinTimeline)
}

// Play starts playback from the current position. Playing while already
// playing does nothing.
func (s *Scheduler) Play() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.state == Playing {
		s.mu.Unlock()
		return nil
	}
	err := s.start()
	ev := s.event(StateChanged)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(ev)
	return nil
}

// Pause silences the device at once and remembers where it stopped.
func (s *Scheduler) Pause() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.state != Playing {
		s.mu.Unlock()
		return nil
	}
	wait, err := s.halt(s.livePosition(), Paused)
	ev := s.event(StateChanged)
	s.mu.Unlock()

	wait()
	s.publish(ev)
	return err
}

// Stop silences the device and rewinds to 0.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	wait := func() {}
	var err error
	kind := StateChanged
	switch s.state {
	case Playing:
		wait, err = s.halt(0, Stopped)
	case Paused:
		s.position = 0
		s.setState(Stopped)
	default:
		s.position = 0
		kind = Moved
	}
	ev := s.event(kind)
	s.mu.Unlock()

	wait()
	s.publish(ev)
	return err
}

// Seek moves the position to t seconds, clamped at 0. While playing,
// playback pauses, moves and resumes from t with a freshly built graph, so
// edits made since the last Play are heard.
func (s *Scheduler) Seek(t float64) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	t = max(0, t)

	if s.state != Playing {
		s.position = t
		ev := s.event(Moved)
		s.mu.Unlock()
		s.publish(ev)
		return nil
	}

	wait, err := s.halt(t, Paused)
	if err == nil {
		err = s.start()
	}
	evs := []Event{s.event(Moved)}
	if s.state != Playing {
		evs = append(evs, s.event(StateChanged))
	}
	s.mu.Unlock()

	wait()
	s.publish(evs...)
	return err
}

// Subscribe registers fn for every future event. Tick events arrive on the
// scheduler's own goroutine; fn must not call back into the scheduler. The
// returned function unsubscribes.
func (s *Scheduler) Subscribe(fn func(Event)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Close stops playback and releases the scheduler. The device stays open;
// it belongs to the caller.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	wait := func() {}
	var err error
	if s.state == Playing {
		wait, err = s.halt(s.livePosition(), Stopped)
	}
	s.mu.Unlock()

	wait()

	s.subMu.Lock()
	clear(s.subs)
	s.subMu.Unlock()

	s.logger.Debug("scheduler closed")
	return err
}

// start compiles a snapshot from the remembered position and attaches it.
// On failure the state is left as it was.
func (s *Scheduler) start() error {
	p := s.src.Snapshot()
	total := project.TotalDuration(p.Tracks)

	net, res, err := s.renderer.Compile(p, project.RenderSet(p.Tracks), s.position)
	if err != nil {
		return err
	}

	origin := s.dev.Clock()
	if err := s.dev.Attach(net); err != nil {
		return fmt.Errorf("attaching stream: %w", err)
	}
	s.origin, s.total = origin, total
	s.metrics.RecordGraph(metrics.ModeLive, net.Voices(), len(res.Skipped))

	tk := &ticker{stop: make(chan struct{}), done: make(chan struct{})}
	s.ticker = tk
	go s.run(tk)

	s.setState(Playing)
	s.logger.Info("playing",
		zap.String("project", p.Name),
		zap.Float64("from", s.position),
		zap.Float64("duration", total),
		zap.Int("sources", net.Voices()),
	)
	return nil
}

// halt detaches the device, stops the ticker and moves to state at
// position. The returned function waits for the ticker goroutine to exit
// and must be called without holding mu.
func (s *Scheduler) halt(position float64, state State) (wait func(), err error) {
	if derr := s.dev.Detach(); derr != nil {
		err = fmt.Errorf("detaching stream: %w", derr)
	}
	s.position = position
	s.setState(state)

	tk := s.ticker
	s.ticker = nil
	if tk == nil {
		return func() {}, err
	}
	close(tk.stop)
	return func() { <-tk.done }, err
}

func (s *Scheduler) run(tk *ticker) {
	defer close(tk.done)

	t := time.NewTicker(s.opts.Tick)
	defer t.Stop()

	for {
		select {
		case <-tk.stop:
			return
		case <-t.C:
			if s.tick(tk) {
				return
			}
		}
	}
}

// tick publishes the position and reports whether playback ended.
func (s *Scheduler) tick(tk *ticker) bool {
	s.mu.Lock()
	if s.ticker != tk || s.state != Playing {
		s.mu.Unlock()
		return false
	}

	pos := s.livePosition()
	if s.total <= 0 || pos < s.total {
		ev := s.event(Moved)
		ev.Position = pos
		s.mu.Unlock()
		s.publish(ev)
		return false
	}

	end := Event{Kind: Ended, State: Playing, Position: s.total}
	if err := s.dev.Detach(); err != nil {
		s.logger.Warn("detaching stream at end", zap.Error(err))
	}
	s.ticker = nil
	s.position = 0
	s.setState(Stopped)
	ev := s.event(StateChanged)
	s.mu.Unlock()

	s.logger.Info("playback ended", zap.Float64("duration", end.Position))
	s.publish(end, ev)
	return true
}

func (s *Scheduler) livePosition() float64 {
	return s.position + (s.dev.Clock() - s.origin)
}

func (s *Scheduler) setState(st State) {
	if s.state == st {
		return
	}
	s.logger.Debug("state changed", zap.Stringer("from", s.state), zap.Stringer("to", st))
	s.state = st
	s.metrics.SetPlaybackState(st.String(), stateNames)
}

func (s *Scheduler) event(kind EventKind) Event {
	return Event{Kind: kind, State: s.state, Position: s.position}
}

func (s *Scheduler) publish(evs ...Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, ev := range evs {
		for _, fn := range fns {
			fn(ev)
		}
	}
}
