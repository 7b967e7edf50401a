// SPDX-License-Identifier: EPL-2.0

package project

import (
	"sync"

	"github.com/ik5/podmix/history"
	"go.uber.org/zap"
)

type ChangeKind int

const (
	// Edited is a user edit recorded in the history.
	Edited ChangeKind = iota
	// Patched is a change outside the history, such as a buffer arriving.
	Patched
	Undone
	Redone
	// Replaced means a whole new document was loaded.
	Replaced
)

func (k ChangeKind) String() string {
	switch k {
	case Edited:
		return "edited"
	case Patched:
		return "patched"
	case Undone:
		return "undone"
	case Redone:
		return "redone"
	case Replaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Change is published to subscribers after the store's project changes.
type Change struct {
	Kind        ChangeKind
	Description string
	Project     Project
}

// Store owns the current project snapshot, its edit history and the set of
// observers. Readers always get a complete snapshot; writers swap it
// atomically.
type Store struct {
	mu      sync.RWMutex
	current Project
	history *history.History[Project]

	subMu  sync.Mutex
	subs   map[int]func(Change)
	nextID int

	logger *zap.Logger
}

// NewStore wraps p. A nil history gets a fresh one with the default limit;
// a nil logger discards logs.
func NewStore(p Project, h *history.History[Project], logger *zap.Logger) *Store {
	if h == nil {
		h = history.New[Project](history.DefaultLimit)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		current: p,
		history: h,
		subs:    make(map[int]func(Change)),
		logger:  logger.Named("store"),
	}
}

// Snapshot returns a copy of the current project.
func (s *Store) Snapshot() Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// History exposes the undo stack for inspection.
func (s *Store) History() *history.History[Project] {
	return s.history
}

// Update applies an edit and records it under description. When fn fails
// nothing changes.
func (s *Store) Update(description string, fn func(Project) (Project, error)) error {
	s.mu.Lock()
	before := s.current
	after, err := fn(before.Clone())
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("edit rejected", zap.String("edit", description), zap.Error(err))
		return err
	}
	s.current = after
	s.history.Record(description, before, after)
	s.mu.Unlock()

	s.logger.Debug("edit applied", zap.String("edit", description))
	s.publish(Change{Kind: Edited, Description: description, Project: after})
	return nil
}

// Patch applies a change that is not an edit and therefore not undoable.
func (s *Store) Patch(description string, fn func(Project) (Project, error)) error {
	s.mu.Lock()
	after, err := fn(s.current.Clone())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = after
	s.mu.Unlock()

	s.publish(Change{Kind: Patched, Description: description, Project: after})
	return nil
}

// Replace swaps in a different document and clears the history.
func (s *Store) Replace(p Project) {
	s.mu.Lock()
	s.current = p
	s.history.Clear()
	s.mu.Unlock()

	s.logger.Info("project replaced", zap.String("name", p.Name))
	s.publish(Change{Kind: Replaced, Project: p})
}

// Undo restores the state before the last edit.
func (s *Store) Undo() bool {
	return s.step(Undone, s.history.UndoDescription, s.history.Undo)
}

// Redo re-applies the last undone edit.
func (s *Store) Redo() bool {
	return s.step(Redone, s.history.RedoDescription, s.history.Redo)
}

func (s *Store) step(kind ChangeKind, describe func() string, op func() (Project, bool)) bool {
	s.mu.Lock()
	description := describe()
	target, ok := op()
	if !ok {
		s.mu.Unlock()
		return false
	}
	// Snapshots keep whatever buffers existed when they were taken; keep the
	// buffers decoded since then.
	target = carryBuffers(target, s.current)
	s.current = target
	s.mu.Unlock()

	s.logger.Debug("history step", zap.Stringer("kind", kind), zap.String("edit", description))
	s.publish(Change{Kind: kind, Description: description, Project: target})
	return true
}

func carryBuffers(target, current Project) Project {
	idx := current.FileIndex()
	out := target.Clone()
	for i := range out.Files {
		if f, ok := idx[out.Files[i].ID]; ok && f.Buffer != nil && f.URL == out.Files[i].URL {
			out.Files[i].Buffer = f.Buffer
			out.Files[i].Duration = f.Duration
		}
	}
	return out
}

// Subscribe registers fn for every future change. fn runs on the goroutine
// that made the change and must not call back into Update. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
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

func (s *Store) publish(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
