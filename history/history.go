// SPDX-License-Identifier: EPL-2.0

// Package history keeps a bounded undo/redo stack of immutable snapshots.
//
// A History is owned by whoever owns the document; there is no global
// instance. Each entry stores the state before and after one edit:
//
//	h := history.New[project.Project](history.DefaultLimit)
//	h.Record("Move clip", before, after)
//	prev, ok := h.Undo()
package history

import (
	"sync"
	"time"
)

// DefaultLimit is the number of edits kept before the oldest is dropped.
const DefaultLimit = 100

// Entry is one recorded edit.
type Entry[T any] struct {
	Description string
	Before      T
	After       T
	At          time.Time
}

type History[T any] struct {
	mu     sync.Mutex
	limit  int
	done   []Entry[T]
	undone []Entry[T]
	now    func() time.Time
}

// New returns an empty history keeping at most limit entries. A
// non-positive limit means DefaultLimit.
func New[T any](limit int) *History[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History[T]{limit: limit, now: time.Now}
}

// Record pushes an edit and clears everything that could be redone.
func (h *History[T]) Record(description string, before, after T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.done = append(h.done, Entry[T]{Description: description, Before: before, After: after, At: h.now()})
	if len(h.done) > h.limit {
		h.done = h.done[len(h.done)-h.limit:]
	}
	h.undone = nil
}

// Undo steps back one edit and returns the state to restore.
func (h *History[T]) Undo() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	if len(h.done) == 0 {
		return zero, false
	}

	e := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, e)
	return e.Before, true
}

// Redo re-applies the last undone edit and returns the state to restore.
func (h *History[T]) Redo() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	if len(h.undone) == 0 {
		return zero, false
	}

	e := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, e)
	return e.After, true
}

func (h *History[T]) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.done) > 0
}

func (h *History[T]) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undone) > 0
}

// UndoDescription names the edit Undo would revert.
func (h *History[T]) UndoDescription() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.done) == 0 {
		return ""
	}
	return h.done[len(h.done)-1].Description
}

// RedoDescription names the edit Redo would re-apply.
func (h *History[T]) RedoDescription() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undone) == 0 {
		return ""
	}
	return h.undone[len(h.undone)-1].Description
}

// Len is the number of edits that can be undone.
func (h *History[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.done)
}

// Clear forgets everything.
func (h *History[T]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.done = nil
	h.undone = nil
}
