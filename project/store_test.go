// SPDX-License-Identifier: EPL-2.0

package project

import (
	"errors"
	"sync"
	"testing"

	"github.com/ik5/podmix/audio"
)

func TestStore_UndoRedo(t *testing.T) {
	t.Parallel()

	s := NewStore(fixture(), nil, nil)

	var kinds []ChangeKind
	cancel := s.Subscribe(func(c Change) { kinds = append(kinds, c.Kind) })

	err := s.Update("Move clip", func(p Project) (Project, error) {
		return p.MoveClip("c1", "", 9)
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.History().UndoDescription(); got != "Move clip" {
		t.Errorf("UndoDescription() = %q", got)
	}

	if !s.Undo() {
		t.Fatal("Undo() = false")
	}
	snap := s.Snapshot()
	if _, c, _ := snap.Clip("c1"); c.StartTime != 5 {
		t.Errorf("after undo start = %v, want 5", c.StartTime)
	}

	if !s.Redo() {
		t.Fatal("Redo() = false")
	}
	snap = s.Snapshot()
	if _, c, _ := snap.Clip("c1"); c.StartTime != 9 {
		t.Errorf("after redo start = %v, want 9", c.StartTime)
	}
	if s.Redo() {
		t.Error("Redo() past the end = true")
	}

	cancel()
	_ = s.Update("noop", func(p Project) (Project, error) { return p, nil })

	want := []ChangeKind{Edited, Undone, Redone}
	if len(kinds) != len(want) {
		t.Fatalf("changes = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("change %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestStore_RejectedEdit(t *testing.T) {
	t.Parallel()

	s := NewStore(fixture(), nil, nil)
	boom := errors.New("boom")

	if err := s.Update("fail", func(p Project) (Project, error) { return p, boom }); !errors.Is(err, boom) {
		t.Errorf("Update() = %v, want boom", err)
	}
	if s.History().CanUndo() {
		t.Error("failed edit was recorded")
	}
}

func TestStore_UndoKeepsBuffers(t *testing.T) {
	t.Parallel()

	s := NewStore(fixture(), nil, nil)
	_ = s.Update("Move clip", func(p Project) (Project, error) {
		return p.MoveClip("c1", "", 1)
	})

	buf, _ := audio.NewBufferFromChannels(10, make([]float32, 100))
	err := s.Patch("hydrate", func(p Project) (Project, error) {
		return p.AttachBuffer("f1", buf)
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.History().Len() != 1 {
		t.Errorf("Patch() recorded history: len %d", s.History().Len())
	}

	s.Undo()
	snap := s.Snapshot()
	if f, _ := snap.File("f1"); f.Buffer != buf {
		t.Error("undo dropped the decoded buffer")
	}
}

func TestStore_Replace(t *testing.T) {
	t.Parallel()

	s := NewStore(fixture(), nil, nil)
	_ = s.Update("Loop", func(p Project) (Project, error) { return p.SetLooped("c1", true) })
	s.Replace(New("other"))

	if s.History().CanUndo() || s.Snapshot().Name != "other" {
		t.Error("Replace() kept history or document")
	}
}

func TestStore_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewStore(New("x"), nil, nil)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update("add track", func(p Project) (Project, error) {
				out, _ := p.AddTrack(FX)
				return out, nil
			})
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	if got := len(s.Snapshot().Tracks); got != 4+16 {
		t.Errorf("tracks = %d, want %d", got, 20)
	}
}
