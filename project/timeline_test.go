// SPDX-License-Identifier: EPL-2.0

package project

import (
	"slices"
	"testing"
)

func trackIDs(tracks []Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

func TestRenderSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tracks []Track
		want   []string
	}{
		{
			name:   "solo overrides everything",
			tracks: []Track{{ID: "A"}, {ID: "B", IsSolo: true}},
			want:   []string{"B"},
		},
		{
			name:   "solo beats mute on the same track",
			tracks: []Track{{ID: "A", IsMuted: true}, {ID: "B", IsSolo: true, IsMuted: true}},
			want:   []string{"B"},
		},
		{
			name:   "several solo tracks",
			tracks: []Track{{ID: "A", IsSolo: true}, {ID: "B"}, {ID: "C", IsSolo: true}},
			want:   []string{"A", "C"},
		},
		{
			name:   "no solo drops muted",
			tracks: []Track{{ID: "A", IsMuted: true}, {ID: "B"}},
			want:   []string{"B"},
		},
		{
			name:   "empty",
			tracks: nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := trackIDs(RenderSet(tt.tracks)); !slices.Equal(got, tt.want) {
				t.Errorf("RenderSet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandLoops(t *testing.T) {
	t.Parallel()

	looped := AudioClip{ID: "bed", StartTime: 0, Duration: 4, IsLooped: true}

	tests := []struct {
		name       string
		kind       TrackKind
		clip       AudioClip
		horizon    float64
		wantStarts []float64
		wantIDs    []string
	}{
		{
			name:       "repeats while start is before horizon",
			kind:       Music,
			clip:       looped,
			horizon:    10,
			wantStarts: []float64{0, 4, 8},
			wantIDs:    []string{"bed-loop-0", "bed-loop-4", "bed-loop-8"},
		},
		{
			name:       "exact multiple stops at horizon",
			kind:       Background,
			clip:       looped,
			horizon:    8,
			wantStarts: []float64{0, 4},
		},
		{
			name:       "fractional start ids",
			kind:       Music,
			clip:       AudioClip{ID: "c", StartTime: 1.5, Duration: 2, IsLooped: true},
			horizon:    5,
			wantStarts: []float64{1.5, 3.5},
			wantIDs:    []string{"c-loop-1.5", "c-loop-3.5"},
		},
		{
			name:       "voice tracks never loop",
			kind:       Voice,
			clip:       looped,
			horizon:    10,
			wantStarts: []float64{0},
			wantIDs:    []string{"bed"},
		},
		{
			name:       "zero duration is not expanded",
			kind:       Music,
			clip:       AudioClip{ID: "z", IsLooped: true},
			horizon:    10,
			wantStarts: []float64{0},
			wantIDs:    []string{"z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			track := &Track{ID: "t", Kind: tt.kind}
			reps := ExpandLoops(track, tt.clip, tt.horizon)

			var starts []float64
			var ids []string
			for _, r := range reps {
				starts = append(starts, r.StartTime)
				ids = append(ids, r.ID)
				if r.Offset != tt.clip.Offset || r.Duration != tt.clip.Duration || r.FileID != tt.clip.FileID {
					t.Errorf("repetition %s differs from the clip beyond start and id", r.ID)
				}
			}
			if !slices.Equal(starts, tt.wantStarts) {
				t.Errorf("starts = %v, want %v", starts, tt.wantStarts)
			}
			if tt.wantIDs != nil && !slices.Equal(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	t.Parallel()

	tracks := []Track{
		{ID: "m", Kind: Music, Clips: []AudioClip{{ID: "bed", Duration: 4, IsLooped: true}}},
		{ID: "v", Kind: Voice, Clips: []AudioClip{{ID: "talk", StartTime: 2, Duration: 8}}},
	}

	if got := ContentDuration(tracks); got != 10 {
		t.Errorf("ContentDuration() = %v, want 10", got)
	}
	// The loop repetition at 8 runs to 12.
	if got := TotalDuration(tracks); got != 12 {
		t.Errorf("TotalDuration() = %v, want 12", got)
	}
	if got := TimelineDuration(tracks, 60); got != 60 {
		t.Errorf("TimelineDuration() = %v, want 60", got)
	}
	if got := TotalDuration([]Track{{ID: "empty"}}); got != 0 {
		t.Errorf("TotalDuration(empty) = %v, want 0", got)
	}
	if got := TotalDuration(tracks[:1]); got != 4 {
		t.Errorf("TotalDuration(loop only) = %v, want 4", got)
	}
}
