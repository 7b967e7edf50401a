// SPDX-License-Identifier: EPL-2.0

package project

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/ik5/podmix/audio"
)

// boundsEpsilon absorbs float noise when comparing clip ends to file lengths.
const boundsEpsilon = 1e-9

// New creates an empty project with the default track layout.
func New(name string) Project {
	return Project{Name: name, Tracks: DefaultTracks(), Files: []AudioFile{}}
}

// DefaultTracks is the layout of a new project: one track of each kind.
func DefaultTracks() []Track {
	kinds := []struct {
		id, name string
		kind     TrackKind
	}{
		{"track-music", "Music", Music},
		{"track-background", "Background", Background},
		{"track-voice-1", "Voice 1", Voice},
		{"track-fx", "Sound FX", FX},
	}

	tracks := make([]Track, 0, len(kinds))
	for _, k := range kinds {
		t := Track{ID: k.id, Name: k.name, Kind: k.kind, Clips: []AudioClip{}, Volume: k.kind.DefaultVolume()}
		if k.kind.Bed() {
			t.IsDuckingEnabled = boolPtr(true)
		}
		tracks = append(tracks, t)
	}
	return tracks
}

func boolPtr(v bool) *bool { return &v }

// ClampClip fixes a clip so it never reads outside its file: the offset is
// kept within the file and the duration shortened to what remains. A
// non-positive fileDuration means the length is unknown and only negative
// values are corrected.
func ClampClip(c AudioClip, fileDuration float64) AudioClip {
	c.StartTime = max(c.StartTime, 0)
	c.Offset = max(c.Offset, 0)
	c.Duration = max(c.Duration, 0)

	if fileDuration > 0 {
		c.Offset = min(c.Offset, fileDuration)
		c.Duration = min(c.Duration, fileDuration-c.Offset)
	}
	return c
}

// CheckClipBounds returns ErrInvalidClipBounds when c reads past fileDuration.
func CheckClipBounds(c AudioClip, fileDuration float64) error {
	if c.StartTime < 0 || c.Offset < 0 || c.Duration < 0 {
		return fmt.Errorf("clip %s: negative time: %w", c.ID, ErrInvalidClipBounds)
	}
	if fileDuration > 0 && c.Offset+c.Duration > fileDuration+boundsEpsilon {
		return fmt.Errorf("clip %s: %.3fs+%.3fs > %.3fs: %w", c.ID, c.Offset, c.Duration, fileDuration, ErrInvalidClipBounds)
	}
	return nil
}

// AddTrack appends a new track of kind with that kind's defaults.
func (p Project) AddTrack(kind TrackKind) (Project, Track) {
	out := p.Clone()

	n := 0
	for _, t := range out.Tracks {
		if t.Kind == kind {
			n++
		}
	}

	t := Track{
		ID:     uuid.NewString(),
		Name:   fmt.Sprintf("%s %d", kind.defaultName(), n+1),
		Kind:   kind,
		Clips:  []AudioClip{},
		Volume: kind.addedVolume(),
	}
	if kind.Bed() {
		t.IsDuckingEnabled = boolPtr(true)
	}

	out.Tracks = append(out.Tracks, t)
	return out, t
}

// RemoveTrack deletes a track and its clips.
func (p Project) RemoveTrack(id string) (Project, error) {
	out := p.Clone()
	i := slices.IndexFunc(out.Tracks, func(t Track) bool { return t.ID == id })
	if i < 0 {
		return p, fmt.Errorf("track %s: %w", id, ErrNotFound)
	}
	out.Tracks = slices.Delete(out.Tracks, i, i+1)
	return out, nil
}

// UpdateTrack applies fn to a copy of the track. The volume is clamped to
// [0, 1] and clip back-references follow any id change.
func (p Project) UpdateTrack(id string, fn func(*Track)) (Project, error) {
	out := p.Clone()
	t, ok := out.Track(id)
	if !ok {
		return p, fmt.Errorf("track %s: %w", id, ErrNotFound)
	}

	fn(t)
	t.Volume = min(max(t.Volume, 0), 1)
	for i := range t.Clips {
		t.Clips[i].TrackID = t.ID
	}
	return out, nil
}

// SetEffects replaces the effect preset of a track; nil removes it.
func (p Project) SetEffects(trackID string, preset *AudioPreset) (Project, error) {
	return p.UpdateTrack(trackID, func(t *Track) {
		if preset == nil {
			t.Effects = nil
			return
		}
		e := preset.Clone()
		t.Effects = &e
	})
}

// SetMastering replaces the master bus compressor; nil removes it.
func (p Project) SetMastering(c *CompressorSettings) Project {
	out := p.Clone()
	if c == nil {
		out.Mastering = nil
		return out
	}
	m := *c
	out.Mastering = &m
	return out
}

// AddFile adds f to the asset pool, replacing a file with the same id.
func (p Project) AddFile(f AudioFile) Project {
	out := p.Clone()
	if i := slices.IndexFunc(out.Files, func(x AudioFile) bool { return x.ID == f.ID }); i >= 0 {
		out.Files[i] = f
		return out
	}
	out.Files = append(out.Files, f)
	return out
}

// RemoveFile deletes a file and every clip that plays it.
func (p Project) RemoveFile(id string) (Project, error) {
	out := p.Clone()
	i := slices.IndexFunc(out.Files, func(f AudioFile) bool { return f.ID == id })
	if i < 0 {
		return p, fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	out.Files = slices.Delete(out.Files, i, i+1)

	for ti := range out.Tracks {
		t := &out.Tracks[ti]
		t.Clips = slices.DeleteFunc(t.Clips, func(c AudioClip) bool { return c.FileID == id })
	}
	return out, nil
}

// AttachBuffer stores a decoded buffer on a file and makes its duration
// authoritative.
func (p Project) AttachBuffer(fileID string, buf *audio.Buffer) (Project, error) {
	out := p.Clone()
	f, ok := out.File(fileID)
	if !ok {
		return p, fmt.Errorf("file %s: %w", fileID, ErrNotFound)
	}
	f.Buffer = buf
	if buf != nil {
		f.Duration = buf.Duration()
	}
	return out, nil
}

// EvictBuffer drops the decoded buffer of a file, keeping its duration.
func (p Project) EvictBuffer(fileID string) (Project, error) {
	out := p.Clone()
	f, ok := out.File(fileID)
	if !ok {
		return p, fmt.Errorf("file %s: %w", fileID, ErrNotFound)
	}
	f.Buffer = nil
	return out, nil
}

// AddClip places a clip on a track. An empty id is filled with a new uuid
// and the clip is clamped to its file.
func (p Project) AddClip(trackID string, c AudioClip) (Project, AudioClip, error) {
	out := p.Clone()
	t, ok := out.Track(trackID)
	if !ok {
		return p, AudioClip{}, fmt.Errorf("track %s: %w", trackID, ErrNotFound)
	}
	f, ok := out.File(c.FileID)
	if !ok {
		return p, AudioClip{}, fmt.Errorf("file %s: %w", c.FileID, ErrNotFound)
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.TrackID = t.ID
	c = ClampClip(c, f.Duration)

	t.Clips = append(t.Clips, c)
	return out, c, nil
}

// RemoveClip deletes a clip.
func (p Project) RemoveClip(id string) (Project, error) {
	out := p.Clone()
	t, _, ok := out.Clip(id)
	if !ok {
		return p, fmt.Errorf("clip %s: %w", id, ErrNotFound)
	}
	t.Clips = slices.DeleteFunc(t.Clips, func(c AudioClip) bool { return c.ID == id })
	return out, nil
}

// MoveClip sets a clip's start time (clamped at zero) and, when toTrackID is
// not empty, moves it to that track.
func (p Project) MoveClip(id, toTrackID string, start float64) (Project, error) {
	out := p.Clone()
	from, c, ok := out.Clip(id)
	if !ok {
		return p, fmt.Errorf("clip %s: %w", id, ErrNotFound)
	}

	moved := *c
	moved.StartTime = max(start, 0)

	if toTrackID == "" || toTrackID == from.ID {
		*c = moved
		return out, nil
	}

	to, ok := out.Track(toTrackID)
	if !ok {
		return p, fmt.Errorf("track %s: %w", toTrackID, ErrNotFound)
	}
	from.Clips = slices.DeleteFunc(from.Clips, func(x AudioClip) bool { return x.ID == id })
	moved.TrackID = to.ID
	to.Clips = append(to.Clips, moved)
	return out, nil
}

// TrimClip sets a clip's start, duration and source offset, clamped to the
// clip's file.
func (p Project) TrimClip(id string, start, duration, offset float64) (Project, error) {
	out := p.Clone()
	_, c, ok := out.Clip(id)
	if !ok {
		return p, fmt.Errorf("clip %s: %w", id, ErrNotFound)
	}

	var fileDuration float64
	if f, ok := out.File(c.FileID); ok {
		fileDuration = f.Duration
	}

	c.StartTime, c.Duration, c.Offset = start, duration, offset
	*c = ClampClip(*c, fileDuration)
	return out, nil
}

// SplitClip cuts a clip at project time at. The left part keeps the id; the
// right part gets a new one and starts reading where the left part stops.
func (p Project) SplitClip(id string, at float64) (Project, AudioClip, AudioClip, error) {
	out := p.Clone()
	t, c, ok := out.Clip(id)
	if !ok {
		return p, AudioClip{}, AudioClip{}, fmt.Errorf("clip %s: %w", id, ErrNotFound)
	}
	if at <= c.StartTime || at >= c.End() {
		return p, AudioClip{}, AudioClip{}, fmt.Errorf("clip %s at %.3fs: %w", id, at, ErrInvalidSplit)
	}

	cut := at - c.StartTime
	right := c.clone()
	right.ID = uuid.NewString()
	right.StartTime = at
	right.Offset = c.Offset + cut
	right.Duration = c.Duration - cut

	c.Duration = cut
	left := *c

	i := slices.IndexFunc(t.Clips, func(x AudioClip) bool { return x.ID == id })
	t.Clips = slices.Insert(t.Clips, i+1, right)
	return out, left, right, nil
}

// SetLooped switches looping of a clip.
func (p Project) SetLooped(id string, looped bool) (Project, error) {
	out := p.Clone()
	_, c, ok := out.Clip(id)
	if !ok {
		return p, fmt.Errorf("clip %s: %w", id, ErrNotFound)
	}
	c.IsLooped = looped
	return out, nil
}

// SetNormalizationGain sets the per-clip gain in dB; nil removes it.
func (p Project) SetNormalizationGain(id string, gainDB *float64) (Project, error) {
	out := p.Clone()
	_, c, ok := out.Clip(id)
	if !ok {
		return p, fmt.Errorf("clip %s: %w", id, ErrNotFound)
	}
	if gainDB == nil {
		c.NormalizationGain = nil
	} else {
		c.NormalizationGain = ptr(*gainDB)
	}
	return out, nil
}

// NormalizeClip computes the gain that brings the clip's file to full scale
// and stores it on the clip. The file must be hydrated.
func (p Project) NormalizeClip(id string) (Project, error) {
	_, c, ok := p.Clip(id)
	if !ok {
		return p, fmt.Errorf("clip %s: %w", id, ErrNotFound)
	}
	f, ok := p.File(c.FileID)
	if !ok || f.Buffer == nil {
		return p, fmt.Errorf("buffer for file %s: %w", c.FileID, ErrNotFound)
	}

	gain := f.Buffer.NormalizationGain(1)
	return p.SetNormalizationGain(id, &gain)
}
