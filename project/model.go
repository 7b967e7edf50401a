// SPDX-License-Identifier: EPL-2.0

package project

import (
	"slices"

	"github.com/ik5/podmix/audio"
)

// Project is the editable document: tracks, the asset pool and the optional
// mastering compressor. Editing operations never mutate a Project in place;
// they return a modified copy, so a Project value can be handed to a render
// or to the history as a consistent snapshot.
type Project struct {
	Name      string              `json:"name" validate:"required"`
	Tracks    []Track             `json:"tracks" validate:"dive"`
	Files     []AudioFile         `json:"files" validate:"dive"`
	Mastering *CompressorSettings `json:"mastering,omitempty"`
}

type Track struct {
	ID               string       `json:"id" validate:"required"`
	Name             string       `json:"name"`
	Kind             TrackKind    `json:"kind" validate:"oneof=Music Background Voice FX"`
	Clips            []AudioClip  `json:"clips" validate:"dive"`
	Volume           float64      `json:"volume" validate:"gte=0,lte=1"`
	IsMuted          bool         `json:"isMuted"`
	IsSolo           bool         `json:"isSolo"`
	Effects          *AudioPreset `json:"effects,omitempty"`
	IsDuckingEnabled *bool        `json:"isDuckingEnabled,omitempty"`
}

// DuckingEnabled reports whether ducking is switched on for the track.
func (t *Track) DuckingEnabled() bool {
	return t.IsDuckingEnabled != nil && *t.IsDuckingEnabled
}

type AudioClip struct {
	ID        string  `json:"id" validate:"required"`
	FileID    string  `json:"fileId" validate:"required"`
	TrackID   string  `json:"trackId" validate:"required"`
	StartTime float64 `json:"startTime" validate:"gte=0"`
	Duration  float64 `json:"duration" validate:"gte=0"`
	Offset    float64 `json:"offset" validate:"gte=0"`
	IsLooped  bool    `json:"isLooped"`
	// NormalizationGain in dB, applied as a fixed gain on the clip's source.
	NormalizationGain *float64 `json:"normalizationGain,omitempty"`
}

// End is the project time the clip stops playing.
func (c AudioClip) End() float64 { return c.StartTime + c.Duration }

type AudioFile struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name"`
	URL      string  `json:"url"`
	Type     string  `json:"type"`
	Duration float64 `json:"duration" validate:"gte=0"`
	// Buffer is attached after decode and may be evicted; it is never persisted.
	Buffer *audio.Buffer `json:"-"`
}

type CompressorSettings struct {
	Threshold float64 `json:"threshold" validate:"gte=-100,lte=0"`
	Knee      float64 `json:"knee" validate:"gte=0,lte=40"`
	Ratio     float64 `json:"ratio" validate:"gte=1,lte=20"`
	Attack    float64 `json:"attack" validate:"gte=0,lte=1"`
	Release   float64 `json:"release" validate:"gte=0,lte=1"`
}

type FilterType string

const (
	LowShelf  FilterType = "lowshelf"
	HighShelf FilterType = "highshelf"
	Peaking   FilterType = "peaking"
	LowPass   FilterType = "lowpass"
	HighPass  FilterType = "highpass"
)

type BiquadFilterSettings struct {
	Type      FilterType `json:"type" validate:"oneof=lowshelf highshelf peaking lowpass highpass"`
	Frequency float64    `json:"frequency" validate:"gt=0"`
	Q         *float64   `json:"Q,omitempty" validate:"omitempty,gt=0"`
	// Gain in dB; only meaningful for shelves and peaking filters.
	Gain *float64 `json:"gain,omitempty" validate:"omitempty,gte=-40,lte=40"`
}

type AudioPreset struct {
	Name       string                 `json:"name"`
	Compressor *CompressorSettings    `json:"compressor,omitempty"`
	Equalizer  []BiquadFilterSettings `json:"equalizer" validate:"dive"`
}

// Clone returns a deep copy. Decoded buffers are shared, not copied.
func (p Project) Clone() Project {
	out := p
	out.Tracks = make([]Track, len(p.Tracks))
	for i, t := range p.Tracks {
		out.Tracks[i] = t.clone()
	}
	out.Files = slices.Clone(p.Files)
	if p.Mastering != nil {
		m := *p.Mastering
		out.Mastering = &m
	}
	return out
}

func (t Track) clone() Track {
	out := t
	out.Clips = make([]AudioClip, len(t.Clips))
	for i, c := range t.Clips {
		out.Clips[i] = c.clone()
	}
	if t.Effects != nil {
		e := t.Effects.Clone()
		out.Effects = &e
	}
	if t.IsDuckingEnabled != nil {
		d := *t.IsDuckingEnabled
		out.IsDuckingEnabled = &d
	}
	return out
}

func (c AudioClip) clone() AudioClip {
	if c.NormalizationGain != nil {
		g := *c.NormalizationGain
		c.NormalizationGain = &g
	}
	return c
}

// Clone returns a deep copy of the preset.
func (p AudioPreset) Clone() AudioPreset {
	out := p
	if p.Compressor != nil {
		c := *p.Compressor
		out.Compressor = &c
	}
	out.Equalizer = make([]BiquadFilterSettings, len(p.Equalizer))
	for i, f := range p.Equalizer {
		if f.Q != nil {
			q := *f.Q
			f.Q = &q
		}
		if f.Gain != nil {
			g := *f.Gain
			f.Gain = &g
		}
		out.Equalizer[i] = f
	}
	return out
}

// File finds a file by id.
func (p *Project) File(id string) (*AudioFile, bool) {
	i := slices.IndexFunc(p.Files, func(f AudioFile) bool { return f.ID == id })
	if i < 0 {
		return nil, false
	}
	return &p.Files[i], true
}

// Track finds a track by id.
func (p *Project) Track(id string) (*Track, bool) {
	i := slices.IndexFunc(p.Tracks, func(t Track) bool { return t.ID == id })
	if i < 0 {
		return nil, false
	}
	return &p.Tracks[i], true
}

// Clip finds a clip by id along with its owning track.
func (p *Project) Clip(id string) (*Track, *AudioClip, bool) {
	for ti := range p.Tracks {
		t := &p.Tracks[ti]
		for ci := range t.Clips {
			if t.Clips[ci].ID == id {
				return t, &t.Clips[ci], true
			}
		}
	}
	return nil, nil, false
}

// FileIndex maps file ids to files for quick lookup during graph builds.
func (p *Project) FileIndex() map[string]*AudioFile {
	idx := make(map[string]*AudioFile, len(p.Files))
	for i := range p.Files {
		idx[p.Files[i].ID] = &p.Files[i]
	}
	return idx
}

// ActiveFileIDs lists files referenced by at least one clip.
func (p *Project) ActiveFileIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, t := range p.Tracks {
		for _, c := range t.Clips {
			ids[c.FileID] = struct{}{}
		}
	}
	return ids
}
