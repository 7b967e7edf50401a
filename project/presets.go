// SPDX-License-Identifier: EPL-2.0

package project

func ptr(v float64) *float64 { return &v }

// VoicePresets are the effect presets offered for Voice tracks.
var VoicePresets = []AudioPreset{
	{
		Name:       "Modern Podcast Clarity",
		Compressor: &CompressorSettings{Threshold: -24, Knee: 30, Ratio: 4, Attack: 0.003, Release: 0.25},
		Equalizer: []BiquadFilterSettings{
			{Type: HighPass, Frequency: 80, Q: ptr(1)},
			{Type: Peaking, Frequency: 3500, Q: ptr(1.5), Gain: ptr(2.5)},
			{Type: HighShelf, Frequency: 10000, Gain: ptr(1.5)},
		},
	},
	{
		Name:       "Warm Broadcast Voice",
		Compressor: &CompressorSettings{Threshold: -28, Knee: 15, Ratio: 3.5, Attack: 0.01, Release: 0.3},
		Equalizer: []BiquadFilterSettings{
			{Type: HighPass, Frequency: 70, Q: ptr(1.2)},
			{Type: LowShelf, Frequency: 200, Gain: ptr(1.5)},
			{Type: Peaking, Frequency: 2500, Q: ptr(2), Gain: ptr(-2)},
			{Type: HighShelf, Frequency: 12000, Gain: ptr(2)},
		},
	},
	{
		Name:       "Telephone Effect",
		Compressor: &CompressorSettings{Threshold: -18, Knee: 5, Ratio: 8, Attack: 0.001, Release: 0.1},
		Equalizer: []BiquadFilterSettings{
			{Type: HighPass, Frequency: 300, Q: ptr(2)},
			{Type: Peaking, Frequency: 1000, Q: ptr(1), Gain: ptr(3)},
			{Type: LowPass, Frequency: 3400, Q: ptr(2)},
		},
	},
}

// MusicPresets are offered for Music and Background tracks.
var MusicPresets = []AudioPreset{
	{
		Name: "Punchy Pop/Rock",
		Equalizer: []BiquadFilterSettings{
			{Type: LowShelf, Frequency: 120, Gain: ptr(2.5)},
			{Type: Peaking, Frequency: 500, Q: ptr(1.5), Gain: ptr(-1.5)},
			{Type: HighShelf, Frequency: 8000, Gain: ptr(3)},
		},
	},
	{
		Name: "Lofi Vibe",
		Equalizer: []BiquadFilterSettings{
			{Type: HighPass, Frequency: 50, Q: ptr(1)},
			{Type: LowPass, Frequency: 6000, Q: ptr(1.5)},
		},
	},
	{
		Name: "Ambient Background",
		Equalizer: []BiquadFilterSettings{
			{Type: HighPass, Frequency: 100, Q: ptr(1)},
			{Type: LowPass, Frequency: 10000, Q: ptr(1)},
			{Type: HighShelf, Frequency: 5000, Gain: ptr(-4)},
		},
	},
	{
		Name: "Podcast Music Bed",
		Equalizer: []BiquadFilterSettings{
			{Type: HighPass, Frequency: 100, Q: ptr(1.5)},
			{Type: Peaking, Frequency: 3000, Q: ptr(2), Gain: ptr(-6)},
			{Type: LowPass, Frequency: 12000, Q: ptr(1)},
		},
	},
}

// MasteringPreset is a named compressor for the master bus.
type MasteringPreset struct {
	Name       string             `json:"name"`
	Compressor CompressorSettings `json:"compressor"`
}

// MasteringPresets; the first entry is the default applied to exports.
var MasteringPresets = []MasteringPreset{
	{Name: "Standard Broadcast", Compressor: CompressorSettings{Threshold: -14, Knee: 10, Ratio: 4, Attack: 0.005, Release: 0.3}},
	{Name: "Subtle Glue", Compressor: CompressorSettings{Threshold: -8, Knee: 5, Ratio: 2, Attack: 0.01, Release: 0.2}},
	{Name: "Loud & Punchy", Compressor: CompressorSettings{Threshold: -18, Knee: 8, Ratio: 6, Attack: 0.002, Release: 0.15}},
}

// DefaultMastering returns a copy of the default mastering compressor.
func DefaultMastering() *CompressorSettings {
	c := MasteringPresets[0].Compressor
	return &c
}

// PresetsFor returns copies of the presets offered for a track kind. FX
// tracks have none.
func PresetsFor(kind TrackKind) []AudioPreset {
	var src []AudioPreset
	switch kind {
	case Voice:
		src = VoicePresets
	case Music, Background:
		src = MusicPresets
	default:
		return nil
	}

	out := make([]AudioPreset, len(src))
	for i, p := range src {
		out[i] = p.Clone()
	}
	return out
}

// FindPreset looks a preset up by name across all track catalogs.
func FindPreset(name string) (AudioPreset, bool) {
	for _, catalog := range [][]AudioPreset{VoicePresets, MusicPresets} {
		for _, p := range catalog {
			if p.Name == name {
				return p.Clone(), true
			}
		}
	}
	return AudioPreset{}, false
}

// FindMastering looks a mastering preset up by name.
func FindMastering(name string) (*CompressorSettings, bool) {
	for _, p := range MasteringPresets {
		if p.Name == name {
			c := p.Compressor
			return &c, true
		}
	}
	return nil, false
}
