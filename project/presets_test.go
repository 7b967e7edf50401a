// SPDX-License-Identifier: EPL-2.0

package project

import "testing"

func TestPresetsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind TrackKind
		want int
	}{
		{Voice, len(VoicePresets)},
		{Music, len(MusicPresets)},
		{Background, len(MusicPresets)},
		{FX, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()

			if got := PresetsFor(tt.kind); len(got) != tt.want {
				t.Errorf("PresetsFor(%s) = %d presets, want %d", tt.kind, len(got), tt.want)
			}
		})
	}
}

func TestFindPreset(t *testing.T) {
	t.Parallel()

	p, ok := FindPreset("Telephone Effect")
	if !ok || p.Compressor == nil || p.Compressor.Ratio != 8 {
		t.Fatalf("FindPreset() = %+v, %v", p, ok)
	}
	p.Compressor.Ratio = 1
	if VoicePresets[2].Compressor.Ratio != 8 {
		t.Error("FindPreset() returned shared state")
	}

	if _, ok := FindPreset("nope"); ok {
		t.Error("FindPreset(unknown) = true")
	}

	m, ok := FindMastering("Subtle Glue")
	if !ok || m.Threshold != -8 {
		t.Errorf("FindMastering() = %+v, %v", m, ok)
	}
	if d := DefaultMastering(); d.Threshold != -14 || d.Ratio != 4 {
		t.Errorf("DefaultMastering() = %+v", d)
	}
}
