// SPDX-License-Identifier: EPL-2.0

package project

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ik5/podmix/audio"
)

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBufferFromChannels(8000, make([]float32, 80000))
	p := fixture()
	p, _ = p.AttachBuffer("f1", buf)
	p, _ = p.SetEffects("track-voice-1", &VoicePresets[0])
	p = p.SetMastering(DefaultMastering())

	var out bytes.Buffer
	if err := Save(&out, p); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"kind": "Voice"`, `"isDuckingEnabled": true`, `"fileId": "f1"`, `"Q": 1`} {
		if !strings.Contains(out.String(), key) {
			t.Errorf("saved project lacks %s", key)
		}
	}

	got, err := Load(&out)
	if err != nil {
		t.Fatal(err)
	}

	f, ok := got.File("f1")
	if !ok || f.Buffer != nil || f.Duration != 10 {
		t.Errorf("loaded file = %+v, want no buffer and duration 10", f)
	}
	tr, _ := got.Track("track-voice-1")
	if tr.Effects == nil || tr.Effects.Name != VoicePresets[0].Name || len(tr.Effects.Equalizer) != 3 {
		t.Errorf("effects = %+v", tr.Effects)
	}
	if got.Mastering == nil || *got.Mastering != *DefaultMastering() {
		t.Errorf("mastering = %+v", got.Mastering)
	}
	if err := Validate(&got); err != nil {
		t.Errorf("Validate(loaded) = %v", err)
	}
}

func TestLoad_Normalizes(t *testing.T) {
	t.Parallel()

	p, err := Load(strings.NewReader(`{"name":"bare","tracks":[{"id":"t","kind":"Voice","volume":1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if p.Files == nil || p.Tracks[0].Clips == nil {
		t.Error("Load() left nil slices")
	}

	if _, err := Load(strings.NewReader(`{"name":`)); err == nil {
		t.Error("Load(truncated) = nil error")
	}
}
