// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/internal/audiotest"
	"github.com/ik5/podmix/project"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func saveProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	var b bytes.Buffer
	if err := (wav.Encoder{}).Encode(&b, audiotest.ConstantBuffer(t, 8000, 1, 1, 0.25)); err != nil {
		t.Fatal(err)
	}
	audio := filepath.Join(dir, "talk.wav")
	if err := os.WriteFile(audio, b.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	p := project.New("cli")
	p = p.AddFile(project.AudioFile{ID: "talk", Name: "talk.wav", URL: audio, Duration: 1})
	p, _, err := p.AddClip("track-voice-1", project.AudioClip{ID: "c1", FileID: "talk", StartTime: 0.5, Duration: 1})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "cli.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close() //nolint:errcheck
	if err := project.Save(f, p); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPresets(t *testing.T) {
	out, err := run(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Modern Podcast Clarity", "Standard Broadcast", "(default)"} {
		if !strings.Contains(out, want) {
			t.Errorf("presets output lacks %q:\n%s", want, out)
		}
	}
}

func TestValidate(t *testing.T) {
	path := saveProject(t)
	out, err := run(t, "validate", path)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok, 4 tracks, 1 files, 1.50s") {
		t.Errorf("validate output = %q", out)
	}

	if _, err := run(t, "validate", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("validate of a missing file succeeded")
	}
}

func TestRender(t *testing.T) {
	path := saveProject(t)
	output := filepath.Join(t.TempDir(), "mix.wav")

	t.Setenv("PODMIX_ENGINE_SAMPLE_RATE", "8000")
	out, err := run(t, "render", path, "-o", output, "--mastering", "Subtle Glue")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}

	info, err := os.Stat(output)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(44 + 12000*4); info.Size() != want {
		t.Errorf("mix is %d bytes, want %d", info.Size(), want)
	}

	if _, err := run(t, "render", path, "-o", output, "--mastering", "Nope"); err == nil {
		t.Error("render accepted an unknown mastering preset")
	}
	if _, err := run(t, "render", path, "-o", output, "--track", "track-music"); err == nil {
		t.Error("render of a track without clips succeeded")
	}
}
