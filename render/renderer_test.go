// SPDX-License-Identifier: EPL-2.0

package render

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/internal/audiotest"
	"github.com/ik5/podmix/project"
)

const mixRate = 8000

// transparent is a mastering compressor that never changes the signal, so
// tests can check levels exactly.
var transparent = &project.CompressorSettings{Threshold: 0, Ratio: 1}

func testRenderer(opts ...func(*Options)) *Renderer {
	o := DefaultOptions()
	o.SampleRate = mixRate
	o.Mastering = transparent
	for _, fn := range opts {
		fn(&o)
	}
	return New(o, nil, nil)
}

// podcast is a looped 0.5 level music bed under a 2-4s voice clip at 0.25.
func podcast(t *testing.T) project.Project {
	t.Helper()

	p := project.New("test")
	p = p.AddFile(project.AudioFile{ID: "bed", Name: "bed.wav"})
	p = p.AddFile(project.AudioFile{ID: "talk", Name: "talk.wav"})
	p, _ = p.AttachBuffer("bed", audiotest.ConstantBuffer(t, mixRate, 1, 4, 0.5))
	p, _ = p.AttachBuffer("talk", audiotest.ConstantBuffer(t, mixRate, 1, 2, 0.25))

	var err error
	if p, _, err = p.AddClip("track-music", project.AudioClip{ID: "bed", FileID: "bed", Duration: 4, IsLooped: true}); err != nil {
		t.Fatal(err)
	}
	if p, _, err = p.AddClip("track-voice-1", project.AudioClip{ID: "talk", FileID: "talk", StartTime: 2, Duration: 2}); err != nil {
		t.Fatal(err)
	}
	p, _ = p.UpdateTrack("track-music", func(tr *project.Track) { tr.Volume = 1 })
	return p
}

func at(buf [][]float32, seconds float64) float32 {
	return buf[0][int(seconds*mixRate)]
}

func channels(t *testing.T, r *Renderer, p project.Project, filter Filter) [][]float32 {
	t.Helper()

	buf, err := r.Render(context.Background(), p, filter)
	if err != nil {
		t.Fatal(err)
	}
	return [][]float32{buf.Channel(0), buf.Channel(1)}
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    project.Project
	}{
		{"default tracks without clips", project.New("empty")},
		{"no tracks", project.Project{Name: "bare"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := testRenderer().Render(context.Background(), tt.p, nil)
			if !errors.Is(err, ErrEmptyProject) || buf != nil {
				t.Errorf("Render() = %v, %v, want ErrEmptyProject", buf, err)
			}
		})
	}

	// Every clip sits on a muted track.
	p := podcast(t)
	for _, id := range []string{"track-music", "track-voice-1"} {
		p, _ = p.UpdateTrack(id, func(tr *project.Track) { tr.IsMuted = true })
	}
	if _, err := testRenderer().Render(context.Background(), p, nil); !errors.Is(err, ErrEmptyProject) {
		t.Errorf("Render(all muted) = %v, want ErrEmptyProject", err)
	}
}

func TestRender_Unsupported(t *testing.T) {
	t.Parallel()

	for _, opt := range []func(*Options){
		func(o *Options) { o.SampleRate = 4000 },
		func(o *Options) { o.SampleRate = 384000 },
		func(o *Options) { o.Channels = 1 },
	} {
		r := testRenderer(opt)
		if err := r.Check(); !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("Check() = %v, want ErrUnsupportedPlatform", err)
		}
		if _, err := r.Render(context.Background(), project.New("x"), nil); !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("Render() = %v, want ErrUnsupportedPlatform before the empty check", err)
		}
	}
}

func TestRender_Length(t *testing.T) {
	t.Parallel()

	p := podcast(t)
	p, _ = p.SetLooped("bed", false)
	p, _ = p.MoveClip("talk", "", 2.0001)

	buf, err := testRenderer().Render(context.Background(), p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := int(math.Ceil(4.0001 * mixRate)); buf.Frames() != want {
		t.Errorf("Frames() = %d, want %d", buf.Frames(), want)
	}
	if buf.Channels() != 2 || buf.SampleRate() != mixRate {
		t.Errorf("layout = %d ch @ %d Hz", buf.Channels(), buf.SampleRate())
	}
}

func TestRender_DuckingAndLoops(t *testing.T) {
	t.Parallel()

	p := podcast(t)
	// Mute the voice so only the bed is heard; it still ducks the bed.
	p, _ = p.UpdateTrack("track-voice-1", func(tr *project.Track) { tr.IsMuted = true })

	out := channels(t, testRenderer(), p, nil)

	// The content runs to 4s, so the bed plays once; the voice ends at 4s and
	// the release would finish at 4.5s, past the end of the render.
	if len(out[0]) != 4*mixRate {
		t.Fatalf("frames = %d, want %d", len(out[0]), 4*mixRate)
	}

	tests := []struct {
		at   float64
		want float64
	}{
		{1, 0.5},
		{2.025, 0.3},
		{3, 0.1},
		{3.99, 0.1},
	}
	for _, tt := range tests {
		for c := range out {
			if got := float64(at([][]float32{out[c]}, tt.at)); math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("channel %d at %vs = %v, want %v", c, tt.at, got, tt.want)
			}
		}
	}
}

func TestRender_LoopFillsTimeline(t *testing.T) {
	t.Parallel()

	p := podcast(t)
	p, _ = p.MoveClip("talk", "", 7)
	p, _ = p.UpdateTrack("track-music", func(tr *project.Track) { tr.IsDuckingEnabled = nil })

	out := channels(t, testRenderer(), p, func(tracks []project.Track) []project.Track {
		return tracks[:1]
	})

	// Content ends at 9s: the bed repeats at 0, 4 and 8, the last one
	// running to 12s.
	if len(out[0]) != 12*mixRate {
		t.Fatalf("frames = %d, want %d", len(out[0]), 12*mixRate)
	}
	for _, sec := range []float64{0.5, 4.5, 8.5, 11.9} {
		if got := at(out, sec); got != 0.5 {
			t.Errorf("at %vs = %v, want 0.5", sec, got)
		}
	}
}

func TestRender_Solo(t *testing.T) {
	t.Parallel()

	p := podcast(t)
	p, _ = p.UpdateTrack("track-voice-1", func(tr *project.Track) { tr.IsSolo = true })

	out := channels(t, testRenderer(), p, nil)
	if got := at(out, 1); got != 0 {
		t.Errorf("music audible while voice is solo: %v", got)
	}
	if got := at(out, 3); got != 0.25 {
		t.Errorf("voice at 3s = %v, want 0.25", got)
	}
}

func TestRender_DefaultMastering(t *testing.T) {
	t.Parallel()

	p := podcast(t)
	r := New(Options{SampleRate: mixRate, Channels: 2}, nil, nil)

	bare := channels(t, r, p, nil)
	mastered := channels(t, r, p.SetMastering(project.DefaultMastering()), nil)
	glue, _ := project.FindMastering("Subtle Glue")
	other := channels(t, r, p.SetMastering(glue), nil)

	differs := false
	for i := range bare[0] {
		if bare[0][i] != mastered[0][i] {
			t.Fatalf("frame %d: %v without mastering, %v with the default", i, bare[0][i], mastered[0][i])
		}
		if bare[0][i] != other[0][i] {
			differs = true
		}
	}
	if !differs {
		t.Error("a different mastering preset changed nothing")
	}
}

func TestRender_SkipsUndecoded(t *testing.T) {
	t.Parallel()

	p := podcast(t)
	p, _ = p.EvictBuffer("talk")

	out := channels(t, testRenderer(), p, nil)
	if got := at(out, 3); got != 0.1 {
		t.Errorf("at 3s = %v, want the ducked bed alone", got)
	}
}

// A render started mid-project must produce the tail of the full render.
func TestRender_SeekMatchesOffline(t *testing.T) {
	t.Parallel()

	p := podcast(t)
	r := testRenderer()
	full := channels(t, r, p, nil)

	const seek = 2.5
	n, _, err := r.Compile(p, project.RenderSet(p.Tracks), seek)
	if err != nil {
		t.Fatal(err)
	}

	skip := int(seek * mixRate)
	tail := make([]float32, len(full[0])-skip)
	n.Process([][]float32{tail, make([]float32, len(tail))})

	for i, v := range tail {
		if math.Abs(float64(v-full[0][skip+i])) > 1e-6 {
			t.Fatalf("frame %d: seek render %v, offline %v", skip+i, v, full[0][skip+i])
		}
	}
}

func TestRender_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := testRenderer().Render(ctx, podcast(t), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() = %v, want context.Canceled", err)
	}
}

func TestRender_LeavesProjectAlone(t *testing.T) {
	t.Parallel()

	p := podcast(t)
	if _, err := testRenderer().Render(context.Background(), p, nil); err != nil {
		t.Fatal(err)
	}
	if p.Mastering != nil {
		t.Error("Render() set mastering on the caller's project")
	}
}

func TestExport(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := Export(context.Background(), testRenderer(), podcast(t), wav.Encoder{}, &out); err != nil {
		t.Fatal(err)
	}

	frames := 4 * mixRate
	if out.Len() != 44+frames*2*2 {
		t.Errorf("wav size = %d, want %d", out.Len(), 44+frames*4)
	}
	if got := binary.LittleEndian.Uint32(out.Bytes()[40:44]); got != uint32(frames*4) {
		t.Errorf("data chunk size = %d", got)
	}

	if err := Export(context.Background(), testRenderer(), project.New("empty"), wav.Encoder{}, &out); !errors.Is(err, ErrEmptyProject) {
		t.Errorf("Export(empty) = %v", err)
	}
}
