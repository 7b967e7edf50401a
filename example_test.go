// SPDX-License-Identifier: EPL-2.0

package podmix_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/podmix"
	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/config"
	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/project"
)

// Example_mixdown exports a one clip project to WAV.
func Example_mixdown() {
	dir, err := os.MkdirTemp("", "podmix")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	// One second of a quiet tone at 8kHz.
	tone := make([]float32, 8000)
	for i := range tone {
		tone[i] = 0.1
	}
	buf, _ := audio.NewBufferFromChannels(8000, tone)
	var src bytes.Buffer
	_ = wav.Encoder{}.Encode(&src, buf)
	path := filepath.Join(dir, "intro.wav")
	_ = os.WriteFile(path, src.Bytes(), 0o600)

	p := project.New("episode 1")
	p = p.AddFile(project.AudioFile{ID: "intro", Name: "intro.wav", URL: path, Duration: 1})
	p, _, _ = p.AddClip("track-voice-1", project.AudioClip{FileID: "intro", Duration: 1})

	cfg := config.Default()
	cfg.Engine.SampleRate = 8000
	eng, err := podmix.New(cfg, nil, nil)
	if err != nil {
		fmt.Println(err)
		return
	}

	var out bytes.Buffer
	if err := eng.Mixdown(context.Background(), p, &out); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d bytes of stereo WAV\n", out.Len())
	// Output: 32044 bytes of stereo WAV
}
