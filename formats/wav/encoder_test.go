// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/podmix/audio"
)

func TestEncoder_Header(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(44100, 2, 10)
	data, err := Encoder{}.EncodeBytes(buf)
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}

	if len(data) != 44+10*2*2 {
		t.Fatalf("len = %d, want %d", len(data), 44+40)
	}

	tests := []struct {
		name string
		got  uint32
		want uint32
	}{
		{name: "riff size", got: binary.LittleEndian.Uint32(data[4:8]), want: 36 + 40},
		{name: "fmt size", got: binary.LittleEndian.Uint32(data[16:20]), want: 16},
		{name: "format", got: uint32(binary.LittleEndian.Uint16(data[20:22])), want: 1},
		{name: "channels", got: uint32(binary.LittleEndian.Uint16(data[22:24])), want: 2},
		{name: "sample rate", got: binary.LittleEndian.Uint32(data[24:28]), want: 44100},
		{name: "byte rate", got: binary.LittleEndian.Uint32(data[28:32]), want: 44100 * 4},
		{name: "block align", got: uint32(binary.LittleEndian.Uint16(data[32:34])), want: 4},
		{name: "bits", got: uint32(binary.LittleEndian.Uint16(data[34:36])), want: 16},
		{name: "data size", got: binary.LittleEndian.Uint32(data[40:44]), want: 40},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}

	for _, tag := range []struct {
		at   int
		want string
	}{{0, "RIFF"}, {8, "WAVE"}, {12, "fmt "}, {36, "data"}} {
		if got := string(data[tag.at : tag.at+4]); got != tag.want {
			t.Errorf("tag at %d = %q, want %q", tag.at, got, tag.want)
		}
	}
}

func TestEncoder_SamplesInterleavedAndClamped(t *testing.T) {
	t.Parallel()

	left := []float32{-1, 0.5, 2}
	right := []float32{1, -0.5, -3}
	buf, _ := audio.NewBufferFromChannels(8000, left, right)

	data, err := Encoder{}.EncodeBytes(buf)
	if err != nil {
		t.Fatal(err)
	}

	want := []int16{-32768, 32767, 16383, -16384, 32767, -32768}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(data[44+2*i:]))
		if got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}
}

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	frames := 10000
	left := make([]float32, frames)
	right := make([]float32, frames)
	for i := range frames {
		left[i] = float32(i%200)/200 - 0.5
		right[i] = -left[i]
	}
	buf, _ := audio.NewBufferFromChannels(22050, left, right)

	data, err := Encoder{}.EncodeBytes(buf)
	if err != nil {
		t.Fatal(err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := audio.Load(src, 0, 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got.Frames() != frames || got.Channels() != 2 || got.SampleRate() != 22050 {
		t.Fatalf("round trip = %d frames %d ch %d Hz", got.Frames(), got.Channels(), got.SampleRate())
	}
	for i := range frames {
		if d := got.Channel(0)[i] - left[i]; d > 1.0/16384 || d < -1.0/16384 {
			t.Fatalf("frame %d = %v, want ≈%v", i, got.Channel(0)[i], left[i])
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncoder_WriteError(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(8000, 1, 4)
	if err := (Encoder{}).Encode(failingWriter{}, buf); err == nil {
		t.Error("Encode() error = nil, want write failure")
	}
}

func BenchmarkEncoder_Encode(b *testing.B) {
	buf, _ := audio.NewBuffer(44100, 2, 44100)
	var out bytes.Buffer

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		out.Reset()
		_ = Encoder{}.Encode(&out, buf)
	}
}
