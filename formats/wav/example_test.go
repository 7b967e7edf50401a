// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/wav"
)

func ExampleEncoder() {
	left := []float32{0, 0.5, -0.5, 1}
	right := []float32{0, -0.5, 0.5, -1}
	buf, _ := audio.NewBufferFromChannels(44100, left, right)

	data, err := wav.Encoder{}.EncodeBytes(buf)
	if err != nil {
		fmt.Println("encode error:", err)
		return
	}

	fmt.Printf("%s %d bytes\n", data[:4], len(data))
	// Output: RIFF 60 bytes
}

func ExampleDecoder() {
	buf, _ := audio.NewBufferFromChannels(16000, []float32{0.1, 0.2, 0.3, 0.4, 0.5})
	data, _ := wav.Encoder{}.EncodeBytes(buf)

	source, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Println("decode error:", err)
		return
	}

	decoded, _ := audio.Load(source, 0, 0)
	fmt.Printf("Sample rate: %d Hz\n", decoded.SampleRate())
	fmt.Printf("Channels: %d\n", decoded.Channels())
	fmt.Printf("Frames: %d\n", decoded.Frames())
	// Output:
	// Sample rate: 16000 Hz
	// Channels: 1
	// Frames: 5
}
