// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/utils"
)

const headerSize = 44

// Encoder writes canonical 16-bit PCM WAV: a 44-byte RIFF header followed by
// interleaved little-endian samples. It implements audio.Encoder.
type Encoder struct{}

// Encode writes buf as WAV. Samples are clamped to [-1, 1] and converted with
// utils.Float32ToInt16.
func (Encoder) Encode(w io.Writer, buf *audio.Buffer) error {
	channels := buf.Channels()
	if channels == 0 {
		return ErrEmptyBuffer
	}

	frames := buf.Frames()
	bitsPerSample := uint16(16)
	blockAlign := uint16(channels) * bitsPerSample / 8
	byteRate := uint32(buf.SampleRate()) * uint32(blockAlign)
	dataSize := uint32(frames) * uint32(blockAlign)

	header := make([]byte, headerSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(buf.SampleRate()))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	// Write in chunks of whole frames.
	const chunkFrames = 4096
	out := make([]byte, min(frames, chunkFrames)*int(blockAlign))

	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		b := out[:(end-start)*int(blockAlign)]

		i := 0
		for f := start; f < end; f++ {
			for c := range channels {
				s := utils.Float32ToInt16(buf.Channel(c)[f])
				binary.LittleEndian.PutUint16(b[i:i+2], uint16(s))
				i += 2
			}
		}

		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// EncodeBytes returns the encoded file in memory.
func (e Encoder) EncodeBytes(buf *audio.Buffer) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(headerSize + buf.Frames()*buf.Channels()*2)

	if err := e.Encode(&out, buf); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
