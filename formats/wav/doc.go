// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV decoding and the canonical WAV encoder used for
// rendered mixes.
//
// Decoding uses github.com/go-audio/wav and accepts integer PCM at 8, 16,
// 24 or 32 bits, any channel count and any sample rate:
//
//	source, err := wav.Decoder{}.Decode(file)
//	buf, err := audio.Load(source, 44100, 2)
//
// # Encoding
//
// Encoder implements audio.Encoder. The output is always 16-bit PCM with a
// 44-byte header:
//
//	offset  size  field
//	0       4     "RIFF"
//	4       4     36 + data size
//	8       4     "WAVE"
//	12      4     "fmt "
//	16      4     16
//	20      2     1 (PCM)
//	22      2     channels
//	24      4     sample rate
//	28      4     byte rate
//	32      2     block align
//	34      2     16
//	36      4     "data"
//	40      4     data size
//
// Samples follow interleaved by frame. Each float sample is clamped to
// [-1, 1]; negative values are scaled by 32768 and positive values by 32767.
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedEncoding: not integer PCM
//   - ErrUnsupportedBitDepth: bit depth other than 8, 16, 24 or 32
//   - ErrUnsupportedWavLayout: missing channel count or sample rate
package wav
