// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files with github.com/tphakala/flac.
//
//	source, err := flac.Decoder{}.Decode(file)
//	buf, err := audio.Load(source, 44100, 2)
//
// The underlying decoder hands out one block of interleaved little-endian
// PCM per call; blocks are converted to float32 and served across as many
// ReadSamples calls as needed.
package flac
