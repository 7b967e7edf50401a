// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3. The decoder always
// yields interleaved stereo; mono files are duplicated to both channels by
// the underlying library:
//
//	source, err := mp3.Decoder{}.Decode(file)
//	buf, err := audio.Load(source, 44100, 2)
//
// PCM frames split across two reads of the underlying decoder are carried
// over so ReadSamples always returns whole frames.
package mp3
