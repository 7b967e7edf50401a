// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding using
// github.com/jfreymuth/oggvorbis.
//
//	source, err := vorbis.Decoder{}.Decode(file)
//	buf, err := audio.Load(source, 44100, 2)
//
// Vorbis decodes natively to float32, so samples are passed through without
// conversion.
package vorbis
