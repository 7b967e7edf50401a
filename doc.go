// SPDX-License-Identifier: EPL-2.0

// Package podmix is a multi-track audio engine for podcast-style
// productions.
//
// A project holds tracks of clips cut from decoded audio files. Each track
// has a volume, mute and solo switches, an optional EQ and compressor
// preset, and background tracks can duck under voice. The engine builds a
// signal graph from a project snapshot and realizes it either offline into
// a stereo buffer for export or live on an output device, with the same
// samples either way.
//
// # Quick Start
//
// The simplest way to export a saved project is [Engine.Mixdown]:
//
//	eng, _ := podmix.New(config.Default(), nil, nil)
//	p, _ := eng.Open("show.json")
//	out, _ := os.Create("show.wav")
//	err := eng.Mixdown(ctx, p, out)
//
// Mixdown decodes the files the project references, masters the mix with
// the default broadcast compressor when the project has none, and writes
// 16-bit PCM WAV.
//
// # Packages
//
//   - project: the data model, editing operations, presets and the
//     undoable [project.Store]
//   - graph: ducking curves, effect chains and the graph builder
//   - dsp: gain, biquad and compressor processors
//   - render: the graph realizer and the offline renderer
//   - playback: the live scheduler and its devices
//   - hydrate: fetching and decoding project files
//   - formats: decoders for WAV, MP3, Ogg Vorbis, AIFF and FLAC, and the
//     WAV encoder
//
// See the individual packages for more detailed documentation.
package podmix
