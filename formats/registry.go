// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/aiff"
	"github.com/ik5/podmix/formats/flac"
	"github.com/ik5/podmix/formats/mp3"
	"github.com/ik5/podmix/formats/vorbis"
	"github.com/ik5/podmix/formats/wav"
)

// Format names as registered by NewRegistry.
const (
	WAV    = "wav"
	MP3    = "mp3"
	Vorbis = "ogg vorbis"
	AIFF   = "aiff"
	FLAC   = "flac"
)

// SupportedMIMETypes lists the MIME types accepted on import.
var SupportedMIMETypes = []string{
	"audio/wav", "audio/wave", "audio/x-wav", "audio/vnd.wave",
	"audio/mpeg", "audio/mp3",
	"audio/ogg", "audio/vorbis", "application/ogg",
	"audio/aiff", "audio/x-aiff",
	"audio/flac", "audio/x-flac",
}

// NewRegistry returns a registry with all bundled decoders, reachable by
// format name, MIME type and file extension.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register(WAV, wav.Decoder{}, "audio/wav", "audio/wave", "audio/x-wav", "audio/vnd.wave", ".wav", ".wave")
	r.Register(MP3, mp3.Decoder{}, "audio/mpeg", "audio/mp3", ".mp3")
	r.Register(Vorbis, vorbis.Decoder{}, "audio/ogg", "audio/vorbis", "application/ogg", ".ogg", ".oga")
	r.Register(AIFF, aiff.Decoder{}, "audio/aiff", "audio/x-aiff", ".aif", ".aiff")
	r.Register(FLAC, flac.Decoder{}, "audio/flac", "audio/x-flac", ".flac")

	return r
}
