// SPDX-License-Identifier: EPL-2.0

package project

type TrackKind string

const (
	Music      TrackKind = "Music"
	Background TrackKind = "Background"
	Voice      TrackKind = "Voice"
	FX         TrackKind = "FX"
)

// Bed reports whether the kind is a music bed: these tracks may loop clips
// and are the only ones ducking applies to.
func (k TrackKind) Bed() bool {
	return k == Music || k == Background
}

// DefaultVolume is the volume given to the initial track of each kind.
func (k TrackKind) DefaultVolume() float64 {
	switch k {
	case Music:
		return 0.8
	case Background:
		return 0.4
	case FX:
		return 0.9
	default:
		return 1.0
	}
}

// addedVolume is the volume of a track created interactively.
func (k TrackKind) addedVolume() float64 {
	switch k {
	case Voice:
		return 1.0
	case Background:
		return 0.4
	default:
		return 0.8
	}
}

func (k TrackKind) defaultName() string {
	switch k {
	case Voice:
		return "Voice"
	case FX:
		return "Sound FX"
	default:
		return string(k)
	}
}
