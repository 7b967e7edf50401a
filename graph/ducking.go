// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"cmp"
	"slices"

	"github.com/ik5/podmix/project"
)

// Ducking defaults: beds drop to a fifth of their volume, reach it 50ms
// after a voice starts and recover over half a second once all voices stop.
const (
	DuckingAmount  = 0.2
	DuckingAttack  = 0.05
	DuckingRelease = 0.5
)

// DuckingParams tunes the ducking curve. The zero value means the defaults.
type DuckingParams struct {
	Amount  float64 `mapstructure:"amount" validate:"gte=0,lte=1"`
	Attack  float64 `mapstructure:"attack" validate:"gte=0"`
	Release float64 `mapstructure:"release" validate:"gte=0"`
}

// DefaultDucking returns the default ducking parameters.
func DefaultDucking() DuckingParams {
	return DuckingParams{Amount: DuckingAmount, Attack: DuckingAttack, Release: DuckingRelease}
}

func (p DuckingParams) orDefault() DuckingParams {
	if p == (DuckingParams{}) {
		return DefaultDucking()
	}
	return p
}

// Ramp is one gain transition of the ducking curve in project time: the
// gain is held at At and reaches its target at Until. Down ramps go to the
// ducked level, the others back to the track volume.
type Ramp struct {
	At    float64
	Until float64
	Down  bool
}

// Curve is the project-wide ducking schedule, independent of any track's
// volume.
type Curve struct {
	Amount float64
	// StartsDucked is set when a voice starts exactly at zero; the curve
	// then begins at the ducked level without a ramp.
	StartsDucked bool
	Ramps        []Ramp
}

// Empty reports whether the curve never ducks.
func (c Curve) Empty() bool {
	return !c.StartsDucked && len(c.Ramps) == 0
}

type voiceEvent struct {
	time  float64
	start bool
}

// BuildDuckingCurve derives the ducking schedule from the voice clips of a
// project. The voice count is tracked across overlapping clips; a ramp
// down is emitted when it leaves zero and a ramp up when it returns to
// zero.
func BuildDuckingCurve(voice []project.AudioClip, params DuckingParams) Curve {
	params = params.orDefault()
	curve := Curve{Amount: params.Amount}

	events := make([]voiceEvent, 0, 2*len(voice))
	for _, c := range voice {
		events = append(events,
			voiceEvent{time: c.StartTime, start: true},
			voiceEvent{time: c.End()},
		)
	}
	slices.SortStableFunc(events, func(a, b voiceEvent) int { return cmp.Compare(a.time, b.time) })

	if len(events) > 0 && events[0].start && events[0].time == 0 {
		curve.StartsDucked = true
	}

	active := 0
	for i, e := range events {
		if e.start {
			active++
			if active == 1 && !(i == 0 && curve.StartsDucked) {
				curve.Ramps = append(curve.Ramps, Ramp{At: e.time, Until: e.time + params.Attack, Down: true})
			}
			continue
		}

		active--
		if active == 0 {
			curve.Ramps = append(curve.Ramps, Ramp{At: e.time, Until: e.time + params.Release})
		}
	}

	return curve
}

// Automation scales the curve to a track volume and shifts it to a render
// whose local time zero is project time origin.
func (c Curve) Automation(volume, origin float64) *Automation {
	ducked := volume * c.Amount

	a := NewAutomation(volume)
	if c.StartsDucked {
		a.Initial = ducked
	}

	for _, r := range c.Ramps {
		target := volume
		if r.Down {
			target = ducked
		}
		a.Hold(r.At - origin)
		a.LinearRampTo(target, r.Until-origin)
	}
	return a
}

// VoiceClips collects the clips of every Voice track.
func VoiceClips(tracks []project.Track) []project.AudioClip {
	var clips []project.AudioClip
	for _, t := range tracks {
		if t.Kind == project.Voice {
			clips = append(clips, t.Clips...)
		}
	}
	return clips
}

// Ducks reports whether ducking applies to a track, given whether the
// project has any voice clip at all.
func Ducks(t *project.Track, haveVoice bool) bool {
	return haveVoice && t.Kind.Bed() && t.DuckingEnabled()
}
