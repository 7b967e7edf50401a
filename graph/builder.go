// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"math"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/project"
)

// Input is everything a graph build reads. It is a snapshot: Build never
// looks at anything else.
type Input struct {
	// Tracks are the tracks to render, already filtered by mute and solo.
	Tracks []project.Track
	// AllTracks are every track of the project. Voice clips for ducking and
	// the loop horizon come from here. Nil means Tracks.
	AllTracks []project.Track
	Files     []project.AudioFile
	Mastering *project.CompressorSettings
	// Horizon is the time loops repeat up to; zero means the content
	// duration of AllTracks.
	Horizon float64
	// Origin is the project time at render time zero. Automation is
	// expressed relative to it.
	Origin  float64
	Ducking DuckingParams
}

// Entry is a scheduling entry: one range of a decoded file to play at a
// project time into a track's head node.
type Entry struct {
	ID      string
	ClipID  string
	TrackID string
	FileID  string
	Buffer  *audio.Buffer

	StartTime float64
	Offset    float64
	Duration  float64
	// Gain is the clip's linear normalization gain.
	Gain float64

	Dest NodeID
}

// End is the project time the entry stops playing.
func (e Entry) End() float64 { return e.StartTime + e.Duration }

// Result is a built graph and what to play into it.
type Result struct {
	Graph   *Graph
	Entries []Entry
	// Skipped lists clips left out because their file has no buffer.
	Skipped []string
	// Ducked lists the tracks whose gain follows the ducking curve.
	Ducked []string
}

// Build turns a project snapshot into a graph and its scheduling entries.
//
// The master bus feeds the output, through the mastering compressor when
// there is one. Each track gets a gain node at its volume, carrying the
// project's ducking curve when it applies, followed by its effect chain and
// the master bus. Clips whose file isn't decoded yet are skipped; looped
// clips on bed tracks become one entry per repetition.
func Build(in Input) Result {
	all := in.AllTracks
	if all == nil {
		all = in.Tracks
	}
	horizon := in.Horizon
	if horizon <= 0 {
		horizon = project.ContentDuration(all)
	}

	g := New()
	if in.Mastering != nil {
		c := *in.Mastering
		comp := g.Add(Node{Kind: CompressorNode, Label: "mastering", Compressor: &c})
		g.Connect(g.Master, comp)
		g.Connect(comp, g.Output)
	} else {
		g.Connect(g.Master, g.Output)
	}

	voice := VoiceClips(all)
	haveVoice := len(voice) > 0
	var curve Curve
	if haveVoice {
		curve = BuildDuckingCurve(voice, in.Ducking)
	}

	files := make(map[string]*project.AudioFile, len(in.Files))
	for i := range in.Files {
		files[in.Files[i].ID] = &in.Files[i]
	}

	res := Result{Graph: g}
	for ti := range in.Tracks {
		t := &in.Tracks[ti]

		gain := Node{Kind: GainNode, Label: t.Name, TrackID: t.ID, Gain: t.Volume}
		if Ducks(t, haveVoice) {
			gain.Automation = curve.Automation(t.Volume, in.Origin)
			res.Ducked = append(res.Ducked, t.ID)
		}
		head := g.Add(gain)
		g.Connect(AssembleChain(g, t.ID, t.Effects, head), g.Master)

		for _, c := range t.Clips {
			f, ok := files[c.FileID]
			if !ok || f.Buffer == nil {
				res.Skipped = append(res.Skipped, c.ID)
				continue
			}

			for _, rep := range project.ExpandLoops(t, c, horizon) {
				res.Entries = append(res.Entries, Entry{
					ID:        rep.ID,
					ClipID:    c.ID,
					TrackID:   t.ID,
					FileID:    f.ID,
					Buffer:    f.Buffer,
					StartTime: rep.StartTime,
					Offset:    rep.Offset,
					Duration:  rep.Duration,
					Gain:      linearGain(rep.NormalizationGain),
					Dest:      head,
				})
			}
		}
	}

	return res
}

func linearGain(db *float64) float64 {
	if db == nil {
		return 1
	}
	return math.Pow(10, *db/20)
}
