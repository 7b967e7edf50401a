// SPDX-License-Identifier: EPL-2.0

package project

import "strconv"

// RenderSet applies the solo rule: when any track is solo only the solo
// tracks are returned, otherwise every track that isn't muted.
func RenderSet(tracks []Track) []Track {
	soloed := false
	for i := range tracks {
		if tracks[i].IsSolo {
			soloed = true
			break
		}
	}

	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if soloed && t.IsSolo || !soloed && !t.IsMuted {
			out = append(out, t)
		}
	}
	return out
}

// Loops reports whether clip repeats on track.
func Loops(track *Track, clip *AudioClip) bool {
	return track.Kind.Bed() && clip.IsLooped && clip.Duration > 0
}

// LoopID is the id of the repetition of clipID starting at start.
func LoopID(clipID string, start float64) string {
	return clipID + "-loop-" + strconv.FormatFloat(start, 'f', -1, 64)
}

// ExpandLoops returns the clip instances that actually play. A looped clip
// on a bed track repeats back to back for as long as a repetition starts
// before horizon; every repetition gets an id from LoopID. Any other clip
// is returned as is.
func ExpandLoops(track *Track, clip AudioClip, horizon float64) []AudioClip {
	if !Loops(track, &clip) {
		return []AudioClip{clip}
	}

	var out []AudioClip
	for i := 0; ; i++ {
		start := clip.StartTime + float64(i)*clip.Duration
		if start >= horizon {
			break
		}
		rep := clip
		rep.ID = LoopID(clip.ID, start)
		rep.StartTime = start
		out = append(out, rep)
	}
	return out
}

// ContentDuration is the latest end of any clip, counting each clip once.
// It is the horizon loops repeat up to.
func ContentDuration(tracks []Track) float64 {
	var end float64
	for _, t := range tracks {
		for _, c := range t.Clips {
			end = max(end, c.End())
		}
	}
	return end
}

// TotalDuration is the loop-aware length of the timeline: the latest end of
// any clip instance after loop expansion.
func TotalDuration(tracks []Track) float64 {
	horizon := ContentDuration(tracks)

	end := 0.0
	for ti := range tracks {
		t := &tracks[ti]
		for _, c := range t.Clips {
			if !Loops(t, &c) {
				end = max(end, c.End())
				continue
			}
			reps := ExpandLoops(t, c, horizon)
			if len(reps) > 0 {
				end = max(end, reps[len(reps)-1].End())
			}
		}
	}
	return end
}

// TimelineDuration is TotalDuration with a floor, for display rulers.
func TimelineDuration(tracks []Track, floor float64) float64 {
	return max(TotalDuration(tracks), floor)
}
