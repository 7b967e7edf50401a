// SPDX-License-Identifier: EPL-2.0

package graph

// Play is an entry resolved against a playback origin: start Delay seconds
// after the render starts, read the file from ReadOffset for Duration.
type Play struct {
	Entry      Entry
	Delay      float64
	ReadOffset float64
	Duration   float64
}

// Translate resolves e for playback starting at project time seek. Entries
// that end at or before seek are dropped; an entry already running at seek
// starts immediately, partway into its range.
func Translate(e Entry, seek float64) (Play, bool) {
	if e.End() <= seek {
		return Play{}, false
	}

	into := max(0, seek-e.StartTime)
	if into >= e.Duration {
		return Play{}, false
	}

	return Play{
		Entry:      e,
		Delay:      max(0, e.StartTime-seek),
		ReadOffset: e.Offset + into,
		Duration:   e.Duration - into,
	}, true
}

// Schedule translates every entry and keeps the ones that still play.
func Schedule(entries []Entry, seek float64) []Play {
	plays := make([]Play, 0, len(entries))
	for _, e := range entries {
		if p, ok := Translate(e, seek); ok {
			plays = append(plays, p)
		}
	}
	return plays
}
