// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"

	"github.com/ik5/podmix/project"
)

// Stage is one step of an effect chain, either a filter or a compressor.
type Stage struct {
	Filter     *project.BiquadFilterSettings
	Compressor *project.CompressorSettings
	// Index is the filter's position in the preset's equalizer list.
	Index int
}

// ChainStages lists the stages of a preset in signal order. The equalizer
// runs back to front, so its last entry sees the raw track signal and its
// first entry feeds the compressor. A nil preset is an empty chain.
func ChainStages(preset *project.AudioPreset) []Stage {
	if preset == nil {
		return nil
	}

	stages := make([]Stage, 0, len(preset.Equalizer)+1)
	for i := len(preset.Equalizer) - 1; i >= 0; i-- {
		f := preset.Equalizer[i]
		stages = append(stages, Stage{Filter: &f, Index: i})
	}
	if preset.Compressor != nil {
		c := *preset.Compressor
		stages = append(stages, Stage{Compressor: &c, Index: -1})
	}
	return stages
}

// AssembleChain adds the stages of preset after from and returns the last
// node of the chain. With no stages it returns from unchanged.
func AssembleChain(g *Graph, trackID string, preset *project.AudioPreset, from NodeID) NodeID {
	head := from
	for _, s := range ChainStages(preset) {
		n := Node{TrackID: trackID}
		if s.Filter != nil {
			n.Kind = BiquadNode
			n.Filter = s.Filter
			n.Label = fmt.Sprintf("eq[%d] %s %.0fHz", s.Index, s.Filter.Type, s.Filter.Frequency)
		} else {
			n.Kind = CompressorNode
			n.Compressor = s.Compressor
			n.Label = "compressor"
		}

		id := g.Add(n)
		g.Connect(head, id)
		head = id
	}
	return head
}
