// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"math"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/dsp"
	"github.com/ik5/podmix/graph"
)

// DefaultBlockSize is the number of frames a Network processes at a time.
const DefaultBlockSize = 128

type processor interface {
	Process(buf [][]float32)
}

type node struct {
	proc   processor
	inputs []graph.NodeID
	buf    [][]float32
}

// voice plays one scheduled range of a buffer. Frames are counted on the
// network's clock, except read which indexes the buffer.
type voice struct {
	buf    *audio.Buffer
	dest   graph.NodeID
	start  int64
	end    int64
	read   int64
	gain   float32
	chans  int
	frames int64
}

// Network is a graph compiled into processors. It renders fixed-size
// blocks in topological order no matter how many frames a caller asks for
// at once, so an offline render and a live stream of the same graph produce
// the same samples.
type Network struct {
	sampleRate int
	channels   int
	block      int

	order  []graph.NodeID
	nodes  []node
	output graph.NodeID
	voices []voice

	pos  int64 // frames rendered into blocks so far
	end  int64 // frame after the last voice stops
	out  [][]float32
	used int // frames of out already handed to the caller
}

// NewNetwork compiles g and the plays scheduled into it. Buffers at another
// sample rate are resampled once; mono buffers feed every output channel.
func NewNetwork(g *graph.Graph, plays []graph.Play, sampleRate, channels, blockSize int) (*Network, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("network: %d Hz, %d channels: %w", sampleRate, channels, ErrUnsupportedPlatform)
	}

	order, err := g.Order()
	if err != nil {
		return nil, err
	}

	n := &Network{
		sampleRate: sampleRate,
		channels:   channels,
		block:      blockSize,
		order:      order,
		nodes:      make([]node, len(g.Nodes)),
		output:     g.Output,
		out:        makeBlock(channels, blockSize),
		used:       blockSize,
	}

	for i := range g.Nodes {
		gn := &g.Nodes[i]
		proc, err := newProcessor(gn, sampleRate, channels)
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", gn.ID, gn.Label, err)
		}
		n.nodes[i] = node{proc: proc, inputs: g.Inputs(gn.ID), buf: makeBlock(channels, blockSize)}
	}

	conformed := make(map[*audio.Buffer]*audio.Buffer)
	for _, p := range plays {
		buf, err := conform(p.Entry.Buffer, sampleRate, conformed)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", p.Entry.ID, err)
		}

		v := voice{
			buf:    buf,
			dest:   p.Entry.Dest,
			start:  seconds(p.Delay, sampleRate),
			read:   seconds(p.ReadOffset, sampleRate),
			gain:   float32(p.Entry.Gain),
			chans:  buf.Channels(),
			frames: int64(buf.Frames()),
		}
		v.end = v.start + seconds(p.Duration, sampleRate)
		if v.end <= v.start {
			continue
		}
		n.voices = append(n.voices, v)
		n.end = max(n.end, v.end)
	}

	return n, nil
}

func newProcessor(gn *graph.Node, sampleRate, channels int) (processor, error) {
	switch gn.Kind {
	case graph.GainNode:
		var param dsp.Param
		if gn.Automation != nil {
			param = gn.Automation.Cursor()
		}
		return dsp.NewGain(gn.Gain, param, sampleRate), nil
	case graph.BiquadNode:
		return dsp.NewBiquad(*gn.Filter, sampleRate, channels)
	case graph.CompressorNode:
		return dsp.NewCompressor(*gn.Compressor, sampleRate)
	default:
		return nil, nil
	}
}

func conform(buf *audio.Buffer, sampleRate int, cache map[*audio.Buffer]*audio.Buffer) (*audio.Buffer, error) {
	if buf.SampleRate() == sampleRate {
		return buf, nil
	}
	if c, ok := cache[buf]; ok {
		return c, nil
	}
	c, err := audio.Load(buf.Reader(), sampleRate, 0)
	if err != nil {
		return nil, fmt.Errorf("resampling buffer to %d Hz: %w", sampleRate, err)
	}
	cache[buf] = c
	return c, nil
}

func seconds(s float64, sampleRate int) int64 {
	return int64(math.Round(s * float64(sampleRate)))
}

func makeBlock(channels, frames int) [][]float32 {
	b := make([][]float32, channels)
	for c := range b {
		b[c] = make([]float32, frames)
	}
	return b
}

// SampleRate is the rate the network renders at.
func (n *Network) SampleRate() int { return n.sampleRate }

// Frames is the number of frames until the last source stops.
func (n *Network) Frames() int64 { return n.end }

// Voices is the number of sources scheduled.
func (n *Network) Voices() int { return len(n.voices) }

// Done reports whether every source has finished in the frames handed out
// so far.
func (n *Network) Done() bool { return n.Delivered() >= n.end }

// Delivered is the number of frames handed to the caller.
func (n *Network) Delivered() int64 { return n.pos - int64(n.block-n.used) }

// Process fills out, one slice per channel, with the next frames of the
// mix. Output channels beyond the network's are left untouched.
func (n *Network) Process(out [][]float32) {
	if len(out) == 0 {
		return
	}
	frames := len(out[0])

	for done := 0; done < frames; {
		if n.used == n.block {
			n.renderBlock()
			n.used = 0
		}
		k := min(frames-done, n.block-n.used)
		for c := range min(len(out), n.channels) {
			copy(out[c][done:done+k], n.out[c][n.used:n.used+k])
		}
		n.used += k
		done += k
	}
}

func (n *Network) renderBlock() {
	for i := range n.nodes {
		for _, ch := range n.nodes[i].buf {
			clear(ch)
		}
	}

	from, to := n.pos, n.pos+int64(n.block)
	for i := range n.voices {
		n.mixVoice(&n.voices[i], from, to)
	}

	for _, id := range n.order {
		nd := &n.nodes[id]
		for _, in := range nd.inputs {
			src := n.nodes[in].buf
			for c := range nd.buf {
				dst := nd.buf[c]
				for i, s := range src[c] {
					dst[i] += s
				}
			}
		}
		if nd.proc != nil {
			nd.proc.Process(nd.buf)
		}
	}

	for c := range n.out {
		copy(n.out[c], n.nodes[n.output].buf[c])
	}
	n.pos = to
}

func (n *Network) mixVoice(v *voice, from, to int64) {
	lo, hi := max(v.start, from), min(v.end, to)
	if lo >= hi {
		return
	}

	dest := n.nodes[v.dest].buf
	for c := range dest {
		src := v.buf.Channel(c % v.chans)
		dst := dest[c]
		for f := lo; f < hi; f++ {
			r := v.read + f - v.start
			if r >= v.frames {
				break
			}
			dst[f-from] += src[r] * v.gain
		}
	}
}
