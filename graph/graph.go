// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"

	"github.com/ik5/podmix/project"
)

// NodeKind is the processing a node performs.
type NodeKind int

const (
	GainNode NodeKind = iota
	BiquadNode
	CompressorNode
	// OutputNode is the single sink of a graph.
	OutputNode
)

func (k NodeKind) String() string {
	switch k {
	case GainNode:
		return "gain"
	case BiquadNode:
		return "biquad"
	case CompressorNode:
		return "compressor"
	case OutputNode:
		return "output"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// NodeID indexes Graph.Nodes.
type NodeID int

// Node is one processing stage. Only the fields that belong to its Kind are
// set: Gain and Automation for gain nodes, Filter for biquads and
// Compressor for compressors. Parameters are fixed for a render except a
// gain node's Automation.
type Node struct {
	ID      NodeID
	Kind    NodeKind
	Label   string
	TrackID string

	Gain       float64
	Automation *Automation

	Filter     *project.BiquadFilterSettings
	Compressor *project.CompressorSettings
}

// Edge carries the output of From into the input of To. A node with
// several inputs sums them.
type Edge struct {
	From NodeID
	To   NodeID
}

// Graph is the signal flow of one render as plain data. A realizer turns it
// into running processors.
type Graph struct {
	Nodes []Node
	Edges []Edge

	// Master is the bus every track feeds.
	Master NodeID
	Output NodeID
}

// New returns a graph holding only the output and an unconnected master bus.
func New() *Graph {
	g := &Graph{}
	g.Output = g.Add(Node{Kind: OutputNode, Label: "output"})
	g.Master = g.Add(Node{Kind: GainNode, Label: "master", Gain: 1})
	return g
}

// Add appends n and returns its id.
func (g *Graph) Add(n Node) NodeID {
	n.ID = NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, n)
	return n.ID
}

// Connect adds an edge from one node to another.
func (g *Graph) Connect(from, to NodeID) {
	g.Edges = append(g.Edges, Edge{From: from, To: to})
}

// Node returns the node with id.
func (g *Graph) Node(id NodeID) *Node {
	return &g.Nodes[id]
}

// Inputs lists the nodes feeding id, in connection order.
func (g *Graph) Inputs(id NodeID) []NodeID {
	var in []NodeID
	for _, e := range g.Edges {
		if e.To == id {
			in = append(in, e.From)
		}
	}
	return in
}

// Outputs lists the nodes id feeds, in connection order.
func (g *Graph) Outputs(id NodeID) []NodeID {
	var out []NodeID
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// Path follows first outputs from id to a node without outputs and returns
// every node on the way, id included.
func (g *Graph) Path(id NodeID) []NodeID {
	path := []NodeID{id}
	seen := map[NodeID]bool{id: true}
	for {
		out := g.Outputs(id)
		if len(out) == 0 || seen[out[0]] {
			return path
		}
		id = out[0]
		seen[id] = true
		path = append(path, id)
	}
}

// Order returns the nodes in an order where every node comes after all of
// its inputs. It fails with ErrCycle when the edges loop.
func (g *Graph) Order() ([]NodeID, error) {
	indegree := make([]int, len(g.Nodes))
	for _, e := range g.Edges {
		indegree[e.To]++
	}

	queue := make([]NodeID, 0, len(g.Nodes))
	for i, d := range indegree {
		if d == 0 {
			queue = append(queue, NodeID(i))
		}
	}

	order := make([]NodeID, 0, len(g.Nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, to := range g.Outputs(id) {
			indegree[to]--
			if indegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		return nil, ErrCycle
	}
	return order, nil
}

// TrackHead returns the gain node of a track.
func (g *Graph) TrackHead(trackID string) (NodeID, bool) {
	for _, n := range g.Nodes {
		if n.TrackID == trackID && n.Kind == GainNode {
			return n.ID, true
		}
	}
	return 0, false
}
