package graph

import (
	"errors"
	"fmt"
)

// ErrCorruptDump is returned when a dump references nodes that don't exist
var ErrCorruptDump = errors.New("corrupt graph dump")

// Dump is the serializable form of a graph. Adjacency lists are rebuilt on
// restore, so only nodes and edges travel.
type Dump struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`
}

// Dump exports the graph's nodes and edges in arena order
func (g *Graph) Dump() *Dump {
	d := &Dump{
		Nodes: make([]*Node, len(g.nodes)),
		Edges: make([]Edge, len(g.edges)),
	}
	copy(d.Nodes, g.nodes)
	copy(d.Edges, g.edges)
	return d
}

// FromDump rebuilds a graph from a dump, restoring the id index and
// adjacency lists. Edge endpoints are validated against the node range.
func FromDump(d *Dump, policy EdgePolicy) (*Graph, error) {
	g := NewWithPolicy(policy)
	for _, n := range d.Nodes {
		if _, exists := g.byID[n.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrCorruptDump, n.ID)
		}
		idx := len(g.nodes)
		g.nodes = append(g.nodes, n)
		g.outgoing = append(g.outgoing, nil)
		g.incoming = append(g.incoming, nil)
		g.byID[n.ID] = idx
	}
	for _, e := range d.Edges {
		if e.From < 0 || e.From >= len(g.nodes) || e.To < 0 || e.To >= len(g.nodes) {
			return nil, fmt.Errorf("%w: edge %s references node out of range", ErrCorruptDump, e.Kind)
		}
		g.addEdge(e)
	}
	return g, nil
}
