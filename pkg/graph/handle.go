package graph

import (
	"sync/atomic"
)

// Handle is the owned reference through which the serving process reaches
// the current graph. A rebuild constructs a brand-new graph and swaps it in
// atomically: in-flight queries finish against the old instance, new queries
// immediately see the new one. There is no in-place mutation of a served
// graph.
type Handle struct {
	ptr atomic.Pointer[Graph]
}

// NewHandle creates a handle. A nil initial graph is replaced by an empty
// one so that queries before the first rebuild return empty results.
func NewHandle(g *Graph) *Handle {
	h := &Handle{}
	if g == nil {
		g = New()
	}
	h.ptr.Store(g)
	return h
}

// Graph returns the currently served graph
func (h *Handle) Graph() *Graph {
	return h.ptr.Load()
}

// Swap atomically replaces the served graph and returns the previous one
func (h *Handle) Swap(g *Graph) *Graph {
	if g == nil {
		g = New()
	}
	return h.ptr.Swap(g)
}
