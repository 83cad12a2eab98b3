package graph

import (
	"strconv"
	"strings"
)

// Graph is the arena-backed directed property graph. Nodes and edges live in
// flat slices referenced by index, which keeps arbitrary (even cyclic)
// topologies free of ownership cycles and makes bounded traversal natural.
//
// Construction is single-threaded; once built, the graph is read-only and
// safe for unbounded concurrent readers.
type Graph struct {
	nodes []*Node
	edges []Edge

	byID     map[string]int // composite id -> node index
	outgoing [][]int        // node index -> outgoing edge indices
	incoming [][]int        // node index -> incoming edge indices

	policy   EdgePolicy
	edgeKeys map[string]bool // populated only under EdgeDeduped
}

// New creates an empty graph with the multiset edge policy
func New() *Graph {
	return NewWithPolicy(EdgeMultiset)
}

// NewWithPolicy creates an empty graph with an explicit edge policy
func NewWithPolicy(policy EdgePolicy) *Graph {
	g := &Graph{
		nodes:    make([]*Node, 0),
		edges:    make([]Edge, 0),
		byID:     make(map[string]int),
		outgoing: make([][]int, 0),
		incoming: make([][]int, 0),
		policy:   policy,
	}
	if policy == EdgeDeduped {
		g.edgeKeys = make(map[string]bool)
	}
	return g
}

// NodeByID returns the node with the given composite id
func (g *Graph) NodeByID(id string) (*Node, bool) {
	idx, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return g.nodes[idx], true
}

// NumNodes returns the number of nodes
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of edges
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// ensureNode returns the arena index of the node with the given kind and raw
// id, creating a shadow node (kind and id only) if it is absent. The id
// never changes once assigned.
func (g *Graph) ensureNode(kind NodeKind, rawID string) int {
	id := CompositeID(kind, rawID)
	if idx, ok := g.byID[id]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, &Node{ID: id, Kind: kind, RawID: rawID})
	g.outgoing = append(g.outgoing, nil)
	g.incoming = append(g.incoming, nil)
	g.byID[id] = idx
	return idx
}

// addEdge appends an edge between two arena indices. Under EdgeDeduped an
// edge identical by (from, to, kind, valid-from) is dropped. Reports whether
// the edge was added.
func (g *Graph) addEdge(e Edge) bool {
	if g.policy == EdgeDeduped {
		key := edgeKey(e)
		if g.edgeKeys[key] {
			return false
		}
		g.edgeKeys[key] = true
	}
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], idx)
	g.incoming[e.To] = append(g.incoming[e.To], idx)
	return true
}

func edgeKey(e Edge) string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(e.From))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(e.To))
	b.WriteByte('|')
	if !e.ValidFrom.IsZero() {
		b.WriteString(strconv.FormatInt(e.ValidFrom.Unix(), 10))
	}
	return b.String()
}

// outEdges returns the outgoing edges of a node, optionally filtered by kind
func (g *Graph) outEdges(nodeIdx int, kind EdgeKind) []Edge {
	if nodeIdx < 0 || nodeIdx >= len(g.outgoing) {
		return nil
	}
	edges := make([]Edge, 0, len(g.outgoing[nodeIdx]))
	for _, ei := range g.outgoing[nodeIdx] {
		e := g.edges[ei]
		if kind == "" || e.Kind == kind {
			edges = append(edges, e)
		}
	}
	return edges
}

// inEdges returns the incoming edges of a node, optionally filtered by kind
func (g *Graph) inEdges(nodeIdx int, kind EdgeKind) []Edge {
	if nodeIdx < 0 || nodeIdx >= len(g.incoming) {
		return nil
	}
	edges := make([]Edge, 0, len(g.incoming[nodeIdx]))
	for _, ei := range g.incoming[nodeIdx] {
		e := g.edges[ei]
		if kind == "" || e.Kind == kind {
			edges = append(edges, e)
		}
	}
	return edges
}

// Stats produces the node/edge census, O(V+E)
func (g *Graph) Stats() Stats {
	stats := Stats{
		NodeCount:   len(g.nodes),
		EdgeCount:   len(g.edges),
		NodesByKind: make(map[NodeKind]int),
		EdgesByKind: make(map[EdgeKind]int),
	}
	for _, n := range g.nodes {
		stats.NodesByKind[n.Kind]++
		if n.Shadow() {
			stats.ShadowCount++
		}
	}
	for _, e := range g.edges {
		stats.EdgesByKind[e.Kind]++
	}
	return stats
}

// Enrichment merge helpers. A newly supplied non-empty value always
// overwrites; an empty value never erases a known one.

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func (a *EmployeeAttrs) merge(src *EmployeeAttrs) {
	mergeString(&a.FirstName, src.FirstName)
	mergeString(&a.LastName, src.LastName)
	mergeString(&a.Profession, src.Profession)
	mergeString(&a.PlannedPosition, src.PlannedPosition)
	mergeString(&a.OrgUnit, src.OrgUnit)
}

func (a *SkillAttrs) merge(src *SkillAttrs) {
	mergeString(&a.Name, src.Name)
	mergeString(&a.Category, src.Category)
}

func (a *CourseAttrs) merge(src *CourseAttrs) {
	mergeString(&a.Name, src.Name)
	mergeString(&a.Category, src.Category)
}

func (a *QualificationAttrs) merge(src *QualificationAttrs) {
	mergeString(&a.Name, src.Name)
}

func (a *PositionAttrs) merge(src *PositionAttrs) {
	mergeString(&a.Title, src.Title)
}

func (a *OrgUnitAttrs) merge(src *OrgUnitAttrs) {
	mergeString(&a.Code, src.Code)
	mergeString(&a.NameEN, src.NameEN)
	mergeString(&a.NameLocal, src.NameLocal)
}

// enrichEmployee applies employee attributes to the node at idx
func (g *Graph) enrichEmployee(idx int, attrs *EmployeeAttrs) {
	n := g.nodes[idx]
	if n.Employee == nil {
		n.Employee = &EmployeeAttrs{}
	}
	n.Employee.merge(attrs)
}

func (g *Graph) enrichSkill(idx int, attrs *SkillAttrs) {
	n := g.nodes[idx]
	if n.Skill == nil {
		n.Skill = &SkillAttrs{}
	}
	n.Skill.merge(attrs)
}

func (g *Graph) enrichCourse(idx int, attrs *CourseAttrs) {
	n := g.nodes[idx]
	if n.Course == nil {
		n.Course = &CourseAttrs{}
	}
	n.Course.merge(attrs)
}

func (g *Graph) enrichQualification(idx int, attrs *QualificationAttrs) {
	n := g.nodes[idx]
	if n.Qualification == nil {
		n.Qualification = &QualificationAttrs{}
	}
	n.Qualification.merge(attrs)
}

func (g *Graph) enrichPosition(idx int, attrs *PositionAttrs) {
	n := g.nodes[idx]
	if n.Position == nil {
		n.Position = &PositionAttrs{}
	}
	n.Position.merge(attrs)
}

func (g *Graph) enrichOrgUnit(idx int, attrs *OrgUnitAttrs) {
	n := g.nodes[idx]
	if n.OrgUnit == nil {
		n.OrgUnit = &OrgUnitAttrs{}
	}
	n.OrgUnit.merge(attrs)
}
