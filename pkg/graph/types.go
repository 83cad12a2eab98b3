// Package graph implements the typed directed property graph at the center
// of the system: arena-backed node/edge storage, incremental construction
// with shadow nodes, traversal queries, and an atomically swappable handle.
package graph

import (
	"time"
)

// NodeKind identifies one of the six entity kinds sharing the graph namespace
type NodeKind string

const (
	KindEmployee      NodeKind = "employee"
	KindSkill         NodeKind = "skill"
	KindCourse        NodeKind = "course"
	KindQualification NodeKind = "qualification"
	KindPosition      NodeKind = "position"
	KindOrgUnit       NodeKind = "org_unit"
)

// EdgeKind identifies one of the seven directed relationship kinds
type EdgeKind string

const (
	EdgeWorksIn               EdgeKind = "WORKS_IN"
	EdgePlannedFor            EdgeKind = "PLANNED_FOR"
	EdgeHasQualification      EdgeKind = "HAS_QUALIFICATION"
	EdgeCompletedCourse       EdgeKind = "COMPLETED_COURSE"
	EdgeDevelopsSkill         EdgeKind = "DEVELOPS_SKILL"
	EdgeRequiresQualification EdgeKind = "REQUIRES_QUALIFICATION"
	EdgeParentOf              EdgeKind = "PARENT_OF"
)

// CompositeID builds the "{kind}:{raw_id}" node id that guarantees
// uniqueness across kinds
func CompositeID(kind NodeKind, rawID string) string {
	return string(kind) + ":" + rawID
}

// Per-kind attribute structs. Empty strings mean "unknown"; enrichment only
// ever fills gaps or overwrites with newly supplied non-empty values.

type EmployeeAttrs struct {
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Profession      string `json:"profession,omitempty"`
	PlannedPosition string `json:"planned_position,omitempty"`
	OrgUnit         string `json:"org_unit,omitempty"`
}

type SkillAttrs struct {
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

type CourseAttrs struct {
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

type QualificationAttrs struct {
	Name string `json:"name,omitempty"`
}

type PositionAttrs struct {
	Title string `json:"title,omitempty"`
}

type OrgUnitAttrs struct {
	Code      string `json:"code,omitempty"`
	NameEN    string `json:"name_en,omitempty"`
	NameLocal string `json:"name_local,omitempty"`
}

// Node is a graph vertex. Exactly the attribute struct matching Kind is
// non-nil once the defining loader has run; a shadow node carries none.
type Node struct {
	ID    string   `json:"id"`
	Kind  NodeKind `json:"kind"`
	RawID string   `json:"raw_id"`

	Employee      *EmployeeAttrs      `json:"employee,omitempty"`
	Skill         *SkillAttrs         `json:"skill,omitempty"`
	Course        *CourseAttrs        `json:"course,omitempty"`
	Qualification *QualificationAttrs `json:"qualification,omitempty"`
	Position      *PositionAttrs      `json:"position,omitempty"`
	OrgUnit       *OrgUnitAttrs       `json:"org_unit,omitempty"`
}

// Shadow reports whether the node was only ever referenced as an edge
// endpoint and never enriched by its defining loader
func (n *Node) Shadow() bool {
	return n.Employee == nil && n.Skill == nil && n.Course == nil &&
		n.Qualification == nil && n.Position == nil && n.OrgUnit == nil
}

// Edge is a directed relationship between two arena indices. Zero times
// mean "unknown".
type Edge struct {
	Kind       EdgeKind  `json:"kind"`
	From       int       `json:"from"`
	To         int       `json:"to"`
	ValidFrom  time.Time `json:"valid_from,omitzero"`
	ValidTo    time.Time `json:"valid_to,omitzero"`
	Indefinite bool      `json:"indefinite,omitempty"`
}

// EdgePolicy selects how repeated edge insertions behave
type EdgePolicy int

const (
	// EdgeMultiset keeps every inserted edge, so re-running a loader doubles
	// edge counts and retakes stay distinct rows
	EdgeMultiset EdgePolicy = iota
	// EdgeDeduped drops edges identical by (from, to, kind, valid-from), so
	// re-running a loader is idempotent while dated retakes stay distinct
	EdgeDeduped
)

// Stats is the full-scan node and edge census
type Stats struct {
	NodeCount   int              `json:"node_count"`
	EdgeCount   int              `json:"edge_count"`
	ShadowCount int              `json:"shadow_count"`
	NodesByKind map[NodeKind]int `json:"nodes_by_kind"`
	EdgesByKind map[EdgeKind]int `json:"edges_by_kind"`
}
