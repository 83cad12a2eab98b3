package graph

import (
	"testing"
	"time"
)

func TestEmployeeSkills_TwoHop(t *testing.T) {
	g := scenarioGraph()

	records := g.EmployeeSkills("E1")
	if len(records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(records))
	}
	rec := records[0]
	if rec.SkillName != "Python" || rec.CourseID != "C1" {
		t.Errorf("record = %+v, want Python via C1", rec)
	}
}

func TestEmployeeSkills_DuplicatesPerCourseIntentional(t *testing.T) {
	g := scenarioGraph()

	// A second course teaching the same skill
	e1 := g.byID[CompositeID(KindEmployee, "E1")]
	c2 := g.ensureNode(KindCourse, "C2")
	s1 := g.byID[CompositeID(KindSkill, "S1")]
	g.addEdge(Edge{Kind: EdgeCompletedCourse, From: e1, To: c2})
	g.addEdge(Edge{Kind: EdgeDevelopsSkill, From: c2, To: s1})

	records := g.EmployeeSkills("E1")
	if len(records) != 2 {
		t.Fatalf("same skill via two courses should appear twice, got %d", len(records))
	}
}

func TestEmployeeSkills_UnknownEmployee(t *testing.T) {
	g := scenarioGraph()
	if records := g.EmployeeSkills("nobody"); len(records) != 0 {
		t.Errorf("unknown employee should yield empty, got %v", records)
	}
}

func TestEmployeeQualifications(t *testing.T) {
	g := scenarioGraph()
	e1 := g.byID[CompositeID(KindEmployee, "E1")]
	q1 := g.byID[CompositeID(KindQualification, "Q1")]
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	g.addEdge(Edge{Kind: EdgeHasQualification, From: e1, To: q1, ValidFrom: from, Indefinite: true})

	records := g.EmployeeQualifications("E1")
	if len(records) != 1 {
		t.Fatalf("expected 1 qualification, got %d", len(records))
	}
	if records[0].QualificationID != "Q1" || !records[0].Indefinite {
		t.Errorf("record = %+v", records[0])
	}
	if !records[0].ValidFrom.Equal(from) {
		t.Errorf("valid from = %v, want %v", records[0].ValidFrom, from)
	}
}

func TestMissingQualifications_SetDifference(t *testing.T) {
	g := scenarioGraph()

	// E2 plans for P1 which requires Q1, and holds nothing
	records := g.MissingQualifications("E2")
	if len(records) != 1 || records[0].QualificationID != "Q1" {
		t.Fatalf("records = %+v, want exactly [Q1]", records)
	}

	// Granting Q1 empties the gap
	e2 := g.byID[CompositeID(KindEmployee, "E2")]
	q1 := g.byID[CompositeID(KindQualification, "Q1")]
	g.addEdge(Edge{Kind: EdgeHasQualification, From: e2, To: q1})

	if records := g.MissingQualifications("E2"); len(records) != 0 {
		t.Errorf("held qualification still reported missing: %+v", records)
	}
}

func TestMissingQualifications_NoPlannedPosition(t *testing.T) {
	g := scenarioGraph()
	records := g.MissingQualifications("E1")
	if records == nil || len(records) != 0 {
		t.Errorf("no planned position must yield empty non-nil result, got %v", records)
	}
}

func TestMissingQualifications_FirstPlannedOnly(t *testing.T) {
	g := scenarioGraph()

	// Second planned position requiring a different qualification
	e2 := g.byID[CompositeID(KindEmployee, "E2")]
	p2 := g.ensureNode(KindPosition, "P2")
	q2 := g.ensureNode(KindQualification, "Q2")
	g.addEdge(Edge{Kind: EdgePlannedFor, From: e2, To: p2})
	g.addEdge(Edge{Kind: EdgeRequiresQualification, From: p2, To: q2})

	records := g.MissingQualifications("E2")
	if len(records) != 1 || records[0].QualificationID != "Q1" {
		t.Errorf("only the first PLANNED_FOR target should count, got %+v", records)
	}
}

func TestCoursesForSkill_ReverseLookup(t *testing.T) {
	g := scenarioGraph()

	records := g.CoursesForSkill("S1")
	if len(records) != 1 || records[0].CourseID != "C1" {
		t.Fatalf("records = %+v, want [C1]", records)
	}
	if records[0].CourseName != "Intro to Python" {
		t.Errorf("course name = %q", records[0].CourseName)
	}

	if records := g.CoursesForSkill("unknown"); len(records) != 0 {
		t.Errorf("unknown skill should yield empty, got %v", records)
	}
}

func TestOrgUnitTree_CycleSafe(t *testing.T) {
	g := scenarioGraph()

	// A -> B -> C -> A: the walk must terminate and stay bounded
	records := g.OrgUnitTree("A")
	if len(records) != 2 {
		t.Fatalf("descendants of A in a 3-cycle = %d records, want 2 (B and C)", len(records))
	}
	seen := map[string]bool{}
	for _, r := range records {
		seen[r.OrgUnitID] = true
	}
	if !seen["B"] || !seen["C"] {
		t.Errorf("records = %+v, want B and C", records)
	}
}

func TestStats_Census(t *testing.T) {
	g := scenarioGraph()
	stats := g.Stats()

	if stats.NodeCount != 9 {
		t.Errorf("node count = %d, want 9", stats.NodeCount)
	}
	if stats.EdgeCount != 7 {
		t.Errorf("edge count = %d, want 7", stats.EdgeCount)
	}
	if stats.NodesByKind[KindOrgUnit] != 3 {
		t.Errorf("org units = %d, want 3", stats.NodesByKind[KindOrgUnit])
	}
	if stats.EdgesByKind[EdgeParentOf] != 3 {
		t.Errorf("PARENT_OF edges = %d, want 3", stats.EdgesByKind[EdgeParentOf])
	}
	// The three org units were never enriched in the fixture
	if stats.ShadowCount != 3 {
		t.Errorf("shadow count = %d, want 3", stats.ShadowCount)
	}
}

func TestEmployeeProfile(t *testing.T) {
	g := scenarioGraph()
	e2 := g.byID[CompositeID(KindEmployee, "E2")]
	ou := g.ensureNode(KindOrgUnit, "OU9")
	g.enrichOrgUnit(ou, &OrgUnitAttrs{NameEN: "Operations"})
	g.addEdge(Edge{Kind: EdgeWorksIn, From: e2, To: ou})

	rec, ok := g.EmployeeProfile("E2")
	if !ok {
		t.Fatal("employee E2 should exist")
	}
	if rec.FirstName != "Grace" || rec.OrgUnitName != "Operations" || rec.PositionTitle != "Line Manager" {
		t.Errorf("profile = %+v", rec)
	}

	if _, ok := g.EmployeeProfile("nobody"); ok {
		t.Error("unknown employee must report not found")
	}
}

func TestHandle_AtomicSwap(t *testing.T) {
	h := NewHandle(nil)
	if h.Graph().NumNodes() != 0 {
		t.Fatal("fresh handle should serve an empty graph")
	}

	g := scenarioGraph()
	old := h.Swap(g)
	if old == nil || old.NumNodes() != 0 {
		t.Error("swap should return the previously served graph")
	}
	if h.Graph() != g {
		t.Error("handle should serve the new graph")
	}
}
