package graph

import (
	"time"
)

func parseTestDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// scenarioGraph builds the small fixture shared by the query tests:
//
//	E1 -COMPLETED_COURSE-> C1 -DEVELOPS_SKILL-> S1 ("Python")
//	E2 -PLANNED_FOR-> P1 -REQUIRES_QUALIFICATION-> Q1
//	OU: A -PARENT_OF-> B -PARENT_OF-> C -PARENT_OF-> A (cycle)
func scenarioGraph() *Graph {
	g := New()

	e1 := g.ensureNode(KindEmployee, "E1")
	g.enrichEmployee(e1, &EmployeeAttrs{FirstName: "Ada"})
	c1 := g.ensureNode(KindCourse, "C1")
	g.enrichCourse(c1, &CourseAttrs{Name: "Intro to Python"})
	s1 := g.ensureNode(KindSkill, "S1")
	g.enrichSkill(s1, &SkillAttrs{Name: "Python"})
	g.addEdge(Edge{Kind: EdgeCompletedCourse, From: e1, To: c1})
	g.addEdge(Edge{Kind: EdgeDevelopsSkill, From: c1, To: s1})

	e2 := g.ensureNode(KindEmployee, "E2")
	g.enrichEmployee(e2, &EmployeeAttrs{FirstName: "Grace"})
	p1 := g.ensureNode(KindPosition, "P1")
	g.enrichPosition(p1, &PositionAttrs{Title: "Line Manager"})
	q1 := g.ensureNode(KindQualification, "Q1")
	g.enrichQualification(q1, &QualificationAttrs{Name: "First Aid"})
	g.addEdge(Edge{Kind: EdgePlannedFor, From: e2, To: p1})
	g.addEdge(Edge{Kind: EdgeRequiresQualification, From: p1, To: q1})

	a := g.ensureNode(KindOrgUnit, "A")
	b := g.ensureNode(KindOrgUnit, "B")
	c := g.ensureNode(KindOrgUnit, "C")
	g.addEdge(Edge{Kind: EdgeParentOf, From: a, To: b})
	g.addEdge(Edge{Kind: EdgeParentOf, From: b, To: c})
	g.addEdge(Edge{Kind: EdgeParentOf, From: c, To: a})

	return g
}
