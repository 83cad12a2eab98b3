package graph

import (
	"github.com/dd0wney/orggraph/pkg/clean"
	"github.com/dd0wney/orggraph/pkg/logging"
	"github.com/dd0wney/orggraph/pkg/table"
)

// Builder incrementally constructs a graph from canonical tables. Every add
// operation is safe in any order: endpoints referenced before their defining
// table is processed become shadow nodes and are enriched later. The
// recommended order (employees, skills, qualifications, course
// participation, skill mappings, role requirements, org hierarchy) merely
// minimizes transient shadow nodes.
type Builder struct {
	g   *Graph
	log logging.Logger

	// build counters for the run report
	ShadowCreated int
	EdgesAdded    int
	EdgesDropped  int
	RowsConsumed  int
}

// NewBuilder creates a builder targeting a fresh graph with the given policy
func NewBuilder(policy EdgePolicy, log logging.Logger) *Builder {
	if log == nil {
		log = logging.DefaultLogger()
	}
	return &Builder{
		g:   NewWithPolicy(policy),
		log: log,
	}
}

// Graph returns the graph under construction
func (b *Builder) Graph() *Graph {
	return b.g
}

// ensure wraps Graph.ensureNode for the shadow counter
func (b *Builder) ensure(kind NodeKind, rawID string) int {
	before := len(b.g.nodes)
	idx := b.g.ensureNode(kind, rawID)
	if len(b.g.nodes) > before {
		b.ShadowCreated++
	}
	return idx
}

func (b *Builder) add(e Edge) {
	if b.g.addEdge(e) {
		b.EdgesAdded++
	} else {
		b.EdgesDropped++
	}
}

// rowID reads an identifier cell, returning "" for null/absent
func rowID(t *table.Table, row int, column string) string {
	return t.Cell(row, column).AsString()
}

// AddEmployees loads the employee master: employee nodes with attributes,
// plus WORKS_IN and PLANNED_FOR edges for rows carrying those references.
func (b *Builder) AddEmployees(t *table.Table) {
	if t == nil {
		return
	}
	for i := range t.Rows {
		id := rowID(t, i, clean.FieldPersonalNumber)
		if id == "" {
			continue
		}
		b.RowsConsumed++
		idx := b.ensure(KindEmployee, id)
		b.g.enrichEmployee(idx, &EmployeeAttrs{
			FirstName:       t.Cell(i, clean.FieldFirstName).AsString(),
			LastName:        t.Cell(i, clean.FieldLastName).AsString(),
			Profession:      t.Cell(i, clean.FieldProfession).AsString(),
			PlannedPosition: t.Cell(i, clean.FieldPlannedPosition).AsString(),
			OrgUnit:         t.Cell(i, clean.FieldOrgUnit).AsString(),
		})

		if unit := rowID(t, i, clean.FieldOrgUnit); unit != "" {
			b.add(Edge{Kind: EdgeWorksIn, From: idx, To: b.ensure(KindOrgUnit, unit)})
		}
		if pos := rowID(t, i, clean.FieldPlannedPosition); pos != "" {
			b.add(Edge{Kind: EdgePlannedFor, From: idx, To: b.ensure(KindPosition, pos)})
		}
	}
}

// AddSkills loads the skill dictionary
func (b *Builder) AddSkills(t *table.Table) {
	if t == nil {
		return
	}
	for i := range t.Rows {
		id := rowID(t, i, clean.FieldSkillID)
		if id == "" {
			continue
		}
		b.RowsConsumed++
		idx := b.ensure(KindSkill, id)
		b.g.enrichSkill(idx, &SkillAttrs{
			Name:     t.Cell(i, clean.FieldSkillName).AsString(),
			Category: t.Cell(i, clean.FieldSkillCategory).AsString(),
		})
	}
}

// AddQualifications loads held qualifications: a dated HAS_QUALIFICATION
// edge per row, enriching the qualification node's name when supplied
func (b *Builder) AddQualifications(t *table.Table) {
	if t == nil {
		return
	}
	for i := range t.Rows {
		emp := rowID(t, i, clean.FieldPersonalNumber)
		qual := rowID(t, i, clean.FieldQualificationID)
		if emp == "" || qual == "" {
			continue
		}
		b.RowsConsumed++
		empIdx := b.ensure(KindEmployee, emp)
		qualIdx := b.ensure(KindQualification, qual)
		b.g.enrichQualification(qualIdx, &QualificationAttrs{
			Name: t.Cell(i, clean.FieldQualificationName).AsString(),
		})

		edge := Edge{Kind: EdgeHasQualification, From: empIdx, To: qualIdx}
		if from, ok := t.Cell(i, clean.FieldStartDate).AsTime(); ok {
			edge.ValidFrom = from
		}
		if to, ok := t.Cell(i, clean.FieldEndDate).AsTime(); ok {
			edge.ValidTo = to
		}
		if indef, ok := t.Cell(i, clean.FieldIndefinite).AsBool(); ok {
			edge.Indefinite = indef
		}
		b.add(edge)
	}
}

// AddCourseParticipation loads course completions: a dated COMPLETED_COURSE
// edge per row. Retakes stay distinct by their completion date.
func (b *Builder) AddCourseParticipation(t *table.Table) {
	if t == nil {
		return
	}
	for i := range t.Rows {
		emp := rowID(t, i, clean.FieldPersonalNumber)
		course := rowID(t, i, clean.FieldCourseID)
		if emp == "" || course == "" {
			continue
		}
		b.RowsConsumed++
		empIdx := b.ensure(KindEmployee, emp)
		courseIdx := b.ensure(KindCourse, course)
		b.g.enrichCourse(courseIdx, &CourseAttrs{
			Name: t.Cell(i, clean.FieldCourseName).AsString(),
		})

		edge := Edge{Kind: EdgeCompletedCourse, From: empIdx, To: courseIdx}
		if done, ok := t.Cell(i, clean.FieldCompletionDate).AsTime(); ok {
			edge.ValidFrom = done
		}
		b.add(edge)
	}
}

// AddSkillMappings loads course-to-skill edges. Works off the raw mapping or
// the skills-matrix view; skill names ride along when the view supplies them.
func (b *Builder) AddSkillMappings(t *table.Table) {
	if t == nil {
		return
	}
	for i := range t.Rows {
		course := rowID(t, i, clean.FieldCourseID)
		skill := rowID(t, i, clean.FieldSkillID)
		if course == "" || skill == "" {
			continue
		}
		b.RowsConsumed++
		courseIdx := b.ensure(KindCourse, course)
		skillIdx := b.ensure(KindSkill, skill)
		b.g.enrichSkill(skillIdx, &SkillAttrs{
			Name:     t.Cell(i, clean.FieldSkillName).AsString(),
			Category: t.Cell(i, clean.FieldSkillCategory).AsString(),
		})
		b.add(Edge{Kind: EdgeDevelopsSkill, From: courseIdx, To: skillIdx})
	}
}

// AddRoleRequirements loads position requirement edges
func (b *Builder) AddRoleRequirements(t *table.Table) {
	if t == nil {
		return
	}
	for i := range t.Rows {
		pos := rowID(t, i, clean.FieldPositionID)
		qual := rowID(t, i, clean.FieldQualificationID)
		if pos == "" || qual == "" {
			continue
		}
		b.RowsConsumed++
		posIdx := b.ensure(KindPosition, pos)
		qualIdx := b.ensure(KindQualification, qual)
		b.g.enrichPosition(posIdx, &PositionAttrs{
			Title: t.Cell(i, clean.FieldPositionTitle).AsString(),
		})
		b.add(Edge{Kind: EdgeRequiresQualification, From: posIdx, To: qualIdx})
	}
}

// AddOrgHierarchy loads org units and PARENT_OF edges (parent -> child).
// Malformed hierarchies may produce cycles; traversals stay bounded anyway.
func (b *Builder) AddOrgHierarchy(t *table.Table) {
	if t == nil {
		return
	}
	for i := range t.Rows {
		unit := rowID(t, i, clean.FieldOrgUnitID)
		if unit == "" {
			continue
		}
		b.RowsConsumed++
		unitIdx := b.ensure(KindOrgUnit, unit)
		b.g.enrichOrgUnit(unitIdx, &OrgUnitAttrs{
			Code:      t.Cell(i, clean.FieldOrgCode).AsString(),
			NameEN:    t.Cell(i, clean.FieldNameEN).AsString(),
			NameLocal: t.Cell(i, clean.FieldNameLocal).AsString(),
		})

		if parent := rowID(t, i, clean.FieldParentUnit); parent != "" && parent != unit {
			b.add(Edge{Kind: EdgeParentOf, From: b.ensure(KindOrgUnit, parent), To: unitIdx})
		}
	}
}

// AddLearningCatalog enriches course nodes from the catalog table. No edges:
// the catalog defines courses, participation connects them.
func (b *Builder) AddLearningCatalog(t *table.Table) {
	if t == nil {
		return
	}
	for i := range t.Rows {
		course := rowID(t, i, clean.FieldCourseID)
		if course == "" {
			continue
		}
		b.RowsConsumed++
		idx := b.ensure(KindCourse, course)
		b.g.enrichCourse(idx, &CourseAttrs{
			Name:     t.Cell(i, clean.FieldCourseName).AsString(),
			Category: t.Cell(i, clean.FieldCourseCategory).AsString(),
		})
	}
}
