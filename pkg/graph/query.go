package graph

import (
	"time"
)

// Query results are plain structured records keyed by raw identifiers, so
// any reporting collaborator can consume them without framework types.
// Every query returns an empty result, never an error, when the entity or
// relationship it asks about is absent.

// SkillRecord is one (course, skill) pair reachable from an employee
type SkillRecord struct {
	SkillID    string `json:"skill_id"`
	SkillName  string `json:"skill_name"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
}

// QualificationRecord is one qualification with its validity attributes
type QualificationRecord struct {
	QualificationID string    `json:"qualification_id"`
	Name            string    `json:"name"`
	ValidFrom       time.Time `json:"valid_from,omitzero"`
	ValidTo         time.Time `json:"valid_to,omitzero"`
	Indefinite      bool      `json:"indefinite"`
}

// CourseRecord is one course teaching a queried skill
type CourseRecord struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
}

// OrgUnitRecord is one org unit in a subtree result
type OrgUnitRecord struct {
	OrgUnitID string `json:"org_unit_id"`
	Code      string `json:"code"`
	NameEN    string `json:"name_en"`
	NameLocal string `json:"name_local"`
	Depth     int    `json:"depth"`
}

// EmployeeProfileRecord is an employee's enriched view for reporting
type EmployeeProfileRecord struct {
	EmployeeID      string `json:"employee_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Profession      string `json:"profession"`
	OrgUnitID       string `json:"org_unit_id"`
	OrgUnitName     string `json:"org_unit_name"`
	PlannedPosition string `json:"planned_position"`
	PositionTitle   string `json:"position_title"`
}

// EmployeeSkills walks Employee -COMPLETED_COURSE-> Course -DEVELOPS_SKILL->
// Skill and returns one record per reachable (course, skill) pair. The same
// skill taught by several completed courses appears once per course; that
// duplication is intentional.
func (g *Graph) EmployeeSkills(employeeID string) []SkillRecord {
	records := make([]SkillRecord, 0)
	empIdx, ok := g.byID[CompositeID(KindEmployee, employeeID)]
	if !ok {
		return records
	}

	for _, completed := range g.outEdges(empIdx, EdgeCompletedCourse) {
		course := g.nodes[completed.To]
		courseName := ""
		if course.Course != nil {
			courseName = course.Course.Name
		}
		for _, develops := range g.outEdges(completed.To, EdgeDevelopsSkill) {
			skill := g.nodes[develops.To]
			skillName := ""
			if skill.Skill != nil {
				skillName = skill.Skill.Name
			}
			records = append(records, SkillRecord{
				SkillID:    skill.RawID,
				SkillName:  skillName,
				CourseID:   course.RawID,
				CourseName: courseName,
			})
		}
	}
	return records
}

// EmployeeQualifications returns the employee's HAS_QUALIFICATION edges with
// their date and indefinite attributes
func (g *Graph) EmployeeQualifications(employeeID string) []QualificationRecord {
	records := make([]QualificationRecord, 0)
	empIdx, ok := g.byID[CompositeID(KindEmployee, employeeID)]
	if !ok {
		return records
	}

	for _, held := range g.outEdges(empIdx, EdgeHasQualification) {
		records = append(records, g.qualificationRecord(held))
	}
	return records
}

func (g *Graph) qualificationRecord(e Edge) QualificationRecord {
	qual := g.nodes[e.To]
	name := ""
	if qual.Qualification != nil {
		name = qual.Qualification.Name
	}
	return QualificationRecord{
		QualificationID: qual.RawID,
		Name:            name,
		ValidFrom:       e.ValidFrom,
		ValidTo:         e.ValidTo,
		Indefinite:      e.Indefinite,
	}
}

// MissingQualifications computes the set difference between what the
// employee's planned position requires and what the employee holds. Only the
// first PLANNED_FOR edge is considered when several exist; a documented
// limitation. No planned position means nothing is missing.
func (g *Graph) MissingQualifications(employeeID string) []QualificationRecord {
	records := make([]QualificationRecord, 0)
	empIdx, ok := g.byID[CompositeID(KindEmployee, employeeID)]
	if !ok {
		return records
	}

	planned := g.outEdges(empIdx, EdgePlannedFor)
	if len(planned) == 0 {
		return records
	}
	posIdx := planned[0].To

	held := make(map[int]bool)
	for _, e := range g.outEdges(empIdx, EdgeHasQualification) {
		held[e.To] = true
	}

	seen := make(map[int]bool)
	for _, required := range g.outEdges(posIdx, EdgeRequiresQualification) {
		if held[required.To] || seen[required.To] {
			continue
		}
		seen[required.To] = true
		qual := g.nodes[required.To]
		name := ""
		if qual.Qualification != nil {
			name = qual.Qualification.Name
		}
		records = append(records, QualificationRecord{
			QualificationID: qual.RawID,
			Name:            name,
		})
	}
	return records
}

// CoursesForSkill is the reverse lookup of all courses with a DEVELOPS_SKILL
// edge into the given skill
func (g *Graph) CoursesForSkill(skillID string) []CourseRecord {
	records := make([]CourseRecord, 0)
	skillIdx, ok := g.byID[CompositeID(KindSkill, skillID)]
	if !ok {
		return records
	}

	for _, develops := range g.inEdges(skillIdx, EdgeDevelopsSkill) {
		course := g.nodes[develops.From]
		name := ""
		if course.Course != nil {
			name = course.Course.Name
		}
		records = append(records, CourseRecord{
			CourseID:   course.RawID,
			CourseName: name,
		})
	}
	return records
}

// OrgUnitTree returns the descendant closure of an org unit via PARENT_OF,
// breadth-first. The visited set bounds the walk by total node count, so
// malformed cyclic hierarchies terminate.
func (g *Graph) OrgUnitTree(orgUnitID string) []OrgUnitRecord {
	records := make([]OrgUnitRecord, 0)
	rootIdx, ok := g.byID[CompositeID(KindOrgUnit, orgUnitID)]
	if !ok {
		return records
	}

	visited := map[int]bool{rootIdx: true}
	type item struct {
		idx   int
		depth int
	}
	queue := []item{{rootIdx, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth > 0 {
			records = append(records, g.orgUnitRecord(cur.idx, cur.depth))
		}
		for _, child := range g.outEdges(cur.idx, EdgeParentOf) {
			if visited[child.To] {
				continue
			}
			visited[child.To] = true
			queue = append(queue, item{child.To, cur.depth + 1})
		}
	}
	return records
}

func (g *Graph) orgUnitRecord(idx, depth int) OrgUnitRecord {
	n := g.nodes[idx]
	rec := OrgUnitRecord{OrgUnitID: n.RawID, Depth: depth}
	if n.OrgUnit != nil {
		rec.Code = n.OrgUnit.Code
		rec.NameEN = n.OrgUnit.NameEN
		rec.NameLocal = n.OrgUnit.NameLocal
	}
	return rec
}

// EmployeeProfile returns the employee's attributes plus one-hop display
// data for the org unit and planned position. The boolean reports whether
// the employee exists.
func (g *Graph) EmployeeProfile(employeeID string) (EmployeeProfileRecord, bool) {
	empIdx, ok := g.byID[CompositeID(KindEmployee, employeeID)]
	if !ok {
		return EmployeeProfileRecord{}, false
	}

	n := g.nodes[empIdx]
	rec := EmployeeProfileRecord{EmployeeID: n.RawID}
	if n.Employee != nil {
		rec.FirstName = n.Employee.FirstName
		rec.LastName = n.Employee.LastName
		rec.Profession = n.Employee.Profession
	}

	if works := g.outEdges(empIdx, EdgeWorksIn); len(works) > 0 {
		unit := g.nodes[works[0].To]
		rec.OrgUnitID = unit.RawID
		if unit.OrgUnit != nil {
			if unit.OrgUnit.NameEN != "" {
				rec.OrgUnitName = unit.OrgUnit.NameEN
			} else {
				rec.OrgUnitName = unit.OrgUnit.NameLocal
			}
		}
	}
	if planned := g.outEdges(empIdx, EdgePlannedFor); len(planned) > 0 {
		pos := g.nodes[planned[0].To]
		rec.PlannedPosition = pos.RawID
		if pos.Position != nil {
			rec.PositionTitle = pos.Position.Title
		}
	}
	return rec, true
}
