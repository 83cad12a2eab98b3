package clean

import (
	"github.com/dd0wney/orggraph/pkg/table"
)

// Employees cleans the employee master table. The personal number is the
// primary identifier and rows sharing it collapse to the first occurrence.
func (c *Cleaner) Employees(t *table.Table, aliases map[string]string) *table.Table {
	out := c.prepare(t, MergeAliases(DefaultEmployeeAliases, aliases))
	c.coerceIDColumns("employees", out,
		FieldPersonalNumber, FieldPlannedPosition, FieldOrgUnit)
	c.dedupeBy("employees", out, FieldPersonalNumber)
	table.CompareSchema("employees", out, EmployeeColumns).Log(c.log)
	return out
}

// CourseParticipation cleans course completion records. Retakes are legal, so
// no dedupe happens here; rows are distinct by completion date.
func (c *Cleaner) CourseParticipation(t *table.Table, aliases map[string]string) *table.Table {
	out := c.prepare(t, MergeAliases(DefaultParticipationAliases, aliases))
	c.coerceIDColumns("course_participation", out, FieldPersonalNumber, FieldCourseID)
	c.coerceDateColumns(out, FieldCompletionDate)
	table.CompareSchema("course_participation", out, ParticipationColumns).Log(c.log)
	return out
}

// Qualifications cleans held-qualification records and derives the indefinite
// flag: an end date in the sentinel far-future year means no expiration.
func (c *Cleaner) Qualifications(t *table.Table, aliases map[string]string) *table.Table {
	out := c.prepare(t, MergeAliases(DefaultQualificationAliases, aliases))
	c.coerceIDColumns("qualifications", out, FieldPersonalNumber, FieldQualificationID)
	c.coerceDateColumns(out, FieldStartDate, FieldEndDate)

	if !out.HasColumn(FieldIndefinite) {
		out.AddColumn(FieldIndefinite, table.BoolCell(false))
	}
	for i := range out.Rows {
		if end, ok := out.Cell(i, FieldEndDate).AsTime(); ok && end.Year() >= indefiniteYear {
			out.SetCell(i, FieldIndefinite, table.BoolCell(true))
		}
	}

	table.CompareSchema("qualifications", out, QualificationColumns).Log(c.log)
	return out
}

// OrgStructure cleans the organizational hierarchy table
func (c *Cleaner) OrgStructure(t *table.Table, aliases map[string]string) *table.Table {
	out := c.prepare(t, MergeAliases(DefaultOrgStructureAliases, aliases))
	c.coerceIDColumns("org_structure", out, FieldOrgUnitID, FieldParentUnit)
	c.dedupeBy("org_structure", out, FieldOrgUnitID)
	table.CompareSchema("org_structure", out, OrgStructureColumns).Log(c.log)
	return out
}

// SkillDictionary cleans the skill reference table
func (c *Cleaner) SkillDictionary(t *table.Table, aliases map[string]string) *table.Table {
	out := c.prepare(t, MergeAliases(DefaultSkillDictionaryAliases, aliases))
	c.coerceIDColumns("skill_dictionary", out, FieldSkillID)
	c.dedupeBy("skill_dictionary", out, FieldSkillID)
	table.CompareSchema("skill_dictionary", out, SkillDictionaryColumns).Log(c.log)
	return out
}

// SkillMapping cleans the course-to-skill mapping table
func (c *Cleaner) SkillMapping(t *table.Table, aliases map[string]string) *table.Table {
	out := c.prepare(t, MergeAliases(DefaultSkillMappingAliases, aliases))
	c.coerceIDColumns("skill_mapping", out, FieldCourseID, FieldSkillID)
	table.CompareSchema("skill_mapping", out, SkillMappingColumns).Log(c.log)
	return out
}

// RoleQualifications cleans the position requirement table
func (c *Cleaner) RoleQualifications(t *table.Table, aliases map[string]string) *table.Table {
	out := c.prepare(t, MergeAliases(DefaultRoleQualificationAliases, aliases))
	c.coerceIDColumns("role_qualifications", out, FieldPositionID, FieldQualificationID)
	table.CompareSchema("role_qualifications", out, RoleQualificationColumns).Log(c.log)
	return out
}

// LearningEvents cleans ad-hoc learning event records. Kept as a canonical
// table for reporting even though no merge view has a reliable key into it.
func (c *Cleaner) LearningEvents(t *table.Table, aliases map[string]string) *table.Table {
	out := c.prepare(t, MergeAliases(DefaultLearningEventAliases, aliases))
	c.coerceIDColumns("learning_events", out, FieldPersonalNumber, FieldEventID)
	c.coerceDateColumns(out, FieldEventDate)
	table.CompareSchema("learning_events", out, LearningEventColumns).Log(c.log)
	return out
}

// LearningCatalog cleans the course catalog table
func (c *Cleaner) LearningCatalog(t *table.Table, aliases map[string]string) *table.Table {
	out := c.prepare(t, MergeAliases(DefaultLearningCatalogAliases, aliases))
	c.coerceIDColumns("learning_catalog", out, FieldCourseID)
	c.dedupeBy("learning_catalog", out, FieldCourseID)
	table.CompareSchema("learning_catalog", out, LearningCatalogColumns).Log(c.log)
	return out
}
