package clean

// Canonical field names shared by the merge stage and the graph builder.
const (
	FieldPersonalNumber  = "personal_number"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldProfession      = "profession"
	FieldPlannedPosition = "planned_position"
	FieldOrgUnit         = "org_unit"

	FieldCourseID       = "course_id"
	FieldCourseName     = "course_name"
	FieldCourseCategory = "course_category"
	FieldCompletionDate = "completion_date"

	FieldQualificationID   = "qualification_id"
	FieldQualificationName = "qualification_name"
	FieldStartDate         = "start_date"
	FieldEndDate           = "end_date"
	FieldIndefinite        = "indefinite"

	FieldOrgUnitID   = "org_unit_id"
	FieldOrgCode     = "org_code"
	FieldNameEN      = "name_en"
	FieldNameLocal   = "name_local"
	FieldParentUnit  = "parent_org_unit_id"

	FieldSkillID       = "skill_id"
	FieldSkillName     = "skill_name"
	FieldSkillCategory = "skill_category"

	FieldPositionID    = "position_id"
	FieldPositionTitle = "position_title"

	FieldEventID   = "event_id"
	FieldEventName = "event_name"
	FieldEventDate = "event_date"
)

// Expected canonical column sets per cleaned table, used for the advisory
// schema-drift diagnostic.
var (
	EmployeeColumns = []string{
		FieldPersonalNumber, FieldFirstName, FieldLastName,
		FieldProfession, FieldPlannedPosition, FieldOrgUnit,
	}
	ParticipationColumns = []string{
		FieldPersonalNumber, FieldCourseID, FieldCourseName, FieldCompletionDate,
	}
	QualificationColumns = []string{
		FieldPersonalNumber, FieldQualificationID, FieldQualificationName,
		FieldStartDate, FieldEndDate, FieldIndefinite,
	}
	OrgStructureColumns = []string{
		FieldOrgUnitID, FieldOrgCode, FieldNameEN, FieldNameLocal, FieldParentUnit,
	}
	SkillDictionaryColumns = []string{
		FieldSkillID, FieldSkillName, FieldSkillCategory,
	}
	SkillMappingColumns = []string{
		FieldCourseID, FieldSkillID,
	}
	RoleQualificationColumns = []string{
		FieldPositionID, FieldPositionTitle, FieldQualificationID,
	}
	LearningEventColumns = []string{
		FieldPersonalNumber, FieldEventID, FieldEventName, FieldEventDate,
	}
	LearningCatalogColumns = []string{
		FieldCourseID, FieldCourseName, FieldCourseCategory,
	}
)

// Default alias maps covering the header variants the known exporting systems
// produce (already column-normalized, so keys are snake_case). Callers merge
// their own overrides on top via MergeAliases.
var (
	DefaultEmployeeAliases = map[string]string{
		"personalnummer":   FieldPersonalNumber,
		"pers_no":          FieldPersonalNumber,
		"employee_id":      FieldPersonalNumber,
		"vorname":          FieldFirstName,
		"nachname":         FieldLastName,
		"beruf":            FieldProfession,
		"current_position": FieldProfession,
		"planstelle":       FieldPlannedPosition,
		"target_position":  FieldPlannedPosition,
		"org_einheit":      FieldOrgUnit,
		"organizational_unit": FieldOrgUnit,
	}
	DefaultParticipationAliases = map[string]string{
		"personalnummer":    FieldPersonalNumber,
		"pers_no":           FieldPersonalNumber,
		"employee_id":       FieldPersonalNumber,
		"kurs_id":           FieldCourseID,
		"training_id":       FieldCourseID,
		"kursbezeichnung":   FieldCourseName,
		"training_title":    FieldCourseName,
		"abschlussdatum":    FieldCompletionDate,
		"completed_on":      FieldCompletionDate,
	}
	DefaultQualificationAliases = map[string]string{
		"personalnummer":     FieldPersonalNumber,
		"pers_no":            FieldPersonalNumber,
		"employee_id":        FieldPersonalNumber,
		"qualifikation_id":   FieldQualificationID,
		"qual_id":            FieldQualificationID,
		"qualifikation":      FieldQualificationName,
		"qualification":      FieldQualificationName,
		"gueltig_von":        FieldStartDate,
		"valid_from":         FieldStartDate,
		"gueltig_bis":        FieldEndDate,
		"valid_to":           FieldEndDate,
	}
	DefaultOrgStructureAliases = map[string]string{
		"org_einheit_id":  FieldOrgUnitID,
		"unit_id":         FieldOrgUnitID,
		"kuerzel":         FieldOrgCode,
		"short_code":      FieldOrgCode,
		"bezeichnung_en":  FieldNameEN,
		"name_english":    FieldNameEN,
		"bezeichnung":     FieldNameLocal,
		"name_native":     FieldNameLocal,
		"uebergeordnet":   FieldParentUnit,
		"parent_unit":     FieldParentUnit,
	}
	DefaultSkillDictionaryAliases = map[string]string{
		"kompetenz_id":   FieldSkillID,
		"skill_code":     FieldSkillID,
		"kompetenz":      FieldSkillName,
		"skill":          FieldSkillName,
		"kategorie":      FieldSkillCategory,
		"category":       FieldSkillCategory,
		"beschreibung":   FieldSkillCategory,
	}
	DefaultSkillMappingAliases = map[string]string{
		"kurs_id":      FieldCourseID,
		"training_id":  FieldCourseID,
		"kompetenz_id": FieldSkillID,
		"skill_code":   FieldSkillID,
	}
	DefaultRoleQualificationAliases = map[string]string{
		"planstelle_id":    FieldPositionID,
		"role_id":          FieldPositionID,
		"planstelle":       FieldPositionTitle,
		"role_title":       FieldPositionTitle,
		"qualifikation_id": FieldQualificationID,
		"qual_id":          FieldQualificationID,
	}
	DefaultLearningEventAliases = map[string]string{
		"personalnummer": FieldPersonalNumber,
		"pers_no":        FieldPersonalNumber,
		"veranstaltung_id": FieldEventID,
		"session_id":     FieldEventID,
		"veranstaltung":  FieldEventName,
		"session_title":  FieldEventName,
		"datum":          FieldEventDate,
		"held_on":        FieldEventDate,
	}
	DefaultLearningCatalogAliases = map[string]string{
		"kurs_id":         FieldCourseID,
		"training_id":     FieldCourseID,
		"kursbezeichnung": FieldCourseName,
		"training_title":  FieldCourseName,
		"kategorie":       FieldCourseCategory,
		"category":        FieldCourseCategory,
	}
)

// MergeAliases overlays caller-specific aliases on top of a default map
func MergeAliases(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
