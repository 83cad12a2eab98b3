package graph

import (
	"io"
	"testing"

	"github.com/dd0wney/orggraph/pkg/clean"
	"github.com/dd0wney/orggraph/pkg/logging"
	"github.com/dd0wney/orggraph/pkg/table"
)

func testBuilder(policy EdgePolicy) *Builder {
	return NewBuilder(policy, logging.NewJSONLogger(io.Discard, logging.ErrorLevel))
}

func employeesTable(rows ...[]string) *table.Table {
	t := table.New(clean.FieldPersonalNumber, clean.FieldFirstName, clean.FieldLastName,
		clean.FieldPlannedPosition, clean.FieldOrgUnit)
	for _, r := range rows {
		cells := make([]table.Cell, len(r))
		for i, v := range r {
			if v == "" {
				cells[i] = table.Null()
			} else {
				cells[i] = table.StringCell(v)
			}
		}
		t.AppendRow(cells...)
	}
	return t
}

func qualificationsTable(rows ...[]string) *table.Table {
	t := table.New(clean.FieldPersonalNumber, clean.FieldQualificationID, clean.FieldQualificationName)
	for _, r := range rows {
		t.AppendRow(table.StringCell(r[0]), table.StringCell(r[1]), table.StringCell(r[2]))
	}
	return t
}

func TestBuilder_ShadowNodeEnrichment(t *testing.T) {
	b := testBuilder(EdgeMultiset)

	// Qualifications loader runs first and references employee 42
	b.AddQualifications(qualificationsTable([]string{"42", "Q1", "Forklift"}))

	n, ok := b.Graph().NodeByID(CompositeID(KindEmployee, "42"))
	if !ok {
		t.Fatal("shadow employee node missing")
	}
	if !n.Shadow() {
		t.Error("node should still be a shadow before the employees loader runs")
	}

	// Employees loader runs later for the same id
	b.AddEmployees(employeesTable([]string{"42", "Ada", "Lovelace", "", ""}))

	stats := b.Graph().Stats()
	if stats.NodesByKind[KindEmployee] != 1 {
		t.Fatalf("expected exactly one employee node, got %d", stats.NodesByKind[KindEmployee])
	}
	n, _ = b.Graph().NodeByID(CompositeID(KindEmployee, "42"))
	if n.Shadow() {
		t.Error("node should be enriched after the employees loader")
	}
	if n.Employee.FirstName != "Ada" || n.Employee.LastName != "Lovelace" {
		t.Errorf("attributes = %+v, want Ada Lovelace", n.Employee)
	}
}

func TestBuilder_EnrichmentNeverErases(t *testing.T) {
	b := testBuilder(EdgeMultiset)

	b.AddEmployees(employeesTable([]string{"1", "Ada", "Lovelace", "", ""}))
	// Second load carries a new profession but no name fields
	t2 := table.New(clean.FieldPersonalNumber, clean.FieldProfession)
	t2.AppendRow(table.StringCell("1"), table.StringCell("Engineer"))
	b.AddEmployees(t2)

	n, _ := b.Graph().NodeByID(CompositeID(KindEmployee, "1"))
	if n.Employee.FirstName != "Ada" {
		t.Errorf("missing field erased a known value: %+v", n.Employee)
	}
	if n.Employee.Profession != "Engineer" {
		t.Errorf("non-null value should overwrite: %+v", n.Employee)
	}
}

func TestBuilder_OrderIndependence(t *testing.T) {
	participation := table.New(clean.FieldPersonalNumber, clean.FieldCourseID)
	participation.AppendRow(table.StringCell("1"), table.StringCell("C1"))
	mapping := table.New(clean.FieldCourseID, clean.FieldSkillID)
	mapping.AppendRow(table.StringCell("C1"), table.StringCell("S1"))
	employees := employeesTable([]string{"1", "Ada", "", "", ""})

	forward := testBuilder(EdgeMultiset)
	forward.AddEmployees(employees)
	forward.AddCourseParticipation(participation)
	forward.AddSkillMappings(mapping)

	reverse := testBuilder(EdgeMultiset)
	reverse.AddSkillMappings(mapping)
	reverse.AddCourseParticipation(participation)
	reverse.AddEmployees(employees)

	fs, rs := forward.Graph().Stats(), reverse.Graph().Stats()
	if fs.NodeCount != rs.NodeCount || fs.EdgeCount != rs.EdgeCount {
		t.Errorf("stats differ by load order: forward (%d, %d) reverse (%d, %d)",
			fs.NodeCount, fs.EdgeCount, rs.NodeCount, rs.EdgeCount)
	}
	if got := reverse.Graph().EmployeeSkills("1"); len(got) != 1 {
		t.Errorf("reverse-order graph answers wrong: %v", got)
	}
}

func TestBuilder_EmployeeEdges(t *testing.T) {
	b := testBuilder(EdgeMultiset)
	b.AddEmployees(employeesTable([]string{"1", "Ada", "", "P1", "OU1"}))

	stats := b.Graph().Stats()
	if stats.EdgesByKind[EdgeWorksIn] != 1 {
		t.Error("WORKS_IN edge missing")
	}
	if stats.EdgesByKind[EdgePlannedFor] != 1 {
		t.Error("PLANNED_FOR edge missing")
	}
	if stats.NodesByKind[KindOrgUnit] != 1 || stats.NodesByKind[KindPosition] != 1 {
		t.Error("shadow endpoints missing")
	}
}

func TestBuilder_EdgePolicies(t *testing.T) {
	participation := table.New(clean.FieldPersonalNumber, clean.FieldCourseID)
	participation.AppendRow(table.StringCell("1"), table.StringCell("C1"))

	multiset := testBuilder(EdgeMultiset)
	multiset.AddCourseParticipation(participation)
	multiset.AddCourseParticipation(participation)
	if got := multiset.Graph().NumEdges(); got != 2 {
		t.Errorf("multiset re-run edges = %d, want 2", got)
	}

	deduped := testBuilder(EdgeDeduped)
	deduped.AddCourseParticipation(participation)
	deduped.AddCourseParticipation(participation)
	if got := deduped.Graph().NumEdges(); got != 1 {
		t.Errorf("deduped re-run edges = %d, want 1", got)
	}
	if deduped.EdgesDropped != 1 {
		t.Errorf("dropped counter = %d, want 1", deduped.EdgesDropped)
	}
}

func TestBuilder_DedupedKeepsDatedRetakes(t *testing.T) {
	participation := table.New(clean.FieldPersonalNumber, clean.FieldCourseID, clean.FieldCompletionDate)
	participation.AppendRow(table.StringCell("1"), table.StringCell("C1"), table.StringCell("2023-01-01"))
	participation.AppendRow(table.StringCell("1"), table.StringCell("C1"), table.StringCell("2024-01-01"))

	// Dates arrive as time cells from the cleaner; simulate that here
	for i := range participation.Rows {
		if parsed, ok := parseTestDate(participation.Cell(i, clean.FieldCompletionDate).AsString()); ok {
			participation.SetCell(i, clean.FieldCompletionDate, table.TimeCell(parsed))
		}
	}

	b := testBuilder(EdgeDeduped)
	b.AddCourseParticipation(participation)

	if got := b.Graph().NumEdges(); got != 2 {
		t.Errorf("dated retakes must stay distinct under dedupe, got %d edges", got)
	}
}
