package merge

import (
	"io"
	"testing"

	"github.com/dd0wney/orggraph/pkg/clean"
	"github.com/dd0wney/orggraph/pkg/logging"
	"github.com/dd0wney/orggraph/pkg/table"
)

func testMerger() *Merger {
	return NewMerger(logging.NewJSONLogger(io.Discard, logging.ErrorLevel))
}

func employeesFixture() *table.Table {
	t := table.New(clean.FieldPersonalNumber, clean.FieldFirstName, clean.FieldPlannedPosition)
	t.AppendRow(table.StringCell("1"), table.StringCell("Ada"), table.StringCell("P1"))
	t.AppendRow(table.StringCell("2"), table.StringCell("Grace"), table.Null())
	return t
}

func participationFixture() *table.Table {
	t := table.New(clean.FieldPersonalNumber, clean.FieldCourseID)
	t.AppendRow(table.StringCell("1"), table.StringCell("C1"))
	t.AppendRow(table.StringCell("1"), table.StringCell("C2"))
	return t
}

func TestLeftJoin_FanOut(t *testing.T) {
	m := testMerger()
	out, joined := m.LeftJoin("view", employeesFixture(), participationFixture(),
		clean.FieldPersonalNumber, clean.FieldPersonalNumber)

	if !joined {
		t.Fatal("join should have run")
	}
	// Employee 1 fans out to two course rows, employee 2 keeps one row
	if out.NumRows() != 3 {
		t.Fatalf("expected 3 rows (long format), got %d", out.NumRows())
	}
	if got := out.Cell(0, clean.FieldCourseID).AsString(); got != "C1" {
		t.Errorf("row 0 course = %q, want C1", got)
	}
	if got := out.Cell(1, clean.FieldCourseID).AsString(); got != "C2" {
		t.Errorf("row 1 course = %q, want C2", got)
	}
	if !out.Cell(2, clean.FieldCourseID).IsNull() {
		t.Error("unmatched left row should carry null right cells")
	}
}

func TestLeftJoin_MissingKeyReturnsLeftUnchanged(t *testing.T) {
	m := testMerger()

	// Employees table without a personal_number-equivalent column
	left := table.New(clean.FieldFirstName)
	left.AppendRow(table.StringCell("Ada"))

	out, joined := m.LeftJoin("employee_learning_profile", left, participationFixture(),
		clean.FieldPersonalNumber, clean.FieldPersonalNumber)

	if joined {
		t.Error("join should have been skipped")
	}
	if out != left {
		t.Error("left side must be returned unmodified")
	}
	if len(m.Skipped()) != 1 || m.Skipped()[0] != "employee_learning_profile" {
		t.Errorf("skipped views = %v", m.Skipped())
	}
}

func TestLeftJoin_NilRightReturnsLeft(t *testing.T) {
	m := testMerger()
	left := employeesFixture()

	out, joined := m.LeftJoin("view", left, nil, "k", "k")

	if joined || out != left {
		t.Error("nil right side must skip the join and pass the left through")
	}
}

func TestLeftJoin_CollidingColumnsSuffixed(t *testing.T) {
	m := testMerger()

	left := table.New("id", "name")
	left.AppendRow(table.StringCell("1"), table.StringCell("left-name"))
	right := table.New("id", "name")
	right.AppendRow(table.StringCell("1"), table.StringCell("right-name"))

	out, joined := m.LeftJoin("view", left, right, "id", "id")
	if !joined {
		t.Fatal("join should have run")
	}
	if got := out.Cell(0, "name").AsString(); got != "left-name" {
		t.Errorf("left column shadowed: %q", got)
	}
	if got := out.Cell(0, "name_2").AsString(); got != "right-name" {
		t.Errorf("right collision column = %q, want right-name", got)
	}
}

func TestComplianceTracking_ChainsJoins(t *testing.T) {
	m := testMerger()

	quals := table.New(clean.FieldPersonalNumber, clean.FieldQualificationID)
	quals.AppendRow(table.StringCell("1"), table.StringCell("Q1"))

	roleQuals := table.New(clean.FieldPositionID, clean.FieldQualificationID)
	roleQuals.AppendRow(table.StringCell("P1"), table.StringCell("Q9"))

	out := m.ComplianceTracking(employeesFixture(), quals, roleQuals)

	if out == nil {
		t.Fatal("compliance view missing")
	}
	// Employee 1: planned position P1 matched the role requirement row
	if got := out.Cell(0, clean.FieldQualificationID+"_2").AsString(); got != "Q9" {
		t.Errorf("required qualification = %q, want Q9", got)
	}
	// Employee 2 has no planned position; row survives with nulls
	if out.NumRows() != 2 {
		t.Errorf("expected 2 rows, got %d", out.NumRows())
	}
}

func TestUnified_BuildsFromViews(t *testing.T) {
	m := testMerger()

	profile := m.LearningProfile(employeesFixture(), participationFixture())

	mapping := table.New(clean.FieldCourseID, clean.FieldSkillID)
	mapping.AppendRow(table.StringCell("C1"), table.StringCell("S1"))
	dict := table.New(clean.FieldSkillID, clean.FieldSkillName)
	dict.AppendRow(table.StringCell("S1"), table.StringCell("Python"))

	matrix := m.SkillsMatrix(mapping, dict)
	unified := m.Unified(profile, matrix)

	if unified == nil {
		t.Fatal("unified view missing")
	}
	if got := unified.Cell(0, clean.FieldSkillName).AsString(); got != "Python" {
		t.Errorf("skill name through the chain = %q, want Python", got)
	}
}
