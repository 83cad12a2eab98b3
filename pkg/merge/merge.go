// Package merge derives named views from canonical tables using best-effort
// left joins. A join whose key column is absent on either side is skipped
// with a warning and the left side passes through unchanged; merges never
// abort the pipeline.
package merge

import (
	"github.com/dd0wney/orggraph/pkg/clean"
	"github.com/dd0wney/orggraph/pkg/logging"
	"github.com/dd0wney/orggraph/pkg/table"
)

// Merger builds the derived views
type Merger struct {
	log     logging.Logger
	skipped []string
}

// NewMerger creates a merger logging through the given logger
func NewMerger(log logging.Logger) *Merger {
	if log == nil {
		log = logging.DefaultLogger()
	}
	return &Merger{log: log}
}

// Skipped lists the views whose joins were skipped since the last reset
func (m *Merger) Skipped() []string {
	return m.skipped
}

// ResetSkipped clears the skipped-view list at the start of a run
func (m *Merger) ResetSkipped() {
	m.skipped = nil
}

// skip records and logs a skipped join
func (m *Merger) skip(view, reason, column string) {
	m.skipped = append(m.skipped, view)
	fields := []logging.Field{logging.TableName(view)}
	if column != "" {
		fields = append(fields, logging.ColumnName(column))
	}
	m.log.Warn("merge skipped: "+reason, fields...)
}

// LeftJoin joins right onto left where left[leftKey] == right[rightKey].
// Every left row appears at least once; rows with multiple matches fan out
// into long format (one output row per match). The boolean reports whether
// the join actually ran. Missing key columns or a nil right side skip the
// join and return the left side unmodified.
func (m *Merger) LeftJoin(view string, left, right *table.Table, leftKey, rightKey string) (*table.Table, bool) {
	if left == nil {
		return nil, false
	}
	if right == nil {
		m.skip(view, "right side unavailable", "")
		return left, false
	}
	if !left.HasColumn(leftKey) {
		m.skip(view, "join key absent on left side", leftKey)
		return left, false
	}
	if !right.HasColumn(rightKey) {
		m.skip(view, "join key absent on right side", rightKey)
		return left, false
	}

	rightKeyIdx := right.ColumnIndex(rightKey)

	// Build side: right rows bucketed by key
	buckets := make(map[string][]int, right.NumRows())
	for i := range right.Rows {
		key := right.Cell(i, rightKey).AsString()
		if key == "" {
			continue
		}
		buckets[key] = append(buckets[key], i)
	}

	// Output schema: left columns, then right columns minus the join key.
	// Right columns colliding with a left name get a "_2" suffix so both
	// stay addressable.
	leftNames := make(map[string]bool, left.NumCols())
	for _, c := range left.Columns {
		leftNames[c] = true
	}
	outCols := make([]string, 0, left.NumCols()+right.NumCols())
	outCols = append(outCols, left.Columns...)
	rightCols := make([]int, 0, right.NumCols())
	for j, c := range right.Columns {
		if j == rightKeyIdx {
			continue
		}
		name := c
		if leftNames[name] {
			name += "_2"
		}
		outCols = append(outCols, name)
		rightCols = append(rightCols, j)
	}

	out := table.New(outCols...)
	for i := range left.Rows {
		leftRow := left.Row(i)
		key := left.Cell(i, leftKey).AsString()
		matches := buckets[key]
		if key == "" || len(matches) == 0 {
			out.AppendRow(leftRow...)
			continue
		}
		for _, ri := range matches {
			rightRow := right.Row(ri)
			cells := make([]table.Cell, 0, len(outCols))
			cells = append(cells, leftRow...)
			for _, j := range rightCols {
				cells = append(cells, rightRow[j])
			}
			out.AppendRow(cells...)
		}
	}

	m.log.Info("merge complete",
		logging.TableName(view),
		logging.RowCount(out.NumRows()))
	return out, true
}

// LearningProfile joins course participation onto the employee master:
// one row per (employee, completed course), long format.
func (m *Merger) LearningProfile(employees, participation *table.Table) *table.Table {
	joined, _ := m.LeftJoin("employee_learning_profile",
		employees, participation,
		clean.FieldPersonalNumber, clean.FieldPersonalNumber)
	return joined
}

// SkillsMatrix joins the skill dictionary onto the course-to-skill mapping
func (m *Merger) SkillsMatrix(mapping, dictionary *table.Table) *table.Table {
	joined, _ := m.LeftJoin("skills_matrix",
		mapping, dictionary,
		clean.FieldSkillID, clean.FieldSkillID)
	return joined
}

// ComplianceTracking chains employees with their held qualifications and the
// requirements of their planned position
func (m *Merger) ComplianceTracking(employees, qualifications, roleQuals *table.Table) *table.Table {
	held, _ := m.LeftJoin("compliance_tracking",
		employees, qualifications,
		clean.FieldPersonalNumber, clean.FieldPersonalNumber)
	full, _ := m.LeftJoin("compliance_tracking",
		held, roleQuals,
		clean.FieldPlannedPosition, clean.FieldPositionID)
	return full
}

// Unified joins the skills matrix onto the learning profile via the course
// identifier. Learning-event data stays out: it shares no reliable key.
func (m *Merger) Unified(learningProfile, skillsMatrix *table.Table) *table.Table {
	joined, _ := m.LeftJoin("global_unified",
		learningProfile, skillsMatrix,
		clean.FieldCourseID, clean.FieldCourseID)
	return joined
}
