package table

import (
	"github.com/dd0wney/orggraph/pkg/logging"
)

// SchemaReport compares a table's column set against the expected canonical
// set. Advisory only: reports drift, never alters control flow.
type SchemaReport struct {
	Table   string
	Rows    int
	Cols    int
	Missing []string
	Extra   []string
}

// CompareSchema builds a drift report for the named table
func CompareSchema(name string, t *Table, expected []string) SchemaReport {
	report := SchemaReport{
		Table:   name,
		Rows:    t.NumRows(),
		Cols:    t.NumCols(),
		Missing: make([]string, 0),
		Extra:   make([]string, 0),
	}

	have := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		have[c] = true
	}
	want := make(map[string]bool, len(expected))
	for _, c := range expected {
		want[c] = true
		if !have[c] {
			report.Missing = append(report.Missing, c)
		}
	}
	for _, c := range t.Columns {
		if !want[c] {
			report.Extra = append(report.Extra, c)
		}
	}

	return report
}

// Clean reports whether the column set matches the expected set exactly
func (r SchemaReport) Clean() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Log emits the report. Drift is a warning, a clean match is debug noise.
func (r SchemaReport) Log(log logging.Logger) {
	fields := []logging.Field{
		logging.TableName(r.Table),
		logging.RowCount(r.Rows),
		logging.Int("cols", r.Cols),
	}
	if r.Clean() {
		log.Debug("schema matches expected columns", fields...)
		return
	}
	fields = append(fields,
		logging.Any("missing", r.Missing),
		logging.Any("extra", r.Extra),
	)
	log.Warn("schema drift detected", fields...)
}
