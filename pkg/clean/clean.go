// Package clean turns normalized raw source tables into canonical per-entity
// tables. Cleaners never fail on malformed rows or cells: bad values degrade
// to null and processing continues. The only diagnostics are warnings.
package clean

import (
	"strings"
	"time"

	"github.com/dd0wney/orggraph/pkg/logging"
	"github.com/dd0wney/orggraph/pkg/table"
)

// indefiniteYear is the sentinel far-future year exporting systems use for
// qualifications without an expiration ("valid until 9999-12-31").
const indefiniteYear = 9999

// dateLayouts covers the date formats seen across the exporting systems.
// Tried in order; first parse wins.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2006/01/02",
}

// Cleaner holds the shared dependencies of the per-entity cleaners
type Cleaner struct {
	log      logging.Logger
	degraded int
}

// NewCleaner creates a cleaner logging through the given logger
func NewCleaner(log logging.Logger) *Cleaner {
	if log == nil {
		log = logging.DefaultLogger()
	}
	return &Cleaner{log: log}
}

// Degraded counts the cells degraded to null since the last reset
func (c *Cleaner) Degraded() int {
	return c.degraded
}

// ResetDegraded clears the degraded-cell counter at the start of a run
func (c *Cleaner) ResetDegraded() {
	c.degraded = 0
}

// CanonicalID returns the canonical string form of an identifier cell:
// the trimmed string form, with leading zeros stripped from digit-only
// identifiers so that "007", " 007 " and the integer 7 share one identity.
func CanonicalID(c table.Cell) string {
	s := strings.TrimSpace(c.AsString())
	if s == "" {
		return ""
	}
	allDigits := true
	for _, r := range s {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		trimmed := strings.TrimLeft(s, "0")
		if trimmed == "" {
			return "0"
		}
		return trimmed
	}
	return s
}

// ParseDate parses a date-like cell. Time cells pass through; string cells
// are tried against the known layouts. Anything unparseable reads as unknown.
func ParseDate(c table.Cell) (time.Time, bool) {
	if t, ok := c.AsTime(); ok {
		return t, true
	}
	s := strings.TrimSpace(c.AsString())
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// prepare clones the source table and applies the alias renaming
func (c *Cleaner) prepare(t *table.Table, aliases map[string]string) *table.Table {
	out := t.Clone()
	out.RenameColumns(aliases)
	return out
}

// coerceIDColumns rewrites each listed identifier column to canonical string
// form. An entirely absent identifier column is a warning, not an error;
// merges that need it are skipped later.
func (c *Cleaner) coerceIDColumns(source string, t *table.Table, columns ...string) {
	for _, col := range columns {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			c.log.Warn("identifier column absent",
				logging.Source(source), logging.ColumnName(col))
			continue
		}
		for i := range t.Rows {
			if idx >= len(t.Rows[i]) {
				continue
			}
			id := CanonicalID(t.Rows[i][idx])
			if id == "" {
				t.Rows[i][idx] = table.Null()
			} else {
				t.Rows[i][idx] = table.StringCell(id)
			}
		}
	}
}

// coerceDateColumns parses each listed column into time cells, degrading
// unparseable values to null
func (c *Cleaner) coerceDateColumns(t *table.Table, columns ...string) {
	for _, col := range columns {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			continue
		}
		for i := range t.Rows {
			if idx >= len(t.Rows[i]) {
				continue
			}
			cell := t.Rows[i][idx]
			if cell.IsNull() {
				continue
			}
			if parsed, ok := ParseDate(cell); ok {
				t.Rows[i][idx] = table.TimeCell(parsed)
			} else {
				t.Rows[i][idx] = table.Null()
				c.degraded++
			}
		}
	}
}

// dedupeBy collapses rows sharing the key column to the first occurrence,
// preserving input order. Rows with a null key are kept as-is.
func (c *Cleaner) dedupeBy(source string, t *table.Table, keyColumn string) {
	idx := t.ColumnIndex(keyColumn)
	if idx < 0 {
		return
	}
	seen := make(map[string]bool, len(t.Rows))
	kept := t.Rows[:0]
	dropped := 0
	for _, row := range t.Rows {
		var key string
		if idx < len(row) && !row[idx].IsNull() {
			key = row[idx].AsString()
		}
		if key != "" && seen[key] {
			dropped++
			continue
		}
		if key != "" {
			seen[key] = true
		}
		kept = append(kept, row)
	}
	t.Rows = kept
	if dropped > 0 {
		c.log.Info("dropped duplicate rows",
			logging.Source(source),
			logging.ColumnName(keyColumn),
			logging.Int("dropped", dropped))
	}
}
