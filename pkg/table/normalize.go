package table

import (
	"strings"
	"unicode"
)

// NormalizeHeader maps an arbitrary raw header name onto its canonical
// snake_case form: lower-cased, every character that is not a letter, digit
// or underscore replaced with an underscore, runs of underscores collapsed,
// and leading/trailing underscores stripped. The transform is idempotent.
func NormalizeHeader(raw string) string {
	lowered := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(lowered))
	prevUnderscore := false
	for _, r := range lowered {
		mapped := r
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			mapped = '_'
		}
		if mapped == '_' {
			if prevUnderscore {
				continue
			}
			prevUnderscore = true
		} else {
			prevUnderscore = false
		}
		b.WriteRune(mapped)
	}

	return strings.Trim(b.String(), "_")
}

// NormalizeColumns rewrites every column name of the table to its canonical
// form, in place. Applied before any entity-specific renaming.
func NormalizeColumns(t *Table) {
	for i, c := range t.Columns {
		t.Columns[i] = NormalizeHeader(c)
	}
}
