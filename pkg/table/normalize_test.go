package table

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Personalnummer", "personalnummer"},
		{"  Pers.-No. ", "pers_no"},
		{"Course / Training ID", "course_training_id"},
		{"gültig bis", "gültig_bis"},
		{"ALREADY_SNAKE_CASE", "already_snake_case"},
		{"multiple   spaces", "multiple_spaces"},
		{"__wrapped__", "wrapped"},
		{"***", ""},
		{"", ""},
		{"Qualifikation (ID)", "qualifikation_id"},
	}

	for _, tc := range cases {
		if got := NormalizeHeader(tc.raw); got != tc.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeHeader_Idempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("normalize is idempotent", prop.ForAll(
		func(raw string) bool {
			once := NormalizeHeader(raw)
			return NormalizeHeader(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("normalized headers never carry edge underscores or doubles", prop.ForAll(
		func(raw string) bool {
			h := NormalizeHeader(raw)
			if h == "" {
				return true
			}
			if h[0] == '_' || h[len(h)-1] == '_' {
				return false
			}
			for i := 1; i < len(h); i++ {
				if h[i] == '_' && h[i-1] == '_' {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestNormalizeColumns(t *testing.T) {
	tbl := New("Personalnummer", "First Name", "Gültig bis")
	NormalizeColumns(tbl)

	want := []string{"personalnummer", "first_name", "gültig_bis"}
	for i, col := range tbl.Columns {
		if col != want[i] {
			t.Errorf("column %d = %q, want %q", i, col, want[i])
		}
	}
}
