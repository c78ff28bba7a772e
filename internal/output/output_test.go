package output

import (
	"strings"
	"testing"
	"time"

	"taxdesk/internal/models"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"amelie laurent", "Amelie Laurent"},
		{"CARLOS MENDEZ", "Carlos Mendez"},
		{"  spaced   out  ", "Spaced Out"},
		{"x", "X"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRequestDate(t *testing.T) {
	got := FormatRequestDate(time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC))
	if got != "Jan 15, 2026" {
		t.Errorf("FormatRequestDate() = %q, want 'Jan 15, 2026'", got)
	}
	if got := FormatRequestDate(time.Time{}); got != "-" {
		t.Errorf("FormatRequestDate(zero) = %q, want '-'", got)
	}
}

func TestFormatGender(t *testing.T) {
	// Styles may or may not emit ANSI depending on the test terminal, so
	// check the visible label only.
	if got := FormatGender(models.GenderFemale); !strings.Contains(got, "Female") {
		t.Errorf("FormatGender(female) = %q, should contain 'Female'", got)
	}
	if got := FormatGender(models.GenderMale); !strings.Contains(got, "Male") {
		t.Errorf("FormatGender(male) = %q, should contain 'Male'", got)
	}
	// Unknown genders pass through unstyled.
	if got := FormatGender(models.Gender("other")); got != "Other" {
		t.Errorf("FormatGender(other) = %q, want 'Other'", got)
	}
	if got := FormatGender(models.Gender("")); got != "" {
		t.Errorf("FormatGender(empty) = %q, want empty", got)
	}
}

func TestRecordTable(t *testing.T) {
	records := []models.Record{
		{ID: "1", Name: "amelie laurent", Gender: models.GenderFemale, Country: "France",
			RequestDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Name: "carlos mendez", Gender: models.GenderMale, Country: "Spain"},
	}

	result := RecordTable(records, 0)
	for _, want := range []string{"ENTITY", "Amelie Laurent", "Carlos Mendez", "France", "Spain", "Jan 15, 2026"} {
		if !strings.Contains(result, want) {
			t.Errorf("RecordTable should contain %q:\n%s", want, result)
		}
	}
	// An unset request date renders as a dash.
	carlosLine := ""
	for _, line := range strings.Split(result, "\n") {
		if strings.Contains(line, "Carlos") {
			carlosLine = line
		}
	}
	if !strings.Contains(carlosLine, "-") {
		t.Errorf("unset date should render as '-': %q", carlosLine)
	}
}

func TestRecordTableTruncatesLongNames(t *testing.T) {
	records := []models.Record{
		{ID: "1", Name: "an entity with a very long registered trading name", Country: "France"},
	}
	result := RecordTable(records, 60)
	if !strings.Contains(result, "…") {
		t.Errorf("long name should be truncated with ellipsis:\n%s", result)
	}
}

func TestRecordTableEmpty(t *testing.T) {
	result := RecordTable(nil, 0)
	if !strings.Contains(result, "no records match") {
		t.Errorf("empty table should show placeholder:\n%s", result)
	}
}

func TestCategoryTable(t *testing.T) {
	result := CategoryTable([]models.Category{
		{ID: "c1", Name: "France"},
		{ID: "c2", Name: "Spain"},
	})
	for _, want := range []string{"ID", "COUNTRY", "c1", "France", "c2", "Spain"} {
		if !strings.Contains(result, want) {
			t.Errorf("CategoryTable should contain %q:\n%s", want, result)
		}
	}
}
