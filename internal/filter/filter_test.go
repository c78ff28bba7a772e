package filter

import (
	"reflect"
	"testing"

	"taxdesk/internal/models"
)

var categories = []models.Category{
	{ID: "c1", Name: "France"},
	{ID: "c2", Name: "Spain"},
	{ID: "c3", Name: "Germany"},
}

var records = []models.Record{
	{ID: "1", Name: "amelie laurent", Country: "France", CountryID: "c1"},
	{ID: "2", Name: "carlos mendez", Country: "Spain", CountryID: "c2"},
	{ID: "3", Name: "greta fischer", Country: "Germany", CountryID: "c3"},
	{ID: "4", Name: "julien moreau", Country: "France", CountryID: "c1"},
}

func ids(rows []models.Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestVisible_EmptySelectionIsIdentity(t *testing.T) {
	got := Visible(records, categories, nil)
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("empty selection: got %v, want all records in order", ids(got))
	}

	got = Visible(records, categories, map[string]bool{})
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("empty map selection: got %v, want all records in order", ids(got))
	}
}

func TestVisible_FilterCorrectness(t *testing.T) {
	got := Visible(records, categories, map[string]bool{"c1": true})
	want := []string{"1", "4"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("c1 selection: got %v, want %v", ids(got), want)
	}

	got = Visible(records, categories, map[string]bool{"c1": true, "c3": true})
	want = []string{"1", "3", "4"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("c1+c3 selection: got %v, want %v", ids(got), want)
	}
}

func TestVisible_MatchesByNameNotID(t *testing.T) {
	// A record's countryId can be ahead of its country mid optimistic
	// update; matching is by name, so the stale name decides.
	stale := []models.Record{
		{ID: "1", Country: "France", CountryID: "c2"},
	}

	got := Visible(stale, categories, map[string]bool{"c2": true})
	if len(got) != 0 {
		t.Fatalf("name mismatch should exclude record despite matching id, got %v", ids(got))
	}
	got = Visible(stale, categories, map[string]bool{"c1": true})
	if len(got) != 1 {
		t.Fatal("record should match the selection naming its country field")
	}
}

func TestVisible_UnknownSelectionYieldsNothing(t *testing.T) {
	got := Visible(records, categories, map[string]bool{"zz": true})
	if len(got) != 0 {
		t.Fatalf("unknown category selection: got %v, want none", ids(got))
	}
}

func TestVisible_Deterministic(t *testing.T) {
	sel := map[string]bool{"c1": true, "c2": true}
	first := Visible(records, categories, sel)
	for i := 0; i < 10; i++ {
		if got := Visible(records, categories, sel); !reflect.DeepEqual(got, first) {
			t.Fatalf("iteration %d: got %v, want %v", i, ids(got), ids(first))
		}
	}
}

func TestVisible_DoesNotMutateInputs(t *testing.T) {
	recsCopy := make([]models.Record, len(records))
	copy(recsCopy, records)

	_ = Visible(records, categories, map[string]bool{"c1": true})
	if !reflect.DeepEqual(records, recsCopy) {
		t.Fatal("Visible mutated its input")
	}
}

func TestMatchName(t *testing.T) {
	// Case-insensitive substring: "AR" hits "carlos" only.
	got := MatchName(records, "AR")
	if !reflect.DeepEqual(ids(got), []string{"2"}) {
		t.Fatalf("query AR: got %v, want [2]", ids(got))
	}

	if got := MatchName(records, "  "); !reflect.DeepEqual(got, records) {
		t.Fatal("blank query should pass all records through")
	}

	if got := MatchName(records, "zzz"); len(got) != 0 {
		t.Fatalf("no-match query: got %v", ids(got))
	}
}
