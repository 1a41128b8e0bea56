package analysis

import (
	"reflect"
	"testing"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
)

func TestSplitValuesTrimsAndDropsEmpty(t *testing.T) {
	got := SplitValues(" France,, Belgium ,", CountryDelimiter)
	want := []string{"France", "Belgium"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitValues = %v, want %v", got, want)
	}
	if got := SplitValues("", CountryDelimiter); len(got) != 0 {
		t.Fatalf("empty input should give no fragments, got %v", got)
	}
}

func TestGenreDelimiterKeepsBareComma(t *testing.T) {
	got := SplitValues("Music & Musicals, Action,Adventure", GenreDelimiter)
	want := []string{"Music & Musicals", "Action,Adventure"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitValues = %v, want %v", got, want)
	}
}

func TestExplodeAttributesEveryFragment(t *testing.T) {
	tbl := catalogTable()
	rows := Explode(tbl, catalog.FieldCountry, CountryDelimiter)

	nonNull := 0
	for _, ti := range tbl.Titles() {
		if ti.Country != "" {
			nonNull++
		}
	}
	if len(rows) < nonNull {
		t.Fatalf("exploded %d rows from %d non-null values", len(rows), nonNull)
	}
	want := []Exploded{
		{Row: 0, Value: "United States"}, {Row: 0, Value: "India"},
		{Row: 1, Value: "India"},
		{Row: 2, Value: "United States"},
		{Row: 3, Value: "usa"},
		{Row: 4, Value: "France"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("Explode = %v, want %v", rows, want)
	}
}

func TestExplodeEqualityWhenSingleValued(t *testing.T) {
	tbl := catalog.NewTable("x", []catalog.Title{
		{Country: "Japan"}, {Country: ""}, {Country: "Spain"},
	})
	if got := len(Explode(tbl, catalog.FieldCountry, CountryDelimiter)); got != 2 {
		t.Fatalf("expected one row per single-valued title, got %d", got)
	}
}
