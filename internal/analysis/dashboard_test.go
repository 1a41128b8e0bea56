package analysis

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
)

func TestBuildDashboard(t *testing.T) {
	all := catalogTable()
	f := catalog.Filter{YearMin: 2019, YearMax: 2021}
	d, err := Build(all, f, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.Total != 6 || d.Matched != 5 {
		t.Fatalf("total/matched = %d/%d", d.Total, d.Matched)
	}
	if d.Top.Countries[0] != (Bucket{Key: "United States", Value: 2}) {
		t.Fatalf("unexpected top country: %v", d.Top.Countries)
	}
	last := d.Top.Countries[len(d.Top.Countries)-1]
	// United States 2, India 2, usa 1, France 1
	if last.Key != AverageLabel || last.Value != 1.5 {
		t.Fatalf("unexpected country average: %v", last)
	}
	if d.Projection == nil || len(d.Projection.Points) != 5 {
		t.Fatalf("projection should cover every filtered title with genres")
	}
	if d.ID == "" || d.ID != DashboardID(all.Name(), f) {
		t.Fatalf("unexpected id %q", d.ID)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	all := catalogTable()
	f := catalog.Filter{Types: []string{catalog.TypeMovie}}
	a, err := Build(all, f, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(all, f, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two builds over the same snapshot differ")
	}
	if a.Markdown() != b.Markdown() {
		t.Fatalf("markdown differs between runs")
	}
}

// The co-occurrence graph ignores the filter on purpose.
func TestBuildGraphUsesUnfilteredCatalog(t *testing.T) {
	all := catalogTable()
	full, err := Build(all, catalog.Filter{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	movies, err := Build(all, catalog.Filter{Types: []string{catalog.TypeMovie}}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(full.Graph, movies.Graph) {
		t.Fatalf("graph changed with the filter")
	}
	if _, ok := movies.Graph.Node("TV Comedies"); !ok {
		t.Fatalf("show-only genre missing from graph built for a movie filter")
	}
	if reflect.DeepEqual(full.Overview, movies.Overview) {
		t.Fatalf("overview should follow the filter")
	}
}

func TestBuildErrors(t *testing.T) {
	all := catalogTable()
	_, err := Build(all, catalog.Filter{YearMin: 1900, YearMax: 1901}, DefaultOptions())
	if !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("empty selection should be degenerate, got %v", err)
	}
	_, err = Build(all, catalog.Filter{YearMin: 2021, YearMax: 2019}, DefaultOptions())
	if !errors.Is(err, catalog.ErrInvalidFilter) {
		t.Fatalf("expected invalid filter, got %v", err)
	}
}

func TestViewsOnEmptyTableAreEmpty(t *testing.T) {
	empty := catalog.NewTable("empty", nil)
	opt := DefaultOptions()
	if v := TopOf(empty, opt); len(v.Countries)+len(v.Directors)+len(v.Genres) != 0 {
		t.Fatalf("expected empty rankings, got %+v", v)
	}
	if v := OverviewOf(empty); len(v.Types)+len(v.Ratings) != 0 {
		t.Fatalf("expected empty overview, got %+v", v)
	}
	if v := DurationOf(empty, opt); len(v.Movies)+len(v.TVShows) != 0 {
		t.Fatalf("expected empty durations, got %+v", v)
	}
}

func TestDashboardMarkdown(t *testing.T) {
	d, err := Build(catalogTable(), catalog.Filter{Countries: []string{"India"}}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	md := d.Markdown()
	for _, want := range []string{
		"[CATALOG SUMMARY]", "File: catalog", "Titles: 6 (matching filter: 2)",
		"Filter: countries India", "[TOP]", "Average(", "[GENRE PROJECTION]", "[GENRE CO-OCCURRENCE]",
		"Dramas ↔ International Movies: 2",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
