package analysis

import (
	"reflect"
	"testing"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
)

func TestEncodeGenresColumnsAndRowSums(t *testing.T) {
	tbl := catalogTable()
	m := EncodeGenres(tbl)

	wantGenres := []string{
		"Children & Family Movies", "Comedies", "Dramas", "International Movies",
		"International TV Shows", "TV Comedies",
	}
	if !reflect.DeepEqual(m.Genres, wantGenres) {
		t.Fatalf("genres = %v, want %v", m.Genres, wantGenres)
	}
	// s6 has no genres and is dropped; side channels follow the retained rows
	if !reflect.DeepEqual(m.Rows, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("rows = %v", m.Rows)
	}
	if !reflect.DeepEqual(m.ShowIDs, []string{"s1", "s2", "s3", "s4", "s5"}) {
		t.Fatalf("show ids = %v", m.ShowIDs)
	}
	if m.Types[2] != catalog.TypeTVShow {
		t.Fatalf("types not zipped against retained rows: %v", m.Types)
	}
	for i, row := range m.Matrix {
		if len(row) != len(m.Genres) {
			t.Fatalf("row %d has %d columns", i, len(row))
		}
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		want := len(SplitValues(tbl.At(m.Rows[i]).ListedIn, GenreDelimiter))
		if int(sum) != want {
			t.Fatalf("row %d sums to %v, title has %d genres", i, sum, want)
		}
	}
}

func TestEncodeGenresUsesFilteredUniverse(t *testing.T) {
	filtered := catalogTable().Filter(catalog.Filter{Types: []string{catalog.TypeTVShow}})
	m := EncodeGenres(filtered)
	if !reflect.DeepEqual(m.Genres, []string{"International TV Shows", "TV Comedies"}) {
		t.Fatalf("genres = %v", m.Genres)
	}
}
