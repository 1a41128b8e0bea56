package analysis

import (
	"sort"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
)

// Membership is the binary title-by-genre matrix. Row i describes the title at
// Rows[i] of the encoded table; ShowIDs and Types are zipped against the retained
// titles, not the original table index.
type Membership struct {
	Genres  []string    `json:"genres" yaml:"genres"`
	Rows    []int       `json:"rows" yaml:"rows"`
	ShowIDs []string    `json:"show_ids" yaml:"show_ids"`
	Types   []string    `json:"types" yaml:"types"`
	Matrix  [][]float64 `json:"matrix" yaml:"matrix"`
}

// EncodeGenres builds the membership matrix over the genres observed in t, with
// columns in sorted label order. Titles whose genre list is empty are dropped.
func EncodeGenres(t *catalog.Table) Membership {
	type entry struct {
		row    int
		title  catalog.Title
		genres []string
	}
	var kept []entry
	seen := map[string]struct{}{}
	for i, ti := range t.Titles() {
		gs := SplitValues(ti.ListedIn, GenreDelimiter)
		if len(gs) == 0 {
			continue
		}
		kept = append(kept, entry{row: i, title: ti, genres: gs})
		for _, g := range gs {
			seen[g] = struct{}{}
		}
	}
	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	col := make(map[string]int, len(genres))
	for i, g := range genres {
		col[g] = i
	}

	m := Membership{
		Genres:  genres,
		Rows:    make([]int, len(kept)),
		ShowIDs: make([]string, len(kept)),
		Types:   make([]string, len(kept)),
		Matrix:  make([][]float64, len(kept)),
	}
	for i, e := range kept {
		row := make([]float64, len(genres))
		for _, g := range e.genres {
			row[col[g]] = 1
		}
		m.Rows[i] = e.row
		m.ShowIDs[i] = e.title.ShowID
		m.Types[i] = e.title.Type
		m.Matrix[i] = row
	}
	return m
}
