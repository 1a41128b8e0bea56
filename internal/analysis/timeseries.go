package analysis

import (
	"sort"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
)

// YearCount is the number of titles released in Year under a secondary key
// (content type or rating).
type YearCount struct {
	Year  int    `json:"year" yaml:"year"`
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// MonthCount is the number of titles added in a calendar month, formatted YYYY-MM.
type MonthCount struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

// RatingTrend pairs per-year rating counts with the rating legend. Categories come
// from the whole catalog so the legend stays put while filters change; Points only
// cover the filtered titles.
type RatingTrend struct {
	Categories []string    `json:"categories" yaml:"categories"`
	Points     []YearCount `json:"points" yaml:"points"`
}

// YearByType counts titles per (release year, type). Combinations with no titles
// are absent; callers must not assume a dense year range.
func YearByType(t *catalog.Table) []YearCount {
	return countByYear(t, func(ti catalog.Title) (string, bool) { return ti.Type, ti.Type != "" })
}

// YearByRating counts filtered titles per (release year, rating) and attaches the
// sorted rating universe of the unfiltered catalog.
func YearByRating(filtered, universe *catalog.Table) RatingTrend {
	var ratings []string
	for _, ti := range universe.Titles() {
		ratings = append(ratings, ti.Rating)
	}
	return RatingTrend{
		Categories: Categories(ratings),
		Points:     countByYear(filtered, func(ti catalog.Title) (string, bool) { return ti.Rating, true }),
	}
}

// MonthlyAdded counts titles per month of their date_added, oldest first. Titles
// without a date are left out of this view only.
func MonthlyAdded(t *catalog.Table) []MonthCount {
	counts := map[string]int{}
	for _, ti := range t.Titles() {
		if ti.DateAdded == nil {
			continue
		}
		counts[ti.DateAdded.Format("2006-01")]++
	}
	out := make([]MonthCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, MonthCount{Month: m, Count: n})
	}
	// zero-padded YYYY-MM sorts chronologically
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Categories returns the distinct labels sorted, the stable order presentation
// layers key their color maps on.
func Categories(values []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func countByYear(t *catalog.Table, key func(catalog.Title) (string, bool)) []YearCount {
	type yk struct {
		year int
		key  string
	}
	counts := map[yk]int{}
	for _, ti := range t.Titles() {
		if !ti.HasYear() {
			continue
		}
		k, ok := key(ti)
		if !ok {
			continue
		}
		counts[yk{ti.ReleaseYear, k}]++
	}
	out := make([]YearCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, YearCount{Year: k.year, Key: k.key, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year == out[j].Year {
			return out[i].Key < out[j].Key
		}
		return out[i].Year < out[j].Year
	})
	return out
}
