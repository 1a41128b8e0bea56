package analysis

import (
	"strings"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
)

// Delimiters for the multi-valued catalog fields. Genres split on comma plus
// space so a label holding a bare comma stays whole.
const (
	CountryDelimiter  = ","
	DirectorDelimiter = ","
	GenreDelimiter    = ", "
)

// Exploded is one fragment of a multi-valued field, attributed to its source row.
type Exploded struct {
	Row   int
	Value string
}

// SplitValues splits s on delim, trims each fragment and drops empty ones.
func SplitValues(s, delim string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, delim)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Explode emits one row per fragment of field, in source-row order. Titles where
// the field is absent produce nothing.
func Explode(t *catalog.Table, field catalog.Field, delim string) []Exploded {
	var out []Exploded
	for i, ti := range t.Titles() {
		v, ok := ti.Value(field)
		if !ok {
			continue
		}
		for _, frag := range SplitValues(v, delim) {
			out = append(out, Exploded{Row: i, Value: frag})
		}
	}
	return out
}

// Values drops the row attribution.
func Values(rows []Exploded) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}
	return out
}
