package catalog

import (
	"sort"
	"strings"
)

// Table is an immutable snapshot of the catalog. Nothing mutates it after
// construction; Filter and the accessors hand out copies.
type Table struct {
	name   string
	titles []Title
}

// NewTable copies titles into a new snapshot.
func NewTable(name string, titles []Title) *Table {
	cp := make([]Title, len(titles))
	for i := range titles {
		cp[i] = titles[i].clone()
	}
	return &Table{name: name, titles: cp}
}

// Name is the base name of the source the table was loaded from.
func (t *Table) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Len returns the number of titles.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.titles)
}

// At returns a copy of the i-th title.
func (t *Table) At(i int) Title { return t.titles[i].clone() }

// Titles returns a copy of every title in source order.
func (t *Table) Titles() []Title {
	out := make([]Title, t.Len())
	for i := range out {
		out[i] = t.titles[i].clone()
	}
	return out
}

// YearBounds returns the smallest and largest known release year, or zeros when
// no title has one.
func (t *Table) YearBounds() (lo, hi int) {
	for _, ti := range t.titles {
		if !ti.HasYear() {
			continue
		}
		if lo == 0 || ti.ReleaseYear < lo {
			lo = ti.ReleaseYear
		}
		if ti.ReleaseYear > hi {
			hi = ti.ReleaseYear
		}
	}
	return lo, hi
}

// Countries lists every distinct country fragment, sorted, for filter pickers.
func (t *Table) Countries() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, ti := range t.titles {
		if ti.Country == "" {
			continue
		}
		for _, c := range strings.Split(ti.Country, ",") {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Filter returns a new table holding the titles that pass f. The receiver is untouched.
// The filter is expected to be validated by the caller.
func (t *Table) Filter(f Filter) *Table {
	out := &Table{name: t.Name()}
	for _, ti := range t.titles {
		if f.Match(ti) {
			out.titles = append(out.titles, ti.clone())
		}
	}
	return out
}
