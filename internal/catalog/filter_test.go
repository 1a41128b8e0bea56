package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return NewTable("sample", []Title{
		{ShowID: "s1", Type: TypeMovie, ReleaseYear: 2010, Country: "United States, India", Rating: "R"},
		{ShowID: "s2", Type: TypeTVShow, ReleaseYear: 2015, Country: "India", Rating: "TV-MA"},
		{ShowID: "s3", Type: TypeMovie, ReleaseYear: 2020, Rating: "PG"},
		{ShowID: "s4", Type: TypeTVShow, ReleaseYear: 2021, Country: "France", Rating: "TV-14"},
	})
}

func ids(t *Table) []string {
	var out []string
	for _, ti := range t.Titles() {
		out = append(out, ti.ShowID)
	}
	return out
}

func TestFilterMatch(t *testing.T) {
	tbl := sampleTable()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter keeps all", Filter{}, []string{"s1", "s2", "s3", "s4"}},
		{"year range inclusive", Filter{YearMin: 2015, YearMax: 2020}, []string{"s2", "s3"}},
		{"type", Filter{Types: []string{TypeTVShow}}, []string{"s2", "s4"}},
		{"country substring drops absent", Filter{Countries: []string{"India"}}, []string{"s1", "s2"}},
		{"combined", Filter{YearMax: 2012, Types: []string{TypeMovie}, Countries: []string{"India", "France"}}, []string{"s1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tbl.Filter(tt.filter)))
		})
	}
	assert.Equal(t, 4, tbl.Len(), "filtering must not mutate the snapshot")
}

func TestFilterYearBoundsDropMissingYear(t *testing.T) {
	tbl := NewTable("sample", []Title{
		{ShowID: "s1", Type: TypeMovie, ReleaseYear: 2019},
		{ShowID: "s2", Type: TypeMovie},
	})
	assert.Equal(t, []string{"s1", "s2"}, ids(tbl.Filter(Filter{Types: []string{TypeMovie}})))
	assert.Equal(t, []string{"s1"}, ids(tbl.Filter(Filter{YearMin: 1900})))
	assert.Equal(t, []string{"s1"}, ids(tbl.Filter(Filter{YearMax: 2030})))
}

func TestFilterValidate(t *testing.T) {
	require.NoError(t, Filter{YearMin: 2000, YearMax: 2020, Types: []string{TypeMovie, TypeTVShow}}.Validate())

	err := Filter{YearMin: 2021, YearMax: 2020}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFilter))

	err = Filter{Types: []string{"Podcast"}}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFilter))

	require.Error(t, Filter{Countries: []string{""}}.Validate())
}

func TestFilterKeyIsOrderIndependent(t *testing.T) {
	a := Filter{YearMin: 2000, Types: []string{TypeTVShow, TypeMovie}, Countries: []string{"India", "France"}}
	b := Filter{YearMin: 2000, Types: []string{TypeMovie, TypeTVShow, TypeMovie}, Countries: []string{"France", "India"}}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Filter{YearMin: 2001}.Key())
}

func TestTableAccessorsReturnCopies(t *testing.T) {
	n := 90.0
	tbl := NewTable("x", []Title{{ShowID: "s1", DurationNum: &n}})
	n = 1
	got := tbl.At(0)
	require.NotNil(t, got.DurationNum)
	assert.Equal(t, 90.0, *got.DurationNum)

	*got.DurationNum = 5
	assert.Equal(t, 90.0, *tbl.At(0).DurationNum)
}

func TestTableYearBoundsAndCountries(t *testing.T) {
	tbl := sampleTable()
	lo, hi := tbl.YearBounds()
	assert.Equal(t, 2010, lo)
	assert.Equal(t, 2021, hi)
	assert.Equal(t, []string{"France", "India", "United States"}, tbl.Countries())
}
