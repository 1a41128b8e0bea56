package analysis

import (
	"fmt"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
	"github.com/google/uuid"
)

// Options holds the per-view constants of the dashboard.
type Options struct {
	TopCountries int    `json:"top_countries" yaml:"top_countries"`
	TopDirectors int    `json:"top_directors" yaml:"top_directors"`
	TopGenres    int    `json:"top_genres" yaml:"top_genres"`
	TopDurations int    `json:"top_durations" yaml:"top_durations"`
	Layout       Layout `json:"layout" yaml:"layout"`
}

// DefaultOptions returns the k values the dashboard ships with.
func DefaultOptions() Options {
	return Options{
		TopCountries: 10,
		TopDirectors: 10,
		TopGenres:    10,
		TopDurations: 15,
		Layout:       DefaultLayout(),
	}
}

// Overview holds the two distribution pies.
type Overview struct {
	Types   []Bucket `json:"types" yaml:"types"`
	Ratings []Bucket `json:"ratings" yaml:"ratings"`
}

// TimeViews holds the release-year and date-added series.
type TimeViews struct {
	YearByType   []YearCount  `json:"year_by_type" yaml:"year_by_type"`
	MonthlyAdded []MonthCount `json:"monthly_added" yaml:"monthly_added"`
	RatingTrend  RatingTrend  `json:"rating_trend" yaml:"rating_trend"`
}

// TopViews holds the top-k-with-average rankings.
type TopViews struct {
	Countries []Bucket `json:"countries" yaml:"countries"`
	Directors []Bucket `json:"directors" yaml:"directors"`
	Genres    []Bucket `json:"genres" yaml:"genres"`
}

// DurationViews ranks directors by mean duration, per content type.
type DurationViews struct {
	Movies  []Bucket `json:"movies" yaml:"movies"`
	TVShows []Bucket `json:"tv_shows" yaml:"tv_shows"`
}

// Dashboard is every view computed for one filter.
type Dashboard struct {
	// ID is derived from the source name and the filter key, so identical
	// requests produce identical dashboards.
	ID         string         `json:"id" yaml:"id"`
	Source     string         `json:"source" yaml:"source"`
	Filter     catalog.Filter `json:"filter" yaml:"filter"`
	Total      int            `json:"total" yaml:"total"`
	Matched    int            `json:"matched" yaml:"matched"`
	Overview   Overview       `json:"overview" yaml:"overview"`
	Time       TimeViews      `json:"time" yaml:"time"`
	Top        TopViews       `json:"top" yaml:"top"`
	Duration   DurationViews  `json:"duration" yaml:"duration"`
	Projection *Projection    `json:"projection" yaml:"projection"`
	Graph      Graph          `json:"graph" yaml:"graph"`
}

// OverviewOf computes the overview views of an already filtered table.
func OverviewOf(t *catalog.Table) Overview {
	return Overview{Types: TypeCounts(t), Ratings: RatingCounts(t)}
}

// TimeOf computes the time views; all is the unfiltered catalog used for the rating legend.
func TimeOf(filtered, all *catalog.Table) TimeViews {
	return TimeViews{
		YearByType:   YearByType(filtered),
		MonthlyAdded: MonthlyAdded(filtered),
		RatingTrend:  YearByRating(filtered, all),
	}
}

// TopOf computes the top-k rankings of an already filtered table.
func TopOf(t *catalog.Table, opt Options) TopViews {
	return TopViews{
		Countries: TopKWithAverage(Values(Explode(t, catalog.FieldCountry, CountryDelimiter)), opt.TopCountries),
		Directors: TopKWithAverage(Values(Explode(t, catalog.FieldDirector, DirectorDelimiter)), opt.TopDirectors),
		Genres:    TopKWithAverage(Values(Explode(t, catalog.FieldGenre, GenreDelimiter)), opt.TopGenres),
	}
}

// DurationOf ranks directors per content type on an already filtered table.
func DurationOf(t *catalog.Table, opt Options) DurationViews {
	return DurationViews{
		Movies:  DurationByDirector(t, catalog.TypeMovie, opt.TopDurations),
		TVShows: DurationByDirector(t, catalog.TypeTVShow, opt.TopDurations),
	}
}

// ProjectionOf encodes and projects the genres of an already filtered table.
func ProjectionOf(t *catalog.Table) (*Projection, error) {
	if t.Len() == 0 {
		return nil, &DegenerateInputError{Op: "project genres", Reason: "no titles match the filter"}
	}
	return Project(EncodeGenres(t))
}

// Build filters all with f and computes every view. The co-occurrence graph and
// the rating legend read the unfiltered catalog; everything else reads the
// filtered one. An empty selection or a degenerate projection is returned as a
// *DegenerateInputError.
func Build(all *catalog.Table, f catalog.Filter, opt Options) (*Dashboard, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	filtered := all.Filter(f)
	proj, err := ProjectionOf(filtered)
	if err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}
	return &Dashboard{
		ID:         DashboardID(all.Name(), f),
		Source:     all.Name(),
		Filter:     f,
		Total:      all.Len(),
		Matched:    filtered.Len(),
		Overview:   OverviewOf(filtered),
		Time:       TimeOf(filtered, all),
		Top:        TopOf(filtered, opt),
		Duration:   DurationOf(filtered, opt),
		Projection: proj,
		Graph:      BuildCooccurrence(all, opt.Layout),
	}, nil
}

// DashboardID names the dashboard of a (source, filter) pair.
func DashboardID(source string, f catalog.Filter) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("catalogscope:"+source+"#"+f.Key())).String()
}
