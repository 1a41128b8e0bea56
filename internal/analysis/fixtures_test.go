package analysis

import (
	"time"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
)

func num(v float64) *float64 { return &v }

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// scenarioTable is the three-title example: two movies and one show.
func scenarioTable() *catalog.Table {
	return catalog.NewTable("scenario", []catalog.Title{
		{ShowID: "s1", Type: catalog.TypeMovie, ListedIn: "Drama, Comedy", Rating: "R"},
		{ShowID: "s2", Type: catalog.TypeMovie, ListedIn: "Drama", Rating: "R"},
		{ShowID: "s3", Type: catalog.TypeTVShow, ListedIn: "Comedy", Rating: "TV-MA"},
	})
}

// catalogTable is a small but varied catalog used across the view tests.
func catalogTable() *catalog.Table {
	return catalog.NewTable("catalog", []catalog.Title{
		{ShowID: "s1", Type: catalog.TypeMovie, ReleaseYear: 2019, Rating: "PG-13", Country: "United States, India",
			Director: "Ava Reyes", DurationNum: num(100), DateAdded: day("2021-01-05"),
			ListedIn: "Dramas, International Movies"},
		{ShowID: "s2", Type: catalog.TypeMovie, ReleaseYear: 2019, Rating: "R", Country: "India",
			Director: "Ava Reyes, Bo Lin", DurationNum: num(140), DateAdded: day("2021-01-20"),
			ListedIn: "Dramas, Comedies, International Movies"},
		{ShowID: "s3", Type: catalog.TypeTVShow, ReleaseYear: 2020, Rating: "TV-MA", Country: "United States",
			Director: "Cam Ode", DurationNum: num(3), DateAdded: day("2020-11-30"),
			ListedIn: "TV Comedies, International TV Shows"},
		{ShowID: "s4", Type: catalog.TypeTVShow, ReleaseYear: 2021, Rating: catalog.UnknownRating, Country: "usa",
			DurationNum: num(1), ListedIn: "TV Comedies"},
		{ShowID: "s5", Type: catalog.TypeMovie, ReleaseYear: 2021, Rating: "TV-Y", Country: "France,",
			Director: "Bo Lin", DurationNum: nil, DateAdded: day("2021-03-02"),
			ListedIn: "Children & Family Movies, Comedies"},
		{ShowID: "s6", Type: catalog.TypeMovie, ReleaseYear: 2015, Rating: "R",
			ListedIn: ""},
	})
}
