package catalog

import "time"

// Content types present in the catalog.
const (
	TypeMovie  = "Movie"
	TypeTVShow = "TV Show"
)

// UnknownRating replaces a missing rating at load time.
const UnknownRating = "Unknown"

// Field names a multi-valued text column of a Title.
type Field string

const (
	FieldCountry  Field = "country"
	FieldDirector Field = "director"
	FieldGenre    Field = "listed_in"
)

// Title is one row of the catalog. Empty strings mean the value is absent.
type Title struct {
	ShowID    string     `json:"show_id" yaml:"show_id"`
	Type      string     `json:"type" yaml:"type"`
	Title     string     `json:"title" yaml:"title"`
	Director  string     `json:"director,omitempty" yaml:"director,omitempty"`
	Cast      string     `json:"cast,omitempty" yaml:"cast,omitempty"`
	Country   string     `json:"country,omitempty" yaml:"country,omitempty"`
	DateAdded *time.Time `json:"date_added,omitempty" yaml:"date_added,omitempty"`
	// ReleaseYear is zero when the source value was blank or unparseable.
	ReleaseYear int    `json:"release_year,omitempty" yaml:"release_year,omitempty"`
	Rating      string `json:"rating" yaml:"rating"`
	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"`
	// DurationNum is minutes for movies and seasons for TV shows.
	DurationNum *float64 `json:"duration_num,omitempty" yaml:"duration_num,omitempty"`
	ListedIn    string   `json:"listed_in,omitempty" yaml:"listed_in,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Value returns the raw text of a multi-valued field and whether it is present.
func (t Title) Value(f Field) (string, bool) {
	var v string
	switch f {
	case FieldCountry:
		v = t.Country
	case FieldDirector:
		v = t.Director
	case FieldGenre:
		v = t.ListedIn
	}
	return v, v != ""
}

// HasYear reports whether the release year is known.
func (t Title) HasYear() bool { return t.ReleaseYear > 0 }

func (t Title) clone() Title {
	c := t
	if t.DateAdded != nil {
		d := *t.DateAdded
		c.DateAdded = &d
	}
	if t.DurationNum != nil {
		n := *t.DurationNum
		c.DurationNum = &n
	}
	return c
}
