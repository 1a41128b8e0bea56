package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidFilter wraps every filter validation failure.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter selects titles by release year range, content type and country.
// Zero values disable the corresponding criterion.
type Filter struct {
	YearMin   int      `json:"year_min,omitempty" yaml:"year_min,omitempty" validate:"gte=0"`
	YearMax   int      `json:"year_max,omitempty" yaml:"year_max,omitempty" validate:"gte=0"`
	Types     []string `json:"types,omitempty" yaml:"types,omitempty" validate:"omitempty,dive,oneof=Movie 'TV Show'"`
	Countries []string `json:"countries,omitempty" yaml:"countries,omitempty" validate:"omitempty,dive,required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		f := sl.Current().Interface().(Filter)
		if f.YearMin > 0 && f.YearMax > 0 && f.YearMin > f.YearMax {
			sl.ReportError(f.YearMax, "YearMax", "year_max", "gtefield", "YearMin")
		}
	}, Filter{})
}

// Validate reports whether f is well formed.
func (f Filter) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return nil
}

// Match reports whether a title passes the filter. A country selection keeps a
// title when its raw country text contains any selected name. A title without a
// release year fails any year bound.
func (f Filter) Match(t Title) bool {
	if (f.YearMin > 0 || f.YearMax > 0) && !t.HasYear() {
		return false
	}
	if f.YearMin > 0 && t.ReleaseYear < f.YearMin {
		return false
	}
	if f.YearMax > 0 && t.ReleaseYear > f.YearMax {
		return false
	}
	if len(f.Types) > 0 && !contains(f.Types, t.Type) {
		return false
	}
	if len(f.Countries) > 0 {
		if t.Country == "" {
			return false
		}
		hit := false
		for _, c := range f.Countries {
			if strings.Contains(t.Country, c) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Key is a canonical string for the filter: equal selections in any order give the same key.
func (f Filter) Key() string {
	types := sortedCopy(f.Types)
	countries := sortedCopy(f.Countries)
	var b strings.Builder
	b.WriteString("y=")
	b.WriteString(strconv.Itoa(f.YearMin))
	b.WriteString("-")
	b.WriteString(strconv.Itoa(f.YearMax))
	b.WriteString("|t=")
	b.WriteString(strings.Join(types, "\x1f"))
	b.WriteString("|c=")
	b.WriteString(strings.Join(countries, "\x1f"))
	return b.String()
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	// duplicates in a selection do not change the result
	j := 0
	for i, v := range out {
		if i > 0 && v == out[j-1] {
			continue
		}
		out[j] = v
		j++
	}
	return out[:j]
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
