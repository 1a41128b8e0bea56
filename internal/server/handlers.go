package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/KaramelBytes/catalogscope/internal/analysis"
	"github.com/KaramelBytes/catalogscope/internal/catalog"
	"github.com/KaramelBytes/catalogscope/internal/logging"
)

// viewFunc computes one view from the filtered table and the full snapshot.
type viewFunc func(s *Server, f catalog.Filter, filtered *catalog.Table) (any, error)

var views = map[string]viewFunc{
	"overview": func(s *Server, _ catalog.Filter, t *catalog.Table) (any, error) {
		return analysis.OverviewOf(t), nil
	},
	"time": func(s *Server, _ catalog.Filter, t *catalog.Table) (any, error) {
		return analysis.TimeOf(t, s.all), nil
	},
	"top": func(s *Server, _ catalog.Filter, t *catalog.Table) (any, error) {
		return analysis.TopOf(t, s.cfg.Options), nil
	},
	"duration": func(s *Server, _ catalog.Filter, t *catalog.Table) (any, error) {
		return analysis.DurationOf(t, s.cfg.Options), nil
	},
	"projection": func(s *Server, _ catalog.Filter, t *catalog.Table) (any, error) {
		return analysis.ProjectionOf(t)
	},
	"cooccurrence": func(s *Server, _ catalog.Filter, _ *catalog.Table) (any, error) {
		return analysis.BuildCooccurrence(s.all, s.cfg.Options.Layout), nil
	},
	"dashboard": func(s *Server, f catalog.Filter, _ *catalog.Table) (any, error) {
		return analysis.Build(s.all, f, s.cfg.Options)
	},
}

// ViewNames lists the served views in sorted order.
func ViewNames() []string {
	out := make([]string, 0, len(views))
	for k := range views {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "source": s.all.Name(), "titles": s.all.Len()})
}

type filterOptions struct {
	Source    string   `json:"source"`
	YearMin   int      `json:"year_min"`
	YearMax   int      `json:"year_max"`
	Types     []string `json:"types"`
	Countries []string `json:"countries"`
	Views     []string `json:"views"`
}

// filters describes the selectable values: the year range, the content types
// and every country present in the catalog.
func (s *Server) filters(w http.ResponseWriter, r *http.Request) {
	lo, hi := s.all.YearBounds()
	var types []string
	for _, t := range s.all.Titles() {
		if t.Type != "" {
			types = append(types, t.Type)
		}
	}
	respondJSON(w, http.StatusOK, filterOptions{
		Source:    s.all.Name(),
		YearMin:   lo,
		YearMax:   hi,
		Types:     analysis.Categories(types),
		Countries: s.all.Countries(),
		Views:     ViewNames(),
	})
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	fn, ok := views[name]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown_view", fmt.Sprintf("unknown view %q (available: %s)", name, strings.Join(ViewNames(), ", ")), nil)
		return
	}
	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_filter", err.Error(), err)
		return
	}

	key := name + "|" + f.Key()
	if name == "cooccurrence" {
		// the graph never depends on the filter
		key = name
	}
	if body, ok := s.cache.get(key); ok {
		w.Header().Set("X-Cache", "HIT")
		writeBody(w, http.StatusOK, body)
		return
	}

	v, err := fn(s, f, s.all.Filter(f))
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrDegenerateInput):
			respondError(w, http.StatusUnprocessableEntity, "degenerate_input", err.Error(), err)
		case errors.Is(err, catalog.ErrInvalidFilter):
			respondError(w, http.StatusBadRequest, "invalid_filter", err.Error(), err)
		default:
			respondError(w, http.StatusInternalServerError, "internal", "failed to compute view", err)
		}
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to encode view", err)
		return
	}
	s.cache.set(key, body)
	logging.Debug().Str("view", name).Str("filter", f.Key()).Int("bytes", len(body)).Msg("view computed")
	w.Header().Set("X-Cache", "MISS")
	writeBody(w, http.StatusOK, body)
}

// ParseFilter reads year_min, year_max and the repeatable type and country
// parameters. Comma-separated type lists are accepted too. The result is
// validated.
func ParseFilter(q url.Values) (catalog.Filter, error) {
	var f catalog.Filter
	var err error
	if f.YearMin, err = intParam(q, "year_min"); err != nil {
		return f, err
	}
	if f.YearMax, err = intParam(q, "year_max"); err != nil {
		return f, err
	}
	for _, v := range q["type"] {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Types = append(f.Types, t)
			}
		}
	}
	for _, c := range q["country"] {
		if c = strings.TrimSpace(c); c != "" {
			f.Countries = append(f.Countries, c)
		}
	}
	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", catalog.ErrInvalidFilter, name, raw)
	}
	return n, nil
}
