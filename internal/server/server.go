// Package server exposes the catalog views as a read-only JSON API.
//
// One immutable catalog snapshot is shared by every request. Responses are
// memoized per (view, filter) in a ristretto cache, so repeated requests for
// the same selection return identical bodies without recomputing.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/KaramelBytes/catalogscope/internal/analysis"
	"github.com/KaramelBytes/catalogscope/internal/catalog"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Config holds the API settings.
type Config struct {
	// CacheMaxEntries bounds the number of memoized responses; 0 disables caching.
	CacheMaxEntries int64
	// RateLimitPerMinute is the per-IP request budget; 0 disables limiting.
	RateLimitPerMinute int
	// TrustProxy rewrites the client address from forwarding headers before
	// rate limiting. Leave it off unless a proxy in front sets those headers,
	// otherwise clients can pick their own rate limit key.
	TrustProxy         bool
	CORSAllowedOrigins []string
	Options            analysis.Options
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		CacheMaxEntries:    1024,
		RateLimitPerMinute: 120,
		CORSAllowedOrigins: []string{"*"},
		Options:            analysis.DefaultOptions(),
	}
}

// Server serves views of one catalog snapshot.
type Server struct {
	all    *catalog.Table
	cfg    Config
	cache  *viewCache
	router chi.Router
}

// New builds the router for all. Call Close when done to release the cache.
func New(all *catalog.Table, cfg Config) (*Server, error) {
	cache, err := newViewCache(cfg.CacheMaxEntries)
	if err != nil {
		return nil, fmt.Errorf("create view cache: %w", err)
	}
	s := &Server{all: all, cfg: cfg, cache: cache}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if s.cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(s.cfg.CORSAllowedOrigins))

	r.Get("/healthz", s.health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimit(s.cfg.RateLimitPerMinute, time.Minute))
		r.Get("/filters", s.filters)
		r.Get("/views/{view}", s.view)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not_found", "no such endpoint", nil)
	})
	return r
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler { return s.router }

// Close releases the response cache.
func (s *Server) Close() { s.cache.close() }
