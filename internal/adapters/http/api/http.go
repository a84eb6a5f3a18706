// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	app "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/domain/bundle"
	"github.com/okian/radar/internal/domain/position"
	"github.com/okian/radar/internal/domain/types"
	"github.com/okian/radar/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ComputeRanking(ctx context.Context, req app.Request) (types.Profile, error)

	// Catalog reads.
	Bundles() []bundle.Bundle
	Positions() position.Map
	MinMinutesRange() (def, floor, ceiling float64)

	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	profileHandler *ProfileHandler
	catalogHandler *CatalogHandler

	allowedOrigins []string
	log            logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS allow list. Defaults to "*".
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		profileHandler: NewProfileHandler(deps),
		catalogHandler: NewCatalogHandler(deps),
		allowedOrigins: []string{"*"},
		log:            logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns a chi router carrying the API routes and the shared
// middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	s.Register(r)
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/bundles", MetricsMiddleware(s.catalogHandler.HandleBundles, "bundles"))
	r.Get("/positions", MetricsMiddleware(s.catalogHandler.HandlePositions, "positions"))
	r.Get("/profile", MetricsMiddleware(s.profileHandler.logged(s.log), "profile"))
	r.Get("/profile/{bundle}", MetricsMiddleware(s.profileHandler.logged(s.log), "profile"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
