package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	app "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/domain/types"
	"github.com/okian/radar/pkg/logger"
)

// ProfileDependencies defines the interface for profile operations.
type ProfileDependencies interface {
	ComputeRanking(ctx context.Context, req app.Request) (types.Profile, error)
}

// ProfileHandler handles profile requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleGetProfile handles GET /profile and GET /profile/{bundle}.
//
// Query parameters: player (required), team, league, position, scope,
// min_minutes and bundle. A bundle path segment wins over the query value.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r)
}

func (h *ProfileHandler) serve(w http.ResponseWriter, r *http.Request) (int, string) {
	req, err := parseProfileRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return http.StatusBadRequest, "bad_request"
	}
	profile, err := h.deps.ComputeRanking(r.Context(), req)
	if err != nil {
		return writeServiceError(w, err)
	}
	writeJSON(w, http.StatusOK, profile)
	return http.StatusOK, ""
}

// logged returns the handler with one log line per failed request.
func (h *ProfileHandler) logged(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, kind := h.serve(w, r)
		if status == http.StatusOK {
			return
		}
		fields := []logger.Field{
			logger.String("request_id", RequestIDFrom(r.Context())),
			logger.String("player", r.URL.Query().Get("player")),
			logger.Int("status", status),
			logger.String("kind", kind),
		}
		if status >= http.StatusInternalServerError {
			log.Error(r.Context(), "profile request failed", fields...)
			return
		}
		log.Debug(r.Context(), "profile request rejected", fields...)
	}
}

func parseProfileRequest(r *http.Request) (app.Request, error) {
	q := r.URL.Query()
	req := app.Request{
		Player:   strings.TrimSpace(q.Get("player")),
		Team:     strings.TrimSpace(q.Get("team")),
		League:   strings.TrimSpace(q.Get("league")),
		Position: strings.TrimSpace(q.Get("position")),
		Scope:    strings.TrimSpace(q.Get("scope")),
		Bundle:   strings.TrimSpace(q.Get("bundle")),
	}
	if b := chi.URLParam(r, "bundle"); b != "" {
		req.Bundle = b
	}
	if req.Player == "" {
		return app.Request{}, fmt.Errorf("%w: missing player", ErrBadRequest)
	}
	if raw := strings.TrimSpace(q.Get("min_minutes")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return app.Request{}, fmt.Errorf("%w: min_minutes must be a number", ErrBadRequest)
		}
		req.MinMinutes = &v
	}
	return req, nil
}
