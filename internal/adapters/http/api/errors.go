package api

import (
	"errors"
	"net/http"

	app "github.com/okian/radar/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// statusByKind maps service error kinds to HTTP statuses. Unlisted kinds are
// internal errors.
var statusByKind = map[string]int{
	"invalid_request":     http.StatusBadRequest,
	"invalid_min_minutes": http.StatusBadRequest,
	"unknown_scope":       http.StatusBadRequest,
	"unknown_bundle":      http.StatusBadRequest,
	"player_not_found":    http.StatusNotFound,
	"unknown_position":    http.StatusUnprocessableEntity,
	"empty_cohort":        http.StatusUnprocessableEntity,
	"missing_value":       http.StatusUnprocessableEntity,
	"not_started":         http.StatusServiceUnavailable,
}

// messageByKind replaces raw error text for conditions the caller cannot fix by
// editing the request.
var messageByKind = map[string]string{
	"unknown_position": "cannot build profile for this player",
	"empty_cohort":     "insufficient data",
}

// writeServiceError translates a service error to a JSON error response.
func writeServiceError(w http.ResponseWriter, err error) (int, string) {
	kind := app.ErrorKind(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if msg, ok := messageByKind[kind]; ok {
		writeJSON(w, status, errorResponse{Code: kind, Message: msg})
		return status, kind
	}
	writeError(w, status, kind, err)
	return status, kind
}
