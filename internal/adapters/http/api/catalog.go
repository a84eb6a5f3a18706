package api

import (
	"net/http"

	"github.com/okian/radar/internal/domain/bundle"
	"github.com/okian/radar/internal/domain/position"
)

// CatalogDependencies exposes the read-only catalogs behind a profile.
type CatalogDependencies interface {
	Bundles() []bundle.Bundle
	Positions() position.Map
	MinMinutesRange() (def, floor, ceiling float64)
}

// CatalogHandler serves the bundle and position catalogs.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

type bundleView struct {
	bundle.Bundle
	Adverse []string `json:"adverse"`
}

type bundlesResponse struct {
	Bundles    []bundleView `json:"bundles"`
	MinMinutes minutesRange `json:"min_minutes"`
}

type minutesRange struct {
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// HandleBundles handles GET /bundles.
func (h *CatalogHandler) HandleBundles(w http.ResponseWriter, _ *http.Request) {
	bs := h.deps.Bundles()
	resp := bundlesResponse{Bundles: make([]bundleView, len(bs))}
	for i, b := range bs {
		resp.Bundles[i] = bundleView{Bundle: b, Adverse: b.AdverseFields()}
	}
	resp.MinMinutes.Default, resp.MinMinutes.Min, resp.MinMinutes.Max = h.deps.MinMinutesRange()
	writeJSON(w, http.StatusOK, resp)
}

type positionsResponse struct {
	Buckets []position.Bucket          `json:"buckets"`
	Codes   map[string]position.Bucket `json:"codes"`
}

// HandlePositions handles GET /positions.
func (h *CatalogHandler) HandlePositions(w http.ResponseWriter, _ *http.Request) {
	pm := h.deps.Positions()
	resp := positionsResponse{Buckets: position.Buckets(), Codes: make(map[string]position.Bucket, len(pm))}
	for _, c := range pm.Codes() {
		resp.Codes[c] = pm.Normalize(c)
	}
	writeJSON(w, http.StatusOK, resp)
}
