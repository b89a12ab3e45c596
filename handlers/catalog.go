// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/region-survey/catalog"
	"github.com/danielhkuo/region-survey/cliparse"
	"github.com/danielhkuo/region-survey/middleware"
	"github.com/danielhkuo/region-survey/store"
)

type CatalogHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	catalog catalog.Store
}

func NewCatalogHandler(db *sql.DB, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{db: db, cfg: cfg, catalog: store.New(db)}
}

// ListCities handles GET /regions/cities?option=N
func (h *CatalogHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	option := 0
	if raw := r.URL.Query().Get("option"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.KindErrorResponse(w, http.StatusBadRequest, KindInvalidOption, "option must be a number")
			return
		}
		option = n
	}

	cities, err := h.catalog.ListTopDivisions(r.Context())
	if err != nil {
		slog.Error("failed to list cities", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, catalog.FilterCities(cities, option))
}

// ListDistricts handles GET /regions/cities/{id}/districts
func (h *CatalogHandler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	districts, err := h.catalog.ListSubdivisions(r.Context(), id)
	if err != nil {
		slog.Error("failed to list districts", "error", err, "city_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, districts)
}

// ListNeighborhoods handles GET /regions/districts/{id}/neighborhoods
func (h *CatalogHandler) ListNeighborhoods(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	leaves, err := h.catalog.ListLeafDivisions(r.Context(), id)
	if err != nil {
		slog.Error("failed to list neighborhoods", "error", err, "district_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, catalog.Humanize(leaves, time.Now()))
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a number")
		return 0, false
	}
	return id, true
}
