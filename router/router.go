// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/region-survey/cliparse"
	"github.com/danielhkuo/region-survey/handlers"
	"github.com/danielhkuo/region-survey/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminTokenSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Region catalog (public)
	mux.HandleFunc("GET /regions/cities", middleware.WithLogging(catalogHandler.ListCities))
	mux.HandleFunc("GET /regions/cities/{id}/districts", middleware.WithLogging(catalogHandler.ListDistricts))
	mux.HandleFunc("GET /regions/districts/{id}/neighborhoods", middleware.WithLogging(catalogHandler.ListNeighborhoods))

	// Survey form (public)
	mux.HandleFunc("GET /survey/existing", middleware.WithLogging(surveyHandler.GetExisting))
	mux.HandleFunc("POST /survey/regions/check", middleware.WithLogging(surveyHandler.CheckRegion))
	mux.HandleFunc("POST /survey/submissions", middleware.WithLogging(surveyHandler.Submit))
	mux.HandleFunc("POST /survey/submissions/confirm", middleware.WithLogging(surveyHandler.Confirm))

	// Admin login issues the bearer token the other admin routes require
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))

	// Admin views
	mux.HandleFunc("GET /admin/dashboard", admin(adminHandler.Dashboard))
	mux.HandleFunc("GET /admin/responses", admin(adminHandler.ListResponses))
	mux.HandleFunc("GET /admin/cohorts/{cohort}/responses", admin(adminHandler.CohortResponses))

	// Admin edits
	mux.HandleFunc("PUT /admin/responses/{id}/regions", admin(adminHandler.ReplaceRegions))
	mux.HandleFunc("DELETE /admin/responses/{id}", admin(adminHandler.DeleteResponse))
	mux.HandleFunc("POST /admin/regions/remove", admin(adminHandler.RemoveRegions))
	mux.HandleFunc("POST /admin/cohorts/{cohort}/archive", admin(adminHandler.ArchiveCohort))

	// Crawl status and export
	mux.HandleFunc("GET /admin/regions/status", admin(adminHandler.RegionStatus))
	mux.HandleFunc("POST /admin/regions/status/toggle", admin(adminHandler.ToggleStatus))
	mux.HandleFunc("POST /admin/regions/status/bulk", admin(adminHandler.BulkStatus))
	mux.HandleFunc("GET /admin/regions/export.csv", admin(adminHandler.ExportCSV))
	mux.HandleFunc("GET /admin/regions/export.xlsx", admin(adminHandler.ExportXLSX))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("region-survey API v1"))
	})

	return mux
}
