// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/region-survey/auth"
	"github.com/danielhkuo/region-survey/catalog"
	"github.com/danielhkuo/region-survey/cliparse"
	"github.com/danielhkuo/region-survey/export"
	"github.com/danielhkuo/region-survey/middleware"
	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/store"
	"github.com/danielhkuo/region-survey/survey"
)

const topRegionCount = 10

type AdminHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	store   *store.Store
	mutator *survey.Mutator
	tracker *survey.CrawlTracker
	now     func() time.Time
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	st := store.New(db)
	return &AdminHandler{
		db:      db,
		cfg:     cfg,
		store:   st,
		mutator: survey.NewMutator(st, slog.Default()),
		tracker: survey.NewCrawlTracker(st, slog.Default()),
		now:     time.Now,
	}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := auth.CheckPassword(h.cfg.AdminPasswordHash, req.Password); err != nil {
		slog.Warn("admin login failed", "client", auth.HashIP(middleware.GetClientIP(r), h.cfg.LogSalt))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, expiresAt, err := auth.IssueAdminToken(h.cfg.AdminTokenSecret, h.cfg.AdminTokenTTL, h.now())
	if err != nil {
		slog.Error("failed to issue admin token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("admin logged in", "expires_at", expiresAt)
	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// snapshot is everything the admin views derive from, read in one go.
type snapshot struct {
	records  []models.SurveyRecord
	archived []string
	statuses map[string]models.CrawlStatus
	catalog  map[string]models.CatalogRegion
}

func (h *AdminHandler) loadSnapshot(ctx context.Context) (snapshot, error) {
	var (
		snap     snapshot
		statuses []models.CrawlStatus
		leaves   []models.CatalogRegion
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.records, err = h.store.ListAllRecords(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.archived, err = h.store.ListArchivedCohorts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = h.store.ListStatuses(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		leaves, err = h.store.ListAllLeafRegions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}

	snap.statuses = survey.StatusMap(statuses)
	snap.catalog = catalog.Index(leaves)
	return snap, nil
}

// view returns the deduplicated records of the active or archived cohorts.
func (s snapshot) view(view string) []models.SurveyRecord {
	active, archived := survey.PartitionByArchive(s.records, s.archived)
	if view == models.ViewArchived {
		return survey.Dedupe(archived)
	}
	return survey.Dedupe(active)
}

func parseView(w http.ResponseWriter, r *http.Request) (string, bool) {
	view := r.URL.Query().Get("view")
	switch view {
	case "":
		return models.ViewActive, true
	case models.ViewActive, models.ViewArchived:
		return view, true
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "view must be active or archived")
		return "", false
	}
}

func parseTab(w http.ResponseWriter, r *http.Request) (string, bool) {
	tab := r.URL.Query().Get("tab")
	switch tab {
	case "":
		return models.TabPending, true
	case models.TabPending, models.TabCompleted:
		return tab, true
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "tab must be pending or completed")
		return "", false
	}
}

// Dashboard handles GET /admin/dashboard?view=active|archived
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view, ok := parseView(w, r)
	if !ok {
		return
	}

	snap, err := h.loadSnapshot(r.Context())
	if err != nil {
		slog.Error("failed to load dashboard", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	records := snap.view(view)
	counts := survey.CountByRegion(records)
	active, _ := survey.PartitionByArchive(snap.records, snap.archived)

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		View:            view,
		Summary:         survey.Summarize(records, counts),
		Options:         survey.OptionBreakdown(records),
		TopRegions:      h.annotate(survey.TopRegions(counts, topRegionCount), snap),
		RegionCounts:    counts,
		ActiveCohorts:   survey.Cohorts(active),
		ArchivedCohorts: snap.archived,
		Responses:       records,
	})
}

// annotate adds catalog presence and the last processed time to ranked regions.
func (h *AdminHandler) annotate(top []models.RegionCount, snap snapshot) []models.RegionCount {
	now := h.now()
	for i := range top {
		entry, inCatalog := snap.catalog[top[i].Region]
		top[i].InCatalog = inCatalog

		var at *time.Time
		if st, ok := snap.statuses[top[i].Region]; ok && st.IsProcessed {
			at = st.ProcessedAt
		} else if inCatalog {
			at = entry.LastProcessedAt
		}
		if at != nil {
			top[i].ProcessedAt = at
			top[i].LastProcessed = catalog.RelativeTime(*at, now)
		}
	}
	return top
}

// ListResponses handles GET /admin/responses?view=active|archived
func (h *AdminHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	view, ok := parseView(w, r)
	if !ok {
		return
	}

	snap, err := h.loadSnapshot(r.Context())
	if err != nil {
		slog.Error("failed to load responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResponsesResponse{
		View:      view,
		Responses: snap.view(view),
	})
}

// CohortResponses handles GET /admin/cohorts/{cohort}/responses
func (h *AdminHandler) CohortResponses(w http.ResponseWriter, r *http.Request) {
	cohort := r.PathValue("cohort")
	if strings.TrimSpace(cohort) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "cohort is required")
		return
	}

	records, err := h.store.FindRecords(r.Context(), survey.Filter{Cohort: cohort})
	if err != nil {
		slog.Error("failed to load cohort responses", "error", err, "cohort", cohort)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResponsesResponse{
		View:      cohort,
		Responses: survey.Dedupe(records),
	})
}

// ReplaceRegions handles PUT /admin/responses/{id}/regions
func (h *AdminHandler) ReplaceRegions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.ReplaceRegionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	deleted, err := h.mutator.ReplaceRegions(r.Context(), id, req.Regions)
	if err != nil {
		h.writeError(w, "failed to replace regions", err, "record_id", id)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReplaceRegionsResponse{ID: id, Deleted: deleted})
}

// DeleteResponse handles DELETE /admin/responses/{id}
func (h *AdminHandler) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.mutator.DeleteRecord(r.Context(), id); err != nil {
		h.writeError(w, "failed to delete record", err, "record_id", id)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReplaceRegionsResponse{ID: id, Deleted: true})
}

// RemoveRegions handles POST /admin/regions/remove
func (h *AdminHandler) RemoveRegions(w http.ResponseWriter, r *http.Request) {
	var req models.RemoveRegionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Regions) == 0 {
		middleware.KindErrorResponse(w, http.StatusBadRequest, KindNoRegions, "regions are required")
		return
	}

	result, err := h.mutator.RemoveRegionsEverywhere(r.Context(), req.Regions)
	if err != nil {
		h.writeError(w, "failed to remove regions", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result.Response())
}

// RegionStatus handles GET /admin/regions/status?tab=pending|completed
func (h *AdminHandler) RegionStatus(w http.ResponseWriter, r *http.Request) {
	tab, ok := parseTab(w, r)
	if !ok {
		return
	}

	snap, err := h.loadSnapshot(r.Context())
	if err != nil {
		slog.Error("failed to load region status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RegionStatusListResponse{
		Tab:     tab,
		Regions: h.statusItems(snap, tab),
	})
}

// statusItems lists the regions voted for in active cohorts that fall in tab.
func (h *AdminHandler) statusItems(snap snapshot, tab string) []models.RegionStatusItem {
	counts := survey.CountByRegion(snap.view(models.ViewActive))
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}

	pending, completed := survey.SplitByStatus(labels, snap.statuses)
	selected := pending
	if tab == models.TabCompleted {
		selected = completed
	}

	now := h.now()
	items := make([]models.RegionStatusItem, 0, len(selected))
	for _, label := range selected {
		item := models.RegionStatusItem{Region: label, Votes: counts[label]}
		if st, ok := snap.statuses[label]; ok {
			item.IsProcessed = st.IsProcessed
			item.ProcessedAt = st.ProcessedAt
			if st.ProcessedAt != nil {
				item.ProcessedAgo = catalog.RelativeTime(*st.ProcessedAt, now)
			}
		}
		items = append(items, item)
	}
	return items
}

// ToggleStatus handles POST /admin/regions/status/toggle
func (h *AdminHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Region == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "region is required")
		return
	}

	processed, err := h.tracker.Toggle(r.Context(), req.Region)
	if err != nil {
		h.writeError(w, "failed to toggle status", err, "region", req.Region)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ToggleStatusResponse{
		Region:      req.Region,
		IsProcessed: processed,
	})
}

// BulkStatus handles POST /admin/regions/status/bulk
func (h *AdminHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var req models.BulkStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Regions) == 0 {
		middleware.KindErrorResponse(w, http.StatusBadRequest, KindNoRegions, "regions are required")
		return
	}

	result := h.tracker.SetMany(r.Context(), req.Regions, req.IsProcessed)
	middleware.JSONResponse(w, http.StatusOK, result.Response())
}

// ArchiveCohort handles POST /admin/cohorts/{cohort}/archive
func (h *AdminHandler) ArchiveCohort(w http.ResponseWriter, r *http.Request) {
	cohort := r.PathValue("cohort")
	if strings.TrimSpace(cohort) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "cohort is required")
		return
	}

	at := h.now().UTC()
	if err := h.store.ArchiveCohort(r.Context(), cohort, at); err != nil {
		h.writeError(w, "failed to archive cohort", err, "cohort", cohort)
		return
	}

	slog.Info("cohort archived", "cohort", cohort)
	middleware.JSONResponse(w, http.StatusCreated, models.ArchiveCohortResponse{Cohort: cohort, ArchivedAt: at})
}

// ExportCSV handles GET /admin/regions/export.csv?regions=..&tab=..
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", export.ContentTypeCSV, export.WriteCSV)
}

// ExportXLSX handles GET /admin/regions/export.xlsx?regions=..&tab=..
func (h *AdminHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", export.ContentTypeXLSX, export.WriteXLSX)
}

// export writes the selected regions, or the whole tab when none are given.
func (h *AdminHandler) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write func(io.Writer, []string) error) {
	labels := r.URL.Query()["regions"]
	if len(labels) == 0 {
		tab, ok := parseTab(w, r)
		if !ok {
			return
		}
		snap, err := h.loadSnapshot(r.Context())
		if err != nil {
			slog.Error("failed to load export regions", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		for _, item := range h.statusItems(snap, tab) {
			labels = append(labels, item.Region)
		}
	}

	var buf bytes.Buffer
	if err := write(&buf, labels); err != nil {
		h.writeError(w, "failed to export regions", err, "format", ext)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", export.Filename(h.now(), ext)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

// writeError reports a domain error with its kind, or logs a store failure
// and hides the detail.
func (h *AdminHandler) writeError(w http.ResponseWriter, msg string, err error, attrs ...any) {
	kind, status := errorKind(err)
	if status == http.StatusInternalServerError {
		slog.Error(msg, append([]any{"error", err}, attrs...)...)
		middleware.ErrorResponse(w, status, "Database error")
		return
	}
	if errors.Is(err, survey.ErrRecordNotFound) {
		middleware.KindErrorResponse(w, status, kind, "Record not found")
		return
	}
	middleware.KindErrorResponse(w, status, kind, err.Error())
}
