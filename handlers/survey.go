// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/region-survey/auth"
	"github.com/danielhkuo/region-survey/cliparse"
	"github.com/danielhkuo/region-survey/middleware"
	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/regions"
	"github.com/danielhkuo/region-survey/store"
	"github.com/danielhkuo/region-survey/survey"
)

type SurveyHandler struct {
	db         *sql.DB
	cfg        cliparse.Config
	reconciler *survey.Reconciler
}

func NewSurveyHandler(db *sql.DB, cfg cliparse.Config) *SurveyHandler {
	return &SurveyHandler{
		db:         db,
		cfg:        cfg,
		reconciler: survey.NewReconciler(store.New(db), slog.Default()),
	}
}

// GetExisting handles GET /survey/existing?name=&cohort=
func (h *SurveyHandler) GetExisting(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	cohort := r.URL.Query().Get("cohort")
	if strings.TrimSpace(name) == "" || strings.TrimSpace(cohort) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "이름과 기수를 입력해주세요.")
		return
	}

	rec, found, err := h.reconciler.Lookup(r.Context(), name, cohort)
	if err != nil {
		slog.Error("failed to look up participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.ExistingParticipantResponse{Exists: found, ExistingRegions: []string{}}
	if found {
		resp.ExistingRegions = rec.SelectedRegions
		resp.ExistingOptionType = rec.OptionType
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CheckRegion handles POST /survey/regions/check
// It validates one region being added to a draft before anything is saved.
func (h *SurveyHandler) CheckRegion(w http.ResponseWriter, r *http.Request) {
	var req models.CheckRegionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Region == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "지역을 선택해주세요.")
		return
	}
	if _, ok := regions.LookupOption(req.OptionType); !ok {
		middleware.KindErrorResponse(w, http.StatusBadRequest, KindInvalidOption, "올바른 옵션을 선택해주세요.")
		return
	}

	var existing []string
	if req.ParticipantName != "" && req.Cohort != "" {
		rec, found, err := h.reconciler.Lookup(r.Context(), req.ParticipantName, req.Cohort)
		if err != nil {
			slog.Error("failed to look up participant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if found {
			if rec.OptionType != nil && *rec.OptionType != req.OptionType {
				middleware.KindErrorResponse(w, http.StatusConflict, KindOptionLocked,
					survey.OptionLockedError(*rec.OptionType).Error())
				return
			}
			existing = rec.SelectedRegions
		}
	}

	if err := regions.Stage(req.OptionType, req.Region, req.StagedRegions, existing); err != nil {
		kind, status := errorKind(err)
		middleware.KindErrorResponse(w, status, kind, err.Error())
		return
	}

	staged := append(append([]string{}, req.StagedRegions...), req.Region)
	slots := regions.Remaining(req.OptionType, existing, staged)
	middleware.JSONResponse(w, http.StatusOK, models.CheckRegionResponse{
		Region: req.Region,
		Remaining: models.Slots{
			Seoul:    slots.Seoul,
			NonSeoul: slots.NonSeoul,
			Total:    slots.Total,
		},
	})
}

// Submit handles POST /survey/submissions
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.handleSubmission(w, r, false)
}

// Confirm handles POST /survey/submissions/confirm
func (h *SurveyHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.handleSubmission(w, r, true)
}

func (h *SurveyHandler) handleSubmission(w http.ResponseWriter, r *http.Request, confirm bool) {
	var req models.SubmitSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Identity is matched exactly, so names are stored as typed.
	if strings.TrimSpace(req.ParticipantName) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "이름을 입력해주세요.")
		return
	}
	if strings.TrimSpace(req.Cohort) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "기수를 입력해주세요.")
		return
	}
	if _, ok := regions.LookupOption(req.OptionType); !ok {
		middleware.KindErrorResponse(w, http.StatusBadRequest, KindInvalidOption, "올바른 옵션을 선택해주세요.")
		return
	}
	if len(req.Regions) == 0 {
		middleware.KindErrorResponse(w, http.StatusBadRequest, KindNoRegions, "최소 1개 이상의 지역을 선택해주세요.")
		return
	}

	sub := survey.Submission{
		ParticipantName: req.ParticipantName,
		Cohort:          req.Cohort,
		OptionType:      req.OptionType,
		Regions:         req.Regions,
	}

	var (
		out survey.Outcome
		err error
	)
	if confirm {
		out, err = h.reconciler.Confirm(r.Context(), sub)
	} else {
		out, err = h.reconciler.Reconcile(r.Context(), sub)
	}
	if err != nil {
		if kind, status := errorKind(err); status != http.StatusInternalServerError {
			middleware.KindErrorResponse(w, status, kind, err.Error())
			return
		}
		slog.Error("failed to reconcile submission", "error", err, "cohort", req.Cohort)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "설문 저장에 실패했습니다.")
		return
	}

	slog.Info("survey submission",
		"outcome", out.Kind,
		"cohort", req.Cohort,
		"confirm", confirm,
		"client", auth.HashIP(middleware.GetClientIP(r), h.cfg.LogSalt),
	)

	resp := outcomeResponse(out)
	switch out.Kind {
	case survey.OutcomeFresh:
		middleware.JSONResponse(w, http.StatusCreated, resp)
	case survey.OutcomeMergeCandidate, survey.OutcomeMerged:
		middleware.JSONResponse(w, http.StatusOK, resp)
	default:
		_, status := errorKind(out.Err)
		middleware.JSONResponse(w, status, resp)
	}
}

func outcomeResponse(out survey.Outcome) models.SubmitSurveyResponse {
	resp := models.SubmitSurveyResponse{
		Outcome:            string(out.Kind),
		Record:             out.Record,
		ExistingOptionType: out.ExistingOptionType,
		ExistingRegions:    out.ExistingRegions,
		NewRegions:         out.NewRegions,
		CombinedTotal:      out.CombinedTotal,
	}
	if out.Err != nil {
		resp.Kind, _ = errorKind(out.Err)
		resp.Message = out.Err.Error()
	}
	if out.Quota.ID != 0 {
		resp.Quota = &models.Quota{
			OptionType:  out.Quota.ID,
			MaxSeoul:    out.Quota.MaxSeoul,
			MaxNonSeoul: out.Quota.MaxNonSeoul,
			TotalMax:    out.Quota.TotalMax,
		}
	}
	return resp
}
