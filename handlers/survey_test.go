// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/testutil"
)

const (
	gangnam   = "서울 강남구 역삼동"
	samseong  = "서울 강남구 삼성동"
	hapjeong  = "서울 마포구 합정동"
	yeongtong = "경기 수원시 영통동"
)

func submit(t *testing.T, h *SurveyHandler, path string, req models.SubmitSurveyRequest) (*httptest.ResponseRecorder, models.SubmitSurveyResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	r := testutil.MakeRequest("POST", path, req, nil)
	if path == "/survey/submissions/confirm" {
		h.Confirm(w, r)
	} else {
		h.Submit(w, r)
	}

	var resp models.SubmitSurveyResponse
	testutil.AssertJSON(t, w, &resp)
	return w, resp
}

func TestSubmit_KimScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	h := NewSurveyHandler(db, cfg)

	w, resp := submit(t, h, "/survey/submissions", models.SubmitSurveyRequest{
		ParticipantName: "Kim", Cohort: "1기", OptionType: 1, Regions: []string{gangnam},
	})
	testutil.AssertStatus(t, w, http.StatusCreated)
	if resp.Outcome != "created" || resp.Record == nil {
		t.Fatalf("first submission = %+v", resp)
	}

	second := models.SubmitSurveyRequest{
		ParticipantName: "Kim", Cohort: "1기", OptionType: 1, Regions: []string{hapjeong},
	}
	w, resp = submit(t, h, "/survey/submissions", second)
	testutil.AssertStatus(t, w, http.StatusOK)
	if resp.Outcome != "merge_candidate" {
		t.Fatalf("second outcome = %s, want merge_candidate", resp.Outcome)
	}
	if resp.CombinedTotal != 2 || resp.Quota == nil || resp.Quota.TotalMax != 5 {
		t.Errorf("preview = %+v", resp)
	}

	w, resp = submit(t, h, "/survey/submissions/confirm", second)
	testutil.AssertStatus(t, w, http.StatusOK)
	if resp.Outcome != "merged" {
		t.Fatalf("confirm outcome = %s, want merged", resp.Outcome)
	}

	w, resp = submit(t, h, "/survey/submissions", models.SubmitSurveyRequest{
		ParticipantName: "Kim", Cohort: "1기", OptionType: 2, Regions: []string{yeongtong},
	})
	testutil.AssertStatus(t, w, http.StatusConflict)
	if resp.Kind != KindOptionLocked {
		t.Errorf("kind = %s, want %s", resp.Kind, KindOptionLocked)
	}
	if want := "이미 옵션 1(으)로 제출하셨습니다. 옵션은 변경할 수 없습니다."; resp.Message != want {
		t.Errorf("message = %q, want %q", resp.Message, want)
	}
	if resp.ExistingOptionType == nil || *resp.ExistingOptionType != 1 {
		t.Errorf("existing option = %v, want 1", resp.ExistingOptionType)
	}

	req := testutil.MakeRequest("GET", "/survey/existing?name=Kim&cohort=1%EA%B8%B0", nil, nil)
	rec := httptest.NewRecorder()
	h.GetExisting(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var existing models.ExistingParticipantResponse
	testutil.AssertJSON(t, rec, &existing)
	if !existing.Exists || len(existing.ExistingRegions) != 2 {
		t.Errorf("existing = %+v, want two regions", existing)
	}
	if existing.ExistingRegions[0] != gangnam || existing.ExistingRegions[1] != hapjeong {
		t.Errorf("existing regions = %v", existing.ExistingRegions)
	}
}

func TestSubmit_Rejections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	h := NewSurveyHandler(db, cfg)

	tests := []struct {
		name       string
		req        models.SubmitSurveyRequest
		wantStatus int
		wantKind   string
	}{
		{
			name:       "missing name",
			req:        models.SubmitSurveyRequest{Cohort: "1기", OptionType: 1, Regions: []string{gangnam}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing cohort",
			req:        models.SubmitSurveyRequest{ParticipantName: "Lee", OptionType: 1, Regions: []string{gangnam}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown option",
			req:        models.SubmitSurveyRequest{ParticipantName: "Lee", Cohort: "1기", OptionType: 4, Regions: []string{gangnam}},
			wantStatus: http.StatusBadRequest,
			wantKind:   KindInvalidOption,
		},
		{
			name:       "no regions",
			req:        models.SubmitSurveyRequest{ParticipantName: "Lee", Cohort: "1기", OptionType: 1},
			wantStatus: http.StatusBadRequest,
			wantKind:   KindNoRegions,
		},
		{
			name:       "non-Seoul region for option 1",
			req:        models.SubmitSurveyRequest{ParticipantName: "Lee", Cohort: "1기", OptionType: 1, Regions: []string{yeongtong}},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   KindWrongRegionKind,
		},
		{
			name: "option 3 over the non-Seoul quota",
			req: models.SubmitSurveyRequest{ParticipantName: "Lee", Cohort: "1기", OptionType: 3, Regions: []string{
				yeongtong, "경기 성남시 분당구", "인천 남동구 구월동",
			}},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   KindQuotaExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := submit(t, h, "/survey/submissions", tt.req)
			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantKind != "" && resp.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", resp.Kind, tt.wantKind)
			}
		})
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM survey_record").Scan(&count); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected submissions stored %d records", count)
	}
}

func TestCheckRegion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	h := NewSurveyHandler(db, cfg)
	testutil.CreateTestRecord(t, db, "Kim", "1기", 1, gangnam)

	tests := []struct {
		name       string
		req        models.CheckRegionRequest
		wantStatus int
		wantKind   string
		wantTotal  int
	}{
		{
			name:       "new participant",
			req:        models.CheckRegionRequest{OptionType: 3, Region: gangnam},
			wantStatus: http.StatusOK,
			wantTotal:  4,
		},
		{
			name:       "counts stored and staged regions",
			req:        models.CheckRegionRequest{ParticipantName: "Kim", Cohort: "1기", OptionType: 1, Region: samseong, StagedRegions: []string{hapjeong}},
			wantStatus: http.StatusOK,
			wantTotal:  2,
		},
		{
			name:       "already stored",
			req:        models.CheckRegionRequest{ParticipantName: "Kim", Cohort: "1기", OptionType: 1, Region: gangnam},
			wantStatus: http.StatusConflict,
			wantKind:   KindDuplicateRegion,
		},
		{
			name:       "option locked",
			req:        models.CheckRegionRequest{ParticipantName: "Kim", Cohort: "1기", OptionType: 2, Region: yeongtong},
			wantStatus: http.StatusConflict,
			wantKind:   KindOptionLocked,
		},
		{
			name:       "wrong kind",
			req:        models.CheckRegionRequest{OptionType: 2, Region: gangnam},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   KindWrongRegionKind,
		},
		{
			name:       "missing region",
			req:        models.CheckRegionRequest{OptionType: 1},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.CheckRegion(w, testutil.MakeRequest("POST", "/survey/regions/check", tt.req, nil))
			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				var resp models.CheckRegionResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Remaining.Total != tt.wantTotal {
					t.Errorf("remaining total = %d, want %d", resp.Remaining.Total, tt.wantTotal)
				}
				return
			}
			if tt.wantKind != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Kind != tt.wantKind {
					t.Errorf("kind = %q, want %q", resp.Kind, tt.wantKind)
				}
			}
		})
	}
}

func TestGetExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	h := NewSurveyHandler(db, cfg)
	testutil.CreateTestRecord(t, db, "Legacy", "0기", 0, yeongtong)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantExists bool
		wantOption bool
	}{
		{"legacy record", "?name=Legacy&cohort=0%EA%B8%B0", http.StatusOK, true, false},
		{"unknown participant", "?name=Nobody&cohort=0%EA%B8%B0", http.StatusOK, false, false},
		{"case sensitive", "?name=legacy&cohort=0%EA%B8%B0", http.StatusOK, false, false},
		{"missing cohort", "?name=Legacy", http.StatusBadRequest, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.GetExisting(w, testutil.MakeRequest("GET", "/survey/existing"+tt.query, nil, nil))
			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp models.ExistingParticipantResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Exists != tt.wantExists {
				t.Errorf("exists = %v, want %v", resp.Exists, tt.wantExists)
			}
			if (resp.ExistingOptionType != nil) != tt.wantOption {
				t.Errorf("existing option = %v", resp.ExistingOptionType)
			}
		})
	}
}
