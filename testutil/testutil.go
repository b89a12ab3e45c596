// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/region-survey/auth"
	"github.com/danielhkuo/region-survey/catalog"
	"github.com/danielhkuo/region-survey/cliparse"
	"github.com/danielhkuo/region-survey/db"
	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/store"
)

// AdminPassword is the plain password matching GetTestConfig's hash
const AdminPassword = "test-admin-password"

// SetupTestDB creates a fresh sqlite database with the full schema.
// The file lives in t.TempDir and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "survey.db")
	conn, err := db.Open(context.Background(), db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	hash, err := auth.HashPassword(AdminPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash admin password: %v", err)
	}

	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       "survey.db",
		DatabaseType:      db.TypeSQLite,
		AdminPasswordHash: hash,
		AdminTokenSecret:  "test-token-secret",
		AdminTokenTTL:     time.Hour,
		LogSalt:           "test-log-salt",
		LogFormat:         cliparse.LogFormatText,
	}
}

// AdminHeaders returns an Authorization header carrying a valid admin token
func AdminHeaders(t *testing.T, cfg cliparse.Config) map[string]string {
	t.Helper()

	token, _, err := auth.IssueAdminToken(cfg.AdminTokenSecret, cfg.AdminTokenTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue admin token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// CreateTestRecord stores a survey record and returns its ID.
// A zero optionType stores a legacy record without an option.
func CreateTestRecord(t *testing.T, conn *sql.DB, name, cohort string, optionType int, regions ...string) string {
	t.Helper()

	rec := models.SurveyRecord{
		ID:              uuid.NewString(),
		ParticipantName: name,
		Cohort:          cohort,
		SelectedRegions: regions,
		CreatedAt:       time.Now().UTC(),
	}
	if optionType != 0 {
		rec.OptionType = &optionType
	}

	if err := store.New(conn).InsertRecord(context.Background(), rec); err != nil {
		t.Fatalf("Failed to create test record: %v", err)
	}
	return rec.ID
}

// ArchiveTestCohort closes a cohort
func ArchiveTestCohort(t *testing.T, conn *sql.DB, cohort string) {
	t.Helper()

	if err := store.New(conn).ArchiveCohort(context.Background(), cohort, time.Now()); err != nil {
		t.Fatalf("Failed to archive cohort: %v", err)
	}
}

// SeedTestCatalog loads a small two-city catalog
func SeedTestCatalog(t *testing.T, conn *sql.DB) {
	t.Helper()

	seed := catalog.Seed{Cities: []catalog.SeedCity{
		{Name: "서울", Districts: []catalog.SeedDistrict{
			{Name: "강남구", Neighborhoods: []string{"역삼동", "삼성동"}},
			{Name: "마포구", Neighborhoods: []string{"합정동"}},
		}},
		{Name: "경기", Districts: []catalog.SeedDistrict{
			{Name: "수원시", Neighborhoods: []string{"영통동"}},
		}},
	}}

	if _, err := store.New(conn).Seed(context.Background(), seed); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
