// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/testutil"
)

// TestConcurrentSameParticipant fires the same first-time submission from
// several clients at once. Exactly one record may come out of it.
func TestConcurrentSameParticipant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	h := NewSurveyHandler(db, cfg)

	const clients = 8
	var created, previews, other atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			h.Submit(w, testutil.MakeRequest("POST", "/survey/submissions", models.SubmitSurveyRequest{
				ParticipantName: "Kim", Cohort: "1기", OptionType: 1, Regions: []string{gangnam},
			}, nil))

			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusOK:
				previews.Add(1)
			default:
				other.Add(1)
				t.Logf("unexpected response: %d - %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("created = %d, want exactly 1", created.Load())
	}
	if previews.Load() != clients-1 {
		t.Errorf("merge previews = %d, want %d", previews.Load(), clients-1)
	}
	if other.Load() != 0 {
		t.Errorf("%d submissions failed", other.Load())
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM survey_record WHERE participant_name = $1 AND cohort = $2", "Kim", "1기").Scan(&count); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 1 {
		t.Errorf("stored %d records for one participant, want 1", count)
	}
}

// TestConcurrentDistinctParticipants checks that independent submissions all land.
func TestConcurrentDistinctParticipants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	h := NewSurveyHandler(db, cfg)

	const clients = 10
	var created atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			h.Submit(w, testutil.MakeRequest("POST", "/survey/submissions", models.SubmitSurveyRequest{
				ParticipantName: fmt.Sprintf("Participant%02d", idx), Cohort: "1기", OptionType: 2, Regions: []string{yeongtong},
			}, nil))
			if w.Code == http.StatusCreated {
				created.Add(1)
			} else {
				t.Logf("participant %d: %d - %s", idx, w.Code, w.Body.String())
			}
		}(i)
	}
	wg.Wait()

	if created.Load() != clients {
		t.Errorf("created = %d, want %d", created.Load(), clients)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM survey_record").Scan(&count); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != clients {
		t.Errorf("stored %d records, want %d", count, clients)
	}
}
