// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/danielhkuo/region-survey/models"
)

var errInjected = errors.New("injected store failure")

// memStore is an in-memory Store used by the rule tests.
type memStore struct {
	mu         sync.Mutex
	records    map[string]models.SurveyRecord
	order      []string
	failUpdate map[string]bool
	failDelete map[string]bool
}

func newMemStore(recs ...models.SurveyRecord) *memStore {
	s := &memStore{
		records:    make(map[string]models.SurveyRecord),
		failUpdate: make(map[string]bool),
		failDelete: make(map[string]bool),
	}
	for _, r := range recs {
		s.records[r.ID] = clone(r)
		s.order = append(s.order, r.ID)
	}
	return s
}

func clone(r models.SurveyRecord) models.SurveyRecord {
	r.SelectedRegions = append([]string(nil), r.SelectedRegions...)
	if r.OptionType != nil {
		v := *r.OptionType
		r.OptionType = &v
	}
	return r
}

func (s *memStore) FindRecords(ctx context.Context, f Filter) ([]models.SurveyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SurveyRecord
	for _, id := range s.order {
		r, ok := s.records[id]
		if !ok {
			continue
		}
		if f.ParticipantName != "" && r.ParticipantName != f.ParticipantName {
			continue
		}
		if f.Cohort != "" && r.Cohort != f.Cohort {
			continue
		}
		out = append(out, clone(r))
	}
	return out, nil
}

func (s *memStore) GetRecord(ctx context.Context, id string) (models.SurveyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return models.SurveyRecord{}, ErrRecordNotFound
	}
	return clone(r), nil
}

func (s *memStore) InsertRecord(ctx context.Context, rec models.SurveyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ParticipantName == rec.ParticipantName && r.Cohort == rec.Cohort {
			return ErrConflict
		}
	}
	s.records[rec.ID] = clone(rec)
	s.order = append(s.order, rec.ID)
	return nil
}

func (s *memStore) UpdateRecord(ctx context.Context, id string, p Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdate[id] {
		return errInjected
	}
	r, ok := s.records[id]
	if !ok {
		return ErrRecordNotFound
	}
	if p.SelectedRegions != nil {
		r.SelectedRegions = append([]string(nil), p.SelectedRegions...)
	}
	if p.OptionType != nil {
		v := *p.OptionType
		r.OptionType = &v
	}
	s.records[id] = r
	return nil
}

func (s *memStore) DeleteRecords(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, id := range ids {
		if s.failDelete[id] {
			return n, errInjected
		}
		if _, ok := s.records[id]; ok {
			delete(s.records, id)
			n++
		}
	}
	return n, nil
}

func (s *memStore) ListAllRecords(ctx context.Context) ([]models.SurveyRecord, error) {
	return s.FindRecords(ctx, Filter{})
}

// memCrawlStore is an in-memory CrawlStore.
type memCrawlStore struct {
	statuses map[string]models.CrawlStatus
	fail     map[string]bool
}

func newMemCrawlStore() *memCrawlStore {
	return &memCrawlStore{
		statuses: make(map[string]models.CrawlStatus),
		fail:     make(map[string]bool),
	}
}

func (s *memCrawlStore) GetStatus(ctx context.Context, label string) (models.CrawlStatus, bool, error) {
	st, ok := s.statuses[label]
	return st, ok, nil
}

func (s *memCrawlStore) SetStatus(ctx context.Context, label string, processed bool, at time.Time) error {
	if s.fail[label] {
		return errInjected
	}
	st := models.CrawlStatus{RegionLabel: label, IsProcessed: processed, UpdatedAt: at}
	if processed {
		st.ProcessedAt = &at
	}
	s.statuses[label] = st
	return nil
}

func (s *memCrawlStore) ListStatuses(ctx context.Context) ([]models.CrawlStatus, error) {
	out := make([]models.CrawlStatus, 0, len(s.statuses))
	for _, st := range s.statuses {
		out = append(out, st)
	}
	return out, nil
}

func intPtr(v int) *int { return &v }
