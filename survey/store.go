// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"time"

	"github.com/danielhkuo/region-survey/models"
)

var (
	ErrRecordNotFound  = errors.New("survey record not found")
	ErrConflict        = errors.New("survey record already exists")
	ErrOptionLocked    = errors.New("option cannot be changed")
	ErrCohortArchived  = errors.New("cohort already archived")
	ErrEmptySubmission = errors.New("no regions submitted")
	ErrMissingIdentity = errors.New("participant name and cohort are required")
)

// Filter narrows FindRecords. Empty fields are not applied; set fields
// must match exactly.
type Filter struct {
	ParticipantName string
	Cohort          string
}

// Patch lists the columns UpdateRecord may change. Nil fields are left as is.
// created_at is never patched.
type Patch struct {
	SelectedRegions []string
	OptionType      *int
}

// Store is the record store the survey rules run against.
type Store interface {
	FindRecords(ctx context.Context, filter Filter) ([]models.SurveyRecord, error)
	GetRecord(ctx context.Context, id string) (models.SurveyRecord, error)
	// InsertRecord returns ErrConflict when (participant, cohort) is taken.
	InsertRecord(ctx context.Context, rec models.SurveyRecord) error
	UpdateRecord(ctx context.Context, id string, patch Patch) error
	DeleteRecords(ctx context.Context, ids []string) (int, error)
	ListAllRecords(ctx context.Context) ([]models.SurveyRecord, error)
}

// CrawlStore keeps the processed flag per region label.
type CrawlStore interface {
	GetStatus(ctx context.Context, label string) (models.CrawlStatus, bool, error)
	SetStatus(ctx context.Context, label string, processed bool, at time.Time) error
	ListStatuses(ctx context.Context) ([]models.CrawlStatus, error)
}

// ArchiveStore records closed cohorts. Archiving cannot be undone.
type ArchiveStore interface {
	ListArchivedCohorts(ctx context.Context) ([]string, error)
	// ArchiveCohort returns ErrCohortArchived when the cohort is already closed.
	ArchiveCohort(ctx context.Context, cohort string, at time.Time) error
}
