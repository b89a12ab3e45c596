// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/regions"
)

// OutcomeKind names the result of reconciling a submission
type OutcomeKind string

const (
	OutcomeFresh          OutcomeKind = "created"
	OutcomeOptionLocked   OutcomeKind = "option_locked"
	OutcomeMergeCandidate OutcomeKind = "merge_candidate"
	OutcomeMerged         OutcomeKind = "merged"
	// OutcomeRejected covers quota failures for both new and merged selections.
	OutcomeRejected OutcomeKind = "rejected"
)

// Submission is one participant's request to record regions.
type Submission struct {
	ParticipantName string
	Cohort          string
	OptionType      int
	Regions         []string
}

// Outcome describes what Reconcile decided.
type Outcome struct {
	Kind OutcomeKind

	// Record is set for OutcomeFresh and OutcomeMerged.
	Record *models.SurveyRecord

	// Set whenever a prior record exists.
	ExistingOptionType *int
	ExistingRegions    []string

	// Merge preview for OutcomeMergeCandidate.
	NewRegions    []string
	CombinedTotal int
	Quota         regions.Option

	// Err explains OutcomeOptionLocked and OutcomeRejected.
	Err error
}

// Reconciler decides whether a submission creates a record, merges into the
// stored one, or is refused.
type Reconciler struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewReconciler(store Store, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Lookup returns the live record for a participant, if any. Both name and
// cohort must be given; they are matched exactly.
// Legacy duplicates collapse to the newest row.
func (r *Reconciler) Lookup(ctx context.Context, participantName, cohort string) (models.SurveyRecord, bool, error) {
	if strings.TrimSpace(participantName) == "" || strings.TrimSpace(cohort) == "" {
		return models.SurveyRecord{}, false, ErrMissingIdentity
	}

	recs, err := r.store.FindRecords(ctx, Filter{ParticipantName: participantName, Cohort: cohort})
	if err != nil {
		return models.SurveyRecord{}, false, fmt.Errorf("find records: %w", err)
	}
	if len(recs) == 0 {
		return models.SurveyRecord{}, false, nil
	}
	return Dedupe(recs)[0], true, nil
}

// Reconcile classifies a submission. Only OutcomeFresh writes to the store;
// a merge is previewed and waits for Confirm.
func (r *Reconciler) Reconcile(ctx context.Context, sub Submission) (Outcome, error) {
	return r.run(ctx, sub, false, false)
}

// Confirm applies a previously previewed merge. The decision is re-derived
// from current data, so a change in between is caught here.
func (r *Reconciler) Confirm(ctx context.Context, sub Submission) (Outcome, error) {
	return r.run(ctx, sub, true, false)
}

func (r *Reconciler) run(ctx context.Context, sub Submission, apply, retried bool) (Outcome, error) {
	if len(sub.Regions) == 0 {
		return Outcome{}, ErrEmptySubmission
	}

	existing, found, err := r.Lookup(ctx, sub.ParticipantName, sub.Cohort)
	if err != nil {
		return Outcome{}, err
	}

	if !found {
		out, err := r.insertFresh(ctx, sub)
		if errors.Is(err, ErrConflict) && !retried {
			// Someone else created the record between lookup and insert.
			r.logger.Info("submission raced an insert, reconciling as merge",
				"participant", sub.ParticipantName, "cohort", sub.Cohort)
			return r.run(ctx, sub, apply, true)
		}
		return out, err
	}

	out := Outcome{
		ExistingOptionType: existing.OptionType,
		ExistingRegions:    existing.SelectedRegions,
	}

	if existing.OptionType != nil && *existing.OptionType != sub.OptionType {
		out.Kind = OutcomeOptionLocked
		out.Err = OptionLockedError(*existing.OptionType)
		return out, nil
	}

	if err := regions.Validate(sub.OptionType, sub.Regions, existing.SelectedRegions); err != nil {
		out.Kind = OutcomeRejected
		out.Err = err
		return out, nil
	}

	opt, _ := regions.LookupOption(sub.OptionType)
	merged := mergeRegions(existing.SelectedRegions, sub.Regions)
	out.NewRegions = sub.Regions
	out.CombinedTotal = len(merged)
	out.Quota = opt

	if !apply {
		out.Kind = OutcomeMergeCandidate
		return out, nil
	}

	optionType := sub.OptionType
	err = r.store.UpdateRecord(ctx, existing.ID, Patch{SelectedRegions: merged, OptionType: &optionType})
	if errors.Is(err, ErrRecordNotFound) && !retried {
		// Deleted by an admin after the preview; start over as a new record.
		return r.run(ctx, sub, apply, true)
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("update record: %w", err)
	}

	existing.SelectedRegions = merged
	existing.OptionType = &optionType
	out.Kind = OutcomeMerged
	out.Record = &existing

	r.logger.Info("survey merged",
		"record_id", existing.ID,
		"cohort", existing.Cohort,
		"regions", len(merged),
	)
	return out, nil
}

func (r *Reconciler) insertFresh(ctx context.Context, sub Submission) (Outcome, error) {
	if err := regions.Validate(sub.OptionType, sub.Regions, nil); err != nil {
		return Outcome{Kind: OutcomeRejected, Err: err}, nil
	}

	optionType := sub.OptionType
	rec := models.SurveyRecord{
		ID:              uuid.NewString(),
		ParticipantName: sub.ParticipantName,
		Cohort:          sub.Cohort,
		SelectedRegions: regions.Unique(sub.Regions),
		OptionType:      &optionType,
		CreatedAt:       r.now(),
	}

	if err := r.store.InsertRecord(ctx, rec); err != nil {
		if errors.Is(err, ErrConflict) {
			return Outcome{}, err
		}
		return Outcome{}, fmt.Errorf("insert record: %w", err)
	}

	r.logger.Info("survey created",
		"record_id", rec.ID,
		"cohort", rec.Cohort,
		"option_type", optionType,
		"regions", len(rec.SelectedRegions),
	)

	quota, _ := regions.LookupOption(optionType)
	return Outcome{
		Kind:          OutcomeFresh,
		Record:        &rec,
		NewRegions:    rec.SelectedRegions,
		CombinedTotal: len(rec.SelectedRegions),
		Quota:         quota,
	}, nil
}

// OptionLockedError explains why a submission under another option is refused.
func OptionLockedError(existing int) error {
	return &regions.ValidationError{
		Err:     ErrOptionLocked,
		Message: fmt.Sprintf("이미 옵션 %d(으)로 제출하셨습니다. 옵션은 변경할 수 없습니다.", existing),
	}
}

// mergeRegions keeps existing regions in order and appends new ones that
// are not already present by exact match.
func mergeRegions(existing, added []string) []string {
	merged := make([]string, 0, len(existing)+len(added))
	merged = append(merged, existing...)
	for _, label := range added {
		if !regions.Contains(merged, label) {
			merged = append(merged, label)
		}
	}
	return merged
}
