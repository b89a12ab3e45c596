// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/regions"
)

// BulkResult reports a multi-item operation. Each item is attempted on its
// own; Affected counts successes only.
type BulkResult struct {
	Affected int
	Deleted  []string
	Updated  []string
	Failed   []models.ItemFailure
}

func (b *BulkResult) fail(item string, err error) {
	b.Failed = append(b.Failed, models.ItemFailure{Item: item, Error: err.Error()})
}

// Response converts the result for the API.
func (b BulkResult) Response() models.BulkResponse {
	return models.BulkResponse{
		Affected: b.Affected,
		Deleted:  b.Deleted,
		Updated:  b.Updated,
		Failed:   b.Failed,
	}
}

// Mutator edits stored region lists. A record left with no regions is deleted.
type Mutator struct {
	store  Store
	logger *slog.Logger
}

func NewMutator(store Store, logger *slog.Logger) *Mutator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mutator{store: store, logger: logger}
}

// RemoveRegionsEverywhere strips the given labels from every record.
// Calling it again with the same labels affects nothing.
func (m *Mutator) RemoveRegionsEverywhere(ctx context.Context, labels []string) (BulkResult, error) {
	result := BulkResult{Deleted: []string{}, Updated: []string{}, Failed: []models.ItemFailure{}}

	drop := make(map[string]bool, len(labels))
	for _, l := range labels {
		drop[l] = true
	}
	if len(drop) == 0 {
		return result, nil
	}

	records, err := m.store.ListAllRecords(ctx)
	if err != nil {
		return result, fmt.Errorf("list records: %w", err)
	}

	for _, rec := range records {
		remaining := make([]string, 0, len(rec.SelectedRegions))
		for _, label := range rec.SelectedRegions {
			if !drop[label] {
				remaining = append(remaining, label)
			}
		}
		if len(remaining) == len(rec.SelectedRegions) {
			continue
		}

		if len(remaining) == 0 {
			n, err := m.store.DeleteRecords(ctx, []string{rec.ID})
			if err != nil {
				m.logger.Warn("bulk region removal: delete failed", "record_id", rec.ID, "error", err)
				result.fail(rec.ID, err)
				continue
			}
			if n == 0 {
				m.logger.Warn("bulk region removal: record already gone", "record_id", rec.ID)
				result.fail(rec.ID, ErrRecordNotFound)
				continue
			}
			result.Affected++
			result.Deleted = append(result.Deleted, rec.ID)
			continue
		}

		if err := m.store.UpdateRecord(ctx, rec.ID, Patch{SelectedRegions: remaining}); err != nil {
			m.logger.Warn("bulk region removal: update failed", "record_id", rec.ID, "error", err)
			result.fail(rec.ID, err)
			continue
		}
		result.Affected++
		result.Updated = append(result.Updated, rec.ID)
	}

	m.logger.Info("regions removed",
		"regions", len(drop),
		"deleted", len(result.Deleted),
		"updated", len(result.Updated),
		"failed", len(result.Failed),
	)
	return result, nil
}

// ReplaceRegions overwrites a record's regions. An empty list deletes the
// record, reported by the returned bool.
func (m *Mutator) ReplaceRegions(ctx context.Context, id string, newRegions []string) (bool, error) {
	if len(newRegions) == 0 {
		return true, m.DeleteRecord(ctx, id)
	}

	if err := m.store.UpdateRecord(ctx, id, Patch{SelectedRegions: regions.Unique(newRegions)}); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return false, err
		}
		return false, fmt.Errorf("update record: %w", err)
	}

	m.logger.Info("record regions replaced", "record_id", id, "regions", len(newRegions))
	return false, nil
}

// DeleteRecord removes one record.
func (m *Mutator) DeleteRecord(ctx context.Context, id string) error {
	n, err := m.store.DeleteRecords(ctx, []string{id})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	m.logger.Info("record deleted", "record_id", id)
	return nil
}
