// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/danielhkuo/region-survey/models"
)

// CrawlTracker flips the processed flag of region labels.
type CrawlTracker struct {
	store  CrawlStore
	logger *slog.Logger
	now    func() time.Time
}

func NewCrawlTracker(store CrawlStore, logger *slog.Logger) *CrawlTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CrawlTracker{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Toggle inverts a region's status. A region never seen before becomes processed.
func (c *CrawlTracker) Toggle(ctx context.Context, label string) (bool, error) {
	status, found, err := c.store.GetStatus(ctx, label)
	if err != nil {
		return false, fmt.Errorf("get crawl status: %w", err)
	}

	next := !found || !status.IsProcessed
	if err := c.store.SetStatus(ctx, label, next, c.now()); err != nil {
		return status.IsProcessed, fmt.Errorf("set crawl status: %w", err)
	}

	c.logger.Info("crawl status toggled", "region", label, "is_processed", next)
	return next, nil
}

// SetMany applies one status to many regions, each independently.
func (c *CrawlTracker) SetMany(ctx context.Context, labels []string, processed bool) BulkResult {
	result := BulkResult{Updated: []string{}, Failed: []models.ItemFailure{}}
	at := c.now()

	for _, label := range labels {
		if err := c.store.SetStatus(ctx, label, processed, at); err != nil {
			c.logger.Warn("bulk crawl status: update failed", "region", label, "error", err)
			result.fail(label, err)
			continue
		}
		result.Affected++
		result.Updated = append(result.Updated, label)
	}

	c.logger.Info("crawl status updated",
		"is_processed", processed,
		"updated", result.Affected,
		"failed", len(result.Failed),
	)
	return result
}

// StatusMap indexes statuses by region label.
func StatusMap(statuses []models.CrawlStatus) map[string]models.CrawlStatus {
	m := make(map[string]models.CrawlStatus, len(statuses))
	for _, s := range statuses {
		m[s.RegionLabel] = s
	}
	return m
}

// SplitByStatus separates labels into pending and completed, each sorted.
// Labels with no stored status are pending.
func SplitByStatus(labels []string, statuses map[string]models.CrawlStatus) (pending, completed []string) {
	pending = []string{}
	completed = []string{}
	for _, label := range labels {
		if s, ok := statuses[label]; ok && s.IsProcessed {
			completed = append(completed, label)
		} else {
			pending = append(pending, label)
		}
	}
	sort.Strings(pending)
	sort.Strings(completed)
	return pending, completed
}
