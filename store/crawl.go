// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/regions"
)

func scanStatus(row rowScanner) (models.CrawlStatus, error) {
	var (
		st          models.CrawlStatus
		processedAt sql.NullTime
	)
	if err := row.Scan(&st.RegionLabel, &st.IsProcessed, &processedAt, &st.UpdatedAt); err != nil {
		return models.CrawlStatus{}, err
	}
	if processedAt.Valid {
		t := processedAt.Time.UTC()
		st.ProcessedAt = &t
	}
	st.UpdatedAt = st.UpdatedAt.UTC()
	return st, nil
}

func (s *Store) GetStatus(ctx context.Context, label string) (models.CrawlStatus, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT region_label, is_processed, processed_at, updated_at
		FROM crawl_status WHERE region_label = $1
	`, label)

	st, err := scanStatus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CrawlStatus{}, false, nil
	}
	if err != nil {
		return models.CrawlStatus{}, false, fmt.Errorf("get crawl status: %w", err)
	}
	return st, true, nil
}

// SetStatus upserts a region's flag. processed_at is stamped when processed
// and cleared otherwise. Marking a region processed also stamps the matching
// catalog neighborhood, if there is one.
func (s *Store) SetStatus(ctx context.Context, label string, processed bool, at time.Time) error {
	at = at.UTC()
	var processedAt any
	if processed {
		processedAt = at
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO crawl_status (region_label, is_processed, processed_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (region_label) DO UPDATE SET
			is_processed = excluded.is_processed,
			processed_at = excluded.processed_at,
			updated_at = excluded.updated_at
	`, label, processed, processedAt, at)
	if err != nil {
		return fmt.Errorf("upsert crawl status: %w", err)
	}

	if processed {
		top, sub, leaf := regions.SplitLabel(label)
		_, err = tx.ExecContext(ctx, `
			UPDATE neighborhood SET last_crawled_at = $1
			WHERE name = $2 AND district_id IN (
				SELECT d.id FROM district d JOIN city c ON c.id = d.city_id
				WHERE d.name = $3 AND c.name = $4
			)
		`, at, leaf, sub, top)
		if err != nil {
			return fmt.Errorf("stamp catalog: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) ListStatuses(ctx context.Context) ([]models.CrawlStatus, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT region_label, is_processed, processed_at, updated_at
		FROM crawl_status ORDER BY region_label
	`)
	if err != nil {
		return nil, fmt.Errorf("list crawl statuses: %w", err)
	}
	defer rows.Close()

	statuses := []models.CrawlStatus{}
	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan crawl status: %w", err)
		}
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}
