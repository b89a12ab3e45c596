// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/region-survey/survey"
)

// ListArchivedCohorts returns closed cohorts, most recently archived first.
func (s *Store) ListArchivedCohorts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT cohort FROM archived_cohort ORDER BY archived_at DESC, cohort`)
	if err != nil {
		return nil, fmt.Errorf("list archived cohorts: %w", err)
	}
	defer rows.Close()

	cohorts := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan archived cohort: %w", err)
		}
		cohorts = append(cohorts, c)
	}
	return cohorts, rows.Err()
}

func (s *Store) ArchiveCohort(ctx context.Context, cohort string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO archived_cohort (cohort, archived_at) VALUES ($1, $2)`, cohort, at.UTC())
	if isUniqueViolation(err) {
		return survey.ErrCohortArchived
	}
	if err != nil {
		return fmt.Errorf("archive cohort: %w", err)
	}
	return nil
}
