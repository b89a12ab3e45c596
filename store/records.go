// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/survey"
)

const recordColumns = `id, participant_name, cohort, selected_regions, option_type, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.SurveyRecord, error) {
	var (
		rec     models.SurveyRecord
		regions string
		option  sql.NullInt64
	)
	if err := row.Scan(&rec.ID, &rec.ParticipantName, &rec.Cohort, &regions, &option, &rec.CreatedAt); err != nil {
		return models.SurveyRecord{}, err
	}

	if err := json.Unmarshal([]byte(regions), &rec.SelectedRegions); err != nil {
		return models.SurveyRecord{}, fmt.Errorf("decode regions of %s: %w", rec.ID, err)
	}
	if rec.SelectedRegions == nil {
		rec.SelectedRegions = []string{}
	}
	if option.Valid {
		v := int(option.Int64)
		rec.OptionType = &v
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

func encodeRegions(labels []string) (string, error) {
	if labels == nil {
		labels = []string{}
	}
	raw, err := json.Marshal(labels)
	if err != nil {
		return "", fmt.Errorf("encode regions: %w", err)
	}
	return string(raw), nil
}

func nullableOption(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]models.SurveyRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []models.SurveyRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// FindRecords returns records matching every non-empty filter field,
// newest first.
func (s *Store) FindRecords(ctx context.Context, f survey.Filter) ([]models.SurveyRecord, error) {
	var (
		where []string
		args  []any
	)
	if f.ParticipantName != "" {
		args = append(args, f.ParticipantName)
		where = append(where, fmt.Sprintf("participant_name = $%d", len(args)))
	}
	if f.Cohort != "" {
		args = append(args, f.Cohort)
		where = append(where, fmt.Sprintf("cohort = $%d", len(args)))
	}

	query := `SELECT ` + recordColumns + ` FROM survey_record`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	return s.queryRecords(ctx, query, args...)
}

func (s *Store) ListAllRecords(ctx context.Context) ([]models.SurveyRecord, error) {
	return s.FindRecords(ctx, survey.Filter{})
}

func (s *Store) GetRecord(ctx context.Context, id string) (models.SurveyRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM survey_record WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SurveyRecord{}, survey.ErrRecordNotFound
	}
	if err != nil {
		return models.SurveyRecord{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// InsertRecord maps a (participant_name, cohort) unique violation to
// survey.ErrConflict.
func (s *Store) InsertRecord(ctx context.Context, rec models.SurveyRecord) error {
	regions, err := encodeRegions(rec.SelectedRegions)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO survey_record (id, participant_name, cohort, selected_regions, option_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.ParticipantName, rec.Cohort, regions, nullableOption(rec.OptionType), rec.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return survey.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *Store) UpdateRecord(ctx context.Context, id string, p survey.Patch) error {
	var (
		sets []string
		args []any
	)
	if p.SelectedRegions != nil {
		regions, err := encodeRegions(p.SelectedRegions)
		if err != nil {
			return err
		}
		args = append(args, regions)
		sets = append(sets, fmt.Sprintf("selected_regions = $%d", len(args)))
	}
	if p.OptionType != nil {
		args = append(args, *p.OptionType)
		sets = append(sets, fmt.Sprintf("option_type = $%d", len(args)))
	}
	if len(sets) == 0 {
		_, err := s.GetRecord(ctx, id)
		return err
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE survey_record SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if n == 0 {
		return survey.ErrRecordNotFound
	}
	return nil
}

// DeleteRecords removes the given ids and reports how many existed.
func (s *Store) DeleteRecords(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM survey_record WHERE id IN (`+placeholders(1, len(ids))+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	return int(n), nil
}
