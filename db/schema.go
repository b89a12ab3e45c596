// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	var stmts []string
	switch dbType {
	case TypePostgres:
		stmts = postgresSchema
	case TypeSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, dbType)
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS survey_record (
    id TEXT PRIMARY KEY,
    participant_name TEXT NOT NULL,
    cohort TEXT NOT NULL,
    selected_regions TEXT NOT NULL DEFAULT '[]',
    option_type INTEGER CHECK (option_type IN (1, 2, 3)),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (participant_name, cohort)
)`,
	`CREATE INDEX IF NOT EXISTS idx_survey_record_cohort ON survey_record(cohort)`,

	`CREATE TABLE IF NOT EXISTS crawl_status (
    region_label TEXT PRIMARY KEY,
    is_processed BOOLEAN NOT NULL DEFAULT FALSE,
    processed_at TIMESTAMPTZ,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,

	`CREATE TABLE IF NOT EXISTS archived_cohort (
    cohort TEXT PRIMARY KEY,
    archived_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,

	`CREATE TABLE IF NOT EXISTS city (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS district (
    id BIGSERIAL PRIMARY KEY,
    city_id BIGINT NOT NULL REFERENCES city(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    UNIQUE (city_id, name)
)`,
	`CREATE TABLE IF NOT EXISTS neighborhood (
    id BIGSERIAL PRIMARY KEY,
    district_id BIGINT NOT NULL REFERENCES district(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    last_crawled_at TIMESTAMPTZ,
    UNIQUE (district_id, name)
)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS survey_record (
    id TEXT PRIMARY KEY,
    participant_name TEXT NOT NULL,
    cohort TEXT NOT NULL,
    selected_regions TEXT NOT NULL DEFAULT '[]',
    option_type INTEGER CHECK (option_type IN (1, 2, 3)),
    created_at TIMESTAMP NOT NULL,
    UNIQUE (participant_name, cohort)
)`,
	`CREATE INDEX IF NOT EXISTS idx_survey_record_cohort ON survey_record(cohort)`,

	`CREATE TABLE IF NOT EXISTS crawl_status (
    region_label TEXT PRIMARY KEY,
    is_processed BOOLEAN NOT NULL DEFAULT 0,
    processed_at TIMESTAMP,
    updated_at TIMESTAMP NOT NULL
)`,

	`CREATE TABLE IF NOT EXISTS archived_cohort (
    cohort TEXT PRIMARY KEY,
    archived_at TIMESTAMP NOT NULL
)`,

	`CREATE TABLE IF NOT EXISTS city (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS district (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    city_id INTEGER NOT NULL REFERENCES city(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    UNIQUE (city_id, name)
)`,
	`CREATE TABLE IF NOT EXISTS neighborhood (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    district_id INTEGER NOT NULL REFERENCES district(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    last_crawled_at TIMESTAMP,
    UNIQUE (district_id, name)
)`,
}
