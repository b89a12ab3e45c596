// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

Two backends are supported: PostgreSQL through lib/pq and SQLite through
modernc.org/sqlite. Both are driven through database/sql with $N
placeholders, which both drivers accept.

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - survey_record: one row per (participant_name, cohort); selected_regions is a JSON array
  - crawl_status: processed flag per region label
  - archived_cohort: cohorts hidden from the active view
  - city, district, neighborhood: the three-level region catalog

# Relationships

	city 1──* district 1──* neighborhood

Catalog foreign keys use ON DELETE CASCADE. Survey records reference
regions by label only, so catalog edits never touch responses.
*/
package db
